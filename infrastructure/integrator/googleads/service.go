package googleads

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/googleads/adsclient"
	adsdomain "github.com/vfg2006/autoads-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
)

// Integrator expõe as consultas de métricas usadas pelo sync de performance.
type Integrator interface {
	GetCreativeDailyPerformance(customerID string, creative *domain.Creative, date time.Time) (*domain.PerformanceEntry, error)
}

type GoogleAdsIntegrator struct {
	cfg    *config.Config
	Client adsclient.Client
}

func New(cfg *config.Config, client adsclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// GetCreativeDailyPerformance busca as métricas de um criativo em uma data e
// monta a entrada de performance pronta para persistência. Retorna nil quando
// a API não tem dados para a data (dia sem veiculação).
func (s *GoogleAdsIntegrator) GetCreativeDailyPerformance(
	customerID string,
	creative *domain.Creative,
	date time.Time,
) (*domain.PerformanceEntry, error) {
	if creative.ExternalID == nil || *creative.ExternalID == "" {
		logrus.WithField("creative_id", creative.ID).
			Debug("sync: creative has no external ad id, skipping")
		return nil, nil
	}

	rows, err := s.Client.GetAdDailyMetrics(customerID, *creative.ExternalID, date, date)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"creative_id": creative.ID,
			"date":        date.Format(time.DateOnly),
			"error":       err.Error(),
		}).Error("sync: failed to fetch metrics from Google Ads API")
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	entry := factoryPerformanceEntry(creative, date, rows)
	return entry, nil
}

func factoryPerformanceEntry(creative *domain.Creative, date time.Time, rows []adsdomain.DailyMetrics) *domain.PerformanceEntry {
	entry := &domain.PerformanceEntry{
		CreativeID: creative.ID,
		OfferID:    creative.OfferID,
		UserID:     creative.UserID,
		Date:       date,
		SyncDate:   time.Now(),
	}

	for _, row := range rows {
		entry.Impressions += row.Impressions
		entry.Clicks += row.Clicks
		entry.Conversions += row.Conversions
		entry.CostMicros += row.CostMicros
	}

	return entry
}
