package adsclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/autoads-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/autoads-api/internal/config"
)

type Client interface {
	GetAdDailyMetrics(customerID, adExternalID string, startDate, endDate time.Time) ([]adsdomain.DailyMetrics, error)
	RefreshToken() error
}

type AdsClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	httpClient   *http.Client
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &AdsClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *AdsClient) RefreshToken() error {
	return c.TokenManager.RefreshToken()
}

// GetAdDailyMetrics consulta o searchStream da API do Google Ads e retorna as
// métricas diárias (impressões, cliques, conversões, custo) de um anúncio.
func (c *AdsClient) GetAdDailyMetrics(customerID, adExternalID string, startDate, endDate time.Time) ([]adsdomain.DailyMetrics, error) {
	token, err := c.TokenManager.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de acesso: %w", err)
	}

	gaql := fmt.Sprintf(`
		SELECT
			segments.date,
			metrics.impressions,
			metrics.clicks,
			metrics.conversions,
			metrics.cost_micros
		FROM ad_group_ad
		WHERE ad_group_ad.ad.id = %s
			AND segments.date BETWEEN '%s' AND '%s'
		ORDER BY segments.date ASC`,
		adExternalID,
		startDate.Format(time.DateOnly),
		endDate.Format(time.DateOnly),
	)

	payload, err := json.Marshal(map[string]string{"query": gaql})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"%s/%s/customers/%s/googleAds:searchStream",
		c.Cfg.GoogleAds.BaseURL,
		c.Cfg.GoogleAds.Version,
		customerID,
	)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("developer-token", c.Cfg.GoogleAds.DeveloperToken)
	if c.Cfg.GoogleAds.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", c.Cfg.GoogleAds.LoginCustomerID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token expirou entre a verificação e a chamada; renovar e repassar o erro
		if refreshErr := c.TokenManager.RefreshToken(); refreshErr != nil {
			logrus.WithError(refreshErr).Error("Erro ao renovar token após 401")
		}
		return nil, fmt.Errorf("token expirado e renovado, por favor tente novamente")
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr adsdomain.APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API do Google Ads retornou erro: %s (%s)", apiErr.Error.Message, apiErr.Error.Status)
		}
		return nil, fmt.Errorf("API do Google Ads retornou status %d", resp.StatusCode)
	}

	// searchStream retorna um array de blocos de resultados
	var blocks []adsdomain.SearchStreamResponse
	if err := json.Unmarshal(body, &blocks); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do searchStream: %w", err)
	}

	metrics := make([]adsdomain.DailyMetrics, 0)
	for _, block := range blocks {
		for _, row := range block.Results {
			metrics = append(metrics, adsdomain.DailyMetrics{
				Date:        row.Segments.Date,
				Impressions: parseInt64(row.Metrics.Impressions),
				Clicks:      parseInt64(row.Metrics.Clicks),
				Conversions: row.Metrics.Conversions,
				CostMicros:  parseInt64(row.Metrics.CostMicros),
			})
		}
	}

	return metrics, nil
}

// A API retorna métricas int64 como strings JSON
func parseInt64(s string) int64 {
	var v int64
	_, _ = fmt.Sscanf(s, "%d", &v)
	return v
}
