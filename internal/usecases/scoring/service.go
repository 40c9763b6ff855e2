package scoring

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/infrastructure/repository"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/pkg/utils"
)

// MaxBonus é o teto do bonus score: quatro fatores de até 5 pontos cada.
const MaxBonus = 20.0

// Scorer calcula o bonus score de criativos a partir das métricas
// sincronizadas do Google Ads.
type Scorer interface {
	ComputeBonusScore(creativeID int64) (*domain.BonusScore, error)
	ScoreAllCreatives(userID int) ([]*domain.CreativeScore, error)
	OfferLaunchScore(offerID int64) (*domain.BonusScore, error)
	InvalidateOffer(offerID int64)
}

type Service struct {
	cfg             *config.Config
	performanceRepo repository.PerformanceRepository
	creativeRepo    repository.CreativeRepository
	offerRepo       repository.OfferRepository
	benchmarkRepo   repository.BenchmarkRepository
	cache           *ScoreCache
}

func NewService(
	cfg *config.Config,
	performanceRepo repository.PerformanceRepository,
	creativeRepo repository.CreativeRepository,
	offerRepo repository.OfferRepository,
	benchmarkRepo repository.BenchmarkRepository,
	cache *ScoreCache,
) Scorer {
	return &Service{
		cfg:             cfg,
		performanceRepo: performanceRepo,
		creativeRepo:    creativeRepo,
		offerRepo:       offerRepo,
		benchmarkRepo:   benchmarkRepo,
		cache:           cache,
	}
}

// ComputeBonusScore agrega todas as linhas de performance sincronizadas do
// criativo e calcula o bonus score (0-20). Retorna nil (sem erro) quando o
// criativo não tem nenhuma linha de performance: ausência de dados não é
// falha. Abaixo do piso de cliques o resultado carrega TotalBonus zero e
// MinClicksReached falso, nunca uma pontuação parcial.
func (s *Service) ComputeBonusScore(creativeID int64) (*domain.BonusScore, error) {
	score, _, err := s.computeBonusScore(creativeID)
	return score, err
}

// computeBonusScore devolve também o agregado usado no cálculo, para que
// ScoreAllCreatives monte as métricas sem repetir a consulta por criativo.
func (s *Service) computeBonusScore(creativeID int64) (*domain.BonusScore, *domain.PerformanceAggregate, error) {
	if creativeID <= 0 {
		return nil, nil, fmt.Errorf("creative id inválido: %d", creativeID)
	}

	agg, err := s.performanceRepo.AggregateByCreativeID(creativeID)
	if err != nil {
		return nil, nil, err
	}

	if agg == nil {
		return nil, nil, nil
	}

	clamped := clampAggregate(agg)

	benchmark, err := s.benchmarkForCreative(creativeID)
	if err != nil {
		return nil, nil, err
	}

	score := calculateBonusScore(clamped, benchmark, s.minClicks())
	score.CreativeID = creativeID

	return score, agg, nil
}

// ScoreAllCreatives calcula o score de todos os criativos do usuário e os
// ordena do maior para o menor bonus. Criativos abaixo do piso de cliques
// (ou sem dados) são incluídos com rating vazio ao final da lista, para que
// o dashboard distinga "sem dados suficientes" de "desempenho ruim".
func (s *Service) ScoreAllCreatives(userID int) ([]*domain.CreativeScore, error) {
	creatives, err := s.creativeRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	scores := make([]*domain.CreativeScore, 0, len(creatives))
	for _, creative := range creatives {
		bonus, agg, err := s.computeBonusScore(creative.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"creative_id": creative.ID,
				"error":       err.Error(),
			}).Warn("scoring: failed to compute bonus score, skipping creative")
			continue
		}

		entry := &domain.CreativeScore{
			CreativeID: creative.ID,
			OfferID:    creative.OfferID,
		}

		if bonus == nil {
			scores = append(scores, entry)
			continue
		}

		entry.TotalBonus = bonus.TotalBonus
		entry.MinClicksReached = bonus.MinClicksReached
		if bonus.MinClicksReached {
			entry.Rating = RatingForBonus(bonus.TotalBonus)
		}

		if agg != nil {
			entry.Metrics = domain.ScoreMetrics{
				Impressions: agg.Impressions,
				Clicks:      agg.Clicks,
				CTR:         utils.RoundWithFourDecimalPlace(agg.CTR()),
				CPC:         utils.RoundWithTwoDecimalPlace(agg.CPC()),
				Conversions: agg.Conversions,
				Cost:        utils.RoundWithTwoDecimalPlace(agg.Cost()),
			}
		}

		scores = append(scores, entry)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		// Criativos pontuáveis primeiro, depois por bonus decrescente
		if scores[i].MinClicksReached != scores[j].MinClicksReached {
			return scores[i].MinClicksReached
		}
		if scores[i].TotalBonus != scores[j].TotalBonus {
			return scores[i].TotalBonus > scores[j].TotalBonus
		}
		return scores[i].CreativeID < scores[j].CreativeID
	})

	return scores, nil
}

// OfferLaunchScore calcula o bonus score do criativo mais recente da oferta,
// com cache transiente por oferta para não recalcular a cada requisição do
// dashboard.
func (s *Service) OfferLaunchScore(offerID int64) (*domain.BonusScore, error) {
	if offerID <= 0 {
		return nil, fmt.Errorf("offer id inválido: %d", offerID)
	}

	creatives, err := s.creativeRepo.ListByOffer(offerID)
	if err != nil {
		return nil, err
	}
	if len(creatives) == 0 {
		return nil, nil
	}

	// O criativo corrente é a versão mais alta
	current := creatives[len(creatives)-1]

	if cached, ok := s.cache.Get(offerID, current.ID); ok {
		if score, ok := cached.(*domain.BonusScore); ok {
			return score, nil
		}
	}

	score, err := s.ComputeBonusScore(current.ID)
	if err != nil {
		return nil, err
	}

	if score != nil {
		s.cache.Set(offerID, current.ID, score)
	}

	return score, nil
}

// InvalidateOffer limpa o cache de score da oferta (usado após novo sync).
func (s *Service) InvalidateOffer(offerID int64) {
	s.cache.Clear(offerID)
}

func (s *Service) minClicks() int64 {
	if s.cfg.Scoring.MinClicksThreshold > 0 {
		return s.cfg.Scoring.MinClicksThreshold
	}
	return 100
}

// benchmarkForCreative resolve o benchmark de indústria do criativo via
// industry_code da oferta, caindo para o código padrão configurado e, em
// último caso, para a tabela embutida.
func (s *Service) benchmarkForCreative(creativeID int64) (*domain.IndustryBenchmark, error) {
	code := s.cfg.Scoring.DefaultIndustryCode

	creative, err := s.creativeRepo.GetByID(creativeID)
	if err != nil {
		return nil, err
	}

	if creative != nil {
		offer, err := s.offerRepo.GetByID(creative.OfferID)
		if err != nil {
			return nil, err
		}
		if offer != nil && offer.IndustryCode != nil && *offer.IndustryCode != "" {
			code = *offer.IndustryCode
		}
	}

	benchmark, err := s.benchmarkRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}

	if benchmark == nil {
		fallback, ok := defaultBenchmarks[code]
		if !ok {
			fallback, ok = defaultBenchmarks[s.cfg.Scoring.DefaultIndustryCode]
			if !ok {
				return nil, fmt.Errorf("benchmark de indústria não encontrado: %s", code)
			}
		}
		logrus.WithField("industry_code", code).
			Warn("scoring: benchmark not found in database, using built-in defaults")
		benchmark = &fallback
	}

	return benchmark, nil
}

// clampAggregate normaliza valores impossíveis (contagens negativas) para
// zero antes do cálculo, registrando o ajuste. O cálculo sempre continua
// com os valores saneados.
func clampAggregate(agg *domain.PerformanceAggregate) domain.PerformanceAggregate {
	clamped := *agg

	if clamped.Impressions < 0 {
		logrus.WithFields(logrus.Fields{
			"creative_id": agg.CreativeID,
			"impressions": agg.Impressions,
		}).Warn("scoring: negative impressions clamped to zero")
		clamped.Impressions = 0
	}

	if clamped.Clicks < 0 {
		logrus.WithFields(logrus.Fields{
			"creative_id": agg.CreativeID,
			"clicks":      agg.Clicks,
		}).Warn("scoring: negative clicks clamped to zero")
		clamped.Clicks = 0
	}

	if clamped.Conversions < 0 {
		logrus.WithFields(logrus.Fields{
			"creative_id": agg.CreativeID,
			"conversions": agg.Conversions,
		}).Warn("scoring: negative conversions clamped to zero")
		clamped.Conversions = 0
	}

	if clamped.CostMicros < 0 {
		logrus.WithFields(logrus.Fields{
			"creative_id": agg.CreativeID,
			"cost_micros": agg.CostMicros,
		}).Warn("scoring: negative cost clamped to zero")
		clamped.CostMicros = 0
	}

	return clamped
}

// RatingForBonus converte o bonus (0-20) na classificação qualitativa.
func RatingForBonus(totalBonus float64) domain.CreativeRating {
	switch {
	case totalBonus >= 16:
		return domain.RatingExcellent
	case totalBonus >= 12:
		return domain.RatingGood
	case totalBonus >= 8:
		return domain.RatingAverage
	default:
		return domain.RatingPoor
	}
}
