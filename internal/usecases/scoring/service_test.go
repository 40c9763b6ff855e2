package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/autoads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Scoring: config.Scoring{
			MinClicksThreshold:  100,
			CacheTTLMinutes:     5,
			DefaultIndustryCode: "ecom_fashion",
		},
	}
}

func newTestService(t *testing.T) (*Service, *mocks.MockPerformanceRepository, *mocks.MockCreativeRepository, *mocks.MockOfferRepository, *mocks.MockBenchmarkRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	performanceRepo := mocks.NewMockPerformanceRepository(ctrl)
	creativeRepo := mocks.NewMockCreativeRepository(ctrl)
	offerRepo := mocks.NewMockOfferRepository(ctrl)
	benchmarkRepo := mocks.NewMockBenchmarkRepository(ctrl)

	service := &Service{
		cfg:             testConfig(),
		performanceRepo: performanceRepo,
		creativeRepo:    creativeRepo,
		offerRepo:       offerRepo,
		benchmarkRepo:   benchmarkRepo,
		cache:           NewScoreCache(5 * time.Minute),
	}

	return service, performanceRepo, creativeRepo, offerRepo, benchmarkRepo
}

func TestService_ComputeBonusScore(t *testing.T) {
	benchmark := &domain.IndustryBenchmark{
		IndustryL1:        "E-commerce",
		IndustryL2:        "Fashion & Apparel",
		IndustryCode:      "ecom_fashion",
		AvgCTR:            0.02,
		AvgCPC:            1.00,
		AvgConversionRate: 0.02,
	}

	tests := []struct {
		name     string
		setup    func(perf *mocks.MockPerformanceRepository, creative *mocks.MockCreativeRepository, offer *mocks.MockOfferRepository, bench *mocks.MockBenchmarkRepository)
		validate func(t *testing.T, score *domain.BonusScore, err error)
	}{
		{
			name: "Criativo sem dados de performance retorna nil sem erro",
			setup: func(perf *mocks.MockPerformanceRepository, creative *mocks.MockCreativeRepository, offer *mocks.MockOfferRepository, bench *mocks.MockBenchmarkRepository) {
				perf.EXPECT().AggregateByCreativeID(int64(10)).Return(nil, nil)
			},
			validate: func(t *testing.T, score *domain.BonusScore, err error) {
				assert.NoError(t, err)
				assert.Nil(t, score)
			},
		},
		{
			name: "Criativo com dados usa o benchmark da indústria da oferta",
			setup: func(perf *mocks.MockPerformanceRepository, creative *mocks.MockCreativeRepository, offer *mocks.MockOfferRepository, bench *mocks.MockBenchmarkRepository) {
				perf.EXPECT().AggregateByCreativeID(int64(10)).Return(&domain.PerformanceAggregate{
					CreativeID:  10,
					Impressions: 20000,
					Clicks:      1200,
					Conversions: 60,
					CostMicros:  480_000_000,
				}, nil)
				creative.EXPECT().GetByID(int64(10)).Return(&domain.Creative{ID: 10, OfferID: 3}, nil)
				offer.EXPECT().GetByID(int64(3)).Return(&domain.Offer{ID: 3, IndustryCode: stringPtr("tech_saas")}, nil)
				bench.EXPECT().GetByCode("tech_saas").Return(benchmark, nil)
			},
			validate: func(t *testing.T, score *domain.BonusScore, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, score)
				assert.Equal(t, int64(10), score.CreativeID)
				assert.True(t, score.MinClicksReached)
				assert.Equal(t, MaxBonus, score.TotalBonus)
			},
		},
		{
			name: "Oferta sem industry_code cai no código padrão configurado",
			setup: func(perf *mocks.MockPerformanceRepository, creative *mocks.MockCreativeRepository, offer *mocks.MockOfferRepository, bench *mocks.MockBenchmarkRepository) {
				perf.EXPECT().AggregateByCreativeID(int64(10)).Return(&domain.PerformanceAggregate{
					CreativeID:  10,
					Impressions: 10000,
					Clicks:      500,
					Conversions: 12,
					CostMicros:  400_000_000,
				}, nil)
				creative.EXPECT().GetByID(int64(10)).Return(&domain.Creative{ID: 10, OfferID: 3}, nil)
				offer.EXPECT().GetByID(int64(3)).Return(&domain.Offer{ID: 3}, nil)
				bench.EXPECT().GetByCode("ecom_fashion").Return(benchmark, nil)
			},
			validate: func(t *testing.T, score *domain.BonusScore, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, score)
				assert.Equal(t, "ecom_fashion", score.IndustryCode)
			},
		},
		{
			name: "Benchmark ausente no banco usa a tabela embutida",
			setup: func(perf *mocks.MockPerformanceRepository, creative *mocks.MockCreativeRepository, offer *mocks.MockOfferRepository, bench *mocks.MockBenchmarkRepository) {
				perf.EXPECT().AggregateByCreativeID(int64(10)).Return(&domain.PerformanceAggregate{
					CreativeID:  10,
					Impressions: 10000,
					Clicks:      500,
					Conversions: 12,
					CostMicros:  400_000_000,
				}, nil)
				creative.EXPECT().GetByID(int64(10)).Return(&domain.Creative{ID: 10, OfferID: 3}, nil)
				offer.EXPECT().GetByID(int64(3)).Return(&domain.Offer{ID: 3, IndustryCode: stringPtr("finance_crypto")}, nil)
				bench.EXPECT().GetByCode("finance_crypto").Return(nil, nil)
			},
			validate: func(t *testing.T, score *domain.BonusScore, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, score)
				assert.Equal(t, "finance_crypto", score.IndustryCode)
				assert.Equal(t, "Finance > Crypto", score.IndustryLabel)
			},
		},
		{
			name: "Métricas negativas são saneadas antes do cálculo",
			setup: func(perf *mocks.MockPerformanceRepository, creative *mocks.MockCreativeRepository, offer *mocks.MockOfferRepository, bench *mocks.MockBenchmarkRepository) {
				perf.EXPECT().AggregateByCreativeID(int64(10)).Return(&domain.PerformanceAggregate{
					CreativeID:  10,
					Impressions: 10000,
					Clicks:      -50,
					Conversions: -3,
					CostMicros:  -1000,
				}, nil)
				creative.EXPECT().GetByID(int64(10)).Return(&domain.Creative{ID: 10, OfferID: 3}, nil)
				offer.EXPECT().GetByID(int64(3)).Return(&domain.Offer{ID: 3}, nil)
				bench.EXPECT().GetByCode("ecom_fashion").Return(benchmark, nil)
			},
			validate: func(t *testing.T, score *domain.BonusScore, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, score)
				assert.False(t, score.MinClicksReached)
				assert.Equal(t, 0.0, score.TotalBonus)
				assert.Equal(t, 0.0, score.Breakdown.Clicks.Value)
			},
		},
		{
			name: "Erro do repositório de performance é propagado",
			setup: func(perf *mocks.MockPerformanceRepository, creative *mocks.MockCreativeRepository, offer *mocks.MockOfferRepository, bench *mocks.MockBenchmarkRepository) {
				perf.EXPECT().AggregateByCreativeID(int64(10)).Return(nil, assert.AnError)
			},
			validate: func(t *testing.T, score *domain.BonusScore, err error) {
				assert.Error(t, err)
				assert.Nil(t, score)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, perf, creative, offer, bench := newTestService(t)
			tt.setup(perf, creative, offer, bench)

			score, err := service.ComputeBonusScore(10)
			tt.validate(t, score, err)
		})
	}
}

func TestService_ComputeBonusScore_InvalidID(t *testing.T) {
	service, _, _, _, _ := newTestService(t)

	score, err := service.ComputeBonusScore(0)

	assert.Error(t, err)
	assert.Nil(t, score)
}

func TestService_ScoreAllCreatives(t *testing.T) {
	benchmark := &domain.IndustryBenchmark{
		IndustryCode:      "ecom_fashion",
		AvgCTR:            0.02,
		AvgCPC:            1.00,
		AvgConversionRate: 0.02,
	}

	service, perf, creative, offer, bench := newTestService(t)

	creative.EXPECT().ListByUser(7).Return([]*domain.Creative{
		{ID: 1, OfferID: 100},
		{ID: 2, OfferID: 100},
		{ID: 3, OfferID: 200},
	}, nil)

	// Criativo 1: desempenho fraco, mas pontuável. O agregado de uma única
	// consulta alimenta tanto o score quanto as métricas do resultado.
	perf.EXPECT().AggregateByCreativeID(int64(1)).Return(&domain.PerformanceAggregate{
		CreativeID: 1, Impressions: 50000, Clicks: 150, Conversions: 1, CostMicros: 450_000_000,
	}, nil)
	creative.EXPECT().GetByID(int64(1)).Return(&domain.Creative{ID: 1, OfferID: 100}, nil)

	// Criativo 2: desempenho excelente
	perf.EXPECT().AggregateByCreativeID(int64(2)).Return(&domain.PerformanceAggregate{
		CreativeID: 2, Impressions: 20000, Clicks: 1200, Conversions: 60, CostMicros: 480_000_000,
	}, nil)
	creative.EXPECT().GetByID(int64(2)).Return(&domain.Creative{ID: 2, OfferID: 100}, nil)

	// Criativo 3: sem dados sincronizados
	perf.EXPECT().AggregateByCreativeID(int64(3)).Return(nil, nil)

	offer.EXPECT().GetByID(int64(100)).Return(&domain.Offer{ID: 100}, nil).Times(2)
	bench.EXPECT().GetByCode("ecom_fashion").Return(benchmark, nil).Times(2)

	scores, err := service.ScoreAllCreatives(7)

	assert.NoError(t, err)
	assert.Len(t, scores, 3)

	// Ordenação: pontuáveis por bonus decrescente, sem dados ao final
	assert.Equal(t, int64(2), scores[0].CreativeID)
	assert.Equal(t, MaxBonus, scores[0].TotalBonus)
	assert.Equal(t, domain.RatingExcellent, scores[0].Rating)

	assert.Equal(t, int64(1), scores[1].CreativeID)
	assert.Equal(t, domain.RatingPoor, scores[1].Rating)
	assert.Equal(t, 3.0, scores[1].Metrics.CPC)

	assert.Equal(t, int64(3), scores[2].CreativeID)
	assert.False(t, scores[2].MinClicksReached)
	assert.Empty(t, scores[2].Rating)
}

func TestService_ScoreAllCreatives_SkipsFailures(t *testing.T) {
	service, perf, creative, _, _ := newTestService(t)

	creative.EXPECT().ListByUser(7).Return([]*domain.Creative{
		{ID: 1, OfferID: 100},
		{ID: 2, OfferID: 100},
	}, nil)

	perf.EXPECT().AggregateByCreativeID(int64(1)).Return(nil, assert.AnError)
	perf.EXPECT().AggregateByCreativeID(int64(2)).Return(nil, nil)

	scores, err := service.ScoreAllCreatives(7)

	assert.NoError(t, err)
	assert.Len(t, scores, 1)
	assert.Equal(t, int64(2), scores[0].CreativeID)
}

func TestService_OfferLaunchScore(t *testing.T) {
	benchmark := &domain.IndustryBenchmark{
		IndustryCode:      "ecom_fashion",
		AvgCTR:            0.02,
		AvgCPC:            1.00,
		AvgConversionRate: 0.02,
	}

	t.Run("Oferta sem criativos retorna nil sem erro", func(t *testing.T) {
		service, _, creative, _, _ := newTestService(t)

		creative.EXPECT().ListByOffer(int64(100)).Return(nil, nil)

		score, err := service.OfferLaunchScore(100)

		assert.NoError(t, err)
		assert.Nil(t, score)
	})

	t.Run("Segunda chamada dentro do TTL vem do cache", func(t *testing.T) {
		service, perf, creative, offer, bench := newTestService(t)

		creative.EXPECT().ListByOffer(int64(100)).Return([]*domain.Creative{
			{ID: 1, OfferID: 100, Version: 1},
			{ID: 2, OfferID: 100, Version: 2},
		}, nil).Times(2)

		// O cálculo só acontece uma vez: a segunda leitura usa o cache
		perf.EXPECT().AggregateByCreativeID(int64(2)).Return(&domain.PerformanceAggregate{
			CreativeID: 2, Impressions: 20000, Clicks: 1200, Conversions: 60, CostMicros: 480_000_000,
		}, nil)
		creative.EXPECT().GetByID(int64(2)).Return(&domain.Creative{ID: 2, OfferID: 100}, nil)
		offer.EXPECT().GetByID(int64(100)).Return(&domain.Offer{ID: 100}, nil)
		bench.EXPECT().GetByCode("ecom_fashion").Return(benchmark, nil)

		first, err := service.OfferLaunchScore(100)
		assert.NoError(t, err)
		assert.NotNil(t, first)

		second, err := service.OfferLaunchScore(100)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("InvalidateOffer força recálculo", func(t *testing.T) {
		service, perf, creative, offer, bench := newTestService(t)

		creative.EXPECT().ListByOffer(int64(100)).Return([]*domain.Creative{
			{ID: 2, OfferID: 100, Version: 1},
		}, nil).Times(2)

		perf.EXPECT().AggregateByCreativeID(int64(2)).Return(&domain.PerformanceAggregate{
			CreativeID: 2, Impressions: 20000, Clicks: 1200, Conversions: 60, CostMicros: 480_000_000,
		}, nil).Times(2)
		creative.EXPECT().GetByID(int64(2)).Return(&domain.Creative{ID: 2, OfferID: 100}, nil).Times(2)
		offer.EXPECT().GetByID(int64(100)).Return(&domain.Offer{ID: 100}, nil).Times(2)
		bench.EXPECT().GetByCode("ecom_fashion").Return(benchmark, nil).Times(2)

		_, err := service.OfferLaunchScore(100)
		assert.NoError(t, err)

		service.InvalidateOffer(100)

		_, err = service.OfferLaunchScore(100)
		assert.NoError(t, err)
	})
}

func stringPtr(s string) *string {
	return &s
}
