package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/autoads-api/internal/domain"
)

func TestCalculateBonusScore(t *testing.T) {
	benchmark := &domain.IndustryBenchmark{
		IndustryL1:        "E-commerce",
		IndustryL2:        "Fashion & Apparel",
		IndustryCode:      "ecom_fashion",
		AvgCTR:            0.02,
		AvgCPC:            1.00,
		AvgConversionRate: 0.02,
	}

	tests := []struct {
		name          string
		agg           domain.PerformanceAggregate
		zeroBenchmark bool
		validate      func(t *testing.T, score *domain.BonusScore)
	}{
		{
			name: "Abaixo do piso de cliques - nenhum fator pontuado",
			agg: domain.PerformanceAggregate{
				CreativeID:  1,
				Impressions: 5000,
				Clicks:      99,
				Conversions: 10,
				CostMicros:  50_000_000,
			},
			validate: func(t *testing.T, score *domain.BonusScore) {
				assert.False(t, score.MinClicksReached)
				assert.Equal(t, 0.0, score.TotalBonus)
				assert.Equal(t, "below_minimum", score.Breakdown.Clicks.Comparison)
				assert.Equal(t, "below_minimum", score.Breakdown.CTR.Comparison)
				assert.Equal(t, 99.0, score.Breakdown.Clicks.Value)
			},
		},
		{
			name: "Exatamente no piso de cliques - fatores pontuados",
			agg: domain.PerformanceAggregate{
				CreativeID:  2,
				Impressions: 5000,
				Clicks:      100,
				Conversions: 2,
				CostMicros:  100_000_000,
			},
			validate: func(t *testing.T, score *domain.BonusScore) {
				assert.True(t, score.MinClicksReached)
				assert.Greater(t, score.TotalBonus, 0.0)
			},
		},
		{
			name: "Desempenho excelente em todos os fatores - bonus no teto",
			agg: domain.PerformanceAggregate{
				CreativeID:  3,
				Impressions: 20000,
				Clicks:      1200,        // >= 1000 -> 5
				Conversions: 60,          // 5% >= 1.5x benchmark -> 5
				CostMicros:  480_000_000, // CPC 0.40 <= 0.5x benchmark -> 5
			},
			validate: func(t *testing.T, score *domain.BonusScore) {
				// CTR 0.06 = 3x benchmark -> 5
				assert.True(t, score.MinClicksReached)
				assert.Equal(t, MaxBonus, score.TotalBonus)
				assert.Equal(t, 5.0, score.Breakdown.Clicks.Score)
				assert.Equal(t, 5.0, score.Breakdown.CTR.Score)
				assert.Equal(t, 5.0, score.Breakdown.CPC.Score)
				assert.Equal(t, 5.0, score.Breakdown.Conversions.Score)
				assert.Equal(t, "excellent", score.Breakdown.CTR.Comparison)
			},
		},
		{
			name: "Desempenho fraco em todos os fatores - piso de 4 pontos",
			agg: domain.PerformanceAggregate{
				CreativeID:  4,
				Impressions: 50000,
				Clicks:      150,         // < 200 -> 1
				Conversions: 1,           // 0.67% < 0.7x benchmark -> 1
				CostMicros:  450_000_000, // CPC 3.00 > 1.3x benchmark -> 1
			},
			validate: func(t *testing.T, score *domain.BonusScore) {
				// CTR 0.003 < 0.7x benchmark -> 1
				assert.True(t, score.MinClicksReached)
				assert.Equal(t, 4.0, score.TotalBonus)
				assert.Equal(t, "poor", score.Breakdown.CPC.Comparison)
			},
		},
		{
			name:          "Benchmark zerado - fatores de razão sem pontuação",
			zeroBenchmark: true,
			agg: domain.PerformanceAggregate{
				CreativeID:  5,
				Impressions: 10000,
				Clicks:      600,
				Conversions: 20,
				CostMicros:  300_000_000,
			},
			validate: func(t *testing.T, score *domain.BonusScore) {
				assert.Equal(t, "no_benchmark", score.Breakdown.CTR.Comparison)
				assert.Equal(t, "no_benchmark", score.Breakdown.CPC.Comparison)
				assert.Equal(t, "no_benchmark", score.Breakdown.Conversions.Comparison)
				assert.Equal(t, 0.0, score.Breakdown.CTR.Score)
				// Apenas o fator de volume de cliques pontua
				assert.Equal(t, 4.0, score.TotalBonus)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm := benchmark
			if tt.zeroBenchmark {
				bm = &domain.IndustryBenchmark{IndustryCode: "ecom_fashion"}
			}

			score := calculateBonusScore(tt.agg, bm, 100)

			assert.NotNil(t, score)
			assert.Equal(t, "ecom_fashion", score.IndustryCode)
			tt.validate(t, score)
		})
	}
}

func TestScoreClicksVolume(t *testing.T) {
	tests := []struct {
		name     string
		clicks   int64
		expected float64
	}{
		{name: "Acima de 1000 cliques", clicks: 1500, expected: 5},
		{name: "Exatamente 1000 cliques", clicks: 1000, expected: 5},
		{name: "Entre 500 e 999 cliques", clicks: 700, expected: 4},
		{name: "Entre 300 e 499 cliques", clicks: 350, expected: 3},
		{name: "Entre 200 e 299 cliques", clicks: 200, expected: 2},
		{name: "Abaixo de 200 cliques", clicks: 120, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := scoreClicksVolume(tt.clicks)
			assert.Equal(t, tt.expected, factor.Score)
			assert.Equal(t, float64(tt.clicks), factor.Value)
		})
	}
}

func TestScoreHigherIsBetter(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		benchmark float64
		expected  float64
	}{
		{name: "Razão 1.5x ou mais", value: 0.030, benchmark: 0.020, expected: 5},
		{name: "Razão entre 1.2x e 1.5x", value: 0.026, benchmark: 0.020, expected: 4},
		{name: "Razão entre 0.9x e 1.2x", value: 0.020, benchmark: 0.020, expected: 3},
		{name: "Razão entre 0.7x e 0.9x", value: 0.016, benchmark: 0.020, expected: 2},
		{name: "Razão abaixo de 0.7x", value: 0.010, benchmark: 0.020, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := scoreHigherIsBetter(tt.value, tt.benchmark)
			assert.Equal(t, tt.expected, factor.Score)
		})
	}
}

func TestScoreLowerIsBetter(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		benchmark float64
		expected  float64
	}{
		{name: "Metade do benchmark ou menos", value: 0.50, benchmark: 1.00, expected: 5},
		{name: "Entre 0.5x e 0.7x", value: 0.65, benchmark: 1.00, expected: 4},
		{name: "Entre 0.7x e 1.0x", value: 0.95, benchmark: 1.00, expected: 3},
		{name: "Entre 1.0x e 1.3x", value: 1.20, benchmark: 1.00, expected: 2},
		{name: "Acima de 1.3x", value: 1.80, benchmark: 1.00, expected: 1},
		{name: "CPC zero com benchmark positivo", value: 0, benchmark: 1.00, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := scoreLowerIsBetter(tt.value, tt.benchmark)
			assert.Equal(t, tt.expected, factor.Score)
		})
	}
}

func TestRatingForBonus(t *testing.T) {
	tests := []struct {
		name     string
		bonus    float64
		expected domain.CreativeRating
	}{
		{name: "16 ou mais é excelente", bonus: 16, expected: domain.RatingExcellent},
		{name: "Entre 12 e 16 é bom", bonus: 13.5, expected: domain.RatingGood},
		{name: "Entre 8 e 12 é mediano", bonus: 8, expected: domain.RatingAverage},
		{name: "Abaixo de 8 é fraco", bonus: 7.9, expected: domain.RatingPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RatingForBonus(tt.bonus))
		})
	}
}
