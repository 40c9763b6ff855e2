package scoring

import (
	"github.com/vfg2006/autoads-api/internal/domain"
)

// calculateBonusScore aplica os quatro fatores sobre o agregado de
// performance. Cada fator vale de 0 a 5 pontos; o total fica entre 0 e 20.
// Abaixo do piso de cliques nenhum fator é pontuado.
func calculateBonusScore(agg domain.PerformanceAggregate, benchmark *domain.IndustryBenchmark, minClicks int64) *domain.BonusScore {
	score := &domain.BonusScore{
		IndustryCode:  benchmark.IndustryCode,
		IndustryLabel: benchmark.Label(),
	}

	if agg.Clicks < minClicks {
		score.Breakdown = domain.BonusScoreBreakdown{
			Clicks:      domain.FactorScore{Value: float64(agg.Clicks), Comparison: "below_minimum"},
			CTR:         domain.FactorScore{Value: agg.CTR(), Benchmark: benchmark.AvgCTR, Comparison: "below_minimum"},
			CPC:         domain.FactorScore{Value: agg.CPC(), Benchmark: benchmark.AvgCPC, Comparison: "below_minimum"},
			Conversions: domain.FactorScore{Value: agg.ConversionRate(), Benchmark: benchmark.AvgConversionRate, Comparison: "below_minimum"},
		}
		return score
	}

	score.MinClicksReached = true
	score.Breakdown = domain.BonusScoreBreakdown{
		Clicks:      scoreClicksVolume(agg.Clicks),
		CTR:         scoreHigherIsBetter(agg.CTR(), benchmark.AvgCTR),
		CPC:         scoreLowerIsBetter(agg.CPC(), benchmark.AvgCPC),
		Conversions: scoreHigherIsBetter(agg.ConversionRate(), benchmark.AvgConversionRate),
	}

	total := score.Breakdown.Clicks.Score +
		score.Breakdown.CTR.Score +
		score.Breakdown.CPC.Score +
		score.Breakdown.Conversions.Score

	if total > MaxBonus {
		total = MaxBonus
	}
	if total < 0 {
		total = 0
	}
	score.TotalBonus = total

	return score
}

// scoreClicksVolume pontua o volume absoluto de cliques por faixas fixas.
func scoreClicksVolume(clicks int64) domain.FactorScore {
	factor := domain.FactorScore{Value: float64(clicks), Benchmark: 500}

	switch {
	case clicks >= 1000:
		factor.Score = 5
	case clicks >= 500:
		factor.Score = 4
	case clicks >= 300:
		factor.Score = 3
	case clicks >= 200:
		factor.Score = 2
	default:
		factor.Score = 1
	}

	factor.Comparison = comparisonLabel(factor.Score)
	return factor
}

// scoreHigherIsBetter pontua métricas em que superar o benchmark é bom
// (CTR, taxa de conversão), pela razão valor/benchmark.
func scoreHigherIsBetter(value, benchmark float64) domain.FactorScore {
	factor := domain.FactorScore{Value: value, Benchmark: benchmark}

	if benchmark <= 0 {
		factor.Comparison = "no_benchmark"
		return factor
	}

	ratio := value / benchmark
	switch {
	case ratio >= 1.5:
		factor.Score = 5
	case ratio >= 1.2:
		factor.Score = 4
	case ratio >= 0.9:
		factor.Score = 3
	case ratio >= 0.7:
		factor.Score = 2
	default:
		factor.Score = 1
	}

	factor.Comparison = comparisonLabel(factor.Score)
	return factor
}

// scoreLowerIsBetter pontua métricas em que ficar abaixo do benchmark é bom
// (CPC). Valor zero com cliques pagos é tratado como melhor caso.
func scoreLowerIsBetter(value, benchmark float64) domain.FactorScore {
	factor := domain.FactorScore{Value: value, Benchmark: benchmark}

	if benchmark <= 0 {
		factor.Comparison = "no_benchmark"
		return factor
	}

	ratio := value / benchmark
	switch {
	case ratio <= 0.5:
		factor.Score = 5
	case ratio <= 0.7:
		factor.Score = 4
	case ratio <= 1.0:
		factor.Score = 3
	case ratio <= 1.3:
		factor.Score = 2
	default:
		factor.Score = 1
	}

	factor.Comparison = comparisonLabel(factor.Score)
	return factor
}

func comparisonLabel(score float64) string {
	switch {
	case score >= 5:
		return "excellent"
	case score >= 4:
		return "good"
	case score >= 3:
		return "average"
	case score >= 2:
		return "below_average"
	default:
		return "poor"
	}
}
