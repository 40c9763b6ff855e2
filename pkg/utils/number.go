package utils

import "math"

// RoundWithTwoDecimalPlace arredonda valores monetários (CPC, custo) para
// duas casas decimais.
func RoundWithTwoDecimalPlace(f float64) float64 {
	return roundTo(f, 100)
}

// RoundWithFourDecimalPlace arredonda taxas (CTR, taxa de conversão) para
// quatro casas decimais.
func RoundWithFourDecimalPlace(f float64) float64 {
	return roundTo(f, 10000)
}

func roundTo(f float64, factor float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*factor) / factor
}
