package domain

import "fmt"

// IndustryBenchmark contém os valores de referência de CTR, CPC e taxa de
// conversão esperados para uma categoria de produto. A indireção por
// industry_code existe porque as expectativas variam 5-10x entre categorias.
type IndustryBenchmark struct {
	ID                int64   `json:"id"`
	IndustryL1        string  `json:"industry_l1"`
	IndustryL2        string  `json:"industry_l2"`
	IndustryCode      string  `json:"industry_code"`
	AvgCTR            float64 `json:"avg_ctr"`
	AvgCPC            float64 `json:"avg_cpc"`
	AvgConversionRate float64 `json:"avg_conversion_rate"`
}

// Label retorna o rótulo hierárquico exibido no dashboard.
func (b IndustryBenchmark) Label() string {
	return fmt.Sprintf("%s > %s", b.IndustryL1, b.IndustryL2)
}

// IndustryClassification é o resultado da classificação automática de uma oferta.
type IndustryClassification struct {
	IndustryCode string            `json:"industry_code"`
	Confidence   float64           `json:"confidence"`
	Benchmark    IndustryBenchmark `json:"benchmark"`
}
