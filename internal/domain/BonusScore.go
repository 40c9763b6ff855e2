package domain

// CreativeRating é a classificação qualitativa derivada do bonus score.
type CreativeRating string

const (
	RatingExcellent CreativeRating = "excellent"
	RatingGood      CreativeRating = "good"
	RatingAverage   CreativeRating = "average"
	RatingPoor      CreativeRating = "poor"
)

// FactorScore é a contribuição de um fator individual para o bonus score.
type FactorScore struct {
	Score      float64 `json:"score"`
	Value      float64 `json:"value"`
	Benchmark  float64 `json:"benchmark"`
	Comparison string  `json:"comparison"`
}

// BonusScoreBreakdown detalha a contribuição de cada fator.
type BonusScoreBreakdown struct {
	Clicks      FactorScore `json:"clicks"`
	CTR         FactorScore `json:"ctr"`
	CPC         FactorScore `json:"cpc"`
	Conversions FactorScore `json:"conversions"`
}

// BonusScore é o resultado do cálculo de pontuação de um criativo.
// Só é significativo quando MinClicksReached é verdadeiro; abaixo do piso
// de cliques o TotalBonus é sempre zero ("dados insuficientes").
type BonusScore struct {
	CreativeID       int64               `json:"creative_id"`
	TotalBonus       float64             `json:"total_bonus"`
	Breakdown        BonusScoreBreakdown `json:"breakdown"`
	MinClicksReached bool                `json:"min_clicks_reached"`
	IndustryCode     string              `json:"industry_code"`
	IndustryLabel    string              `json:"industry_label"`
}

// CreativeScore combina a identidade de um criativo com sua classificação.
// Rating fica vazio quando o criativo não atingiu o piso mínimo de cliques.
type CreativeScore struct {
	CreativeID       int64          `json:"creative_id"`
	OfferID          int64          `json:"offer_id"`
	TotalBonus       float64        `json:"total_bonus"`
	Rating           CreativeRating `json:"rating,omitempty"`
	MinClicksReached bool           `json:"min_clicks_reached"`
	Metrics          ScoreMetrics   `json:"metrics"`
}

// ScoreMetrics são as métricas agregadas exibidas junto ao score.
type ScoreMetrics struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	Conversions float64 `json:"conversions"`
	Cost        float64 `json:"cost"`
}
