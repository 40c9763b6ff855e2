package domain

// DailyMetrics é a linha de métricas retornada pela API do Google Ads para
// um anúncio em uma data (search stream, segments.date).
type DailyMetrics struct {
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions float64 `json:"conversions"`
	CostMicros  int64   `json:"costMicros"`
}

// SearchStreamRow espelha o formato de linha do endpoint searchStream.
type SearchStreamRow struct {
	Metrics struct {
		Impressions string  `json:"impressions"`
		Clicks      string  `json:"clicks"`
		Conversions float64 `json:"conversions"`
		CostMicros  string  `json:"costMicros"`
	} `json:"metrics"`
	Segments struct {
		Date string `json:"date"`
	} `json:"segments"`
}

// SearchStreamResponse é um bloco da resposta do searchStream.
type SearchStreamResponse struct {
	Results []SearchStreamRow `json:"results"`
}

// APIError é o envelope de erro da API do Google Ads.
type APIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
