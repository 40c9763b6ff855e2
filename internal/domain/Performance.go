package domain

import (
	"time"
)

// PerformanceEntry representa uma linha de métricas sincronizada do Google Ads
// para um criativo em uma data. Linhas são substituídas (upsert) por execuções
// posteriores do sync para a mesma data, nunca mutadas parcialmente.
type PerformanceEntry struct {
	ID          int64     `json:"id"`
	CreativeID  int64     `json:"creative_id"`
	OfferID     int64     `json:"offer_id"`
	UserID      int       `json:"user_id"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Conversions float64   `json:"conversions"`
	CostMicros  int64     `json:"cost_micros"`
	SyncDate    time.Time `json:"sync_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PerformanceAggregate é o acumulado de métricas de um criativo em todas as
// datas sincronizadas, base de cálculo do bonus score.
type PerformanceAggregate struct {
	CreativeID  int64   `json:"creative_id"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions float64 `json:"conversions"`
	CostMicros  int64   `json:"cost_micros"`
}

// CTR retorna a taxa de cliques do acumulado. Zero impressões resulta em zero.
func (a PerformanceAggregate) CTR() float64 {
	if a.Impressions <= 0 {
		return 0
	}
	return float64(a.Clicks) / float64(a.Impressions)
}

// CPC retorna o custo médio por clique em unidades de moeda. Zero cliques resulta em zero.
func (a PerformanceAggregate) CPC() float64 {
	if a.Clicks <= 0 {
		return 0
	}
	return a.Cost() / float64(a.Clicks)
}

// ConversionRate retorna a taxa de conversão. Zero cliques resulta em zero.
func (a PerformanceAggregate) ConversionRate() float64 {
	if a.Clicks <= 0 {
		return 0
	}
	return a.Conversions / float64(a.Clicks)
}

// Cost converte o custo em micros para unidades de moeda.
func (a PerformanceAggregate) Cost() float64 {
	return float64(a.CostMicros) / 1e6
}
