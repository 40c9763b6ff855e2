package domain

import (
	"time"
)

type OfferScrapeStatus string

const (
	OfferScrapePending   OfferScrapeStatus = "pending"
	OfferScrapeCompleted OfferScrapeStatus = "completed"
	OfferScrapeFailed    OfferScrapeStatus = "failed"
)

// Offer representa uma oferta de afiliado cadastrada por um usuário
type Offer struct {
	ID               int64             `json:"id"`
	UserID           int               `json:"user_id"`
	Name             string            `json:"name"`
	AffiliateLink    string            `json:"affiliate_link"`
	FinalURL         *string           `json:"final_url"`
	FinalURLSuffix   *string           `json:"final_url_suffix"`
	Brand            *string           `json:"brand"`
	TargetCountry    string            `json:"target_country"`
	IndustryCode     *string           `json:"industry_code"`
	PageTitle        *string           `json:"page_title"`
	Description      *string           `json:"description"`
	ScrapeStatus     OfferScrapeStatus `json:"scrape_status"`
	ScrapeMethod     *string           `json:"scrape_method"`
	ScrapeProxyUsed  *string           `json:"scrape_proxy_used"`
	ScrapeStatusCode *int              `json:"scrape_status_code"`
	ScrapeError      *string           `json:"scrape_error"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type CreateOfferRequest struct {
	Name          string `json:"name"`
	AffiliateLink string `json:"affiliate_link"`
	TargetCountry string `json:"target_country"`
}

type UpdateOfferRequest struct {
	ID            int64   `json:"id"`
	Name          *string `json:"name"`
	AffiliateLink *string `json:"affiliate_link"`
	TargetCountry *string `json:"target_country"`
	IndustryCode  *string `json:"industry_code"`
}
