package domain

import (
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft   CampaignStatus = "draft"
	CampaignStatusActive  CampaignStatus = "active"
	CampaignStatusPaused  CampaignStatus = "paused"
	CampaignStatusRemoved CampaignStatus = "removed"
)

// Campaign representa uma campanha do Google Ads vinculada a uma oferta
type Campaign struct {
	ID                int64          `json:"id"`
	UserID            int            `json:"user_id"`
	OfferID           int64          `json:"offer_id"`
	Name              string         `json:"name"`
	Status            CampaignStatus `json:"status"`
	BudgetAmount      float64        `json:"budget_amount"`
	ExternalID        *string        `json:"external_id"`
	CurrentCreativeID *int64         `json:"current_creative_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type CreateCampaignRequest struct {
	OfferID      int64   `json:"offer_id"`
	Name         string  `json:"name"`
	BudgetAmount float64 `json:"budget_amount"`
}

type UpdateCampaignRequest struct {
	ID                int64           `json:"id"`
	Name              *string         `json:"name"`
	Status            *CampaignStatus `json:"status"`
	BudgetAmount      *float64        `json:"budget_amount"`
	CurrentCreativeID *int64          `json:"current_creative_id"`
}
