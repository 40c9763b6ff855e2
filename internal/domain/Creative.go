package domain

import (
	"time"
)

// Creative representa uma variação de anúncio (textos) associada a uma oferta
type Creative struct {
	ID           int64     `json:"id"`
	UserID       int       `json:"user_id"`
	OfferID      int64     `json:"offer_id"`
	Version      int       `json:"version"`
	Headlines    []string  `json:"headlines"`
	Descriptions []string  `json:"descriptions"`
	ExternalID   *string   `json:"external_id"`
	Generated    bool      `json:"generated"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateCreativeRequest struct {
	OfferID      int64    `json:"offer_id"`
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
}

// AdCopySuggestion é o resultado da geração de textos por IA
type AdCopySuggestion struct {
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
}
