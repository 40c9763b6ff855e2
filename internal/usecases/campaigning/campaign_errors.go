package campaigning

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de campanhas e criativos
var (
	// Erros de validação
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignNameRequired = errors.New("campaign name is required")
	ErrCreativeNotFound     = errors.New("creative not found")
	ErrCreativeIncomplete   = errors.New("creative needs at least 3 headlines and 2 descriptions")
	ErrInvalidStatusChange  = errors.New("invalid campaign status transition")

	// Erros de serviços externos
	ErrAdCopyGeneration = errors.New("error generating ad copy")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// CampaignError é um erro com contexto adicional para campanhas
type CampaignError struct {
	Err     error
	Code    string
	Details string
}

func (e *CampaignError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CampaignError) Unwrap() error {
	return e.Err
}

func NewCampaignError(err error, code string, details string) *CampaignError {
	return &CampaignError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
