package offering

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de ofertas
var (
	// Erros de validação
	ErrOfferIDRequired      = errors.New("offer ID is required")
	ErrOfferNotFound        = errors.New("offer not found")
	ErrOfferNameRequired    = errors.New("offer name is required")
	ErrAffiliateLinkInvalid = errors.New("affiliate link is invalid")

	// Erros de resolução
	ErrResolutionFailed = errors.New("error resolving affiliate link")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrFetchOffers       = errors.New("error fetching offers from database")
)

// OfferError é um erro com contexto adicional para ofertas
type OfferError struct {
	Err     error
	Code    string
	OfferID int64
	Details string
}

func (e *OfferError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *OfferError) Unwrap() error {
	return e.Err
}

func NewOfferError(err error, code string, details string) *OfferError {
	return &OfferError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewOfferErrorWithID(err error, code string, offerID int64, details string) *OfferError {
	return &OfferError{
		Err:     err,
		Code:    code,
		OfferID: offerID,
		Details: details,
	}
}
