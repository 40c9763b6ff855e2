package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/internal/usecases/offering"
	"github.com/vfg2006/autoads-api/internal/usecases/scoring"
	"github.com/vfg2006/autoads-api/pkg/apiErrors"
	"github.com/vfg2006/autoads-api/pkg/middleware"
)

// CreateOffer cria uma nova oferta para o usuário logado
func CreateOffer(service offering.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateOffer")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateOfferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		offer, err := service.CreateOffer(userClaims.UserID, &req)
		if err != nil {
			handleOfferError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(offer)
	}
}

// ListOffers lista as ofertas do usuário logado
func ListOffers(service offering.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		offers, err := service.ListOffers(userClaims.UserID)
		if err != nil {
			handleOfferError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(offers)
	}
}

// GetOffer retorna uma oferta por ID
func GetOffer(service offering.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, ok := offerIDFromRequest(w, r)
		if !ok {
			return
		}

		offer, err := service.GetOffer(offerID)
		if err != nil {
			handleOfferError(w, err)
			return
		}

		if !ensureOfferOwnership(w, r, offer) {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(offer)
	}
}

// UpdateOffer atualiza campos de uma oferta
func UpdateOffer(service offering.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateOffer")

		offerID, ok := offerIDFromRequest(w, r)
		if !ok {
			return
		}

		current, err := service.GetOffer(offerID)
		if err != nil {
			handleOfferError(w, err)
			return
		}
		if !ensureOfferOwnership(w, r, current) {
			return
		}

		var req domain.UpdateOfferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = offerID

		offer, err := service.UpdateOffer(&req)
		if err != nil {
			handleOfferError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(offer)
	}
}

// DeleteOffer remove uma oferta
func DeleteOffer(service offering.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteOffer")

		offerID, ok := offerIDFromRequest(w, r)
		if !ok {
			return
		}

		current, err := service.GetOffer(offerID)
		if err != nil {
			handleOfferError(w, err)
			return
		}
		if !ensureOfferOwnership(w, r, current) {
			return
		}

		if err := service.DeleteOffer(offerID); err != nil {
			handleOfferError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ScrapeOffer dispara a resolução do link de afiliado da oferta
func ScrapeOffer(service offering.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ScrapeOffer")

		offerID, ok := offerIDFromRequest(w, r)
		if !ok {
			return
		}

		current, err := service.GetOffer(offerID)
		if err != nil {
			handleOfferError(w, err)
			return
		}
		if !ensureOfferOwnership(w, r, current) {
			return
		}

		offer, err := service.ScrapeOffer(r.Context(), offerID)
		if err != nil {
			// Mesmo em falha a oferta carrega o diagnóstico do scraping
			var offerErr *offering.OfferError
			if errors.As(err, &offerErr) && errors.Is(err, offering.ErrResolutionFailed) && offer != nil {
				apiErrors.WriteError(w, offerErr.Code, offerErr.Error(), map[string]any{
					"offer": offer,
				})
				return
			}
			handleOfferError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(offer)
	}
}

// GetOfferLaunchScore retorna o bonus score do criativo corrente da oferta
func GetOfferLaunchScore(offerService offering.OfferService, scorer scoring.Scorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, ok := offerIDFromRequest(w, r)
		if !ok {
			return
		}

		offer, err := offerService.GetOffer(offerID)
		if err != nil {
			handleOfferError(w, err)
			return
		}
		if !ensureOfferOwnership(w, r, offer) {
			return
		}

		score, err := scorer.OfferLaunchScore(offerID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular launch score", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if score == nil {
			// Oferta sem criativo ou sem dados de performance
			json.NewEncoder(w).Encode(map[string]any{
				"offer_id":  offerID,
				"available": false,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"offer_id":  offerID,
			"available": true,
			"score":     score,
		})
	}
}

// offerIDFromRequest extrai e valida o parâmetro :id da URL
func offerIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da oferta não fornecido", nil)
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da oferta inválido", nil)
		return 0, false
	}

	return id, true
}

// ensureOfferOwnership garante que a oferta pertence ao usuário logado
// (administradores têm acesso a todas)
func ensureOfferOwnership(w http.ResponseWriter, r *http.Request, offer *domain.Offer) bool {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return false
	}

	if offer.UserID != userClaims.UserID && userClaims.UserRoleID != 1 {
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem acesso a esta oferta", nil)
		return false
	}

	return true
}

// handleOfferError converte erros do serviço de ofertas em resposta HTTP
func handleOfferError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var offerErr *offering.OfferError
	if errors.As(err, &offerErr) {
		apiErrors.WriteError(w, offerErr.Code, offerErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar oferta", nil)
}
