package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/internal/usecases/campaigning"
	"github.com/vfg2006/autoads-api/internal/usecases/offering"
	"github.com/vfg2006/autoads-api/internal/usecases/scoring"
	"github.com/vfg2006/autoads-api/pkg/apiErrors"
	"github.com/vfg2006/autoads-api/pkg/middleware"
)

// CreateCreative cria uma nova variação de anúncio para uma oferta
func CreateCreative(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCreative")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateCreativeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		creative, err := service.CreateCreative(userClaims.UserID, &req)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(creative)
	}
}

// GetCreative retorna um criativo por ID
func GetCreative(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creativeID, ok := creativeIDFromRequest(w, r)
		if !ok {
			return
		}

		creative, err := service.GetCreative(creativeID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		if !ensureCreativeOwnership(w, r, creative) {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(creative)
	}
}

// ListOfferCreatives lista os criativos de uma oferta, ordenados por versão
func ListOfferCreatives(offerService offering.OfferService, service campaigning.CampaignService) http.HandlerFunc {
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

		creatives, err := service.ListCreativesByOffer(offerID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(creatives)
	}
}

// DeleteCreative remove um criativo
func DeleteCreative(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteCreative")

		creativeID, ok := creativeIDFromRequest(w, r)
		if !ok {
			return
		}

		creative, err := service.GetCreative(creativeID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}
		if !ensureCreativeOwnership(w, r, creative) {
			return
		}

		if err := service.DeleteCreative(creativeID); err != nil {
			handleCampaignError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GenerateAdCopy gera sugestões de textos de anúncio via IA para uma oferta
func GenerateAdCopy(offerService offering.OfferService, service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateAdCopy")

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

		suggestion, err := service.GenerateAdCopy(r.Context(), offerID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(suggestion)
	}
}

// ListCreativeScores retorna o bonus score de todos os criativos do usuário
func ListCreativeScores(scorer scoring.Scorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListCreativeScores")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		scores, err := scorer.ScoreAllCreatives(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular scores", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scores)
	}
}

// GetCreativeScore retorna o bonus score de um criativo específico
func GetCreativeScore(service campaigning.CampaignService, scorer scoring.Scorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creativeID, ok := creativeIDFromRequest(w, r)
		if !ok {
			return
		}

		creative, err := service.GetCreative(creativeID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}
		if !ensureCreativeOwnership(w, r, creative) {
			return
		}

		score, err := scorer.ComputeBonusScore(creativeID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular score", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if score == nil {
			// Criativo sem dados de performance sincronizados
			json.NewEncoder(w).Encode(map[string]any{
				"creative_id": creativeID,
				"available":   false,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"creative_id": creativeID,
			"available":   true,
			"score":       score,
		})
	}
}

// creativeIDFromRequest extrai e valida o parâmetro :id da URL
func creativeIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do criativo não fornecido", nil)
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do criativo inválido", nil)
		return 0, false
	}

	return id, true
}

func ensureCreativeOwnership(w http.ResponseWriter, r *http.Request, creative *domain.Creative) bool {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return false
	}

	if creative.UserID != userClaims.UserID && userClaims.UserRoleID != 1 {
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem acesso a este criativo", nil)
		return false
	}

	return true
}
