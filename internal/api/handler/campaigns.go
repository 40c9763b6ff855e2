package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/internal/usecases/campaigning"
	"github.com/vfg2006/autoads-api/pkg/apiErrors"
	"github.com/vfg2006/autoads-api/pkg/middleware"
)

// CreateCampaign cria uma campanha em rascunho vinculada a uma oferta
func CreateCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCampaign")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		campaign, err := service.CreateCampaign(userClaims.UserID, &req)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(campaign)
	}
}

// ListCampaigns lista as campanhas do usuário logado
func ListCampaigns(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaigns, err := service.ListCampaigns(userClaims.UserID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaigns)
	}
}

// GetCampaign retorna uma campanha por ID
func GetCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID, ok := campaignIDFromRequest(w, r)
		if !ok {
			return
		}

		campaign, err := service.GetCampaign(campaignID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		if !ensureCampaignOwnership(w, r, campaign) {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

// UpdateCampaign atualiza nome, orçamento, status ou criativo corrente
func UpdateCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateCampaign")

		campaignID, ok := campaignIDFromRequest(w, r)
		if !ok {
			return
		}

		current, err := service.GetCampaign(campaignID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}
		if !ensureCampaignOwnership(w, r, current) {
			return
		}

		var req domain.UpdateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = campaignID

		campaign, err := service.UpdateCampaign(&req)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

// DeleteCampaign remove uma campanha
func DeleteCampaign(service campaigning.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteCampaign")

		campaignID, ok := campaignIDFromRequest(w, r)
		if !ok {
			return
		}

		current, err := service.GetCampaign(campaignID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}
		if !ensureCampaignOwnership(w, r, current) {
			return
		}

		if err := service.DeleteCampaign(campaignID); err != nil {
			handleCampaignError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// campaignIDFromRequest extrai e valida o parâmetro :id da URL
func campaignIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da campanha inválido", nil)
		return 0, false
	}

	return id, true
}

func ensureCampaignOwnership(w http.ResponseWriter, r *http.Request, campaign *domain.Campaign) bool {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return false
	}

	if campaign.UserID != userClaims.UserID && userClaims.UserRoleID != 1 {
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem acesso a esta campanha", nil)
		return false
	}

	return true
}

// handleCampaignError converte erros do serviço de campanhas em resposta HTTP
func handleCampaignError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var campaignErr *campaigning.CampaignError
	if errors.As(err, &campaignErr) {
		apiErrors.WriteError(w, campaignErr.Code, campaignErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar campanha", nil)
}
