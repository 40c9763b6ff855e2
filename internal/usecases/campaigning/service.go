package campaigning

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/infrastructure/repository"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/pkg/apiErrors"
)

// Limites de ativos do Google Ads para responsive search ads
const (
	maxHeadlines      = 15
	maxHeadlineLen    = 30
	maxDescriptions   = 4
	maxDescriptionLen = 90
	minHeadlines      = 3
	minDescriptions   = 2
)

type CampaignService interface {
	CreateCampaign(userID int, request *domain.CreateCampaignRequest) (*domain.Campaign, error)
	UpdateCampaign(request *domain.UpdateCampaignRequest) (*domain.Campaign, error)
	GetCampaign(campaignID int64) (*domain.Campaign, error)
	ListCampaigns(userID int) ([]*domain.Campaign, error)
	ListCampaignsByOffer(offerID int64) ([]*domain.Campaign, error)
	DeleteCampaign(campaignID int64) error

	CreateCreative(userID int, request *domain.CreateCreativeRequest) (*domain.Creative, error)
	GetCreative(creativeID int64) (*domain.Creative, error)
	ListCreativesByOffer(offerID int64) ([]*domain.Creative, error)
	DeleteCreative(creativeID int64) error

	GenerateAdCopy(ctx context.Context, offerID int64) (*domain.AdCopySuggestion, error)
}

type Service struct {
	campaignRepository repository.CampaignRepository
	creativeRepository repository.CreativeRepository
	offerRepository    repository.OfferRepository
	copywriter         Copywriter
	cfg                *config.Config
}

func NewService(
	campaignRepository repository.CampaignRepository,
	creativeRepository repository.CreativeRepository,
	offerRepository repository.OfferRepository,
	copywriter Copywriter,
	cfg *config.Config,
) CampaignService {
	return &Service{
		campaignRepository: campaignRepository,
		creativeRepository: creativeRepository,
		offerRepository:    offerRepository,
		copywriter:         copywriter,
		cfg:                cfg,
	}
}

func (s *Service) CreateCampaign(userID int, request *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, NewCampaignError(ErrCampaignNameRequired, apiErrors.ErrInvalidRequest, "O nome da campanha é obrigatório")
	}

	offer, err := s.offerRepository.GetByID(request.OfferID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar oferta da campanha")
	}
	if offer == nil {
		return nil, NewCampaignError(ErrCampaignNotFound, apiErrors.ErrResourceNotFound, "Oferta da campanha não encontrada")
	}

	campaign := &domain.Campaign{
		UserID:       userID,
		OfferID:      request.OfferID,
		Name:         strings.TrimSpace(request.Name),
		Status:       domain.CampaignStatusDraft,
		BudgetAmount: request.BudgetAmount,
	}

	created, err := s.campaignRepository.Create(campaign)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar campanha no banco de dados")
	}

	return created, nil
}

func (s *Service) UpdateCampaign(request *domain.UpdateCampaignRequest) (*domain.Campaign, error) {
	campaign, err := s.campaignRepository.GetByID(request.ID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar campanha no banco de dados")
	}
	if campaign == nil {
		return nil, NewCampaignError(ErrCampaignNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if request.Name != nil {
		if strings.TrimSpace(*request.Name) == "" {
			return nil, NewCampaignError(ErrCampaignNameRequired, apiErrors.ErrInvalidRequest, "O nome da campanha é obrigatório")
		}
		campaign.Name = strings.TrimSpace(*request.Name)
	}

	if request.Status != nil {
		if !validStatusTransition(campaign.Status, *request.Status) {
			return nil, NewCampaignError(ErrInvalidStatusChange, apiErrors.ErrInvalidRequest,
				"Transição de status não permitida: "+string(campaign.Status)+" -> "+string(*request.Status))
		}
		campaign.Status = *request.Status
	}

	if request.BudgetAmount != nil {
		campaign.BudgetAmount = *request.BudgetAmount
	}

	if request.CurrentCreativeID != nil {
		creative, err := s.creativeRepository.GetByID(*request.CurrentCreativeID)
		if err != nil {
			return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar criativo")
		}
		if creative == nil || creative.OfferID != campaign.OfferID {
			return nil, NewCampaignError(ErrCreativeNotFound, apiErrors.ErrResourceNotFound, "Criativo não pertence à oferta da campanha")
		}
		campaign.CurrentCreativeID = request.CurrentCreativeID
	}

	if err := s.campaignRepository.Update(campaign); err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar campanha")
	}

	return campaign, nil
}

// validStatusTransition valida o ciclo de vida da campanha: draft ativa,
// active pausa ou remove, paused reativa ou remove, removed é terminal.
func validStatusTransition(from, to domain.CampaignStatus) bool {
	if from == to {
		return true
	}

	switch from {
	case domain.CampaignStatusDraft:
		return to == domain.CampaignStatusActive || to == domain.CampaignStatusRemoved
	case domain.CampaignStatusActive:
		return to == domain.CampaignStatusPaused || to == domain.CampaignStatusRemoved
	case domain.CampaignStatusPaused:
		return to == domain.CampaignStatusActive || to == domain.CampaignStatusRemoved
	default:
		return false
	}
}

func (s *Service) GetCampaign(campaignID int64) (*domain.Campaign, error) {
	campaign, err := s.campaignRepository.GetByID(campaignID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar campanha no banco de dados")
	}
	if campaign == nil {
		return nil, NewCampaignError(ErrCampaignNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}
	return campaign, nil
}

func (s *Service) ListCampaigns(userID int) ([]*domain.Campaign, error) {
	campaigns, err := s.campaignRepository.ListByUser(userID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar campanhas")
	}
	return campaigns, nil
}

func (s *Service) ListCampaignsByOffer(offerID int64) ([]*domain.Campaign, error) {
	campaigns, err := s.campaignRepository.ListByOffer(offerID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar campanhas da oferta")
	}
	return campaigns, nil
}

func (s *Service) DeleteCampaign(campaignID int64) error {
	campaign, err := s.campaignRepository.GetByID(campaignID)
	if err != nil {
		return NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar campanha no banco de dados")
	}
	if campaign == nil {
		return NewCampaignError(ErrCampaignNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if err := s.campaignRepository.Delete(campaignID); err != nil {
		return NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover campanha")
	}
	return nil
}

// CreateCreative valida os limites de ativos do Google Ads e grava uma nova
// versão de criativo para a oferta. A versão é atribuída pelo repositório.
func (s *Service) CreateCreative(userID int, request *domain.CreateCreativeRequest) (*domain.Creative, error) {
	headlines := sanitizeAssets(request.Headlines, maxHeadlines, maxHeadlineLen)
	descriptions := sanitizeAssets(request.Descriptions, maxDescriptions, maxDescriptionLen)

	if len(headlines) < minHeadlines || len(descriptions) < minDescriptions {
		return nil, NewCampaignError(ErrCreativeIncomplete, apiErrors.ErrInvalidRequest,
			"Um criativo precisa de pelo menos 3 títulos e 2 descrições válidos")
	}

	offer, err := s.offerRepository.GetByID(request.OfferID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar oferta do criativo")
	}
	if offer == nil {
		return nil, NewCampaignError(ErrCampaignNotFound, apiErrors.ErrResourceNotFound, "Oferta do criativo não encontrada")
	}

	creative := &domain.Creative{
		UserID:       userID,
		OfferID:      request.OfferID,
		Headlines:    headlines,
		Descriptions: descriptions,
	}

	created, err := s.creativeRepository.Create(creative)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar criativo no banco de dados")
	}

	return created, nil
}

func (s *Service) GetCreative(creativeID int64) (*domain.Creative, error) {
	creative, err := s.creativeRepository.GetByID(creativeID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar criativo no banco de dados")
	}
	if creative == nil {
		return nil, NewCampaignError(ErrCreativeNotFound, apiErrors.ErrResourceNotFound, "Criativo não encontrado")
	}
	return creative, nil
}

func (s *Service) ListCreativesByOffer(offerID int64) ([]*domain.Creative, error) {
	creatives, err := s.creativeRepository.ListByOffer(offerID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar criativos da oferta")
	}
	return creatives, nil
}

func (s *Service) DeleteCreative(creativeID int64) error {
	creative, err := s.creativeRepository.GetByID(creativeID)
	if err != nil {
		return NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar criativo no banco de dados")
	}
	if creative == nil {
		return NewCampaignError(ErrCreativeNotFound, apiErrors.ErrResourceNotFound, "Criativo não encontrado")
	}

	if err := s.creativeRepository.Delete(creativeID); err != nil {
		return NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover criativo")
	}
	return nil
}

// GenerateAdCopy pede ao modelo textos de anúncio para a oferta e devolve a
// sugestão já saneada nos limites do Google Ads. A sugestão não é
// persistida: o usuário revisa e salva como criativo.
func (s *Service) GenerateAdCopy(ctx context.Context, offerID int64) (*domain.AdCopySuggestion, error) {
	offer, err := s.offerRepository.GetByID(offerID)
	if err != nil {
		return nil, NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar oferta")
	}
	if offer == nil {
		return nil, NewCampaignError(ErrCampaignNotFound, apiErrors.ErrResourceNotFound, "Oferta não encontrada")
	}

	suggestion, err := s.copywriter.GenerateAdCopy(ctx, offer)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"offer_id": offerID,
			"error":    err.Error(),
		}).Error("campaigns: ad copy generation failed")
		return nil, NewCampaignError(ErrAdCopyGeneration, apiErrors.ErrExternalService, err.Error())
	}

	suggestion.Headlines = sanitizeAssets(suggestion.Headlines, maxHeadlines, maxHeadlineLen)
	suggestion.Descriptions = sanitizeAssets(suggestion.Descriptions, maxDescriptions, maxDescriptionLen)

	if len(suggestion.Headlines) < minHeadlines || len(suggestion.Descriptions) < minDescriptions {
		return nil, NewCampaignError(ErrAdCopyGeneration, apiErrors.ErrExternalService,
			"O modelo não gerou ativos suficientes dentro dos limites")
	}

	return suggestion, nil
}

// sanitizeAssets remove entradas vazias e acima do limite de caracteres,
// deduplica e corta no máximo permitido.
func sanitizeAssets(assets []string, maxCount, maxLen int) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, maxCount)

	for _, asset := range assets {
		asset = strings.TrimSpace(asset)
		if asset == "" || len(asset) > maxLen {
			continue
		}
		if seen[strings.ToLower(asset)] {
			continue
		}
		seen[strings.ToLower(asset)] = true

		result = append(result, asset)
		if len(result) == maxCount {
			break
		}
	}

	return result
}
