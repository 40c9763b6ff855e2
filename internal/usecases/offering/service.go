package offering

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/infrastructure/repository"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/internal/usecases/resolving"
	"github.com/vfg2006/autoads-api/internal/usecases/scoring"
	"github.com/vfg2006/autoads-api/pkg/apiErrors"
)

type OfferService interface {
	CreateOffer(userID int, request *domain.CreateOfferRequest) (*domain.Offer, error)
	UpdateOffer(request *domain.UpdateOfferRequest) (*domain.Offer, error)
	GetOffer(offerID int64) (*domain.Offer, error)
	ListOffers(userID int) ([]*domain.Offer, error)
	DeleteOffer(offerID int64) error
	ScrapeOffer(ctx context.Context, offerID int64) (*domain.Offer, error)
}

type Service struct {
	offerRepository repository.OfferRepository
	resolver        resolving.Resolver
	cfg             *config.Config
}

func NewService(
	offerRepository repository.OfferRepository,
	resolver resolving.Resolver,
	cfg *config.Config,
) OfferService {
	return &Service{
		offerRepository: offerRepository,
		resolver:        resolver,
		cfg:             cfg,
	}
}

func (s *Service) CreateOffer(userID int, request *domain.CreateOfferRequest) (*domain.Offer, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, NewOfferError(ErrOfferNameRequired, apiErrors.ErrInvalidRequest, "O nome da oferta é obrigatório")
	}
	if err := validateAffiliateLink(request.AffiliateLink); err != nil {
		return nil, NewOfferError(ErrAffiliateLinkInvalid, apiErrors.ErrInvalidRequest, err.Error())
	}

	country := strings.ToUpper(strings.TrimSpace(request.TargetCountry))
	if country == "" {
		country = "US"
	}

	offer := &domain.Offer{
		UserID:        userID,
		Name:          strings.TrimSpace(request.Name),
		AffiliateLink: strings.TrimSpace(request.AffiliateLink),
		TargetCountry: country,
		ScrapeStatus:  domain.OfferScrapePending,
	}

	created, err := s.offerRepository.Create(offer)
	if err != nil {
		return nil, NewOfferError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar oferta no banco de dados")
	}

	return created, nil
}

func (s *Service) UpdateOffer(request *domain.UpdateOfferRequest) (*domain.Offer, error) {
	offer, err := s.offerRepository.GetByID(request.ID)
	if err != nil {
		return nil, NewOfferErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao buscar oferta no banco de dados")
	}
	if offer == nil {
		return nil, NewOfferErrorWithID(ErrOfferNotFound, apiErrors.ErrResourceNotFound, request.ID, "Oferta não encontrada")
	}

	if request.Name != nil {
		if strings.TrimSpace(*request.Name) == "" {
			return nil, NewOfferError(ErrOfferNameRequired, apiErrors.ErrInvalidRequest, "O nome da oferta é obrigatório")
		}
		offer.Name = strings.TrimSpace(*request.Name)
	}

	if request.AffiliateLink != nil {
		if err := validateAffiliateLink(*request.AffiliateLink); err != nil {
			return nil, NewOfferError(ErrAffiliateLinkInvalid, apiErrors.ErrInvalidRequest, err.Error())
		}
		if offer.AffiliateLink != strings.TrimSpace(*request.AffiliateLink) {
			// Link novo invalida o resultado de scraping anterior
			offer.AffiliateLink = strings.TrimSpace(*request.AffiliateLink)
			offer.ScrapeStatus = domain.OfferScrapePending
			offer.FinalURL = nil
			offer.FinalURLSuffix = nil
			offer.ScrapeMethod = nil
			offer.ScrapeProxyUsed = nil
			offer.ScrapeStatusCode = nil
			offer.ScrapeError = nil
		}
	}

	if request.TargetCountry != nil {
		offer.TargetCountry = strings.ToUpper(strings.TrimSpace(*request.TargetCountry))
	}

	if request.IndustryCode != nil {
		offer.IndustryCode = request.IndustryCode
	}

	if err := s.offerRepository.Update(offer); err != nil {
		return nil, NewOfferErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao atualizar oferta no banco de dados")
	}

	return offer, nil
}

func (s *Service) GetOffer(offerID int64) (*domain.Offer, error) {
	offer, err := s.offerRepository.GetByID(offerID)
	if err != nil {
		return nil, NewOfferErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, offerID, "Falha ao buscar oferta no banco de dados")
	}
	if offer == nil {
		return nil, NewOfferErrorWithID(ErrOfferNotFound, apiErrors.ErrResourceNotFound, offerID, "Oferta não encontrada")
	}
	return offer, nil
}

func (s *Service) ListOffers(userID int) ([]*domain.Offer, error) {
	offers, err := s.offerRepository.ListByUser(userID)
	if err != nil {
		return nil, NewOfferError(ErrFetchOffers, apiErrors.ErrDatabaseOperation, "Falha ao listar ofertas no banco de dados")
	}
	return offers, nil
}

func (s *Service) DeleteOffer(offerID int64) error {
	offer, err := s.offerRepository.GetByID(offerID)
	if err != nil {
		return NewOfferErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, offerID, "Falha ao buscar oferta no banco de dados")
	}
	if offer == nil {
		return NewOfferErrorWithID(ErrOfferNotFound, apiErrors.ErrResourceNotFound, offerID, "Oferta não encontrada")
	}

	if err := s.offerRepository.Delete(offerID); err != nil {
		return NewOfferErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, offerID, "Falha ao remover oferta")
	}
	return nil
}

// ScrapeOffer resolve o link de afiliado da oferta até a URL final e
// persiste o resultado, inclusive em caso de falha: o status, o método e o
// erro ficam auditáveis na própria oferta. A classificação de indústria é
// recalculada quando a oferta ainda não tem código definido manualmente.
func (s *Service) ScrapeOffer(ctx context.Context, offerID int64) (*domain.Offer, error) {
	offer, err := s.GetOffer(offerID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"offer_id": offer.ID,
		"link":     offer.AffiliateLink,
	}).Info("offers: starting affiliate link resolution")

	result := s.resolver.Resolve(ctx, offer.AffiliateLink, offer.TargetCountry)

	method := string(result.Method)
	offer.ScrapeMethod = &method
	if result.ProxyUsed != "" {
		offer.ScrapeProxyUsed = &result.ProxyUsed
	}
	if result.StatusCode != 0 {
		statusCode := result.StatusCode
		offer.ScrapeStatusCode = &statusCode
	}

	if result.Failed() {
		offer.ScrapeStatus = domain.OfferScrapeFailed
		errMsg := result.Error
		offer.ScrapeError = &errMsg

		if err := s.offerRepository.UpdateScrapeResult(offer); err != nil {
			return nil, NewOfferErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, offerID, "Falha ao persistir resultado do scraping")
		}

		return offer, NewOfferErrorWithID(ErrResolutionFailed, apiErrors.ErrResolutionFailed, offerID, result.Error)
	}

	offer.ScrapeStatus = domain.OfferScrapeCompleted
	offer.ScrapeError = nil
	offer.FinalURL = &result.FinalURL
	if result.FinalURLSuffix != "" {
		offer.FinalURLSuffix = &result.FinalURLSuffix
	}
	if result.PageTitle != "" {
		offer.PageTitle = &result.PageTitle
	}
	if result.PageDescription != "" {
		offer.Description = &result.PageDescription
	}

	if brand := brandFromURL(result.FinalURL); brand != "" && offer.Brand == nil {
		offer.Brand = &brand
	}

	if offer.IndustryCode == nil {
		s.classifyOffer(offer)
	}

	if err := s.offerRepository.UpdateScrapeResult(offer); err != nil {
		return nil, NewOfferErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, offerID, "Falha ao persistir resultado do scraping")
	}

	logrus.WithFields(logrus.Fields{
		"offer_id":  offer.ID,
		"final_url": result.FinalURL,
		"method":    result.Method,
		"attempts":  result.Attempts,
	}).Info("offers: affiliate link resolved")

	return offer, nil
}

func (s *Service) classifyOffer(offer *domain.Offer) {
	texts := []string{offer.Name}
	if offer.Brand != nil {
		texts = append(texts, *offer.Brand)
	}
	if offer.PageTitle != nil {
		texts = append(texts, *offer.PageTitle)
	}
	if offer.Description != nil {
		texts = append(texts, *offer.Description)
	}

	classification := scoring.ClassifyIndustry(s.cfg.Scoring.DefaultIndustryCode, texts...)
	if classification == nil {
		return
	}

	offer.IndustryCode = &classification.IndustryCode
	logrus.WithFields(logrus.Fields{
		"offer_id":      offer.ID,
		"industry_code": classification.IndustryCode,
		"confidence":    classification.Confidence,
	}).Info("offers: industry classified")
}

func validateAffiliateLink(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ErrAffiliateLinkInvalid
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ErrAffiliateLinkInvalid
	}
	return nil
}

// brandFromURL deriva um palpite de marca do host da URL final
// (www.nike.com -> nike). Serve apenas como valor inicial editável.
func brandFromURL(finalURL string) string {
	parsed, err := url.Parse(finalURL)
	if err != nil || parsed.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	parts := strings.Split(host, ".")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	return parts[0]
}
