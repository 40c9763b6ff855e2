package offering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/autoads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fakeResolver struct {
	result domain.ResolutionResult
	calls  int
}

func (f *fakeResolver) Resolve(ctx context.Context, rawURL, targetCountry string) domain.ResolutionResult {
	f.calls++
	return f.result
}

func (f *fakeResolver) PoolHealth() []domain.ProxyHealth { return nil }

func (f *fakeResolver) EnableProxy(proxyURL string) error { return nil }

func (f *fakeResolver) DisableProxy(proxyURL string) error { return nil }

func newTestService(t *testing.T, resolver *fakeResolver) (*Service, *mocks.MockOfferRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	offerRepo := mocks.NewMockOfferRepository(ctrl)

	service := &Service{
		offerRepository: offerRepo,
		resolver:        resolver,
		cfg: &config.Config{
			Scoring: config.Scoring{DefaultIndustryCode: "ecom_fashion"},
		},
	}

	return service, offerRepo
}

func TestService_CreateOffer(t *testing.T) {
	tests := []struct {
		name     string
		request  *domain.CreateOfferRequest
		setup    func(offerRepo *mocks.MockOfferRepository)
		validate func(t *testing.T, offer *domain.Offer, err error)
	}{
		{
			name:    "Oferta criada com scraping pendente e país normalizado",
			request: &domain.CreateOfferRequest{Name: "  Travel Pillow  ", AffiliateLink: "https://aff.example.com/go?id=1", TargetCountry: "br"},
			setup: func(offerRepo *mocks.MockOfferRepository) {
				offerRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(o *domain.Offer) (*domain.Offer, error) {
					o.ID = 1
					return o, nil
				})
			},
			validate: func(t *testing.T, offer *domain.Offer, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Travel Pillow", offer.Name)
				assert.Equal(t, "BR", offer.TargetCountry)
				assert.Equal(t, domain.OfferScrapePending, offer.ScrapeStatus)
				assert.Equal(t, 7, offer.UserID)
			},
		},
		{
			name:    "País vazio cai no padrão US",
			request: &domain.CreateOfferRequest{Name: "Travel Pillow", AffiliateLink: "https://aff.example.com/go"},
			setup: func(offerRepo *mocks.MockOfferRepository) {
				offerRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(o *domain.Offer) (*domain.Offer, error) {
					return o, nil
				})
			},
			validate: func(t *testing.T, offer *domain.Offer, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "US", offer.TargetCountry)
			},
		},
		{
			name:    "Nome vazio é rejeitado",
			request: &domain.CreateOfferRequest{Name: "  ", AffiliateLink: "https://aff.example.com/go"},
			setup:   func(offerRepo *mocks.MockOfferRepository) {},
			validate: func(t *testing.T, offer *domain.Offer, err error) {
				assert.Nil(t, offer)
				assert.ErrorIs(t, err, ErrOfferNameRequired)
			},
		},
		{
			name:    "Link de afiliado inválido é rejeitado",
			request: &domain.CreateOfferRequest{Name: "Travel Pillow", AffiliateLink: "not-a-url"},
			setup:   func(offerRepo *mocks.MockOfferRepository) {},
			validate: func(t *testing.T, offer *domain.Offer, err error) {
				assert.Nil(t, offer)
				assert.ErrorIs(t, err, ErrAffiliateLinkInvalid)
			},
		},
		{
			name:    "Link com esquema não http é rejeitado",
			request: &domain.CreateOfferRequest{Name: "Travel Pillow", AffiliateLink: "ftp://aff.example.com/go"},
			setup:   func(offerRepo *mocks.MockOfferRepository) {},
			validate: func(t *testing.T, offer *domain.Offer, err error) {
				assert.Nil(t, offer)
				assert.ErrorIs(t, err, ErrAffiliateLinkInvalid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, offerRepo := newTestService(t, &fakeResolver{})
			tt.setup(offerRepo)

			offer, err := service.CreateOffer(7, tt.request)
			tt.validate(t, offer, err)
		})
	}
}

func TestService_UpdateOffer(t *testing.T) {
	t.Run("Troca de link reseta o resultado de scraping", func(t *testing.T) {
		service, offerRepo := newTestService(t, &fakeResolver{})

		finalURL := "https://store.example.com/product"
		method := "http"
		offerRepo.EXPECT().GetByID(int64(1)).Return(&domain.Offer{
			ID:            1,
			Name:          "Travel Pillow",
			AffiliateLink: "https://aff.example.com/old",
			ScrapeStatus:  domain.OfferScrapeCompleted,
			FinalURL:      &finalURL,
			ScrapeMethod:  &method,
		}, nil)
		offerRepo.EXPECT().Update(gomock.Any()).Return(nil)

		newLink := "https://aff.example.com/new"
		updated, err := service.UpdateOffer(&domain.UpdateOfferRequest{ID: 1, AffiliateLink: &newLink})

		assert.NoError(t, err)
		assert.Equal(t, newLink, updated.AffiliateLink)
		assert.Equal(t, domain.OfferScrapePending, updated.ScrapeStatus)
		assert.Nil(t, updated.FinalURL)
		assert.Nil(t, updated.ScrapeMethod)
	})

	t.Run("Mesmo link não reseta o scraping", func(t *testing.T) {
		service, offerRepo := newTestService(t, &fakeResolver{})

		finalURL := "https://store.example.com/product"
		offerRepo.EXPECT().GetByID(int64(1)).Return(&domain.Offer{
			ID:            1,
			Name:          "Travel Pillow",
			AffiliateLink: "https://aff.example.com/go",
			ScrapeStatus:  domain.OfferScrapeCompleted,
			FinalURL:      &finalURL,
		}, nil)
		offerRepo.EXPECT().Update(gomock.Any()).Return(nil)

		sameLink := "https://aff.example.com/go"
		updated, err := service.UpdateOffer(&domain.UpdateOfferRequest{ID: 1, AffiliateLink: &sameLink})

		assert.NoError(t, err)
		assert.Equal(t, domain.OfferScrapeCompleted, updated.ScrapeStatus)
		assert.NotNil(t, updated.FinalURL)
	})

	t.Run("Oferta inexistente é rejeitada", func(t *testing.T) {
		service, offerRepo := newTestService(t, &fakeResolver{})

		offerRepo.EXPECT().GetByID(int64(1)).Return(nil, nil)

		updated, err := service.UpdateOffer(&domain.UpdateOfferRequest{ID: 1})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, ErrOfferNotFound)

		var offerErr *OfferError
		assert.ErrorAs(t, err, &offerErr)
		assert.Equal(t, apiErrors.ErrResourceNotFound, offerErr.Code)
		assert.Equal(t, int64(1), offerErr.OfferID)
	})
}

func TestService_ScrapeOffer(t *testing.T) {
	t.Run("Resolução bem-sucedida persiste URL final, marca, descrição e indústria", func(t *testing.T) {
		resolver := &fakeResolver{
			result: domain.ResolutionResult{
				FinalURL:        "https://www.comfygo.com/travel-pillow",
				FinalURLSuffix:  "utm_source=aff",
				Method:          domain.ResolveMethodHTTP,
				StatusCode:      200,
				PageTitle:       "ComfyGo Travel Pillow - memory foam for your trip",
				PageDescription: "Memory foam travel pillow with washable cover",
				Attempts:        1,
			},
		}
		service, offerRepo := newTestService(t, resolver)

		offerRepo.EXPECT().GetByID(int64(1)).Return(&domain.Offer{
			ID:            1,
			Name:          "Travel Pillow",
			AffiliateLink: "https://aff.example.com/go",
			TargetCountry: "US",
			ScrapeStatus:  domain.OfferScrapePending,
		}, nil)

		var saved *domain.Offer
		offerRepo.EXPECT().UpdateScrapeResult(gomock.Any()).DoAndReturn(func(o *domain.Offer) error {
			saved = o
			return nil
		})

		offer, err := service.ScrapeOffer(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, 1, resolver.calls)
		assert.Equal(t, domain.OfferScrapeCompleted, offer.ScrapeStatus)
		assert.Equal(t, "https://www.comfygo.com/travel-pillow", *offer.FinalURL)
		assert.Equal(t, "utm_source=aff", *offer.FinalURLSuffix)
		assert.Equal(t, "comfygo", *offer.Brand)
		assert.Equal(t, "Memory foam travel pillow with washable cover", *offer.Description)
		assert.Equal(t, "http", *offer.ScrapeMethod)
		assert.Equal(t, 200, *offer.ScrapeStatusCode)
		// A classificação roda porque a oferta não tinha industry_code
		assert.NotNil(t, offer.IndustryCode)
		assert.Equal(t, saved, offer)
	})

	t.Run("Falha na resolução persiste o diagnóstico e retorna a oferta junto do erro", func(t *testing.T) {
		resolver := &fakeResolver{
			result: domain.ResolutionResult{
				Method:   domain.ResolveMethodBrowser,
				Attempts: 4,
				Error:    "todas as tentativas de resolução falharam",
			},
		}
		service, offerRepo := newTestService(t, resolver)

		offerRepo.EXPECT().GetByID(int64(1)).Return(&domain.Offer{
			ID:            1,
			Name:          "Travel Pillow",
			AffiliateLink: "https://aff.example.com/go",
			TargetCountry: "US",
			ScrapeStatus:  domain.OfferScrapePending,
		}, nil)
		offerRepo.EXPECT().UpdateScrapeResult(gomock.Any()).Return(nil)

		offer, err := service.ScrapeOffer(context.Background(), 1)

		assert.ErrorIs(t, err, ErrResolutionFailed)
		assert.NotNil(t, offer)
		assert.Equal(t, domain.OfferScrapeFailed, offer.ScrapeStatus)
		assert.Equal(t, "todas as tentativas de resolução falharam", *offer.ScrapeError)
		assert.Equal(t, "browser", *offer.ScrapeMethod)

		var offerErr *OfferError
		assert.ErrorAs(t, err, &offerErr)
		assert.Equal(t, apiErrors.ErrResolutionFailed, offerErr.Code)
	})

	t.Run("Industry_code definido manualmente não é sobrescrito", func(t *testing.T) {
		resolver := &fakeResolver{
			result: domain.ResolutionResult{
				FinalURL:   "https://www.comfygo.com/travel-pillow",
				Method:     domain.ResolveMethodHTTP,
				StatusCode: 200,
				Attempts:   1,
			},
		}
		service, offerRepo := newTestService(t, resolver)

		manual := "tech_saas"
		offerRepo.EXPECT().GetByID(int64(1)).Return(&domain.Offer{
			ID:            1,
			Name:          "Travel Pillow",
			AffiliateLink: "https://aff.example.com/go",
			TargetCountry: "US",
			IndustryCode:  &manual,
		}, nil)
		offerRepo.EXPECT().UpdateScrapeResult(gomock.Any()).Return(nil)

		offer, err := service.ScrapeOffer(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "tech_saas", *offer.IndustryCode)
	})

	t.Run("Oferta inexistente não aciona o resolver", func(t *testing.T) {
		resolver := &fakeResolver{}
		service, offerRepo := newTestService(t, resolver)

		offerRepo.EXPECT().GetByID(int64(1)).Return(nil, nil)

		offer, err := service.ScrapeOffer(context.Background(), 1)

		assert.Nil(t, offer)
		assert.ErrorIs(t, err, ErrOfferNotFound)
		assert.Zero(t, resolver.calls)
	})
}

func TestBrandFromURL(t *testing.T) {
	tests := []struct {
		name     string
		finalURL string
		expected string
	}{
		{name: "Host com www", finalURL: "https://www.nike.com/shoes", expected: "nike"},
		{name: "Host sem www", finalURL: "https://store.example.com/product", expected: "store"},
		{name: "URL inválida", finalURL: "://broken", expected: ""},
		{name: "URL sem host", finalURL: "/relative/path", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, brandFromURL(tt.finalURL))
		})
	}
}
