package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	googleadsmocks "github.com/vfg2006/autoads-api/infrastructure/integrator/googleads/mocks"
	"github.com/vfg2006/autoads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/internal/usecases/scoring"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(
	userRepo *mocks.MockUserRepository,
	creativeRepo *mocks.MockCreativeRepository,
	performanceRepo *mocks.MockPerformanceRepository,
	googleAdsService *googleadsmocks.MockIntegrator,
) *PerformanceSyncService {
	return &PerformanceSyncService{
		config: PerformanceSyncConfig{
			LookbackDays:        2,
			RequestDelaySeconds: 0,
			MaxConcurrentJobs:   1,
			RetentionDays:       90,
			SyncEnabled:         true,
		},
		userRepo:         userRepo,
		creativeRepo:     creativeRepo,
		performanceRepo:  performanceRepo,
		googleAdsService: googleAdsService,
		scoreCache:       scoring.NewScoreCache(5 * time.Minute),
	}
}

func TestPerformanceSyncService_getSyncableUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := newTestSyncService(mockUserRepo, nil, nil, nil)

	mockUserRepo.EXPECT().ListUser().Return([]*domain.User{
		{ID: 1, Active: true, GoogleAdsCustomerID: stringPtr("1234567890")},
		// Inativos, sem customer id ou com customer id vazio ficam de fora
		{ID: 2, Active: false, GoogleAdsCustomerID: stringPtr("2234567890")},
		{ID: 3, Active: true},
		{ID: 4, Active: true, GoogleAdsCustomerID: stringPtr("")},
		{ID: 5, Active: true, GoogleAdsCustomerID: stringPtr("5234567890")},
	}, nil)

	users, err := service.getSyncableUsers()

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, 5, users[1].ID)
}

func TestPerformanceSyncService_getDatesToProcess(t *testing.T) {
	service := newTestSyncService(nil, nil, nil, nil)

	dates := service.getDatesToProcess()

	assert.Len(t, dates, 2)

	yesterday := time.Now().AddDate(0, 0, -1)
	dayBefore := time.Now().AddDate(0, 0, -2)
	assert.Equal(t, yesterday.Format(time.DateOnly), dates[0].Format(time.DateOnly))
	assert.Equal(t, dayBefore.Format(time.DateOnly), dates[1].Format(time.DateOnly))
}

func TestPerformanceSyncService_processUserPerformance(t *testing.T) {
	user := &domain.User{ID: 1, Active: true, GoogleAdsCustomerID: stringPtr("1234567890")}
	yesterday := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		setup func(
			creativeRepo *mocks.MockCreativeRepository,
			performanceRepo *mocks.MockPerformanceRepository,
			googleAdsService *googleadsmocks.MockIntegrator,
		)
	}{
		{
			name: "Criativo publicado tem métricas buscadas e persistidas",
			setup: func(creativeRepo *mocks.MockCreativeRepository, performanceRepo *mocks.MockPerformanceRepository, googleAdsService *googleadsmocks.MockIntegrator) {
				creativeRepo.EXPECT().ListByUser(1).Return([]*domain.Creative{
					{ID: 10, OfferID: 100, ExternalID: stringPtr("ext-10")},
				}, nil)

				googleAdsService.EXPECT().
					GetCreativeDailyPerformance("1234567890", gomock.Any(), yesterday).
					Return(&domain.PerformanceEntry{
						CreativeID:  10,
						Date:        yesterday,
						Impressions: 1000,
						Clicks:      50,
						Conversions: 2,
						CostMicros:  30_000_000,
					}, nil)

				performanceRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(entry *domain.PerformanceEntry) error {
					// O serviço preenche os campos de associação antes de salvar
					assert.Equal(t, 1, entry.UserID)
					assert.Equal(t, int64(100), entry.OfferID)
					assert.False(t, entry.SyncDate.IsZero())
					return nil
				})
			},
		},
		{
			name: "Criativos não publicados são ignorados",
			setup: func(creativeRepo *mocks.MockCreativeRepository, performanceRepo *mocks.MockPerformanceRepository, googleAdsService *googleadsmocks.MockIntegrator) {
				creativeRepo.EXPECT().ListByUser(1).Return([]*domain.Creative{
					{ID: 10, OfferID: 100},                            // sem external id
					{ID: 11, OfferID: 100, ExternalID: stringPtr("")}, // external id vazio
				}, nil)
				// Nenhuma chamada ao Google Ads nem ao repositório de performance
			},
		},
		{
			name: "Dia sem métricas não gera gravação",
			setup: func(creativeRepo *mocks.MockCreativeRepository, performanceRepo *mocks.MockPerformanceRepository, googleAdsService *googleadsmocks.MockIntegrator) {
				creativeRepo.EXPECT().ListByUser(1).Return([]*domain.Creative{
					{ID: 10, OfferID: 100, ExternalID: stringPtr("ext-10")},
				}, nil)

				googleAdsService.EXPECT().
					GetCreativeDailyPerformance("1234567890", gomock.Any(), yesterday).
					Return(nil, nil)
			},
		},
		{
			name: "Erro do Google Ads em uma data não interrompe o processamento",
			setup: func(creativeRepo *mocks.MockCreativeRepository, performanceRepo *mocks.MockPerformanceRepository, googleAdsService *googleadsmocks.MockIntegrator) {
				creativeRepo.EXPECT().ListByUser(1).Return([]*domain.Creative{
					{ID: 10, OfferID: 100, ExternalID: stringPtr("ext-10")},
				}, nil)

				googleAdsService.EXPECT().
					GetCreativeDailyPerformance("1234567890", gomock.Any(), yesterday).
					Return(nil, assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUserRepo := mocks.NewMockUserRepository(ctrl)
			mockCreativeRepo := mocks.NewMockCreativeRepository(ctrl)
			mockPerformanceRepo := mocks.NewMockPerformanceRepository(ctrl)
			mockGoogleAds := googleadsmocks.NewMockIntegrator(ctrl)

			service := newTestSyncService(mockUserRepo, mockCreativeRepo, mockPerformanceRepo, mockGoogleAds)
			tt.setup(mockCreativeRepo, mockPerformanceRepo, mockGoogleAds)

			service.processUserPerformance(user, []time.Time{yesterday})
		})
	}
}

func TestPerformanceSyncService_pruneOldEntries(t *testing.T) {
	t.Run("Métricas além da retenção são removidas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPerformanceRepo := mocks.NewMockPerformanceRepository(ctrl)
		service := newTestSyncService(nil, nil, mockPerformanceRepo, nil)

		mockPerformanceRepo.EXPECT().DeleteOlderThan(90).Return(int64(42), nil)

		service.pruneOldEntries()
	})

	t.Run("Retenção desabilitada não toca no banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPerformanceRepo := mocks.NewMockPerformanceRepository(ctrl)
		service := newTestSyncService(nil, nil, mockPerformanceRepo, nil)
		service.config.RetentionDays = 0

		service.pruneOldEntries()
	})
}

func TestPerformanceSyncService_GetStatus(t *testing.T) {
	service := newTestSyncService(nil, nil, nil, nil)

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, 2, status["sync_lookback_days"])
	assert.Equal(t, 90, status["sync_retention_days"])
}

func TestPerformanceSyncService_GetStatusDuringSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := newTestSyncService(mockUserRepo, nil, nil, nil)

	// A sincronização termina logo após registrar o início
	mockUserRepo.EXPECT().ListUser().Return(nil, assert.AnError).AnyTimes()

	// Leituras de status concorrentes com execuções de sync devem ser
	// consistentes sob o detector de corrida
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			service.syncAllPerformance()
		}()
		go func() {
			defer wg.Done()
			_ = service.GetStatus()
		}()
	}
	wg.Wait()

	status := service.GetStatus()
	startedAt, ok := status["last_sync_started_at"].(time.Time)
	assert.True(t, ok)
	assert.False(t, startedAt.IsZero())
}

func stringPtr(s string) *string {
	return &s
}
