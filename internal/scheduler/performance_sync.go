package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/autoads-api/infrastructure/repository"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/internal/usecases/scoring"
)

// PerformanceSyncConfig representa a configuração do agendador de sincronização de performance
type PerformanceSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	RetentionDays       int
	SyncEnabled         bool
}

// PerformanceSyncService gerencia o agendamento e execução da sincronização
// diária de métricas de criativos do Google Ads
type PerformanceSyncService struct {
	scheduler           *gocron.Scheduler
	config              PerformanceSyncConfig
	appConfig           *config.Config
	userRepo            repository.UserRepository
	creativeRepo        repository.CreativeRepository
	performanceRepo     repository.PerformanceRepository
	googleAdsService    googleads.Integrator
	scoreCache          *scoring.ScoreCache
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewPerformanceSyncService cria uma nova instância do serviço de sincronização de performance
func NewPerformanceSyncService(
	userRepo repository.UserRepository,
	creativeRepo repository.CreativeRepository,
	performanceRepo repository.PerformanceRepository,
	googleAdsService googleads.Integrator,
	scoreCache *scoring.ScoreCache,
	appConfig *config.Config,
) *PerformanceSyncService {
	// Criar a configuração com base na config global
	syncConfig := PerformanceSyncConfig{
		CronSchedule:        appConfig.PerformanceSync.CronSchedule,
		LookbackDays:        appConfig.PerformanceSync.LookbackDays,
		RequestDelaySeconds: appConfig.PerformanceSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.PerformanceSync.MaxConcurrentJobs,
		RetentionDays:       appConfig.PerformanceSync.RetentionDays,
		SyncEnabled:         appConfig.PerformanceSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de performance carregada")

	return &PerformanceSyncService{
		scheduler:        scheduler,
		config:           syncConfig,
		appConfig:        appConfig,
		userRepo:         userRepo,
		creativeRepo:     creativeRepo,
		performanceRepo:  performanceRepo,
		googleAdsService: googleAdsService,
		scoreCache:       scoreCache,
		syncRunning:      false,
	}
}

// Start inicia o agendador
func (s *PerformanceSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de performance do Google Ads desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de performance do Google Ads")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllPerformance()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de performance: %w", err)
	}

	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de performance do Google Ads")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllPerformance sincroniza as métricas de todos os criativos publicados
func (s *PerformanceSyncService) syncAllPerformance() {
	startTime := time.Now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de performance já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de performance do Google Ads para todos os usuários")

	users, err := s.getSyncableUsers()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar usuários para sincronização de performance")
		return
	}

	if len(users) == 0 {
		logrus.Info("Nenhum usuário com Google Ads configurado para sincronização")
		return
	}

	dates := s.getDatesToProcess()
	logrus.WithFields(logrus.Fields{
		"days":       s.config.LookbackDays,
		"start_date": dates[len(dates)-1].Format(time.DateOnly),
		"end_date":   dates[0].Format(time.DateOnly),
	}).Info("Período para sincronização de performance")

	s.processUsersForDates(users, dates)

	s.pruneOldEntries()

	// Scores em cache ficam obsoletos após novas métricas
	s.scoreCache.ClearAll()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"users":    len(users),
		"days":     s.config.LookbackDays,
	}).Info("Sincronização de performance do Google Ads concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// getSyncableUsers busca os usuários com conta do Google Ads configurada
func (s *PerformanceSyncService) getSyncableUsers() ([]*domain.User, error) {
	users, err := s.userRepo.ListUser()
	if err != nil {
		return nil, err
	}

	syncable := make([]*domain.User, 0, len(users))
	for _, user := range users {
		if !user.Active || user.GoogleAdsCustomerID == nil || *user.GoogleAdsCustomerID == "" {
			continue
		}
		syncable = append(syncable, user)
	}

	logrus.WithFields(logrus.Fields{
		"syncable_users": len(syncable),
	}).Info("Usuários encontrados para sincronização de performance")

	return syncable, nil
}

// getDatesToProcess cria um conjunto de datas para processar
func (s *PerformanceSyncService) getDatesToProcess() []time.Time {
	dates := make([]time.Time, s.config.LookbackDays)
	for i := 0; i < s.config.LookbackDays; i++ {
		dates[i] = time.Now().AddDate(0, 0, -i-1) // Começar de ontem e ir para trás
	}
	return dates
}

// processUsersForDates processa as métricas de cada usuário com concorrência limitada
func (s *PerformanceSyncService) processUsersForDates(users []*domain.User, dates []time.Time) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, user := range users {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(u *domain.User) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			s.processUserPerformance(u, dates)
		}(user)
	}

	wg.Wait()
}

// processUserPerformance sincroniza todos os criativos publicados do usuário
func (s *PerformanceSyncService) processUserPerformance(user *domain.User, dates []time.Time) {
	creatives, err := s.creativeRepo.ListByUser(user.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Error("Erro ao listar criativos do usuário para sincronização")
		return
	}

	published := make([]*domain.Creative, 0, len(creatives))
	for _, creative := range creatives {
		if creative.ExternalID != nil && *creative.ExternalID != "" {
			published = append(published, creative)
		}
	}

	if len(published) == 0 {
		logrus.WithField("user_id", user.ID).Info("Usuário sem criativos publicados. Pulando.")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"customer_id": *user.GoogleAdsCustomerID,
		"creatives":   len(published),
		"total_dates": len(dates),
	}).Info("Processando performance do Google Ads para usuário")

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	for _, creative := range published {
		for _, date := range sorted {
			s.processCreativePerformance(user, creative, date)

			// Aguardar antes da próxima requisição para evitar sobrecarga na API
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}
	}
}

// processCreativePerformance busca e persiste as métricas de um criativo em uma data
func (s *PerformanceSyncService) processCreativePerformance(user *domain.User, creative *domain.Creative, date time.Time) {
	entry, err := s.googleAdsService.GetCreativeDailyPerformance(*user.GoogleAdsCustomerID, creative, date)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"creative_id": creative.ID,
			"date":        date.Format(time.DateOnly),
			"error":       err.Error(),
		}).Error("Erro ao obter métricas do Google Ads para criativo e data")
		return
	}

	if entry == nil {
		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"creative_id": creative.ID,
			"date":        date.Format(time.DateOnly),
		}).Warn("Nenhuma métrica do Google Ads para criativo e data")
		return
	}

	entry.UserID = user.ID
	entry.OfferID = creative.OfferID
	entry.SyncDate = time.Now()

	if err := s.performanceRepo.SaveOrUpdate(entry); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"creative_id": creative.ID,
			"date":        date.Format(time.DateOnly),
			"error":       err.Error(),
		}).Error("Erro ao salvar métricas do Google Ads no banco de dados")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"creative_id": creative.ID,
		"date":        date.Format(time.DateOnly),
	}).Info("Métricas do Google Ads salvas com sucesso para criativo e data")
}

// pruneOldEntries remove métricas além da janela de retenção configurada
func (s *PerformanceSyncService) pruneOldEntries() {
	if s.config.RetentionDays <= 0 {
		return
	}

	deleted, err := s.performanceRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover métricas antigas de performance")
		return
	}

	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": s.config.RetentionDays,
		}).Info("Métricas antigas de performance removidas")
	}
}

// TriggerManualSync inicia manualmente uma sincronização de performance
func (s *PerformanceSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de performance já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de performance do Google Ads")
	go s.syncAllPerformance()
}

// GetStatus retorna o status atual do agendador
func (s *PerformanceSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	startedAt := s.lastSyncStartedAt
	completedAt := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"sync_retention_days":    s.config.RetentionDays,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
}
