package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/infrastructure/database/postgres"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/browserless"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/openai"
	"github.com/vfg2006/autoads-api/infrastructure/repository"
	"github.com/vfg2006/autoads-api/internal/api"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/scheduler"
	"github.com/vfg2006/autoads-api/internal/usecases/authenticating"
	"github.com/vfg2006/autoads-api/internal/usecases/campaigning"
	"github.com/vfg2006/autoads-api/internal/usecases/offering"
	"github.com/vfg2006/autoads-api/internal/usecases/resolving"
	"github.com/vfg2006/autoads-api/internal/usecases/scoring"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	offerRepo := repository.NewOfferRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	creativeRepo := repository.NewCreativeRepository(pgConn)
	performanceRepo := repository.NewPerformanceRepository(pgConn)
	benchmarkRepo := repository.NewBenchmarkRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	tokenManager := adsclient.NewTokenManager(cfg)
	go tokenManager.StartAutoRefresh()
	defer tokenManager.StopAutoRefresh()

	adsClient := adsclient.NewClient(cfg, tokenManager)
	googleAdsIntegrator := googleads.New(cfg, adsClient)

	renderer := browserless.NewClient(cfg)
	openaiClient := openai.NewClient(cfg)

	// Monta o pool de proxies a partir da configuração, com o proxy padrão
	// como saída de emergência
	proxyPool := resolving.NewProxyPool(proxyEntries(cfg), cfg.Resolver.ProxyFailureLimit)

	fetcher := resolving.NewHTTPFetcher(
		time.Duration(cfg.Resolver.HTTPTimeoutSeconds)*time.Second,
		cfg.Resolver.MaxRedirects,
	)
	resolver := resolving.NewService(cfg, fetcher, renderer, proxyPool)

	scoreCache := scoring.NewScoreCache(time.Duration(cfg.Scoring.CacheTTLMinutes) * time.Minute)
	scorer := scoring.NewService(cfg, performanceRepo, creativeRepo, offerRepo, benchmarkRepo, scoreCache)

	offerService := offering.NewService(offerRepo, resolver, cfg)

	copywriter := campaigning.NewCopywriter(openaiClient)
	campaignService := campaigning.NewService(campaignRepo, creativeRepo, offerRepo, copywriter, cfg)

	// Inicializa o agendador de sincronização de performance do Google Ads
	performanceSyncService := scheduler.NewPerformanceSyncService(
		userRepo,
		creativeRepo,
		performanceRepo,
		googleAdsIntegrator,
		scoreCache,
		cfg,
	)

	if err := performanceSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de performance")
	} else {
		logrus.Info("Agendador de sincronização de performance iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		offerService,
		campaignService,
		scorer,
		resolver,
		performanceSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// proxyEntries converte a lista configurada para o formato do pool e anexa
// o proxy de emergência quando definido
func proxyEntries(cfg *config.Config) []resolving.ProxyEntry {
	entries := make([]resolving.ProxyEntry, 0, len(cfg.Proxy.List)+1)
	for _, e := range cfg.ProxyEntries() {
		entries = append(entries, resolving.ProxyEntry{URL: e.URL, Country: e.Country})
	}
	if cfg.Proxy.DefaultURL != "" {
		entries = append(entries, resolving.ProxyEntry{URL: cfg.Proxy.DefaultURL, IsDefault: true})
	}
	return entries
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
