package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	GoogleAds       GoogleAds       `mapstructure:",squash"`
	OpenAI          OpenAI          `mapstructure:",squash"`
	Browserless     Browserless     `mapstructure:",squash"`
	Proxy           Proxy           `mapstructure:",squash"`
	Resolver        Resolver        `mapstructure:",squash"`
	Scoring         Scoring         `mapstructure:",squash"`
	PerformanceSync PerformanceSync `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type GoogleAds struct {
	BaseURL         string `mapstructure:"google_ads_base_url"`
	Version         string `mapstructure:"google_ads_version"`
	DeveloperToken  string `mapstructure:"google_ads_developer_token"`
	ClientID        string `mapstructure:"google_ads_client_id"`
	ClientSecret    string `mapstructure:"google_ads_client_secret"`
	RefreshToken    string `mapstructure:"google_ads_refresh_token"`
	LoginCustomerID string `mapstructure:"google_ads_login_customer_id"`
}

type OpenAI struct {
	BaseURL string `mapstructure:"openai_base_url"`
	APIKey  string `mapstructure:"openai_api_key"`
	Model   string `mapstructure:"openai_model"`
}

// Browserless configura o serviço externo de renderização headless usado
// como fallback do resolvedor de URLs.
type Browserless struct {
	URL            string `mapstructure:"browserless_url"`
	Token          string `mapstructure:"browserless_token"`
	TimeoutSeconds int    `mapstructure:"browserless_timeout_seconds"`
}

type Proxy struct {
	// Lista de proxies no formato url@country separados por vírgula
	List []string `mapstructure:"proxy_list"`
	// Proxy de emergência usado quando todos os demais estão desabilitados
	DefaultURL string `mapstructure:"proxy_default_url"`
}

type Resolver struct {
	MaxRedirects       int `mapstructure:"resolver_max_redirects"`
	HTTPTimeoutSeconds int `mapstructure:"resolver_http_timeout_seconds"`
	MaxProxyAttempts   int `mapstructure:"resolver_max_proxy_attempts"`
	ProxyFailureLimit  int `mapstructure:"resolver_proxy_failure_limit"`
}

type Scoring struct {
	MinClicksThreshold  int64  `mapstructure:"scoring_min_clicks_threshold"`
	CacheTTLMinutes     int    `mapstructure:"scoring_cache_ttl_minutes"`
	DefaultIndustryCode string `mapstructure:"scoring_default_industry_code"`
}

type PerformanceSync struct {
	CronSchedule        string `mapstructure:"performance_sync_cron"`
	LookbackDays        int    `mapstructure:"performance_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"performance_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"performance_sync_max_concurrent_jobs"`
	RetentionDays       int    `mapstructure:"performance_sync_retention_days"`
	Enabled             bool   `mapstructure:"performance_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/autoads")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v18")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "your_developer_token")
	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "your_client_id")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("GOOGLE_ADS_REFRESH_TOKEN", "") // ONLY LOCAL
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")

	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	viper.SetDefault("BROWSERLESS_URL", "http://localhost:3000")
	viper.SetDefault("BROWSERLESS_TOKEN", "")
	viper.SetDefault("BROWSERLESS_TIMEOUT_SECONDS", 30)

	viper.SetDefault("PROXY_LIST", "")
	viper.SetDefault("PROXY_DEFAULT_URL", "")

	viper.SetDefault("RESOLVER_MAX_REDIRECTS", 10)
	viper.SetDefault("RESOLVER_HTTP_TIMEOUT_SECONDS", 15)
	viper.SetDefault("RESOLVER_MAX_PROXY_ATTEMPTS", 3)  // tentativas de proxy no fallback de browser
	viper.SetDefault("RESOLVER_PROXY_FAILURE_LIMIT", 3) // falhas até auto-desabilitar um proxy

	viper.SetDefault("SCORING_MIN_CLICKS_THRESHOLD", 100) // piso de cliques para pontuar
	viper.SetDefault("SCORING_CACHE_TTL_MINUTES", 5)
	viper.SetDefault("SCORING_DEFAULT_INDUSTRY_CODE", "ecom_fashion")

	// Defaults para sincronização de performance do Google Ads
	viper.SetDefault("PERFORMANCE_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("PERFORMANCE_SYNC_LOOKBACK_DAYS", 7)         // 7 dias para buscar dados
	viper.SetDefault("PERFORMANCE_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("PERFORMANCE_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("PERFORMANCE_SYNC_RETENTION_DAYS", 90)       // métricas mais antigas são descartadas
	viper.SetDefault("PERFORMANCE_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = dsn(config.Database)

	return config, nil
}

// ProxyEntries interpreta a lista de proxies configurada (url@country).
func (c *Config) ProxyEntries() []ProxyEntry {
	entries := make([]ProxyEntry, 0, len(c.Proxy.List))
	for _, raw := range c.Proxy.List {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		entry := ProxyEntry{URL: raw, Country: "US"}
		if at := strings.LastIndex(raw, "@"); at > 0 {
			entry.URL = raw[:at]
			entry.Country = strings.ToUpper(raw[at+1:])
		}
		entries = append(entries, entry)
	}
	return entries
}

type ProxyEntry struct {
	URL     string
	Country string
}

func dsn(db Database) string {
	return fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=disable",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// loadEnvFile carrega o .env da raiz do projeto quando presente
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível determinar o diretório atual:", err)
		return
	}

	envPath := filepath.Join(cwd, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		logrus.Debug("Arquivo .env não encontrado, usando variáveis de ambiente")
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		logrus.Warn("Erro ao carregar .env:", err)
	}
}
