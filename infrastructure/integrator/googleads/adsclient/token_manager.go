package adsclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/internal/config"
)

const oauthTokenURL = "https://oauth2.googleapis.com/token"

// TokenManager gerencia o access token OAuth da API do Google Ads,
// renovando-o a partir do refresh token antes da expiração.
type TokenManager struct {
	cfg         *config.Config
	mutex       sync.Mutex
	accessToken string
	expiresAt   time.Time
	stopRefresh chan struct{}
	httpClient  *http.Client
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg:         cfg,
		stopRefresh: make(chan struct{}),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// AccessToken retorna um access token válido, renovando quando necessário.
func (tm *TokenManager) AccessToken() (string, error) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	// Margem de 1 minuto para evitar usar um token prestes a expirar
	if tm.accessToken != "" && time.Now().Add(time.Minute).Before(tm.expiresAt) {
		return tm.accessToken, nil
	}

	if err := tm.refreshLocked(); err != nil {
		return "", err
	}

	return tm.accessToken, nil
}

// RefreshToken força a renovação do access token.
func (tm *TokenManager) RefreshToken() error {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	return tm.refreshLocked()
}

func (tm *TokenManager) refreshLocked() error {
	if tm.cfg.GoogleAds.RefreshToken == "" {
		return fmt.Errorf("refresh token do Google Ads não configurado")
	}

	form := url.Values{}
	form.Set("client_id", tm.cfg.GoogleAds.ClientID)
	form.Set("client_secret", tm.cfg.GoogleAds.ClientSecret)
	form.Set("refresh_token", tm.cfg.GoogleAds.RefreshToken)
	form.Set("grant_type", "refresh_token")

	resp, err := tm.httpClient.Post(
		oauthTokenURL,
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("erro ao renovar token do Google Ads: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("renovação de token do Google Ads retornou status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	tm.accessToken = payload.AccessToken
	tm.expiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)

	logrus.WithField("expires_at", tm.expiresAt.Format(time.RFC3339)).
		Debug("Token do Google Ads renovado com sucesso")

	return nil
}

// StartAutoRefresh inicia uma goroutine que renova o token periodicamente
func (tm *TokenManager) StartAutoRefresh() {
	if err := tm.RefreshToken(); err != nil {
		logrus.Errorf("Erro ao obter token inicial do Google Ads: %v", err)
	}

	// Tokens OAuth do Google expiram em 1 hora; renovar a cada 50 minutos
	refreshInterval := 50 * time.Minute
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token do Google Ads")
			if err := tm.RefreshToken(); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)
				ticker.Reset(5 * time.Minute)
			} else {
				ticker.Reset(refreshInterval)
			}
		case <-tm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		}
	}
}

// StopAutoRefresh para a goroutine de renovação automática
func (tm *TokenManager) StopAutoRefresh() {
	close(tm.stopRefresh)
}
