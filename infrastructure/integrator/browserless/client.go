package browserless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/internal/config"
)

// Renderer navega até uma URL em um navegador headless remoto e retorna a URL
// final após a execução de JavaScript. É o fallback do resolvedor quando a
// resolução via HTTP puro falha ou é bloqueada.
type Renderer interface {
	Render(ctx context.Context, targetURL string, proxyURL string) (*RenderResult, error)
}

// RenderResult é o resultado da navegação headless.
type RenderResult struct {
	FinalURL        string   `json:"finalUrl"`
	PageTitle       string   `json:"pageTitle"`
	PageDescription string   `json:"pageDescription"`
	StatusCode      int      `json:"statusCode"`
	Redirects       []string `json:"redirects"`
}

type renderRequest struct {
	URL       string `json:"url"`
	Proxy     string `json:"proxy,omitempty"`
	WaitUntil string `json:"waitUntil"`
	Timeout   int    `json:"timeout"`
	Stealth   bool   `json:"stealth"`
}

type BrowserlessClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Renderer {
	timeout := time.Duration(cfg.Browserless.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &BrowserlessClient{
		cfg: cfg,
		httpClient: &http.Client{
			// Margem sobre o timeout de navegação do serviço remoto
			Timeout: timeout + 10*time.Second,
		},
	}
}

// Render pede ao serviço de renderização que navegue até targetURL,
// aguarde a rede aquietar ("smart wait" do lado do serviço) e devolva a URL
// final. O contexto cancela a requisição e libera o contexto de navegação
// remoto quando o chamador desiste.
func (c *BrowserlessClient) Render(ctx context.Context, targetURL string, proxyURL string) (*RenderResult, error) {
	payload := renderRequest{
		URL:       targetURL,
		Proxy:     proxyURL,
		WaitUntil: "networkidle2",
		Timeout:   c.cfg.Browserless.TimeoutSeconds * 1000,
		Stealth:   true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := c.cfg.Browserless.URL + "/resolve"
	if c.cfg.Browserless.Token != "" {
		endpoint += "?token=" + c.cfg.Browserless.Token
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar serviço de renderização: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serviço de renderização retornou status %d", resp.StatusCode)
	}

	var result RenderResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de renderização: %w", err)
	}

	if result.FinalURL == "" {
		return nil, fmt.Errorf("serviço de renderização não retornou URL final")
	}

	logrus.WithFields(logrus.Fields{
		"final_url":   result.FinalURL,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("resolver: headless render completed")

	return &result, nil
}
