package resolving

import (
	"context"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/browserless"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
	"github.com/vfg2006/autoads-api/pkg/utils"
)

// Resolver segue links de afiliado até a URL final de destino, caindo do
// HTTP puro para o browser headless quando necessário.
type Resolver interface {
	Resolve(ctx context.Context, rawURL, targetCountry string) domain.ResolutionResult
	PoolHealth() []domain.ProxyHealth
	EnableProxy(proxyURL string) error
	DisableProxy(proxyURL string) error
}

type Service struct {
	fetcher          Fetcher
	renderer         browserless.Renderer
	pool             *ProxyPool
	maxProxyAttempts int
	backoffBase      time.Duration
	sleep            func(ctx context.Context, d time.Duration) bool
}

func NewService(cfg *config.Config, fetcher Fetcher, renderer browserless.Renderer, pool *ProxyPool) *Service {
	maxAttempts := cfg.Resolver.MaxProxyAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	return &Service{
		fetcher:          fetcher,
		renderer:         renderer,
		pool:             pool,
		maxProxyAttempts: maxAttempts,
		backoffBase:      2 * time.Second,
		sleep:            sleepContext,
	}
}

// Resolve executa a cadeia de fallback: uma tentativa por HTTP puro e, se
// ela falhar ou encontrar desafio anti-bot, tentativas via browser headless
// com rotação de proxy e backoff exponencial. Falha terminal vem no campo
// Error do resultado, nunca como error Go.
func (s *Service) Resolve(ctx context.Context, rawURL, targetCountry string) domain.ResolutionResult {
	if err := validateTargetURL(rawURL); err != nil {
		return domain.ResolutionResult{Error: err.Error()}
	}

	// ID curto para correlacionar os logs das múltiplas tentativas
	resolutionID, _ := utils.GenerateID()

	result := s.resolveHTTP(ctx, rawURL)
	if !result.Failed() {
		return result
	}

	logrus.WithFields(logrus.Fields{
		"resolution_id": resolutionID,
		"url":           rawURL,
		"error":         result.Error,
	}).Info("resolver: http attempt failed, falling back to browser")

	return s.resolveBrowser(ctx, resolutionID, rawURL, targetCountry, result.Attempts)
}

func (s *Service) resolveHTTP(ctx context.Context, rawURL string) domain.ResolutionResult {
	result := domain.ResolutionResult{Method: domain.ResolveMethodHTTP, Attempts: 1}

	fetched, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		result.Error = err.Error()
		if fetched != nil {
			result.StatusCode = fetched.StatusCode
			result.RedirectChain = fetched.RedirectChain
			result.PageTitle = fetched.Title
		}
		return result
	}

	base, suffix := splitFinalURL(fetched.FinalURL)
	result.FinalURL = base
	result.FinalURLSuffix = suffix
	result.StatusCode = fetched.StatusCode
	result.RedirectChain = fetched.RedirectChain
	result.PageTitle = fetched.Title
	result.PageDescription = fetched.Description
	return result
}

func (s *Service) resolveBrowser(ctx context.Context, resolutionID, rawURL, targetCountry string, priorAttempts int) domain.ResolutionResult {
	result := domain.ResolutionResult{
		Method:   domain.ResolveMethodBrowser,
		Attempts: priorAttempts,
	}

	var lastErr string
	for attempt := 0; attempt < s.maxProxyAttempts; attempt++ {
		if attempt > 0 {
			if !s.sleep(ctx, backoffDelay(attempt, s.backoffBase)) {
				result.Error = ctx.Err().Error()
				return result
			}
		}

		proxyURL := s.pool.Next(targetCountry)
		result.Attempts++

		rendered, err := s.renderer.Render(ctx, rawURL, proxyURL)
		if err != nil {
			lastErr = err.Error()
			if proxyURL != "" {
				s.pool.RecordFailure(proxyURL, lastErr)
			}
			logrus.WithFields(logrus.Fields{
				"resolution_id": resolutionID,
				"url":           rawURL,
				"proxy":         proxyURL,
				"attempt":       attempt + 1,
				"error":         lastErr,
			}).Warn("resolver: browser attempt failed")
			continue
		}

		if proxyURL != "" {
			s.pool.RecordSuccess(proxyURL)
		}

		base, suffix := splitFinalURL(rendered.FinalURL)
		result.FinalURL = base
		result.FinalURLSuffix = suffix
		result.StatusCode = rendered.StatusCode
		result.RedirectChain = rendered.Redirects
		result.PageTitle = rendered.PageTitle
		result.PageDescription = rendered.PageDescription
		result.ProxyUsed = proxyURL
		return result
	}

	if lastErr == "" {
		lastErr = "todas as tentativas de resolução falharam"
	}
	result.Error = lastErr
	return result
}

func (s *Service) PoolHealth() []domain.ProxyHealth {
	return s.pool.Health()
}

func (s *Service) EnableProxy(proxyURL string) error {
	return s.pool.Enable(proxyURL)
}

func (s *Service) DisableProxy(proxyURL string) error {
	return s.pool.Disable(proxyURL)
}

func validateTargetURL(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return errEmptyURL
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return errInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errInvalidScheme
	}
	return nil
}

var (
	errEmptyURL      = urlError("URL vazia")
	errInvalidURL    = urlError("URL inválida")
	errInvalidScheme = urlError("apenas URLs http e https são suportadas")
)

type urlError string

func (e urlError) Error() string { return string(e) }

// splitFinalURL separa a URL final do sufixo de tracking (query string),
// no formato esperado pelos campos final_url / final_url_suffix do Google Ads.
func splitFinalURL(fullURL string) (base, suffix string) {
	parsed, err := url.Parse(fullURL)
	if err != nil {
		return fullURL, ""
	}

	suffix = parsed.RawQuery
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), suffix
}

// backoffDelay calcula o atraso exponencial com jitter de ±20%.
func backoffDelay(attempt int, base time.Duration) time.Duration {
	delay := base << (attempt - 1)
	if max := 16 * time.Second; delay > max {
		delay = max
	}
	jitter := 0.8 + rand.Float64()*0.4
	return time.Duration(float64(delay) * jitter)
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
