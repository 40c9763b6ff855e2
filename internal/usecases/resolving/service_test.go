package resolving

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/browserless"
	"github.com/vfg2006/autoads-api/internal/domain"
)

type fakeFetcher struct {
	result *FetchResult
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeRenderer struct {
	results []*browserless.RenderResult
	errs    []error
	calls   int
	proxies []string
}

func (f *fakeRenderer) Render(ctx context.Context, targetURL, proxyURL string) (*browserless.RenderResult, error) {
	idx := f.calls
	f.calls++
	f.proxies = append(f.proxies, proxyURL)
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	return f.results[idx], f.errs[idx]
}

func newResolverService(fetcher Fetcher, renderer browserless.Renderer, pool *ProxyPool) *Service {
	return &Service{
		fetcher:          fetcher,
		renderer:         renderer,
		pool:             pool,
		maxProxyAttempts: 3,
		backoffBase:      time.Millisecond,
		sleep:            func(ctx context.Context, d time.Duration) bool { return true },
	}
}

func TestService_Resolve(t *testing.T) {
	t.Run("URL inválida falha sem nenhuma tentativa", func(t *testing.T) {
		tests := []struct {
			name     string
			rawURL   string
			expected string
		}{
			{name: "URL vazia", rawURL: "   ", expected: "URL vazia"},
			{name: "URL sem host", rawURL: "not-a-url", expected: "URL inválida"},
			{name: "Esquema não suportado", rawURL: "ftp://example.com/file", expected: "apenas URLs http e https são suportadas"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				fetcher := &fakeFetcher{}
				service := newResolverService(fetcher, &fakeRenderer{}, NewProxyPool(nil, 3))

				result := service.Resolve(context.Background(), tt.rawURL, "US")

				assert.True(t, result.Failed())
				assert.Equal(t, tt.expected, result.Error)
				assert.Zero(t, fetcher.calls)
			})
		}
	})

	t.Run("Sucesso por HTTP puro não aciona o browser", func(t *testing.T) {
		fetcher := &fakeFetcher{
			result: &FetchResult{
				FinalURL:      "https://store.example.com/product?utm_source=aff&click_id=abc",
				StatusCode:    200,
				RedirectChain: []string{"https://aff.example.com/go", "https://store.example.com/product?utm_source=aff&click_id=abc"},
				Title:         "Great Product",
				Description:   "The greatest product ever made",
			},
		}
		renderer := &fakeRenderer{}
		service := newResolverService(fetcher, renderer, NewProxyPool(nil, 3))

		result := service.Resolve(context.Background(), "https://aff.example.com/go", "US")

		assert.False(t, result.Failed())
		assert.Equal(t, domain.ResolveMethodHTTP, result.Method)
		assert.Equal(t, "https://store.example.com/product", result.FinalURL)
		assert.Equal(t, "utm_source=aff&click_id=abc", result.FinalURLSuffix)
		assert.Equal(t, "Great Product", result.PageTitle)
		assert.Equal(t, "The greatest product ever made", result.PageDescription)
		assert.Equal(t, 1, result.Attempts)
		assert.Len(t, result.RedirectChain, 2)
		assert.Zero(t, renderer.calls)
	})

	t.Run("Desafio anti-bot cai para o browser com proxy", func(t *testing.T) {
		fetcher := &fakeFetcher{
			result: &FetchResult{StatusCode: 200, Title: "Just a moment..."},
			err:    ErrChallengeDetected,
		}
		renderer := &fakeRenderer{
			results: []*browserless.RenderResult{{
				FinalURL:        "https://store.example.com/product?gclid=xyz",
				PageTitle:       "Great Product",
				PageDescription: "Rendered description",
				StatusCode:      200,
				Redirects:       []string{"https://aff.example.com/go", "https://store.example.com/product?gclid=xyz"},
			}},
			errs: []error{nil},
		}
		pool := NewProxyPool([]ProxyEntry{{URL: "http://proxy-us-1:8080", Country: "US"}}, 3)
		service := newResolverService(fetcher, renderer, pool)

		result := service.Resolve(context.Background(), "https://aff.example.com/go", "US")

		assert.False(t, result.Failed())
		assert.Equal(t, domain.ResolveMethodBrowser, result.Method)
		assert.Equal(t, "https://store.example.com/product", result.FinalURL)
		assert.Equal(t, "gclid=xyz", result.FinalURLSuffix)
		assert.Equal(t, "Rendered description", result.PageDescription)
		assert.Equal(t, "http://proxy-us-1:8080", result.ProxyUsed)
		assert.Equal(t, 2, result.Attempts)
		assert.Equal(t, []string{"http://proxy-us-1:8080"}, renderer.proxies)

		// Sucesso registrado no pool
		health := pool.Health()
		assert.Equal(t, 1, health[0].SuccessCount)
	})

	t.Run("Browser rotaciona proxies entre tentativas", func(t *testing.T) {
		fetcher := &fakeFetcher{err: ErrChallengeDetected}
		renderer := &fakeRenderer{
			results: []*browserless.RenderResult{
				nil,
				{FinalURL: "https://store.example.com/product", StatusCode: 200},
			},
			errs: []error{assert.AnError, nil},
		}
		pool := NewProxyPool([]ProxyEntry{
			{URL: "http://proxy-us-1:8080", Country: "US"},
			{URL: "http://proxy-us-2:8080", Country: "US"},
		}, 3)
		service := newResolverService(fetcher, renderer, pool)

		result := service.Resolve(context.Background(), "https://aff.example.com/go", "US")

		assert.False(t, result.Failed())
		assert.Equal(t, 3, result.Attempts)
		assert.Len(t, renderer.proxies, 2)
		assert.NotEqual(t, renderer.proxies[0], renderer.proxies[1])
	})

	t.Run("Todas as tentativas esgotadas retornam falha terminal", func(t *testing.T) {
		fetcher := &fakeFetcher{err: ErrChallengeDetected}
		renderer := &fakeRenderer{
			results: []*browserless.RenderResult{nil},
			errs:    []error{assert.AnError},
		}
		pool := NewProxyPool([]ProxyEntry{{URL: "http://proxy-us-1:8080", Country: "US"}}, 5)
		service := newResolverService(fetcher, renderer, pool)

		result := service.Resolve(context.Background(), "https://aff.example.com/go", "US")

		assert.True(t, result.Failed())
		assert.Equal(t, domain.ResolveMethodBrowser, result.Method)
		assert.NotEmpty(t, result.Error)
		assert.Equal(t, 4, result.Attempts) // 1 http + 3 browser
		assert.Equal(t, 3, renderer.calls)
	})

	t.Run("Contexto cancelado interrompe o backoff", func(t *testing.T) {
		fetcher := &fakeFetcher{err: ErrChallengeDetected}
		renderer := &fakeRenderer{
			results: []*browserless.RenderResult{nil},
			errs:    []error{assert.AnError},
		}
		service := newResolverService(fetcher, renderer, NewProxyPool(nil, 3))
		service.sleep = func(ctx context.Context, d time.Duration) bool { return false }

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := service.Resolve(ctx, "https://aff.example.com/go", "US")

		assert.True(t, result.Failed())
		assert.Equal(t, context.Canceled.Error(), result.Error)
		assert.Equal(t, 1, renderer.calls)
	})

	t.Run("Pool vazio ainda tenta o browser sem proxy", func(t *testing.T) {
		fetcher := &fakeFetcher{err: ErrChallengeDetected}
		renderer := &fakeRenderer{
			results: []*browserless.RenderResult{{FinalURL: "https://store.example.com/product", StatusCode: 200}},
			errs:    []error{nil},
		}
		service := newResolverService(fetcher, renderer, NewProxyPool(nil, 3))

		result := service.Resolve(context.Background(), "https://aff.example.com/go", "US")

		assert.False(t, result.Failed())
		assert.Empty(t, result.ProxyUsed)
		assert.Equal(t, []string{""}, renderer.proxies)
	})
}

func TestSplitFinalURL(t *testing.T) {
	tests := []struct {
		name           string
		fullURL        string
		expectedBase   string
		expectedSuffix string
	}{
		{
			name:           "URL com query string",
			fullURL:        "https://store.example.com/product?utm_source=aff&click_id=abc",
			expectedBase:   "https://store.example.com/product",
			expectedSuffix: "utm_source=aff&click_id=abc",
		},
		{
			name:           "URL sem query string",
			fullURL:        "https://store.example.com/product",
			expectedBase:   "https://store.example.com/product",
			expectedSuffix: "",
		},
		{
			name:           "Fragmento é descartado",
			fullURL:        "https://store.example.com/product?a=1#reviews",
			expectedBase:   "https://store.example.com/product",
			expectedSuffix: "a=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, suffix := splitFinalURL(tt.fullURL)
			assert.Equal(t, tt.expectedBase, base)
			assert.Equal(t, tt.expectedSuffix, suffix)
		})
	}
}

func TestBackoffDelay(t *testing.T) {
	base := 2 * time.Second

	for attempt := 1; attempt <= 6; attempt++ {
		delay := backoffDelay(attempt, base)

		// Jitter de ±20% sobre o valor exponencial, com teto de 16s
		expected := base << (attempt - 1)
		if expected > 16*time.Second {
			expected = 16 * time.Second
		}

		assert.GreaterOrEqual(t, delay, time.Duration(float64(expected)*0.8))
		assert.LessOrEqual(t, delay, time.Duration(float64(expected)*1.2))
	}
}
