package resolving

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

const (
	fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	maxBodyBytes   = 2 << 20
)

// ErrChallengeDetected indica que o destino devolveu uma página de desafio
// anti-bot em vez do conteúdo real. A resolução deve cair para o browser.
var ErrChallengeDetected = errors.New("página de desafio anti-bot detectada")

// FetchResult é o resultado de seguir a cadeia de redirects por HTTP puro.
type FetchResult struct {
	FinalURL      string
	StatusCode    int
	RedirectChain []string
	Title         string
	Description   string
	Body          []byte
}

// Fetcher segue redirects HTTP manualmente até a URL final.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*FetchResult, error)
}

type httpFetcher struct {
	client       *http.Client
	maxRedirects int
}

func NewHTTPFetcher(timeout time.Duration, maxRedirects int) Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxRedirects <= 0 {
		maxRedirects = 10
	}

	return &httpFetcher{
		client: &http.Client{
			Timeout: timeout,
			// Redirects são seguidos manualmente para registrar a cadeia
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxRedirects: maxRedirects,
	}
}

// Fetch segue a cadeia de redirects (3xx) até uma resposta 2xx, registrando
// cada URL intermediária. Páginas de desafio anti-bot na resposta final
// retornam ErrChallengeDetected para o chamador decidir o fallback.
func (f *httpFetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	currentURL := rawURL
	chain := []string{rawURL}

	for redirects := 0; redirects <= f.maxRedirects; redirects++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, currentURL, nil)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao montar a requisição")
		}
		req.Header.Set("User-Agent", fetchUserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "erro na requisição HTTP")
		}

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			location := resp.Header.Get("Location")
			io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
			resp.Body.Close()

			if location == "" {
				return nil, errors.Errorf("redirect %d sem header Location", resp.StatusCode)
			}

			next, err := resolveLocation(currentURL, location)
			if err != nil {
				return nil, err
			}

			chain = append(chain, next)
			currentURL = next
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		resp.Body.Close()

		if resp.StatusCode/100 != 2 {
			return nil, errors.Errorf("destino respondeu com status %d", resp.StatusCode)
		}
		if readErr != nil {
			return nil, errors.Wrap(readErr, "erro ao ler o corpo da resposta")
		}

		result := &FetchResult{
			FinalURL:      currentURL,
			StatusCode:    resp.StatusCode,
			RedirectChain: chain,
			Body:          body,
		}

		title, description, challenge := inspectBody(body)
		result.Title = title
		result.Description = description
		if challenge {
			return result, ErrChallengeDetected
		}

		return result, nil
	}

	return nil, errors.Errorf("número máximo de redirects excedido (%d)", f.maxRedirects)
}

// resolveLocation resolve o header Location contra a URL corrente, cobrindo
// redirects relativos.
func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", errors.Wrap(err, "URL corrente inválida")
	}

	next, err := base.Parse(location)
	if err != nil {
		return "", errors.Wrap(err, "header Location inválido")
	}

	if next.Scheme != "http" && next.Scheme != "https" {
		return "", errors.Errorf("redirect para esquema não suportado: %s", next.Scheme)
	}

	return next.String(), nil
}

// challengeMarkers são sinais de páginas interstitiais de proteção anti-bot
// que um GET simples não atravessa.
var challengeMarkers = []string{
	"just a moment",
	"attention required",
	"checking your browser",
	"verify you are a human",
	"access denied",
	"cf-challenge",
	"captcha",
}

// inspectBody extrai o título e a meta description da página e detecta
// desafios anti-bot.
func inspectBody(body []byte) (title, description string, challenge bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", false
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	description = strings.TrimSpace(doc.Find("meta[name='description']").First().AttrOr("content", ""))
	if description == "" {
		description = strings.TrimSpace(doc.Find("meta[property='og:description']").First().AttrOr("content", ""))
	}

	haystack := strings.ToLower(title)
	if haystack == "" {
		haystack = strings.ToLower(string(body))
	}

	for _, marker := range challengeMarkers {
		if strings.Contains(haystack, marker) {
			return title, description, true
		}
	}

	// Alguns desafios não marcam o título; procura no formulário
	if doc.Find("#challenge-form, form[action*='captcha']").Length() > 0 {
		return title, description, true
	}

	return title, description, false
}
