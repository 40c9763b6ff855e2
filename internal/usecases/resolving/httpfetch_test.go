package resolving

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Run("Segue a cadeia de redirects até o destino final", func(t *testing.T) {
		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/go", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, server.URL+"/track", http.StatusFound)
		})
		mux.HandleFunc("/track", func(w http.ResponseWriter, r *http.Request) {
			// Redirect relativo
			http.Redirect(w, r, "/product?utm_source=aff", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><head><title>Great Product</title>"+
				"<meta name=\"description\" content=\"The greatest product ever made\">"+
				"</head><body>ok</body></html>")
		})

		fetcher := NewHTTPFetcher(5*time.Second, 10)

		result, err := fetcher.Fetch(context.Background(), server.URL+"/go")

		assert.NoError(t, err)
		assert.Equal(t, server.URL+"/product?utm_source=aff", result.FinalURL)
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Equal(t, "Great Product", result.Title)
		assert.Equal(t, "The greatest product ever made", result.Description)
		assert.Len(t, result.RedirectChain, 3)
	})

	t.Run("Qualquer status 2xx no destino final é sucesso", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPartialContent)
			fmt.Fprint(w, "<html><head><title>Store</title></head><body>ok</body></html>")
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 10)

		result, err := fetcher.Fetch(context.Background(), server.URL)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusPartialContent, result.StatusCode)
		assert.Equal(t, "Store", result.Title)
	})

	t.Run("Página de desafio anti-bot retorna ErrChallengeDetected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><head><title>Just a moment...</title></head><body></body></html>")
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 10)

		result, err := fetcher.Fetch(context.Background(), server.URL)

		assert.ErrorIs(t, err, ErrChallengeDetected)
		assert.NotNil(t, result)
		assert.Equal(t, "Just a moment...", result.Title)
	})

	t.Run("Formulário de captcha sem título marcado também é desafio", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><head><title>Store</title></head><body><form id=\"challenge-form\"></form></body></html>")
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 10)

		_, err := fetcher.Fetch(context.Background(), server.URL)

		assert.ErrorIs(t, err, ErrChallengeDetected)
	})

	t.Run("Status fora da faixa 2xx no destino final é erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 10)

		result, err := fetcher.Fetch(context.Background(), server.URL)

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("Número máximo de redirects é respeitado", func(t *testing.T) {
		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/", http.StatusFound)
		})

		fetcher := NewHTTPFetcher(5*time.Second, 3)

		result, err := fetcher.Fetch(context.Background(), server.URL)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "redirects")
	})

	t.Run("Redirect sem header Location é erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusFound)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 10)

		_, err := fetcher.Fetch(context.Background(), server.URL)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Location")
	})

	t.Run("Redirect para esquema não suportado é erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", "ftp://example.com/file")
			w.WriteHeader(http.StatusFound)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 10)

		_, err := fetcher.Fetch(context.Background(), server.URL)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "esquema")
	})
}

func TestInspectBody(t *testing.T) {
	tests := []struct {
		name                string
		body                string
		expectedTitle       string
		expectedDescription string
		challenge           bool
	}{
		{
			name:          "Página normal",
			body:          "<html><head><title>Store</title></head><body>ok</body></html>",
			expectedTitle: "Store",
			challenge:     false,
		},
		{
			name: "Meta description extraída",
			body: "<html><head><title>Store</title>" +
				"<meta name=\"description\" content=\"  Comfy shoes for everyone  \">" +
				"</head><body>ok</body></html>",
			expectedTitle:       "Store",
			expectedDescription: "Comfy shoes for everyone",
			challenge:           false,
		},
		{
			name: "Fallback para og:description",
			body: "<html><head><title>Store</title>" +
				"<meta property=\"og:description\" content=\"Shared description\">" +
				"</head><body>ok</body></html>",
			expectedTitle:       "Store",
			expectedDescription: "Shared description",
			challenge:           false,
		},
		{
			name:          "Título de verificação Cloudflare",
			body:          "<html><head><title>Attention Required! | Cloudflare</title></head></html>",
			expectedTitle: "Attention Required! | Cloudflare",
			challenge:     true,
		},
		{
			name:      "Corpo com captcha sem título",
			body:      "<html><body>please solve the captcha below</body></html>",
			challenge: true,
		},
		{
			name:      "Corpo vazio",
			body:      "",
			challenge: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, description, challenge := inspectBody([]byte(tt.body))
			assert.Equal(t, tt.expectedTitle, title)
			assert.Equal(t, tt.expectedDescription, description)
			assert.Equal(t, tt.challenge, challenge)
		})
	}
}
