package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/internal/usecases/resolving"
	"github.com/vfg2006/autoads-api/pkg/apiErrors"
)

type proxyActionRequest struct {
	ProxyURL string `json:"proxy_url"`
}

// GetProxyHealth retorna o estado de todos os proxies do pool
func GetProxyHealth(resolver resolving.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetProxyHealth")

		health := resolver.PoolHealth()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"proxies": health,
			"total":   len(health),
		})
	}
}

// EnableProxy reabilita manualmente um proxy do pool
func EnableProxy(resolver resolving.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - EnableProxy")

		req, ok := decodeProxyAction(w, r)
		if !ok {
			return
		}

		if err := resolver.EnableProxy(req.ProxyURL); err != nil {
			handleProxyError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"proxy_url": req.ProxyURL,
			"enabled":   true,
		})
	}
}

// DisableProxy desabilita manualmente um proxy do pool
func DisableProxy(resolver resolving.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DisableProxy")

		req, ok := decodeProxyAction(w, r)
		if !ok {
			return
		}

		if err := resolver.DisableProxy(req.ProxyURL); err != nil {
			handleProxyError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"proxy_url": req.ProxyURL,
			"enabled":   false,
		})
	}
}

func decodeProxyAction(w http.ResponseWriter, r *http.Request) (*proxyActionRequest, bool) {
	var req proxyActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
		return nil, false
	}

	if req.ProxyURL == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "URL do proxy não fornecida", nil)
		return nil, false
	}

	return &req, true
}

func handleProxyError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	if errors.Is(err, resolving.ErrProxyNotFound) {
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Proxy não encontrado no pool", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao gerenciar proxy", nil)
}
