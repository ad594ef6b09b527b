package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"

	"subdomain-gateway/middleware/subdomain/domain"
	"subdomain-gateway/middleware/subdomain/infra"

	"go.uber.org/zap"
)

func newProxy(upstream string, log *zap.Logger) (http.Handler, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream %q: %w", upstream, err)
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("proxy error", zap.String("upstream", target.String()), zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}
	return proxy, nil
}

func newPage(body string, status int) http.Handler {
	if status == 0 {
		status = http.StatusOK
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// buildHandlers monta um http.Handler por HandlerID.
//
// Com arquivo de rotas, cada id usa o handler declarado no arquivo e cai no
// upstream padrão quando não houver um. Sem arquivo, tudo vai para o upstream
// padrão (o upstream lê X-Route-Handler para saber qual view renderizar).
func buildHandlers(ids []domain.HandlerID, rf *infra.RouteFile, defaultUpstream string, log *zap.Logger) (map[domain.HandlerID]http.Handler, http.Handler, error) {
	var fallback http.Handler
	if defaultUpstream != "" {
		p, err := newProxy(defaultUpstream, log)
		if err != nil {
			return nil, nil, err
		}
		fallback = p
	}

	build := func(id domain.HandlerID) (http.Handler, error) {
		if rf != nil {
			if spec, ok := rf.Handlers[string(id)]; ok {
				if spec.Upstream != "" {
					return newProxy(spec.Upstream, log)
				}
				return newPage(spec.Page, spec.Status), nil
			}
		}
		if fallback == nil {
			return nil, fmt.Errorf("%w: %s (set UPSTREAM_URL or declare it in ROUTES_FILE)", domain.ErrUnknownHandler, id)
		}
		return fallback, nil
	}

	out := make(map[domain.HandlerID]http.Handler, len(ids))
	for _, id := range ids {
		h, err := build(id)
		if err != nil {
			return nil, nil, err
		}
		out[id] = h
	}

	var notFound http.Handler
	if rf != nil {
		if _, ok := rf.Handlers[string(domain.NotFoundHandler)]; ok {
			h, err := build(domain.NotFoundHandler)
			if err != nil {
				return nil, nil, err
			}
			notFound = h
		}
	}
	return out, notFound, nil
}
