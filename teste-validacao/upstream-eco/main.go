package main

import (
	"fmt"
	"html"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// echo ecoa o que o gateway decidiu (X-Route-Handler). Tudo que vem do
// cliente é escapado antes de ir para o HTML.
func echo(log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler := r.Header.Get("X-Route-Handler")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<h1>%s</h1><p>host=%s path=%s request=%s</p>",
			html.EscapeString(handler),
			html.EscapeString(r.Host),
			html.EscapeString(r.URL.Path),
			html.EscapeString(r.Header.Get("X-Request-Id")),
		)
		log.Info("request", zap.String("handler", handler), zap.String("host", r.Host), zap.String("path", r.URL.Path))
	})
}

// Upstream de validação.
// UPSTREAM_URL=http://localhost:8081 go run ./cmd/gateway
func main() {
	log := zap.Must(zap.NewDevelopment())
	defer func() { _ = log.Sync() }()

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}
	log.Info("upstream listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, echo(log)); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
