package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subdomain-gateway/middleware/subdomain"
	"subdomain-gateway/middleware/subdomain/application"
	"subdomain-gateway/middleware/subdomain/domain"
	"subdomain-gateway/middleware/subdomain/infra"
	"subdomain-gateway/subdomainapp"

	"go.uber.org/zap"
)

// view responde com o nome do handler e o subdomínio resolvido.
func view(id domain.HandlerID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, _ := subdomain.FromContext(r.Context())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintf(w, "%s (subdomain=%q path=%q)\n", id, m.Context.Subdomain, m.Context.Path)
	})
}

func main() {
	// Exemplo: montando o roteador direto no webserver (sem proxy)
	log := zap.Must(zap.NewDevelopment())
	defer func() { _ = log.Sync() }()

	table, err := subdomainapp.Build()
	if err != nil {
		log.Fatal("route table error", zap.Error(err))
	}

	handlers := make(map[domain.HandlerID]http.Handler, table.Len())
	for _, id := range table.Handlers() {
		handlers[id] = view(id)
	}

	limits := infra.NewLimiterStore(5, 10)
	stats := infra.NewMemoryStatsStore(infra.WithTrackSubdomains(true))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go func() { _ = limits.RunJanitor(ctx) }()

	h, err := subdomain.New(subdomain.Options{
		Table: table,
		// *.localhost resolve para 127.0.0.1 na maioria dos sistemas:
		// curl http://billing.localhost:8081/invoices
		Resolver:        application.Resolver{Bases: infra.NewStaticBaseDomains("localhost")},
		Handlers:        handlers,
		AddRouteHeaders: true,
		Limits:          limits,
		Stats:           stats,
		Logger:          log,
	})
	if err != nil {
		log.Fatal("router error", zap.Error(err))
	}

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("example server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("dispatch totals", zap.Any("total", stats.Total()), zap.Any("by_subdomain", stats.BySubdomain()))
}
