package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"subdomain-gateway/middleware/subdomain"
	"subdomain-gateway/middleware/subdomain/application"
	"subdomain-gateway/middleware/subdomain/domain"
	"subdomain-gateway/middleware/subdomain/infra"
	"subdomain-gateway/subdomainapp"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	log, err := newLogger(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		log = zap.Must(zap.NewProduction())
		log.Warn("invalid LOG_LEVEL, using info", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	cfg, err := readConfig()
	if err != nil {
		log.Fatal("config error", zap.Error(err))
	}

	table, rf, err := subdomainapp.Load(cfg.routesFile)
	if err != nil {
		log.Fatal("route table error", zap.Error(err))
	}

	handlers, notFound, err := buildHandlers(table.Handlers(), rf, cfg.upstreamURL, log)
	if err != nil {
		log.Fatal("handler wiring error", zap.Error(err))
	}

	bases := cfg.baseDomains
	if rf != nil {
		bases = append(bases, rf.BaseDomains...)
	}
	finder := infra.ChainBaseDomains{infra.NewStaticBaseDomains(bases...)}
	if cfg.publicSuffix {
		finder = append(finder, infra.PublicSuffix{})
	}

	var limits *infra.LimiterStore
	var limiterStore domain.LimiterStore
	if cfg.tenantRPS > 0 {
		limits = infra.NewLimiterStore(cfg.tenantRPS, cfg.tenantBurst, infra.WithMaxBuckets(cfg.tenantMaxBuckets))
		limiterStore = limits
	}

	var statsStore domain.StatsStore
	if cfg.statsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.Fatal("redis stats ping error", zap.Error(err))
		}

		statsStore = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsTrackSubdomains(cfg.statsTrackSubdomains),
		)
	}

	h, err := subdomain.New(subdomain.Options{
		Table:              table,
		Resolver:           application.Resolver{Bases: finder},
		Handlers:           handlers,
		NotFound:           notFound,
		TrustForwardedHost: cfg.trustForwardedHost,
		AddRouteHeaders:    cfg.routeHeaders,
		Limits:             limiterStore,
		RetryAfter:         cfg.retryAfter,
		Stats:              statsStore,
		Logger:             log,
	})
	if err != nil {
		log.Fatal("router error", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if limits != nil {
		g.Go(func() error { return limits.RunJanitor(gctx) })
	}

	log.Info("gateway listening",
		zap.String("addr", cfg.listenAddr),
		zap.Int("routes", table.Len()),
		zap.String("routes_file", cfg.routesFile),
		zap.String("upstream", cfg.upstreamURL),
		zap.Strings("base_domains", bases),
		zap.Bool("public_suffix", cfg.publicSuffix),
	)
	log.Info("throttle", zap.Float64("rps", cfg.tenantRPS), zap.Int("burst", cfg.tenantBurst), zap.Int("max_buckets", cfg.tenantMaxBuckets), zap.Duration("retry_after", cfg.retryAfter))
	log.Info("stats", zap.Bool("enabled", cfg.statsEnabled), zap.String("redis_addr", cfg.statsRedisAddr), zap.Duration("ttl", cfg.statsTTL))

	if err := g.Wait(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, err
	}
	config.Level = lvl
	return config.Build()
}
