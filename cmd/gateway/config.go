package main

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	listenAddr         string
	upstreamURL        string
	routesFile         string
	baseDomains        []string
	publicSuffix       bool
	trustForwardedHost bool
	routeHeaders       bool

	tenantRPS        float64
	tenantBurst      int
	tenantMaxBuckets int
	retryAfter       time.Duration

	statsEnabled         bool
	statsRedisAddr       string
	statsRedisPassword   string
	statsRedisDB         int
	statsPrefix          string
	statsTTL             time.Duration
	statsTrackSubdomains bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.upstreamURL = os.Getenv("UPSTREAM_URL")
	cfg.routesFile = os.Getenv("ROUTES_FILE")
	cfg.baseDomains = getenvList("BASE_DOMAINS")
	cfg.publicSuffix = getenvBoolDefault("PUBLIC_SUFFIX", true)
	cfg.trustForwardedHost = getenvBoolDefault("TRUST_FORWARDED_HOST", false)
	cfg.routeHeaders = getenvBoolDefault("ROUTE_HEADERS", true)

	// TENANT_RPS=0 desliga o throttling por subdomínio.
	cfg.tenantRPS = getenvFloatDefault("TENANT_RPS", 0)
	cfg.tenantBurst = getenvIntDefault("TENANT_BURST", 20)
	cfg.tenantMaxBuckets = getenvIntDefault("TENANT_MAX_BUCKETS", 10000)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)

	cfg.statsEnabled = getenvBoolDefault("STATS_ENABLED", false)
	cfg.statsRedisAddr = os.Getenv("STATS_REDIS_ADDR")
	cfg.statsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "subdomain:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)
	cfg.statsTrackSubdomains = getenvBoolDefault("STATS_TRACK_SUBDOMAINS", false)

	if cfg.upstreamURL == "" && cfg.routesFile == "" {
		return config{}, errors.New("UPSTREAM_URL or ROUTES_FILE is required")
	}
	if cfg.statsEnabled && strings.TrimSpace(cfg.statsRedisAddr) == "" {
		return config{}, errors.New("STATS_REDIS_ADDR is required when STATS_ENABLED=true")
	}
	if cfg.tenantRPS < 0 {
		return config{}, errors.New("TENANT_RPS must be >= 0")
	}
	if cfg.tenantRPS > 0 && cfg.tenantBurst <= 0 {
		return config{}, errors.New("TENANT_BURST must be > 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getenvList lê uma lista separada por vírgula, ignorando itens vazios.
func getenvList(k string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(k), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
