package subdomain

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"subdomain-gateway/middleware/subdomain/application"
	"subdomain-gateway/middleware/subdomain/domain"
	"subdomain-gateway/middleware/subdomain/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testTable(t *testing.T) *application.Table {
	t.Helper()
	table, err := application.NewTable(
		domain.RouteDefinition{Matcher: domain.Pattern{Subdomain: "billing", Path: "/invoices", Prefix: true}, Handler: "invoices"},
		domain.RouteDefinition{Matcher: domain.Pattern{Subdomain: domain.AnySubdomain, Path: "/live", Prefix: true}, Handler: "live"},
	)
	require.NoError(t, err)
	return table
}

// named responde com o próprio nome e o Match do context.
func named(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, _ := FromContext(r.Context())
		w.Header().Set("X-Served-By", name)
		w.Header().Set("X-Seen-Subdomain", m.Context.Subdomain)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, name)
	})
}

func testHandlers() map[domain.HandlerID]http.Handler {
	return map[domain.HandlerID]http.Handler{
		"invoices": named("invoices"),
		"live":     named("live"),
	}
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestNew_FailsFastOnConfiguration(t *testing.T) {
	t.Run("nil_table", func(t *testing.T) {
		_, err := New(Options{})
		assert.ErrorIs(t, err, domain.ErrEmptyTable)
	})

	t.Run("missing_handler", func(t *testing.T) {
		_, err := New(Options{
			Table:    testTable(t),
			Handlers: map[domain.HandlerID]http.Handler{"invoices": named("invoices")},
		})
		assert.ErrorIs(t, err, domain.ErrUnknownHandler)
		assert.Contains(t, err.Error(), "live")
	})
}

func TestRouter_MountsMatchedHandler(t *testing.T) {
	h, err := New(Options{Table: testTable(t), Handlers: testHandlers(), AddRouteHeaders: true})
	require.NoError(t, err)

	w := serve(h, "http://billing.example.com/invoices/9")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "invoices", w.Header().Get("X-Served-By"))
	assert.Equal(t, "billing", w.Header().Get("X-Seen-Subdomain"))
	assert.Equal(t, "invoices", w.Header().Get(RouteHandlerHeader))
	assert.Equal(t, "billing", w.Header().Get(SubdomainHeader))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = serve(h, "http://acme.example.com/live")
	assert.Equal(t, "live", w.Header().Get("X-Served-By"))
}

func TestRouter_FallsBackToNotFound(t *testing.T) {
	t.Run("default_not_found", func(t *testing.T) {
		h, err := New(Options{Table: testTable(t), Handlers: testHandlers(), AddRouteHeaders: true})
		require.NoError(t, err)

		w := serve(h, "http://unknown.example.com/nothing")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, string(domain.NotFoundHandler), w.Header().Get(RouteHandlerHeader))
	})

	t.Run("custom_not_found_sees_apex", func(t *testing.T) {
		var seen Match
		nf := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = FromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		})
		h, err := New(Options{Table: testTable(t), Handlers: testHandlers(), NotFound: nf, AddRouteHeaders: true})
		require.NoError(t, err)

		w := serve(h, "http://example.com/")
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "@", w.Header().Get(SubdomainHeader))
		assert.Equal(t, domain.NotFound(), seen.Result)
		assert.Equal(t, "", seen.Context.Subdomain)
	})
}

func TestRouter_PropagatesRequestID(t *testing.T) {
	var upstreamSaw string
	handlers := testHandlers()
	handlers["live"] = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamSaw = r.Header.Get(RequestIDHeader)
	})
	h, err := New(Options{Table: testTable(t), Handlers: handlers})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "http://acme.example.com/live", nil)
	r.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", upstreamSaw)

	serve(h, "http://acme.example.com/live")
	assert.NotEmpty(t, upstreamSaw)
	assert.NotEqual(t, "req-123", upstreamSaw)
}

func TestRouter_RouteHeadersReachHandler(t *testing.T) {
	var sawHandler, sawSubdomain string
	handlers := testHandlers()
	handlers["invoices"] = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawHandler = r.Header.Get(RouteHandlerHeader)
		sawSubdomain = r.Header.Get(SubdomainHeader)
	})
	h, err := New(Options{Table: testTable(t), Handlers: handlers, AddRouteHeaders: true})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "http://billing.example.com/invoices", nil)
	r.Header.Set(RouteHandlerHeader, "spoofed")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "invoices", sawHandler)
	assert.Equal(t, "billing", sawSubdomain)
}

func TestRouter_StripsClientRouteHeaders(t *testing.T) {
	var sawHandler, sawSubdomain string
	handlers := testHandlers()
	handlers["live"] = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawHandler = r.Header.Get(RouteHandlerHeader)
		sawSubdomain = r.Header.Get(SubdomainHeader)
	})
	h, err := New(Options{Table: testTable(t), Handlers: handlers, AddRouteHeaders: false})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "http://acme.example.com/live", nil)
	r.Header.Set(RouteHandlerHeader, "invoices")
	r.Header.Set(SubdomainHeader, "billing")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "", sawHandler)
	assert.Equal(t, "", sawSubdomain)
	assert.Empty(t, w.Header().Get(RouteHandlerHeader))
}

func TestRouter_TrustForwardedHost(t *testing.T) {
	h, err := New(Options{Table: testTable(t), Handlers: testHandlers(), TrustForwardedHost: true})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "http://gateway.internal/invoices", nil)
	r.Header.Set("X-Forwarded-Host", "billing.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "invoices", w.Header().Get("X-Served-By"))
}

func TestRouter_ThrottlesPerSubdomain(t *testing.T) {
	stats := infra.NewMemoryStatsStore(infra.WithTrackSubdomains(true))
	calls := 0
	handlers := testHandlers()
	handlers["live"] = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	h, err := New(Options{
		Table:      testTable(t),
		Handlers:   handlers,
		Limits:     infra.NewLimiterStore(0.02, 1),
		RetryAfter: 2500 * time.Millisecond,
		Stats:      stats,
	})
	require.NoError(t, err)

	w1 := serve(h, "http://acme.example.com/live")
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := serve(h, "http://acme.example.com/live")
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Equal(t, "3", w2.Header().Get("Retry-After"))

	// outro tenant tem o próprio bucket
	w3 := serve(h, "http://other.example.com/live")
	assert.Equal(t, http.StatusOK, w3.Code)

	assert.Equal(t, 2, calls)
	assert.Equal(t, infra.Counters{Matched: 1, Throttled: 1}, stats.BySubdomain()["acme"])
	assert.Equal(t, infra.Counters{Matched: 2, Throttled: 1}, stats.Total())
}

type failingStats struct{}

func (failingStats) Record(context.Context, domain.DispatchEvent) error {
	return errors.New("redis down")
}

func TestRouter_StatsFailureIsBestEffort(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	h, err := New(Options{
		Table:    testTable(t),
		Handlers: testHandlers(),
		Stats:    failingStats{},
		Logger:   zap.New(core),
	})
	require.NoError(t, err)

	w := serve(h, "http://billing.example.com/invoices")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("stats record failed").Len())
}
