package subdomain

import (
	"fmt"
	"net/http"
	"time"

	"subdomain-gateway/middleware/subdomain/application"
	"subdomain-gateway/middleware/subdomain/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader    = "X-Request-Id"
	RouteHandlerHeader = "X-Route-Handler"
	SubdomainHeader    = "X-Route-Subdomain"
)

type Options struct {
	Table    *application.Table
	Resolver application.Resolver

	// Handlers monta cada HandlerID da tabela. Todos precisam estar registrados.
	Handlers map[domain.HandlerID]http.Handler
	// NotFound é montado quando nenhuma rota casa. Padrão: http.NotFound.
	NotFound http.Handler

	HostFn             HostFunc
	TrustForwardedHost bool
	AddRouteHeaders    bool

	// Limits habilita throttling por subdomínio. nil desliga.
	Limits       domain.LimiterStore
	RetryAfter   time.Duration
	RejectStatus int

	Stats  domain.StatsStore
	Logger *zap.Logger
}

type shell struct {
	router   application.Router
	throttle application.Throttle
	handlers map[domain.HandlerID]http.Handler
	notFound http.Handler
	hostFn   HostFunc
	opts     Options
	log      *zap.Logger
}

// New monta o http.Handler que resolve, despacha e monta o handler escolhido.
//
// Falha (uma única vez, no startup) se a tabela estiver vazia ou se algum
// HandlerID da tabela não tiver handler registrado.
func New(opts Options) (http.Handler, error) {
	if opts.Table.Len() == 0 {
		return nil, domain.ErrEmptyTable
	}
	for _, id := range opts.Table.Handlers() {
		if opts.Handlers[id] == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownHandler, id)
		}
	}

	if opts.NotFound == nil {
		opts.NotFound = http.HandlerFunc(http.NotFound)
	}
	if opts.HostFn == nil {
		opts.HostFn = DefaultHostFunc(opts.TrustForwardedHost)
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	handlers := make(map[domain.HandlerID]http.Handler, len(opts.Handlers))
	for id, h := range opts.Handlers {
		handlers[id] = h
	}

	return &shell{
		router:   application.Router{Resolver: opts.Resolver, Table: opts.Table},
		throttle: application.Throttle{Store: opts.Limits, RetryAfter: opts.RetryAfter},
		handlers: handlers,
		notFound: opts.NotFound,
		hostFn:   opts.HostFn,
		opts:     opts,
		log:      opts.Logger,
	}, nil
}

func (s *shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := r.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
		r.Header.Set(RequestIDHeader, reqID)
	}
	w.Header().Set(RequestIDHeader, reqID)

	host := s.hostFn(r)
	rc, dec := s.router.Route(host, r.URL.Path)

	// headers de rota vindos do cliente nunca chegam ao upstream
	r.Header.Del(RouteHandlerHeader)
	r.Header.Del(SubdomainHeader)

	if s.opts.AddRouteHeaders {
		// vai na resposta e no request repassado ao upstream
		for _, hdr := range []http.Header{w.Header(), r.Header} {
			hdr.Set(RouteHandlerHeader, string(dec.Handler))
			hdr.Set(SubdomainHeader, string(domain.KeyFor(rc.Subdomain)))
		}
	}

	ev := domain.DispatchEvent{
		Subdomain: rc.Subdomain,
		Handler:   dec.Handler,
		Matched:   dec.Matched,
		Method:    r.Method,
		Path:      r.URL.Path,
		At:        time.Now(),
	}

	log := s.log.With(
		zap.String("request_id", reqID),
		zap.String("host", host),
		zap.String("subdomain", rc.Subdomain),
		zap.String("path", r.URL.Path),
		zap.String("handler", string(dec.Handler)),
		zap.Bool("matched", dec.Matched),
	)

	if td := s.throttle.Decide(rc.Subdomain); !td.Allowed {
		ev.Throttled = true
		s.record(r, ev, log)
		log.Info("subdomain throttled", zap.Duration("retry_after", td.RetryAfter))
		w.Header().Set("Retry-After", retryAfterSeconds(td.RetryAfter))
		http.Error(w, http.StatusText(s.opts.RejectStatus), s.opts.RejectStatus)
		return
	}

	s.record(r, ev, log)
	log.Debug("dispatch")

	next := s.notFound
	if dec.Matched {
		next = s.handlers[dec.Handler]
	}
	ctx := withMatch(r.Context(), Match{Context: rc, Result: dec})
	next.ServeHTTP(w, r.WithContext(ctx))
}

func (s *shell) record(r *http.Request, ev domain.DispatchEvent, log *zap.Logger) {
	if s.opts.Stats == nil {
		return
	}
	if err := s.opts.Stats.Record(r.Context(), ev); err != nil {
		log.Warn("stats record failed", zap.Error(err))
	}
}
