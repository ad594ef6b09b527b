package infra

import (
	"context"
	"sync"
	"time"

	"subdomain-gateway/middleware/subdomain/domain"

	"golang.org/x/time/rate"
)

// LimiterStore mantém um token bucket (x/time/rate) por subdomínio,
// com limpeza periódica das chaves inativas.
//
// O subdomínio vem do Host do cliente, então o número de buckets é limitado
// por maxBuckets: com o store cheio, chaves novas dividem um único bucket
// de overflow até o janitor liberar espaço.
type LimiterStore struct {
	mu           sync.Mutex
	buckets      map[domain.Key]*bucket
	overflow     *rate.Limiter
	rps          rate.Limit
	burst        int
	maxBuckets   int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type LimiterOption func(*LimiterStore)

func WithIdleTTL(d time.Duration) LimiterOption {
	return func(s *LimiterStore) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) LimiterOption {
	return func(s *LimiterStore) { s.cleanupEvery = d }
}

// WithMaxBuckets limita quantas chaves têm bucket próprio. <= 0 desliga o limite.
func WithMaxBuckets(n int) LimiterOption {
	return func(s *LimiterStore) { s.maxBuckets = n }
}

func NewLimiterStore(rps float64, burst int, opts ...LimiterOption) *LimiterStore {
	s := &LimiterStore{
		buckets:      make(map[domain.Key]*bucket),
		rps:          rate.Limit(rps),
		burst:        burst,
		maxBuckets:   10000,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.overflow = rate.NewLimiter(s.rps, s.burst)
	return s
}

func (s *LimiterStore) RPS() float64 { return float64(s.rps) }
func (s *LimiterStore) Burst() int   { return s.burst }

// Get implementa domain.LimiterStore.
func (s *LimiterStore) Get(key domain.Key) domain.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buckets[key]; ok {
		b.lastSeen = now
		return b.lim
	}
	if s.maxBuckets > 0 && len(s.buckets) >= s.maxBuckets {
		return s.overflow
	}
	lim := rate.NewLimiter(s.rps, s.burst)
	s.buckets[key] = &bucket{lim: lim, lastSeen: now}
	return lim
}

func (s *LimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *LimiterStore) Cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, b := range s.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(s.buckets, k)
		}
	}
}

// RunJanitor limpa chaves inativas até o ctx encerrar. Bloqueia;
// rode numa goroutine (ou num errgroup).
func (s *LimiterStore) RunJanitor(ctx context.Context) error {
	if s.cleanupEvery <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(s.cleanupEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.Cleanup()
		}
	}
}
