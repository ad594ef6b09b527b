package infra

import (
	"context"
	"sync"

	"subdomain-gateway/middleware/subdomain/domain"
)

type Counters struct {
	Matched   int64
	NotFound  int64
	Throttled int64
}

func (c *Counters) add(ev domain.DispatchEvent) {
	switch {
	case ev.Throttled:
		c.Throttled++
	case ev.Matched:
		c.Matched++
	default:
		c.NotFound++
	}
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento. Não faz expiração.
type MemoryStatsStore struct {
	mu          sync.Mutex
	total       Counters
	byHandler   map[domain.HandlerID]Counters
	bySubdomain map[string]Counters

	trackSubdomains bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackSubdomains(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackSubdomains = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byHandler:   make(map[domain.HandlerID]Counters),
		bySubdomain: make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.DispatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev)

	c := s.byHandler[ev.Handler]
	c.add(ev)
	s.byHandler[ev.Handler] = c

	if s.trackSubdomains {
		key := string(domain.KeyFor(ev.Subdomain))
		sc := s.bySubdomain[key]
		sc.add(ev)
		s.bySubdomain[key] = sc
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByHandler() map[domain.HandlerID]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.HandlerID]Counters, len(s.byHandler))
	for k, v := range s.byHandler {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) BySubdomain() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.bySubdomain))
	for k, v := range s.bySubdomain {
		out[k] = v
	}
	return out
}
