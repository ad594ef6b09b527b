package application

import (
	"time"

	"subdomain-gateway/middleware/subdomain/domain"
)

// Throttle decide se um subdomínio (tenant) ainda tem crédito.
//
// Não sabe nada sobre HTTP, apenas retorna uma decisão.
type Throttle struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (s Throttle) Decide(subdomain string) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	lim := s.Store.Get(domain.KeyFor(subdomain))
	if lim == nil || lim.Allow() {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: false, RetryAfter: s.RetryAfter}
}
