package domain

import "time"

// Key identifica o bucket de throttling (normalmente o subdomínio/tenant).
type Key string

// ApexKey é a chave usada quando a requisição não tem subdomínio.
const ApexKey Key = "@"

// KeyFor devolve a chave de throttling de um subdomínio.
func KeyFor(subdomain string) Key {
	if subdomain == "" {
		return ApexKey
	}
	return Key(subdomain)
}

// Limiter decide se uma ação é permitida agora.
type Limiter interface {
	Allow() bool
}

// LimiterStore obtém um limiter por chave.
type LimiterStore interface {
	Get(Key) Limiter
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}
