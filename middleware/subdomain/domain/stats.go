package domain

import (
	"context"
	"time"
)

// DispatchEvent representa uma decisão do dispatcher.
//
// Cuidado com cardinalidade: Subdomain vem do cliente (Host) e pode explodir
// o número de chaves numa base como Redis.
type DispatchEvent struct {
	Subdomain string
	Handler   HandlerID
	Matched   bool
	Throttled bool

	Method string
	Path   string

	At time.Time
}

// StatsStore persiste estatísticas de dispatch.
// O adapter HTTP trata erro como best-effort (não derruba request).
type StatsStore interface {
	Record(ctx context.Context, ev DispatchEvent) error
}
