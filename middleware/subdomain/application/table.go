package application

import (
	"fmt"
	"strings"

	"subdomain-gateway/middleware/subdomain/domain"
)

// Table é a sequência ordenada de rotas. A ordem de inserção importa
// (first-match-wins). Construída uma vez no startup e nunca mais alterada,
// por isso leituras concorrentes não precisam de lock.
type Table struct {
	routes []domain.RouteDefinition
}

// NewTable valida e copia as definições.
//
// Falha com tabela vazia, matcher nil, handler vazio/reservado ou dois
// Patterns idênticos (ambíguos: o segundo nunca seria alcançado).
func NewTable(defs ...domain.RouteDefinition) (*Table, error) {
	if len(defs) == 0 {
		return nil, domain.ErrEmptyTable
	}

	seen := make(map[domain.Pattern]int, len(defs))
	for i, d := range defs {
		switch {
		case d.Matcher == nil:
			return nil, fmt.Errorf("route %d (%s): %w", i, d.Handler, domain.ErrNilMatcher)
		case strings.TrimSpace(string(d.Handler)) == "":
			return nil, fmt.Errorf("route %d: %w", i, domain.ErrEmptyHandler)
		case d.Handler == domain.NotFoundHandler:
			return nil, fmt.Errorf("route %d: %w", i, domain.ErrReservedHandler)
		}

		p, ok := patternKey(d.Matcher)
		if !ok {
			continue
		}
		if j, dup := seen[p]; dup {
			return nil, fmt.Errorf("routes %d (%s) and %d (%s): %w",
				j, defs[j].Handler, i, d.Handler, domain.ErrDuplicateRoute)
		}
		seen[p] = i
	}

	routes := make([]domain.RouteDefinition, len(defs))
	copy(routes, defs)
	return &Table{routes: routes}, nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.routes)
}

// Routes devolve uma cópia; a tabela em si continua imutável.
func (t *Table) Routes() []domain.RouteDefinition {
	if t == nil {
		return nil
	}
	out := make([]domain.RouteDefinition, len(t.routes))
	copy(out, t.routes)
	return out
}

// Handlers devolve os ids distintos na ordem de declaração.
func (t *Table) Handlers() []domain.HandlerID {
	if t == nil {
		return nil
	}
	seen := make(map[domain.HandlerID]bool, len(t.routes))
	out := make([]domain.HandlerID, 0, len(t.routes))
	for _, r := range t.routes {
		if seen[r.Handler] {
			continue
		}
		seen[r.Handler] = true
		out = append(out, r.Handler)
	}
	return out
}

// Expect garante a cardinalidade da tabela.
func (t *Table) Expect(n int) error {
	if got := t.Len(); got != n {
		return fmt.Errorf("%w: got %d, want %d", domain.ErrRouteCount, got, n)
	}
	return nil
}

func patternKey(m domain.Matcher) (domain.Pattern, bool) {
	var p domain.Pattern
	switch v := m.(type) {
	case domain.Pattern:
		p = v
	case *domain.Pattern:
		if v == nil {
			return domain.Pattern{}, false
		}
		p = *v
	default:
		return domain.Pattern{}, false
	}
	p.Subdomain = strings.ToLower(strings.TrimSpace(p.Subdomain))
	if p.Path == "" {
		p.Prefix = false
	}
	return p, true
}
