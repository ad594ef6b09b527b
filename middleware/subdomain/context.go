package subdomain

import (
	"context"

	"subdomain-gateway/middleware/subdomain/domain"
)

type matchKey struct{}

// Match é o que o dispatcher decidiu para a requisição corrente.
type Match struct {
	Context domain.ResolvedContext
	Result  domain.DispatchResult
}

func withMatch(ctx context.Context, m Match) context.Context {
	return context.WithValue(ctx, matchKey{}, m)
}

// FromContext devolve o Match gravado pelo handler de New.
func FromContext(ctx context.Context) (Match, bool) {
	m, ok := ctx.Value(matchKey{}).(Match)
	return m, ok
}
