package application

import "subdomain-gateway/middleware/subdomain/domain"

// Dispatch percorre a tabela na ordem declarada e devolve o handler do
// primeiro matcher que casar. Sem match (ou tabela nil) devolve NotFound.
//
// Função pura: nunca falha e pode ser chamada concorrentemente.
func Dispatch(rc domain.ResolvedContext, t *Table) domain.DispatchResult {
	if t == nil {
		return domain.NotFound()
	}
	for _, r := range t.routes {
		if r.Matcher.Match(rc.Subdomain, rc.Path) {
			return domain.DispatchResult{Handler: r.Handler, Matched: true}
		}
	}
	return domain.NotFound()
}

// Router junta Resolver e Table: hostname/path -> contexto resolvido -> resultado.
type Router struct {
	Resolver Resolver
	Table    *Table
}

func (r Router) Route(hostname, path string) (domain.ResolvedContext, domain.DispatchResult) {
	rc := domain.ResolvedContext{
		Subdomain: r.Resolver.Resolve(hostname),
		Path:      path,
	}
	return rc, Dispatch(rc, r.Table)
}
