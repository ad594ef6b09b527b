package domain

import "strings"

// HandlerID identifica de forma opaca qual handler deve ser montado.
type HandlerID string

// NotFoundHandler é o id reservado do fallback. Nenhuma rota pode usá-lo.
const NotFoundHandler HandlerID = "not-found"

// AnySubdomain casa com qualquer subdomínio não vazio.
const AnySubdomain = "*"

// Matcher decide se uma rota se aplica a um par (subdomínio, path).
type Matcher interface {
	Match(subdomain, path string) bool
}

type MatcherFunc func(subdomain, path string) bool

func (f MatcherFunc) Match(subdomain, path string) bool { return f(subdomain, path) }

// Pattern é o matcher declarativo usado pela aplicação e pelo arquivo de rotas.
//
//   - Subdomain "" casa apenas com o apex; "*" com qualquer subdomínio não vazio;
//     qualquer outro valor com aquele token exato.
//   - Path vazio casa com qualquer path. Com Prefix, o path precisa ser igual ao
//     prefixo ou continuá-lo numa fronteira de segmento ("/a" casa "/a/b", não "/ab").
type Pattern struct {
	Subdomain string
	Path      string
	Prefix    bool
}

func (p Pattern) Match(subdomain, path string) bool {
	want := strings.ToLower(strings.TrimSpace(p.Subdomain))
	switch want {
	case AnySubdomain:
		if subdomain == "" {
			return false
		}
	default:
		if subdomain != want {
			return false
		}
	}

	if p.Path == "" {
		return true
	}
	if path == "" {
		path = "/"
	}
	if !p.Prefix {
		return path == p.Path
	}
	if !strings.HasPrefix(path, p.Path) {
		return false
	}
	if len(path) == len(p.Path) || strings.HasSuffix(p.Path, "/") {
		return true
	}
	return path[len(p.Path)] == '/'
}

// RouteDefinition associa um matcher a um handler. Imutável depois de criada.
type RouteDefinition struct {
	Matcher Matcher
	Handler HandlerID
}

// ResolvedContext é criado a cada navegação e não é compartilhado.
type ResolvedContext struct {
	Subdomain string
	Path      string
}

type DispatchResult struct {
	Handler HandlerID
	Matched bool
}

// NotFound é o resultado padrão quando nenhuma rota casa.
func NotFound() DispatchResult {
	return DispatchResult{Handler: NotFoundHandler, Matched: false}
}
