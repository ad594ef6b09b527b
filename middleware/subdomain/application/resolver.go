package application

import (
	"net"
	"strings"

	"subdomain-gateway/middleware/subdomain/domain"

	"golang.org/x/net/idna"
)

// Resolver extrai o token de subdomínio de um hostname cru.
//
// Nunca falha: host vazio, IP, apex ou host malformado viram "".
// Navegação não pode ser bloqueada por erro de parsing de hostname.
type Resolver struct {
	// Bases encontra o domínio registrado. Se nil, usa os dois últimos labels.
	Bases domain.BaseDomainFinder
}

// Resolve devolve o label mais à esquerda antes do domínio base,
// em minúsculas. Função pura.
func (r Resolver) Resolve(hostname string) string {
	host := stripPort(strings.TrimSpace(hostname))
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return ""
	}

	ascii, err := idna.Lookup.ToASCII(strings.ToLower(host))
	if err != nil || ascii == "" {
		return ""
	}
	host = strings.ToLower(ascii)

	for _, label := range strings.Split(host, ".") {
		if label == "" {
			return ""
		}
	}

	base, ok := r.baseDomain(host)
	if !ok || host == base || !strings.HasSuffix(host, "."+base) {
		return ""
	}

	sub := strings.TrimSuffix(host, "."+base)
	if i := strings.IndexByte(sub, '.'); i >= 0 {
		sub = sub[:i]
	}
	return sub
}

func (r Resolver) baseDomain(host string) (string, bool) {
	if r.Bases != nil {
		return r.Bases.BaseDomain(host)
	}
	i := strings.LastIndexByte(host, '.')
	if i < 0 {
		return "", false
	}
	j := strings.LastIndexByte(host[:i], '.')
	if j < 0 {
		return host, true
	}
	return host[j+1:], true
}

// stripPort remove ":porta", inclusive de IPv6 entre colchetes.
// IPv6 sem colchetes é devolvido como veio (net.ParseIP trata depois).
func stripPort(h string) string {
	if strings.HasPrefix(h, "[") {
		if host, _, err := net.SplitHostPort(h); err == nil {
			return host
		}
		return strings.TrimSuffix(strings.TrimPrefix(h, "["), "]")
	}
	if strings.Count(h, ":") != 1 {
		return h
	}
	host, _, err := net.SplitHostPort(h)
	if err != nil {
		return ""
	}
	return host
}
