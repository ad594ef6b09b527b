package infra

import (
	"sort"
	"strings"

	"subdomain-gateway/middleware/subdomain/domain"

	"golang.org/x/net/publicsuffix"
)

// StaticBaseDomains é uma lista fixa de domínios base (ex: "example.com").
// O mais longo que casar vence, então "eu.example.com" tem precedência
// sobre "example.com" quando ambos estão configurados.
type StaticBaseDomains struct {
	bases []string
}

func NewStaticBaseDomains(bases ...string) StaticBaseDomains {
	out := make([]string, 0, len(bases))
	for _, b := range bases {
		b = strings.Trim(strings.ToLower(strings.TrimSpace(b)), ".")
		if b != "" {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return StaticBaseDomains{bases: out}
}

func (s StaticBaseDomains) BaseDomain(host string) (string, bool) {
	for _, b := range s.bases {
		if host == b || strings.HasSuffix(host, "."+b) {
			return b, true
		}
	}
	return "", false
}

// PublicSuffix usa a Public Suffix List (eTLD+1) para achar o domínio registrado.
type PublicSuffix struct{}

func (PublicSuffix) BaseDomain(host string) (string, bool) {
	base, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", false
	}
	return base, true
}

// ChainBaseDomains tenta cada finder em ordem e devolve o primeiro que achar.
type ChainBaseDomains []domain.BaseDomainFinder

func (c ChainBaseDomains) BaseDomain(host string) (string, bool) {
	for _, f := range c {
		if f == nil {
			continue
		}
		if base, ok := f.BaseDomain(host); ok {
			return base, true
		}
	}
	return "", false
}
