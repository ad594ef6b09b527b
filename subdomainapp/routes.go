// Package subdomainapp declara a tabela concreta da aplicação servida por subdomínio.
//
// São exatamente quatro rotas, avaliadas nesta ordem. O fallback NotFound
// é implícito e não conta entre as quatro.
package subdomainapp

import (
	"fmt"

	"subdomain-gateway/middleware/subdomain/application"
	"subdomain-gateway/middleware/subdomain/domain"
)

const (
	BillingInvoices domain.HandlerID = "billing.invoices"
	AuthLogin       domain.HandlerID = "auth.login"
	AuthLogout      domain.HandlerID = "auth.logout"
	ConsoleLive     domain.HandlerID = "console.live"
)

// RouteCount é a cardinalidade fixa da tabela.
const RouteCount = 4

// Routes devolve as definições em ordem. A rota específica de billing vem
// antes das rotas de qualquer subdomínio.
func Routes() []domain.RouteDefinition {
	return []domain.RouteDefinition{
		{Matcher: domain.Pattern{Subdomain: "billing", Path: "/invoices", Prefix: true}, Handler: BillingInvoices},
		{Matcher: domain.Pattern{Subdomain: domain.AnySubdomain, Path: "/login"}, Handler: AuthLogin},
		{Matcher: domain.Pattern{Subdomain: domain.AnySubdomain, Path: "/logout"}, Handler: AuthLogout},
		{Matcher: domain.Pattern{Subdomain: domain.AnySubdomain, Path: "/live", Prefix: true}, Handler: ConsoleLive},
	}
}

// Build valida a tabela; deve ser chamado uma vez no startup.
func Build() (*application.Table, error) {
	t, err := application.NewTable(Routes()...)
	if err != nil {
		return nil, fmt.Errorf("subdomain app routes: %w", err)
	}
	if err := t.Expect(RouteCount); err != nil {
		return nil, fmt.Errorf("subdomain app routes: %w", err)
	}
	return t, nil
}
