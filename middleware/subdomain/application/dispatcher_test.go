package application

import (
	"testing"

	"subdomain-gateway/middleware/subdomain/domain"
)

func mustTable(t *testing.T, defs ...domain.RouteDefinition) *Table {
	t.Helper()
	table, err := NewTable(defs...)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestDispatch_FirstMatchWins(t *testing.T) {
	table := mustTable(t,
		domain.RouteDefinition{Matcher: domain.Pattern{Subdomain: "billing", Path: "/invoices", Prefix: true}, Handler: "specific"},
		domain.RouteDefinition{Matcher: domain.Pattern{Subdomain: domain.AnySubdomain, Path: "/", Prefix: true}, Handler: "wildcard"},
	)

	dec := Dispatch(domain.ResolvedContext{Subdomain: "billing", Path: "/invoices/7"}, table)
	if !dec.Matched || dec.Handler != "specific" {
		t.Fatalf("expected specific route, got %+v", dec)
	}

	dec = Dispatch(domain.ResolvedContext{Subdomain: "billing", Path: "/other"}, table)
	if !dec.Matched || dec.Handler != "wildcard" {
		t.Fatalf("expected wildcard route, got %+v", dec)
	}
}

func TestDispatch_OrderIsSignificant(t *testing.T) {
	table := mustTable(t,
		domain.RouteDefinition{Matcher: domain.Pattern{Subdomain: domain.AnySubdomain, Path: "/", Prefix: true}, Handler: "wildcard"},
		domain.RouteDefinition{Matcher: domain.Pattern{Subdomain: "billing", Path: "/invoices", Prefix: true}, Handler: "specific"},
	)

	dec := Dispatch(domain.ResolvedContext{Subdomain: "billing", Path: "/invoices"}, table)
	if dec.Handler != "wildcard" {
		t.Fatalf("expected earlier wildcard to win, got %+v", dec)
	}
}

func TestDispatch_FallsBackToNotFound(t *testing.T) {
	table := mustTable(t,
		domain.RouteDefinition{Matcher: domain.Pattern{Subdomain: "billing"}, Handler: "billing"},
	)

	for _, rc := range []domain.ResolvedContext{
		{Subdomain: "unknown", Path: "/nothing"},
		{Subdomain: "", Path: "/"},
		{},
	} {
		if dec := Dispatch(rc, table); dec != domain.NotFound() {
			t.Fatalf("expected NotFound for %+v, got %+v", rc, dec)
		}
	}

	if dec := Dispatch(domain.ResolvedContext{Subdomain: "billing"}, nil); dec != domain.NotFound() {
		t.Fatalf("expected NotFound for nil table, got %+v", dec)
	}
}

func TestDispatch_AcceptsMatcherFunc(t *testing.T) {
	calls := 0
	table := mustTable(t, domain.RouteDefinition{
		Matcher: domain.MatcherFunc(func(sub, path string) bool {
			calls++
			return sub == "x" && path == "/y"
		}),
		Handler: "fn",
	})

	if dec := Dispatch(domain.ResolvedContext{Subdomain: "x", Path: "/y"}, table); dec.Handler != "fn" {
		t.Fatalf("expected fn handler, got %+v", dec)
	}
	if calls != 1 {
		t.Fatalf("expected matcher to be called once, got %d", calls)
	}
}

func TestRouter_RouteResolvesThenDispatches(t *testing.T) {
	r := Router{
		Resolver: Resolver{Bases: staticBase{"example.com"}},
		Table: mustTable(t,
			domain.RouteDefinition{Matcher: domain.Pattern{Path: "/"}, Handler: "home"},
			domain.RouteDefinition{Matcher: domain.Pattern{Subdomain: "billing", Path: "/invoices", Prefix: true}, Handler: "invoices"},
		),
	}

	rc, dec := r.Route("billing.example.com", "/invoices")
	if rc.Subdomain != "billing" || dec.Handler != "invoices" || !dec.Matched {
		t.Fatalf("unexpected route result: %+v %+v", rc, dec)
	}

	rc, dec = r.Route("example.com", "/")
	if rc.Subdomain != "" || dec.Handler != "home" {
		t.Fatalf("expected apex home route, got %+v %+v", rc, dec)
	}

	_, first := r.Route("unknown.example.com", "/nothing")
	_, second := r.Route("unknown.example.com", "/nothing")
	if first != second || first != domain.NotFound() {
		t.Fatalf("expected deterministic NotFound, got %+v and %+v", first, second)
	}
}
