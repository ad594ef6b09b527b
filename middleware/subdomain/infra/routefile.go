package infra

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"subdomain-gateway/middleware/subdomain/domain"

	"gopkg.in/yaml.v3"
)

// RouteFile é o formato YAML da tabela de rotas:
//
//	base_domains: [example.com]
//	expect_routes: 4
//	routes:
//	  - handler: billing.invoices
//	    subdomain: billing
//	    path: /invoices
//	    prefix: true
//	handlers:
//	  billing.invoices:
//	    upstream: http://billing:8080
//	  not-found:
//	    page: "nada aqui"
//	    status: 404
//
// A ordem de routes é a ordem de avaliação (first-match-wins).
type RouteFile struct {
	BaseDomains  []string               `yaml:"base_domains"`
	ExpectRoutes int                    `yaml:"expect_routes"`
	Routes       []RouteSpec            `yaml:"routes"`
	Handlers     map[string]HandlerSpec `yaml:"handlers"`
}

type RouteSpec struct {
	Handler   string `yaml:"handler"`
	Subdomain string `yaml:"subdomain"`
	Path      string `yaml:"path"`
	Prefix    bool   `yaml:"prefix"`
}

// HandlerSpec descreve o destino: proxy para Upstream ou uma página estática.
type HandlerSpec struct {
	Upstream string `yaml:"upstream"`
	Page     string `yaml:"page"`
	Status   int    `yaml:"status"`
}

var ErrInvalidRouteFile = errors.New("invalid route file")

func LoadRouteFile(path string) (*RouteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route file: %w", err)
	}
	return ParseRouteFile(data)
}

func ParseRouteFile(data []byte) (*RouteFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rf RouteFile
	if err := dec.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRouteFile, err)
	}
	if err := rf.validate(); err != nil {
		return nil, err
	}
	return &rf, nil
}

func (rf *RouteFile) validate() error {
	for i, r := range rf.Routes {
		if strings.TrimSpace(r.Handler) == "" {
			return fmt.Errorf("%w: route %d has no handler", ErrInvalidRouteFile, i)
		}
		if r.Path != "" && !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("%w: route %d path %q must start with /", ErrInvalidRouteFile, i, r.Path)
		}
	}
	for id, h := range rf.Handlers {
		hasUp, hasPage := h.Upstream != "", h.Page != ""
		if hasUp == hasPage {
			return fmt.Errorf("%w: handler %q needs exactly one of upstream or page", ErrInvalidRouteFile, id)
		}
		if hasUp {
			u, err := url.Parse(h.Upstream)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("%w: handler %q upstream %q is not an absolute URL", ErrInvalidRouteFile, id, h.Upstream)
			}
		}
		if h.Status != 0 && (h.Status < 100 || h.Status > 599) {
			return fmt.Errorf("%w: handler %q status %d out of range", ErrInvalidRouteFile, id, h.Status)
		}
	}
	return nil
}

// Definitions converte as rotas em domain.RouteDefinition, na ordem do arquivo.
func (rf *RouteFile) Definitions() []domain.RouteDefinition {
	out := make([]domain.RouteDefinition, 0, len(rf.Routes))
	for _, r := range rf.Routes {
		out = append(out, domain.RouteDefinition{
			Matcher: domain.Pattern{
				Subdomain: r.Subdomain,
				Path:      r.Path,
				Prefix:    r.Prefix,
			},
			Handler: domain.HandlerID(strings.TrimSpace(r.Handler)),
		})
	}
	return out
}
