package subdomainapp

import (
	"fmt"

	"subdomain-gateway/middleware/subdomain/application"
	"subdomain-gateway/middleware/subdomain/infra"
)

// Load monta a tabela a partir de um arquivo YAML, ou a tabela embutida
// (Routes) quando path é vazio. O RouteFile devolvido é nil no segundo caso.
func Load(path string) (*application.Table, *infra.RouteFile, error) {
	if path == "" {
		t, err := Build()
		return t, nil, err
	}

	rf, err := infra.LoadRouteFile(path)
	if err != nil {
		return nil, nil, err
	}
	t, err := application.NewTable(rf.Definitions()...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if rf.ExpectRoutes > 0 {
		if err := t.Expect(rf.ExpectRoutes); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return t, rf, nil
}
