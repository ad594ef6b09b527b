package commands

import (
	"github.com/spf13/cobra"

	"subdomain-gateway/middleware/subdomain/application"
	"subdomain-gateway/middleware/subdomain/domain"
	"subdomain-gateway/middleware/subdomain/infra"
	"subdomain-gateway/subdomainapp"
)

var (
	routesFile   string
	baseDomains  []string
	publicSuffix bool

	router application.Router
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "routectl",
		Short:         "Inspect and exercise the subdomain route table",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			table, rf, err := subdomainapp.Load(routesFile)
			if err != nil {
				return err
			}

			bases := append([]string(nil), baseDomains...)
			if rf != nil {
				bases = append(bases, rf.BaseDomains...)
			}
			finder := infra.ChainBaseDomains{infra.NewStaticBaseDomains(bases...)}
			if publicSuffix {
				finder = append(finder, infra.PublicSuffix{})
			}

			router = application.Router{
				Resolver: application.Resolver{Bases: finder},
				Table:    table,
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&routesFile, "routes", "", "YAML route file (default: built-in subdomain app table)")
	root.PersistentFlags().StringSliceVar(&baseDomains, "base-domain", nil, "registered base domain (repeatable)")
	root.PersistentFlags().BoolVar(&publicSuffix, "public-suffix", true, "fall back to the public suffix list for base domains")

	root.AddCommand(listCmd(), resolveCmd(), dispatchCmd())
	return root
}

func describe(m domain.Matcher) string {
	p, ok := m.(domain.Pattern)
	if !ok {
		return "<custom>"
	}
	sub := p.Subdomain
	if sub == "" {
		sub = "@"
	}
	path := p.Path
	if path == "" {
		path = "*"
	} else if p.Prefix {
		path += "/**"
	}
	return sub + " " + path
}
