package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func dispatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch HOST [PATH]",
		Short: "Show which handler a request would be routed to",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 2 {
				path = args[1]
			}
			rc, dec := router.Route(args[0], path)
			fmt.Fprintf(cmd.OutOrStdout(), "subdomain=%q path=%q handler=%s matched=%v\n",
				rc.Subdomain, rc.Path, dec.Handler, dec.Matched)
			return nil
		},
	}
}
