package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var expect int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routes in evaluation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if expect > 0 {
				if err := router.Table.Expect(expect); err != nil {
					return err
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tHANDLER\tMATCH")
			for i, r := range router.Table.Routes() {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, r.Handler, describe(r.Matcher))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d routes\n", router.Table.Len())
			return nil
		},
	}

	cmd.Flags().IntVar(&expect, "expect", 0, "fail unless the table has exactly this many routes")
	return cmd
}
