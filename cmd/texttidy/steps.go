package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStepsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List available transform steps with their default kwargs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range a.reg.Names() {
				kwargs, err := a.reg.Defaults(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", name, kwargs)
			}
			return tw.Flush()
		},
	}
}
