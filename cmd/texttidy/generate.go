package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgard/texttidy/pkg/pipeline"
)

func newGenerateCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate STEP...",
		Short: "Write a pipeline definition running the given steps with default kwargs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := pipeline.Generate(a.reg, args)
			if err != nil {
				return err
			}
			if out != "" {
				if err := pipeline.WriteDefinitionFile(out, def); err != nil {
					return err
				}
				a.log.Info("Wrote pipeline definition", "path", out, "steps", def.Len())
				return nil
			}
			data, err := json.MarshalIndent(def, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the definition to this file instead of stdout")
	return cmd
}
