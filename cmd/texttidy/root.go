package main

import (
	"github.com/spf13/cobra"

	"github.com/edgard/texttidy/internal/config"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "texttidy",
		Short:         "Normalise text with configurable transform pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigPath, "path to configuration file")

	root.AddCommand(
		newRunCmd(a),
		newStepsCmd(a),
		newGenerateCmd(a),
		newImportCmd(a),
		newProcessCmd(a),
		newServeCmd(a),
	)
	return root
}
