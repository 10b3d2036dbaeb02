package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgard/texttidy/internal/worker"
)

func newProcessCmd(a *app) *cobra.Command {
	var (
		pipelinePath string
		reset        bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Normalise every pending document in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			def, name, err := a.definition(pipelinePath)
			if err != nil {
				return err
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if reset {
				if _, err := store.ResetNormalized(ctx); err != nil {
					return err
				}
			}

			p, err := worker.NewProcessor(store, a.reg, def, workerOptions(a, name), a.log)
			if err != nil {
				return err
			}
			n, err := p.Drain(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "normalised %d documents\n", n)
			return err
		},
	}
	cmd.Flags().StringVarP(&pipelinePath, "pipeline", "p", "", "pipeline definition file (.json, .yaml)")
	cmd.Flags().BoolVar(&reset, "reset", false, "mark every document pending before processing")
	return cmd
}

func workerOptions(a *app, pipelineName string) worker.Options {
	return worker.Options{
		Concurrency:  a.cfg.Worker.Concurrency,
		BatchSize:    a.cfg.Worker.BatchSize,
		ChunkSize:    a.cfg.Worker.ChunkSize,
		PipelineName: pipelineName,
		Verbose:      a.cfg.Pipeline.Verbose,
	}
}
