package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgard/texttidy/pkg/pipeline"
	"github.com/edgard/texttidy/pkg/tidy"
)

type runOptions struct {
	pipelinePath string
	lines        bool
	jsonOutput   bool
	verbose      bool
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [text...]",
		Short: "Normalise the given text, or stdin when no text is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			def, _, err := a.definition(opts.pipelinePath)
			if err != nil {
				return err
			}

			input, err := readInput(cmd.InOrStdin(), args, opts.lines)
			if err != nil {
				return err
			}

			p, err := pipeline.New(def, a.reg,
				pipeline.WithVerbose(opts.verbose || a.cfg.Pipeline.Verbose),
				pipeline.WithLogger(a.log),
			)
			if err != nil {
				return err
			}
			out, err := p.Process(input)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, opts.jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&opts.pipelinePath, "pipeline", "p", "", "pipeline definition file (.json, .yaml)")
	cmd.Flags().BoolVarP(&opts.lines, "lines", "l", false, "treat each line (or argument) as a separate document")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every step")
	return cmd
}

// readInput builds the pipeline input from arguments or r. With lines set,
// every argument or input line is one batch element.
func readInput(r io.Reader, args []string, lines bool) (tidy.Text, error) {
	if len(args) > 0 {
		if lines {
			return tidy.Batch(args), nil
		}
		return tidy.Scalar(strings.Join(args, " ")), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return tidy.Text{}, fmt.Errorf("failed to read input: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if lines {
		if text == "" {
			return tidy.Batch(nil), nil
		}
		return tidy.Batch(strings.Split(text, "\n")), nil
	}
	return tidy.Scalar(text), nil
}

func writeOutput(w io.Writer, out tidy.Text, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	}
	_, err := fmt.Fprintln(w, out.String())
	return err
}
