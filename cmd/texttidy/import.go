package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgard/texttidy/internal/database"
)

// maxLineSize bounds a single imported line.
const maxLineSize = 10 << 20

func newImportCmd(a *app) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store every non-empty line of FILE (or - for stdin) as a pending document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				defer f.Close()
				r = f
				if source == "" {
					source = filepath.Base(path)
				}
			}

			docs, err := readDocuments(r, source)
			if err != nil {
				return err
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.SaveDocuments(cmd.Context(), docs); err != nil {
				return err
			}
			a.log.Info("Imported documents", "count", len(docs), "source", source)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d documents\n", len(docs))
			return err
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "source label stored with each document (default: file name)")
	return cmd
}

func readDocuments(r io.Reader, source string) ([]*database.Document, error) {
	var docs []*database.Document
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		docs = append(docs, &database.Document{Source: source, Content: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}
	return docs, nil
}
