// Package resources provides the static datasets used by the transforms:
// the contraction table, contraction exceptions, pronouns, the punctuation
// alphabet and the default pipeline definition.
//
// The datasets are embedded in the binary and can be replaced by a directory
// holding files with the same names. A loaded Resources value is immutable.
package resources

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed data/*
var embedded embed.FS

// File names read by LoadFS.
const (
	ContractionsFile          = "contractions.json"
	ContractionExceptionsFile = "contraction_exceptions.txt"
	PronounsFile              = "pronouns.txt"
	PunctuationFile           = "punctuation.txt"
	DefaultPipelineFile       = "default_pipeline.json"
)

// Contraction is one record of the contraction table.
type Contraction struct {
	Form      string `json:"contraction"`
	Expansion string `json:"expansion"`
}

// Resources holds the loaded datasets.
type Resources struct {
	contractions    []Contraction
	exceptions      []string
	pronouns        []string
	punctuation     string
	defaultPipeline json.RawMessage
}

// Load reads the embedded datasets.
func Load() (*Resources, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded resources: %w", err)
	}
	return LoadFS(sub)
}

// LoadFS reads the datasets from fsys.
func LoadFS(fsys fs.FS) (*Resources, error) {
	res := &Resources{}

	data, err := fs.ReadFile(fsys, ContractionsFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ContractionsFile, err)
	}
	if err := json.Unmarshal(data, &res.contractions); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ContractionsFile, err)
	}
	for i, c := range res.contractions {
		if c.Form == "" {
			return nil, fmt.Errorf("parse %s: record %d has an empty contraction", ContractionsFile, i)
		}
	}

	if res.exceptions, err = readList(fsys, ContractionExceptionsFile); err != nil {
		return nil, err
	}
	if res.pronouns, err = readList(fsys, PronounsFile); err != nil {
		return nil, err
	}

	data, err = fs.ReadFile(fsys, PunctuationFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", PunctuationFile, err)
	}
	res.punctuation = strings.TrimRight(string(data), "\r\n")
	if res.punctuation == "" {
		return nil, fmt.Errorf("parse %s: empty alphabet", PunctuationFile)
	}

	data, err = fs.ReadFile(fsys, DefaultPipelineFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", DefaultPipelineFile, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("parse %s: invalid JSON", DefaultPipelineFile)
	}
	res.defaultPipeline = json.RawMessage(bytes.TrimSpace(data))

	return res, nil
}

// readList reads one lowercase entry per line, skipping blanks and # comments.
func readList(fsys fs.FS, name string) ([]string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.ToLower(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", name, err)
	}
	return out, nil
}

// Contractions returns the contraction table in file order.
func (r *Resources) Contractions() []Contraction {
	return slices.Clone(r.contractions)
}

// ContractionExceptions returns the lowercase forms exempt from
// apostrophe-free matching.
func (r *Resources) ContractionExceptions() []string {
	return slices.Clone(r.exceptions)
}

// Pronouns returns the default pronoun list.
func (r *Resources) Pronouns() []string {
	return slices.Clone(r.pronouns)
}

// Punctuation returns the full punctuation-removal alphabet.
func (r *Resources) Punctuation() string {
	return r.punctuation
}

// DefaultPipeline returns the default pipeline definition as JSON.
func (r *Resources) DefaultPipeline() json.RawMessage {
	return slices.Clone(r.defaultPipeline)
}
