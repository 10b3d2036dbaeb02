package resources_test

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/edgard/texttidy/pkg/resources"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	res, err := resources.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	contractions := res.Contractions()
	if len(contractions) == 0 {
		t.Fatal("Contractions() is empty")
	}
	found := false
	for _, c := range contractions {
		if c.Form == "they've" && c.Expansion == "they have" {
			found = true
		}
	}
	if !found {
		t.Error("Contractions() lacks they've -> they have")
	}

	for _, want := range []string{"i'll", "we'll", "can't"} {
		if !slices.Contains(res.ContractionExceptions(), want) {
			t.Errorf("ContractionExceptions() lacks %q", want)
		}
	}
	for _, want := range []string{"he", "they", "themselves"} {
		if !slices.Contains(res.Pronouns(), want) {
			t.Errorf("Pronouns() lacks %q", want)
		}
	}
	if slices.Contains(res.Pronouns(), "what") {
		t.Error("Pronouns() contains interrogative \"what\"")
	}

	for _, r := range `[]{}"/` {
		if !strings.ContainsRune(res.Punctuation(), r) {
			t.Errorf("Punctuation() lacks %q", r)
		}
	}
	if strings.ContainsAny(res.Punctuation(), "\n\r ") {
		t.Errorf("Punctuation() contains whitespace: %q", res.Punctuation())
	}

	if !json.Valid(res.DefaultPipeline()) {
		t.Error("DefaultPipeline() is not valid JSON")
	}
}

func TestResourcesAreCopies(t *testing.T) {
	t.Parallel()

	res, err := resources.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p := res.Pronouns()
	p[0] = "changed"
	if res.Pronouns()[0] == "changed" {
		t.Error("Pronouns() exposes internal state")
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	valid := fstest.MapFS{
		resources.ContractionsFile:          {Data: []byte(`[{"contraction":"ain't","expansion":"am not"}]`)},
		resources.ContractionExceptionsFile: {Data: []byte("# comment\n\nCAN'T\n")},
		resources.PronounsFile:              {Data: []byte("he\nshe\n")},
		resources.PunctuationFile:           {Data: []byte("!?\n")},
		resources.DefaultPipelineFile:       {Data: []byte(`{"0":{"step":"single_space"}}`)},
	}

	res, err := resources.LoadFS(valid)
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if got := res.ContractionExceptions(); len(got) != 1 || got[0] != "can't" {
		t.Errorf("ContractionExceptions() = %q, want [can't]", got)
	}
	if got := res.Punctuation(); got != "!?" {
		t.Errorf("Punctuation() = %q, want %q", got, "!?")
	}

	tests := []struct {
		name string
		file string
		data string
	}{
		{name: "bad contractions", file: resources.ContractionsFile, data: `{`},
		{name: "empty contraction", file: resources.ContractionsFile, data: `[{"contraction":"","expansion":"x"}]`},
		{name: "empty punctuation", file: resources.PunctuationFile, data: "\n"},
		{name: "bad pipeline", file: resources.DefaultPipelineFile, data: `{"0":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fsys := fstest.MapFS{}
			for k, v := range valid {
				fsys[k] = v
			}
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}
			if _, err := resources.LoadFS(fsys); err == nil {
				t.Errorf("LoadFS() with %s error = nil, want error", tt.name)
			}
		})
	}

	missing := fstest.MapFS{}
	if _, err := resources.LoadFS(missing); err == nil {
		t.Error("LoadFS(empty) error = nil, want error")
	}
}
