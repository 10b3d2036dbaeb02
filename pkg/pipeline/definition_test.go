package pipeline_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edgard/texttidy/pkg/pipeline"
)

func TestDefinitionKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	var raw = []byte(`{
		"0": {"step": "single_space"},
		"1": {"step": "single_space"},
		"2": {"step": "single_space"},
		"3": {"step": "single_space"},
		"4": {"step": "single_space"},
		"5": {"step": "single_space"},
		"6": {"step": "single_space"},
		"7": {"step": "single_space"},
		"8": {"step": "single_space"},
		"9": {"step": "single_space"},
		"10": {"step": "add_fullstop", "kwargs": {"stop_chars": "."}}
	}`)

	def, err := pipeline.ParseDefinition(raw, pipeline.FormatJSON)
	if err != nil {
		t.Fatalf("ParseDefinition() error = %v", err)
	}
	want := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	if diff := cmp.Diff(want, def.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	last, ok := def.Get("10")
	if !ok || last.Name != "add_fullstop" {
		t.Errorf("Get(10) = %+v, %v, want add_fullstop", last, ok)
	}
}

func TestDefinitionMarshal(t *testing.T) {
	t.Parallel()

	var def pipeline.Definition
	def.Set("b", pipeline.Step{Name: "remove_dashes"})
	def.Set("a", pipeline.Step{Name: "space_sentencestops", Kwargs: json.RawMessage(`{"stop_chars":"."}`)})
	def.Set("b", pipeline.Step{Name: "remove_bullets"})

	got, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"b":{"step":"remove_bullets","kwargs":{}},"a":{"step":"space_sentencestops","kwargs":{"stop_chars":"."}}}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestDefinitionAppend(t *testing.T) {
	t.Parallel()

	var def pipeline.Definition
	def.Set("1", pipeline.Step{Name: "single_space"})
	if key := def.Append(pipeline.Step{Name: "remove_dashes"}); key != "2" {
		t.Errorf("Append() key = %q, want %q", key, "2")
	}
	if key := def.Append(pipeline.Step{Name: "remove_bullets"}); key != "3" {
		t.Errorf("Append() key = %q, want %q", key, "3")
	}
	if def.Len() != 3 {
		t.Errorf("Len() = %d, want 3", def.Len())
	}
}

func TestParseDefinitionYAML(t *testing.T) {
	t.Parallel()

	raw := []byte(`
second:
  step: space_sentencestops
  kwargs:
    stop_chars: ".!"
first:
  step: single_space
`)
	def, err := pipeline.ParseDefinition(raw, pipeline.FormatYAML)
	if err != nil {
		t.Fatalf("ParseDefinition() error = %v", err)
	}
	if diff := cmp.Diff([]string{"second", "first"}, def.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	step, _ := def.Get("second")
	if got, want := string(step.Kwargs), `{"stop_chars":".!"}`; got != want {
		t.Errorf("kwargs = %s, want %s", got, want)
	}
}

func TestParseDefinitionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format string
	}{
		{name: "not an object", data: `["single_space"]`, format: pipeline.FormatJSON},
		{name: "missing step name", data: `{"0": {"kwargs": {}}}`, format: pipeline.FormatJSON},
		{name: "step not an object", data: `{"0": "single_space"}`, format: pipeline.FormatJSON},
		{name: "truncated", data: `{"0": {"step": "single_space"}`, format: pipeline.FormatJSON},
		{name: "unsupported format", data: `{}`, format: "toml"},
		{name: "bad yaml", data: "a: [", format: pipeline.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := pipeline.ParseDefinition([]byte(tt.data), tt.format)
			if !errors.Is(err, pipeline.ErrInvalidDefinition) {
				t.Errorf("ParseDefinition(%q) error = %v, want ErrInvalidDefinition", tt.data, err)
			}
		})
	}
}

func TestDefinitionFileRoundTrip(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	def, err := pipeline.Generate(reg, []string{"remove_escapes", "add_fullstop", "strip_html"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := pipeline.WriteDefinitionFile(path, def); err != nil {
		t.Fatalf("WriteDefinitionFile() error = %v", err)
	}
	got, err := pipeline.ReadDefinitionFile(path)
	if err != nil {
		t.Fatalf("ReadDefinitionFile() error = %v", err)
	}

	want, _ := json.Marshal(def)
	have, _ := json.Marshal(got)
	if string(want) != string(have) {
		t.Errorf("round trip = %s, want %s", have, want)
	}

	if _, err := pipeline.ReadDefinitionFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadDefinitionFile(missing) error = nil, want error")
	}
}
