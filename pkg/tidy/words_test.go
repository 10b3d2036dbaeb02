package tidy_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edgard/texttidy/pkg/tidy"
)

func TestTokenReplacer(t *testing.T) {
	t.Parallel()

	values := tidy.TokenMap{
		{Token: "hello", Forms: []string{"hi", "hey"}},
		{Token: "world", Forms: []string{"earth"}},
		{Token: "reg", Forms: []string{"re"}},
	}
	fn, err := tidy.NewTokenReplacer(values)
	if err != nil {
		t.Fatalf("NewTokenReplacer() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single form", input: "Hi world", want: "hello world"},
		{name: "two groups", input: "hey earth", want: "hello world"},
		{
			name:  "hyphen and word boundaries",
			input: "re re. re-bad (re). re - re! re-re. more mOre. regard re re1 1re! re-1 1-re.",
			want:  "reg reg. re-bad (reg). reg - reg! re-re. more mOre. regard reg re1 1re! re-1 1-re.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fn(tt.input); got != tt.want {
				t.Errorf("replace tokens(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenMapJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	var m tidy.TokenMap
	if err := json.Unmarshal([]byte(`{"world":["earth"],"hello":["hi","hey"]}`), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := tidy.TokenMap{
		{Token: "world", Forms: []string{"earth"}},
		{Token: "hello", Forms: []string{"hi", "hey"}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("TokenMap mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(out), `{"world":["earth"],"hello":["hi","hey"]}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	if err := json.Unmarshal([]byte(`["hi"]`), &m); err == nil {
		t.Error("Unmarshal(array) error = nil, want error")
	}
}

func TestContractions(t *testing.T) {
	t.Parallel()

	c, err := tidy.CompileContractions([]tidy.Contraction{
		{Form: "shouldn't", Expansion: "should not"},
		{Form: "who'd", Expansion: "who would"},
		{Form: "wouldn't've", Expansion: "would not have"},
		{Form: "don't", Expansion: "do not"},
		{Form: "I'll", Expansion: "I will"},
		{Form: "we'll", Expansion: "we will"},
	}, []string{"i'll", "we'll"})
	if err != nil {
		t.Fatalf("CompileContractions() error = %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{input: "I shouldn't have", want: "I should not have"},
		{input: "who'd be", want: "who would be"},
		{input: "wouldn't've", want: "would not have"},
		{input: "dont be silly", want: "do not be silly"},
		{input: "DON'T shout", want: "do not shout"},
		{input: "I'll not replace well nor ill", want: "I will not replace well nor ill"},
		{input: "(don't)", want: "(don't)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := c.Replace(tt.input); got != tt.want {
				t.Errorf("Replace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReplaceLatinAbbrevs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "this is e.g. edge. e. g.  be. g.", want: "this is eg edge. eg  be. g."},
		{input: "e.g.", want: "eg"},
		{input: "e.g", want: "eg"},
		{input: "I.E.", want: "ie"},
		{input: "N.B. read this", want: "nb read this"},
		{input: "see.e.g.", want: "see.e.g."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := tidy.ReplaceLatinAbbrevs(tt.input); got != tt.want {
				t.Errorf("ReplaceLatinAbbrevs(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWordRemover(t *testing.T) {
	t.Parallel()

	fn, err := tidy.NewWordRemover([]string{"he", "her", "they", "it"})
	if err != nil {
		t.Fatalf("NewWordRemover() error = %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{input: "He went", want: "went"},
		{input: "what he wanted", want: "what wanted"},
		{input: "they've needed.", want: "'ve needed."},
		{input: "her item", want: "item"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := fn(tt.input); got != tt.want {
				t.Errorf("remove words(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	empty, err := tidy.NewWordRemover(nil)
	if err != nil {
		t.Fatalf("NewWordRemover(nil) error = %v", err)
	}
	if got := empty("  he   went "); got != "he went" {
		t.Errorf("NewWordRemover(nil) = %q, want %q", got, "he went")
	}
}
