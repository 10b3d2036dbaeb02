package tidy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// TokenGroup maps surface forms to a replacement token.
type TokenGroup struct {
	Token string
	Forms []string
}

// TokenMap is an ordered set of token groups. In JSON it is an object whose
// keys are the tokens and whose values are arrays of forms; key order is kept.
type TokenMap []TokenGroup

// MarshalJSON encodes m as an object in group order.
func (m TokenMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Token)
		if err != nil {
			return nil, err
		}
		forms := g.Forms
		if forms == nil {
			forms = []string{}
		}
		val, err := json.Marshal(forms)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of token -> forms keeping key order.
func (m *TokenMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("token map must be a JSON object")
	}
	var out TokenMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var forms []string
		if err := dec.Decode(&forms); err != nil {
			return fmt.Errorf("forms for token %q: %w", key, err)
		}
		out = append(out, TokenGroup{Token: key, Forms: forms})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

type rewrite struct {
	re   *regexp2.Regexp
	repl string
}

func applyRewrites(rules []rewrite, text string) string {
	for _, r := range rules {
		text = replaceAll(r.re, text, r.repl)
	}
	return text
}

// NewTokenReplacer returns a transform that replaces every whole-word,
// case-insensitive occurrence of a form with its group token. Matches that
// touch a hyphen on either side are skipped, so "re-bad" is left alone.
// Groups and forms are applied in order.
func NewTokenReplacer(values TokenMap) (Func, error) {
	var rules []rewrite
	for _, g := range values {
		for _, form := range g.Forms {
			re, err := regexp2.Compile(`(?:^|(?<=[^\-]))\b(?:`+quote(form)+`)\b(?:(?=[^\-])|$)`, regexp2.IgnoreCase)
			if err != nil {
				return nil, fmt.Errorf("compile token form %q: %w", form, err)
			}
			rules = append(rules, rewrite{re: re, repl: g.Token})
		}
	}
	return func(text string) string { return applyRewrites(rules, text) }, nil
}

// ReplaceTokens applies NewTokenReplacer(values) to text.
func ReplaceTokens(text string, values TokenMap) string {
	fn, err := NewTokenReplacer(values)
	if err != nil {
		return text
	}
	return fn(text)
}

// Contraction is a surface form and its expansion, e.g. "don't" -> "do not".
type Contraction struct {
	Form      string
	Expansion string
}

// Contractions expands contractions. It is immutable and safe for concurrent use.
type Contractions struct {
	rules []rewrite
}

// CompileContractions builds one case-insensitive, whitespace-delimited
// pattern per contraction. Unless the lowercase form is listed in exceptions,
// the pattern also matches the form with its apostrophes removed, so "dont"
// expands like "don't" while "well" is not mistaken for "we'll".
func CompileContractions(pairs []Contraction, exceptions []string) (*Contractions, error) {
	skip := make(map[string]struct{}, len(exceptions))
	for _, e := range exceptions {
		skip[strings.ToLower(e)] = struct{}{}
	}

	c := &Contractions{rules: make([]rewrite, 0, len(pairs))}
	for _, p := range pairs {
		forms := []string{p.Form}
		if _, ok := skip[strings.ToLower(p.Form)]; !ok {
			if bare := strings.ReplaceAll(p.Form, "'", ""); bare != p.Form && bare != "" {
				forms = append(forms, bare)
			}
		}
		re, err := regexp2.Compile(`(?:(?<=\s)|^)(?:`+alternation(forms)+`)(?:(?=\s)|$)`, regexp2.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("compile contraction %q: %w", p.Form, err)
		}
		c.rules = append(c.rules, rewrite{re: re, repl: p.Expansion})
	}
	return c, nil
}

// Replace expands every contraction in text, in table order.
func (c *Contractions) Replace(text string) string {
	return applyRewrites(c.rules, text)
}

// ReplaceLatinAbbrevs rewrites the e.g., i.e. and n.b. families to eg, ie
// and nb when they stand as whole whitespace-delimited tokens.
func ReplaceLatinAbbrevs(text string) string {
	text = replaceAll(egRegex, text, "eg")
	text = replaceAll(ieRegex, text, "ie")
	return replaceAll(nbRegex, text, "nb")
}

// NewWordRemover returns a transform deleting every case-insensitive whole
// word found in words and collapsing the remaining whitespace. An empty list
// only collapses whitespace.
func NewWordRemover(words []string) (Func, error) {
	if len(words) == 0 {
		return SingleSpace, nil
	}
	re, err := regexp2.Compile(`\b(?:`+alternation(words)+`)\b`, regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("compile word list: %w", err)
	}
	return func(text string) string {
		return SingleSpace(replaceAll(re, text, ""))
	}, nil
}
