package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Step names a registered transform and carries its keyword configuration.
type Step struct {
	Name   string          `json:"step"`
	Kwargs json.RawMessage `json:"kwargs"`
}

// MarshalJSON always emits a kwargs object, using {} when none is set.
func (s Step) MarshalJSON() ([]byte, error) {
	kwargs := bytes.TrimSpace(s.Kwargs)
	if len(kwargs) == 0 || bytes.Equal(kwargs, []byte("null")) {
		kwargs = []byte("{}")
	}
	return json.Marshal(struct {
		Name   string          `json:"step"`
		Kwargs json.RawMessage `json:"kwargs"`
	}{Name: s.Name, Kwargs: kwargs})
}

type definitionEntry struct {
	key  string
	step Step
}

// Definition is an ordered mapping from step key to Step. Steps execute in
// insertion order; keys are labels and are never sorted.
type Definition struct {
	entries []definitionEntry
}

// Set stores step under key. An existing key keeps its position.
func (d *Definition) Set(key string, step Step) {
	for i := range d.entries {
		if d.entries[i].key == key {
			d.entries[i].step = step
			return
		}
	}
	d.entries = append(d.entries, definitionEntry{key: key, step: step})
}

// Append adds step under the next unused integer key and returns that key.
func (d *Definition) Append(step Step) string {
	for n := len(d.entries); ; n++ {
		key := strconv.Itoa(n)
		if _, ok := d.Get(key); !ok {
			d.entries = append(d.entries, definitionEntry{key: key, step: step})
			return key
		}
	}
}

// Get returns the step stored under key.
func (d Definition) Get(key string) (Step, bool) {
	for _, e := range d.entries {
		if e.key == key {
			return e.step, true
		}
	}
	return Step{}, false
}

// Keys returns the keys in execution order.
func (d Definition) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}
	return keys
}

// Steps returns the steps in execution order.
func (d Definition) Steps() []Step {
	steps := make([]Step, len(d.entries))
	for i, e := range d.entries {
		steps[i] = e.step
	}
	return steps
}

// Len returns the number of steps.
func (d Definition) Len() int {
	return len(d.entries)
}

// MarshalJSON encodes the definition as an object in execution order.
func (d Definition) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		step, err := json.Marshal(e.step)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(step)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of key -> {"step", "kwargs"} keeping the
// order in which keys appear.
func (d *Definition) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected an object of steps", ErrInvalidDefinition)
	}

	var out Definition
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
		}
		key, _ := tok.(string)

		var step Step
		if err := dec.Decode(&step); err != nil {
			return fmt.Errorf("%w: step %q: %v", ErrInvalidDefinition, key, err)
		}
		if step.Name == "" {
			return fmt.Errorf("%w: step %q has no transform name", ErrInvalidDefinition, key)
		}
		out.Set(key, step)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	*d = out
	return nil
}

// Definition file formats accepted by ParseDefinition.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ParseDefinition decodes a definition in the given format.
func ParseDefinition(data []byte, format string) (Definition, error) {
	var def Definition
	switch strings.ToLower(format) {
	case FormatJSON, "":
	case FormatYAML, "yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return def, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
		}
		converted, err := yamlNodeToJSON(&node)
		if err != nil {
			return def, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
		}
		data = converted
	default:
		return def, fmt.Errorf("%w: unsupported format %q", ErrInvalidDefinition, format)
	}

	if err := def.UnmarshalJSON(data); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// yamlNodeToJSON re-encodes a YAML node as JSON, keeping mapping order.
func yamlNodeToJSON(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeYAMLNode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeYAMLNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeYAMLNode(buf, n.Content[0])
	case yaml.AliasNode:
		return writeYAMLNode(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeYAMLNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeYAMLNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(data)
	default:
		return fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
	return nil
}

// ReadDefinitionFile loads a definition from a .json, .yaml or .yml file.
func ReadDefinitionFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read pipeline definition: %w", err)
	}
	def, err := ParseDefinition(data, formatFromPath(path))
	if err != nil {
		return Definition{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return def, nil
}

// WriteDefinitionFile writes def as indented JSON.
func WriteDefinitionFile(path string, def Definition) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pipeline definition: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write pipeline definition: %w", err)
	}
	return nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
