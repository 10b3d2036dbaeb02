package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/edgard/texttidy/pkg/resources"
	"github.com/edgard/texttidy/pkg/tidy"
)

// binding is a registered transform: its declared defaults and a binder that
// turns kwargs into a configured function.
type binding struct {
	name     string
	defaults func() any
	bind     func(kwargs json.RawMessage) (tidy.Func, error)
}

// define registers a transform whose kwargs decode into O. Kwargs are decoded
// over a fresh copy of the defaults, so omitted keys keep their default value.
func define[O any](name string, defaults func() O, build func(O) (tidy.Func, error)) binding {
	return binding{
		name:     name,
		defaults: func() any { return defaults() },
		bind: func(kwargs json.RawMessage) (tidy.Func, error) {
			opts := defaults()
			if err := strictUnmarshal(kwargs, &opts); err != nil {
				return nil, err
			}
			fn, err := build(opts)
			if err != nil {
				if errors.Is(err, ErrType) || errors.Is(err, ErrInvalidKwargs) {
					return nil, err
				}
				return nil, fmt.Errorf("%w: %v", ErrInvalidKwargs, err)
			}
			return fn, nil
		},
	}
}

// plain registers a transform without configuration.
func plain(name string, fn tidy.Func) binding {
	return define(name, func() struct{} { return struct{}{} }, func(struct{}) (tidy.Func, error) {
		return fn, nil
	})
}

// strictUnmarshal decodes raw into v, rejecting unknown fields.
func strictUnmarshal(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, ErrType):
			return err
		case errors.As(err, &typeErr):
			return fmt.Errorf("%w: %v", ErrType, err)
		default:
			return fmt.Errorf("%w: %v", ErrInvalidKwargs, err)
		}
	}
	return nil
}

// Registry resolves transform names to configured transforms. It is built
// once from the loaded resources and is safe for concurrent use.
type Registry struct {
	bindings map[string]binding
}

// NewRegistry compiles the resource-backed transforms and registers every
// built-in transform.
func NewRegistry(res *resources.Resources) (*Registry, error) {
	if res == nil {
		return nil, errors.New("registry requires loaded resources")
	}

	table := res.Contractions()
	pairs := make([]tidy.Contraction, len(table))
	for i, c := range table {
		pairs[i] = tidy.Contraction{Form: c.Form, Expansion: c.Expansion}
	}
	contractions, err := tidy.CompileContractions(pairs, res.ContractionExceptions())
	if err != nil {
		return nil, fmt.Errorf("compile contractions: %w", err)
	}
	pronouns, err := tidy.NewWordRemover(res.Pronouns())
	if err != nil {
		return nil, fmt.Errorf("compile pronouns: %w", err)
	}

	r := &Registry{bindings: make(map[string]binding)}
	for _, b := range builtins(contractions, pronouns, res.Punctuation()) {
		r.bindings[b.name] = b
	}
	return r, nil
}

// Names returns the registered transform names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether name is registered. Names are case-sensitive.
func (r *Registry) Has(name string) bool {
	_, ok := r.bindings[name]
	return ok
}

// Defaults returns the declared default kwargs of name as a JSON object.
func (r *Registry) Defaults(name string) (json.RawMessage, error) {
	b, ok := r.bindings[name]
	if !ok {
		return nil, ErrUnknownStep
	}
	data, err := json.Marshal(b.defaults())
	if err != nil {
		return nil, fmt.Errorf("encode defaults of %s: %w", name, err)
	}
	return data, nil
}

// Bind resolves step to a configured transform.
func (r *Registry) Bind(step Step) (tidy.Func, error) {
	b, ok := r.bindings[step.Name]
	if !ok {
		return nil, ErrUnknownStep
	}
	return b.bind(step.Kwargs)
}
