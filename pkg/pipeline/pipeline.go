// Package pipeline runs ordered sequences of text transforms described by a
// declarative definition.
//
// A Definition maps step keys to transform names and their kwargs. A
// Registry resolves names to configured transforms. A Pipeline binds one
// definition, resolving every step up front, and applies the steps in order
// to a scalar or batch input.
package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/edgard/texttidy/pkg/resources"
	"github.com/edgard/texttidy/pkg/tidy"
)

// State is the lifecycle stage of a Pipeline.
type State int

// Pipeline states.
const (
	StateConstructed State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgressFunc observes a run after each step. It has no effect on results.
type ProgressFunc func(done, total int, step string)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithInput binds the initial input.
func WithInput(text tidy.Text) Option {
	return func(p *Pipeline) { p.SetInput(text) }
}

// WithVerbose logs every step at info level instead of debug.
func WithVerbose(verbose bool) Option {
	return func(p *Pipeline) { p.verbose = verbose }
}

// WithLogger sets the logger used for step reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) { p.progress = fn }
}

type boundStep struct {
	key  string
	name string
	fn   tidy.Func
}

// Pipeline applies a bound definition to one input. It holds a single
// input/output pair and must not be run concurrently.
type Pipeline struct {
	steps    []boundStep
	input    *tidy.Text
	output   *tidy.Text
	state    State
	verbose  bool
	logger   *slog.Logger
	progress ProgressFunc
}

// New binds every step of def through reg. The first step that cannot be
// resolved or configured aborts construction with a *StepError.
func New(def Definition, reg *Registry, opts ...Option) (*Pipeline, error) {
	if reg == nil {
		return nil, errors.New("pipeline requires a registry")
	}

	p := &Pipeline{state: StateConstructed}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		if p.verbose {
			p.logger = slog.Default()
		} else {
			p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
	p.logger = p.logger.With("component", "pipeline")

	p.steps = make([]boundStep, 0, def.Len())
	for i, e := range def.entries {
		fn, err := reg.Bind(e.step)
		if err != nil {
			return nil, &StepError{Index: i, Key: e.key, Name: e.step.Name, Err: err}
		}
		p.steps = append(p.steps, boundStep{key: e.key, name: e.step.Name, fn: fn})
	}
	return p, nil
}

// SetInput binds text as the next run's input and clears any previous output.
func (p *Pipeline) SetInput(text tidy.Text) {
	p.input = &text
	p.output = nil
	p.state = StateConstructed
}

// Input returns the bound input.
func (p *Pipeline) Input() (tidy.Text, bool) {
	if p.input == nil {
		return tidy.Text{}, false
	}
	return *p.input, true
}

// Output returns the result of the last successful run.
func (p *Pipeline) Output() (tidy.Text, bool) {
	if p.output == nil {
		return tidy.Text{}, false
	}
	return *p.output, true
}

// State returns the current lifecycle stage.
func (p *Pipeline) State() State {
	return p.state
}

// Len returns the number of bound steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Run applies every step in order to the bound input.
func (p *Pipeline) Run() error {
	if p.input == nil {
		p.state = StateFailed
		return ErrNoInput
	}

	p.state = StateRunning
	p.output = nil

	level := slog.LevelDebug
	if p.verbose {
		level = slog.LevelInfo
	}
	ctx := context.Background()
	start := time.Now()

	text := *p.input
	total := len(p.steps)
	for i, s := range p.steps {
		stepStart := time.Now()
		text = text.Map(s.fn)
		p.logger.Log(ctx, level, "Applied pipeline step",
			"index", i, "key", s.key, "step", s.name, "duration", time.Since(stepStart))
		if p.progress != nil {
			p.progress(i+1, total, s.name)
		}
	}

	p.output = &text
	p.state = StateCompleted
	p.logger.Log(ctx, level, "Pipeline completed",
		"steps", total, "documents", text.Len(), "duration", time.Since(start))
	return nil
}

// Process binds text, runs the pipeline and returns the output.
func (p *Pipeline) Process(text tidy.Text) (tidy.Text, error) {
	p.SetInput(text)
	if err := p.Run(); err != nil {
		return tidy.Text{}, err
	}
	return *p.output, nil
}

// DefaultDefinition returns the packaged default pipeline.
func DefaultDefinition(res *resources.Resources) (Definition, error) {
	if res == nil {
		return Definition{}, errors.New("default definition requires loaded resources")
	}
	return ParseDefinition(res.DefaultPipeline(), FormatJSON)
}
