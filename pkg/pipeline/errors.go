package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStep is returned when a step names a transform that is not registered.
	ErrUnknownStep = errors.New("step not recognized")
	// ErrNoInput is returned when a pipeline is run without an input bound.
	ErrNoInput = errors.New("pipeline has no input")
	// ErrType is returned when a kwarg has a value of the wrong kind.
	ErrType = errors.New("type error")
	// ErrInvalidKwargs is returned when step kwargs cannot be decoded or are incomplete.
	ErrInvalidKwargs = errors.New("invalid step kwargs")
	// ErrInvalidDefinition is returned for structurally malformed definitions.
	ErrInvalidDefinition = errors.New("invalid pipeline definition")
)

// StepError locates a failure within a definition.
type StepError struct {
	Index int    // position in execution order, -1 when not applicable
	Key   string // definition key
	Name  string // transform name
	Err   error
}

func (e *StepError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("step %q (%s): %v", e.Key, e.Name, e.Err)
	case e.Index >= 0:
		return fmt.Sprintf("step %d (%s): %v", e.Index, e.Name, e.Err)
	default:
		return fmt.Sprintf("step %s: %v", e.Name, e.Err)
	}
}

func (e *StepError) Unwrap() error {
	return e.Err
}
