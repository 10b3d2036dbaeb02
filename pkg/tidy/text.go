package tidy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Broadcast lifts fn so it accepts either a single string or a slice of
// strings. Slices are transformed element-wise into a new slice of the same
// length and order.
func Broadcast[T string | []string](fn Func) func(T) T {
	return func(in T) T {
		switch v := any(in).(type) {
		case string:
			return any(fn(v)).(T)
		case []string:
			out := make([]string, len(v))
			for i, s := range v {
				out[i] = fn(s)
			}
			return any(out).(T)
		}
		return in
	}
}

// Text is a unit of input for a pipeline: either one document or an ordered
// batch of documents. The shape is preserved by every transform.
type Text struct {
	values []string
	batch  bool
}

// Scalar wraps a single document.
func Scalar(s string) Text {
	return Text{values: []string{s}}
}

// Batch wraps an ordered sequence of documents. The slice is copied.
func Batch(values []string) Text {
	if values == nil {
		values = []string{}
	}
	return Text{values: slices.Clone(values), batch: true}
}

// IsBatch reports whether t holds a sequence rather than a single document.
func (t Text) IsBatch() bool {
	return t.batch
}

// Len returns the number of documents in t.
func (t Text) Len() int {
	return len(t.values)
}

// Strings returns a copy of the documents held by t.
func (t Text) Strings() []string {
	return slices.Clone(t.values)
}

// String returns the scalar document, or the batch joined by newlines.
func (t Text) String() string {
	if t.batch {
		return strings.Join(t.values, "\n")
	}
	if len(t.values) == 0 {
		return ""
	}
	return t.values[0]
}

// Map applies fn to every document and returns a Text of the same shape.
func (t Text) Map(fn Func) Text {
	if t.batch {
		return Text{values: Broadcast[[]string](fn)(t.values), batch: true}
	}
	return Scalar(Broadcast[string](fn)(t.String()))
}

// MarshalJSON encodes a scalar as a JSON string and a batch as an array.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.batch {
		values := t.values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("decode text batch: %w", err)
		}
		*t = Batch(values)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode text: %w", err)
	}
	*t = Scalar(s)
	return nil
}
