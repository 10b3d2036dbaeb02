package pipeline

import "strconv"

// Generate builds a definition running names in order, each with its
// declared default kwargs. Keys are "0", "1", ... Unknown names fail with a
// *StepError wrapping ErrUnknownStep.
func Generate(reg *Registry, names []string) (Definition, error) {
	var def Definition
	for i, name := range names {
		kwargs, err := reg.Defaults(name)
		if err != nil {
			return Definition{}, &StepError{Index: i, Name: name, Err: err}
		}
		def.Set(strconv.Itoa(i), Step{Name: name, Kwargs: kwargs})
	}
	return def, nil
}
