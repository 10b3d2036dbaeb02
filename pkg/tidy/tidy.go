// Package tidy provides text normalisation transforms for NLP pre-processing.
//
// Every transform maps one string to one string and has no side effects.
// Transforms that take configuration either accept it as explicit parameters
// or are built once through a constructor returning a Func, so that patterns
// are compiled a single time and reused across calls and goroutines.
package tidy

// Func is a configured transform over a single string.
type Func func(string) string

// Default configuration values shared by the transforms and the pipeline registry.
const (
	DefaultSentenceStops      = ".;!?,:"
	DefaultFullStopChars      = ".?!"
	DefaultFullStopReplace    = ";:,-/"
	DefaultDuplicateStops     = ".;!?:"
	DefaultPunctuationKeep    = ".,?!()%&"
	DefaultPunctuationRemoval = "all"
	DefaultStemLanguage       = "english"
	DefaultUnicodeForm        = "NFKC"

	// Bullets are the glyphs recognised by RemoveBullets.
	Bullets = "○●•·"
)

// Chain composes transforms left to right.
func Chain(fns ...Func) Func {
	return func(s string) string {
		for _, fn := range fns {
			s = fn(s)
		}
		return s
	}
}
