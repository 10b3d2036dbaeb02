package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/edgard/texttidy/pkg/tidy"
)

type stopCharsOptions struct {
	StopChars string `json:"stop_chars"`
}

type fullStopOptions struct {
	StopChars    string  `json:"stop_chars"`
	ReplaceChars *string `json:"replace_chars"` // null disables stripping
}

type tokenOptions struct {
	Values *tidy.TokenMap `json:"values,omitempty"`
}

type pronounOptions struct {
	Pronouns PronounList `json:"pronouns"`
}

type punctuationOptions struct {
	Remove string `json:"remove"`
	Keep   string `json:"keep"`
}

type stopwordOptions struct {
	Stopwords []string `json:"stopwords,omitempty"`
	tidy.StripOptions
}

type stemOptions struct {
	Language string `json:"language"`
}

// PronounList is the pronouns kwarg of remove_pronouns: either the string
// "default", selecting the packaged list, or an explicit list of words.
type PronounList struct {
	Default bool
	Words   []string
}

// MarshalJSON encodes the default selection as "default" and a list as an array.
func (p PronounList) MarshalJSON() ([]byte, error) {
	if p.Default {
		return json.Marshal("default")
	}
	words := p.Words
	if words == nil {
		words = []string{}
	}
	return json.Marshal(words)
}

// UnmarshalJSON accepts "default" or an array of strings. Anything else is ErrType.
func (p *PronounList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: pronouns expects a list", ErrType)
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: pronouns: %v", ErrType, err)
		}
		if s != "default" {
			return fmt.Errorf("%w: pronouns expects a list but received string %q", ErrType, s)
		}
		*p = PronounList{Default: true}
	case '[':
		var words []string
		if err := json.Unmarshal(data, &words); err != nil {
			return fmt.Errorf("%w: pronouns expects a list of strings: %v", ErrType, err)
		}
		*p = PronounList{Words: words}
	default:
		return fmt.Errorf("%w: pronouns expects a list but received %s", ErrType, data)
	}
	return nil
}

func builtins(contractions *tidy.Contractions, pronouns tidy.Func, punctuation string) []binding {
	return []binding{
		plain("single_space", tidy.SingleSpace),
		define("space_sentencestops",
			func() stopCharsOptions { return stopCharsOptions{StopChars: tidy.DefaultSentenceStops} },
			func(o stopCharsOptions) (tidy.Func, error) { return tidy.NewSpaceSentenceStops(o.StopChars) },
		),
		define("add_fullstop",
			func() fullStopOptions {
				replace := tidy.DefaultFullStopReplace
				return fullStopOptions{StopChars: tidy.DefaultFullStopChars, ReplaceChars: &replace}
			},
			func(o fullStopOptions) (tidy.Func, error) {
				var replace string
				if o.ReplaceChars != nil {
					replace = *o.ReplaceChars
				}
				return func(s string) string { return tidy.AddFullStop(s, o.StopChars, replace) }, nil
			},
		),
		plain("remove_numerical_commas", tidy.RemoveNumericalCommas),
		plain("remove_dashes", tidy.RemoveDashes),
		plain("remove_bullets", tidy.RemoveBullets),
		define("replace_tokens",
			func() tokenOptions { return tokenOptions{} },
			func(o tokenOptions) (tidy.Func, error) {
				if o.Values == nil {
					return nil, fmt.Errorf("%w: replace_tokens requires values", ErrInvalidKwargs)
				}
				return tidy.NewTokenReplacer(*o.Values)
			},
		),
		plain("remove_escapes", tidy.RemoveEscapes),
		plain("replace_contractions", contractions.Replace),
		plain("clean_quote_chars", tidy.CleanQuoteChars),
		plain("replace_latin_abbrevs", tidy.ReplaceLatinAbbrevs),
		define("remove_pronouns",
			func() pronounOptions { return pronounOptions{Pronouns: PronounList{Default: true}} },
			func(o pronounOptions) (tidy.Func, error) {
				if o.Pronouns.Default {
					return pronouns, nil
				}
				return tidy.NewWordRemover(o.Pronouns.Words)
			},
		),
		define("remove_punctuation",
			func() punctuationOptions {
				return punctuationOptions{Remove: tidy.DefaultPunctuationRemoval, Keep: tidy.DefaultPunctuationKeep}
			},
			func(o punctuationOptions) (tidy.Func, error) {
				remove := o.Remove
				if remove == tidy.DefaultPunctuationRemoval {
					remove = punctuation
				}
				return func(s string) string { return tidy.RemovePunctuation(s, remove, o.Keep) }, nil
			},
		),
		define("strip_stopwords",
			func() stopwordOptions { return stopwordOptions{StripOptions: tidy.DefaultStripOptions()} },
			func(o stopwordOptions) (tidy.Func, error) {
				if o.Stopwords == nil {
					return nil, fmt.Errorf("%w: strip_stopwords requires stopwords", ErrInvalidKwargs)
				}
				words := slices.Clone(o.Stopwords)
				return func(s string) string { return tidy.StripStopwords(s, words, o.StripOptions) }, nil
			},
		),
		define("remove_duplicate_sentencestops",
			func() stopCharsOptions { return stopCharsOptions{StopChars: tidy.DefaultDuplicateStops} },
			func(o stopCharsOptions) (tidy.Func, error) { return tidy.NewDuplicateStopRemover(o.StopChars) },
		),
		define("normalize_unicode",
			func() tidy.UnicodeOptions { return tidy.UnicodeOptions{Form: tidy.DefaultUnicodeForm} },
			tidy.NewUnicodeNormalizer,
		),
		plain("strip_html", tidy.StripHTML),
		define("stem_words",
			func() stemOptions { return stemOptions{Language: tidy.DefaultStemLanguage} },
			func(o stemOptions) (tidy.Func, error) { return tidy.NewStemmer(o.Language) },
		),
	}
}
