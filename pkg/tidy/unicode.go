package tidy

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnicodeOptions controls NormalizeUnicode.
type UnicodeOptions struct {
	Form         string `json:"form"`
	StripAccents bool   `json:"strip_accents"`
	Lowercase    bool   `json:"lowercase"`
}

var unicodeForms = map[string]norm.Form{
	"NFC":  norm.NFC,
	"NFD":  norm.NFD,
	"NFKC": norm.NFKC,
	"NFKD": norm.NFKD,
}

// NewUnicodeNormalizer returns a transform applying the requested Unicode
// normalisation form, optionally removing combining marks and lowercasing.
func NewUnicodeNormalizer(opts UnicodeOptions) (Func, error) {
	form, ok := unicodeForms[strings.ToUpper(opts.Form)]
	if !ok {
		return nil, fmt.Errorf("unknown unicode normalisation form %q", opts.Form)
	}

	return func(text string) string {
		chain := []transform.Transformer{form}
		if opts.StripAccents {
			chain = []transform.Transformer{norm.NFD, runes.Remove(runes.In(unicode.Mn)), form}
		}
		if opts.Lowercase {
			chain = append(chain, cases.Lower(language.Und))
		}
		out, _, err := transform.String(transform.Chain(chain...), text)
		if err != nil {
			return text
		}
		return out
	}, nil
}

// NormalizeUnicode applies NewUnicodeNormalizer(opts) to text.
func NormalizeUnicode(text string, opts UnicodeOptions) string {
	fn, err := NewUnicodeNormalizer(opts)
	if err != nil {
		return text
	}
	return fn(text)
}

var stripTagsPolicy = bluemonday.StrictPolicy()

// StripHTML removes markup and decodes entities, keeping only text content.
func StripHTML(text string) string {
	return html.UnescapeString(stripTagsPolicy.Sanitize(text))
}

// NewStemmer returns a transform replacing every run of letters with its
// Snowball stem for language. Digits, punctuation and spacing are kept.
func NewStemmer(lang string) (Func, error) {
	if _, err := snowball.Stem("test", lang, true); err != nil {
		return nil, fmt.Errorf("stemmer: %w", err)
	}

	return func(text string) string {
		var b strings.Builder
		b.Grow(len(text))
		word := make([]rune, 0, 32)
		flush := func() {
			if len(word) == 0 {
				return
			}
			w := string(word)
			if stem, err := snowball.Stem(w, lang, true); err == nil && stem != "" {
				w = stem
			}
			b.WriteString(w)
			word = word[:0]
		}
		for _, r := range text {
			if unicode.IsLetter(r) {
				word = append(word, r)
				continue
			}
			flush()
			b.WriteRune(r)
		}
		flush()
		return b.String()
	}, nil
}
