package tidy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StripOptions controls StripStopwords.
type StripOptions struct {
	FromStart           bool `json:"from_start"`
	FromEnd             bool `json:"from_end"`
	RemoveNumericTokens bool `json:"remove_numeric_tokens"`
	TrimPunc            bool `json:"trim_punc"`
}

// DefaultStripOptions trims both ends and drops boundary punctuation.
func DefaultStripOptions() StripOptions {
	return StripOptions{FromStart: true, FromEnd: true, TrimPunc: true}
}

// StripStopwords removes stopwords from the start and/or end of text until
// the boundary word is no longer a stopword.
//
// At each enabled end, in order: a non-alphanumeric boundary character is
// dropped when TrimPunc is set; otherwise the boundary word (letters, digits,
// underscores and hyphens) is removed if RemoveNumericTokens is set and it
// contains a digit, or if its lowercase form is a stopword. After every
// removal the text is trimmed and evaluation restarts from the start side.
// Each iteration shortens the text, so the loop always terminates.
func StripStopwords(text string, stopwords []string, opts StripOptions) string {
	lower := cases.Lower(language.Und)
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[lower.String(w)] = struct{}{}
	}
	s := stripper{set: set, opts: opts, lower: lower}

	for text != "" {
		if opts.FromStart {
			if next, ok := s.start(text); ok {
				text = next
				continue
			}
		}
		if opts.FromEnd {
			if next, ok := s.end(text); ok {
				text = next
				continue
			}
		}
		break
	}
	return text
}

type stripper struct {
	set   map[string]struct{}
	opts  StripOptions
	lower cases.Caser
}

func (s stripper) start(text string) (string, bool) {
	r, size := utf8.DecodeRuneInString(text)
	if s.opts.TrimPunc && !isAlnum(r) {
		return strings.TrimSpace(text[size:]), true
	}
	word := text[:len(text)-len(strings.TrimLeftFunc(text, isWordOrHyphen))]
	if word == "" || !s.removable(word) {
		return text, false
	}
	return strings.TrimSpace(text[len(word):]), true
}

func (s stripper) end(text string) (string, bool) {
	r, size := utf8.DecodeLastRuneInString(text)
	if s.opts.TrimPunc && !isAlnum(r) {
		return strings.TrimSpace(text[:len(text)-size]), true
	}
	rest := strings.TrimRightFunc(text, isWordOrHyphen)
	if rest == text || !s.removable(text[len(rest):]) {
		return text, false
	}
	return strings.TrimSpace(rest), true
}

func (s stripper) removable(word string) bool {
	if s.opts.RemoveNumericTokens && strings.IndexFunc(word, unicode.IsDigit) >= 0 {
		return true
	}
	_, ok := s.set[s.lower.String(word)]
	return ok
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isWordOrHyphen(r rune) bool {
	return isAlnum(r) || r == '_' || r == '-'
}
