package tidy

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	multiSpaceRegex     = regexp2.MustCompile(`\s{2,}`, regexp2.None)          // Runs of two or more whitespace characters.
	numericalCommaRegex = regexp2.MustCompile(`(?<=\d),(?=\d)`, regexp2.None) // Comma between two digits.

	acronymDashRegex  = regexp2.MustCompile(`(?<=[A-Z])-(?=[A-Z|\d])`, regexp2.None)      // COVID-19.
	isolatedDashRegex = regexp2.MustCompile(`(?<=\s)-+(?=\s)`, regexp2.None)              // " - " and " -- ".
	trailingDashRegex = regexp2.MustCompile(`(?<=\S)-(?=\s)`, regexp2.None)               // "hello- world".
	leadingDashRegex  = regexp2.MustCompile(`^-(?=\s)`, regexp2.None)                     // "- hello".
	joinedDashRegex   = regexp2.MustCompile(`(?<=[^a-zA-Z0-9])-(?=[a-zA-Z|\d])`, regexp2.None) // "hello:-world".

	egRegex = regexp2.MustCompile(`(?:(?<=\s)|^)(?:e\.g\.|e\. g\.|e\.g)(?:(?=\s)|$)`, regexp2.IgnoreCase)
	ieRegex = regexp2.MustCompile(`(?:(?<=\s)|^)(?:i\.e\.|i\. e\.|i\.e)(?:(?=\s)|$)`, regexp2.IgnoreCase)
	nbRegex = regexp2.MustCompile(`(?:(?<=\s)|^)(?:n\.b\.|n\. b\.|n\.b)(?:(?=\s)|$)`, regexp2.IgnoreCase)
)

// replaceAll substitutes repl literally for every match of re.
// regexp2 only fails on match timeouts, which are never configured here.
func replaceAll(re *regexp2.Regexp, s, repl string) string {
	out, err := re.ReplaceFunc(s, func(regexp2.Match) string { return repl }, -1, -1)
	if err != nil {
		return s
	}
	return out
}

// quote escapes ASCII punctuation and spaces so s matches literally, both in
// a pattern body and inside a character class.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r < 0x80 && !isASCIIWord(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCIIWord(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// alternation joins the quoted forms into a single `a|b|c` group body.
func alternation(forms []string) string {
	quoted := make([]string, len(forms))
	for i, f := range forms {
		quoted[i] = quote(f)
	}
	return strings.Join(quoted, "|")
}
