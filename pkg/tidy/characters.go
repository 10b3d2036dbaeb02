package tidy

import (
	"strings"
	"unicode/utf8"
)

var (
	// Curly and alternate quote glyphs mapped to their ASCII forms.
	quoteReplacer = strings.NewReplacer(
		"‘", "'", "’", "'", "´", "'",
		"“", `"`, "”", `"`,
	)

	// Escape markers are newline, tab and carriage return.
	escapeReplacer = strings.NewReplacer("\n", ". ", "\t", ". ", "\r", ". ")
	escapeMarkers  = []string{"\n", "\t", "\r"}
)

// RemoveNumericalCommas drops thousands separators: "1,000,000" -> "1000000".
// Commas that are not between two digits are kept.
func RemoveNumericalCommas(text string) string {
	return replaceAll(numericalCommaRegex, text, "")
}

// RemoveDashes normalises en dashes to hyphens and then removes or spaces
// hyphens in a fixed order:
//
//  1. between an uppercase letter and an uppercase letter or digit ("COVID-19" -> "COVID19")
//  2. runs of hyphens surrounded by whitespace
//  3. a hyphen after a non-space character and before whitespace
//  4. a leading hyphen followed by whitespace
//  5. a hyphen after a non-alphanumeric character and before a letter or digit becomes a space
//
// Word-internal hyphens such as "one-to-one" and "5-10" are preserved.
func RemoveDashes(text string) string {
	text = strings.ReplaceAll(text, "–", "-")
	text = replaceAll(acronymDashRegex, text, "")
	text = replaceAll(isolatedDashRegex, text, "")
	text = replaceAll(trailingDashRegex, text, "")
	text = replaceAll(leadingDashRegex, text, "")
	return replaceAll(joinedDashRegex, text, " ")
}

// RemoveBullets turns a leading bullet glyph into a space and every other
// bullet into a full stop, then fixes the spacing around sentence stops.
func RemoveBullets(text string) string {
	text = strings.TrimSpace(text)
	if r, size := utf8.DecodeRuneInString(text); strings.ContainsRune(Bullets, r) {
		text = " " + text[size:]
	}
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(Bullets, r) {
			return '.'
		}
		return r
	}, text)
	return defaultStopSpacer.apply(strings.TrimSpace(text))
}

// RemoveEscapes replaces newline, tab and carriage return markers with ". ",
// except for a marker at the very start which becomes a space.
func RemoveEscapes(text string) string {
	text = strings.TrimSpace(text)
	for _, m := range escapeMarkers {
		if strings.HasPrefix(text, m) {
			text = " " + text[len(m):]
		}
	}
	text = escapeReplacer.Replace(text)
	return defaultStopSpacer.apply(strings.TrimSpace(text))
}

// CleanQuoteChars maps ‘ ’ ´ to an apostrophe and “ ” to a double quote.
func CleanQuoteChars(text string) string {
	return quoteReplacer.Replace(text)
}

// RemovePunctuation replaces every character of remove that is not also in
// keep with a space, then collapses whitespace.
func RemovePunctuation(text, remove, keep string) string {
	drop := make(map[rune]struct{}, len(remove))
	for _, r := range remove {
		if !strings.ContainsRune(keep, r) {
			drop[r] = struct{}{}
		}
	}
	text = strings.Map(func(r rune) rune {
		if _, ok := drop[r]; ok {
			return ' '
		}
		return r
	}, text)
	return SingleSpace(text)
}
