package tidy

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// SingleSpace collapses every run of two or more whitespace characters into
// one space and trims the result.
func SingleSpace(text string) string {
	return strings.TrimSpace(replaceAll(multiSpaceRegex, text, " "))
}

type stopSpacer struct {
	stops  []rune
	after  []*regexp2.Regexp
	before *regexp2.Regexp
}

var defaultStopSpacer = mustStopSpacer(DefaultSentenceStops)

func mustStopSpacer(stopChars string) *stopSpacer {
	sp, err := newStopSpacer(stopChars)
	if err != nil {
		panic(err)
	}
	return sp
}

func newStopSpacer(stopChars string) (*stopSpacer, error) {
	sp := &stopSpacer{stops: []rune(stopChars)}
	if len(sp.stops) == 0 {
		return sp, nil
	}
	for _, c := range sp.stops {
		re, err := regexp2.Compile(quote(string(c))+`(?=[a-zA-Z])`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile stop %q: %w", c, err)
		}
		sp.after = append(sp.after, re)
	}
	re, err := regexp2.Compile(`(?<=[a-zA-Z0-9])\s+(?=[`+quote(stopChars)+`])`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile stop set %q: %w", stopChars, err)
	}
	sp.before = re
	return sp, nil
}

func (sp *stopSpacer) apply(text string) string {
	for i, re := range sp.after {
		text = replaceAll(re, text, string(sp.stops[i])+" ")
	}
	if sp.before != nil {
		text = replaceAll(sp.before, text, "")
	}
	return text
}

// SpaceSentenceStops inserts a space after each stop character directly
// followed by a letter, and removes whitespace between an alphanumeric
// character and a following stop character.
//
//	"Bad stop.Good stop." -> "Bad stop. Good stop."
//	"hello .  world."     -> "hello.  world."
//
// Stops between digits, as in "100.00", are left alone.
func SpaceSentenceStops(text, stopChars string) string {
	if stopChars == DefaultSentenceStops {
		return defaultStopSpacer.apply(text)
	}
	sp, err := newStopSpacer(stopChars)
	if err != nil {
		return text
	}
	return sp.apply(text)
}

// NewSpaceSentenceStops returns SpaceSentenceStops bound to stopChars.
func NewSpaceSentenceStops(stopChars string) (Func, error) {
	sp, err := newStopSpacer(stopChars)
	if err != nil {
		return nil, err
	}
	return sp.apply, nil
}

type duplicateStops struct {
	stops  []rune
	gaps   []*regexp2.Regexp
	repeat []*regexp2.Regexp
}

func newDuplicateStops(stopChars string) (*duplicateStops, error) {
	ds := &duplicateStops{stops: []rune(stopChars)}
	for _, c := range ds.stops {
		q := quote(string(c))
		gap, err := regexp2.Compile(`(?<=`+q+`)\s(?=`+q+`)`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile stop gap %q: %w", c, err)
		}
		repeat, err := regexp2.Compile(q+`{2,}`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile stop repeat %q: %w", c, err)
		}
		ds.gaps = append(ds.gaps, gap)
		ds.repeat = append(ds.repeat, repeat)
	}
	return ds, nil
}

func (ds *duplicateStops) apply(text string) string {
	for _, re := range ds.gaps {
		text = replaceAll(re, text, "")
	}
	for i, re := range ds.repeat {
		text = replaceAll(re, text, string(ds.stops[i]))
	}
	return text
}

// RemoveDuplicateSentenceStops removes whitespace between two identical stop
// characters and collapses repeats of each stop character. Distinct stop
// characters are never merged: "hello!!??.. world." -> "hello!?. world.".
func RemoveDuplicateSentenceStops(text, stopChars string) string {
	ds, err := newDuplicateStops(stopChars)
	if err != nil {
		return text
	}
	return ds.apply(text)
}

// NewDuplicateStopRemover returns RemoveDuplicateSentenceStops bound to stopChars.
func NewDuplicateStopRemover(stopChars string) (Func, error) {
	ds, err := newDuplicateStops(stopChars)
	if err != nil {
		return nil, err
	}
	return ds.apply, nil
}

// AddFullStop trims text, strips trailing characters found in replaceChars
// (repeatedly, re-trimming after each), and appends "." unless the text
// already ends with one of stopChars. An empty replaceChars disables the
// stripping. Text that is empty after trimming is returned as "".
func AddFullStop(text, stopChars, replaceChars string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	for text != "" {
		r, size := utf8.DecodeLastRuneInString(text)
		if !strings.ContainsRune(replaceChars, r) {
			break
		}
		text = strings.TrimSpace(text[:len(text)-size])
	}
	if text == "" {
		return "."
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	if !strings.ContainsRune(stopChars, r) {
		text += "."
	}
	return text
}
