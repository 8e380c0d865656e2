package consolekit

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Matcher finds the suggestion that best matches the text typed so far.
//
// FindMatch returns the index of the match in suggestions, or -1 when nothing
// matches. Implementations must be pure: the result depends only on the
// arguments and ties go to the earliest suggestion.
type Matcher interface {
	FindMatch(typed string, suggestions []string) int
}

// Comparison selects how matchers compare typed text with suggestions.
type Comparison int

// Comparison policies
const (
	// CompareIgnoreCase compares with full Unicode case folding. This is the default.
	CompareIgnoreCase Comparison = iota
	// CompareOrdinal compares runes exactly.
	CompareOrdinal
	// CompareCultureIgnoreCase lower-cases both sides using the matcher's
	// language, so e.g. Turkish 'I' matches 'ı' but not 'i'.
	CompareCultureIgnoreCase
)

// normalize maps s to the form compared under the policy.
func (c Comparison) normalize(s string, tag language.Tag) string {
	switch c {
	case CompareOrdinal:
		return s
	case CompareCultureIgnoreCase:
		return cases.Lower(tag).String(s)
	default:
		return cases.Fold().String(s)
	}
}

// PrefixMatcher matches suggestions that start with the typed text.
//
// When no suggestion starts with the full text, the last character is dropped
// and the search repeated, so a typo near the end still yields a plausible
// suggestion. Empty typed text matches the first suggestion.
type PrefixMatcher struct {
	Comparison Comparison
	Language   language.Tag // used by CompareCultureIgnoreCase
}

// NewPrefixMatcher creates a prefix matcher with the given comparison policy.
func NewPrefixMatcher(cmp Comparison) *PrefixMatcher {
	return &PrefixMatcher{Comparison: cmp, Language: language.Und}
}

// FindMatch implements Matcher.
//
// Example:
//
//	m := consolekit.NewPrefixMatcher(consolekit.CompareIgnoreCase)
//	m.FindMatch("ante", []string{"ant", "antelope"}) // 1
//	m.FindMatch("anto", []string{"ant", "antelope"}) // 0, "ant" after dropping 'o'
func (m *PrefixMatcher) FindMatch(typed string, suggestions []string) int {
	if len(suggestions) == 0 {
		return -1
	}
	if typed == "" {
		return 0
	}

	normalized := m.normalizeAll(suggestions)
	prefix := []rune(typed)
	for len(prefix) > 0 {
		want := m.Comparison.normalize(string(prefix), m.Language)
		for i, s := range normalized {
			if strings.HasPrefix(s, want) {
				return i
			}
		}
		prefix = prefix[:len(prefix)-1]
	}
	return -1
}

func (m *PrefixMatcher) normalizeAll(suggestions []string) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = m.Comparison.normalize(s, m.Language)
	}
	return out
}

// SubstringMatcher matches suggestions that contain the typed text anywhere.
// There is no degradation step: if no suggestion contains the text the result is -1.
type SubstringMatcher struct {
	Comparison Comparison
	Language   language.Tag // used by CompareCultureIgnoreCase
}

// NewSubstringMatcher creates a substring matcher with the given comparison policy.
func NewSubstringMatcher(cmp Comparison) *SubstringMatcher {
	return &SubstringMatcher{Comparison: cmp, Language: language.Und}
}

// FindMatch implements Matcher.
func (m *SubstringMatcher) FindMatch(typed string, suggestions []string) int {
	want := m.Comparison.normalize(typed, m.Language)
	for i, s := range suggestions {
		if strings.Contains(m.Comparison.normalize(s, m.Language), want) {
			return i
		}
	}
	return -1
}
