// Package classifier decides whether a message is asking for a provider or
// recommending one. It aggregates independently configurable rule engines
// into a single weighted verdict with evidence.
package classifier

import (
	"strings"
	"unicode"

	"github.com/refradar/refradar/internal/domain"
)

// Scores maps message types to a per-engine score in [0.0, 1.0].
type Scores map[domain.MessageType]float64

// EngineResult is the contribution of one rule engine.
type EngineResult struct {
	Scores Scores
	// Evidence names, per contribution, which rule matched what.
	Evidence []string
}

// RuleEngine scores a message against one family of rules. Engines are
// independent: one failing must not affect another.
type RuleEngine interface {
	Name() string
	Score(text string) (EngineResult, error)
}

// normalizeText lowercases the text and folds every non-alphanumeric rune to
// a space, preserving word boundaries for keyword scanning.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteRune(' ')
		}
	}
	return result.String()
}

// containsWord reports whether needle occurs in haystack on word boundaries.
// Both arguments must already be normalized.
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		startOK := start == 0 || haystack[start-1] == ' '
		endOK := end == len(haystack) || haystack[end] == ' '
		if startOK && endOK {
			return true
		}
		idx = start + 1
		if idx >= len(haystack) {
			return false
		}
	}
}
