package extractor

import (
	"strings"

	"github.com/refradar/refradar/internal/data"
)

// Blacklist is the shared stop-list applied by every extraction strategy.
// A span whose text equals a blacklisted term (case-insensitive) is never
// emitted, regardless of strategy confidence.
type Blacklist struct {
	terms map[string]struct{}
}

// NewBlacklist combines the built-in terms with configured extras.
func NewBlacklist(extra []string) *Blacklist {
	b := &Blacklist{terms: make(map[string]struct{})}
	for _, term := range data.DefaultBlacklist() {
		b.add(term)
	}
	for _, term := range extra {
		b.add(term)
	}
	return b
}

func (b *Blacklist) add(term string) {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized != "" {
		b.terms[normalized] = struct{}{}
	}
}

// Contains reports whether the span text is blacklisted.
func (b *Blacklist) Contains(text string) bool {
	_, ok := b.terms[strings.ToLower(strings.TrimSpace(text))]
	return ok
}
