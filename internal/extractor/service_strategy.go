package extractor

import (
	"sort"
	"strings"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/data"
	"github.com/refradar/refradar/internal/domain"
)

// serviceTerm is one flattened keyword from the category tables.
type serviceTerm struct {
	term     string
	category string
	weight   float64
}

// ServiceStrategy matches against the categorized service keyword tables.
// Confidence is the per-keyword weight.
type ServiceStrategy struct {
	terms []serviceTerm
}

// NewServiceStrategy flattens the built-in tables plus configured extras
// into a deterministic scan list.
func NewServiceStrategy(extra map[string][]config.WeightedTerm) *ServiceStrategy {
	s := &ServiceStrategy{}
	for category, keywords := range data.DefaultServiceKeywords() {
		for _, kw := range keywords {
			s.add(category, kw.Term, kw.Weight)
		}
	}
	for category, keywords := range extra {
		for _, kw := range keywords {
			s.add(category, kw.Term, kw.Weight)
		}
	}
	// Longest terms first so "garden service" wins over "garden"; then
	// lexicographic for deterministic ordering.
	sort.Slice(s.terms, func(i, j int) bool {
		if len(s.terms[i].term) != len(s.terms[j].term) {
			return len(s.terms[i].term) > len(s.terms[j].term)
		}
		return s.terms[i].term < s.terms[j].term
	})
	return s
}

func (s *ServiceStrategy) add(category, term string, weight float64) {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return
	}
	s.terms = append(s.terms, serviceTerm{term: normalized, category: category, weight: weight})
}

// Name implements Strategy.
func (s *ServiceStrategy) Name() domain.ExtractionStrategy {
	return domain.StrategyServiceKeyword
}

// Extract implements Strategy.
func (s *ServiceStrategy) Extract(text string) []domain.Mention {
	runes := []rune(text)
	lowered := lowerRunes(text)

	var mentions []domain.Mention
	claimed := make([]bool, len(runes))
	for _, term := range s.terms {
		for _, sp := range findOccurrences(lowered, term.term) {
			if anyClaimed(claimed, sp) {
				continue
			}
			markClaimed(claimed, sp)
			mentions = append(mentions, domain.Mention{
				Text:       string(runes[sp.start:sp.end]),
				Start:      sp.start,
				End:        sp.end,
				Strategy:   domain.StrategyServiceKeyword,
				Confidence: term.weight,
				Normalized: term.category,
			})
		}
	}
	return mentions
}

func anyClaimed(claimed []bool, sp span) bool {
	for i := sp.start; i < sp.end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func markClaimed(claimed []bool, sp span) {
	for i := sp.start; i < sp.end; i++ {
		claimed[i] = true
	}
}
