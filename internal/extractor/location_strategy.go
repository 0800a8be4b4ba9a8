package extractor

import (
	"sort"
	"strings"

	"github.com/refradar/refradar/internal/data"
	"github.com/refradar/refradar/internal/domain"
)

// locationConfidence applies to every gazetteer hit; place names are
// unambiguous terms but weak provider evidence on their own.
const locationConfidence = 0.7

// LocationStrategy matches against the place gazetteer.
type LocationStrategy struct {
	places []string
}

// NewLocationStrategy combines the built-in gazetteer with configured extras.
func NewLocationStrategy(extra []string) *LocationStrategy {
	s := &LocationStrategy{places: data.PlaceNames()}
	for _, place := range extra {
		normalized := strings.ToLower(strings.TrimSpace(place))
		if normalized == "" || data.IsKnownPlace(normalized) {
			continue
		}
		s.places = append(s.places, normalized)
	}
	// Longest first so "kempton park" beats "kempton"; then lexicographic
	// for deterministic output.
	sort.Slice(s.places, func(i, j int) bool {
		if len(s.places[i]) != len(s.places[j]) {
			return len(s.places[i]) > len(s.places[j])
		}
		return s.places[i] < s.places[j]
	})
	return s
}

// Name implements Strategy.
func (s *LocationStrategy) Name() domain.ExtractionStrategy {
	return domain.StrategyLocationPattern
}

// Extract implements Strategy.
func (s *LocationStrategy) Extract(text string) []domain.Mention {
	runes := []rune(text)
	lowered := lowerRunes(text)

	var mentions []domain.Mention
	claimed := make([]bool, len(runes))
	for _, place := range s.places {
		for _, sp := range findOccurrences(lowered, place) {
			if anyClaimed(claimed, sp) {
				continue
			}
			markClaimed(claimed, sp)
			m := domain.Mention{
				Text:       string(runes[sp.start:sp.end]),
				Start:      sp.start,
				End:        sp.end,
				Strategy:   domain.StrategyLocationPattern,
				Confidence: locationConfidence,
				Normalized: data.NormalizePlaceName(place),
			}
			if province, ok := data.ProvinceForPlace(place); ok {
				m.Region = province
			}
			mentions = append(mentions, m)
		}
	}
	return mentions
}
