package matcher

import (
	"strings"

	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/phone"
)

// Strategy confidence ceilings.
const (
	exactNameConfidence  = 1.0
	partialNameCeiling   = 0.9
	phoneExactConfidence = 0.95
	phoneFuzzyConfidence = 0.9
	tagBasedCeiling      = 0.7
)

// scoreFunc scores one mention against one candidate provider. A zero score
// means the strategy does not apply.
type scoreFunc func(m *Matcher, mention domain.Mention, p domain.Provider) float64

// matchStrategies are attempted in fixed priority order. Every strategy is
// scored; the best non-zero result wins, since a later strategy may outscore
// an earlier one.
var matchStrategies = []struct {
	tag   domain.MatchStrategy
	score scoreFunc
}{
	{domain.MatchExactName, (*Matcher).scoreExactName},
	{domain.MatchPartialName, (*Matcher).scorePartialName},
	{domain.MatchPhoneExact, (*Matcher).scorePhoneExact},
	{domain.MatchPhoneFuzzy, (*Matcher).scorePhoneFuzzy},
	{domain.MatchTagBased, (*Matcher).scoreTagOverlap},
}

// scoreExactName scores case-normalized exact equality with the provider's
// canonical name.
func (m *Matcher) scoreExactName(mention domain.Mention, p domain.Provider) float64 {
	if normalizeName(mention.Text) == normalizeName(p.Name) {
		return exactNameConfidence
	}
	return 0
}

// scorePartialName scores containment either way, penalized linearly by the
// size of the non-overlapping remainder.
func (m *Matcher) scorePartialName(mention domain.Mention, p domain.Provider) float64 {
	a, b := normalizeName(mention.Text), normalizeName(p.Name)
	if a == "" || b == "" || a == b {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if !strings.Contains(longer, shorter) {
		return 0
	}
	// Near-complete containment approaches the ceiling; a short fragment in
	// a long name decays toward zero.
	return partialNameCeiling * float64(len(shorter)) / float64(len(longer))
}

// scorePhoneExact scores equality of the digits exactly as the mention was
// written. A local-form mention never scores exact against an international
// registration; that is the fuzzy strategy's job.
func (m *Matcher) scorePhoneExact(mention domain.Mention, p domain.Provider) float64 {
	if mention.Strategy != domain.StrategyPhoneNumber || p.Phone == "" {
		return 0
	}
	if phone.Digits(mention.Text) == phone.Digits(p.Phone) {
		return phoneExactConfidence
	}
	return 0
}

// scorePhoneFuzzy rewrites local and international prefixes to the canonical
// form, then compares the trailing significant digits.
func (m *Matcher) scorePhoneFuzzy(mention domain.Mention, p domain.Provider) float64 {
	if mention.Strategy != domain.StrategyPhoneNumber || p.Phone == "" {
		return 0
	}
	candidate := mention.Normalized
	if candidate == "" {
		candidate, _ = m.normalizer.Normalize(mention.Text)
	}
	if candidate == "" {
		return 0
	}
	if phone.FuzzyEqual(candidate, p.Phone, m.fuzzyDigits) {
		return phoneFuzzyConfidence
	}
	return 0
}

// scoreTagOverlap scores token overlap between the mention and the
// provider's tag set as a Jaccard ratio. Inherently weaker evidence, so it
// is capped well below the name and phone strategies.
func (m *Matcher) scoreTagOverlap(mention domain.Mention, p domain.Provider) float64 {
	if len(p.Tags) == 0 {
		return 0
	}

	tokens := map[string]struct{}{}
	for _, tok := range strings.Fields(normalizeName(mention.Text)) {
		tokens[tok] = struct{}{}
	}
	if mention.Normalized != "" {
		tokens[strings.ToLower(mention.Normalized)] = struct{}{}
	}
	if len(tokens) == 0 {
		return 0
	}

	tags := map[string]struct{}{}
	for _, tag := range p.Tags {
		tags[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	overlap := 0
	for tok := range tokens {
		if _, ok := tags[tok]; ok {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}
	union := len(tokens) + len(tags) - overlap
	return tagBasedCeiling * float64(overlap) / float64(union)
}

// normalizeName lowercases and collapses whitespace for name comparison.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
