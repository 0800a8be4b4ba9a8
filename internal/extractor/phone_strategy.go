package extractor

import (
	"regexp"
	"unicode/utf8"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/phone"
)

// Phone confidence tiers.
const (
	phoneExactConfidence     = 0.95 // unambiguous format, normalized cleanly
	phoneAmbiguousConfidence = 0.7  // plausible digit run, no rule applied
)

// phoneRunPattern finds digit runs allowing common separators. Candidate runs
// are validated against the configured digit bounds afterwards.
var phoneRunPattern = regexp.MustCompile(`\+?\d[\d\s\-().]{5,}\d`)

// PhoneStrategy recognizes phone numbers and reports them normalized to
// canonical international form.
type PhoneStrategy struct {
	normalizer *phone.Normalizer
	cfg        config.PhoneConfig
}

// NewPhoneStrategy creates the phone number strategy.
func NewPhoneStrategy(normalizer *phone.Normalizer, cfg config.PhoneConfig) *PhoneStrategy {
	return &PhoneStrategy{normalizer: normalizer, cfg: cfg}
}

// Name implements Strategy.
func (s *PhoneStrategy) Name() domain.ExtractionStrategy {
	return domain.StrategyPhoneNumber
}

// Extract implements Strategy.
func (s *PhoneStrategy) Extract(text string) []domain.Mention {
	var mentions []domain.Mention
	for _, loc := range phoneRunPattern.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		digits := phone.Digits(raw)
		if len(digits) < s.cfg.MinDigits || len(digits) > s.cfg.MaxDigits {
			continue
		}

		normalized, unambiguous := s.normalizer.Normalize(raw)
		if normalized == "" {
			continue
		}
		confidence := phoneAmbiguousConfidence
		if unambiguous {
			confidence = phoneExactConfidence
		}

		start := utf8.RuneCountInString(text[:loc[0]])
		mentions = append(mentions, domain.Mention{
			Text:       raw,
			Start:      start,
			End:        start + utf8.RuneCountInString(raw),
			Strategy:   domain.StrategyPhoneNumber,
			Confidence: confidence,
			Normalized: normalized,
		})
	}
	return mentions
}
