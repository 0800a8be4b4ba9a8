// Package extractor scans message text for candidate entity mentions:
// provider names, phone numbers, service terms, and locations. Strategies are
// independent and individually toggleable; their output is blacklist-filtered,
// deduplicated across overlapping spans, and returned in offset order.
package extractor

import (
	"context"
	"sort"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/logger"
	"github.com/refradar/refradar/internal/phone"
	"github.com/refradar/refradar/internal/telemetry"
)

// Strategy produces candidate mentions from message text. Offsets in the
// returned mentions are rune offsets into the original text.
type Strategy interface {
	Name() domain.ExtractionStrategy
	Extract(text string) []domain.Mention
}

// Extractor runs every enabled strategy over a message.
type Extractor struct {
	strategies []Strategy
	blacklist  *Blacklist
	log        logger.Logger
	telemetry  *telemetry.Provider
}

// New builds an extractor from configuration.
func New(cfg config.ExtractorConfig, log logger.Logger, tp *telemetry.Provider) *Extractor {
	e := &Extractor{
		blacklist: NewBlacklist(cfg.ExtraBlacklist),
		log:       log,
		telemetry: tp,
	}

	if cfg.NamePattern.IsEnabled() {
		e.strategies = append(e.strategies, NewNameStrategy(e.blacklist))
	}
	if cfg.PhoneNumber.IsEnabled() {
		e.strategies = append(e.strategies, NewPhoneStrategy(phone.NewNormalizer(cfg.Phone), cfg.Phone))
	}
	if cfg.ServiceKeyword.IsEnabled() {
		e.strategies = append(e.strategies, NewServiceStrategy(cfg.ExtraServiceKeywords))
	}
	if cfg.LocationPattern.IsEnabled() {
		e.strategies = append(e.strategies, NewLocationStrategy(cfg.ExtraPlaces))
	}

	log.Debug("extractor initialized", logger.Int("strategies", len(e.strategies)))
	return e
}

// Extract returns the ranked, deduplicated mentions found in text. With all
// strategies disabled it returns an empty list. The result is deterministic:
// identical text always yields identical ordered output.
func (e *Extractor) Extract(ctx context.Context, text string) []domain.Mention {
	var candidates []domain.Mention
	for _, s := range e.strategies {
		for _, m := range s.Extract(text) {
			if e.blacklist.Contains(m.Text) {
				if e.telemetry != nil {
					e.telemetry.RecordBlacklisted(ctx)
				}
				continue
			}
			candidates = append(candidates, m)
		}
	}

	mentions := dedupe(candidates)

	if e.telemetry != nil {
		for _, m := range mentions {
			e.telemetry.RecordMention(ctx, string(m.Strategy))
		}
	}
	return mentions
}

// strategyRank breaks confidence ties between overlapping mentions so the
// survivor does not depend on strategy registration order.
var strategyRank = map[domain.ExtractionStrategy]int{
	domain.StrategyPhoneNumber:     0,
	domain.StrategyNamePattern:     1,
	domain.StrategyServiceKeyword:  2,
	domain.StrategyLocationPattern: 3,
}

// dedupe collapses overlapping spans, keeping the highest-confidence variant,
// and sorts the survivors by start offset.
func dedupe(candidates []domain.Mention) []domain.Mention {
	if len(candidates) == 0 {
		return []domain.Mention{}
	}

	// Strongest first, so the first mention claiming a span wins.
	sorted := make([]domain.Mention, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Confidence != sorted[j].Confidence {
			return sorted[i].Confidence > sorted[j].Confidence
		}
		if strategyRank[sorted[i].Strategy] != strategyRank[sorted[j].Strategy] {
			return strategyRank[sorted[i].Strategy] < strategyRank[sorted[j].Strategy]
		}
		return sorted[i].Start < sorted[j].Start
	})

	kept := make([]domain.Mention, 0, len(sorted))
	for _, candidate := range sorted {
		overlaps := false
		for _, k := range kept {
			if candidate.Overlaps(k) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, candidate)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Start != kept[j].Start {
			return kept[i].Start < kept[j].Start
		}
		return kept[i].End < kept[j].End
	})
	return kept
}
