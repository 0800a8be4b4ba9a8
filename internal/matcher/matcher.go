// Package matcher resolves extracted mentions against the provider registry.
// Strategies run in fixed priority order over lookup candidates; the single
// best-scoring result survives, and anything under the configured minimum
// confidence is downgraded to no_match.
package matcher

import (
	"context"
	"sort"
	"strings"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/logger"
	"github.com/refradar/refradar/internal/phone"
	"github.com/refradar/refradar/internal/telemetry"
)

// Matcher scores mentions against candidate providers.
type Matcher struct {
	lookup        ProviderLookup
	normalizer    *phone.Normalizer
	minConfidence float64
	fuzzyDigits   int
	log           logger.Logger
	telemetry     *telemetry.Provider
}

// New creates a matcher around the injected lookup capability.
func New(cfg config.MatcherConfig, phoneCfg config.PhoneConfig, lookup ProviderLookup, log logger.Logger, tp *telemetry.Provider) *Matcher {
	return &Matcher{
		lookup:        lookup,
		normalizer:    phone.NewNormalizer(phoneCfg),
		minConfidence: cfg.MinConfidence,
		fuzzyDigits:   cfg.FuzzyPhoneDigits,
		log:           log,
		telemetry:     tp,
	}
}

// Match resolves one mention to at most one provider. A lookup outage yields
// no_match for this mention and is logged; it never aborts the message.
func (m *Matcher) Match(ctx context.Context, mention domain.Mention) domain.MatchResult {
	candidates, err := m.gatherCandidates(ctx, mention)
	if err != nil {
		m.log.Warn("provider lookup failed",
			logger.String("mention_fp", fingerprint(mention.Text)),
			logger.String("strategy", string(mention.Strategy)),
			logger.Error(err))
		if m.telemetry != nil {
			m.telemetry.RecordLookupFailure(ctx)
		}
		return domain.NoMatch(mention)
	}

	// Stable provider-id ordering decides ties between different providers
	// scoring identically. Deliberate policy, not an accident.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	best := domain.NoMatch(mention)
	for _, candidate := range candidates {
		for _, strategy := range matchStrategies {
			score := strategy.score(m, mention, candidate)
			if score > best.Confidence {
				best = domain.MatchResult{
					ProviderID: candidate.ID,
					Strategy:   strategy.tag,
					Confidence: score,
					Mention:    mention,
				}
			}
		}
	}

	if best.Confidence < m.minConfidence {
		if best.Matched() {
			m.recordNearMiss(mention, best)
		} else {
			m.recordUnmatched(mention)
		}
		best = domain.NoMatch(mention)
	}

	if m.telemetry != nil {
		m.telemetry.RecordMatch(ctx, string(best.Strategy), best.Matched())
	}
	return best
}

// MatchAll resolves every mention of one message and deduplicates matched
// results per provider, keeping only the highest-confidence one. no_match
// results are kept so the caller sees every mention accounted for.
func (m *Matcher) MatchAll(ctx context.Context, mentions []domain.Mention) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(mentions))
	bestByProvider := map[string]int{} // provider id -> index in results

	for _, mention := range mentions {
		result := m.Match(ctx, mention)
		if !result.Matched() {
			results = append(results, result)
			continue
		}

		if idx, seen := bestByProvider[result.ProviderID]; seen {
			if result.Confidence > results[idx].Confidence {
				results[idx] = result
			}
			continue
		}
		bestByProvider[result.ProviderID] = len(results)
		results = append(results, result)
	}
	return results
}

// gatherCandidates queries the lookup capability appropriately for the
// mention's extraction strategy.
func (m *Matcher) gatherCandidates(ctx context.Context, mention domain.Mention) ([]domain.Provider, error) {
	switch mention.Strategy {
	case domain.StrategyPhoneNumber:
		normalized := mention.Normalized
		if normalized == "" {
			normalized, _ = m.normalizer.Normalize(mention.Text)
		}
		if normalized == "" {
			return nil, nil
		}
		return m.lookup.ByPhone(ctx, normalized)

	case domain.StrategyNamePattern:
		byName, err := m.lookup.ByName(ctx, normalizeName(mention.Text))
		if err != nil {
			return nil, err
		}
		byTags, err := m.lookup.ByTags(ctx, mentionTokens(mention))
		if err != nil {
			return nil, err
		}
		return mergeCandidates(byName, byTags), nil

	default:
		return m.lookup.ByTags(ctx, mentionTokens(mention))
	}
}

// mentionTokens builds the tag query for a mention: its words plus the
// normalized form (service category or place slug).
func mentionTokens(mention domain.Mention) []string {
	tokens := strings.Fields(normalizeName(mention.Text))
	if mention.Normalized != "" && mention.Normalized != strings.ToLower(mention.Text) {
		tokens = append(tokens, strings.ToLower(mention.Normalized))
	}
	return tokens
}

// mergeCandidates unions candidate lists, dropping duplicate provider ids.
func mergeCandidates(lists ...[]domain.Provider) []domain.Provider {
	seen := map[string]struct{}{}
	var merged []domain.Provider
	for _, list := range lists {
		for _, p := range list {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}
