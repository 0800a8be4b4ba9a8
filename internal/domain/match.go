package domain

// MatchStrategy identifies which matcher strategy produced a result.
type MatchStrategy string

// Match strategy tags, in attempt order.
const (
	MatchExactName   MatchStrategy = "exact_name"
	MatchPartialName MatchStrategy = "partial_name"
	MatchPhoneExact  MatchStrategy = "phone_exact"
	MatchPhoneFuzzy  MatchStrategy = "phone_fuzzy"
	MatchTagBased    MatchStrategy = "tag_based"
	MatchNone        MatchStrategy = "no_match"
)

// MatchResult resolves one mention to at most one known provider.
type MatchResult struct {
	// ProviderID is empty when Strategy is MatchNone.
	ProviderID string        `json:"provider_id,omitempty"`
	Strategy   MatchStrategy `json:"strategy"`
	Confidence float64       `json:"confidence"` // 0.0-1.0

	// Mention is the text span this result was derived from.
	Mention Mention `json:"mention"`
}

// Matched reports whether a provider was resolved.
func (r MatchResult) Matched() bool {
	return r.Strategy != MatchNone && r.ProviderID != ""
}

// NoMatch returns the canonical no-match result for a mention.
func NoMatch(mention Mention) MatchResult {
	return MatchResult{Strategy: MatchNone, Mention: mention}
}
