package domain

// ExtractionStrategy identifies which extractor strategy produced a mention.
type ExtractionStrategy string

// Extraction strategy tags.
const (
	StrategyNamePattern     ExtractionStrategy = "name_pattern"
	StrategyPhoneNumber     ExtractionStrategy = "phone_number"
	StrategyServiceKeyword  ExtractionStrategy = "service_keyword"
	StrategyLocationPattern ExtractionStrategy = "location_pattern"
)

// Mention is a contiguous span of message text hypothesized to refer to a
// provider, phone number, service, or location.
type Mention struct {
	// Text is the span exactly as it appears in the message.
	Text string `json:"text"`
	// Start and End are rune offsets into the message text, 0-indexed,
	// with End > Start.
	Start int `json:"start"`
	End   int `json:"end"`

	Strategy   ExtractionStrategy `json:"strategy"`
	Confidence float64            `json:"confidence"` // 0.0-1.0

	// Normalized is the canonical form used for matching: E.164 for phone
	// mentions, lowercased text otherwise.
	Normalized string `json:"normalized,omitempty"`

	// Region is the province code for gazetteer-backed location mentions.
	Region string `json:"region,omitempty"`
}

// Overlaps reports whether two mentions cover overlapping spans.
func (m Mention) Overlaps(other Mention) bool {
	return m.Start < other.End && other.Start < m.End
}
