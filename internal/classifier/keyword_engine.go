package classifier

import (
	"fmt"
	"math"
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
)

// keywordSaturation is the summed keyword weight at which a type's score
// reaches 1.0. Two strong keywords saturate the engine.
const keywordSaturation = 2.0

// keywordEntry binds one keyword to the message type it argues for.
type keywordEntry struct {
	messageType domain.MessageType
	weight      float64
}

// KeywordEngine scores messages with an Aho-Corasick automaton over weighted
// per-type keyword tables. A single pass finds every keyword; unique hits
// accumulate their weight toward the owning type.
type KeywordEngine struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	entries  map[string][]keywordEntry
}

// defaultRequestKeywords argue the message is asking for a provider.
var defaultRequestKeywords = []config.WeightedTerm{
	{Term: "anyone", Weight: 0.5},
	{Term: "anybody", Weight: 0.5},
	{Term: "looking for", Weight: 0.8},
	{Term: "know a good", Weight: 0.9},
	{Term: "know of", Weight: 0.6},
	{Term: "need a", Weight: 0.6},
	{Term: "who can", Weight: 0.6},
	{Term: "suggestions", Weight: 0.7},
	{Term: "recommendations", Weight: 0.7},
	{Term: "advice", Weight: 0.5},
	{Term: "urgently", Weight: 0.4},
	{Term: "please help", Weight: 0.6},
}

// defaultRecommendationKeywords argue the message endorses a provider.
var defaultRecommendationKeywords = []config.WeightedTerm{
	{Term: "recommend", Weight: 0.6},
	{Term: "recommended", Weight: 0.7},
	{Term: "try", Weight: 0.5},
	{Term: "used them", Weight: 0.8},
	{Term: "reliable", Weight: 0.6},
	{Term: "excellent", Weight: 0.6},
	{Term: "brilliant", Weight: 0.5},
	{Term: "professional", Weight: 0.5},
	{Term: "great job", Weight: 0.8},
	{Term: "good service", Weight: 0.7},
	{Term: "great service", Weight: 0.8},
	{Term: "vouch", Weight: 0.8},
	{Term: "their number", Weight: 0.6},
}

// NewKeywordEngine builds the automaton from the built-in tables plus any
// configured extras.
func NewKeywordEngine(extraRequest, extraRecommendation []config.WeightedTerm) *KeywordEngine {
	e := &KeywordEngine{entries: make(map[string][]keywordEntry)}

	add := func(terms []config.WeightedTerm, t domain.MessageType) {
		for _, term := range terms {
			normalized := strings.ToLower(strings.TrimSpace(term.Term))
			if normalized == "" {
				continue
			}
			if _, seen := e.entries[normalized]; !seen {
				e.keywords = append(e.keywords, normalized)
			}
			e.entries[normalized] = append(e.entries[normalized], keywordEntry{
				messageType: t,
				weight:      term.Weight,
			})
		}
	}

	add(defaultRequestKeywords, domain.TypeRequest)
	add(defaultRecommendationKeywords, domain.TypeRecommendation)
	add(extraRequest, domain.TypeRequest)
	add(extraRecommendation, domain.TypeRecommendation)

	sort.Strings(e.keywords)
	if len(e.keywords) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(e.keywords)
	}
	return e
}

// Name implements RuleEngine.
func (e *KeywordEngine) Name() string { return "keyword" }

// Score implements RuleEngine. The automaton reports substring hits; each is
// re-checked on word boundaries before it counts.
func (e *KeywordEngine) Score(text string) (EngineResult, error) {
	result := EngineResult{Scores: Scores{}}
	if e.matcher == nil {
		return result, nil
	}

	normalized := normalizeText(text)
	hits := e.matcher.Match([]byte(normalized))

	totals := map[domain.MessageType]float64{}
	seen := map[string]bool{}
	for _, hitIndex := range hits {
		if hitIndex >= len(e.keywords) {
			continue
		}
		keyword := e.keywords[hitIndex]
		if seen[keyword] || !containsWord(normalized, keyword) {
			continue
		}
		seen[keyword] = true

		for _, entry := range e.entries[keyword] {
			totals[entry.messageType] += entry.weight
			result.Evidence = append(result.Evidence,
				fmt.Sprintf("keyword %q matched for %s (+%.2f)", keyword, entry.messageType, entry.weight))
		}
	}

	for t, total := range totals {
		result.Scores[t] = math.Min(1.0, total/keywordSaturation)
	}
	return result, nil
}
