package classifier

import (
	"fmt"
	"math"
	"regexp"

	"github.com/refradar/refradar/internal/domain"
)

// phraseBonus is added per matched pattern beyond the strongest one.
const phraseBonus = 0.1

// phrasePattern is one compiled phrase rule.
type phrasePattern struct {
	name        string
	re          *regexp.Regexp
	messageType domain.MessageType
	weight      float64
}

// PhraseEngine scores messages against anchored phrase patterns. Phrases are
// higher-precision than single keywords and disambiguate overlapping terms
// ("can anyone recommend" vs "I recommend").
type PhraseEngine struct {
	patterns []phrasePattern
}

// phrasePatterns are matched against the raw message text, case-insensitively.
// Punctuation is kept so question marks can be scored.
var phrasePatterns = []phrasePattern{
	// Requests
	{name: "anyone-know", re: regexp.MustCompile(`(?i)\bany(?:one|body)\s+know`), messageType: domain.TypeRequest, weight: 0.9},
	{name: "can-anyone", re: regexp.MustCompile(`(?i)\b(?:can|could|does)\s+any(?:one|body)\b`), messageType: domain.TypeRequest, weight: 0.8},
	{name: "please-recommend", re: regexp.MustCompile(`(?i)\bplease\s+(?:recommend|suggest)\b`), messageType: domain.TypeRequest, weight: 0.9},
	{name: "recommendations-question", re: regexp.MustCompile(`(?i)\brecommendations?\s*\?`), messageType: domain.TypeRequest, weight: 0.8},
	{name: "looking-for", re: regexp.MustCompile(`(?i)\blooking\s+for\s+a\b`), messageType: domain.TypeRequest, weight: 0.7},
	{name: "who-do-you-use", re: regexp.MustCompile(`(?i)\bwho\s+do(?:es)?\s+(?:you|everyone)\s+use\b`), messageType: domain.TypeRequest, weight: 0.9},
	{name: "in-need-of", re: regexp.MustCompile(`(?i)\bin\s+need\s+of\b`), messageType: domain.TypeRequest, weight: 0.6},
	{name: "trailing-question", re: regexp.MustCompile(`\?\s*$`), messageType: domain.TypeRequest, weight: 0.3},

	// Recommendations
	{name: "i-recommend", re: regexp.MustCompile(`(?i)\bi\s+(?:highly\s+|can\s+)?recommend\b`), messageType: domain.TypeRecommendation, weight: 1.0},
	{name: "highly-recommended", re: regexp.MustCompile(`(?i)\bhighly\s+recommend(?:ed)?\b`), messageType: domain.TypeRecommendation, weight: 0.9},
	{name: "we-used", re: regexp.MustCompile(`(?i)\b(?:we|i)\s+used?\b`), messageType: domain.TypeRecommendation, weight: 0.7},
	{name: "leading-try", re: regexp.MustCompile(`(?i)^\s*try\b`), messageType: domain.TypeRecommendation, weight: 0.8},
	{name: "give-a-call", re: regexp.MustCompile(`(?i)\bgive\s+.{1,40}\s+a\s+(?:call|try|ring)\b`), messageType: domain.TypeRecommendation, weight: 0.8},
	{name: "used-them", re: regexp.MustCompile(`(?i)\bused\s+(?:them|him|her)\b`), messageType: domain.TypeRecommendation, weight: 0.8},
	{name: "great-job", re: regexp.MustCompile(`(?i)\bdid\s+an?\s+(?:great|good|fantastic|excellent|brilliant)\s+job\b`), messageType: domain.TypeRecommendation, weight: 0.9},
	{name: "can-vouch", re: regexp.MustCompile(`(?i)\bcan\s+vouch\b`), messageType: domain.TypeRecommendation, weight: 0.9},
	{name: "speak-to", re: regexp.MustCompile(`(?i)\bspeak\s+to\b.{1,40}\bon\b`), messageType: domain.TypeRecommendation, weight: 0.6},
}

// NewPhraseEngine creates a phrase engine with the built-in patterns.
func NewPhraseEngine() *PhraseEngine {
	return &PhraseEngine{patterns: phrasePatterns}
}

// Name implements RuleEngine.
func (e *PhraseEngine) Name() string { return "phrase" }

// Score implements RuleEngine. The per-type score is the strongest matched
// pattern's weight plus a small bonus per additional match, capped at 1.0.
func (e *PhraseEngine) Score(text string) (EngineResult, error) {
	result := EngineResult{Scores: Scores{}}

	best := map[domain.MessageType]float64{}
	count := map[domain.MessageType]int{}
	for _, p := range e.patterns {
		if !p.re.MatchString(text) {
			continue
		}
		count[p.messageType]++
		if p.weight > best[p.messageType] {
			best[p.messageType] = p.weight
		}
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("phrase %q matched for %s (+%.2f)", p.name, p.messageType, p.weight))
	}

	for t, w := range best {
		result.Scores[t] = math.Min(1.0, w+phraseBonus*float64(count[t]-1))
	}
	return result, nil
}
