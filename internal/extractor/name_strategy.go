package extractor

import (
	"strings"
	"unicode"

	"github.com/refradar/refradar/internal/domain"
)

// Name pattern confidence tiers.
const (
	nameBaseConfidence   = 0.6 // plain capitalized multi-token run
	nameTradeConfidence  = 0.8 // run ending in a trade word
	nameSuffixConfidence = 0.9 // run ending in a business suffix
	maxNameTokens        = 5
)

// businessSuffixes strongly imply a business name.
var businessSuffixes = map[string]struct{}{
	"ltd": {}, "pty": {}, "cc": {}, "inc": {},
	"services": {}, "service": {}, "sons": {}, "bros": {}, "brothers": {},
	"solutions": {}, "projects": {}, "contractors": {}, "group": {},
}

// tradeWords imply a business name when they close a capitalized run.
var tradeWords = map[string]struct{}{
	"plumbing": {}, "electrical": {}, "builders": {}, "construction": {},
	"roofing": {}, "maintenance": {}, "security": {}, "gardens": {},
	"cleaning": {}, "motors": {}, "auto": {}, "paving": {}, "pools": {},
}

// connectorTokens may appear inside a name run without capitalization.
var connectorTokens = map[string]struct{}{
	"&": {}, "and": {}, "of": {}, "the": {},
}

// NameStrategy recognizes capitalized multi-token sequences and
// business-suffix patterns ("Davies Electrical", "Smith & Sons Ltd").
type NameStrategy struct {
	blacklist *Blacklist
}

// NewNameStrategy creates the name pattern strategy.
func NewNameStrategy(blacklist *Blacklist) *NameStrategy {
	return &NameStrategy{blacklist: blacklist}
}

// Name implements Strategy.
func (s *NameStrategy) Name() domain.ExtractionStrategy {
	return domain.StrategyNamePattern
}

// token is one whitespace-delimited word with its rune span.
type token struct {
	text  string
	start int
	end   int
}

// Extract implements Strategy.
func (s *NameStrategy) Extract(text string) []domain.Mention {
	tokens := tokenize(text)

	var mentions []domain.Mention
	for i := 0; i < len(tokens); {
		if !startsNameRun(tokens[i]) {
			i++
			continue
		}

		run := []token{tokens[i]}
		j := i + 1
		for j < len(tokens) && len(run) < maxNameTokens && continuesNameRun(tokens[j]) {
			run = append(run, tokens[j])
			j++
		}

		if m, ok := s.mentionFromRun(text, run); ok {
			mentions = append(mentions, m)
		}
		i = j
	}
	return mentions
}

// mentionFromRun trims blacklisted and connector lead tokens, then scores
// what remains by its closing token.
func (s *NameStrategy) mentionFromRun(text string, run []token) (domain.Mention, bool) {
	for len(run) > 0 {
		lead := strings.ToLower(trimPunct(run[0].text))
		if s.blacklist.Contains(lead) {
			run = run[1:]
			continue
		}
		if _, ok := connectorTokens[lead]; ok {
			run = run[1:]
			continue
		}
		break
	}
	// Drop trailing connectors left dangling by the trim.
	for len(run) > 0 {
		tail := strings.ToLower(trimPunct(run[len(run)-1].text))
		if _, ok := connectorTokens[tail]; ok {
			run = run[:len(run)-1]
			continue
		}
		break
	}
	if len(run) == 0 {
		return domain.Mention{}, false
	}

	last := strings.ToLower(trimPunct(run[len(run)-1].text))
	confidence := nameBaseConfidence
	if _, ok := businessSuffixes[last]; ok {
		confidence = nameSuffixConfidence
	} else if _, ok := tradeWords[last]; ok {
		confidence = nameTradeConfidence
	} else if len(run) < 2 {
		// A lone capitalized token with no suffix is just a word.
		return domain.Mention{}, false
	}

	runes := []rune(text)
	start, end := run[0].start, run[len(run)-1].end
	// Shrink the span past edge punctuation ("Davies Electrical." -> no dot).
	for start < end && !isNameRune(runes[start]) {
		start++
	}
	for end > start && !isNameRune(runes[end-1]) {
		end--
	}
	if start >= end {
		return domain.Mention{}, false
	}
	spanText := string(runes[start:end])
	return domain.Mention{
		Text:       spanText,
		Start:      start,
		End:        end,
		Strategy:   domain.StrategyNamePattern,
		Confidence: confidence,
		Normalized: strings.ToLower(spanText),
	}, true
}

func tokenize(text string) []token {
	runes := []rune(text)
	var tokens []token
	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		tokens = append(tokens, token{text: string(runes[start:i]), start: start, end: i})
	}
	return tokens
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '&'
}

// trimPunct strips leading and trailing punctuation from a token.
func trimPunct(tok string) string {
	return strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&'
	})
}

func startsNameRun(tok token) bool {
	t := trimPunct(tok.text)
	if t == "" {
		return false
	}
	first := []rune(t)[0]
	return unicode.IsUpper(first)
}

func continuesNameRun(tok token) bool {
	t := trimPunct(tok.text)
	if t == "" {
		return false
	}
	if _, ok := connectorTokens[strings.ToLower(t)]; ok {
		return true
	}
	first := []rune(t)[0]
	return unicode.IsUpper(first)
}
