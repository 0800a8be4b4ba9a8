package extractor

import "unicode"

// span is a half-open rune-offset interval.
type span struct {
	start, end int
}

// lowerRunes lowercases rune-by-rune so offsets stay aligned with the
// original text.
func lowerRunes(text string) []rune {
	runes := []rune(text)
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}
	return lowered
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// findOccurrences locates every word-bounded, case-insensitive occurrence of
// term in lowered, returning rune-offset spans. The term itself may contain
// spaces; interior punctuation in the text does not match.
func findOccurrences(lowered []rune, term string) []span {
	termRunes := []rune(term)
	if len(termRunes) == 0 || len(termRunes) > len(lowered) {
		return nil
	}

	var spans []span
	for i := 0; i+len(termRunes) <= len(lowered); i++ {
		if !runesMatch(lowered[i:i+len(termRunes)], termRunes) {
			continue
		}
		startOK := i == 0 || !isWordRune(lowered[i-1])
		end := i + len(termRunes)
		endOK := end == len(lowered) || !isWordRune(lowered[end])
		if startOK && endOK {
			spans = append(spans, span{start: i, end: end})
		}
	}
	return spans
}

// runesMatch compares a text window to a term, treating any whitespace rune
// in the window as a plain space.
func runesMatch(window, term []rune) bool {
	for i, r := range term {
		w := window[i]
		if unicode.IsSpace(w) {
			w = ' '
		}
		if w != r {
			return false
		}
	}
	return true
}
