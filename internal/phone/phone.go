// Package phone normalizes phone numbers between local and international
// forms. Rules are table-driven from configuration rather than hard-coded,
// so other numbering plans only need config changes.
package phone

import (
	"strings"

	"github.com/refradar/refradar/internal/config"
)

// Normalizer rewrites raw digit strings to canonical E.164 form.
type Normalizer struct {
	cfg config.PhoneConfig
}

// NewNormalizer creates a normalizer for the configured numbering plan.
func NewNormalizer(cfg config.PhoneConfig) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// significant is the national number length, taken from the configured
// minimum digit count (9 for South Africa).
func (n *Normalizer) significant() int {
	return n.cfg.MinDigits
}

// Digits strips every non-digit rune, keeping a leading "+" notion out of it.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize converts a raw phone string to canonical international form
// ("+27821234567"). The second return reports whether the rewrite was
// unambiguous; an ambiguous-but-plausible number comes back cleaned with
// false so callers can down-weight it.
func (n *Normalizer) Normalize(raw string) (string, bool) {
	hadPlus := strings.HasPrefix(strings.TrimSpace(raw), "+")
	digits := Digits(raw)
	if digits == "" {
		return "", false
	}

	cc := n.cfg.CountryCode
	local := n.cfg.LocalPrefix

	switch {
	// Already international: +27821234567.
	case hadPlus && strings.HasPrefix(digits, cc) && len(digits) == len(cc)+n.significant():
		return "+" + digits, true

	// International with 00 dialing prefix: 0027821234567.
	case strings.HasPrefix(digits, "00"+cc) && len(digits) == 2+len(cc)+n.significant():
		return "+" + digits[2:], true

	// Bare country code: 27821234567.
	case strings.HasPrefix(digits, cc) && len(digits) == len(cc)+n.significant():
		return "+" + digits, true

	// Local trunk prefix: 0821234567 -> +27821234567.
	case local != "" && strings.HasPrefix(digits, local) &&
		len(digits) == len(local)+n.significant():
		return "+" + cc + digits[len(local):], true
	}

	// Plausible length but no rule applied: clean it up without vouching
	// for the rewrite.
	if len(digits) >= n.cfg.MinDigits && len(digits) <= n.cfg.MaxDigits {
		if hadPlus {
			return "+" + digits, false
		}
		return digits, false
	}
	return "", false
}

// LastN returns the trailing n digits of a normalized number, or the whole
// digit string when shorter. Fuzzy matching compares these to tolerate
// local-vs-international prefix differences.
func LastN(number string, n int) string {
	digits := Digits(number)
	if len(digits) <= n {
		return digits
	}
	return digits[len(digits)-n:]
}

// FuzzyEqual reports whether two numbers agree on their trailing n digits.
func FuzzyEqual(a, b string, n int) bool {
	da, db := LastN(a, n), LastN(b, n)
	return da != "" && da == db
}
