package matcher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/logger"
)

const fingerprintLen = 12

// fingerprint masks mention text for logs. Raw names and phone numbers must
// never appear in cleartext; a truncated hash is enough to correlate repeat
// misses during rule tuning.
func fingerprint(text string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// recordUnmatched logs a mention no strategy scored at all.
func (m *Matcher) recordUnmatched(mention domain.Mention) {
	m.log.Debug("mention unmatched",
		logger.String("mention_fp", fingerprint(mention.Text)),
		logger.String("extraction_strategy", string(mention.Strategy)),
		logger.Int("mention_len", len(mention.Text)))
}

// recordNearMiss logs a mention that scored below the confidence floor, with
// the strategy and score reached, to support threshold tuning.
func (m *Matcher) recordNearMiss(mention domain.Mention, best domain.MatchResult) {
	m.log.Debug("mention matched below confidence floor",
		logger.String("mention_fp", fingerprint(mention.Text)),
		logger.String("extraction_strategy", string(mention.Strategy)),
		logger.String("match_strategy", string(best.Strategy)),
		logger.Float64("best_score", best.Confidence),
		logger.Float64("min_confidence", m.minConfidence))
}
