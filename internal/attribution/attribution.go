// Package attribution links an endorsement to the request it is answering,
// using the quoted-reply reference when present and temporal proximity
// otherwise. The message window is caller-supplied and must be causally
// ordered; the service itself holds no conversation state.
package attribution

import (
	"context"
	"time"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/logger"
	"github.com/refradar/refradar/internal/telemetry"
)

// Temporal band confidence anchors. Confidence interpolates linearly inside
// each band and is continuous at band edges, so it decays monotonically over
// the whole temporal range.
const (
	immediateCeiling = 0.85
	immediateFloor   = 0.70
	nearFloor        = 0.45
	distantFloor     = 0.20
)

// RequestClassifier decides whether window text reads as a request.
// *classifier.Classifier satisfies it.
type RequestClassifier interface {
	Classify(ctx context.Context, text string) domain.ClassificationResult
}

// Service attributes endorsements to prior requests.
type Service struct {
	cfg        config.AttributionConfig
	classifier RequestClassifier
	log        logger.Logger
	telemetry  *telemetry.Provider
}

// New creates the attribution service.
func New(cfg config.AttributionConfig, rc RequestClassifier, log logger.Logger, tp *telemetry.Provider) *Service {
	return &Service{cfg: cfg, classifier: rc, log: log, telemetry: tp}
}

// Attribute determines which prior request, if any, the endorsement answers.
// The window holds prior messages from the same conversation; anything not
// strictly before the endorsement is ignored.
func (s *Service) Attribute(ctx context.Context, endorsement domain.Message, window []domain.Message) domain.AttributionResult {
	result := s.attribute(ctx, endorsement, window)

	if s.telemetry != nil {
		s.telemetry.RecordAttribution(ctx, string(result.Mode), result.ResponseDelay)
	}
	return result
}

func (s *Service) attribute(ctx context.Context, endorsement domain.Message, window []domain.Message) domain.AttributionResult {
	// Quoted replies always outrank temporal inference.
	if endorsement.ReplyToID != "" {
		if quoted, ok := s.findQuoted(ctx, endorsement, window); ok {
			return quoted
		}
	}
	return s.temporalScan(ctx, endorsement, window)
}

// findQuoted resolves an explicit reply reference. The referenced message
// must be in the window and read as a request; otherwise attribution falls
// back to the temporal scan.
func (s *Service) findQuoted(ctx context.Context, endorsement domain.Message, window []domain.Message) (domain.AttributionResult, bool) {
	for i := range window {
		prior := &window[i]
		if prior.ID != endorsement.ReplyToID {
			continue
		}
		if !s.isRequest(ctx, prior.Text) {
			return domain.AttributionResult{}, false
		}
		return domain.AttributionResult{
			RequestMessageID: prior.ID,
			ResponseDelay:    endorsement.Timestamp.Sub(prior.Timestamp),
			Confidence:       s.cfg.QuotedReplyConfidence,
			Mode:             domain.AttributionQuotedReply,
		}, true
	}
	return domain.AttributionResult{}, false
}

// temporalScan walks the window backward for the best prior request. A
// same-sender candidate is penalized rather than discarded: self-answered
// requests are plausible but weaker evidence of community validation.
func (s *Service) temporalScan(ctx context.Context, endorsement domain.Message, window []domain.Message) domain.AttributionResult {
	best := domain.AttributionResult{Mode: domain.AttributionNone}

	for i := len(window) - 1; i >= 0; i-- {
		prior := &window[i]
		if !prior.Timestamp.Before(endorsement.Timestamp) {
			continue
		}
		delay := endorsement.Timestamp.Sub(prior.Timestamp)
		if delay > s.cfg.DistantBand {
			continue
		}
		if !s.isRequest(ctx, prior.Text) {
			continue
		}

		mode, confidence := s.temporalConfidence(delay)
		if prior.SenderID == endorsement.SenderID {
			confidence -= s.cfg.SelfResponsePenalty
			if confidence < 0 {
				confidence = 0
			}
		}

		if confidence > best.Confidence {
			best = domain.AttributionResult{
				RequestMessageID: prior.ID,
				ResponseDelay:    delay,
				Confidence:       confidence,
				Mode:             mode,
			}
		}
	}
	return best
}

// temporalConfidence buckets the delay into a named band and interpolates
// confidence linearly within it.
func (s *Service) temporalConfidence(delay time.Duration) (domain.AttributionMode, float64) {
	switch {
	case delay <= s.cfg.ImmediateBand:
		return domain.AttributionTemporalImmediate,
			interpolate(delay, 0, s.cfg.ImmediateBand, immediateCeiling, immediateFloor)
	case delay <= s.cfg.NearBand:
		return domain.AttributionTemporalNear,
			interpolate(delay, s.cfg.ImmediateBand, s.cfg.NearBand, immediateFloor, nearFloor)
	default:
		return domain.AttributionTemporalDistant,
			interpolate(delay, s.cfg.NearBand, s.cfg.DistantBand, nearFloor, distantFloor)
	}
}

// isRequest asks the classifier whether prior text reads as a request.
func (s *Service) isRequest(ctx context.Context, text string) bool {
	return s.classifier.Classify(ctx, text).Type == domain.TypeRequest
}

// interpolate maps delay in [from, to] onto [high, low] linearly.
func interpolate(delay, from, to time.Duration, high, low float64) float64 {
	if to <= from {
		return low
	}
	frac := float64(delay-from) / float64(to-from)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return high - frac*(high-low)
}
