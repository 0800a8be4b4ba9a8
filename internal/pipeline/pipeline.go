// Package pipeline composes the four understanding stages: classify,
// extract, match, attribute. One invocation processes one message to
// completion; the pipeline holds no mutable state between messages, so the
// host may run invocations concurrently as long as each conversation's
// window is supplied in causal order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/refradar/refradar/internal/attribution"
	"github.com/refradar/refradar/internal/classifier"
	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/extractor"
	"github.com/refradar/refradar/internal/logger"
	"github.com/refradar/refradar/internal/matcher"
	"github.com/refradar/refradar/internal/telemetry"
)

// Result is everything the pipeline derived from one message. Plain values;
// persistence is the caller's concern.
type Result struct {
	MessageID      string                      `json:"message_id"`
	Classification domain.ClassificationResult `json:"classification"`
	Mentions       []domain.Mention            `json:"mentions"`
	// Matches and Attribution are only populated for recommendation-bearing
	// messages.
	Matches     []domain.MatchResult      `json:"matches,omitempty"`
	Attribution *domain.AttributionResult `json:"attribution,omitempty"`
}

// Pipeline wires the stages together.
type Pipeline struct {
	classifier  *classifier.Classifier
	extractor   *extractor.Extractor
	matcher     *matcher.Matcher
	attribution *attribution.Service
	log         logger.Logger
	telemetry   *telemetry.Provider
}

// New builds the full pipeline from validated configuration and the injected
// provider lookup.
func New(cfg *config.Config, lookup matcher.ProviderLookup, log logger.Logger, tp *telemetry.Provider) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}

	c := classifier.New(cfg.Classifier, log, tp)
	return &Pipeline{
		classifier:  c,
		extractor:   extractor.New(cfg.Extractor, log, tp),
		matcher:     matcher.New(cfg.Matcher, cfg.Extractor.Phone, lookup, log, tp),
		attribution: attribution.New(cfg.Attribution, c, log, tp),
		log:         log,
		telemetry:   tp,
	}, nil
}

// Process runs one message through every stage. Classification and
// extraction always run; matching and attribution only when the verdict is a
// recommendation. A per-mention lookup outage never fails the message; a
// validation error does, and the pipeline remains usable for the next one.
func (p *Pipeline) Process(ctx context.Context, msg domain.Message, window []domain.Message) (*Result, error) {
	start := time.Now()

	if err := msg.Validate(); err != nil {
		if p.telemetry != nil {
			p.telemetry.RecordValidationFailure(ctx, validationReason(err))
		}
		return nil, err
	}

	ctx, span := p.telemetry.StartSpan(ctx, "pipeline.process")
	defer span.End()

	result := &Result{MessageID: msg.ID}

	stageCtx, stageSpan := p.telemetry.StartSpan(ctx, "pipeline.classify")
	result.Classification = p.classifier.Classify(stageCtx, msg.Text)
	stageSpan.End()

	stageCtx, stageSpan = p.telemetry.StartSpan(ctx, "pipeline.extract")
	result.Mentions = p.extractor.Extract(stageCtx, msg.Text)
	stageSpan.End()

	if result.Classification.IsRecommendation() {
		stageCtx, stageSpan = p.telemetry.StartSpan(ctx, "pipeline.match")
		result.Matches = p.matcher.MatchAll(stageCtx, result.Mentions)
		stageSpan.End()

		stageCtx, stageSpan = p.telemetry.StartSpan(ctx, "pipeline.attribute")
		attr := p.attribution.Attribute(stageCtx, msg, window)
		stageSpan.End()
		result.Attribution = &attr
	}

	span.SetAttributes(
		attribute.String("message_type", string(result.Classification.Type)),
		attribute.Int("mentions", len(result.Mentions)))

	if p.telemetry != nil {
		p.telemetry.RecordMessage(ctx, string(result.Classification.Type), time.Since(start))
	}

	p.log.Debug("message processed",
		logger.String("conversation_id", msg.ConversationID),
		logger.String("message_type", string(result.Classification.Type)),
		logger.Float64("confidence", result.Classification.Confidence),
		logger.Int("mentions", len(result.Mentions)),
		logger.Int("matches", len(result.Matches)),
		logger.Duration("elapsed", time.Since(start)))

	return result, nil
}

// validationReason extracts a low-cardinality metric label from a
// validation error.
func validationReason(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Field
	}
	return "invalid"
}
