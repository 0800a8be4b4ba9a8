package classifier

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/logger"
	"github.com/refradar/refradar/internal/telemetry"
)

// engineSlot pairs a rule engine with its aggregation weight.
type engineSlot struct {
	engine RuleEngine
	weight float64
}

// Classifier aggregates rule engine scores into a message-type verdict.
type Classifier struct {
	engines    []engineSlot
	tieEpsilon float64
	log        logger.Logger
	telemetry  *telemetry.Provider
}

// typePriority orders verdicts for tie-breaking: a request is more useful to
// surface than an ambiguous statement.
var typePriority = []domain.MessageType{
	domain.TypeRequest,
	domain.TypeRecommendation,
	domain.TypeUnknown,
}

// New builds a classifier from configuration. Disabled engines are never
// constructed; with no engines enabled every verdict is unknown.
func New(cfg config.ClassifierConfig, log logger.Logger, tp *telemetry.Provider) *Classifier {
	c := &Classifier{
		tieEpsilon: cfg.TieEpsilon,
		log:        log,
		telemetry:  tp,
	}

	if cfg.KeywordEngine.IsEnabled() {
		c.engines = append(c.engines, engineSlot{
			engine: NewKeywordEngine(cfg.ExtraRequestKeywords, cfg.ExtraRecommendationKeywords),
			weight: cfg.KeywordEngine.Weight,
		})
	}
	if cfg.PhraseEngine.IsEnabled() {
		c.engines = append(c.engines, engineSlot{
			engine: NewPhraseEngine(),
			weight: cfg.PhraseEngine.Weight,
		})
	}

	log.Debug("classifier initialized",
		logger.Int("engines", len(c.engines)),
		logger.Float64("tie_epsilon", c.tieEpsilon))
	return c
}

// Classify scores the text against every enabled engine and returns the
// weighted verdict. Empty or whitespace-only text short-circuits to unknown
// without invoking any engine. An engine failure contributes zero and is
// logged, never propagated.
func (c *Classifier) Classify(ctx context.Context, text string) domain.ClassificationResult {
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		return domain.ClassificationResult{Type: domain.TypeUnknown, Confidence: 0.0}
	}

	aggregate := map[domain.MessageType]float64{}
	var evidence []string
	for _, slot := range c.engines {
		engineResult, err := c.runEngine(slot.engine, text)
		if err != nil {
			c.log.Warn("rule engine failed, contribution dropped",
				logger.String("engine", slot.engine.Name()),
				logger.Error(err))
			if c.telemetry != nil {
				c.telemetry.RecordEngineFailure(ctx, slot.engine.Name())
			}
			continue
		}
		for t, score := range engineResult.Scores {
			aggregate[t] += slot.weight * score
		}
		evidence = append(evidence, engineResult.Evidence...)
	}

	verdict, confidence := c.pickVerdict(aggregate)
	result := domain.ClassificationResult{
		Type:       verdict,
		Confidence: confidence,
		Evidence:   evidence,
	}

	if c.telemetry != nil {
		c.telemetry.RecordClassification(ctx, string(verdict), time.Since(start))
	}
	return result
}

// runEngine invokes one engine, converting a panic into an error so a
// misbehaving engine cannot abort classification.
func (c *Classifier) runEngine(engine RuleEngine, text string) (result EngineResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine %s panicked: %v", engine.Name(), r)
		}
	}()
	return engine.Score(text)
}

// pickVerdict selects the highest-scoring type. Any nonzero score beats
// unknown; when scores are within the tie epsilon of the maximum, request is
// preferred over recommendation.
func (c *Classifier) pickVerdict(aggregate map[domain.MessageType]float64) (domain.MessageType, float64) {
	maxScore := 0.0
	for _, t := range typePriority {
		if aggregate[t] > maxScore {
			maxScore = aggregate[t]
		}
	}
	if maxScore == 0 {
		return domain.TypeUnknown, 0.0
	}
	for _, t := range typePriority {
		if score := aggregate[t]; score > 0 && score >= maxScore-c.tieEpsilon {
			return t, math.Min(1.0, score)
		}
	}
	return domain.TypeUnknown, 0.0
}
