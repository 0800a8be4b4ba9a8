package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/logger"
	"github.com/refradar/refradar/internal/matcher"
	"github.com/refradar/refradar/internal/pipeline"
	"github.com/refradar/refradar/internal/testhelpers"
)

var base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newPipeline(t *testing.T, lookup matcher.ProviderLookup) *pipeline.Pipeline {
	t.Helper()
	var cfg config.Config
	cfg.SetDefaults()
	p, err := pipeline.New(&cfg, lookup, logger.NewNop(), nil)
	require.NoError(t, err)
	return p
}

func seededLookup() matcher.ProviderLookup {
	return testhelpers.SeededRegistry(
		domain.Provider{
			ID:    "prov-davies",
			Name:  "Davies Electrical",
			Phone: "+27821234567",
			Tags:  []string{"electrical"},
		},
		domain.Provider{
			ID:    "prov-mikes",
			Name:  "Mike's Plumbing",
			Phone: "+27831112222",
			Tags:  []string{"plumbing"},
		},
	)
}

func TestProcess_RecommendationWithNameAndPhone(t *testing.T) {
	p := newPipeline(t, seededLookup())

	msg := testhelpers.MessageAt("m1", "bob", "I recommend Davies Electrical 0821234567", base, 0)
	result, err := p.Process(context.Background(), msg, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.TypeRecommendation, result.Classification.Type)
	assert.Greater(t, result.Classification.Confidence, 0.5)

	// The name and the local-form phone number both surface as mentions.
	require.Len(t, result.Mentions, 2)
	assert.Equal(t, domain.StrategyNamePattern, result.Mentions[0].Strategy)
	assert.Equal(t, "Davies Electrical", result.Mentions[0].Text)
	assert.Equal(t, domain.StrategyPhoneNumber, result.Mentions[1].Strategy)
	assert.Equal(t, "+27821234567", result.Mentions[1].Normalized)

	// Both mentions resolve the same provider; the match list is deduplicated
	// down to the strongest result.
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "prov-davies", result.Matches[0].ProviderID)
	assert.Equal(t, domain.MatchExactName, result.Matches[0].Strategy)
	assert.InDelta(t, 1.0, result.Matches[0].Confidence, 1e-9)

	require.NotNil(t, result.Attribution)
	assert.Equal(t, domain.AttributionNone, result.Attribution.Mode)
}

func TestProcess_RequestSkipsMatchingAndAttribution(t *testing.T) {
	p := newPipeline(t, seededLookup())

	msg := testhelpers.MessageAt("m1", "alice", "Anyone know a good plumber in Sandton?", base, 0)
	result, err := p.Process(context.Background(), msg, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.TypeRequest, result.Classification.Type)
	assert.NotEmpty(t, result.Mentions)
	assert.Nil(t, result.Matches)
	assert.Nil(t, result.Attribution)
}

func TestProcess_EndorsementAttributedToRecentRequest(t *testing.T) {
	p := newPipeline(t, seededLookup())

	request := testhelpers.MessageAt("m1", "alice", "Anyone know a good plumber?", base, 0)
	endorsement := testhelpers.MessageAt("m2", "bob", "Try Mike's Plumbing", base, 10*time.Second)

	result, err := p.Process(context.Background(), endorsement, []domain.Message{request})
	require.NoError(t, err)

	assert.Equal(t, domain.TypeRecommendation, result.Classification.Type)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "prov-mikes", result.Matches[0].ProviderID)
	assert.Equal(t, domain.MatchExactName, result.Matches[0].Strategy)

	require.NotNil(t, result.Attribution)
	assert.Equal(t, domain.AttributionTemporalImmediate, result.Attribution.Mode)
	assert.Equal(t, "m1", result.Attribution.RequestMessageID)
	assert.Equal(t, 10*time.Second, result.Attribution.ResponseDelay)
	assert.InDelta(t, 0.80, result.Attribution.Confidence, 1e-9)
}

func TestProcess_SelfEndorsementScoresLower(t *testing.T) {
	p := newPipeline(t, seededLookup())

	request := testhelpers.MessageAt("m1", "alice", "Anyone know a good plumber?", base, 0)
	endorsement := testhelpers.MessageAt("m2", "alice", "Try Mike's Plumbing", base, 10*time.Second)

	result, err := p.Process(context.Background(), endorsement, []domain.Message{request})
	require.NoError(t, err)

	require.NotNil(t, result.Attribution)
	assert.Equal(t, domain.AttributionTemporalImmediate, result.Attribution.Mode)
	assert.InDelta(t, 0.80-0.15, result.Attribution.Confidence, 1e-9)
}

func TestProcess_LookupOutageDoesNotFailMessage(t *testing.T) {
	p := newPipeline(t, testhelpers.FailingLookup{})

	msg := testhelpers.MessageAt("m1", "bob", "I recommend Davies Electrical 0821234567", base, 0)
	result, err := p.Process(context.Background(), msg, nil)
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	for _, match := range result.Matches {
		assert.False(t, match.Matched())
		assert.Equal(t, domain.MatchNone, match.Strategy)
	}
}

func TestProcess_InvalidMessageRejected(t *testing.T) {
	p := newPipeline(t, seededLookup())

	msg := domain.Message{ID: "m1", Text: "hello"}
	result, err := p.Process(context.Background(), msg, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	// The pipeline stays usable after a rejected message.
	ok, err := p.Process(context.Background(),
		testhelpers.MessageAt("m2", "bob", "Try Mike's Plumbing", base, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeRecommendation, ok.Classification.Type)
}

func TestNew_InvalidConfigRejected(t *testing.T) {
	var cfg config.Config
	cfg.SetDefaults()
	cfg.Matcher.MinConfidence = 1.5

	_, err := pipeline.New(&cfg, seededLookup(), logger.NewNop(), nil)
	require.Error(t, err)

	var cerr *domain.ConfigError
	assert.ErrorAs(t, err, &cerr)
}
