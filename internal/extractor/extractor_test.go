package extractor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/extractor"
	"github.com/refradar/refradar/internal/logger"
)

func defaultExtractor(mutate ...func(*config.ExtractorConfig)) *extractor.Extractor {
	var cfg config.Config
	cfg.SetDefaults()
	for _, m := range mutate {
		m(&cfg.Extractor)
	}
	return extractor.New(cfg.Extractor, logger.NewNop(), nil)
}

func TestExtract_NameAndPhone(t *testing.T) {
	e := defaultExtractor()

	mentions := e.Extract(context.Background(), "I recommend Davies Electrical 0821234567")
	require.Len(t, mentions, 2)

	name := mentions[0]
	assert.Equal(t, domain.StrategyNamePattern, name.Strategy)
	assert.Equal(t, "Davies Electrical", name.Text)
	assert.Equal(t, "davies electrical", name.Normalized)
	assert.Equal(t, 12, name.Start)
	assert.Equal(t, 29, name.End)
	assert.InDelta(t, 0.8, name.Confidence, 1e-9)

	ph := mentions[1]
	assert.Equal(t, domain.StrategyPhoneNumber, ph.Strategy)
	assert.Equal(t, "0821234567", ph.Text)
	assert.Equal(t, "+27821234567", ph.Normalized)
	assert.InDelta(t, 0.95, ph.Confidence, 1e-9)
}

func TestExtract_OverlapKeepsStrongerMention(t *testing.T) {
	e := defaultExtractor()

	// "Sandton Plumbing Services" triggers the name, service, and location
	// strategies on overlapping spans; the full business name must survive.
	mentions := e.Extract(context.Background(), "Sandton Plumbing Services sorted our geyser")
	require.NotEmpty(t, mentions)

	first := mentions[0]
	assert.Equal(t, domain.StrategyNamePattern, first.Strategy)
	assert.Equal(t, "Sandton Plumbing Services", first.Text)
	assert.InDelta(t, 0.9, first.Confidence, 1e-9)

	for _, m := range mentions[1:] {
		assert.False(t, m.Overlaps(first), "mention %q overlaps the name span", m.Text)
	}
}

func TestExtract_ServiceAndLocation(t *testing.T) {
	e := defaultExtractor()

	mentions := e.Extract(context.Background(), "looking for a plumber in randburg")
	require.Len(t, mentions, 2)

	assert.Equal(t, domain.StrategyServiceKeyword, mentions[0].Strategy)
	assert.Equal(t, "plumber", mentions[0].Text)
	assert.Equal(t, "plumbing", mentions[0].Normalized)

	assert.Equal(t, domain.StrategyLocationPattern, mentions[1].Strategy)
	assert.Equal(t, "randburg", mentions[1].Text)
	assert.Equal(t, "randburg", mentions[1].Normalized)
	assert.Equal(t, "GP", mentions[1].Region)
	assert.InDelta(t, 0.7, mentions[1].Confidence, 1e-9)
}

func TestExtract_ExtraPlacesCarryNoRegion(t *testing.T) {
	e := defaultExtractor(func(cfg *config.ExtractorConfig) {
		// "Sandton" is already in the gazetteer; only "Steyn City" is new.
		cfg.ExtraPlaces = []string{"Sandton", "Steyn City"}
	})

	mentions := e.Extract(context.Background(), "anyone near steyn city or sandton?")
	require.Len(t, mentions, 2)

	assert.Equal(t, "steyn-city", mentions[0].Normalized)
	assert.Empty(t, mentions[0].Region)

	assert.Equal(t, "sandton", mentions[1].Normalized)
	assert.Equal(t, "GP", mentions[1].Region)
}

func TestExtract_AmbiguousForeignNumber(t *testing.T) {
	e := defaultExtractor()

	mentions := e.Extract(context.Background(), "reach him on +44 7712 345 670")
	require.Len(t, mentions, 1)
	assert.Equal(t, domain.StrategyPhoneNumber, mentions[0].Strategy)
	assert.Equal(t, "+447712345670", mentions[0].Normalized)
	assert.InDelta(t, 0.7, mentions[0].Confidence, 1e-9)
}

func TestExtract_RuneOffsetsWithMultibyteText(t *testing.T) {
	e := defaultExtractor()

	text := "👍 ring 0821234567"
	mentions := e.Extract(context.Background(), text)
	require.Len(t, mentions, 1)

	m := mentions[0]
	assert.Equal(t, 7, m.Start)
	assert.Equal(t, 17, m.End)
	assert.Equal(t, "0821234567", string([]rune(text)[m.Start:m.End]))
}

func TestExtract_ExtraBlacklistSuppressesSpans(t *testing.T) {
	plain := defaultExtractor()
	mentions := plain.Extract(context.Background(), "anyone around sandton?")
	require.Len(t, mentions, 1)
	assert.Equal(t, domain.StrategyLocationPattern, mentions[0].Strategy)

	filtered := defaultExtractor(func(cfg *config.ExtractorConfig) {
		cfg.ExtraBlacklist = []string{"Sandton"}
	})
	assert.Empty(t, filtered.Extract(context.Background(), "anyone around sandton?"))
}

func TestExtract_AllStrategiesDisabled(t *testing.T) {
	var cfg config.Config
	cfg.SetDefaults()
	cfg.Extractor.NamePattern.Enabled = config.Bool(false)
	cfg.Extractor.PhoneNumber.Enabled = config.Bool(false)
	cfg.Extractor.ServiceKeyword.Enabled = config.Bool(false)
	cfg.Extractor.LocationPattern.Enabled = config.Bool(false)
	e := extractor.New(cfg.Extractor, logger.NewNop(), nil)

	mentions := e.Extract(context.Background(), "I recommend Davies Electrical 0821234567")
	assert.NotNil(t, mentions)
	assert.Empty(t, mentions)
}

func TestExtract_DeterministicAndWellFormed(t *testing.T) {
	e := defaultExtractor()

	corpus := []string{
		"I recommend Davies Electrical 0821234567",
		"Anyone know a good plumber in Sandton? Mine charged R2000 for a geyser",
		"Try Mike's Plumbing, ask for Pete on 082 123 4567",
		"Smith & Sons Ltd did our roofing and paving, great service",
		"no capitals no numbers no services here",
		"",
	}

	for _, text := range corpus {
		first := e.Extract(context.Background(), text)
		second := e.Extract(context.Background(), text)
		assert.Equal(t, first, second, "extraction not deterministic for %q", text)

		runes := []rune(text)
		for i, m := range first {
			require.True(t, m.Start >= 0 && m.Start < m.End && m.End <= len(runes),
				"bad span [%d,%d) in %q", m.Start, m.End, text)
			assert.Equal(t, m.Text, string(runes[m.Start:m.End]))
			assert.GreaterOrEqual(t, m.Confidence, 0.0)
			assert.LessOrEqual(t, m.Confidence, 1.0)
			if i > 0 {
				prev := first[i-1]
				assert.GreaterOrEqual(t, m.Start, prev.End, "mentions overlap in %q", text)
			}
		}
	}
}
