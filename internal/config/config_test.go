package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
)

func TestSetDefaults_YieldsRunnableConfig(t *testing.T) {
	var cfg config.Config
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Classifier.KeywordEngine.IsEnabled())
	assert.True(t, cfg.Classifier.PhraseEngine.IsEnabled())
	assert.InDelta(t, 0.05, cfg.Classifier.TieEpsilon, 1e-9)
	assert.True(t, cfg.Extractor.PhoneNumber.IsEnabled())
	assert.Equal(t, "27", cfg.Extractor.Phone.CountryCode)
	assert.InDelta(t, 0.4, cfg.Matcher.MinConfidence, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Attribution.ImmediateBand)
	assert.Equal(t, 15*time.Minute, cfg.Attribution.NearBand)
	assert.Equal(t, time.Hour, cfg.Attribution.DistantBand)
	assert.Equal(t, "memory", cfg.Registry.Driver)
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	var cfg config.Config
	cfg.Matcher.MinConfidence = 0.6
	cfg.Classifier.KeywordEngine.Enabled = config.Bool(false)
	cfg.Extractor.NamePattern.Enabled = config.Bool(false)
	cfg.SetDefaults()

	assert.InDelta(t, 0.6, cfg.Matcher.MinConfidence, 1e-9)
	// Explicit disables survive defaulting; weights still fill in.
	assert.False(t, cfg.Classifier.KeywordEngine.IsEnabled())
	assert.InDelta(t, 0.6, cfg.Classifier.KeywordEngine.Weight, 1e-9)
	assert.False(t, cfg.Extractor.NamePattern.IsEnabled())
	// Untouched toggles default on.
	assert.True(t, cfg.Classifier.PhraseEngine.IsEnabled())
	assert.True(t, cfg.Extractor.PhoneNumber.IsEnabled())
}

func TestValidate_RejectsBadConfig(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*config.Config)
		wantField string
	}{
		{
			name:      "min confidence above one",
			mutate:    func(c *config.Config) { c.Matcher.MinConfidence = 1.5 },
			wantField: "matcher.min_confidence",
		},
		{
			name:      "negative tie epsilon",
			mutate:    func(c *config.Config) { c.Classifier.TieEpsilon = -0.1 },
			wantField: "classifier.tie_epsilon",
		},
		{
			name:      "near band not beyond immediate",
			mutate:    func(c *config.Config) { c.Attribution.NearBand = 10 * time.Second },
			wantField: "attribution.near_band",
		},
		{
			name:      "distant band not beyond near",
			mutate:    func(c *config.Config) { c.Attribution.DistantBand = time.Minute },
			wantField: "attribution.distant_band",
		},
		{
			name:      "quoted reply confidence too low",
			mutate:    func(c *config.Config) { c.Attribution.QuotedReplyConfidence = 0.5 },
			wantField: "attribution.quoted_reply_confidence",
		},
		{
			name:      "phone max below min",
			mutate:    func(c *config.Config) { c.Extractor.Phone.MaxDigits = 5 },
			wantField: "extractor.phone.max_digits",
		},
		{
			name:      "unknown registry driver",
			mutate:    func(c *config.Config) { c.Registry.Driver = "postgres" },
			wantField: "registry.driver",
		},
		{
			name:      "sqlite driver without path",
			mutate:    func(c *config.Config) { c.Registry.Driver = "sqlite" },
			wantField: "registry.path",
		},
		{
			name: "empty extra keyword term",
			mutate: func(c *config.Config) {
				c.Classifier.ExtraRequestKeywords = []config.WeightedTerm{{Term: "", Weight: 0.5}}
			},
			wantField: "classifier.extra_request_keywords",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg config.Config
			cfg.SetDefaults()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cerr *domain.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.wantField, cerr.Field)
		})
	}
}
