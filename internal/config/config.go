// Package config provides configuration for the refradar pipeline.
// Configuration is YAML-file sourced with environment variable overrides;
// every knob has a default so an empty file still yields a runnable config.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/refradar/refradar/internal/domain"
)

// Default configuration values.
const (
	defaultLogLevel              = "info"
	defaultMetricsAddr           = ":9290"
	defaultTieEpsilon            = 0.05
	defaultKeywordEngineWeight   = 0.6
	defaultPhraseEngineWeight    = 0.4
	defaultMinMatchConfidence    = 0.4
	defaultFuzzyPhoneDigits      = 9
	defaultCountryCode           = "27"
	defaultLocalPrefix           = "0"
	defaultMinPhoneDigits        = 9
	defaultMaxPhoneDigits        = 13
	defaultImmediateBand         = 30 * time.Second
	defaultNearBand              = 15 * time.Minute
	defaultDistantBand           = time.Hour
	defaultSelfResponsePenalty   = 0.15
	defaultQuotedReplyConfidence = 0.95
	defaultRegistryDriver        = "memory"
)

// Config holds all configuration for the pipeline and its supporting pieces.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Classifier  ClassifierConfig  `yaml:"classifier"`
	Extractor   ExtractorConfig   `yaml:"extractor"`
	Matcher     MatcherConfig     `yaml:"matcher"`
	Attribution AttributionConfig `yaml:"attribution"`
	Registry    RegistryConfig    `yaml:"registry"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `env:"REFRADAR_LOG_LEVEL" yaml:"level"`
	Development bool   `env:"REFRADAR_LOG_DEV"   yaml:"development"`
}

// TelemetryConfig holds metrics exposure configuration.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	MetricsAddr string `env:"REFRADAR_METRICS_ADDR" yaml:"metrics_addr"`
}

// WeightedTerm is one weighted keyword in a classifier table.
type WeightedTerm struct {
	Term   string  `yaml:"term"`
	Weight float64 `yaml:"weight"`
}

// EngineConfig toggles and weights one classification rule engine. Enabled
// is a pointer so an explicit "enabled: false" is distinguishable from an
// absent toggle and survives defaulting.
type EngineConfig struct {
	Enabled *bool   `yaml:"enabled"`
	Weight  float64 `yaml:"weight"`
}

// IsEnabled treats an unset toggle as enabled.
func (e EngineConfig) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// ClassifierConfig holds message classification configuration.
type ClassifierConfig struct {
	KeywordEngine EngineConfig `yaml:"keyword_engine"`
	PhraseEngine  EngineConfig `yaml:"phrase_engine"`

	// TieEpsilon is the score margin within which two message types are
	// considered tied; request wins ties over recommendation over unknown.
	TieEpsilon float64 `yaml:"tie_epsilon"`

	// ExtraRequestKeywords and ExtraRecommendationKeywords extend the
	// built-in keyword tables.
	ExtraRequestKeywords        []WeightedTerm `yaml:"extra_request_keywords"`
	ExtraRecommendationKeywords []WeightedTerm `yaml:"extra_recommendation_keywords"`
}

// StrategyConfig toggles one extraction strategy. Enabled is a pointer for
// the same reason as EngineConfig.Enabled.
type StrategyConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// IsEnabled treats an unset toggle as enabled.
func (s StrategyConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Bool returns a pointer to v, for setting toggles in code.
func Bool(v bool) *bool {
	return &v
}

// PhoneConfig holds the locale rules used to recognize and normalize phone
// numbers. Defaults describe South African numbering.
type PhoneConfig struct {
	// CountryCode is the international dialing code without "+", e.g. "27".
	CountryCode string `yaml:"country_code"`
	// LocalPrefix is the trunk prefix rewritten to the country code, e.g. "0".
	LocalPrefix string `yaml:"local_prefix"`
	// MinDigits and MaxDigits bound a digit run considered a phone number,
	// counted after stripping separators.
	MinDigits int `yaml:"min_digits"`
	MaxDigits int `yaml:"max_digits"`
}

// ExtractorConfig holds mention extraction configuration.
type ExtractorConfig struct {
	NamePattern     StrategyConfig `yaml:"name_pattern"`
	PhoneNumber     StrategyConfig `yaml:"phone_number"`
	ServiceKeyword  StrategyConfig `yaml:"service_keyword"`
	LocationPattern StrategyConfig `yaml:"location_pattern"`

	Phone PhoneConfig `yaml:"phone"`

	// ExtraBlacklist extends the built-in blacklist.
	ExtraBlacklist []string `yaml:"extra_blacklist"`
	// ExtraServiceKeywords extends the built-in category tables.
	ExtraServiceKeywords map[string][]WeightedTerm `yaml:"extra_service_keywords"`
	// ExtraPlaces extends the built-in gazetteer.
	ExtraPlaces []string `yaml:"extra_places"`
}

// MatcherConfig holds provider matching configuration.
type MatcherConfig struct {
	// MinConfidence downgrades any match scoring below it to no_match.
	MinConfidence float64 `yaml:"min_confidence"`
	// FuzzyPhoneDigits is how many trailing digits must agree for a fuzzy
	// phone match.
	FuzzyPhoneDigits int `yaml:"fuzzy_phone_digits"`
}

// AttributionConfig holds request-response attribution configuration.
type AttributionConfig struct {
	// Band upper bounds, measured from the request to the endorsement.
	ImmediateBand time.Duration `yaml:"immediate_band"`
	NearBand      time.Duration `yaml:"near_band"`
	DistantBand   time.Duration `yaml:"distant_band"`

	// SelfResponsePenalty is subtracted when the best temporal candidate
	// shares a sender with the endorsement.
	SelfResponsePenalty float64 `yaml:"self_response_penalty"`
	// QuotedReplyConfidence is assigned to explicit quoted-reply links.
	QuotedReplyConfidence float64 `yaml:"quoted_reply_confidence"`
}

// UnmarshalYAML accepts the bands as duration strings ("30s", "15m"), which
// the yaml package does not decode into time.Duration on its own.
func (a *AttributionConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		ImmediateBand         string  `yaml:"immediate_band"`
		NearBand              string  `yaml:"near_band"`
		DistantBand           string  `yaml:"distant_band"`
		SelfResponsePenalty   float64 `yaml:"self_response_penalty"`
		QuotedReplyConfidence float64 `yaml:"quoted_reply_confidence"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	set := func(field *time.Duration, name, value string) error {
		if value == "" {
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("attribution.%s: %w", name, err)
		}
		*field = d
		return nil
	}
	if err := set(&a.ImmediateBand, "immediate_band", raw.ImmediateBand); err != nil {
		return err
	}
	if err := set(&a.NearBand, "near_band", raw.NearBand); err != nil {
		return err
	}
	if err := set(&a.DistantBand, "distant_band", raw.DistantBand); err != nil {
		return err
	}
	a.SelfResponsePenalty = raw.SelfResponsePenalty
	a.QuotedReplyConfidence = raw.QuotedReplyConfidence
	return nil
}

// RegistryConfig selects the provider registry backing the daemon.
type RegistryConfig struct {
	// Driver is "memory" or "sqlite".
	Driver string `env:"REFRADAR_REGISTRY_DRIVER" yaml:"driver"`
	// Path is the sqlite database file, required for the sqlite driver.
	Path string `env:"REFRADAR_REGISTRY_PATH" yaml:"path"`
}

// SetDefaults applies default values for anything the file left unset.
func (c *Config) SetDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Telemetry.MetricsAddr == "" {
		c.Telemetry.MetricsAddr = defaultMetricsAddr
	}

	if c.Classifier.KeywordEngine.Weight == 0 {
		c.Classifier.KeywordEngine.Weight = defaultKeywordEngineWeight
	}
	if c.Classifier.PhraseEngine.Weight == 0 {
		c.Classifier.PhraseEngine.Weight = defaultPhraseEngineWeight
	}
	if c.Classifier.TieEpsilon == 0 {
		c.Classifier.TieEpsilon = defaultTieEpsilon
	}

	if c.Extractor.Phone.CountryCode == "" {
		c.Extractor.Phone.CountryCode = defaultCountryCode
	}
	if c.Extractor.Phone.LocalPrefix == "" {
		c.Extractor.Phone.LocalPrefix = defaultLocalPrefix
	}
	if c.Extractor.Phone.MinDigits == 0 {
		c.Extractor.Phone.MinDigits = defaultMinPhoneDigits
	}
	if c.Extractor.Phone.MaxDigits == 0 {
		c.Extractor.Phone.MaxDigits = defaultMaxPhoneDigits
	}

	if c.Matcher.MinConfidence == 0 {
		c.Matcher.MinConfidence = defaultMinMatchConfidence
	}
	if c.Matcher.FuzzyPhoneDigits == 0 {
		c.Matcher.FuzzyPhoneDigits = defaultFuzzyPhoneDigits
	}

	if c.Attribution.ImmediateBand == 0 {
		c.Attribution.ImmediateBand = defaultImmediateBand
	}
	if c.Attribution.NearBand == 0 {
		c.Attribution.NearBand = defaultNearBand
	}
	if c.Attribution.DistantBand == 0 {
		c.Attribution.DistantBand = defaultDistantBand
	}
	if c.Attribution.SelfResponsePenalty == 0 {
		c.Attribution.SelfResponsePenalty = defaultSelfResponsePenalty
	}
	if c.Attribution.QuotedReplyConfidence == 0 {
		c.Attribution.QuotedReplyConfidence = defaultQuotedReplyConfidence
	}

	if c.Registry.Driver == "" {
		c.Registry.Driver = defaultRegistryDriver
	}
}

// Validate checks every numeric threshold and table. Invalid configuration
// must prevent the pipeline from starting.
func (c *Config) Validate() error {
	if err := validateUnit("classifier.tie_epsilon", c.Classifier.TieEpsilon); err != nil {
		return err
	}
	if err := validateUnit("classifier.keyword_engine.weight", c.Classifier.KeywordEngine.Weight); err != nil {
		return err
	}
	if err := validateUnit("classifier.phrase_engine.weight", c.Classifier.PhraseEngine.Weight); err != nil {
		return err
	}
	for _, t := range c.Classifier.ExtraRequestKeywords {
		if err := validateTerm("classifier.extra_request_keywords", t); err != nil {
			return err
		}
	}
	for _, t := range c.Classifier.ExtraRecommendationKeywords {
		if err := validateTerm("classifier.extra_recommendation_keywords", t); err != nil {
			return err
		}
	}

	if c.Extractor.Phone.MinDigits <= 0 {
		return &domain.ConfigError{Field: "extractor.phone.min_digits", Message: "must be positive"}
	}
	if c.Extractor.Phone.MaxDigits < c.Extractor.Phone.MinDigits {
		return &domain.ConfigError{Field: "extractor.phone.max_digits", Message: "must be >= min_digits"}
	}
	if c.Extractor.Phone.CountryCode == "" {
		return &domain.ConfigError{Field: "extractor.phone.country_code", Message: "is required"}
	}
	for category, terms := range c.Extractor.ExtraServiceKeywords {
		for _, t := range terms {
			if err := validateTerm(fmt.Sprintf("extractor.extra_service_keywords.%s", category), t); err != nil {
				return err
			}
		}
	}

	if err := validateUnit("matcher.min_confidence", c.Matcher.MinConfidence); err != nil {
		return err
	}
	if c.Matcher.FuzzyPhoneDigits <= 0 {
		return &domain.ConfigError{Field: "matcher.fuzzy_phone_digits", Message: "must be positive"}
	}

	if c.Attribution.ImmediateBand <= 0 {
		return &domain.ConfigError{Field: "attribution.immediate_band", Message: "must be positive"}
	}
	if c.Attribution.NearBand <= c.Attribution.ImmediateBand {
		return &domain.ConfigError{Field: "attribution.near_band", Message: "must exceed immediate_band"}
	}
	if c.Attribution.DistantBand <= c.Attribution.NearBand {
		return &domain.ConfigError{Field: "attribution.distant_band", Message: "must exceed near_band"}
	}
	if err := validateUnit("attribution.self_response_penalty", c.Attribution.SelfResponsePenalty); err != nil {
		return err
	}
	if c.Attribution.QuotedReplyConfidence < 0.9 || c.Attribution.QuotedReplyConfidence > 1.0 {
		return &domain.ConfigError{Field: "attribution.quoted_reply_confidence", Message: "must be in [0.9, 1.0]"}
	}

	switch c.Registry.Driver {
	case "memory":
	case "sqlite":
		if c.Registry.Path == "" {
			return &domain.ConfigError{Field: "registry.path", Message: "is required for the sqlite driver"}
		}
	default:
		return &domain.ConfigError{Field: "registry.driver", Message: "must be memory or sqlite"}
	}

	return nil
}

func validateUnit(field string, v float64) error {
	if v < 0.0 || v > 1.0 {
		return &domain.ConfigError{Field: field, Message: "must be in [0.0, 1.0]"}
	}
	return nil
}

func validateTerm(field string, t WeightedTerm) error {
	if t.Term == "" {
		return &domain.ConfigError{Field: field, Message: "term must not be empty"}
	}
	return validateUnit(field+".weight", t.Weight)
}
