// Package telemetry provides OpenTelemetry instrumentation for the refradar
// pipeline. It exports Prometheus metrics and a tracer handle.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "refradar"

// Metrics holds all pipeline Prometheus metrics.
type Metrics struct {
	// Pipeline metrics
	MessagesProcessed  *prometheus.CounterVec
	MessagesFailed     *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram

	// Classifier metrics
	ClassificationTotal    *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	EngineFailures         *prometheus.CounterVec

	// Extractor metrics
	MentionsExtracted   *prometheus.CounterVec
	MentionsBlacklisted prometheus.Counter

	// Matcher metrics
	MatchesTotal      *prometheus.CounterVec
	MentionsUnmatched prometheus.Counter
	LookupFailures    prometheus.Counter

	// Attribution metrics
	AttributionTotal *prometheus.CounterVec
	ResponseDelay    prometheus.Histogram
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

var noopTracer = noop.NewTracerProvider().Tracer(serviceName)

// StartSpan starts a new trace span. A nil provider yields a no-op span, so
// callers never have to guard the telemetry handle.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if p == nil || p.Tracer == nil {
		return noopTracer.Start(ctx, name, trace.WithAttributes(attrs...))
	}
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initPipelineMetrics(m)
	initClassifierMetrics(m)
	initExtractorMetrics(m)
	initMatcherMetrics(m)
	initAttributionMetrics(m)
	return m
}

func initPipelineMetrics(m *Metrics) {
	m.MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refradar_messages_processed_total",
		Help: "Total messages processed end to end, labelled by classified type",
	}, []string{"message_type"})

	m.MessagesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refradar_messages_failed_total",
		Help: "Total messages rejected by validation",
	}, []string{"reason"})

	m.ProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "refradar_processing_duration_seconds",
		Help:    "Time to run a message through the full pipeline",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	})
}

func initClassifierMetrics(m *Metrics) {
	m.ClassificationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refradar_classifications_total",
		Help: "Total classifications by verdict (request, recommendation, unknown)",
	}, []string{"message_type"})

	m.ClassificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "refradar_classification_duration_seconds",
		Help:    "Time spent in message classification",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	m.EngineFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refradar_engine_failures_total",
		Help: "Rule engine failures treated as zero contribution",
	}, []string{"engine"})
}

func initExtractorMetrics(m *Metrics) {
	m.MentionsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refradar_mentions_extracted_total",
		Help: "Total mentions emitted, labelled by extraction strategy",
	}, []string{"strategy"})

	m.MentionsBlacklisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refradar_mentions_blacklisted_total",
		Help: "Candidate mentions suppressed by the blacklist",
	})
}

func initMatcherMetrics(m *Metrics) {
	m.MatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refradar_matches_total",
		Help: "Match results by strategy, including no_match",
	}, []string{"strategy"})

	m.MentionsUnmatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refradar_mentions_unmatched_total",
		Help: "Mentions that resolved to no provider",
	})

	m.LookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refradar_lookup_failures_total",
		Help: "Provider lookup calls that failed or timed out",
	})
}

func initAttributionMetrics(m *Metrics) {
	m.AttributionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refradar_attributions_total",
		Help: "Attribution results by mode",
	}, []string{"mode"})

	m.ResponseDelay = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "refradar_response_delay_seconds",
		Help:    "Delay between an attributed request and its endorsement",
		Buckets: []float64{1, 5, 10, 30, 60, 300, 900, 1800, 3600},
	})
}

// RecordMessage records metrics for one fully-processed message.
func (p *Provider) RecordMessage(ctx context.Context, messageType string, duration time.Duration) {
	p.Metrics.MessagesProcessed.WithLabelValues(messageType).Inc()
	p.Metrics.ProcessingDuration.Observe(duration.Seconds())
}

// RecordValidationFailure records a message rejected before processing.
func (p *Provider) RecordValidationFailure(ctx context.Context, reason string) {
	p.Metrics.MessagesFailed.WithLabelValues(reason).Inc()
}

// RecordClassification records classifier verdict and latency.
func (p *Provider) RecordClassification(ctx context.Context, messageType string, duration time.Duration) {
	p.Metrics.ClassificationTotal.WithLabelValues(messageType).Inc()
	p.Metrics.ClassificationDuration.Observe(duration.Seconds())
}

// RecordEngineFailure records a rule engine that failed and contributed zero.
func (p *Provider) RecordEngineFailure(ctx context.Context, engine string) {
	p.Metrics.EngineFailures.WithLabelValues(engine).Inc()
}

// RecordMention records one emitted mention.
func (p *Provider) RecordMention(ctx context.Context, strategy string) {
	p.Metrics.MentionsExtracted.WithLabelValues(strategy).Inc()
}

// RecordBlacklisted records a candidate suppressed by the blacklist.
func (p *Provider) RecordBlacklisted(ctx context.Context) {
	p.Metrics.MentionsBlacklisted.Inc()
}

// RecordMatch records one match result.
func (p *Provider) RecordMatch(ctx context.Context, strategy string, matched bool) {
	p.Metrics.MatchesTotal.WithLabelValues(strategy).Inc()
	if !matched {
		p.Metrics.MentionsUnmatched.Inc()
	}
}

// RecordLookupFailure records a failed provider lookup call.
func (p *Provider) RecordLookupFailure(ctx context.Context) {
	p.Metrics.LookupFailures.Inc()
}

// RecordAttribution records one attribution result.
func (p *Provider) RecordAttribution(ctx context.Context, mode string, delay time.Duration) {
	p.Metrics.AttributionTotal.WithLabelValues(mode).Inc()
	if delay > 0 {
		p.Metrics.ResponseDelay.Observe(delay.Seconds())
	}
}
