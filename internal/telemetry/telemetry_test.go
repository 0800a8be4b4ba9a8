package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/refradar/refradar/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global
// registry.
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
	if provider.Handler() == nil {
		t.Error("expected non-nil metrics handler")
	}
}

func TestStartSpan(t *testing.T) {
	provider := getTestProvider(t)

	ctx, span := provider.StartSpan(context.Background(), "test-span",
		attribute.String("message_type", "recommendation"))
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if span == nil {
		t.Fatal("expected non-nil span")
	}
	span.End()
}

func TestStartSpan_NilProvider(t *testing.T) {
	var provider *telemetry.Provider

	// A nil provider must still hand back a usable no-op span.
	ctx, span := provider.StartSpan(context.Background(), "test-span")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if span == nil {
		t.Fatal("expected non-nil span")
	}
	span.End()
}

func TestRecordMetrics(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordMessage(ctx, "recommendation", 10*time.Millisecond)
	provider.RecordValidationFailure(ctx, "text")
	provider.RecordClassification(ctx, "request", 5*time.Millisecond)
	provider.RecordEngineFailure(ctx, "keyword")
	provider.RecordMention(ctx, "phone_number")
	provider.RecordBlacklisted(ctx)
	provider.RecordMatch(ctx, "exact_name", true)
	provider.RecordLookupFailure(ctx)
	provider.RecordAttribution(ctx, "temporal_near", 2*time.Minute)
}
