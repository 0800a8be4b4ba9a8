// Package testhelpers provides shared test utilities for the refradar
// pipeline.
package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/registry"
)

// FailingLookup implements matcher.ProviderLookup and fails every call,
// simulating a provider store outage.
type FailingLookup struct{}

// ByName always fails.
func (FailingLookup) ByName(_ context.Context, _ string) ([]domain.Provider, error) {
	return nil, fmt.Errorf("%w: store offline", domain.ErrLookupUnavailable)
}

// ByPhone always fails.
func (FailingLookup) ByPhone(_ context.Context, _ string) ([]domain.Provider, error) {
	return nil, fmt.Errorf("%w: store offline", domain.ErrLookupUnavailable)
}

// ByTags always fails.
func (FailingLookup) ByTags(_ context.Context, _ []string) ([]domain.Provider, error) {
	return nil, fmt.Errorf("%w: store offline", domain.ErrLookupUnavailable)
}

// CountingLookup wraps a registry and counts lookup calls.
type CountingLookup struct {
	mu    sync.Mutex
	inner *registry.Memory

	NameCalls  int
	PhoneCalls int
	TagCalls   int
}

// NewCountingLookup wraps the given in-memory registry.
func NewCountingLookup(inner *registry.Memory) *CountingLookup {
	return &CountingLookup{inner: inner}
}

// ByName delegates and counts.
func (c *CountingLookup) ByName(ctx context.Context, name string) ([]domain.Provider, error) {
	c.mu.Lock()
	c.NameCalls++
	c.mu.Unlock()
	return c.inner.ByName(ctx, name)
}

// ByPhone delegates and counts.
func (c *CountingLookup) ByPhone(ctx context.Context, phone string) ([]domain.Provider, error) {
	c.mu.Lock()
	c.PhoneCalls++
	c.mu.Unlock()
	return c.inner.ByPhone(ctx, phone)
}

// ByTags delegates and counts.
func (c *CountingLookup) ByTags(ctx context.Context, tags []string) ([]domain.Provider, error) {
	c.mu.Lock()
	c.TagCalls++
	c.mu.Unlock()
	return c.inner.ByTags(ctx, tags)
}

// SeededRegistry returns an in-memory registry preloaded with the given
// providers, assigning deterministic IDs when absent.
func SeededRegistry(providers ...domain.Provider) *registry.Memory {
	reg := registry.NewMemory()
	for i, p := range providers {
		if p.ID == "" {
			p.ID = fmt.Sprintf("prov-%03d", i+1)
		}
		if _, err := reg.Add(context.Background(), p); err != nil {
			panic(err)
		}
	}
	return reg
}

// MessageAt builds a message with the given sender and text, timestamped at
// base plus offset. Conversation defaults to "conv-1".
func MessageAt(id, sender, text string, base time.Time, offset time.Duration) domain.Message {
	return domain.Message{
		ID:             id,
		ConversationID: "conv-1",
		SenderID:       sender,
		Text:           text,
		Timestamp:      base.Add(offset),
	}
}
