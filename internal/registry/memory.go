// Package registry provides reference implementations of the provider
// lookup capability: an in-memory store for tests and small deployments and
// a sqlite-backed store for the daemon. The pipeline itself depends only on
// the matcher.ProviderLookup interface.
package registry

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/refradar/refradar/internal/domain"
)

// Memory is a thread-safe in-memory provider registry.
type Memory struct {
	mu        sync.RWMutex
	providers map[string]domain.Provider
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{providers: make(map[string]domain.Provider)}
}

// Add stores a provider, assigning an ID when absent, and returns the
// stored record.
func (m *Memory) Add(ctx context.Context, p domain.Provider) (domain.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	m.providers[p.ID] = p
	return p, nil
}

// ByName implements matcher.ProviderLookup. Candidates contain the query or
// are contained in it, case-normalized.
func (m *Memory) ByName(ctx context.Context, name string) ([]domain.Provider, error) {
	query := normalize(name)
	if query == "" {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var candidates []domain.Provider
	for _, p := range m.providers {
		stored := normalize(p.Name)
		if strings.Contains(stored, query) || strings.Contains(query, stored) {
			candidates = append(candidates, p)
		}
	}
	return candidates, nil
}

// ByPhone implements matcher.ProviderLookup.
func (m *Memory) ByPhone(ctx context.Context, phone string) ([]domain.Provider, error) {
	if phone == "" {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var candidates []domain.Provider
	for _, p := range m.providers {
		if p.Phone == phone {
			candidates = append(candidates, p)
		}
	}
	return candidates, nil
}

// ByTags implements matcher.ProviderLookup. A provider qualifies when it
// shares at least one tag with the query.
func (m *Memory) ByTags(ctx context.Context, tags []string) ([]domain.Provider, error) {
	want := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if normalized := normalize(tag); normalized != "" {
			want[normalized] = struct{}{}
		}
	}
	if len(want) == 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var candidates []domain.Provider
	for _, p := range m.providers {
		for _, tag := range p.Tags {
			if _, ok := want[normalize(tag)]; ok {
				candidates = append(candidates, p)
				break
			}
		}
	}
	return candidates, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
