package matcher

import (
	"context"

	"github.com/refradar/refradar/internal/domain"
)

// ProviderLookup is the injected capability for finding candidate providers.
// It is recall-oriented: implementations return every plausible candidate and
// the matcher scores them. Safe to call multiple times per message; caching,
// if any, is the implementation's concern. Implementations signal outage by
// wrapping domain.ErrLookupUnavailable.
type ProviderLookup interface {
	// ByName returns candidates for a case-normalized name or name fragment.
	ByName(ctx context.Context, name string) ([]domain.Provider, error)
	// ByPhone returns candidates for a canonical international phone string.
	ByPhone(ctx context.Context, phone string) ([]domain.Provider, error)
	// ByTags returns candidates sharing at least one of the given tags.
	ByTags(ctx context.Context, tags []string) ([]domain.Provider, error)
}
