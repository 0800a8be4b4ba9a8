package domain

import "time"

// Provider is a registry entry for a previously-seen service provider.
// Read-only to the pipeline; it is queried through a ProviderLookup.
type Provider struct {
	ID   string `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
	// Phone is the normalized international (E.164) form, empty if unknown.
	Phone string `db:"phone" json:"phone,omitempty"`
	// Tags categorize the provider's services, e.g. ["plumber", "geyser"].
	Tags      []string  `db:"tags"       json:"tags,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
