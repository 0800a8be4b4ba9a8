package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/refradar/refradar/internal/domain"
)

// schema creates the providers table. Tags are stored comma-delimited with
// sentinel commas at both ends so a single LIKE finds whole-tag matches.
const schema = `
CREATE TABLE IF NOT EXISTS providers (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	name_normalized TEXT NOT NULL,
	phone           TEXT NOT NULL DEFAULT '',
	tags            TEXT NOT NULL DEFAULT ',,',
	created_at      TIMESTAMP NOT NULL,
	updated_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_providers_name ON providers(name_normalized);
CREATE INDEX IF NOT EXISTS idx_providers_phone ON providers(phone);
`

// SQLite is a sqlite-backed provider registry.
type SQLite struct {
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the registry database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open registry database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate registry schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// providerRow is the database shape of a provider.
type providerRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	NameNorm  string    `db:"name_normalized"`
	Phone     string    `db:"phone"`
	Tags      string    `db:"tags"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r providerRow) toDomain() domain.Provider {
	return domain.Provider{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Tags:      splitTags(r.Tags),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Add inserts or replaces a provider, assigning an ID when absent.
func (s *SQLite) Add(ctx context.Context, p domain.Provider) (domain.Provider, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `
		INSERT OR REPLACE INTO providers (id, name, name_normalized, phone, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, normalize(p.Name), p.Phone, joinTags(p.Tags), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return domain.Provider{}, fmt.Errorf("%w: add provider: %w", domain.ErrLookupUnavailable, err)
	}
	return p, nil
}

// ByName implements matcher.ProviderLookup. Containment in either direction
// qualifies a candidate; scoring is the matcher's job.
func (s *SQLite) ByName(ctx context.Context, name string) ([]domain.Provider, error) {
	query := normalize(name)
	if query == "" {
		return nil, nil
	}

	var rows []providerRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, name_normalized, phone, tags, created_at, updated_at
		FROM providers
		WHERE instr(name_normalized, ?) > 0 OR instr(?, name_normalized) > 0
	`, query, query)
	if err != nil {
		return nil, fmt.Errorf("%w: by name: %w", domain.ErrLookupUnavailable, err)
	}
	return rowsToDomain(rows), nil
}

// ByPhone implements matcher.ProviderLookup.
func (s *SQLite) ByPhone(ctx context.Context, phone string) ([]domain.Provider, error) {
	if phone == "" {
		return nil, nil
	}

	var rows []providerRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, name_normalized, phone, tags, created_at, updated_at
		FROM providers
		WHERE phone = ?
	`, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: by phone: %w", domain.ErrLookupUnavailable, err)
	}
	return rowsToDomain(rows), nil
}

// ByTags implements matcher.ProviderLookup.
func (s *SQLite) ByTags(ctx context.Context, tags []string) ([]domain.Provider, error) {
	var clauses []string
	var args []any
	for _, tag := range tags {
		normalized := normalize(tag)
		if normalized == "" {
			continue
		}
		clauses = append(clauses, "tags LIKE ?")
		args = append(args, "%,"+normalized+",%")
	}
	if len(clauses) == 0 {
		return nil, nil
	}

	var rows []providerRow
	query := fmt.Sprintf(`
		SELECT id, name, name_normalized, phone, tags, created_at, updated_at
		FROM providers
		WHERE %s
	`, strings.Join(clauses, " OR "))
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: by tags: %w", domain.ErrLookupUnavailable, err)
	}
	return rowsToDomain(rows), nil
}

func rowsToDomain(rows []providerRow) []domain.Provider {
	providers := make([]domain.Provider, 0, len(rows))
	for _, row := range rows {
		providers = append(providers, row.toDomain())
	}
	return providers
}

func joinTags(tags []string) string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if n := normalize(tag); n != "" {
			normalized = append(normalized, n)
		}
	}
	return "," + strings.Join(normalized, ",") + ","
}

func splitTags(stored string) []string {
	trimmed := strings.Trim(stored, ",")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, ",")
}
