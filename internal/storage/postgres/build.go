package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jtholloran/runeforge/internal/engine"
)

// ErrBuildNotFound is returned when a build lookup yields no results.
var ErrBuildNotFound = errors.New("build not found")

// BuildSummary is one row of a build listing: identity without the full
// record payload.
type BuildSummary struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuildRepository persists serialized build records. Only the plain
// engine.BuildRecord crosses this boundary; engine-internal state never
// reaches the database.
type BuildRepository struct {
	db *pgxpool.Pool
}

// NewBuildRepository creates a BuildRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBuildRepository(db *pgxpool.Pool) *BuildRepository {
	return &BuildRepository{db: db}
}

// Save upserts a build record keyed by its id.
//
// Precondition: rec.ID must be a valid UUID string; rec.Name must be
// non-empty.
// Postcondition: Get(rec.ID) returns an equal record.
func (r *BuildRepository) Save(ctx context.Context, rec engine.BuildRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling build record: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO builds (id, name, record)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			record = EXCLUDED.record,
			updated_at = now()`,
		rec.ID, rec.Name, payload,
	)
	if err != nil {
		return fmt.Errorf("upserting build %q: %w", rec.ID, err)
	}
	return nil
}

// Get retrieves one build record by id.
//
// Postcondition: Returns the record or ErrBuildNotFound.
func (r *BuildRepository) Get(ctx context.Context, id string) (engine.BuildRecord, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `SELECT record FROM builds WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return engine.BuildRecord{}, ErrBuildNotFound
	}
	if err != nil {
		return engine.BuildRecord{}, fmt.Errorf("querying build %q: %w", id, err)
	}
	var rec engine.BuildRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return engine.BuildRecord{}, fmt.Errorf("unmarshalling build %q: %w", id, err)
	}
	return rec, nil
}

// List returns summaries of all stored builds ordered by creation time.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *BuildRepository) List(ctx context.Context) ([]BuildSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM builds ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	defer rows.Close()

	summaries := make([]BuildSummary, 0)
	for rows.Next() {
		var s BuildSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning build summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Delete removes a build by id.
//
// Postcondition: Returns ErrBuildNotFound when no row matched.
func (r *BuildRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM builds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting build %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBuildNotFound
	}
	return nil
}
