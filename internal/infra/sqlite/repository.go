// Package sqlite stores assessments in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vannoorsab/FINAI/internal/domain"

	_ "modernc.org/sqlite"
)

const defaultListLimit = 50

// Repository is a SQLite-backed assessment repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const upsertAssessment = `
INSERT INTO assessments (id, strategy, checksum, source_uri, customer_id, score_total, tier, created_at, payload)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    strategy = excluded.strategy,
    checksum = excluded.checksum,
    source_uri = excluded.source_uri,
    customer_id = excluded.customer_id,
    score_total = excluded.score_total,
    tier = excluded.tier,
    created_at = excluded.created_at,
    payload = excluded.payload`

// Save inserts the assessment, replacing any row with the same ID.
func (r *Repository) Save(ctx context.Context, a *domain.Assessment) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("Save: encoding assessment: %w", err)
	}

	_, err = r.db.ExecContext(ctx, upsertAssessment,
		a.ID,
		string(a.Strategy),
		a.Checksum,
		a.SourceURI,
		a.Profile.CustomerID,
		a.Score.Total,
		string(a.Recommendation.Tier),
		a.CreatedAt.UTC().UnixNano(),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("Save: inserting assessment %s: %w", a.ID, err)
	}
	return nil
}

// Get loads one assessment by ID.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM assessments WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Get: %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Get: querying %s: %w", id, err)
	}
	return decodePayload(payload)
}

// List returns up to limit assessments, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]*domain.Assessment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM assessments ORDER BY created_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("List: querying: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assessment
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("List: scanning: %w", err)
		}
		a, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: iterating: %w", err)
	}
	return out, nil
}

// FindByChecksum returns the newest assessment of the same document under
// strategy, or domain.ErrNotFound.
func (r *Repository) FindByChecksum(ctx context.Context, checksum string, strategy domain.Strategy) (*domain.Assessment, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM assessments WHERE checksum = ? AND strategy = ? ORDER BY created_at DESC LIMIT 1`,
		checksum, string(strategy)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("FindByChecksum: %s: %w", checksum, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("FindByChecksum: querying: %w", err)
	}
	return decodePayload(payload)
}

func decodePayload(payload string) (*domain.Assessment, error) {
	var a domain.Assessment
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return nil, fmt.Errorf("decoding assessment: %w", err)
	}
	a.CreatedAt = a.CreatedAt.In(time.UTC)
	return &a, nil
}
