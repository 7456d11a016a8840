// Package store persists assessments behind a backend-neutral repository.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/vannoorsab/FINAI/internal/config"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/infra/bigquery"
	"github.com/vannoorsab/FINAI/internal/infra/sqlite"
)

// ErrStoreDisabled is returned by Open when no backend is configured.
var ErrStoreDisabled = errors.New("assessment store disabled")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// AssessmentRepository saves and reads assessments. Get and FindByChecksum
// return domain.ErrNotFound when nothing matches. List returns newest first.
type AssessmentRepository interface {
	Save(ctx context.Context, a *domain.Assessment) error
	Get(ctx context.Context, id string) (*domain.Assessment, error)
	FindByChecksum(ctx context.Context, checksum string, strategy domain.Strategy) (*domain.Assessment, error)
	List(ctx context.Context, limit int) ([]*domain.Assessment, error)
	Close() error
}

// Open builds the repository selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (AssessmentRepository, error) {
	switch cfg.StoreBackend {
	case config.StoreNone, "":
		return nil, ErrStoreDisabled
	case config.StoreSQLite:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		return repo, nil
	case config.StoreBigQuery:
		repo, err := bigquery.NewRepository(ctx, cfg.GCPProjectID, cfg.BigQueryDataset)
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("store.Open: unknown backend %q", cfg.StoreBackend)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
