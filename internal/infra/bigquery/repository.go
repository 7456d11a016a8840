// Package bigquery stores assessments in BigQuery tables.
package bigquery

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/logger"
	"google.golang.org/api/iterator"
)

const (
	assessmentsTable  = "assessments"
	transactionsTable = "assessment_transactions"
	defaultListLimit  = 50
)

// Repository is the BigQuery implementation of the assessment repository.
// It holds one shared client for all operations.
type Repository struct {
	client    *bigquery.Client
	projectID string
	datasetID string
}

// NewRepository creates a Repository with its own client.
func NewRepository(ctx context.Context, projectID, datasetID string) (*Repository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewRepository: creating client: %w", err)
	}
	return NewRepositoryWithClient(client, datasetID), nil
}

// NewRepositoryWithClient wraps an existing client.
func NewRepositoryWithClient(client *bigquery.Client, datasetID string) *Repository {
	return &Repository{client: client, projectID: client.Project(), datasetID: datasetID}
}

// Close closes the BigQuery client connection.
func (r *Repository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Save inserts the assessment and its transactions. The assessment ID is
// used as the streaming insert ID so retried saves are deduplicated.
func (r *Repository) Save(ctx context.Context, a *domain.Assessment) error {
	row, err := NewAssessmentRow(a)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	inserter := r.client.Dataset(r.datasetID).Table(assessmentsTable).Inserter()
	if err := inserter.Put(ctx, &bigquery.StructSaver{Struct: row, InsertID: a.ID}); err != nil {
		return fmt.Errorf("Save: inserting assessment row: %w", err)
	}

	txRows := NewTransactionRows(a)
	if len(txRows) == 0 {
		return nil
	}
	savers := make([]*bigquery.StructSaver, len(txRows))
	for i, tr := range txRows {
		savers[i] = &bigquery.StructSaver{Struct: tr, InsertID: fmt.Sprintf("%s-%d", a.ID, tr.StatementLineNo)}
	}
	if err := r.client.Dataset(r.datasetID).Table(transactionsTable).Inserter().Put(ctx, savers); err != nil {
		return fmt.Errorf("Save: inserting transaction rows: %w", err)
	}

	log := logger.FromContext(ctx)

	log.Debug().
		Str("assessment_id", a.ID).
		Int("transactions", len(txRows)).
		Msg("Assessment saved to BigQuery")
	return nil
}

// Get retrieves an assessment by ID.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	q := r.client.Query(fmt.Sprintf(`
		SELECT assessment_id, strategy, checksum_sha256, created_ts, payload
		FROM %s
		WHERE assessment_id = @assessment_id
		ORDER BY created_ts DESC
		LIMIT 1
	`, r.table(assessmentsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "assessment_id", Value: id},
	}

	a, err := r.readOne(ctx, q)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("Get: %s: %w", id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return a, nil
}

// FindByChecksum retrieves the newest assessment of a document under strategy.
func (r *Repository) FindByChecksum(ctx context.Context, checksum string, strategy domain.Strategy) (*domain.Assessment, error) {
	q := r.client.Query(fmt.Sprintf(`
		SELECT assessment_id, strategy, checksum_sha256, created_ts, payload
		FROM %s
		WHERE checksum_sha256 = @checksum AND strategy = @strategy
		ORDER BY created_ts DESC
		LIMIT 1
	`, r.table(assessmentsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "checksum", Value: checksum},
		{Name: "strategy", Value: string(strategy)},
	}

	a, err := r.readOne(ctx, q)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("FindByChecksum: %s: %w", checksum, err)
	}
	if err != nil {
		return nil, fmt.Errorf("FindByChecksum: %w", err)
	}
	return a, nil
}

// List retrieves up to limit assessments, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]*domain.Assessment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	q := r.client.Query(fmt.Sprintf(`
		SELECT assessment_id, strategy, checksum_sha256, created_ts, payload
		FROM %s
		ORDER BY created_ts DESC, assessment_id
		LIMIT @limit
	`, r.table(assessmentsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "limit", Value: limit},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: reading query: %w", err)
	}

	var out []*domain.Assessment
	for {
		var row AssessmentRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("List: iterating: %w", err)
		}
		a, err := row.Assessment()
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *Repository) readOne(ctx context.Context, q *bigquery.Query) (*domain.Assessment, error) {
	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading query: %w", err)
	}

	var row AssessmentRow
	err = it.Next(&row)
	if err == iterator.Done {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading row: %w", err)
	}
	return row.Assessment()
}

func (r *Repository) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", r.projectID, r.datasetID, name)
}
