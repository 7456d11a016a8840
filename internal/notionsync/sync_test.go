package notionsync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vannoorsab/FINAI/internal/domain"
)

// MockNotionService is a mock implementation of NotionService for testing.
type MockNotionService struct {
	CreatePageFunc    func(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)
	UpdatePageFunc    func(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error)
	QueryDatabaseFunc func(ctx context.Context, databaseID string, filter *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
	ArchivePageFunc   func(ctx context.Context, pageID string) error
}

func (m *MockNotionService) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	return m.CreatePageFunc(ctx, databaseID, properties)
}

func (m *MockNotionService) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	return m.UpdatePageFunc(ctx, pageID, properties)
}

func (m *MockNotionService) QueryDatabase(ctx context.Context, databaseID string, filter *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return m.QueryDatabaseFunc(ctx, databaseID, filter)
}

func (m *MockNotionService) ArchivePage(ctx context.Context, pageID string) error {
	return m.ArchivePageFunc(ctx, pageID)
}

func page(id, assessmentID string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			PropAssessmentID: &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: assessmentID}},
			},
		},
	}
}

func assessment(id string) *domain.Assessment {
	return &domain.Assessment{
		ID:             id,
		Strategy:       domain.StrategyNano,
		Checksum:       "abc",
		Profile:        domain.Profile{Name: "Asha Verma", CustomerID: domain.NotAvailable},
		Score:          domain.ScoreBreakdown{Total: 63.33},
		Recommendation: domain.Recommendation{Tier: domain.TierGrowth},
		CreatedAt:      time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestAssessmentToNotionProperties(t *testing.T) {
	a := assessment("a-1")
	a.Loans = &domain.LoanInsights{RepaymentPercentage: 50}

	props := AssessmentToNotionProperties(a)

	title, ok := props[PropAssessmentID].(notionapi.TitleProperty)
	require.True(t, ok)
	assert.Equal(t, "a-1", title.Title[0].Text.Content)
	assert.Equal(t, notionapi.NumberProperty{Number: 63.33}, props[PropScore])
	assert.Equal(t, notionapi.SelectProperty{Select: notionapi.Option{Name: "growth"}}, props[PropTier])
	assert.Equal(t, notionapi.NumberProperty{Number: 50}, props[PropRepaidPct])
	assert.Contains(t, props, PropCustomer)
	assert.NotContains(t, props, PropCustomerID, "N/A fields are omitted")
	assert.NotContains(t, props, PropSourceURI)
	assert.Contains(t, props, PropAssessedAt)
}

func TestExporter_SyncMatchesExistingPages(t *testing.T) {
	var created, updated []string
	var cursors []notionapi.Cursor
	mock := &MockNotionService{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
			assert.Equal(t, "db-1", databaseID)
			cursors = append(cursors, req.StartCursor)
			if req.StartCursor == "" {
				return &notionapi.DatabaseQueryResponse{Results: []notionapi.Page{page("p-1", "a-1")}, HasMore: true, NextCursor: "next"}, nil
			}
			return &notionapi.DatabaseQueryResponse{Results: []notionapi.Page{page("p-stale", "a-old")}}, nil
		},
		CreatePageFunc: func(ctx context.Context, databaseID string, props notionapi.Properties) (*notionapi.Page, error) {
			id := props[PropAssessmentID].(notionapi.TitleProperty).Title[0].Text.Content
			created = append(created, id)
			return &notionapi.Page{ID: notionapi.ObjectID("p-" + id)}, nil
		},
		UpdatePageFunc: func(ctx context.Context, pageID string, props notionapi.Properties) (*notionapi.Page, error) {
			updated = append(updated, pageID)
			return &notionapi.Page{ID: notionapi.ObjectID(pageID)}, nil
		},
		ArchivePageFunc: func(ctx context.Context, pageID string) error {
			t.Fatal("prune was not requested")
			return nil
		},
	}

	res, err := NewExporter(mock, "db-1").Sync(context.Background(), []*domain.Assessment{assessment("a-1"), assessment("a-2")}, Options{})
	require.NoError(t, err)

	assert.Equal(t, Result{Created: 1, Updated: 1}, res)
	assert.Equal(t, []string{"a-2"}, created)
	assert.Equal(t, []string{"p-1"}, updated)
	assert.Equal(t, []notionapi.Cursor{"", "next"}, cursors)
}

func TestExporter_SyncPruneAndFailures(t *testing.T) {
	var archived []string
	mock := &MockNotionService{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
			return &notionapi.DatabaseQueryResponse{Results: []notionapi.Page{page("p-stale", "a-old")}}, nil
		},
		CreatePageFunc: func(ctx context.Context, databaseID string, props notionapi.Properties) (*notionapi.Page, error) {
			return nil, errors.New("rate limited")
		},
		ArchivePageFunc: func(ctx context.Context, pageID string) error {
			archived = append(archived, pageID)
			return nil
		},
	}

	res, err := NewExporter(mock, "db").Sync(context.Background(), []*domain.Assessment{assessment("a-1")}, Options{Prune: true})
	require.NoError(t, err)
	assert.Equal(t, Result{Archived: 1, Failed: 1}, res)
	assert.Equal(t, []string{"p-stale"}, archived)
}

func TestExporter_SyncDryRun(t *testing.T) {
	mock := &MockNotionService{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
			return &notionapi.DatabaseQueryResponse{Results: []notionapi.Page{page("p-1", "a-1"), page("p-x", "a-x")}}, nil
		},
	}

	res, err := NewExporter(mock, "db").Sync(context.Background(), []*domain.Assessment{assessment("a-1"), assessment("a-2")}, Options{DryRun: true, Prune: true})
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 1, Updated: 1, Archived: 1}, res)
}

func TestExporter_QueryFailureIsFatal(t *testing.T) {
	mock := &MockNotionService{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
			return nil, fmt.Errorf("unauthorized")
		},
	}

	_, err := NewExporter(mock, "db").Sync(context.Background(), nil, Options{})
	assert.ErrorContains(t, err, "unauthorized")

	_, err = NewExporter(mock, "db").Export(context.Background(), assessment("a-1"))
	assert.Error(t, err)
}

func TestExporter_Export(t *testing.T) {
	mock := &MockNotionService{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
			return &notionapi.DatabaseQueryResponse{}, nil
		},
		CreatePageFunc: func(ctx context.Context, databaseID string, props notionapi.Properties) (*notionapi.Page, error) {
			return &notionapi.Page{ID: "p-new"}, nil
		},
	}

	pageID, err := NewExporter(mock, "db").Export(context.Background(), assessment("a-1"))
	require.NoError(t, err)
	assert.Equal(t, "p-new", pageID)
}
