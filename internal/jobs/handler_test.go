package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/pipeline"
)

type MockAssessor struct {
	AssessFunc func(ctx context.Context, req pipeline.Request) (*domain.Assessment, error)
}

func (m *MockAssessor) Assess(ctx context.Context, req pipeline.Request) (*domain.Assessment, error) {
	return m.AssessFunc(ctx, req)
}

type MockSaver struct {
	SaveFunc func(ctx context.Context, a *domain.Assessment) error
}

func (m *MockSaver) Save(ctx context.Context, a *domain.Assessment) error {
	return m.SaveFunc(ctx, a)
}

func TestAssessHandler(t *testing.T) {
	job := &AssessJob{JobID: "job-1", Strategy: domain.StrategyCredit, Document: []byte(`{}`)}

	t.Run("assesses and saves", func(t *testing.T) {
		var got pipeline.Request
		assessor := &MockAssessor{AssessFunc: func(ctx context.Context, req pipeline.Request) (*domain.Assessment, error) {
			got = req
			return &domain.Assessment{ID: "a-1", Strategy: req.Strategy}, nil
		}}
		var saved []string
		saver := &MockSaver{SaveFunc: func(ctx context.Context, a *domain.Assessment) error {
			saved = append(saved, a.ID)
			return nil
		}}

		a, err := AssessHandler(assessor, saver)(context.Background(), job)
		require.NoError(t, err)
		assert.Equal(t, "a-1", a.ID)
		assert.Equal(t, domain.StrategyCredit, got.Strategy)
		assert.Equal(t, []byte(`{}`), got.Document)
		assert.Equal(t, []string{"a-1"}, saved)
	})

	t.Run("save failure keeps the result", func(t *testing.T) {
		assessor := &MockAssessor{AssessFunc: func(ctx context.Context, req pipeline.Request) (*domain.Assessment, error) {
			return &domain.Assessment{ID: "a-2"}, nil
		}}
		saver := &MockSaver{SaveFunc: func(ctx context.Context, a *domain.Assessment) error {
			return errors.New("disk full")
		}}

		a, err := AssessHandler(assessor, saver)(context.Background(), job)
		require.NoError(t, err)
		assert.Equal(t, "a-2", a.ID)
	})

	t.Run("assessment failure fails the job", func(t *testing.T) {
		assessor := &MockAssessor{AssessFunc: func(ctx context.Context, req pipeline.Request) (*domain.Assessment, error) {
			return nil, &domain.MalformedInputError{Index: 0, Field: "amount", Reason: "not a number"}
		}}

		_, err := AssessHandler(assessor, nil)(context.Background(), job)
		require.Error(t, err)
		assert.True(t, domain.IsMalformedInput(err))
		assert.Contains(t, err.Error(), "job-1")
	})
}
