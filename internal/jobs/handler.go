package jobs

import (
	"context"
	"fmt"

	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/logger"
	"github.com/vannoorsab/FINAI/internal/pipeline"
)

// Assessor runs the assessment pipeline.
type Assessor interface {
	Assess(ctx context.Context, req pipeline.Request) (*domain.Assessment, error)
}

// Saver persists finished assessments.
type Saver interface {
	Save(ctx context.Context, a *domain.Assessment) error
}

// AssessHandler returns the JobHandler used by assessment workers. saver may
// be nil. A failed save is logged and does not fail the job.
func AssessHandler(assessor Assessor, saver Saver) JobHandler {
	return func(ctx context.Context, job *AssessJob) (*domain.Assessment, error) {
		a, err := assessor.Assess(ctx, pipeline.Request{
			Strategy:  job.Strategy,
			Document:  job.Document,
			SourceURI: job.SourceURI,
		})
		if err != nil {
			return nil, fmt.Errorf("AssessHandler: job %s: %w", job.JobID, err)
		}

		if saver != nil {
			if err := saver.Save(ctx, a); err != nil {
				log := logger.FromContext(ctx)
				log.Error().Err(err).
					Str("job_id", job.JobID).
					Str("assessment_id", a.ID).
					Msg("Failed to save assessment")
			}
		}
		return a, nil
	}
}
