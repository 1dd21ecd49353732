package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// EmailQueueRepository stores outbound emails for the worker.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns up to limit jobs due at now, earliest schedule first.
	GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Claim moves a pending job to processing. It reports false when the job
	// is no longer pending, e.g. another worker claimed it first.
	Claim(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)

	Update(ctx context.Context, job *entity.EmailJob) error

	// RequeueStale returns jobs claimed before cutoff to pending and reports
	// how many were moved.
	RequeueStale(ctx context.Context, cutoff time.Time) (int64, error)
}
