package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Create queues a job.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to queue email", err)
	}
	return nil
}

// GetPendingJobs returns due jobs, earliest schedule first.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", string(entity.EmailStatusPending), now.UTC()).
		Order("scheduled_at ASC, created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load due emails: %w", err)
	}

	jobs := make([]*entity.EmailJob, len(rows))
	for i := range rows {
		jobs[i] = rows[i].ToEntity()
	}
	return jobs, nil
}

// Claim flips the job to processing only if it is still pending, so two
// workers reading the same batch cannot both send it.
func (r *emailQueueRepository) Claim(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("id = ? AND status = ?", id, string(entity.EmailStatusPending)).
		Updates(map[string]any{
			"status":     string(entity.EmailStatusProcessing),
			"claimed_at": now.UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim email %s: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Update persists every field of the job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

// RequeueStale puts jobs left in processing since before cutoff back in line.
// The attempt counter is untouched: the interrupted send never reported back.
func (r *emailQueueRepository) RequeueStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("status = ? AND claimed_at < ?", string(entity.EmailStatusProcessing), cutoff.UTC()).
		Updates(map[string]any{
			"status":     string(entity.EmailStatusPending),
			"claimed_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to requeue stale emails: %w", result.Error)
	}
	return result.RowsAffected, nil
}
