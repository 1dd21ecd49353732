package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	"github.com/residence-hub/backend/internal/integration/persistence/model"
)

// auditLogRepository implements the adapter.AuditLogRepository interface.
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository instance.
func NewAuditLogRepository(db *gorm.DB) adapter.AuditLogRepository {
	return &auditLogRepository{
		db: db,
	}
}

// Create appends an entry to the audit trail.
func (r *auditLogRepository) Create(ctx context.Context, entry *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(model.AuditLogFromEntity(entry)).Error
}

// ListByEntity returns the trail of one record, oldest first.
func (r *auditLogRepository) ListByEntity(ctx context.Context, entityName, entityID string) ([]*entity.AuditLog, error) {
	var models []model.AuditLogModel
	result := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entityName, entityID).
		Order("timestamp ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.AuditLog, len(models))
	for i := range models {
		entries[i] = models[i].ToEntity()
	}
	return entries, nil
}
