package adapter

import (
	"context"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// AuditLogRepository stores the staff action trail.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditLog) error
	ListByEntity(ctx context.Context, entityName, entityID string) ([]*entity.AuditLog, error)
}
