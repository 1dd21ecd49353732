package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// AuditLogModel represents the audit_logs table in the database.
type AuditLogModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Actor       string    `gorm:"type:varchar(255);not null"`
	Action      string    `gorm:"type:varchar(20);not null"`
	Entity      string    `gorm:"type:varchar(50);not null;index:idx_audit_entity,priority:1"`
	EntityID    string    `gorm:"type:varchar(64);not null;index:idx_audit_entity,priority:2"`
	Description string    `gorm:"type:text"`
	OldValues   string    `gorm:"type:text"`
	NewValues   string    `gorm:"type:text"`
	IPAddress   string    `gorm:"type:varchar(45)"`
	Timestamp   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the AuditLogModel.
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToEntity converts an AuditLogModel to a domain AuditLog entity.
func (m *AuditLogModel) ToEntity() *entity.AuditLog {
	return &entity.AuditLog{
		ID:          m.ID,
		Actor:       m.Actor,
		Action:      entity.AuditAction(m.Action),
		Entity:      m.Entity,
		EntityID:    m.EntityID,
		Description: m.Description,
		OldValues:   m.OldValues,
		NewValues:   m.NewValues,
		IPAddress:   m.IPAddress,
		Timestamp:   m.Timestamp,
	}
}

// AuditLogFromEntity creates an AuditLogModel from a domain AuditLog entity.
func AuditLogFromEntity(a *entity.AuditLog) *AuditLogModel {
	return &AuditLogModel{
		ID:          a.ID,
		Actor:       a.Actor,
		Action:      string(a.Action),
		Entity:      a.Entity,
		EntityID:    a.EntityID,
		Description: a.Description,
		OldValues:   a.OldValues,
		NewValues:   a.NewValues,
		IPAddress:   a.IPAddress,
		Timestamp:   a.Timestamp,
	}
}
