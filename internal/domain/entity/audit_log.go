package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the kind of change recorded in the audit trail.
type AuditAction string

const (
	AuditActionCreate   AuditAction = "create"
	AuditActionCheckout AuditAction = "checkout"
	AuditActionTrigger  AuditAction = "trigger"
)

// AuditLog records a staff action against a ledger entity.
type AuditLog struct {
	ID          uuid.UUID
	Actor       string
	Action      AuditAction
	Entity      string
	EntityID    string
	Description string
	OldValues   string
	NewValues   string
	IPAddress   string
	Timestamp   time.Time
}

// NewAuditLog creates a new AuditLog entry stamped with the current time.
func NewAuditLog(actor string, action AuditAction, entityName, entityID, description string) *AuditLog {
	return &AuditLog{
		ID:          uuid.New(),
		Actor:       actor,
		Action:      action,
		Entity:      entityName,
		EntityID:    entityID,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}
}
