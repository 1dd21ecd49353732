package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ExpenseDate time.Time       `gorm:"not null;index"`
	RecordedBy  string          `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
		ExpenseDate: m.ExpenseDate.UTC(),
		RecordedBy:  m.RecordedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.UTC(),
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}
