// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	"github.com/residence-hub/backend/internal/integration/persistence/model"
)

// ledgerStore implements the adapter.LedgerStore interface.
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a new ledger store instance.
func NewLedgerStore(db *gorm.DB) adapter.LedgerStore {
	return &ledgerStore{
		db: db,
	}
}

// Begin opens a transaction for the session. On PostgreSQL it is a read-only
// repeatable-read transaction, so every read sees the same snapshot.
func (s *ledgerStore) Begin(ctx context.Context) (adapter.LedgerSession, error) {
	var tx *gorm.DB
	if s.db.Dialector.Name() == "postgres" {
		tx = s.db.WithContext(ctx).Begin(&sql.TxOptions{
			Isolation: sql.LevelRepeatableRead,
			ReadOnly:  true,
		})
	} else {
		tx = s.db.WithContext(ctx).Begin()
	}

	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin ledger session: %w", tx.Error)
	}

	return &ledgerSession{tx: tx}, nil
}

// ledgerSession implements the adapter.LedgerSession interface.
type ledgerSession struct {
	tx     *gorm.DB
	once   sync.Once
	result error
}

func (s *ledgerSession) ListActiveResidents(ctx context.Context) ([]*entity.Resident, error) {
	var models []model.ResidentModel
	err := s.tx.WithContext(ctx).
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active residents: %w", err)
	}

	residents := make([]*entity.Resident, len(models))
	for i := range models {
		residents[i] = models[i].ToEntity()
	}
	return residents, nil
}

func (s *ledgerSession) ListPaymentsForPeriod(ctx context.Context, period entity.BillingPeriod) ([]*entity.Payment, error) {
	var models []model.PaymentModel
	err := s.tx.WithContext(ctx).
		Where("for_month = ?", period.String()).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for %s: %w", period, err)
	}

	return paymentsToEntities(models), nil
}

func (s *ledgerSession) ListPaymentsInRange(ctx context.Context, start, end time.Time) ([]*entity.Payment, error) {
	var models []model.PaymentModel
	err := s.tx.WithContext(ctx).
		Where("payment_date >= ? AND payment_date < ?", start.UTC(), end.UTC()).
		Order("payment_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments in range: %w", err)
	}

	return paymentsToEntities(models), nil
}

func (s *ledgerSession) ListExpensesInRange(ctx context.Context, start, end time.Time) ([]*entity.Expense, error) {
	var models []model.ExpenseModel
	err := s.tx.WithContext(ctx).
		Where("expense_date >= ? AND expense_date < ?", start.UTC(), end.UTC()).
		Order("expense_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses in range: %w", err)
	}

	return expensesToEntities(models), nil
}

func (s *ledgerSession) CountResidents(ctx context.Context) (*adapter.ResidentCounts, error) {
	var counts adapter.ResidentCounts
	db := s.tx.WithContext(ctx)

	if err := db.Model(&model.ResidentModel{}).Count(&counts.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count residents: %w", err)
	}

	if err := db.Model(&model.ResidentModel{}).Where("is_active = ?", true).Count(&counts.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active residents: %w", err)
	}

	if err := db.Model(&model.ResidentModel{}).
		Where("is_active = ?", true).
		Distinct("room_number").
		Count(&counts.OccupiedRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	return &counts, nil
}

// Close rolls the read transaction back. Only the first call has an effect.
func (s *ledgerSession) Close() error {
	s.once.Do(func() {
		s.result = s.tx.Rollback().Error
	})
	return s.result
}

func paymentsToEntities(models []model.PaymentModel) []*entity.Payment {
	payments := make([]*entity.Payment, len(models))
	for i := range models {
		payments[i] = models[i].ToEntity()
	}
	return payments
}

func expensesToEntities(models []model.ExpenseModel) []*entity.Expense {
	expenses := make([]*entity.Expense, len(models))
	for i := range models {
		expenses[i] = models[i].ToEntity()
	}
	return expenses
}
