package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/persistence/model"
)

// paymentRepository implements the adapter.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance.
func NewPaymentRepository(db *gorm.DB) adapter.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create inserts a new payment.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(model.PaymentFromEntity(payment)).Error
}

// FindByID retrieves a payment by its ID.
func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var paymentModel model.PaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// List retrieves payments matching the filter, newest first.
func (r *paymentRepository) List(ctx context.Context, filter adapter.PaymentFilter) ([]*entity.Payment, error) {
	query := r.db.WithContext(ctx).Model(&model.PaymentModel{})

	if filter.StartDate != nil {
		query = query.Where("payment_date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("payment_date < ?", filter.EndDate.UTC())
	}
	if filter.ForMonth != nil {
		query = query.Where("for_month = ?", filter.ForMonth.String())
	}

	var models []model.PaymentModel
	if err := query.Order("payment_date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return paymentsToEntities(models), nil
}

// ListByResident retrieves a resident's payment history, newest first.
func (r *paymentRepository) ListByResident(ctx context.Context, residentID uuid.UUID) ([]*entity.Payment, error) {
	var models []model.PaymentModel
	result := r.db.WithContext(ctx).
		Where("resident_id = ?", residentID).
		Order("payment_date DESC, created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return paymentsToEntities(models), nil
}
