package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/persistence/model"
)

// residentRepository implements the adapter.ResidentRepository interface.
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new resident repository instance.
func NewResidentRepository(db *gorm.DB) adapter.ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// Create inserts a new resident.
func (r *residentRepository) Create(ctx context.Context, resident *entity.Resident) error {
	return r.db.WithContext(ctx).Create(model.ResidentFromEntity(resident)).Error
}

// FindByID retrieves a resident by its ID.
func (r *residentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resident, error) {
	var residentModel model.ResidentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&residentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrResidentNotFound
		}
		return nil, result.Error
	}
	return residentModel.ToEntity(), nil
}

// ExistsByIdentityNumber reports whether any resident, active or not, holds the identity number.
func (r *residentRepository) ExistsByIdentityNumber(ctx context.Context, identityNumber string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ResidentModel{}).
		Where("identity_number = ?", strings.TrimSpace(identityNumber)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// List retrieves residents ordered by name.
func (r *residentRepository) List(ctx context.Context, filter adapter.ResidentFilter) ([]*entity.Resident, error) {
	query := r.db.WithContext(ctx).Model(&model.ResidentModel{})

	if filter.ActiveOnly != nil {
		query = query.Where("is_active = ?", *filter.ActiveOnly)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(identity_number) LIKE ? OR LOWER(room_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var models []model.ResidentModel
	if err := query.Order("full_name ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	residents := make([]*entity.Resident, len(models))
	for i := range models {
		residents[i] = models[i].ToEntity()
	}
	return residents, nil
}

// Update saves all resident fields.
func (r *residentRepository) Update(ctx context.Context, resident *entity.Resident) error {
	result := r.db.WithContext(ctx).Save(model.ResidentFromEntity(resident))
	if result.Error != nil {
		return result.Error
	}
	return nil
}
