// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// ResidentModel represents the residents table in the database.
type ResidentModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FullName       string          `gorm:"type:varchar(200);not null;index"`
	IdentityNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Phone          string          `gorm:"type:varchar(30)"`
	Email          string          `gorm:"type:varchar(255)"`
	RoomNumber     string          `gorm:"type:varchar(20);not null;index"`
	CheckInDate    time.Time       `gorm:"type:date;not null"`
	CheckOutDate   *time.Time      `gorm:"type:date"`
	MonthlyRent    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsActive       bool            `gorm:"not null;index"`
	Notes          string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ResidentModel.
func (ResidentModel) TableName() string {
	return "residents"
}

// ToEntity converts a ResidentModel to a domain Resident entity.
func (m *ResidentModel) ToEntity() *entity.Resident {
	var checkOut *time.Time
	if m.CheckOutDate != nil {
		t := m.CheckOutDate.UTC()
		checkOut = &t
	}

	return &entity.Resident{
		ID:             m.ID,
		FullName:       m.FullName,
		IdentityNumber: m.IdentityNumber,
		Phone:          m.Phone,
		Email:          m.Email,
		RoomNumber:     m.RoomNumber,
		CheckInDate:    m.CheckInDate.UTC(),
		CheckOutDate:   checkOut,
		MonthlyRent:    m.MonthlyRent,
		IsActive:       m.IsActive,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ResidentFromEntity creates a ResidentModel from a domain Resident entity.
func ResidentFromEntity(r *entity.Resident) *ResidentModel {
	var checkOut *time.Time
	if r.CheckOutDate != nil {
		t := r.CheckOutDate.UTC()
		checkOut = &t
	}

	return &ResidentModel{
		ID:             r.ID,
		FullName:       r.FullName,
		IdentityNumber: r.IdentityNumber,
		Phone:          r.Phone,
		Email:          r.Email,
		RoomNumber:     r.RoomNumber,
		CheckInDate:    r.CheckInDate.UTC(),
		CheckOutDate:   checkOut,
		MonthlyRent:    r.MonthlyRent,
		IsActive:       r.IsActive,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
