package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentReminderInput carries what a resident needs to know about upcoming rent.
type PaymentReminderInput struct {
	ResidentID   uuid.UUID
	Email        string
	ResidentName string
	Amount       decimal.Decimal
	DueDate      time.Time
	Period       string
}

// ReminderNotifier delivers payment reminders. Each call stands alone;
// a failure concerns only that resident.
type ReminderNotifier interface {
	SendPaymentReminder(ctx context.Context, input PaymentReminderInput) error
}

// WelcomeInput carries the details of a newly admitted resident.
type WelcomeInput struct {
	ResidentID   uuid.UUID
	Email        string
	ResidentName string
	RoomNumber   string
	MonthlyRent  decimal.Decimal
	CheckInDate  time.Time
}

// WelcomeNotifier greets newly admitted residents.
type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, input WelcomeInput) error
}
