// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// Service queues resident notifications for the email worker.
type Service struct {
	queue        adapter.EmailQueueRepository
	facilityName string
	currency     string
	clock        adapter.Clock
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, facilityName, currency string) *Service {
	return &Service{
		queue:        queue,
		facilityName: facilityName,
		currency:     currency,
	}
}

// WithClock stamps queued jobs with clock instead of the wall clock, so the
// worker polling on the same clock sees them as due.
func (s *Service) WithClock(clock adapter.Clock) *Service {
	s.clock = clock
	return s
}

func (s *Service) now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return time.Now()
}

// SendPaymentReminder queues a payment reminder email.
func (s *Service) SendPaymentReminder(ctx context.Context, input adapter.PaymentReminderInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeMissingRecipient,
			"payment reminder has no recipient",
			domainerror.ErrMissingRecipient,
		)
	}

	subject := fmt.Sprintf("Rent reminder for %s - %s", input.DueDate.Format("January 2006"), s.facilityName)

	templateData := map[string]any{
		"resident_name": input.ResidentName,
		"amount":        s.formatMoney(input.Amount),
		"due_date":      input.DueDate.Format("2 January 2006"),
		"period":        input.Period,
		"facility_name": s.facilityName,
	}

	job := entity.NewEmailJob(
		entity.TemplatePaymentReminder,
		entity.ReminderReference(input.ResidentID, input.Period),
		input.Email,
		input.ResidentName,
		subject,
		templateData,
		s.now(),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue payment reminder email",
			err,
		)
	}

	return nil
}

// SendWelcome queues a welcome email for a newly admitted resident.
func (s *Service) SendWelcome(ctx context.Context, input adapter.WelcomeInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeMissingRecipient,
			"welcome email has no recipient",
			domainerror.ErrMissingRecipient,
		)
	}

	subject := fmt.Sprintf("Welcome to %s", s.facilityName)

	templateData := map[string]any{
		"resident_name": input.ResidentName,
		"room_number":   input.RoomNumber,
		"monthly_rent":  s.formatMoney(input.MonthlyRent),
		"check_in_date": input.CheckInDate.Format("2 January 2006"),
		"facility_name": s.facilityName,
	}

	job := entity.NewEmailJob(
		entity.TemplateWelcome,
		entity.WelcomeReference(input.ResidentID),
		input.Email,
		input.ResidentName,
		subject,
		templateData,
		s.now(),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue welcome email",
			err,
		)
	}

	return nil
}

func (s *Service) formatMoney(amount decimal.Decimal) string {
	if s.currency == "" {
		return amount.StringFixed(2)
	}
	return s.currency + " " + amount.StringFixed(2)
}

// Ensure Service implements the notifier ports.
var (
	_ adapter.ReminderNotifier = (*Service)(nil)
	_ adapter.WelcomeNotifier  = (*Service)(nil)
)
