package reminder

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/application/usecase/billing"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// PendingFinder computes the residents without a payment for a period.
type PendingFinder interface {
	Execute(ctx context.Context, input billing.FindPendingPaymentsInput) (*billing.FindPendingPaymentsOutput, error)
}

// Config holds scheduler timing.
type Config struct {
	Location     *time.Location
	PollInterval time.Duration
	RetryDelay   time.Duration
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		Location:     time.UTC,
		PollInterval: time.Minute,
		RetryDelay:   5 * time.Minute,
	}
}

// SweepResult summarizes one reminder sweep.
type SweepResult struct {
	Period    entity.BillingPeriod
	Pending   int
	Sent      int
	Failed    int
	Skipped   int
	StartedAt time.Time
	Duration  time.Duration
	// Interrupted is set when cancellation stopped the batch early.
	Interrupted bool
}

// Scheduler polls the clock and sends payment reminders for the upcoming
// billing period whenever the trigger matches, at most once per day.
type Scheduler struct {
	finder   PendingFinder
	notifier adapter.ReminderNotifier
	guard    adapter.SweepGuard
	clock    adapter.Clock
	trigger  Trigger
	metrics  *Metrics

	location     *time.Location
	pollInterval time.Duration
	retryDelay   time.Duration

	running sync.Mutex
}

// NewScheduler creates a new reminder scheduler. Zero config fields take their defaults.
func NewScheduler(
	finder PendingFinder,
	notifier adapter.ReminderNotifier,
	guard adapter.SweepGuard,
	clock adapter.Clock,
	trigger Trigger,
	metrics *Metrics,
	config Config,
) *Scheduler {
	defaults := DefaultConfig()
	if config.Location == nil {
		config.Location = defaults.Location
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = defaults.RetryDelay
	}

	return &Scheduler{
		finder:       finder,
		notifier:     notifier,
		guard:        guard,
		clock:        clock,
		trigger:      trigger,
		metrics:      metrics,
		location:     config.Location,
		pollInterval: config.PollInterval,
		retryDelay:   config.RetryDelay,
	}
}

// Start runs the polling loop. It blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Reminder scheduler started",
		"poll_interval", s.pollInterval,
		"retry_delay", s.retryDelay,
		"location", s.location.String(),
	)

	for {
		if ctx.Err() != nil {
			slog.Info("Reminder scheduler shutting down")
			return
		}

		wait := s.pollInterval
		if _, err := s.Tick(ctx); err != nil {
			slog.Error("Reminder sweep failed", "error", err, "retry_in", s.retryDelay)
			wait = s.retryDelay
		}

		select {
		case <-ctx.Done():
			slog.Info("Reminder scheduler shutting down")
			return
		case <-s.clock.After(wait):
		}
	}
}

// Tick evaluates the trigger once and runs a sweep when it is due.
// It returns a nil result when nothing ran.
func (s *Scheduler) Tick(ctx context.Context) (*SweepResult, error) {
	now := s.clock.Now().In(s.location)
	if !s.trigger.Matches(now) {
		return nil, nil
	}

	if !s.running.TryLock() {
		slog.Warn("Reminder sweep still running, skipping tick")
		s.metrics.sweep(outcomeSkipped)
		return nil, nil
	}
	defer s.running.Unlock()

	day := now.Format(time.DateOnly)
	claimed, err := s.guard.Claim(ctx, day)
	if err != nil {
		s.metrics.sweep(outcomeFailed)
		return nil, domainerror.NewReminderError(domainerror.ErrCodeSweepFailed, "failed to claim sweep day", err)
	}
	if !claimed {
		slog.Debug("Reminder sweep already ran today", "day", day)
		return nil, nil
	}

	result, err := s.sweep(ctx, now)
	if err != nil || result.Interrupted {
		// Failed or interrupted sweeps give the day back so a later tick can retry.
		s.release(ctx, day)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Scheduler) release(ctx context.Context, day string) {
	if err := s.guard.Release(context.WithoutCancel(ctx), day); err != nil {
		slog.Error("Failed to release sweep day", "day", day, "error", err)
	}
}

// RunNow sweeps immediately, regardless of the trigger or the daily guard.
// It fails with ErrSweepInProgress while another sweep is running.
func (s *Scheduler) RunNow(ctx context.Context) (*SweepResult, error) {
	if !s.running.TryLock() {
		return nil, domainerror.NewReminderError(
			domainerror.ErrCodeSweepInProgress,
			"a reminder sweep is already running",
			domainerror.ErrSweepInProgress,
		)
	}
	defer s.running.Unlock()

	return s.sweep(ctx, s.clock.Now().In(s.location))
}

// sweep sends reminders for the billing period after the one containing now.
func (s *Scheduler) sweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	period := entity.ResolvePeriod(now).Next()
	startedAt := s.clock.Now()

	logger := slog.With("period", period.String())
	logger.Info("Reminder sweep started")

	pending, err := s.finder.Execute(ctx, billing.FindPendingPaymentsInput{Period: period})
	if err != nil {
		s.metrics.sweep(outcomeFailed)
		return nil, domainerror.NewReminderError(domainerror.ErrCodeSweepFailed, "failed to compute pending payments", err)
	}

	result := &SweepResult{
		Period:    period,
		Pending:   len(pending.Entries),
		StartedAt: startedAt,
	}

	for _, entry := range pending.Entries {
		if ctx.Err() != nil {
			logger.Warn("Reminder sweep interrupted", "remaining", result.Pending-result.Sent-result.Failed-result.Skipped)
			result.Interrupted = true
			break
		}

		residentLogger := logger.With(
			"resident_id", entry.ResidentID,
			"room", entry.RoomNumber,
		)

		if strings.TrimSpace(entry.Email) == "" {
			result.Skipped++
			s.metrics.dispatched(dispatchNoAddress)
			residentLogger.Info("Skipping payment reminder, no email address")
			continue
		}

		err := s.notifier.SendPaymentReminder(ctx, adapter.PaymentReminderInput{
			ResidentID:   entry.ResidentID,
			Email:        entry.Email,
			ResidentName: entry.ResidentName,
			Amount:       entry.ExpectedAmount,
			DueDate:      period.Start(),
			Period:       period.String(),
		})
		if err != nil {
			result.Failed++
			s.metrics.dispatched(dispatchFailed)
			residentLogger.Error("Failed to send payment reminder", "error", err)
			continue
		}

		result.Sent++
		s.metrics.dispatched(dispatchSent)
		residentLogger.Info("Payment reminder sent")
	}

	result.Duration = s.clock.Now().Sub(startedAt)
	s.metrics.sweep(outcomeCompleted)
	s.metrics.observe(result.Duration)

	logger.Info("Reminder sweep completed",
		"pending", result.Pending,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"duration", result.Duration,
	)

	return result, nil
}
