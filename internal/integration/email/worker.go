package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/email/templates"
)

// Worker drains the email queue through an EmailSender.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	clock        adapter.Clock
	pollInterval time.Duration
	batchSize    int
	claimTimeout time.Duration
}

// WorkerConfig holds configuration for the email worker. Jobs claimed for
// longer than ClaimTimeout are assumed abandoned and queued again.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	ClaimTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		ClaimTimeout: 10 * time.Minute,
	}
}

// BatchResult counts what happened to the jobs of one batch.
type BatchResult struct {
	Sent     int
	Retrying int
	Failed   int
}

// NewWorker creates a new email worker.
func NewWorker(
	queue adapter.EmailQueueRepository,
	sender adapter.EmailSender,
	renderer *templates.Renderer,
	clock adapter.Clock,
	config WorkerConfig,
) *Worker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.ClaimTimeout <= 0 {
		config.ClaimTimeout = defaults.ClaimTimeout
	}

	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		clock:        clock,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		claimTimeout: config.ClaimTimeout,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	for {
		w.processBatch(ctx)

		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-w.clock.After(w.pollInterval):
		}
	}
}

// ProcessNow processes one batch of due emails immediately.
func (w *Worker) ProcessNow(ctx context.Context) BatchResult {
	return w.processBatch(ctx)
}

func (w *Worker) processBatch(ctx context.Context) BatchResult {
	var result BatchResult
	now := w.clock.Now().UTC()

	if moved, err := w.queue.RequeueStale(ctx, now.Add(-w.claimTimeout)); err != nil {
		slog.Error("Failed to requeue stale email jobs", "error", err)
	} else if moved > 0 {
		slog.Warn("Requeued stale email jobs", "count", moved)
	}

	jobs, err := w.queue.GetPendingJobs(ctx, now, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending email jobs", "error", err)
		return result
	}

	if len(jobs) == 0 {
		return result
	}

	slog.Debug("Processing email batch", "count", len(jobs))

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}

		if !w.processJob(ctx, job) {
			continue
		}

		switch job.Status {
		case entity.EmailStatusSent:
			result.Sent++
		case entity.EmailStatusFailed:
			result.Failed++
		case entity.EmailStatusPending:
			result.Retrying++
		}
	}

	return result
}

// processJob reports false when the job was not claimed by this worker.
func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) bool {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	now := w.clock.Now()
	claimed, err := w.queue.Claim(ctx, job.ID, now)
	if err != nil {
		logger.Error("Failed to claim job", "error", err)
		return false
	}
	if !claimed {
		logger.Debug("Job already claimed elsewhere")
		return false
	}
	job.Claim(now)

	body, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		w.handleFailure(ctx, logger, job, err, true)
		return true
	}

	result, err := w.sender.Send(ctx, adapter.OutgoingEmail{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    body.HTML,
		Text:    body.Text,
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)

		var emailErr *domainerror.EmailError
		w.handleFailure(ctx, logger, job, err, errors.As(err, &emailErr) && emailErr.IsPermanent())
		return true
	}

	job.MarkSent(result.ProviderID, w.clock.Now())
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return true
	}

	logger.Info("Email sent", "provider_id", result.ProviderID)
	return true
}

// renderTemplate renders the appropriate template for the job.
func (w *Worker) renderTemplate(job *entity.EmailJob) (templates.Message, error) {
	templateName := string(job.TemplateType)

	var data any
	switch job.TemplateType {
	case entity.TemplatePaymentReminder:
		data = templates.PaymentReminderData{
			ResidentName: getString(job.TemplateData, "resident_name"),
			Amount:       getString(job.TemplateData, "amount"),
			DueDate:      getString(job.TemplateData, "due_date"),
			Period:       getString(job.TemplateData, "period"),
			FacilityName: getString(job.TemplateData, "facility_name"),
		}
	case entity.TemplateWelcome:
		data = templates.WelcomeData{
			ResidentName: getString(job.TemplateData, "resident_name"),
			RoomNumber:   getString(job.TemplateData, "room_number"),
			MonthlyRent:  getString(job.TemplateData, "monthly_rent"),
			CheckInDate:  getString(job.TemplateData, "check_in_date"),
			FacilityName: getString(job.TemplateData, "facility_name"),
		}
	default:
		return templates.Message{}, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			fmt.Sprintf("unknown template type %q", job.TemplateType),
			domainerror.ErrInvalidTemplate,
		)
	}

	body, err := w.renderer.Render(templateName, data)
	if err != nil {
		return templates.Message{}, domainerror.NewEmailError(domainerror.ErrCodeTemplateRenderFailed, "failed to render email", err)
	}
	return body, nil
}

func (w *Worker) handleFailure(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent, w.clock.Now())

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		logger.Error("Failed to update job after failure", "error", updateErr)
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("Email job failed for good", "attempts", job.Attempts, "last_error", job.LastError)
		return
	}
	logger.Info("Email job scheduled for retry", "attempts", job.Attempts, "scheduled_at", job.ScheduledAt)
}

// getString safely extracts a string from a map.
func getString(data map[string]any, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
