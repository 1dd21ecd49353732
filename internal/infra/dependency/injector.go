// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/residence-hub/backend/config"
	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/application/usecase/analytics"
	"github.com/residence-hub/backend/internal/application/usecase/billing"
	"github.com/residence-hub/backend/internal/application/usecase/expense"
	"github.com/residence-hub/backend/internal/application/usecase/payment"
	"github.com/residence-hub/backend/internal/application/usecase/resident"
	"github.com/residence-hub/backend/internal/infra/cache"
	"github.com/residence-hub/backend/internal/infra/server/router"
	"github.com/residence-hub/backend/internal/integration/adapters"
	"github.com/residence-hub/backend/internal/integration/email"
	"github.com/residence-hub/backend/internal/integration/email/templates"
	"github.com/residence-hub/backend/internal/integration/entrypoint/controller"
	"github.com/residence-hub/backend/internal/integration/entrypoint/middleware"
	"github.com/residence-hub/backend/internal/integration/persistence"
	"github.com/residence-hub/backend/internal/integration/reminder"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Scheduler   *reminder.Scheduler
	EmailWorker *email.Worker
	Metrics     *middleware.Metrics
	Clock       adapter.Clock
}

// Options carries the optional runtime collaborators of NewInjector.
type Options struct {
	// Redis is nil when Redis is disabled.
	Redis *redis.Client
	// DatabaseHealth overrides the default ping of db.
	DatabaseHealth controller.HealthCheck
	// Clock overrides the system clock.
	Clock adapter.Clock
	// EmailSender overrides the sender chosen from config.
	EmailSender adapter.EmailSender
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Repositories
	residentRepo := persistence.NewResidentRepository(db)
	paymentRepo := persistence.NewPaymentRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	auditRepo := persistence.NewAuditLogRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	ledger := persistence.NewLedgerStore(db)

	// Adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	emailService := email.NewService(emailQueueRepo, cfg.Facility.Name, cfg.Facility.Currency).WithClock(clock)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}

	sender := opts.EmailSender
	if sender == nil {
		sender, err = newEmailSender(cfg.Email)
		if err != nil {
			return nil, err
		}
	}

	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, clock, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		ClaimTimeout: cfg.Email.ClaimTimeout,
	})

	// Resident use cases
	createResidentUseCase := resident.NewCreateResidentUseCase(residentRepo, auditRepo, emailService)
	getResidentUseCase := resident.NewGetResidentUseCase(residentRepo)
	listResidentsUseCase := resident.NewListResidentsUseCase(residentRepo)
	checkoutResidentUseCase := resident.NewCheckoutResidentUseCase(residentRepo, auditRepo, clock)

	// Payment use cases
	createPaymentUseCase := payment.NewCreatePaymentUseCase(paymentRepo, residentRepo, auditRepo)
	getPaymentUseCase := payment.NewGetPaymentUseCase(paymentRepo)
	listPaymentsUseCase := payment.NewListPaymentsUseCase(paymentRepo)
	paymentHistoryUseCase := payment.NewPaymentHistoryUseCase(paymentRepo, residentRepo)
	findPendingUseCase := billing.NewFindPendingPaymentsUseCase(ledger)

	// Expense use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, auditRepo)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)

	// Analytics use cases
	summaryUseCase := analytics.NewGetFinancialSummaryUseCase(ledger)
	monthlyUseCase := analytics.NewGetMonthlySeriesUseCase(ledger, clock)
	seriesUseCase := analytics.NewGetRangeSeriesUseCase(ledger)
	revenueUseCase := analytics.NewGetRevenueAnalyticsUseCase(ledger)
	dashboardUseCase := analytics.NewGetDashboardUseCase(ledger, clock, cfg.Facility.TotalRooms)

	// Metrics
	metrics := middleware.NewMetrics()

	// Reminder scheduler
	loc := cfg.Reminder.Location()
	trigger, err := reminder.NewCronTrigger(cfg.Reminder.Schedule, loc)
	if err != nil {
		return nil, fmt.Errorf("reminder schedule: %w", err)
	}
	guard, err := newSweepGuard(cfg.Reminder, opts.Redis, clock)
	if err != nil {
		return nil, err
	}
	scheduler := reminder.NewScheduler(
		findPendingUseCase,
		emailService,
		guard,
		clock,
		trigger,
		reminder.NewMetrics(metrics.Registerer()),
		reminder.Config{
			Location:     loc,
			PollInterval: cfg.Reminder.PollInterval,
			RetryDelay:   cfg.Reminder.RetryDelay,
		},
	)

	// Controllers
	dbHealth := opts.DatabaseHealth
	if dbHealth == nil {
		dbHealth = pingDatabase(db)
	}
	var redisHealth controller.HealthCheck
	if opts.Redis != nil {
		redisHealth = cache.HealthCheck(opts.Redis)
	}
	healthController := controller.NewHealthController(dbHealth, redisHealth, clock)

	residentController := controller.NewResidentController(
		createResidentUseCase,
		getResidentUseCase,
		listResidentsUseCase,
		checkoutResidentUseCase,
		paymentHistoryUseCase,
	)

	paymentController := controller.NewPaymentController(
		createPaymentUseCase,
		getPaymentUseCase,
		listPaymentsUseCase,
		findPendingUseCase,
		clock,
	)

	expenseController := controller.NewExpenseController(createExpenseUseCase, listExpensesUseCase)

	analyticsController := controller.NewAnalyticsController(
		summaryUseCase,
		monthlyUseCase,
		seriesUseCase,
		revenueUseCase,
		dashboardUseCase,
		clock,
	)

	reminderController := controller.NewReminderController(scheduler, auditRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	var rateCounter middleware.RateCounter = middleware.NewMemoryCounter()
	if opts.Redis != nil {
		rateCounter = middleware.NewRedisCounter(opts.Redis)
	}
	reminderRateLimiter := middleware.NewRateLimiter(rateCounter, cfg.Reminder.RateLimit, cfg.Reminder.RateWindow)
	if cfg.Server.Environment == "test" {
		reminderRateLimiter.Disable()
	}

	r := router.NewRouter(
		healthController,
		residentController,
		paymentController,
		expenseController,
		analyticsController,
		reminderController,
		authMiddleware,
		reminderRateLimiter,
		metrics,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Scheduler:   scheduler,
		EmailWorker: emailWorker,
		Metrics:     metrics,
		Clock:       clock,
	}, nil
}

func newEmailSender(cfg config.EmailConfig) (adapter.EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		return email.NewLoggingSender(), nil
	}
	client, err := email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail, cfg.ResendBaseURL)
	if err != nil {
		return nil, fmt.Errorf("resend client: %w", err)
	}
	return client, nil
}

func newSweepGuard(cfg config.ReminderConfig, client *redis.Client, clock adapter.Clock) (adapter.SweepGuard, error) {
	switch cfg.GuardBackend {
	case config.GuardBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("reminder guard backend %q requires REDIS_ENABLED", cfg.GuardBackend)
		}
		return reminder.NewRedisGuard(client, cfg.GuardTTL).WithClock(clock), nil
	case "", config.GuardBackendMemory:
		return reminder.NewMemoryGuard(), nil
	default:
		return nil, fmt.Errorf("unknown reminder guard backend %q", cfg.GuardBackend)
	}
}
