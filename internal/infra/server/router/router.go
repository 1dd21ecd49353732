// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/integration/entrypoint/controller"
	"github.com/residence-hub/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	residentController  *controller.ResidentController
	paymentController   *controller.PaymentController
	expenseController   *controller.ExpenseController
	analyticsController *controller.AnalyticsController
	reminderController  *controller.ReminderController
	authMiddleware      *middleware.AuthMiddleware
	reminderRateLimiter *middleware.RateLimiter
	metrics             *middleware.Metrics
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	residentController *controller.ResidentController,
	paymentController *controller.PaymentController,
	expenseController *controller.ExpenseController,
	analyticsController *controller.AnalyticsController,
	reminderController *controller.ReminderController,
	authMiddleware *middleware.AuthMiddleware,
	reminderRateLimiter *middleware.RateLimiter,
	metrics *middleware.Metrics,
) *Router {
	return &Router{
		healthController:    healthController,
		residentController:  residentController,
		paymentController:   paymentController,
		expenseController:   expenseController,
		analyticsController: analyticsController,
		reminderController:  reminderController,
		authMiddleware:      authMiddleware,
		reminderRateLimiter: reminderRateLimiter,
		metrics:             metrics,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}
	if r.metrics != nil {
		r.engine.Use(r.metrics.Middleware())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	write := r.authMiddleware.RequireRole(adapter.RoleAdmin, adapter.RoleStaff)

	if r.residentController != nil {
		residents := v1.Group("/residents")
		{
			residents.GET("", r.residentController.List)
			residents.POST("", write, r.residentController.Create)
			residents.GET("/:id", r.residentController.Get)
			residents.POST("/:id/checkout", write, r.residentController.Checkout)
			residents.GET("/:id/payments", r.residentController.Payments)
		}
	}

	if r.paymentController != nil {
		payments := v1.Group("/payments")
		{
			payments.GET("", r.paymentController.List)
			payments.POST("", write, r.paymentController.Create)
			// Static segment registered before the :id wildcard.
			payments.GET("/pending", r.paymentController.Pending)
			payments.GET("/:id", r.paymentController.Get)
		}
	}

	if r.expenseController != nil {
		expenses := v1.Group("/expenses")
		{
			expenses.GET("", r.expenseController.List)
			expenses.POST("", write, r.expenseController.Create)
		}
	}

	if r.analyticsController != nil {
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/summary", r.analyticsController.Summary)
			analytics.GET("/monthly", r.analyticsController.Monthly)
			analytics.GET("/series", r.analyticsController.Series)
			analytics.GET("/revenue", r.analyticsController.Revenue)
			analytics.GET("/dashboard", r.analyticsController.Dashboard)
		}
	}

	if r.reminderController != nil {
		reminders := v1.Group("/reminders")
		handlers := []gin.HandlerFunc{write}
		if r.reminderRateLimiter != nil {
			handlers = append(handlers, r.reminderRateLimiter.Middleware())
		}
		handlers = append(handlers, r.reminderController.Run)
		reminders.POST("/run", handlers...)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
