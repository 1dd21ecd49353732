package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/entrypoint/dto"
	"github.com/residence-hub/backend/internal/integration/entrypoint/middleware"
	"github.com/residence-hub/backend/internal/integration/reminder"
)

// ReminderRunner runs an immediate reminder sweep.
type ReminderRunner interface {
	RunNow(ctx context.Context) (*reminder.SweepResult, error)
}

// ReminderController handles manual reminder sweeps.
type ReminderController struct {
	runner    ReminderRunner
	auditRepo adapter.AuditLogRepository
}

// NewReminderController creates a new reminder controller instance.
// auditRepo may be nil.
func NewReminderController(runner ReminderRunner, auditRepo adapter.AuditLogRepository) *ReminderController {
	return &ReminderController{
		runner:    runner,
		auditRepo: auditRepo,
	}
}

// Run handles POST /reminders/run requests.
func (c *ReminderController) Run(ctx *gin.Context) {
	actor := middleware.GetActorFromContext(ctx)
	slog.Info("Manual reminder sweep requested", "actor", actor)

	result, err := c.runner.RunNow(ctx.Request.Context())
	if err != nil {
		var remErr *domainerror.ReminderError
		if errors.As(err, &remErr) && remErr.Code == domainerror.ErrCodeSweepInProgress {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{
				Error: remErr.Message,
				Code:  string(remErr.Code),
			})
			return
		}

		slog.Error("Manual reminder sweep failed", "actor", actor, "error", err)
		code := ""
		if remErr != nil {
			code = string(remErr.Code)
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Reminder sweep failed",
			Code:  code,
		})
		return
	}

	c.audit(ctx, actor, result)
	ctx.JSON(http.StatusOK, dto.ToSweepResultResponse(result))
}

func (c *ReminderController) audit(ctx *gin.Context, actor string, result *reminder.SweepResult) {
	if c.auditRepo == nil {
		return
	}

	entry := entity.NewAuditLog(
		actor,
		entity.AuditActionTrigger,
		"reminder_sweep",
		result.Period.String(),
		fmt.Sprintf("manual sweep for %s: %d sent, %d failed, %d skipped", result.Period, result.Sent, result.Failed, result.Skipped),
	)
	entry.IPAddress = ctx.ClientIP()
	if err := c.auditRepo.Create(ctx.Request.Context(), entry); err != nil {
		slog.Error("Failed to write audit log", "period", result.Period.String(), "error", err)
	}
}
