package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/application/usecase/billing"
	"github.com/residence-hub/backend/internal/application/usecase/payment"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/entrypoint/dto"
	"github.com/residence-hub/backend/internal/integration/entrypoint/middleware"
)

// PaymentController handles payment endpoints.
type PaymentController struct {
	createUseCase  *payment.CreatePaymentUseCase
	getUseCase     *payment.GetPaymentUseCase
	listUseCase    *payment.ListPaymentsUseCase
	pendingUseCase *billing.FindPendingPaymentsUseCase
	clock          adapter.Clock
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	createUseCase *payment.CreatePaymentUseCase,
	getUseCase *payment.GetPaymentUseCase,
	listUseCase *payment.ListPaymentsUseCase,
	pendingUseCase *billing.FindPendingPaymentsUseCase,
	clock adapter.Clock,
) *PaymentController {
	return &PaymentController{
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		listUseCase:    listUseCase,
		pendingUseCase: pendingUseCase,
		clock:          clock,
	}
}

// List handles GET /payments requests.
func (c *PaymentController) List(ctx *gin.Context) {
	start, ok := optionalDateQuery(ctx, "start_date")
	if !ok {
		c.badDate(ctx, "start_date")
		return
	}
	end, ok := optionalDateQuery(ctx, "end_date")
	if !ok {
		c.badDate(ctx, "end_date")
		return
	}

	input := payment.ListPaymentsInput{StartDate: start, EndDate: end}
	if raw := strings.TrimSpace(ctx.Query("period")); raw != "" {
		period, err := entity.ParseBillingPeriod(raw)
		if err != nil {
			c.badPeriod(ctx)
			return
		}
		input.ForMonth = &period
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(output))
}

// Create handles POST /payments requests.
func (c *PaymentController) Create(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingPaymentFields),
			Details: err.Error(),
		})
		return
	}

	residentID, err := uuid.Parse(req.ResidentID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid resident ID format",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		c.badDate(ctx, "payment_date")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), payment.CreatePaymentInput{
		ResidentID:         residentID,
		Amount:             req.Amount,
		PaymentDate:        paymentDate,
		ForMonth:           req.ForMonth,
		PaymentMethod:      entity.PaymentMethod(req.PaymentMethod),
		ProcessorReference: req.ProcessorReference,
		Notes:              req.Notes,
		Actor:              middleware.GetActorFromContext(ctx),
		IPAddress:          ctx.ClientIP(),
	})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(output.Payment))
}

// Get handles GET /payments/:id requests.
func (c *PaymentController) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payment ID format",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), payment.GetPaymentInput{ID: id})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(output.Payment))
}

// Pending handles GET /payments/pending requests.
// Without a period it reports the current month.
func (c *PaymentController) Pending(ctx *gin.Context) {
	var (
		output *billing.FindPendingPaymentsOutput
		err    error
	)

	if raw := strings.TrimSpace(ctx.Query("period")); raw != "" {
		period, perr := entity.ParseBillingPeriod(raw)
		if perr != nil {
			c.badPeriod(ctx)
			return
		}
		output, err = c.pendingUseCase.Execute(ctx.Request.Context(), billing.FindPendingPaymentsInput{Period: period})
	} else {
		output, err = c.pendingUseCase.PendingForCurrentMonth(ctx.Request.Context(), c.clock)
	}
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPendingPaymentsResponse(output))
}

func (c *PaymentController) badDate(ctx *gin.Context, field string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid " + field + " format. Use YYYY-MM-DD",
		Code:  string(domainerror.ErrCodeInvalidPaymentDate),
	})
}

func (c *PaymentController) badPeriod(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid period format. Use YYYY-MM",
		Code:  string(domainerror.ErrCodeInvalidBillingPeriod),
	})
}

// handlePaymentError handles payment errors and returns appropriate HTTP responses.
func (c *PaymentController) handlePaymentError(ctx *gin.Context, err error) {
	var payErr *domainerror.PaymentError
	if errors.As(err, &payErr) {
		ctx.JSON(c.getStatusCodeForPaymentError(payErr.Code), dto.ErrorResponse{
			Error: payErr.Message,
			Code:  string(payErr.Code),
		})
		return
	}

	slog.Error("Payment request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForPaymentError maps payment error codes to HTTP status codes.
func (c *PaymentController) getStatusCodeForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingPaymentFields,
		domainerror.ErrCodeInvalidPaymentAmount,
		domainerror.ErrCodeInvalidBillingPeriod,
		domainerror.ErrCodeInvalidPaymentMethod,
		domainerror.ErrCodeInvalidPaymentDate:
		return http.StatusBadRequest
	case domainerror.ErrCodePaymentNotFound,
		domainerror.ErrCodePaymentResidentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodePaymentResidentInactive:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
