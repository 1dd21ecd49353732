package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/application/usecase/payment"
	"github.com/residence-hub/backend/internal/application/usecase/resident"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/entrypoint/dto"
	"github.com/residence-hub/backend/internal/integration/entrypoint/middleware"
)

// ResidentController handles resident endpoints.
type ResidentController struct {
	createUseCase   *resident.CreateResidentUseCase
	getUseCase      *resident.GetResidentUseCase
	listUseCase     *resident.ListResidentsUseCase
	checkoutUseCase *resident.CheckoutResidentUseCase
	historyUseCase  *payment.PaymentHistoryUseCase
}

// NewResidentController creates a new resident controller instance.
func NewResidentController(
	createUseCase *resident.CreateResidentUseCase,
	getUseCase *resident.GetResidentUseCase,
	listUseCase *resident.ListResidentsUseCase,
	checkoutUseCase *resident.CheckoutResidentUseCase,
	historyUseCase *payment.PaymentHistoryUseCase,
) *ResidentController {
	return &ResidentController{
		createUseCase:   createUseCase,
		getUseCase:      getUseCase,
		listUseCase:     listUseCase,
		checkoutUseCase: checkoutUseCase,
		historyUseCase:  historyUseCase,
	}
}

// List handles GET /residents requests.
func (c *ResidentController) List(ctx *gin.Context) {
	input := resident.ListResidentsInput{
		Search: strings.TrimSpace(ctx.Query("search")),
	}

	if raw := ctx.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "active must be true or false",
				Code:  string(domainerror.ErrCodeMissingResidentFields),
			})
			return
		}
		input.ActiveOnly = &active
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleResidentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToResidentListResponse(output))
}

// Create handles POST /residents requests.
func (c *ResidentController) Create(ctx *gin.Context) {
	var req dto.CreateResidentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingResidentFields),
			Details: err.Error(),
		})
		return
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid check_in_date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidCheckInDate),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), resident.CreateResidentInput{
		FullName:       req.FullName,
		IdentityNumber: req.IdentityNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		RoomNumber:     req.RoomNumber,
		CheckInDate:    checkIn,
		MonthlyRent:    req.MonthlyRent,
		Notes:          req.Notes,
		Actor:          middleware.GetActorFromContext(ctx),
		IPAddress:      ctx.ClientIP(),
	})
	if err != nil {
		c.handleResidentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToResidentResponse(output.Resident))
}

// Get handles GET /residents/:id requests.
func (c *ResidentController) Get(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), resident.GetResidentInput{ID: id})
	if err != nil {
		c.handleResidentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToResidentResponse(output.Resident))
}

// Checkout handles POST /residents/:id/checkout requests.
func (c *ResidentController) Checkout(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	// The body is optional
	var req dto.CheckoutResidentRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid request body",
				Code:    string(domainerror.ErrCodeMissingResidentFields),
				Details: err.Error(),
			})
			return
		}
	}

	input := resident.CheckoutResidentInput{
		ID:        id,
		Actor:     middleware.GetActorFromContext(ctx),
		IPAddress: ctx.ClientIP(),
	}
	if req.CheckOutDate != "" {
		date, err := parseDate(req.CheckOutDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid check_out_date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidCheckInDate),
			})
			return
		}
		input.CheckOutDate = date
	}

	output, err := c.checkoutUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleResidentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToResidentResponse(output.Resident))
}

// Payments handles GET /residents/:id/payments requests.
func (c *ResidentController) Payments(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), payment.PaymentHistoryInput{ResidentID: id})
	if err != nil {
		c.handleResidentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentHistoryResponse(output))
}

func (c *ResidentController) parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid resident ID format",
			Code:  string(domainerror.ErrCodeInvalidResidentID),
		})
		return uuid.Nil, false
	}
	return id, true
}

// handleResidentError handles resident errors and returns appropriate HTTP responses.
func (c *ResidentController) handleResidentError(ctx *gin.Context, err error) {
	var resErr *domainerror.ResidentError
	if errors.As(err, &resErr) {
		ctx.JSON(c.getStatusCodeForResidentError(resErr.Code), dto.ErrorResponse{
			Error: resErr.Message,
			Code:  string(resErr.Code),
		})
		return
	}

	slog.Error("Resident request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForResidentError maps resident error codes to HTTP status codes.
func (c *ResidentController) getStatusCodeForResidentError(code domainerror.ResidentErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingResidentFields,
		domainerror.ErrCodeInvalidMonthlyRent,
		domainerror.ErrCodeInvalidCheckInDate,
		domainerror.ErrCodeInvalidResidentID:
		return http.StatusBadRequest
	case domainerror.ErrCodeResidentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicateIdentityNumber,
		domainerror.ErrCodeResidentAlreadyCheckedOut:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
