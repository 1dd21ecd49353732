package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/residence-hub/backend/internal/application/usecase/expense"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/entrypoint/dto"
	"github.com/residence-hub/backend/internal/integration/entrypoint/middleware"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	createUseCase *expense.CreateExpenseUseCase
	listUseCase   *expense.ListExpensesUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(createUseCase *expense.CreateExpenseUseCase, listUseCase *expense.ListExpensesUseCase) *ExpenseController {
	return &ExpenseController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
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

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingExpenseFields),
			Details: err.Error(),
		})
		return
	}

	date, err := parseDate(req.ExpenseDate)
	if err != nil {
		c.badDate(ctx, "expense_date")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: date,
		Actor:       middleware.GetActorFromContext(ctx),
		IPAddress:   ctx.ClientIP(),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

func (c *ExpenseController) badDate(ctx *gin.Context, field string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid " + field + " format. Use YYYY-MM-DD",
		Code:  string(domainerror.ErrCodeInvalidExpenseDate),
	})
}

// handleExpenseError handles expense errors and returns appropriate HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		// Every expense error code is a validation failure
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	slog.Error("Expense request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
