package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/application/usecase/analytics"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController handles revenue and occupancy reporting endpoints.
type AnalyticsController struct {
	summaryUseCase   *analytics.GetFinancialSummaryUseCase
	monthlyUseCase   *analytics.GetMonthlySeriesUseCase
	seriesUseCase    *analytics.GetRangeSeriesUseCase
	revenueUseCase   *analytics.GetRevenueAnalyticsUseCase
	dashboardUseCase *analytics.GetDashboardUseCase
	clock            adapter.Clock
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	summaryUseCase *analytics.GetFinancialSummaryUseCase,
	monthlyUseCase *analytics.GetMonthlySeriesUseCase,
	seriesUseCase *analytics.GetRangeSeriesUseCase,
	revenueUseCase *analytics.GetRevenueAnalyticsUseCase,
	dashboardUseCase *analytics.GetDashboardUseCase,
	clock adapter.Clock,
) *AnalyticsController {
	return &AnalyticsController{
		summaryUseCase:   summaryUseCase,
		monthlyUseCase:   monthlyUseCase,
		seriesUseCase:    seriesUseCase,
		revenueUseCase:   revenueUseCase,
		dashboardUseCase: dashboardUseCase,
		clock:            clock,
	}
}

// Summary handles GET /analytics/summary requests.
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	start, end, ok := c.dateRange(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), analytics.GetFinancialSummaryInput{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(output.Summary))
}

// Monthly handles GET /analytics/monthly requests.
func (c *AnalyticsController) Monthly(ctx *gin.Context) {
	months, err := strconv.Atoi(ctx.DefaultQuery("months", strconv.Itoa(analytics.DefaultMonthsBack)))
	if err != nil || months < 1 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "months must be a positive number",
			Code:  string(domainerror.ErrCodeInvalidMonthsBack),
		})
		return
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), analytics.GetMonthlySeriesInput{MonthsBack: months})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSeriesResponse(output))
}

// Series handles GET /analytics/series requests.
func (c *AnalyticsController) Series(ctx *gin.Context) {
	start, end, ok := c.dateRange(ctx)
	if !ok {
		return
	}

	output, err := c.seriesUseCase.Execute(ctx.Request.Context(), analytics.GetRangeSeriesInput{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSeriesResponse(output))
}

// Revenue handles GET /analytics/revenue requests.
func (c *AnalyticsController) Revenue(ctx *gin.Context) {
	start, end, ok := c.dateRange(ctx)
	if !ok {
		return
	}

	output, err := c.revenueUseCase.Execute(ctx.Request.Context(), analytics.GetRevenueAnalyticsInput{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRevenueAnalyticsResponse(output))
}

// Dashboard handles GET /analytics/dashboard requests.
func (c *AnalyticsController) Dashboard(ctx *gin.Context) {
	output, err := c.dashboardUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// dateRange reads start_date and end_date. Missing values default to the
// first and last day of the current month. A start after the end is rejected.
func (c *AnalyticsController) dateRange(ctx *gin.Context) (time.Time, time.Time, bool) {
	month := analytics.MonthRange(entity.ResolvePeriod(c.clock.Now().UTC()))
	start, end := month.Start, month.End

	for _, field := range []struct {
		name string
		dst  *time.Time
	}{{"start_date", &start}, {"end_date", &end}} {
		value, ok := optionalDateQuery(ctx, field.name)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid " + field.name + " format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return time.Time{}, time.Time{}, false
		}
		if value != nil {
			*field.dst = *value
		}
	}

	if start.After(end) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "start_date must not be after end_date",
			Code:  string(domainerror.ErrCodeInvalidDateRange),
		})
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// handleAnalyticsError handles analytics errors and returns appropriate HTTP responses.
func (c *AnalyticsController) handleAnalyticsError(ctx *gin.Context, err error) {
	var anlErr *domainerror.AnalyticsError
	if errors.As(err, &anlErr) {
		status := http.StatusBadRequest
		if anlErr.Code == domainerror.ErrCodeAnalyticsInternal {
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: anlErr.Message,
			Code:  string(anlErr.Code),
		})
		return
	}

	slog.Error("Analytics request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
