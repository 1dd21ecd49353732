package dto

import (
	"github.com/residence-hub/backend/internal/application/usecase/analytics"
)

// CategoryAmountResponse is one slice of a category breakdown.
type CategoryAmountResponse struct {
	Category   string  `json:"category"`
	Amount     string  `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// DateRangeResponse is an inclusive window of calendar days.
type DateRangeResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// FinancialSummaryResponse represents the revenue and expense summary.
type FinancialSummaryResponse struct {
	Period             DateRangeResponse        `json:"period"`
	TotalRevenue       string                   `json:"total_revenue"`
	TotalExpenses      string                   `json:"total_expenses"`
	NetProfit          string                   `json:"net_profit"`
	ProfitMargin       float64                  `json:"profit_margin"`
	PaymentCount       int                      `json:"payment_count"`
	ExpenseCount       int                      `json:"expense_count"`
	RevenueByCategory  []CategoryAmountResponse `json:"revenue_by_category"`
	ExpensesByCategory []CategoryAmountResponse `json:"expenses_by_category"`
}

// MonthlyPointResponse represents one month of a series.
type MonthlyPointResponse struct {
	Period    string `json:"period"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Revenue   string `json:"revenue"`
	Expenses  string `json:"expenses"`
	Net       string `json:"net"`
}

// SeriesResponse represents a month-by-month series, oldest first.
type SeriesResponse struct {
	Months []MonthlyPointResponse `json:"months"`
}

// RevenueAnalyticsResponse represents revenue growth over a window.
type RevenueAnalyticsResponse struct {
	Period                DateRangeResponse      `json:"period"`
	PreviousPeriod        DateRangeResponse      `json:"previous_period"`
	TotalRevenue          string                 `json:"total_revenue"`
	PreviousRevenue       string                 `json:"previous_revenue"`
	GrowthPercentage      float64                `json:"growth_percentage"`
	AverageMonthlyRevenue string                 `json:"average_monthly_revenue"`
	PaymentCount          int                    `json:"payment_count"`
	Months                []MonthlyPointResponse `json:"months"`
}

// DashboardResponse represents the occupancy and collection overview.
type DashboardResponse struct {
	Period               string  `json:"period"`
	TotalResidents       int64   `json:"total_residents"`
	ActiveResidents      int64   `json:"active_residents"`
	TotalRooms           int     `json:"total_rooms"`
	OccupiedRooms        int64   `json:"occupied_rooms"`
	VacantRooms          int64   `json:"vacant_rooms"`
	OccupancyRate        float64 `json:"occupancy_rate"`
	ExpectedRevenue      string  `json:"expected_revenue"`
	CurrentPeriodRevenue string  `json:"current_period_revenue"`
	PendingCount         int     `json:"pending_count"`
	OutstandingAmount    string  `json:"outstanding_amount"`
}

func toDateRangeResponse(r analytics.DateRange) DateRangeResponse {
	return DateRangeResponse{StartDate: Date(r.Start), EndDate: Date(r.End)}
}

func toCategoryResponses(items []analytics.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, len(items))
	for i, item := range items {
		out[i] = CategoryAmountResponse{
			Category:   item.Category,
			Amount:     Money(item.Amount),
			Percentage: Round2(item.Percentage),
		}
	}
	return out
}

func toMonthlyPointResponses(points []analytics.MonthlyPoint) []MonthlyPointResponse {
	out := make([]MonthlyPointResponse, len(points))
	for i, p := range points {
		out[i] = MonthlyPointResponse{
			Period:    Period(p.Period),
			Label:     p.Label,
			StartDate: Date(p.Start),
			EndDate:   Date(p.End),
			Revenue:   Money(p.Revenue),
			Expenses:  Money(p.Expenses),
			Net:       Money(p.Net),
		}
	}
	return out
}

// ToFinancialSummaryResponse converts a FinancialSummary to its DTO.
func ToFinancialSummaryResponse(s *analytics.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		Period:             toDateRangeResponse(s.Range),
		TotalRevenue:       Money(s.TotalRevenue),
		TotalExpenses:      Money(s.TotalExpenses),
		NetProfit:          Money(s.NetProfit),
		ProfitMargin:       Round2(s.ProfitMargin),
		PaymentCount:       s.PaymentCount,
		ExpenseCount:       s.ExpenseCount,
		RevenueByCategory:  toCategoryResponses(s.RevenueByCategory),
		ExpensesByCategory: toCategoryResponses(s.ExpensesByCategory),
	}
}

// ToSeriesResponse converts a SeriesOutput to its DTO.
func ToSeriesResponse(output *analytics.SeriesOutput) SeriesResponse {
	return SeriesResponse{Months: toMonthlyPointResponses(output.Points)}
}

// ToRevenueAnalyticsResponse converts a GetRevenueAnalyticsOutput to its DTO.
func ToRevenueAnalyticsResponse(output *analytics.GetRevenueAnalyticsOutput) RevenueAnalyticsResponse {
	return RevenueAnalyticsResponse{
		Period:                toDateRangeResponse(output.Range),
		PreviousPeriod:        toDateRangeResponse(output.PreviousRange),
		TotalRevenue:          Money(output.TotalRevenue),
		PreviousRevenue:       Money(output.PreviousRevenue),
		GrowthPercentage:      Round2(output.GrowthPercentage),
		AverageMonthlyRevenue: Money(output.AverageMonthlyRevenue),
		PaymentCount:          output.PaymentCount,
		Months:                toMonthlyPointResponses(output.Months),
	}
}

// ToDashboardResponse converts a GetDashboardOutput to its DTO.
func ToDashboardResponse(output *analytics.GetDashboardOutput) DashboardResponse {
	return DashboardResponse{
		Period:               Period(output.Period),
		TotalResidents:       output.TotalResidents,
		ActiveResidents:      output.ActiveResidents,
		TotalRooms:           output.TotalRooms,
		OccupiedRooms:        output.OccupiedRooms,
		VacantRooms:          output.VacantRooms,
		OccupancyRate:        Round2(output.OccupancyRate),
		ExpectedRevenue:      Money(output.ExpectedRevenue),
		CurrentPeriodRevenue: Money(output.CurrentPeriodRevenue),
		PendingCount:         output.PendingCount,
		OutstandingAmount:    Money(output.OutstandingAmount),
	}
}
