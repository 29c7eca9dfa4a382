package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/cfr"
	"example.com/budget-tracker/backend/internal/repository"
)

type DashboardHandler struct {
	Profiles     *repository.ProfileRepository
	Categories   *repository.CategoryRepository
	Transactions *repository.TransactionRepository
	Budgets      *repository.BudgetRepository
	Tolerance    decimal.Decimal
}

// NewDashboardHandler создает обработчик сводки и CFR-анализа.
func NewDashboardHandler(
	profiles *repository.ProfileRepository,
	categories *repository.CategoryRepository,
	transactions *repository.TransactionRepository,
	budgets *repository.BudgetRepository,
	tolerancePercent int,
) *DashboardHandler {
	return &DashboardHandler{
		Profiles:     profiles,
		Categories:   categories,
		Transactions: transactions,
		Budgets:      budgets,
		Tolerance:    decimal.NewFromInt(int64(tolerancePercent)),
	}
}

type DashboardResponse struct {
	Month            string                     `json:"month"`
	TotalIncome      decimal.Decimal            `json:"total_income"`
	TotalExpense     decimal.Decimal            `json:"total_expense"`
	Balance          decimal.Decimal            `json:"balance"`
	MonthlyIncome    *decimal.Decimal           `json:"monthly_income,omitempty"`
	Analysis         []cfr.Result               `json:"cfr_analysis"`
	CategorySpending map[string]decimal.Decimal `json:"category_wise_spending"`
}

type CFRAnalysisResponse struct {
	Month    string       `json:"month"`
	Analysis []cfr.Result `json:"analysis"`
}

// Dashboard возвращает сводку за месяц: итоги, CFR-анализ и траты по категориям.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		month = cfr.CurrentMonth(time.Now())
	}

	dashboard, err := h.compose(c, month)
	if err != nil {
		return h.composeError(c, err)
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Month:            dashboard.Month,
		TotalIncome:      dashboard.TotalIncome,
		TotalExpense:     dashboard.TotalExpense,
		Balance:          dashboard.Balance,
		MonthlyIncome:    dashboard.MonthlyIncome,
		Analysis:         dashboard.Analysis,
		CategorySpending: dashboard.CategorySpending,
	})
}

// CFRAnalysis возвращает CFR-анализ за месяц.
func (h *DashboardHandler) CFRAnalysis(c echo.Context) error {
	month := c.Param("month")

	dashboard, err := h.compose(c, month)
	if err != nil {
		return h.composeError(c, err)
	}

	return c.JSON(http.StatusOK, CFRAnalysisResponse{
		Month:    dashboard.Month,
		Analysis: dashboard.Analysis,
	})
}

func (h *DashboardHandler) compose(c echo.Context, month string) (cfr.Dashboard, error) {
	if _, err := cfr.MonthWindow(month); err != nil {
		return cfr.Dashboard{}, err
	}

	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return cfr.Dashboard{}, err
	}

	ctx := c.Request().Context()

	categories, err := h.Categories.List(ctx)
	if err != nil {
		return cfr.Dashboard{}, err
	}

	transactions, err := h.Transactions.ListByProfile(ctx, profile.ID)
	if err != nil {
		return cfr.Dashboard{}, err
	}

	budgets, err := h.Budgets.ListByMonth(ctx, profile.ID, month)
	if err != nil {
		return cfr.Dashboard{}, err
	}

	return cfr.ComposeDashboard(profile, categories, transactions, budgets, month, h.Tolerance)
}

func (h *DashboardHandler) composeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(c, "profile not found")
	case errors.Is(err, cfr.ErrInvalidMonth):
		return badRequest(c, "month must be in YYYY-MM format")
	case errors.Is(err, cfr.ErrUnknownCategoryType):
		return badRequest(c, err.Error())
	default:
		return serverError(c)
	}
}
