package cfr

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/models"
)

const monthLayout = "2006-01"

type Dashboard struct {
	Month            string
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	Balance          decimal.Decimal
	MonthlyIncome    *decimal.Decimal
	Analysis         []Result
	CategorySpending map[string]decimal.Decimal
}

// MonthWindow превращает месяц в формате YYYY-MM в календарное окно.
func MonthWindow(month string) (Window, error) {
	start, err := time.ParseInLocation(monthLayout, month, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}

	return Window{Start: start, End: start.AddDate(0, 1, -1)}, nil
}

// CurrentMonth возвращает текущий месяц в формате YYYY-MM.
func CurrentMonth(now time.Time) string {
	return now.UTC().Format(monthLayout)
}

// ComposeDashboard собирает сводку за месяц: итоги, CFR-анализ и траты по
// категориям. Функция чистая — все данные приходят аргументами, побочных
// эффектов нет.
func ComposeDashboard(
	profile models.Profile,
	categories []models.Category,
	transactions []models.Transaction,
	budgets []models.Budget,
	month string,
	tolerancePercent decimal.Decimal,
) (Dashboard, error) {
	window, err := MonthWindow(month)
	if err != nil {
		return Dashboard{}, err
	}

	index := CategoryIndex(categories)
	summary, err := Aggregate(transactions, index, window)
	if err != nil {
		return Dashboard{}, err
	}

	monthBudgets := make([]models.Budget, 0, len(budgets))
	for _, budget := range budgets {
		if budget.Month == month {
			monthBudgets = append(monthBudgets, budget)
		}
	}

	spending := make(map[string]decimal.Decimal)
	for categoryID, amount := range summary.CategoryTotals {
		if amount.IsZero() {
			continue
		}
		category, ok := index[categoryID]
		if !ok {
			continue
		}
		spending[category.Name] = spending[category.Name].Add(amount)
	}

	return Dashboard{
		Month:            month,
		TotalIncome:      summary.TotalIncome,
		TotalExpense:     summary.TotalExpense,
		Balance:          summary.Balance,
		MonthlyIncome:    profile.MonthlyIncome,
		Analysis:         Analyze(summary.TypeTotals, monthBudgets, profile.MonthlyIncome, tolerancePercent),
		CategorySpending: spending,
	}, nil
}
