package cfr

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/budget-tracker/backend/internal/models"
)

// TestComposeDashboard проверяет сквозную сводку за месяц.
func TestComposeDashboard(t *testing.T) {
	grocery := models.Category{ID: uuid.New(), Name: "Grocery", Type: models.CategoryTypeNeeds}
	travel := models.Category{ID: uuid.New(), Name: "Travel", Type: models.CategoryTypeWants}
	categories := []models.Category{grocery, travel}

	incomeValue := amount("5000")
	profile := models.Profile{ID: uuid.New(), Currency: "USD", MonthlyIncome: &incomeValue}

	transactions := []models.Transaction{
		income("5000", date(2024, time.January, 1)),
		expense("1000", grocery.ID, date(2024, time.January, 10)),
		expense("400", travel.ID, date(2024, time.January, 15)),
		expense("999", grocery.ID, date(2024, time.February, 2)), // вне месяца
	}

	dashboard, err := ComposeDashboard(profile, categories, transactions, nil, "2024-01", tolerance)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !dashboard.TotalIncome.Equal(amount("5000")) {
		t.Fatalf("expected income 5000, got %s", dashboard.TotalIncome)
	}
	if !dashboard.TotalExpense.Equal(amount("1400")) {
		t.Fatalf("expected expense 1400, got %s", dashboard.TotalExpense)
	}
	if !dashboard.Balance.Equal(amount("3600")) {
		t.Fatalf("expected balance 3600, got %s", dashboard.Balance)
	}

	if len(dashboard.Analysis) != 3 {
		t.Fatalf("expected 3 CFR results, got %d", len(dashboard.Analysis))
	}
	for _, result := range dashboard.Analysis {
		if result.Status != StatusUndershoot {
			t.Fatalf("%s: expected undershoot, got %s", result.CategoryType, result.Status)
		}
	}

	if len(dashboard.CategorySpending) != 2 {
		t.Fatalf("expected 2 categories with spend, got %d", len(dashboard.CategorySpending))
	}
	if !dashboard.CategorySpending["Grocery"].Equal(amount("1000")) {
		t.Fatalf("expected Grocery 1000, got %s", dashboard.CategorySpending["Grocery"])
	}
}

// TestComposeDashboardBudgetForOtherMonthIgnored проверяет отбор бюджетов по месяцу.
func TestComposeDashboardBudgetForOtherMonthIgnored(t *testing.T) {
	grocery := models.Category{ID: uuid.New(), Name: "Grocery", Type: models.CategoryTypeNeeds}
	profile := models.Profile{ID: uuid.New(), Currency: "USD"}

	budgets := []models.Budget{
		{CategoryType: models.CategoryTypeNeeds, BudgetedAmount: amount("1000"), Month: "2024-01"},
		{CategoryType: models.CategoryTypeNeeds, BudgetedAmount: amount("9999"), Month: "2024-02"},
	}

	transactions := []models.Transaction{
		expense("1000", grocery.ID, date(2024, time.January, 10)),
	}

	dashboard, err := ComposeDashboard(profile, []models.Category{grocery}, transactions, budgets, "2024-01", tolerance)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	needs := dashboard.Analysis[0]
	if !needs.BudgetedAmount.Equal(amount("1000")) {
		t.Fatalf("expected January budget 1000, got %s", needs.BudgetedAmount)
	}
	if needs.Status != StatusWithinTolerance {
		t.Fatalf("expected within_tolerance, got %s", needs.Status)
	}
}

// TestComposeDashboardInvalidMonth проверяет ошибку формата месяца.
func TestComposeDashboardInvalidMonth(t *testing.T) {
	_, err := ComposeDashboard(models.Profile{}, nil, nil, nil, "2024/01", tolerance)
	if !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

// TestMonthWindow проверяет границы календарного месяца.
func TestMonthWindow(t *testing.T) {
	window, err := MonthWindow("2024-02")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !window.Start.Equal(date(2024, time.February, 1)) {
		t.Fatalf("unexpected start: %s", window.Start)
	}
	if !window.End.Equal(date(2024, time.February, 29)) {
		t.Fatalf("unexpected end: %s", window.End)
	}

	if !window.Contains(date(2024, time.February, 29)) {
		t.Fatal("expected boundary day to be inside the window")
	}
	if window.Contains(date(2024, time.March, 1)) {
		t.Fatal("expected March 1 to be outside the window")
	}
}
