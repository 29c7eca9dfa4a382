package cfr

import (
	"testing"

	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/models"
)

var tolerance = decimal.NewFromInt(DefaultTolerancePercent)

func budgetFor(categoryType models.CategoryType, value string) models.Budget {
	return models.Budget{CategoryType: categoryType, BudgetedAmount: amount(value), Month: "2024-01"}
}

func resultFor(t *testing.T, results []Result, categoryType models.CategoryType) Result {
	t.Helper()
	for _, result := range results {
		if result.CategoryType == categoryType {
			return result
		}
	}
	t.Fatalf("no result for %s", categoryType)
	return Result{}
}

// TestAnalyzeOrder проверяет фиксированный порядок результатов.
func TestAnalyzeOrder(t *testing.T) {
	results := Analyze(nil, nil, nil, tolerance)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, categoryType := range CategoryTypes {
		if results[i].CategoryType != categoryType {
			t.Fatalf("expected %s at position %d, got %s", categoryType, i, results[i].CategoryType)
		}
	}
}

// TestAnalyzeExplicitBudget проверяет приоритет явной записи бюджета.
func TestAnalyzeExplicitBudget(t *testing.T) {
	incomeValue := amount("5000")
	totals := map[models.CategoryType]decimal.Decimal{
		models.CategoryTypeNeeds: amount("2000"),
	}

	results := Analyze(totals, []models.Budget{budgetFor(models.CategoryTypeNeeds, "2000")}, &incomeValue, tolerance)
	needs := resultFor(t, results, models.CategoryTypeNeeds)

	if !needs.BudgetedAmount.Equal(amount("2000")) {
		t.Fatalf("expected explicit budget 2000, got %s", needs.BudgetedAmount)
	}
	if !needs.DeviationPercentage.IsZero() {
		t.Fatalf("expected zero deviation for actual == budgeted, got %s", needs.DeviationPercentage)
	}
	if needs.Status != StatusWithinTolerance {
		t.Fatalf("expected within_tolerance, got %s", needs.Status)
	}
}

// TestAnalyzeIncomeFallback проверяет вычисление бюджета из дохода 50/30/20.
func TestAnalyzeIncomeFallback(t *testing.T) {
	incomeValue := amount("5000")
	results := Analyze(nil, nil, &incomeValue, tolerance)

	wantBudgets := map[models.CategoryType]string{
		models.CategoryTypeNeeds:   "2500",
		models.CategoryTypeWants:   "1500",
		models.CategoryTypeSavings: "1000",
	}

	for categoryType, want := range wantBudgets {
		result := resultFor(t, results, categoryType)
		if !result.BudgetedAmount.Equal(amount(want)) {
			t.Fatalf("expected %s budget %s, got %s", categoryType, want, result.BudgetedAmount)
		}
	}
}

// TestAnalyzeToleranceBoundary проверяет границы коридора ровно на ±10%.
func TestAnalyzeToleranceBoundary(t *testing.T) {
	cases := []struct {
		actual string
		status Status
	}{
		{"1100", StatusWithinTolerance}, // ровно +10%
		{"1100.001", StatusOvershoot},   // +10.0001%
		{"900", StatusWithinTolerance},  // ровно -10%
		{"899.999", StatusUndershoot},   // -10.0001%
	}

	for _, tc := range cases {
		totals := map[models.CategoryType]decimal.Decimal{
			models.CategoryTypeNeeds: amount(tc.actual),
		}
		results := Analyze(totals, []models.Budget{budgetFor(models.CategoryTypeNeeds, "1000")}, nil, tolerance)
		needs := resultFor(t, results, models.CategoryTypeNeeds)

		if needs.Status != tc.status {
			t.Fatalf("actual %s: expected %s, got %s (deviation %s)", tc.actual, tc.status, needs.Status, needs.DeviationPercentage)
		}
	}
}

// TestAnalyzeZeroBudget проверяет запасные значения при нулевом бюджете.
func TestAnalyzeZeroBudget(t *testing.T) {
	results := Analyze(nil, nil, nil, tolerance)
	needs := resultFor(t, results, models.CategoryTypeNeeds)
	if needs.Status != StatusWithinTolerance || !needs.DeviationPercentage.IsZero() {
		t.Fatalf("expected within_tolerance with zero deviation, got %s / %s", needs.Status, needs.DeviationPercentage)
	}

	totals := map[models.CategoryType]decimal.Decimal{
		models.CategoryTypeWants: amount("50"),
	}
	results = Analyze(totals, nil, nil, tolerance)
	wants := resultFor(t, results, models.CategoryTypeWants)
	if wants.Status != StatusOvershoot {
		t.Fatalf("expected overshoot for spend against zero budget, got %s", wants.Status)
	}
	if !wants.DeviationPercentage.Equal(amount("100")) {
		t.Fatalf("expected deviation 100 for zero budget, got %s", wants.DeviationPercentage)
	}
}

// TestAnalyzeScenario проверяет сквозной сценарий с доходом 5000.
func TestAnalyzeScenario(t *testing.T) {
	incomeValue := amount("5000")
	totals := map[models.CategoryType]decimal.Decimal{
		models.CategoryTypeNeeds: amount("1000"),
		models.CategoryTypeWants: amount("400"),
	}

	results := Analyze(totals, nil, &incomeValue, tolerance)

	needs := resultFor(t, results, models.CategoryTypeNeeds)
	if !needs.DeviationPercentage.Equal(amount("-60")) || needs.Status != StatusUndershoot {
		t.Fatalf("needs: expected -60%% undershoot, got %s %s", needs.DeviationPercentage, needs.Status)
	}

	wants := resultFor(t, results, models.CategoryTypeWants)
	if wants.Status != StatusUndershoot {
		t.Fatalf("wants: expected undershoot, got %s", wants.Status)
	}
	if wants.DeviationPercentage.Round(1).String() != "-73.3" {
		t.Fatalf("wants: expected deviation about -73.3, got %s", wants.DeviationPercentage)
	}

	savings := resultFor(t, results, models.CategoryTypeSavings)
	if !savings.DeviationPercentage.Equal(amount("-100")) || savings.Status != StatusUndershoot {
		t.Fatalf("savings: expected -100%% undershoot, got %s %s", savings.DeviationPercentage, savings.Status)
	}
}

// TestAnalyzeCustomTolerance проверяет настраиваемую ширину коридора.
func TestAnalyzeCustomTolerance(t *testing.T) {
	totals := map[models.CategoryType]decimal.Decimal{
		models.CategoryTypeNeeds: amount("1150"),
	}
	budgets := []models.Budget{budgetFor(models.CategoryTypeNeeds, "1000")}

	wide := decimal.NewFromInt(20)
	needs := resultFor(t, Analyze(totals, budgets, nil, wide), models.CategoryTypeNeeds)
	if needs.Status != StatusWithinTolerance {
		t.Fatalf("expected +15%% within wide tolerance, got %s", needs.Status)
	}

	needs = resultFor(t, Analyze(totals, budgets, nil, tolerance), models.CategoryTypeNeeds)
	if needs.Status != StatusOvershoot {
		t.Fatalf("expected +15%% overshoot with default tolerance, got %s", needs.Status)
	}
}
