package cfr

import (
	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/models"
)

type Status string

const (
	StatusWithinTolerance Status = "within_tolerance"
	StatusOvershoot       Status = "overshoot"
	StatusUndershoot      Status = "undershoot"
)

// DefaultTolerancePercent — ширина допустимого коридора отклонения по умолчанию.
const DefaultTolerancePercent = 10

var hundred = decimal.NewFromInt(100)

type Result struct {
	CategoryType          models.CategoryType `json:"category_type"`
	RecommendedPercentage int64               `json:"recommended_percentage"`
	BudgetedAmount        decimal.Decimal     `json:"budgeted_amount"`
	ActualAmount          decimal.Decimal     `json:"actual_amount"`
	DeviationPercentage   decimal.Decimal     `json:"deviation_percentage"`
	Status                Status              `json:"status"`
}

// Analyze сравнивает фактические расходы с бюджетом по каждому типу категории.
// Бюджет берется из явной записи на месяц, иначе выводится из месячного дохода
// по рекомендованному проценту, иначе равен нулю. Порядок вывода фиксирован:
// needs, wants, savings.
func Analyze(typeTotals map[models.CategoryType]decimal.Decimal, budgets []models.Budget, monthlyIncome *decimal.Decimal, tolerancePercent decimal.Decimal) []Result {
	explicit := make(map[models.CategoryType]decimal.Decimal, len(budgets))
	for _, budget := range budgets {
		explicit[budget.CategoryType] = budget.BudgetedAmount
	}

	results := make([]Result, 0, len(CategoryTypes))
	for _, categoryType := range CategoryTypes {
		percentage, err := RecommendedPercentage(categoryType)
		if err != nil {
			continue // CategoryTypes содержит только известные типы
		}

		budgeted, ok := explicit[categoryType]
		if !ok {
			budgeted = decimal.Zero
			if monthlyIncome != nil {
				budgeted = monthlyIncome.Mul(decimal.NewFromInt(percentage)).Div(hundred)
			}
		}

		actual := typeTotals[categoryType]
		results = append(results, analyzeType(categoryType, percentage, budgeted, actual, tolerancePercent))
	}

	return results
}

func analyzeType(categoryType models.CategoryType, percentage int64, budgeted, actual, tolerancePercent decimal.Decimal) Result {
	result := Result{
		CategoryType:          categoryType,
		RecommendedPercentage: percentage,
		BudgetedAmount:        budgeted,
		ActualAmount:          actual,
	}

	if budgeted.IsZero() {
		// Нулевой бюджет: деление невозможно, перерасход помечаем условными 100%.
		if actual.IsZero() {
			result.DeviationPercentage = decimal.Zero
			result.Status = StatusWithinTolerance
		} else {
			result.DeviationPercentage = hundred
			result.Status = StatusOvershoot
		}
		return result
	}

	deviation := actual.Sub(budgeted).Div(budgeted).Mul(hundred)
	result.DeviationPercentage = deviation

	switch {
	case deviation.GreaterThan(tolerancePercent):
		result.Status = StatusOvershoot
	case deviation.LessThan(tolerancePercent.Neg()):
		result.Status = StatusUndershoot
	default:
		result.Status = StatusWithinTolerance
	}

	return result
}
