package cfr

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/models"
)

// Window ограничивает выборку включительно с обеих сторон по календарным датам.
// Нулевые границы означают отсутствие ограничения.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains проверяет попадание календарной даты в окно.
func (w Window) Contains(date time.Time) bool {
	day := DateOnly(date)

	if !w.Start.IsZero() && day.Before(DateOnly(w.Start)) {
		return false
	}
	if !w.End.IsZero() && day.After(DateOnly(w.End)) {
		return false
	}

	return true
}

// DateOnly отбрасывает компонент времени, оставляя календарный день в UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Summary struct {
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	Balance        decimal.Decimal
	CategoryTotals map[uuid.UUID]decimal.Decimal
	TypeTotals     map[models.CategoryType]decimal.Decimal
}

// CategoryIndex строит индекс категорий по идентификатору.
func CategoryIndex(categories []models.Category) map[uuid.UUID]models.Category {
	index := make(map[uuid.UUID]models.Category, len(categories))
	for _, category := range categories {
		index[category.ID] = category
	}
	return index
}

// Aggregate считает итоги по транзакциям в окне: доход, расход, баланс и суммы
// расходов по категориям и типам. Доходные транзакции не участвуют в разбивке
// по категориям. Расход с неизвестным типом категории — ошибка запроса.
func Aggregate(transactions []models.Transaction, categories map[uuid.UUID]models.Category, window Window) (Summary, error) {
	summary := Summary{
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		CategoryTotals: make(map[uuid.UUID]decimal.Decimal),
		TypeTotals:     make(map[models.CategoryType]decimal.Decimal),
	}

	for _, transaction := range transactions {
		if !window.Contains(transaction.Date) {
			continue
		}

		switch transaction.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(transaction.Amount)
			continue
		case models.TransactionTypeExpense:
		default:
			return Summary{}, fmt.Errorf("transaction %s: unknown transaction type %q", transaction.ID, transaction.Type)
		}

		summary.TotalExpense = summary.TotalExpense.Add(transaction.Amount)

		if transaction.CategoryID == nil {
			return Summary{}, fmt.Errorf("transaction %s: %w: expense without category", transaction.ID, ErrUnknownCategoryType)
		}

		category, ok := categories[*transaction.CategoryID]
		if !ok {
			return Summary{}, fmt.Errorf("transaction %s: %w: category %s not found", transaction.ID, ErrUnknownCategoryType, *transaction.CategoryID)
		}

		classification, err := Classify(category)
		if err != nil {
			return Summary{}, fmt.Errorf("transaction %s: %w", transaction.ID, err)
		}

		summary.CategoryTotals[category.ID] = summary.CategoryTotals[category.ID].Add(transaction.Amount)
		summary.TypeTotals[classification.Type] = summary.TypeTotals[classification.Type].Add(transaction.Amount)
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}
