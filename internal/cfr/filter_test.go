package cfr

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/budget-tracker/backend/internal/models"
)

func transactionOn(day time.Time) models.Transaction {
	return models.Transaction{
		ID:     uuid.New(),
		Amount: amount("10"),
		Type:   models.TransactionTypeIncome,
		Date:   day,
	}
}

// TestBuildAvailability проверяет индекс доступных периодов.
func TestBuildAvailability(t *testing.T) {
	transactions := []models.Transaction{
		transactionOn(date(2024, time.January, 5)),
		transactionOn(date(2024, time.March, 12)),
		transactionOn(date(2024, time.March, 12)),
		transactionOn(date(2023, time.December, 31)),
	}

	availability := BuildAvailability(transactions)

	if !availability.HasTransactions {
		t.Fatal("expected has_transactions to be true")
	}
	if !reflect.DeepEqual(availability.Years, []int{2023, 2024}) {
		t.Fatalf("unexpected years: %v", availability.Years)
	}
	if !reflect.DeepEqual(availability.MonthsByYear[2024], []int{1, 3}) {
		t.Fatalf("unexpected months for 2024: %v", availability.MonthsByYear[2024])
	}
	if !reflect.DeepEqual(availability.DaysByYearMonth["2024-03"], []int{12}) {
		t.Fatalf("unexpected days for 2024-03: %v", availability.DaysByYearMonth["2024-03"])
	}
	if !reflect.DeepEqual(availability.DaysByYearMonth["2023-12"], []int{31}) {
		t.Fatalf("unexpected days for 2023-12: %v", availability.DaysByYearMonth["2023-12"])
	}
}

// TestBuildAvailabilityEmpty проверяет индекс на пустом наборе.
func TestBuildAvailabilityEmpty(t *testing.T) {
	availability := BuildAvailability(nil)

	if availability.HasTransactions {
		t.Fatal("expected has_transactions to be false")
	}
	if len(availability.Years) != 0 {
		t.Fatalf("expected no years, got %v", availability.Years)
	}
}

// TestFilterByMonth проверяет выборку за календарный месяц.
func TestFilterByMonth(t *testing.T) {
	inside := transactionOn(date(2024, time.January, 15))
	transactions := []models.Transaction{
		inside,
		transactionOn(date(2024, time.February, 1)),
		transactionOn(date(2023, time.January, 15)),
	}

	filtered, err := FilterTransactions(transactions, FilterQuery{Type: FilterTypeMonth, Year: 2024, Month: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(filtered) != 1 || filtered[0].ID != inside.ID {
		t.Fatalf("expected exactly the January 2024 transaction, got %d", len(filtered))
	}
}

// TestFilterByWeekFourAbsorbsMonthEnd проверяет, что четвертая неделя
// 31-дневного месяца покрывает дни 22-31, а не только до 28-го.
func TestFilterByWeekFourAbsorbsMonthEnd(t *testing.T) {
	transactions := []models.Transaction{
		transactionOn(date(2024, time.January, 21)),
		transactionOn(date(2024, time.January, 22)),
		transactionOn(date(2024, time.January, 28)),
		transactionOn(date(2024, time.January, 29)),
		transactionOn(date(2024, time.January, 31)),
	}

	filtered, err := FilterTransactions(transactions, FilterQuery{Type: FilterTypeWeek, Year: 2024, Month: 1, Week: 4})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(filtered) != 4 {
		t.Fatalf("expected days 22-31 inclusive (4 transactions), got %d", len(filtered))
	}
	for _, transaction := range filtered {
		if transaction.Date.Day() < 22 {
			t.Fatalf("day %d does not belong to week 4", transaction.Date.Day())
		}
	}
}

// TestFilterByWeekBounds проверяет границы недель 1-3.
func TestFilterByWeekBounds(t *testing.T) {
	transactions := []models.Transaction{
		transactionOn(date(2024, time.January, 7)),
		transactionOn(date(2024, time.January, 8)),
		transactionOn(date(2024, time.January, 14)),
		transactionOn(date(2024, time.January, 15)),
	}

	filtered, err := FilterTransactions(transactions, FilterQuery{Type: FilterTypeWeek, Year: 2024, Month: 1, Week: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(filtered) != 2 {
		t.Fatalf("expected days 8-14 (2 transactions), got %d", len(filtered))
	}
}

// TestFilterByDay проверяет выборку за точную дату.
func TestFilterByDay(t *testing.T) {
	target := transactionOn(date(2024, time.January, 10))
	transactions := []models.Transaction{
		target,
		transactionOn(date(2024, time.January, 11)),
	}

	filtered, err := FilterTransactions(transactions, FilterQuery{Type: FilterTypeDay, Year: 2024, Month: 1, Day: 10})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(filtered) != 1 || filtered[0].ID != target.ID {
		t.Fatalf("expected exactly the January 10 transaction, got %d", len(filtered))
	}
}

// TestFilterOrdering проверяет сортировку по дате по убыванию с сохранением
// порядка вставки при равных датах.
func TestFilterOrdering(t *testing.T) {
	first := transactionOn(date(2024, time.January, 5))
	second := transactionOn(date(2024, time.January, 5))
	latest := transactionOn(date(2024, time.January, 20))

	filtered, err := FilterTransactions([]models.Transaction{first, second, latest}, FilterQuery{Type: FilterTypeMonth, Year: 2024, Month: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if filtered[0].ID != latest.ID {
		t.Fatal("expected most recent transaction first")
	}
	if filtered[1].ID != first.ID || filtered[2].ID != second.ID {
		t.Fatal("expected insertion order preserved for equal dates")
	}
}

// TestFilterValidation проверяет ошибки неверного типа и отсутствующих полей.
func TestFilterValidation(t *testing.T) {
	if _, err := FilterTransactions(nil, FilterQuery{Type: "year", Year: 2024}); !errors.Is(err, ErrInvalidFilterType) {
		t.Fatalf("expected ErrInvalidFilterType, got %v", err)
	}

	if _, err := FilterTransactions(nil, FilterQuery{Type: FilterTypeMonth}); !errors.Is(err, ErrMissingFilterField) {
		t.Fatalf("expected ErrMissingFilterField for year, got %v", err)
	}

	if _, err := FilterTransactions(nil, FilterQuery{Type: FilterTypeMonth, Year: 2024}); !errors.Is(err, ErrMissingFilterField) {
		t.Fatalf("expected ErrMissingFilterField for month, got %v", err)
	}

	if _, err := FilterTransactions(nil, FilterQuery{Type: FilterTypeWeek, Year: 2024, Month: 1}); !errors.Is(err, ErrMissingFilterField) {
		t.Fatalf("expected ErrMissingFilterField for week, got %v", err)
	}

	if _, err := FilterTransactions(nil, FilterQuery{Type: FilterTypeDay, Year: 2024, Month: 1}); !errors.Is(err, ErrMissingFilterField) {
		t.Fatalf("expected ErrMissingFilterField for day, got %v", err)
	}

	if _, err := FilterTransactions(nil, FilterQuery{Type: FilterTypeWeek, Year: 2024, Month: 1, Week: 5}); !errors.Is(err, ErrInvalidFilterField) {
		t.Fatalf("expected ErrInvalidFilterField for week 5, got %v", err)
	}
}

// TestFilterFebruaryWeekFour проверяет четвертую неделю короткого месяца.
func TestFilterFebruaryWeekFour(t *testing.T) {
	transactions := []models.Transaction{
		transactionOn(date(2024, time.February, 29)), // високосный год
		transactionOn(date(2024, time.February, 22)),
		transactionOn(date(2024, time.February, 21)),
	}

	filtered, err := FilterTransactions(transactions, FilterQuery{Type: FilterTypeWeek, Year: 2024, Month: 2, Week: 4})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(filtered) != 2 {
		t.Fatalf("expected days 22-29, got %d transactions", len(filtered))
	}
}
