package cfr

import (
	"fmt"
	"sort"
	"time"

	"example.com/budget-tracker/backend/internal/models"
)

type FilterType string

const (
	FilterTypeDay   FilterType = "day"
	FilterTypeWeek  FilterType = "week"
	FilterTypeMonth FilterType = "month"
)

// FilterQuery описывает запрос выборки; нулевое значение поля означает,
// что поле не передано.
type FilterQuery struct {
	Type  FilterType
	Year  int
	Month int
	Week  int
	Day   int
}

type Availability struct {
	Years           []int            `json:"available_years"`
	MonthsByYear    map[int][]int    `json:"available_months"`
	DaysByYearMonth map[string][]int `json:"available_days"`
	HasTransactions bool             `json:"has_transactions"`
}

// BuildAvailability строит индекс доступных периодов по всем транзакциям:
// годы с данными, месяцы внутри года и дни внутри месяца.
func BuildAvailability(transactions []models.Transaction) Availability {
	availability := Availability{
		MonthsByYear:    make(map[int][]int),
		DaysByYearMonth: make(map[string][]int),
		HasTransactions: len(transactions) > 0,
	}

	years := make(map[int]struct{})
	months := make(map[int]map[int]struct{})
	days := make(map[string]map[int]struct{})

	for _, transaction := range transactions {
		date := DateOnly(transaction.Date)
		year := date.Year()
		month := int(date.Month())
		day := date.Day()

		years[year] = struct{}{}

		if months[year] == nil {
			months[year] = make(map[int]struct{})
		}
		months[year][month] = struct{}{}

		key := monthKey(year, month)
		if days[key] == nil {
			days[key] = make(map[int]struct{})
		}
		days[key][day] = struct{}{}
	}

	availability.Years = sortedKeys(years)
	for year, set := range months {
		availability.MonthsByYear[year] = sortedKeys(set)
	}
	for key, set := range days {
		availability.DaysByYearMonth[key] = sortedKeys(set)
	}

	return availability
}

// FilterTransactions возвращает транзакции, попавшие в запрошенный период,
// отсортированные по дате по убыванию; при равных датах сохраняется порядок
// вставки. Неделя N покрывает дни [(N-1)*7+1, N*7]; четвертая неделя
// поглощает остаток месяца после 28-го дня.
func FilterTransactions(transactions []models.Transaction, query FilterQuery) ([]models.Transaction, error) {
	window, err := query.window()
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Transaction, 0)
	for _, transaction := range transactions {
		if window.Contains(transaction.Date) {
			filtered = append(filtered, transaction)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return DateOnly(filtered[i].Date).After(DateOnly(filtered[j].Date))
	})

	return filtered, nil
}

func (q FilterQuery) window() (Window, error) {
	if q.Year == 0 {
		return Window{}, fmt.Errorf("%w: year", ErrMissingFilterField)
	}

	switch q.Type {
	case FilterTypeMonth:
		if q.Month == 0 {
			return Window{}, fmt.Errorf("%w: month", ErrMissingFilterField)
		}
		return monthWindow(q.Year, q.Month), nil

	case FilterTypeWeek:
		if q.Month == 0 {
			return Window{}, fmt.Errorf("%w: month", ErrMissingFilterField)
		}
		if q.Week == 0 {
			return Window{}, fmt.Errorf("%w: week", ErrMissingFilterField)
		}
		if q.Week < 1 || q.Week > 4 {
			return Window{}, fmt.Errorf("%w: week must be between 1 and 4", ErrInvalidFilterField)
		}
		return weekWindow(q.Year, q.Month, q.Week), nil

	case FilterTypeDay:
		if q.Month == 0 {
			return Window{}, fmt.Errorf("%w: month", ErrMissingFilterField)
		}
		if q.Day == 0 {
			return Window{}, fmt.Errorf("%w: day", ErrMissingFilterField)
		}
		day := time.Date(q.Year, time.Month(q.Month), q.Day, 0, 0, 0, 0, time.UTC)
		return Window{Start: day, End: day}, nil

	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidFilterType, q.Type)
	}
}

func monthWindow(year, month int) Window {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, -1)}
}

func weekWindow(year, month, week int) Window {
	firstDay := (week-1)*7 + 1
	lastDay := week * 7
	if week == 4 {
		// Четвертая неделя тянется до конца месяца, а не до 28-го дня.
		lastDay = daysInMonth(year, month)
	}

	return Window{
		Start: time.Date(year, time.Month(month), firstDay, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.Month(month), lastDay, 0, 0, 0, 0, time.UTC),
	}
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
