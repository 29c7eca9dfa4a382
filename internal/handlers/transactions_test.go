package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"example.com/budget-tracker/backend/internal/cfr"
)

func filterContext(t *testing.T, query string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest("GET", "/api/transactions/filtered?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

// TestParseFilterQuery проверяет разбор query-параметров выборки.
func TestParseFilterQuery(t *testing.T) {
	query, err := parseFilterQuery(filterContext(t, "filter_type=week&year=2024&month=3&week=4"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if query.Type != cfr.FilterTypeWeek {
		t.Fatalf("unexpected filter type: %s", query.Type)
	}
	if query.Year != 2024 || query.Month != 3 || query.Week != 4 {
		t.Fatalf("unexpected query: %+v", query)
	}
	if query.Day != 0 {
		t.Fatalf("expected day to stay unset, got %d", query.Day)
	}
}

// TestParseFilterQueryInvalidNumber проверяет ошибку при нечисловом параметре.
func TestParseFilterQueryInvalidNumber(t *testing.T) {
	if _, err := parseFilterQuery(filterContext(t, "filter_type=month&year=twenty")); err == nil {
		t.Fatal("expected error for non-numeric year")
	}
}

// TestParseFilterQueryMissingFields проверяет, что пустые параметры остаются нулями.
func TestParseFilterQueryMissingFields(t *testing.T) {
	query, err := parseFilterQuery(filterContext(t, "filter_type=day"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if query.Year != 0 || query.Month != 0 || query.Week != 0 || query.Day != 0 {
		t.Fatalf("expected all fields unset, got %+v", query)
	}
}
