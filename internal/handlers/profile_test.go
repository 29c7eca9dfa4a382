package handlers

import (
	"testing"

	"github.com/google/uuid"

	"example.com/budget-tracker/backend/internal/models"
)

// TestProfileRequestToProfile проверяет нормализацию полей профиля.
func TestProfileRequestToProfile(t *testing.T) {
	income := " 4500.50 "
	req := ProfileRequest{
		FirstName:     " Anna ",
		LastName:      " Smith ",
		Currency:      "usd",
		Country:       " USA ",
		AccountType:   "family",
		MonthlyIncome: &income,
	}

	profile, err := req.toProfile(uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.FirstName != "Anna" || profile.LastName != "Smith" {
		t.Fatalf("unexpected name: %s %s", profile.FirstName, profile.LastName)
	}
	if profile.Currency != "USD" {
		t.Fatalf("expected currency USD, got %s", profile.Currency)
	}
	if profile.AccountType != models.AccountTypeFamily {
		t.Fatalf("unexpected account type: %s", profile.AccountType)
	}
	if profile.MonthlyIncome == nil || profile.MonthlyIncome.String() != "4500.5" {
		t.Fatalf("unexpected monthly income: %v", profile.MonthlyIncome)
	}
}

// TestProfileRequestNegativeIncome проверяет отказ при отрицательном доходе.
func TestProfileRequestNegativeIncome(t *testing.T) {
	income := "-10"
	req := ProfileRequest{
		FirstName:     "Anna",
		LastName:      "Smith",
		Currency:      "USD",
		Country:       "USA",
		AccountType:   "individual",
		MonthlyIncome: &income,
	}

	if _, err := req.toProfile(uuid.New()); err == nil {
		t.Fatal("expected error for negative monthly income")
	}
}

// TestProfileRequestWithoutIncome проверяет профиль без месячного дохода.
func TestProfileRequestWithoutIncome(t *testing.T) {
	req := ProfileRequest{
		FirstName:   "Anna",
		LastName:    "Smith",
		Currency:    "EUR",
		Country:     "Germany",
		AccountType: "individual",
	}

	profile, err := req.toProfile(uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.MonthlyIncome != nil {
		t.Fatalf("expected nil monthly income, got %v", profile.MonthlyIncome)
	}
}
