package handlers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/models"
)

// TestWriteTransactionsCSV проверяет формат CSV-выгрузки транзакций.
func TestWriteTransactionsCSV(t *testing.T) {
	categoryID := uuid.New()
	description := "weekly shopping"
	transactions := []models.Transaction{
		{
			ID:          uuid.New(),
			Amount:      decimal.RequireFromString("125.5"),
			Type:        models.TransactionTypeExpense,
			CategoryID:  &categoryID,
			PersonName:  "Anna Smith",
			PaymentMode: "card",
			Description: &description,
			Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			Amount:      decimal.RequireFromString("3000"),
			Type:        models.TransactionTypeIncome,
			PersonName:  "Anna Smith",
			PaymentMode: "transfer",
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeTransactionsCSV(writer, transactions, map[string]string{categoryID.String(): "Grocery"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 records, got %d lines", len(lines))
	}

	if !strings.Contains(lines[1], "125.50") || !strings.Contains(lines[1], "Grocery") {
		t.Fatalf("unexpected expense record: %s", lines[1])
	}
	if !strings.Contains(lines[2], "3000.00") || strings.Contains(lines[2], "Grocery") {
		t.Fatalf("unexpected income record: %s", lines[2])
	}
}

// TestStringOrEmpty проверяет подстановку пустой строки вместо nil.
func TestStringOrEmpty(t *testing.T) {
	if got := stringOrEmpty(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}

	value := "bank"
	if got := stringOrEmpty(&value); got != "bank" {
		t.Fatalf("expected bank, got %q", got)
	}
}
