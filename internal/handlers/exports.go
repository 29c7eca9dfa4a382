package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/budget-tracker/backend/internal/models"
)

const timeLayout = time.RFC3339

// ExportJSON выгружает транзакции профиля в JSON-файл.
func (h *TransactionHandler) ExportJSON(c echo.Context) error {
	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return profileError(c, err)
	}

	transactions, err := h.Transactions.ListByProfile(c.Request().Context(), profile.ID)
	if err != nil {
		return serverError(c)
	}

	filename := "transactions-" + profile.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, map[string][]models.Transaction{"transactions": transactions})
}

// ExportCSV выгружает транзакции профиля в CSV-файл.
func (h *TransactionHandler) ExportCSV(c echo.Context) error {
	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return profileError(c, err)
	}

	ctx := c.Request().Context()

	transactions, err := h.Transactions.ListByProfile(ctx, profile.ID)
	if err != nil {
		return serverError(c)
	}

	categories, err := h.Categories.List(ctx)
	if err != nil {
		return serverError(c)
	}

	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID.String()] = category.Name
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeTransactionsCSV(writer, transactions, names); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "transactions-" + profile.ID.String() + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeTransactionsCSV(writer *csv.Writer, transactions []models.Transaction, categoryNames map[string]string) error {
	header := []string{
		"transaction_id",
		"date",
		"transaction_type",
		"amount",
		"category",
		"person_name",
		"payment_mode",
		"bank_app",
		"description",
		"created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, transaction := range transactions {
		categoryName := ""
		if transaction.CategoryID != nil {
			categoryName = categoryNames[transaction.CategoryID.String()]
		}

		record := []string{
			transaction.ID.String(),
			transaction.Date.Format(dateLayout),
			string(transaction.Type),
			transaction.Amount.StringFixed(2),
			categoryName,
			transaction.PersonName,
			transaction.PaymentMode,
			stringOrEmpty(transaction.BankApp),
			stringOrEmpty(transaction.Description),
			transaction.CreatedAt.Format(timeLayout),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
