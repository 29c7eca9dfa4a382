package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/cfr"
	"example.com/budget-tracker/backend/internal/models"
	"example.com/budget-tracker/backend/internal/notifications"
	"example.com/budget-tracker/backend/internal/repository"
)

const dateLayout = "2006-01-02"

// errInternal помечает сбой, который нельзя показывать клиенту как ошибку запроса.
var errInternal = errors.New("internal error")

type TransactionHandler struct {
	Transactions *repository.TransactionRepository
	Categories   *repository.CategoryRepository
	Profiles     *repository.ProfileRepository
	Users        *repository.UserRepository
	Hub          *notifications.Hub
}

// NewTransactionHandler создает обработчик транзакций.
func NewTransactionHandler(
	transactions *repository.TransactionRepository,
	categories *repository.CategoryRepository,
	profiles *repository.ProfileRepository,
	users *repository.UserRepository,
	hub *notifications.Hub,
) *TransactionHandler {
	return &TransactionHandler{
		Transactions: transactions,
		Categories:   categories,
		Profiles:     profiles,
		Users:        users,
		Hub:          hub,
	}
}

type TransactionRequest struct {
	Amount      string  `json:"amount" validate:"required"`
	Type        string  `json:"transaction_type" validate:"required,oneof=income expense"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	PersonName  *string `json:"person_name" validate:"omitempty,max=200"`
	PaymentMode string  `json:"payment_mode" validate:"required,max=100"`
	BankApp     *string `json:"bank_app" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Date        string  `json:"date" validate:"required"`
}

// Create добавляет транзакцию в общий профиль семейной группы.
func (h *TransactionHandler) Create(c echo.Context) error {
	user, err := currentUser(c.Request().Context(), c, h.Users)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c)
		}
		return serverError(c)
	}

	profile, err := h.Profiles.GetForUser(c.Request().Context(), user.ID)
	if err != nil {
		return profileError(c, err)
	}

	transaction, err := h.bindTransaction(c, user, profile)
	if err != nil {
		if errors.Is(err, errInternal) {
			return serverError(c)
		}
		return badRequest(c, err.Error())
	}

	created, err := h.Transactions.Create(c.Request().Context(), transaction)
	if err != nil {
		return serverError(c)
	}

	h.publish(profile.ID, notifications.EventTransactionCreated, created)
	return c.JSON(http.StatusCreated, created)
}

// List возвращает все транзакции профиля, свежие даты первыми.
func (h *TransactionHandler) List(c echo.Context) error {
	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return profileError(c, err)
	}

	transactions, err := h.Transactions.ListByProfile(c.Request().Context(), profile.ID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Transaction{"transactions": transactions})
}

// Update изменяет транзакцию профиля.
func (h *TransactionHandler) Update(c echo.Context) error {
	user, err := currentUser(c.Request().Context(), c, h.Users)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c)
		}
		return serverError(c)
	}

	profile, err := h.Profiles.GetForUser(c.Request().Context(), user.ID)
	if err != nil {
		return profileError(c, err)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid transaction id")
	}

	transaction, err := h.bindTransaction(c, user, profile)
	if err != nil {
		if errors.Is(err, errInternal) {
			return serverError(c)
		}
		return badRequest(c, err.Error())
	}
	transaction.ID = transactionID

	updated, err := h.Transactions.Update(c.Request().Context(), transaction)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "transaction not found")
		}
		return serverError(c)
	}

	h.publish(profile.ID, notifications.EventTransactionUpdated, updated)
	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет транзакцию профиля.
func (h *TransactionHandler) Delete(c echo.Context) error {
	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return profileError(c, err)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid transaction id")
	}

	if err := h.Transactions.Delete(c.Request().Context(), profile.ID, transactionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "transaction not found")
		}
		return serverError(c)
	}

	h.Hub.Publish(profile.ID, notifications.Event{
		Type: notifications.EventTransactionDeleted,
		Data: map[string]string{"transaction_id": transactionID.String()},
	})

	return c.NoContent(http.StatusNoContent)
}

// Filtered возвращает транзакции за запрошенный период (день, неделя, месяц).
func (h *TransactionHandler) Filtered(c echo.Context) error {
	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return profileError(c, err)
	}

	query, err := parseFilterQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	transactions, err := h.Transactions.ListByProfile(c.Request().Context(), profile.ID)
	if err != nil {
		return serverError(c)
	}

	filtered, err := cfr.FilterTransactions(transactions, query)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"transactions": filtered,
		"count":        len(filtered),
	})
}

// AvailableFilters возвращает индекс периодов, в которых есть транзакции.
func (h *TransactionHandler) AvailableFilters(c echo.Context) error {
	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return profileError(c, err)
	}

	transactions, err := h.Transactions.ListByProfile(c.Request().Context(), profile.ID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, cfr.BuildAvailability(transactions))
}

func (h *TransactionHandler) bindTransaction(c echo.Context, user models.User, profile models.Profile) (models.Transaction, error) {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return models.Transaction{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Transaction{}, errors.New("validation failed")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return models.Transaction{}, errors.New("amount must be a positive decimal")
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return models.Transaction{}, errors.New("date must be in YYYY-MM-DD format")
	}

	transaction := models.Transaction{
		ProfileID:   profile.ID,
		Amount:      amount,
		Type:        models.TransactionType(req.Type),
		PersonName:  user.FullName(),
		PaymentMode: strings.TrimSpace(req.PaymentMode),
		BankApp:     req.BankApp,
		Description: req.Description,
		Date:        date,
	}

	if req.PersonName != nil && strings.TrimSpace(*req.PersonName) != "" {
		transaction.PersonName = strings.TrimSpace(*req.PersonName)
	}

	switch transaction.Type {
	case models.TransactionTypeExpense:
		if req.CategoryID == nil {
			return models.Transaction{}, errors.New("category_id is required for expense transactions")
		}
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return models.Transaction{}, errors.New("invalid category_id")
		}
		if _, err := h.Categories.GetByID(c.Request().Context(), categoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return models.Transaction{}, errors.New("category not found")
			}
			return models.Transaction{}, errInternal
		}
		transaction.CategoryID = &categoryID

	case models.TransactionTypeIncome:
		// Доход не привязывается к категории расходов.
		transaction.CategoryID = nil
	}

	return transaction, nil
}

func (h *TransactionHandler) publish(profileID uuid.UUID, eventType string, transaction models.Transaction) {
	h.Hub.Publish(profileID, notifications.Event{
		Type: eventType,
		Data: map[string]string{
			"transaction_id": transaction.ID.String(),
			"amount":         transaction.Amount.String(),
			"type":           string(transaction.Type),
			"date":           transaction.Date.Format(dateLayout),
		},
	})
}

// parseFilterQuery собирает запрос выборки из query-параметров.
func parseFilterQuery(c echo.Context) (cfr.FilterQuery, error) {
	query := cfr.FilterQuery{
		Type: cfr.FilterType(strings.TrimSpace(c.QueryParam("filter_type"))),
	}

	for _, field := range []struct {
		name string
		dest *int
	}{
		{"year", &query.Year},
		{"month", &query.Month},
		{"week", &query.Week},
		{"day", &query.Day},
	} {
		raw := strings.TrimSpace(c.QueryParam(field.name))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return cfr.FilterQuery{}, errors.New(field.name + " must be an integer")
		}
		*field.dest = value
	}

	return query, nil
}
