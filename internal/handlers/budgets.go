package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/auth"
	"example.com/budget-tracker/backend/internal/cfr"
	"example.com/budget-tracker/backend/internal/models"
	"example.com/budget-tracker/backend/internal/notifications"
	"example.com/budget-tracker/backend/internal/repository"
)

type BudgetHandler struct {
	Budgets  *repository.BudgetRepository
	Profiles *repository.ProfileRepository
	Hub      *notifications.Hub
}

// NewBudgetHandler создает обработчик бюджетов.
func NewBudgetHandler(budgets *repository.BudgetRepository, profiles *repository.ProfileRepository, hub *notifications.Hub) *BudgetHandler {
	return &BudgetHandler{
		Budgets:  budgets,
		Profiles: profiles,
		Hub:      hub,
	}
}

type UpsertBudgetRequest struct {
	CategoryType   string `json:"category_type" validate:"required,oneof=needs wants savings"`
	BudgetedAmount string `json:"budgeted_amount" validate:"required"`
	Month          string `json:"month" validate:"required"`
}

// Upsert создает или обновляет бюджет типа категории на месяц.
func (h *BudgetHandler) Upsert(c echo.Context) error {
	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return profileError(c, err)
	}

	var req UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	if _, err := cfr.MonthWindow(req.Month); err != nil {
		return badRequest(c, "month must be in YYYY-MM format")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.BudgetedAmount))
	if err != nil || amount.IsNegative() {
		return badRequest(c, "budgeted_amount must be a non-negative decimal")
	}

	budget, err := h.Budgets.Upsert(c.Request().Context(), models.Budget{
		ProfileID:      profile.ID,
		CategoryType:   models.CategoryType(req.CategoryType),
		BudgetedAmount: amount,
		Month:          req.Month,
	})
	if err != nil {
		return serverError(c)
	}

	h.Hub.Publish(profile.ID, notifications.Event{
		Type: notifications.EventBudgetUpdated,
		Data: map[string]string{
			"category_type":   string(budget.CategoryType),
			"budgeted_amount": budget.BudgetedAmount.String(),
			"month":           budget.Month,
		},
	})

	return c.JSON(http.StatusOK, budget)
}

// ListByMonth возвращает бюджеты профиля на месяц.
func (h *BudgetHandler) ListByMonth(c echo.Context) error {
	profile, err := requestProfile(c, h.Profiles)
	if err != nil {
		return profileError(c, err)
	}

	month := c.Param("month")
	if _, err := cfr.MonthWindow(month); err != nil {
		return badRequest(c, "month must be in YYYY-MM format")
	}

	budgets, err := h.Budgets.ListByMonth(c.Request().Context(), profile.ID, month)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Budget{"budgets": budgets})
}

// requestProfile загружает профиль семейной группы текущего пользователя.
func requestProfile(c echo.Context, profiles *repository.ProfileRepository) (models.Profile, error) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return models.Profile{}, repository.ErrNotFound
	}

	return profiles.GetForUser(c.Request().Context(), userID)
}

func profileError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "profile not found")
	}
	return serverError(c)
}
