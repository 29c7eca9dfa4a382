package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/budget-tracker/backend/internal/auth"
	"example.com/budget-tracker/backend/internal/models"
	"example.com/budget-tracker/backend/internal/repository"
)

// errNotMaster сигнализирует, что операция доступна только мастеру семьи.
var errNotMaster = errors.New("operation requires master account")

type ProfileHandler struct {
	Profiles *repository.ProfileRepository
	Users    *repository.UserRepository
}

// NewProfileHandler создает обработчик профиля.
func NewProfileHandler(profiles *repository.ProfileRepository, users *repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{
		Profiles: profiles,
		Users:    users,
	}
}

type ProfileRequest struct {
	FirstName     string  `json:"first_name" validate:"required,max=100"`
	LastName      string  `json:"last_name" validate:"required,max=100"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	BankAccount   *string `json:"bank_account" validate:"omitempty,max=100"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	Country       string  `json:"country" validate:"required,max=100"`
	AccountType   string  `json:"account_type" validate:"required,oneof=individual family"`
	MonthlyIncome *string `json:"monthly_income" validate:"omitempty"`
}

type FamilyStatusResponse struct {
	IsFamilyMember        bool `json:"is_family_member"`
	IsMaster              bool `json:"is_master"`
	CanAddFamilyMembers   bool `json:"can_add_family_members"`
	CanChangeToIndividual bool `json:"can_change_to_individual"`
}

// Create создает профиль владельца аккаунта.
func (h *ProfileHandler) Create(c echo.Context) error {
	user, err := requireMaster(c, h.Users)
	if err != nil {
		return masterError(c, err)
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	profile, err := req.toProfile(user.ID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.Profiles.Create(c.Request().Context(), profile)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "profile already exists")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Get возвращает профиль семейной группы текущего пользователя.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.Profiles.GetForUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "profile not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, profile)
}

// Update обновляет профиль; члены семьи не имеют права менять общий профиль.
func (h *ProfileHandler) Update(c echo.Context) error {
	user, err := requireMaster(c, h.Users)
	if err != nil {
		return masterError(c, err)
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	profile, err := req.toProfile(user.ID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if profile.AccountType == models.AccountTypeIndividual {
		hasMembers, err := h.Users.HasFamilyMembers(c.Request().Context(), user.ID)
		if err != nil {
			return serverError(c)
		}
		if hasMembers {
			return badRequest(c, "cannot switch to individual account while family members exist")
		}
	}

	updated, err := h.Profiles.Update(c.Request().Context(), user.ID, profile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "profile not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// FamilyStatus возвращает положение пользователя в семейной группе.
func (h *ProfileHandler) FamilyStatus(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c)
		}
		return serverError(c)
	}

	if user.IsFamilyMember {
		return c.JSON(http.StatusOK, FamilyStatusResponse{IsFamilyMember: true})
	}

	hasMembers, err := h.Users.HasFamilyMembers(c.Request().Context(), user.ID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, FamilyStatusResponse{
		IsMaster:              true,
		CanAddFamilyMembers:   true,
		CanChangeToIndividual: !hasMembers,
	})
}

func (r ProfileRequest) toProfile(userID uuid.UUID) (models.Profile, error) {
	profile := models.Profile{
		UserID:      userID,
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		Currency:    strings.ToUpper(strings.TrimSpace(r.Currency)),
		BankAccount: r.BankAccount,
		Address:     r.Address,
		Country:     strings.TrimSpace(r.Country),
		AccountType: models.AccountType(r.AccountType),
	}

	if r.MonthlyIncome != nil {
		income, err := decimal.NewFromString(strings.TrimSpace(*r.MonthlyIncome))
		if err != nil || income.IsNegative() {
			return models.Profile{}, errors.New("monthly_income must be a non-negative decimal")
		}
		profile.MonthlyIncome = &income
	}

	return profile, nil
}

// requireMaster загружает текущего пользователя и отклоняет членов семьи.
func requireMaster(c echo.Context, users *repository.UserRepository) (models.User, error) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return models.User{}, repository.ErrNotFound
	}

	user, err := users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return models.User{}, err
	}

	if user.IsFamilyMember {
		return models.User{}, errNotMaster
	}

	return user, nil
}

func masterError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errNotMaster):
		return forbidden(c)
	case errors.Is(err, repository.ErrNotFound):
		return unauthorized(c)
	default:
		return serverError(c)
	}
}

// currentUser загружает пользователя из контекста запроса.
func currentUser(ctx context.Context, c echo.Context, users *repository.UserRepository) (models.User, error) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return models.User{}, repository.ErrNotFound
	}

	return users.GetByID(ctx, userID)
}
