package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/budget-tracker/backend/internal/auth"
	"example.com/budget-tracker/backend/internal/models"
	"example.com/budget-tracker/backend/internal/notifications"
	"example.com/budget-tracker/backend/internal/repository"
)

type FamilyHandler struct {
	Users           *repository.UserRepository
	Profiles        *repository.ProfileRepository
	Hub             *notifications.Hub
	DefaultPassword string
}

// NewFamilyHandler создает обработчик семейных аккаунтов.
func NewFamilyHandler(users *repository.UserRepository, profiles *repository.ProfileRepository, hub *notifications.Hub, defaultPassword string) *FamilyHandler {
	return &FamilyHandler{
		Users:           users,
		Profiles:        profiles,
		Hub:             hub,
		DefaultPassword: defaultPassword,
	}
}

type AddFamilyMemberRequest struct {
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	FamilyRelation string `json:"family_relation" validate:"required,oneof=spouse child parent sibling other"`
}

type FamilyMemberResponse struct {
	ID             uuid.UUID              `json:"id"`
	Email          string                 `json:"email"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	IsMaster       bool                   `json:"is_master"`
	FamilyRelation *models.FamilyRelation `json:"family_relation,omitempty"`
}

type AddFamilyMemberResponse struct {
	Member FamilyMemberResponse `json:"member"`
	// Временный пароль возвращается один раз, чтобы мастер передал его члену семьи.
	TemporaryPassword string `json:"temporary_password"`
}

// AddMember создает подчиненный аккаунт с паролем по умолчанию; доступно
// только мастеру семейного аккаунта.
func (h *FamilyHandler) AddMember(c echo.Context) error {
	master, err := requireMaster(c, h.Users)
	if err != nil {
		return masterError(c, err)
	}

	profile, err := h.Profiles.GetForUser(c.Request().Context(), master.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return badRequest(c, "create a profile before adding family members")
		}
		return serverError(c)
	}

	if profile.AccountType != models.AccountTypeFamily {
		return badRequest(c, "account type must be family to add members")
	}

	var req AddFamilyMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	passwordHash, err := auth.HashPassword(h.DefaultPassword)
	if err != nil {
		return serverError(c)
	}

	member, err := h.Users.CreateFamilyMember(c.Request().Context(),
		master.ID,
		strings.ToLower(strings.TrimSpace(req.Email)),
		passwordHash,
		strings.TrimSpace(req.FirstName),
		strings.TrimSpace(req.LastName),
		models.FamilyRelation(req.FamilyRelation),
	)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "user already exists")
		}
		return serverError(c)
	}

	h.Hub.Publish(profile.ID, notifications.Event{
		Type: notifications.EventFamilyMemberAdded,
		Data: map[string]string{
			"member_id": member.ID.String(),
			"email":     member.Email,
		},
	})

	return c.JSON(http.StatusCreated, AddFamilyMemberResponse{
		Member:            toFamilyMember(member),
		TemporaryPassword: h.DefaultPassword,
	})
}

// ListMembers возвращает состав семейной группы текущего пользователя.
func (h *FamilyHandler) ListMembers(c echo.Context) error {
	user, err := currentUser(c.Request().Context(), c, h.Users)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c)
		}
		return serverError(c)
	}

	masterID := user.ID
	if user.MasterUserID != nil {
		masterID = *user.MasterUserID
	}

	group, err := h.Users.ListFamilyGroup(c.Request().Context(), masterID)
	if err != nil {
		return serverError(c)
	}

	members := make([]FamilyMemberResponse, 0, len(group))
	for _, member := range group {
		members = append(members, toFamilyMember(member))
	}

	return c.JSON(http.StatusOK, map[string][]FamilyMemberResponse{"members": members})
}

func toFamilyMember(user models.User) FamilyMemberResponse {
	return FamilyMemberResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		IsMaster:       !user.IsFamilyMember,
		FamilyRelation: user.FamilyRelation,
	}
}
