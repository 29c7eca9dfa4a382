package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/budget-tracker/backend/internal/models"
	"example.com/budget-tracker/backend/internal/repository"
)

type CategoryHandler struct {
	Categories *repository.CategoryRepository
}

// NewCategoryHandler создает обработчик категорий.
func NewCategoryHandler(categories *repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,oneof=needs wants savings"`
}

// List возвращает справочник категорий.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.Categories.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Category{"categories": categories})
}

// Create добавляет пользовательскую категорию.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	category, err := h.Categories.Create(c.Request().Context(),
		strings.TrimSpace(req.Name), models.CategoryType(req.Type))
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "category already exists")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, category)
}
