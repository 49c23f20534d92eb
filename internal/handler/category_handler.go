package handler

import (
	"errors"
	"net/http"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles work category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsLumpSum bool   `json:"isLumpSum"`
}

// UpdateCategoryRequest represents the update category request body.
// SortOrder and IsLumpSum are pointers so absent fields stay untouched.
type UpdateCategoryRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder *int   `json:"sortOrder,omitempty"`
	IsLumpSum *bool  `json:"isLumpSum,omitempty"`
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(service.CreateCategoryInput{
		Name:      req.Name,
		Color:     req.Color,
		IsLumpSum: req.IsLumpSum,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrInvalidColor) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "color", Message: "Must be a hex color like #3B82F6"},
			})
		}
		if errors.Is(err, domain.ErrCategoryExists) {
			return NewConflictError(c, "A category with this name already exists")
		}
		log.Error().Err(err).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("category_id", category.ID).Str("name", category.Name).Msg("Category created")

	return c.JSON(http.StatusCreated, category)
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get categories")
		return NewInternalError(c, "Failed to get categories")
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	category, err := h.categoryService.GetCategoryByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("category_id", c.Param("id")).Msg("Failed to get category")
		return NewInternalError(c, "Failed to get category")
	}
	return c.JSON(http.StatusOK, category)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(c.Param("id"), service.UpdateCategoryInput{
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
		IsLumpSum: req.IsLumpSum,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrInvalidColor) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "color", Message: "Must be a hex color like #3B82F6"},
			})
		}
		log.Error().Err(err).Str("category_id", c.Param("id")).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category")
	}

	log.Info().Str("category_id", category.ID).Msg("Category updated")

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryService.DeleteCategory(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryHasExpenses) {
			return NewConflictError(c, "Category still has expenses and cannot be deleted")
		}
		log.Error().Err(err).Str("category_id", c.Param("id")).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().Str("category_id", c.Param("id")).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}
