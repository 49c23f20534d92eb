package handler

import (
	"errors"
	"net/http"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BudgetHandler handles budget line HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetLineRequest represents the set budget line request body
type SetBudgetLineRequest struct {
	Planned int64  `json:"planned"`
	Note    string `json:"note"`
}

// GetBudgetLines handles GET /api/v1/budget
func (h *BudgetHandler) GetBudgetLines(c echo.Context) error {
	lines, err := h.budgetService.GetBudgetLines()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get budget lines")
		return NewInternalError(c, "Failed to get budget lines")
	}
	return c.JSON(http.StatusOK, lines)
}

// SetBudgetLine handles PUT /api/v1/budget/:categoryId
func (h *BudgetHandler) SetBudgetLine(c echo.Context) error {
	var req SetBudgetLineRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	categoryID := c.Param("categoryId")
	line, err := h.budgetService.SetBudgetLine(categoryID, req.Planned, req.Note)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrAmountNotPositive) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "planned", Message: "Planned amount must not be negative"},
			})
		}
		log.Error().Err(err).Str("category_id", categoryID).Msg("Failed to set budget line")
		return NewInternalError(c, "Failed to set budget line")
	}

	log.Info().Str("category_id", categoryID).Int64("planned", line.Planned).Msg("Budget line set")

	return c.JSON(http.StatusOK, line)
}
