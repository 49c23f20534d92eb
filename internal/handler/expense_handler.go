package handler

import (
	"errors"
	"net/http"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create/update expense request body.
// Amount is in signed cents; negative amounts record reversals.
type ExpenseRequest struct {
	Date        string         `json:"date"`
	Amount      int64          `json:"amount"`
	CategoryID  string         `json:"categoryId"`
	Room        domain.RoomRef `json:"room"`
	Kind        string         `json:"kind"`
	Description string         `json:"description"`
	InvoiceRef  string         `json:"invoiceRef"`
	Attachments []string       `json:"attachments"`
}

func (r ExpenseRequest) toInput() service.CreateExpenseInput {
	return service.CreateExpenseInput{
		Date:        r.Date,
		Amount:      r.Amount,
		CategoryID:  r.CategoryID,
		Room:        r.Room,
		Kind:        domain.SpendKind(r.Kind),
		Description: r.Description,
		InvoiceRef:  r.InvoiceRef,
		Attachments: r.Attachments,
	}
}

func expenseValidationError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		}), true
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		}), true
	case errors.Is(err, domain.ErrAmountZero):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must not be zero"},
		}), true
	case errors.Is(err, domain.ErrDescriptionRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		}), true
	case errors.Is(err, domain.ErrInvalidSpendKind):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "kind", Message: "Must be one of: material, labor, other"},
		}), true
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Unknown work category"},
		}), true
	}
	return nil, false
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	expense, err := h.expenseService.CreateExpense(req.toInput())
	if err != nil {
		if resp, ok := expenseValidationError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().Str("expense_id", expense.ID).Int64("amount", expense.Amount).Msg("Expense created")

	return c.JSON(http.StatusCreated, expense)
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	expenses, err := h.expenseService.GetExpenses()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}
	return c.JSON(http.StatusOK, expenses)
}

// GetExpense handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	expense, err := h.expenseService.GetExpenseByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("expense_id", c.Param("id")).Msg("Failed to get expense")
		return NewInternalError(c, "Failed to get expense")
	}
	return c.JSON(http.StatusOK, expense)
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	expense, err := h.expenseService.UpdateExpense(c.Param("id"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		if resp, ok := expenseValidationError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("expense_id", c.Param("id")).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense")
	}

	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	if err := h.expenseService.DeleteExpense(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("expense_id", c.Param("id")).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	log.Info().Str("expense_id", c.Param("id")).Msg("Expense deleted")
	return c.NoContent(http.StatusNoContent)
}
