package handler

import (
	"errors"
	"net/http"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ContractHandler handles contract HTTP requests
type ContractHandler struct {
	contractService *service.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// CreateContractRequest represents the create contract request body
type CreateContractRequest struct {
	CategoryID   string  `json:"categoryId"`
	Counterparty string  `json:"counterparty"`
	Kind         string  `json:"kind"`
	ContractSum  *int64  `json:"contractSum,omitempty"`
	ContractDate *string `json:"contractDate,omitempty"`
	Note         *string `json:"note,omitempty"`
}

// UpdateContractRequest represents the update contract request body. An
// absent contractSum keeps the stored sum; clearContractSum removes it.
type UpdateContractRequest struct {
	CategoryID       string  `json:"categoryId"`
	Counterparty     string  `json:"counterparty"`
	Kind             string  `json:"kind"`
	ContractSum      *int64  `json:"contractSum,omitempty"`
	ClearContractSum bool    `json:"clearContractSum"`
	ContractDate     *string `json:"contractDate,omitempty"`
	Note             *string `json:"note,omitempty"`
}

// ChangeOrderRequest represents the add change order request body
type ChangeOrderRequest struct {
	Description string  `json:"description"`
	Amount      int64   `json:"amount"`
	Date        *string `json:"date,omitempty"`
	Note        *string `json:"note,omitempty"`
}

// InstallmentRequest represents the add installment request body
type InstallmentRequest struct {
	Kind          string  `json:"kind"`
	InvoiceNumber *string `json:"invoiceNumber,omitempty"`
	Amount        int64   `json:"amount"`
	DueDate       *string `json:"dueDate,omitempty"`
	Status        string  `json:"status"`
	Note          *string `json:"note,omitempty"`
}

// InvoiceInstallmentRequest represents the invoice installment request body
type InvoiceInstallmentRequest struct {
	InvoiceNumber *string `json:"invoiceNumber,omitempty"`
	DueDate       *string `json:"dueDate,omitempty"`
}

// PayInstallmentRequest represents the pay installment request body.
// PaidDate defaults to today when empty.
type PayInstallmentRequest struct {
	PaidDate string `json:"paidDate"`
}

// CreateContract handles POST /api/v1/contracts
func (h *ContractHandler) CreateContract(c echo.Context) error {
	var req CreateContractRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	contract, err := h.contractService.CreateContract(service.CreateContractInput{
		CategoryID:   req.CategoryID,
		Counterparty: req.Counterparty,
		Kind:         domain.SpendKind(req.Kind),
		ContractSum:  req.ContractSum,
		ContractDate: req.ContractDate,
		Note:         req.Note,
	})
	if err != nil {
		if resp, ok := contractValidationError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create contract")
		return NewInternalError(c, "Failed to create contract")
	}

	log.Info().Str("contract_id", contract.ID).Str("counterparty", contract.Counterparty).Msg("Contract created")

	return c.JSON(http.StatusCreated, contract)
}

func contractValidationError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "counterparty", Message: "Counterparty is required"},
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

// GetContracts handles GET /api/v1/contracts
func (h *ContractHandler) GetContracts(c echo.Context) error {
	contracts, err := h.contractService.GetContracts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get contracts")
		return NewInternalError(c, "Failed to get contracts")
	}
	return c.JSON(http.StatusOK, contracts)
}

// GetContract handles GET /api/v1/contracts/:id
func (h *ContractHandler) GetContract(c echo.Context) error {
	contract, err := h.contractService.GetContractByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Msg("Failed to get contract")
		return NewInternalError(c, "Failed to get contract")
	}
	return c.JSON(http.StatusOK, contract)
}

// UpdateContract handles PUT /api/v1/contracts/:id
func (h *ContractHandler) UpdateContract(c echo.Context) error {
	var req UpdateContractRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	contract, err := h.contractService.UpdateContract(c.Param("id"), service.UpdateContractInput{
		CategoryID:       req.CategoryID,
		Counterparty:     req.Counterparty,
		Kind:             domain.SpendKind(req.Kind),
		ContractSum:      req.ContractSum,
		ClearContractSum: req.ClearContractSum,
		ContractDate:     req.ContractDate,
		Note:             req.Note,
	})
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		if resp, ok := contractValidationError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Msg("Failed to update contract")
		return NewInternalError(c, "Failed to update contract")
	}

	return c.JSON(http.StatusOK, contract)
}

// DeleteContract handles DELETE /api/v1/contracts/:id
func (h *ContractHandler) DeleteContract(c echo.Context) error {
	if err := h.contractService.DeleteContract(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		if errors.Is(err, domain.ErrContractHasPaid) {
			return NewConflictError(c, "Contract has paid installments and cannot be deleted")
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Msg("Failed to delete contract")
		return NewInternalError(c, "Failed to delete contract")
	}

	log.Info().Str("contract_id", c.Param("id")).Msg("Contract deleted")
	return c.NoContent(http.StatusNoContent)
}

// AddChangeOrder handles POST /api/v1/contracts/:id/change-orders
func (h *ContractHandler) AddChangeOrder(c echo.Context) error {
	var req ChangeOrderRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	contract, err := h.contractService.AddChangeOrder(c.Param("id"), service.ChangeOrderInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Note:        req.Note,
	})
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		if errors.Is(err, domain.ErrDescriptionRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Description is required"},
			})
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Msg("Failed to add change order")
		return NewInternalError(c, "Failed to add change order")
	}

	return c.JSON(http.StatusCreated, contract)
}

// DeleteChangeOrder handles DELETE /api/v1/contracts/:id/change-orders/:changeOrderId
func (h *ContractHandler) DeleteChangeOrder(c echo.Context) error {
	contract, err := h.contractService.DeleteChangeOrder(c.Param("id"), c.Param("changeOrderId"))
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		if errors.Is(err, domain.ErrChangeOrderNotFound) {
			return NewNotFoundError(c, "Change order not found")
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Msg("Failed to delete change order")
		return NewInternalError(c, "Failed to delete change order")
	}

	return c.JSON(http.StatusOK, contract)
}

// AddInstallment handles POST /api/v1/contracts/:id/installments
func (h *ContractHandler) AddInstallment(c echo.Context) error {
	var req InstallmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	contract, err := h.contractService.AddInstallment(c.Param("id"), service.InstallmentInput{
		Kind:          domain.InstallmentKind(req.Kind),
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		DueDate:       req.DueDate,
		Status:        domain.InstallmentStatus(req.Status),
		Note:          req.Note,
	})
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		if errors.Is(err, domain.ErrAmountNotPositive) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInvalidInstallment) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "kind", Message: "Must be one of: partial, final, change_order"},
			})
		}
		if errors.Is(err, domain.ErrInvalidDate) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "dueDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "status", Message: "Initial status must be open or not_yet_invoiced"},
			})
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Msg("Failed to add installment")
		return NewInternalError(c, "Failed to add installment")
	}

	return c.JSON(http.StatusCreated, contract)
}

// InvoiceInstallment handles POST /api/v1/contracts/:id/installments/:installmentId/invoice
func (h *ContractHandler) InvoiceInstallment(c echo.Context) error {
	var req InvoiceInstallmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	contract, err := h.contractService.InvoiceInstallment(c.Param("id"), c.Param("installmentId"), req.InvoiceNumber, req.DueDate)
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		if errors.Is(err, domain.ErrInstallmentNotFound) {
			return NewNotFoundError(c, "Installment not found")
		}
		if errors.Is(err, domain.ErrInstallmentPaid) {
			return NewConflictError(c, "Installment is already paid")
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Msg("Failed to invoice installment")
		return NewInternalError(c, "Failed to invoice installment")
	}

	return c.JSON(http.StatusOK, contract)
}

// PayInstallment handles POST /api/v1/contracts/:id/installments/:installmentId/pay
//
// Paying an installment creates a linked expense, so the payment shows up in
// every spending aggregate.
func (h *ContractHandler) PayInstallment(c echo.Context) error {
	var req PayInstallmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	contract, err := h.contractService.PayInstallment(c.Param("id"), c.Param("installmentId"), req.PaidDate)
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		if errors.Is(err, domain.ErrInstallmentNotFound) {
			return NewNotFoundError(c, "Installment not found")
		}
		if errors.Is(err, domain.ErrInstallmentPaid) {
			return NewConflictError(c, "Installment is already paid")
		}
		if errors.Is(err, domain.ErrInvalidDate) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "paidDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Str("installment_id", c.Param("installmentId")).Msg("Failed to pay installment")
		return NewInternalError(c, "Failed to pay installment")
	}

	log.Info().Str("contract_id", c.Param("id")).Str("installment_id", c.Param("installmentId")).Msg("Installment paid")

	return c.JSON(http.StatusOK, contract)
}

// DeleteInstallment handles DELETE /api/v1/contracts/:id/installments/:installmentId
func (h *ContractHandler) DeleteInstallment(c echo.Context) error {
	contract, err := h.contractService.DeleteInstallment(c.Param("id"), c.Param("installmentId"))
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		if errors.Is(err, domain.ErrInstallmentNotFound) {
			return NewNotFoundError(c, "Installment not found")
		}
		if errors.Is(err, domain.ErrInstallmentPaid) {
			return NewConflictError(c, "Paid installments cannot be deleted")
		}
		log.Error().Err(err).Str("contract_id", c.Param("id")).Msg("Failed to delete installment")
		return NewInternalError(c, "Failed to delete installment")
	}

	return c.JSON(http.StatusOK, contract)
}
