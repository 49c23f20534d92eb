package handler

import (
	"errors"
	"net/http"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SupplierHandler handles supplier and delivery HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// SupplierRequest represents the create/update supplier request body
type SupplierRequest struct {
	Name string  `json:"name"`
	Note *string `json:"note,omitempty"`
}

// DeliveryRequest represents the create/update delivery request body
type DeliveryRequest struct {
	Date               string                `json:"date"`
	Description        *string               `json:"description,omitempty"`
	InvoiceNumber      *string               `json:"invoiceNumber,omitempty"`
	DeliveryNoteNumber *string               `json:"deliveryNoteNumber,omitempty"`
	Amount             *int64                `json:"amount,omitempty"`
	CategoryID         *string               `json:"categoryId,omitempty"`
	Items              []domain.DeliveryItem `json:"items,omitempty"`
	Attachments        []string              `json:"attachments"`
	Note               *string               `json:"note,omitempty"`
}

func (r DeliveryRequest) toInput() service.DeliveryInput {
	return service.DeliveryInput{
		Date:               r.Date,
		Description:        r.Description,
		InvoiceNumber:      r.InvoiceNumber,
		DeliveryNoteNumber: r.DeliveryNoteNumber,
		Amount:             r.Amount,
		CategoryID:         r.CategoryID,
		Items:              r.Items,
		Attachments:        r.Attachments,
		Note:               r.Note,
	}
}

func deliveryValidationError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		}), true
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		}), true
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Unknown work category"},
		}), true
	}
	return nil, false
}

// CreateSupplier handles POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c echo.Context) error {
	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	supplier, err := h.supplierService.CreateSupplier(req.Name, req.Note)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrSupplierExists) {
			return NewConflictError(c, "A supplier with this name already exists")
		}
		log.Error().Err(err).Msg("Failed to create supplier")
		return NewInternalError(c, "Failed to create supplier")
	}

	log.Info().Str("supplier_id", supplier.ID).Str("name", supplier.Name).Msg("Supplier created")

	return c.JSON(http.StatusCreated, supplier)
}

// GetSuppliers handles GET /api/v1/suppliers
func (h *SupplierHandler) GetSuppliers(c echo.Context) error {
	suppliers, err := h.supplierService.GetSuppliers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get suppliers")
		return NewInternalError(c, "Failed to get suppliers")
	}
	return c.JSON(http.StatusOK, suppliers)
}

// UpdateSupplier handles PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c echo.Context) error {
	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Param("id"), req.Name, req.Note)
	if err != nil {
		if errors.Is(err, domain.ErrSupplierNotFound) {
			return NewNotFoundError(c, "Supplier not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		log.Error().Err(err).Str("supplier_id", c.Param("id")).Msg("Failed to update supplier")
		return NewInternalError(c, "Failed to update supplier")
	}

	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c echo.Context) error {
	if err := h.supplierService.DeleteSupplier(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrSupplierNotFound) {
			return NewNotFoundError(c, "Supplier not found")
		}
		if errors.Is(err, domain.ErrSupplierHasBookings) {
			return NewConflictError(c, "Supplier has booked deliveries and cannot be deleted")
		}
		log.Error().Err(err).Str("supplier_id", c.Param("id")).Msg("Failed to delete supplier")
		return NewInternalError(c, "Failed to delete supplier")
	}

	log.Info().Str("supplier_id", c.Param("id")).Msg("Supplier deleted")
	return c.NoContent(http.StatusNoContent)
}

// AddDelivery handles POST /api/v1/suppliers/:id/deliveries
func (h *SupplierHandler) AddDelivery(c echo.Context) error {
	var req DeliveryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	delivery, err := h.supplierService.AddDelivery(c.Param("id"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrSupplierNotFound) {
			return NewNotFoundError(c, "Supplier not found")
		}
		if resp, ok := deliveryValidationError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("supplier_id", c.Param("id")).Msg("Failed to add delivery")
		return NewInternalError(c, "Failed to add delivery")
	}

	log.Info().Str("supplier_id", c.Param("id")).Str("delivery_id", delivery.ID).Msg("Delivery added")

	return c.JSON(http.StatusCreated, delivery)
}

// GetDeliveries handles GET /api/v1/deliveries and
// GET /api/v1/suppliers/:id/deliveries
func (h *SupplierHandler) GetDeliveries(c echo.Context) error {
	if supplierID := c.Param("id"); supplierID != "" {
		deliveries, err := h.supplierService.GetDeliveriesBySupplier(supplierID)
		if err != nil {
			if errors.Is(err, domain.ErrSupplierNotFound) {
				return NewNotFoundError(c, "Supplier not found")
			}
			log.Error().Err(err).Str("supplier_id", supplierID).Msg("Failed to get deliveries")
			return NewInternalError(c, "Failed to get deliveries")
		}
		return c.JSON(http.StatusOK, deliveries)
	}

	deliveries, err := h.supplierService.GetDeliveries()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get deliveries")
		return NewInternalError(c, "Failed to get deliveries")
	}
	return c.JSON(http.StatusOK, deliveries)
}

// UpdateDelivery handles PUT /api/v1/deliveries/:id
func (h *SupplierHandler) UpdateDelivery(c echo.Context) error {
	var req DeliveryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	delivery, err := h.supplierService.UpdateDelivery(c.Param("id"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrDeliveryNotFound) {
			return NewNotFoundError(c, "Delivery not found")
		}
		if errors.Is(err, domain.ErrDeliveryBooked) {
			return NewConflictError(c, "Booked deliveries cannot be edited")
		}
		if resp, ok := deliveryValidationError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("delivery_id", c.Param("id")).Msg("Failed to update delivery")
		return NewInternalError(c, "Failed to update delivery")
	}

	return c.JSON(http.StatusOK, delivery)
}

// DeleteDelivery handles DELETE /api/v1/deliveries/:id
func (h *SupplierHandler) DeleteDelivery(c echo.Context) error {
	if err := h.supplierService.DeleteDelivery(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrDeliveryNotFound) {
			return NewNotFoundError(c, "Delivery not found")
		}
		if errors.Is(err, domain.ErrDeliveryBooked) {
			return NewConflictError(c, "Booked deliveries cannot be deleted")
		}
		log.Error().Err(err).Str("delivery_id", c.Param("id")).Msg("Failed to delete delivery")
		return NewInternalError(c, "Failed to delete delivery")
	}

	log.Info().Str("delivery_id", c.Param("id")).Msg("Delivery deleted")
	return c.NoContent(http.StatusNoContent)
}

// BookDelivery handles POST /api/v1/deliveries/:id/book
//
// Booking turns the delivery into a material expense; it is a one-way step.
func (h *SupplierHandler) BookDelivery(c echo.Context) error {
	delivery, err := h.supplierService.BookDelivery(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDeliveryNotFound) {
			return NewNotFoundError(c, "Delivery not found")
		}
		if errors.Is(err, domain.ErrDeliveryBooked) {
			return NewConflictError(c, "Delivery is already booked")
		}
		if errors.Is(err, domain.ErrDeliveryNotBookable) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount and category are required before booking"},
			})
		}
		log.Error().Err(err).Str("delivery_id", c.Param("id")).Msg("Failed to book delivery")
		return NewInternalError(c, "Failed to book delivery")
	}

	log.Info().Str("delivery_id", c.Param("id")).Msg("Delivery booked")

	return c.JSON(http.StatusOK, delivery)
}
