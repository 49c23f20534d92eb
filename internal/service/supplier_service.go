package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/util"
	"github.com/baufin/baufin-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SupplierService handles supplier and delivery business logic. Booking a
// delivery records the linked expense; until then a delivery carries no
// weight in any total.
type SupplierService struct {
	supplierRepo   domain.SupplierRepository
	deliveryRepo   domain.DeliveryRepository
	categoryRepo   domain.WorkCategoryRepository
	expenseRepo    domain.ExpenseRepository
	summaryService *SummaryService
	eventPublisher websocket.EventPublisher
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	supplierRepo domain.SupplierRepository,
	deliveryRepo domain.DeliveryRepository,
	categoryRepo domain.WorkCategoryRepository,
	expenseRepo domain.ExpenseRepository,
) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		deliveryRepo: deliveryRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

// SetSummaryService sets the summary service used to rebuild the snapshot
// after mutations.
func (s *SupplierService) SetSummaryService(summaryService *SummaryService) {
	s.summaryService = summaryService
}

// SetEventPublisher sets the WebSocket event publisher
func (s *SupplierService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SupplierService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

func (s *SupplierService) rebuildSummary() {
	if s.summaryService == nil {
		return
	}
	if _, err := s.summaryService.Rebuild(util.Today()); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild summary snapshot")
	}
}

// CreateSupplier creates a new supplier with a slug ID derived from the
// name.
func (s *SupplierService) CreateSupplier(name string, note *string) (*domain.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	id := util.Slugify(name)
	if existing, err := s.supplierRepo.GetByID(id); err == nil && existing != nil {
		return nil, domain.ErrSupplierExists
	}

	now := time.Now().UTC()
	supplier := &domain.Supplier{
		ID:        id,
		Name:      name,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeSupplier, supplier))

	return supplier, nil
}

// GetSuppliers retrieves all suppliers
func (s *SupplierService) GetSuppliers() ([]*domain.Supplier, error) {
	return s.supplierRepo.GetAll()
}

// GetSupplierByID retrieves a supplier by ID
func (s *SupplierService) GetSupplierByID(id string) (*domain.Supplier, error) {
	return s.supplierRepo.GetByID(id)
}

// UpdateSupplier updates a supplier's name and note. The ID stays stable.
func (s *SupplierService) UpdateSupplier(id string, name string, note *string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		supplier.Name = name
	}
	if note != nil {
		supplier.Note = note
	}
	supplier.UpdatedAt = time.Now().UTC()

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeSupplier, supplier))

	return supplier, nil
}

// DeleteSupplier deletes a supplier together with its unbooked deliveries.
// Suppliers with booked deliveries cannot be deleted because the linked
// expenses would lose their origin.
func (s *SupplierService) DeleteSupplier(id string) error {
	if _, err := s.supplierRepo.GetByID(id); err != nil {
		return err
	}

	deliveries, err := s.deliveryRepo.GetBySupplier(id)
	if err != nil {
		return err
	}
	for _, d := range deliveries {
		if d.ExpenseID != nil {
			return domain.ErrSupplierHasBookings
		}
	}
	for _, d := range deliveries {
		if err := s.deliveryRepo.Delete(d.ID); err != nil {
			return err
		}
	}

	if err := s.supplierRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeSupplier, map[string]string{"id": id}))

	return nil
}

// DeliveryInput holds the input for creating or updating a delivery
type DeliveryInput struct {
	Date               string
	Description        *string
	InvoiceNumber      *string
	DeliveryNoteNumber *string
	Amount             *int64
	CategoryID         *string
	Items              []domain.DeliveryItem
	Attachments        []string
	Note               *string
}

func (s *SupplierService) validateDelivery(input DeliveryInput) error {
	if input.Date == "" {
		return domain.ErrDateRequired
	}
	if !validDate(input.Date) {
		return domain.ErrInvalidDate
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

// AddDelivery records a delivery for a supplier. Amount and category are
// optional until the invoice arrives; without them the delivery cannot be
// booked.
func (s *SupplierService) AddDelivery(supplierID string, input DeliveryInput) (*domain.Delivery, error) {
	if _, err := s.supplierRepo.GetByID(supplierID); err != nil {
		return nil, err
	}
	if err := s.validateDelivery(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	delivery := &domain.Delivery{
		ID:                 uuid.NewString(),
		SupplierID:         supplierID,
		Date:               input.Date,
		Description:        input.Description,
		InvoiceNumber:      input.InvoiceNumber,
		DeliveryNoteNumber: input.DeliveryNoteNumber,
		Amount:             input.Amount,
		CategoryID:         input.CategoryID,
		Items:              input.Items,
		Attachments:        input.Attachments,
		Note:               input.Note,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if delivery.Attachments == nil {
		delivery.Attachments = []string{}
	}
	if err := s.deliveryRepo.Create(delivery); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeDelivery, delivery))

	return delivery, nil
}

// GetDeliveries retrieves all deliveries
func (s *SupplierService) GetDeliveries() ([]*domain.Delivery, error) {
	return s.deliveryRepo.GetAll()
}

// GetDeliveriesBySupplier retrieves all deliveries of one supplier
func (s *SupplierService) GetDeliveriesBySupplier(supplierID string) ([]*domain.Delivery, error) {
	return s.deliveryRepo.GetBySupplier(supplierID)
}

// UpdateDelivery updates an unbooked delivery. Booked deliveries are
// frozen; their numbers already back a recorded expense.
func (s *SupplierService) UpdateDelivery(id string, input DeliveryInput) (*domain.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery.ExpenseID != nil {
		return nil, domain.ErrDeliveryBooked
	}
	if err := s.validateDelivery(input); err != nil {
		return nil, err
	}

	delivery.Date = input.Date
	delivery.Description = input.Description
	delivery.InvoiceNumber = input.InvoiceNumber
	delivery.DeliveryNoteNumber = input.DeliveryNoteNumber
	delivery.Amount = input.Amount
	delivery.CategoryID = input.CategoryID
	delivery.Items = input.Items
	if input.Attachments != nil {
		delivery.Attachments = input.Attachments
	}
	delivery.Note = input.Note
	delivery.UpdatedAt = time.Now().UTC()

	if err := s.deliveryRepo.Update(delivery); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeDelivery, delivery))

	return delivery, nil
}

// DeleteDelivery deletes an unbooked delivery
func (s *SupplierService) DeleteDelivery(id string) error {
	delivery, err := s.deliveryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if delivery.ExpenseID != nil {
		return domain.ErrDeliveryBooked
	}

	if err := s.deliveryRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeDelivery, map[string]string{"id": id}))

	return nil
}

// BookDelivery records the linked expense for a delivery. It requires both
// an amount and a category and can happen at most once per delivery.
func (s *SupplierService) BookDelivery(id string) (*domain.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery.ExpenseID != nil {
		return nil, domain.ErrDeliveryBooked
	}
	if delivery.Amount == nil || delivery.CategoryID == nil {
		return nil, domain.ErrDeliveryNotBookable
	}

	supplier, err := s.supplierRepo.GetByID(delivery.SupplierID)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Delivery from %s", supplier.Name)
	if delivery.Description != nil && strings.TrimSpace(*delivery.Description) != "" {
		description = fmt.Sprintf("%s – %s", supplier.Name, strings.TrimSpace(*delivery.Description))
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:          uuid.NewString(),
		Date:        delivery.Date,
		Amount:      *delivery.Amount,
		CategoryID:  *delivery.CategoryID,
		Room:        domain.NoRoom(),
		Kind:        domain.SpendKindMaterial,
		Description: description,
		DeliveryID:  &delivery.ID,
		Attachments: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if delivery.InvoiceNumber != nil {
		expense.InvoiceRef = *delivery.InvoiceNumber
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	delivery.ExpenseID = &expense.ID
	delivery.UpdatedAt = now
	if err := s.deliveryRepo.Update(delivery); err != nil {
		return nil, err
	}

	log.Info().
		Str("delivery_id", delivery.ID).
		Str("supplier_id", delivery.SupplierID).
		Int64("amount", *delivery.Amount).
		Msg("Delivery booked")

	s.publishEvent(websocket.DeliveryBooked(map[string]interface{}{
		"deliveryId": delivery.ID,
		"expenseId":  expense.ID,
		"amount":     *delivery.Amount,
	}))
	s.rebuildSummary()

	return delivery, nil
}
