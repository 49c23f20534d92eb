package domain

import "time"

// Supplier is a merchant deliveries are received from. The ID is a slug of
// the name, assigned at creation.
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeliveryItem is one line item of a delivery, usually extracted from the
// supplier's delivery note.
type DeliveryItem struct {
	Description string  `json:"description"`
	Quantity    *string `json:"quantity,omitempty"`
	Amount      *int64  `json:"amount,omitempty"`
}

// Delivery records goods received from a supplier. Amount is the supplier's
// invoice total in cents (negative for credit notes) and is optional until
// the invoice arrives. Booking a delivery creates a linked expense, which
// requires both an amount and a category.
type Delivery struct {
	ID                 string         `json:"id"`
	SupplierID         string         `json:"supplierId"`
	Date               string         `json:"date"`
	Description        *string        `json:"description,omitempty"`
	InvoiceNumber      *string        `json:"invoiceNumber,omitempty"`
	DeliveryNoteNumber *string        `json:"deliveryNoteNumber,omitempty"`
	Amount             *int64         `json:"amount,omitempty"`
	CategoryID         *string        `json:"categoryId,omitempty"`
	Items              []DeliveryItem `json:"items,omitempty"`
	Attachments        []string       `json:"attachments"`
	ExpenseID          *string        `json:"expenseId,omitempty"`
	Note               *string        `json:"note,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

type SupplierRepository interface {
	Create(supplier *Supplier) error
	GetByID(id string) (*Supplier, error)
	GetAll() ([]*Supplier, error)
	Update(supplier *Supplier) error
	Delete(id string) error
}

type DeliveryRepository interface {
	Create(delivery *Delivery) error
	GetByID(id string) (*Delivery, error)
	GetAll() ([]*Delivery, error)
	GetBySupplier(supplierID string) ([]*Delivery, error)
	Update(delivery *Delivery) error
	Delete(id string) error
}
