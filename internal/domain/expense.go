package domain

import "time"

// SpendKind classifies what an expense paid for.
type SpendKind string

const (
	SpendKindMaterial SpendKind = "material"
	SpendKindLabor    SpendKind = "labor"
	SpendKindOther    SpendKind = "other"
)

// SpendKinds lists all valid spend kinds.
var SpendKinds = []SpendKind{SpendKindMaterial, SpendKindLabor, SpendKindOther}

// Valid reports whether k is one of the known spend kinds.
func (k SpendKind) Valid() bool {
	for _, kind := range SpendKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Expense is a recorded monetary movement against the project. Amount is in
// signed cents; negative amounts are reversals and net out in every sum.
// Date is a calendar date in canonical YYYY-MM-DD form.
type Expense struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Amount        int64     `json:"amount"`
	CategoryID    string    `json:"categoryId"`
	Room          RoomRef   `json:"room"`
	Kind          SpendKind `json:"kind"`
	Description   string    `json:"description"`
	InvoiceRef    string    `json:"invoiceRef"`
	ContractID    *string   `json:"contractId,omitempty"`
	InstallmentID *string   `json:"installmentId,omitempty"`
	DeliveryID    *string   `json:"deliveryId,omitempty"`
	Attachments   []string  `json:"attachments"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MonthKey returns the YYYY-MM bucket key of the expense date.
func (e *Expense) MonthKey() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

type ExpenseRepository interface {
	Create(expense *Expense) error
	GetByID(id string) (*Expense, error)
	GetAll() ([]*Expense, error)
	Update(expense *Expense) error
	Delete(id string) error
	HasCategory(categoryID string) (bool, error)
}
