package domain

import "time"

// InstallmentKind is the billing event type under a contract.
type InstallmentKind string

const (
	InstallmentPartial     InstallmentKind = "partial"
	InstallmentFinal       InstallmentKind = "final"
	InstallmentChangeOrder InstallmentKind = "change_order"
)

// Valid reports whether k is a known installment kind.
func (k InstallmentKind) Valid() bool {
	switch k {
	case InstallmentPartial, InstallmentFinal, InstallmentChangeOrder:
		return true
	}
	return false
}

// Label returns a human readable name for the installment kind.
func (k InstallmentKind) Label() string {
	switch k {
	case InstallmentPartial:
		return "Partial invoice"
	case InstallmentFinal:
		return "Final invoice"
	case InstallmentChangeOrder:
		return "Change order invoice"
	}
	return string(k)
}

// InstallmentStatus is the lifecycle status of an installment. Overdue is
// never stored; it is derived from Open plus a passed due date.
type InstallmentStatus string

const (
	StatusNotYetInvoiced InstallmentStatus = "not_yet_invoiced"
	StatusOpen           InstallmentStatus = "open"
	StatusPaid           InstallmentStatus = "paid"
	StatusOverdue        InstallmentStatus = "overdue"
)

// Installment is one invoice under a contract. Number is dense and 1-based
// per contract and renumbered when an installment is deleted.
type Installment struct {
	ID            string            `json:"id"`
	Kind          InstallmentKind   `json:"kind"`
	Number        int               `json:"number"`
	InvoiceNumber *string           `json:"invoiceNumber,omitempty"`
	Amount        int64             `json:"amount"`
	DueDate       *string           `json:"dueDate,omitempty"`
	PaidDate      *string           `json:"paidDate,omitempty"`
	Status        InstallmentStatus `json:"status"`
	ExpenseID     *string           `json:"expenseId,omitempty"`
	Attachment    *string           `json:"attachment,omitempty"`
	Note          *string           `json:"note,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// EffectiveStatus derives the displayed status for a given calendar date
// (YYYY-MM-DD). An open installment whose due date is on or before today is
// overdue; every other status passes through unchanged. The stored record is
// never modified, so the result stays correct as "today" moves without a
// write.
func (i *Installment) EffectiveStatus(today string) InstallmentStatus {
	if i.Status == StatusOpen && i.DueDate != nil && *i.DueDate <= today {
		return StatusOverdue
	}
	return i.Status
}

// ChangeOrder is an approved scope addition increasing a contract's total
// value.
type ChangeOrder struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Date        *string   `json:"date,omitempty"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Contract is an agreement with a counterparty, optionally fixed-price,
// against which installments are billed.
type Contract struct {
	ID           string         `json:"id"`
	CategoryID   string         `json:"categoryId"`
	Counterparty string         `json:"counterparty"`
	Kind         SpendKind      `json:"kind"`
	ContractSum  *int64         `json:"contractSum,omitempty"`
	ContractDate *string        `json:"contractDate,omitempty"`
	Note         *string        `json:"note,omitempty"`
	ChangeOrders []*ChangeOrder `json:"changeOrders"`
	Installments []*Installment `json:"installments"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// ChangeOrderTotal sums all approved change order amounts.
func (c *Contract) ChangeOrderTotal() int64 {
	var total int64
	for _, co := range c.ChangeOrders {
		total += co.Amount
	}
	return total
}

// TotalValue returns contract sum plus change orders. The second return is
// false when no contract sum is known; such contracts commit funds only
// through their installments.
func (c *Contract) TotalValue() (int64, bool) {
	if c.ContractSum == nil {
		return 0, false
	}
	return *c.ContractSum + c.ChangeOrderTotal(), true
}

// InvoicedTotal sums all installment amounts regardless of status.
func (c *Contract) InvoicedTotal() int64 {
	var total int64
	for _, inst := range c.Installments {
		total += inst.Amount
	}
	return total
}

// HasPaidInstallments reports whether any installment is paid. Contracts
// with paid installments cannot be deleted.
func (c *Contract) HasPaidInstallments() bool {
	for _, inst := range c.Installments {
		if inst.Status == StatusPaid {
			return true
		}
	}
	return false
}

// FindInstallment returns the installment with the given id, or nil.
func (c *Contract) FindInstallment(id string) *Installment {
	for _, inst := range c.Installments {
		if inst.ID == id {
			return inst
		}
	}
	return nil
}

type ContractRepository interface {
	Create(contract *Contract) error
	GetByID(id string) (*Contract, error)
	GetAll() ([]*Contract, error)
	Update(contract *Contract) error
	Delete(id string) error
}
