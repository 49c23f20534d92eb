package domain

import "testing"

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func TestEffectiveStatus_OpenPastDueIsOverdue(t *testing.T) {
	inst := &Installment{Status: StatusOpen, DueDate: strPtr("2024-01-01")}

	if got := inst.EffectiveStatus("2024-06-01"); got != StatusOverdue {
		t.Errorf("Expected overdue, got %s", got)
	}
	if got := inst.EffectiveStatus("2023-12-01"); got != StatusOpen {
		t.Errorf("Expected open before due date, got %s", got)
	}
}

func TestEffectiveStatus_DueDateOnTodayIsOverdue(t *testing.T) {
	inst := &Installment{Status: StatusOpen, DueDate: strPtr("2024-03-15")}

	if got := inst.EffectiveStatus("2024-03-15"); got != StatusOverdue {
		t.Errorf("Expected overdue on the due date itself, got %s", got)
	}
}

func TestEffectiveStatus_PaidNeverBecomesOverdue(t *testing.T) {
	inst := &Installment{Status: StatusPaid, DueDate: strPtr("2000-01-01")}

	if got := inst.EffectiveStatus("2099-12-31"); got != StatusPaid {
		t.Errorf("Expected paid, got %s", got)
	}
}

func TestEffectiveStatus_NotYetInvoicedPassesThrough(t *testing.T) {
	inst := &Installment{Status: StatusNotYetInvoiced, DueDate: strPtr("2000-01-01")}

	if got := inst.EffectiveStatus("2099-12-31"); got != StatusNotYetInvoiced {
		t.Errorf("Expected not_yet_invoiced, got %s", got)
	}
}

func TestEffectiveStatus_NoDueDateStaysOpen(t *testing.T) {
	inst := &Installment{Status: StatusOpen}

	if got := inst.EffectiveStatus("2099-12-31"); got != StatusOpen {
		t.Errorf("Expected open without due date, got %s", got)
	}
}

func TestEffectiveStatus_Idempotent(t *testing.T) {
	inst := &Installment{Status: StatusOpen, DueDate: strPtr("2024-01-01")}

	first := inst.EffectiveStatus("2024-06-01")
	// The stored status must be untouched so a second derivation sees the
	// same inputs.
	if inst.Status != StatusOpen {
		t.Fatalf("EffectiveStatus mutated the stored status to %s", inst.Status)
	}
	second := inst.EffectiveStatus("2024-06-01")
	if first != second {
		t.Errorf("Derivation not idempotent: %s then %s", first, second)
	}
}

func TestContractTotalValue(t *testing.T) {
	contract := &Contract{
		ContractSum: int64Ptr(500_000),
		ChangeOrders: []*ChangeOrder{
			{Amount: 50_000},
		},
	}

	total, ok := contract.TotalValue()
	if !ok {
		t.Fatal("Expected known total value")
	}
	if total != 550_000 {
		t.Errorf("Expected 550000, got %d", total)
	}
}

func TestContractTotalValue_UnknownWithoutSum(t *testing.T) {
	contract := &Contract{ChangeOrders: []*ChangeOrder{{Amount: 50_000}}}

	if _, ok := contract.TotalValue(); ok {
		t.Error("Expected unknown total value without contract sum")
	}
}

func TestContractInvoicedTotal_AllStatuses(t *testing.T) {
	contract := &Contract{
		Installments: []*Installment{
			{Amount: 100_000, Status: StatusPaid},
			{Amount: 200_000, Status: StatusOpen},
			{Amount: 50_000, Status: StatusNotYetInvoiced},
		},
	}

	if got := contract.InvoicedTotal(); got != 350_000 {
		t.Errorf("Expected 350000 regardless of status, got %d", got)
	}
}

func TestHasPaidInstallments(t *testing.T) {
	contract := &Contract{
		Installments: []*Installment{
			{Status: StatusOpen},
			{Status: StatusPaid},
		},
	}
	if !contract.HasPaidInstallments() {
		t.Error("Expected paid installment to be found")
	}

	contract.Installments[1].Status = StatusOpen
	if contract.HasPaidInstallments() {
		t.Error("Expected no paid installments")
	}
}
