package service

import (
	"strings"
	"testing"
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/testutil"
)

func newReportService() (*ReportService, *testutil.MockContractRepository, *testutil.MockSupplierRepository, *testutil.MockDeliveryRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.Categories["plumbing"] = &domain.WorkCategory{ID: "plumbing", Name: "Plumbing", SortOrder: 0}

	budgetRepo := testutil.NewMockBudgetRepository()
	budgetRepo.Lines["plumbing"] = &domain.BudgetLine{CategoryID: "plumbing", Planned: 10_000_000}

	expenseRepo := testutil.NewMockExpenseRepository()
	expenseRepo.Expenses["e1"] = &domain.Expense{
		ID: "e1", Date: "2026-01-15", Amount: 3_000_000,
		CategoryID: "plumbing", Kind: domain.SpendKindMaterial,
		Description: "Pipes", CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
	expenseRepo.Expenses["e2"] = &domain.Expense{
		ID: "e2", Date: "2026-02-15", Amount: 2_000_000,
		CategoryID: "plumbing", Kind: domain.SpendKindLabor,
		Description: "Install", CreatedAt: time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC),
	}

	contractRepo := testutil.NewMockContractRepository()
	supplierRepo := testutil.NewMockSupplierRepository()
	deliveryRepo := testutil.NewMockDeliveryRepository()

	reportService := NewReportService(
		categoryRepo, testutil.NewMockRoomRepository(), budgetRepo,
		expenseRepo, contractRepo, supplierRepo, deliveryRepo,
	)
	return reportService, contractRepo, supplierRepo, deliveryRepo
}

func TestBuildReport_Overview(t *testing.T) {
	reportService, _, _, _ := newReportService()

	data, text, err := reportService.BuildReport("2026-03-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if data.TotalSpent != 5_000_000 {
		t.Errorf("Expected total spent 5000000, got %d", data.TotalSpent)
	}
	if data.KindTotals.Material != 3_000_000 || data.KindTotals.Labor != 2_000_000 {
		t.Errorf("Unexpected kind totals: %+v", data.KindTotals)
	}

	for _, want := range []string{
		"=== PROJECT OVERVIEW ===",
		"Total budget: 100000.00 EUR",
		"Spent so far: 50000.00 EUR",
		"Remaining: 50000.00 EUR",
		"Used: 50%",
		"Number of expenses: 2",
		"=== BUDGET BY CATEGORY ===",
		"Plumbing: planned 100000.00 EUR, spent 50000.00 EUR, delta 50000.00 EUR (50%)",
		"=== MONTHLY SPEND ===",
		"2026-01: 30000.00 EUR",
		"2026-02: 20000.00 EUR",
		"Average burn rate: 25000.00 EUR / month",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected report text to contain %q\n%s", want, text)
		}
	}

	// No contracts and no suppliers: those sections are absent
	if strings.Contains(text, "=== CONTRACTS ===") {
		t.Error("Expected no contract section without contracts")
	}
	if strings.Contains(text, "=== SUPPLIERS ===") {
		t.Error("Expected no supplier section without suppliers")
	}
}

func TestBuildReport_ContractSection(t *testing.T) {
	reportService, contractRepo, _, _ := newReportService()

	sum := int64(4_000_000)
	due := "2026-02-01"
	contractRepo.Contracts["c1"] = &domain.Contract{
		ID: "c1", CategoryID: "plumbing", Counterparty: "Müller GmbH",
		Kind: domain.SpendKindLabor, ContractSum: &sum,
		Installments: []*domain.Installment{
			{ID: "i1", Number: 1, Amount: 1_000_000, Status: domain.StatusPaid},
			{ID: "i2", Number: 2, Amount: 500_000, Status: domain.StatusOpen, DueDate: &due},
		},
	}

	_, text, err := reportService.BuildReport("2026-03-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(text, "Müller GmbH (Plumbing): contract 40000.00 EUR, paid 10000.00 EUR, open 5000.00 EUR [OVERDUE]") {
		t.Errorf("Unexpected contract line:\n%s", text)
	}
	// Only open invoices, not the unbilled remainder
	if !strings.Contains(text, "Total committed funds (open invoices): 5000.00 EUR") {
		t.Errorf("Unexpected committed line:\n%s", text)
	}
}

func TestBuildReport_SupplierSection(t *testing.T) {
	reportService, _, supplierRepo, deliveryRepo := newReportService()

	supplierRepo.Suppliers["bauhaus"] = &domain.Supplier{ID: "bauhaus", Name: "Bauhaus"}
	supplierRepo.Suppliers["idle"] = &domain.Supplier{ID: "idle", Name: "Idle Supplier"}

	amount := int64(45_000)
	deliveryRepo.Deliveries["d1"] = &domain.Delivery{ID: "d1", SupplierID: "bauhaus", Date: "2026-02-01", Amount: &amount}
	deliveryRepo.Deliveries["d2"] = &domain.Delivery{ID: "d2", SupplierID: "bauhaus", Date: "2026-02-10"}

	_, text, err := reportService.BuildReport("2026-03-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(text, "Bauhaus: 2 deliveries, 450.00 EUR") {
		t.Errorf("Unexpected supplier line:\n%s", text)
	}
	// Suppliers without deliveries are omitted
	if strings.Contains(text, "Idle Supplier") {
		t.Error("Expected idle supplier to be omitted")
	}
}

func TestBuildReport_Deterministic(t *testing.T) {
	reportService, _, _, _ := newReportService()

	_, first, err := reportService.BuildReport("2026-03-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	_, second, err := reportService.BuildReport("2026-03-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if first != second {
		t.Error("Expected identical text for identical input and date")
	}
}

func TestBuildReportData_ReusesForecastCommitted(t *testing.T) {
	reportService, contractRepo, _, _ := newReportService()

	contractRepo.Contracts["c1"] = &domain.Contract{
		ID: "c1", CategoryID: "plumbing", Counterparty: "Müller GmbH",
		Installments: []*domain.Installment{
			{ID: "i1", Amount: 500_000, Status: domain.StatusOpen},
		},
	}

	data, err := reportService.BuildReportData("2026-03-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if data.Committed != data.Forecast.Committed {
		t.Error("Expected report and forecast to share one committed funds result")
	}
	if data.Committed.Total != 500_000 {
		t.Errorf("Expected committed 500000, got %d", data.Committed.Total)
	}
}

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00 EUR"},
		{125_050, "1250.50 EUR"},
		{-50_000, "-500.00 EUR"},
		{1, "0.01 EUR"},
	}
	for _, tt := range tests {
		if got := formatEUR(tt.cents); got != tt.want {
			t.Errorf("formatEUR(%d) = %s, want %s", tt.cents, got, tt.want)
		}
	}
}
