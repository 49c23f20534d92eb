package service

import (
	"testing"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/testutil"
)

func newExpenseService() (*ExpenseService, *testutil.MockExpenseRepository) {
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.Categories["plumbing"] = &domain.WorkCategory{ID: "plumbing", Name: "Plumbing"}
	return NewExpenseService(expenseRepo, categoryRepo), expenseRepo
}

func TestCreateExpense_Success(t *testing.T) {
	expenseService, expenseRepo := newExpenseService()

	expense, err := expenseService.CreateExpense(CreateExpenseInput{
		Date:        "2026-03-15",
		Amount:      125_000,
		CategoryID:  "plumbing",
		Room:        domain.RoomByID("bath-og"),
		Kind:        domain.SpendKindMaterial,
		Description: "Copper pipes",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if expense.ID == "" {
		t.Error("Expected generated ID")
	}
	if expense.CreatedAt.IsZero() || expense.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
	if expense.Attachments == nil {
		t.Error("Expected empty attachment slice, not nil")
	}
	if len(expenseRepo.Expenses) != 1 {
		t.Errorf("Expected 1 stored expense, got %d", len(expenseRepo.Expenses))
	}
}

func TestCreateExpense_NegativeAmountAllowed(t *testing.T) {
	expenseService, _ := newExpenseService()

	// Reversals are negative expenses
	_, err := expenseService.CreateExpense(CreateExpenseInput{
		Date:        "2026-03-15",
		Amount:      -50_000,
		CategoryID:  "plumbing",
		Description: "Refund defective valve",
	})
	if err != nil {
		t.Fatalf("Expected reversal to be accepted, got %v", err)
	}
}

func TestCreateExpense_Validation(t *testing.T) {
	expenseService, _ := newExpenseService()

	tests := []struct {
		name  string
		input CreateExpenseInput
		want  error
	}{
		{
			name:  "missing date",
			input: CreateExpenseInput{Amount: 100, CategoryID: "plumbing", Description: "x"},
			want:  domain.ErrDateRequired,
		},
		{
			name:  "malformed date",
			input: CreateExpenseInput{Date: "15.03.2026", Amount: 100, CategoryID: "plumbing", Description: "x"},
			want:  domain.ErrInvalidDate,
		},
		{
			name:  "zero amount",
			input: CreateExpenseInput{Date: "2026-03-15", Amount: 0, CategoryID: "plumbing", Description: "x"},
			want:  domain.ErrAmountZero,
		},
		{
			name:  "missing description",
			input: CreateExpenseInput{Date: "2026-03-15", Amount: 100, CategoryID: "plumbing", Description: "  "},
			want:  domain.ErrDescriptionRequired,
		},
		{
			name:  "unknown category",
			input: CreateExpenseInput{Date: "2026-03-15", Amount: 100, CategoryID: "nope", Description: "x"},
			want:  domain.ErrCategoryNotFound,
		},
		{
			name: "invalid kind",
			input: CreateExpenseInput{
				Date: "2026-03-15", Amount: 100, CategoryID: "plumbing",
				Description: "x", Kind: domain.SpendKind("services"),
			},
			want: domain.ErrInvalidSpendKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expenseService.CreateExpense(tt.input)
			if err != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateExpense_DefaultKind(t *testing.T) {
	expenseService, _ := newExpenseService()

	expense, err := expenseService.CreateExpense(CreateExpenseInput{
		Date:        "2026-03-15",
		Amount:      100,
		CategoryID:  "plumbing",
		Description: "Misc",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if expense.Kind != domain.SpendKindOther {
		t.Errorf("Expected default kind 'other', got %s", expense.Kind)
	}
}

func TestUpdateExpense_KeepsLinks(t *testing.T) {
	expenseService, expenseRepo := newExpenseService()

	contractID := "c1"
	expenseRepo.Expenses["e1"] = &domain.Expense{
		ID:          "e1",
		Date:        "2026-02-01",
		Amount:      200_000,
		CategoryID:  "plumbing",
		Kind:        domain.SpendKindLabor,
		Description: "Partial invoice 1",
		ContractID:  &contractID,
	}

	updated, err := expenseService.UpdateExpense("e1", CreateExpenseInput{
		Date:        "2026-02-02",
		Amount:      210_000,
		CategoryID:  "plumbing",
		Description: "Partial invoice 1, corrected",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.ContractID == nil || *updated.ContractID != contractID {
		t.Error("Expected contract link to survive the update")
	}
	if updated.Amount != 210_000 {
		t.Errorf("Expected amount 210000, got %d", updated.Amount)
	}
	if updated.Kind != domain.SpendKindLabor {
		t.Errorf("Expected empty kind to keep existing, got %s", updated.Kind)
	}
}

func TestDeleteExpense(t *testing.T) {
	expenseService, expenseRepo := newExpenseService()

	expenseRepo.Expenses["e1"] = &domain.Expense{ID: "e1", CategoryID: "plumbing"}

	if err := expenseService.DeleteExpense("e1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := expenseService.DeleteExpense("e1"); err != domain.ErrExpenseNotFound {
		t.Errorf("Expected ErrExpenseNotFound, got %v", err)
	}
}

func TestCreateExpense_RebuildsSummary(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.Categories["plumbing"] = &domain.WorkCategory{ID: "plumbing", Name: "Plumbing"}
	summaryRepo := testutil.NewMockSummaryRepository()

	summaryService := NewSummaryService(
		categoryRepo,
		testutil.NewMockRoomRepository(),
		testutil.NewMockBudgetRepository(),
		expenseRepo,
		testutil.NewMockContractRepository(),
		summaryRepo,
	)
	expenseService := NewExpenseService(expenseRepo, categoryRepo)
	expenseService.SetSummaryService(summaryService)

	_, err := expenseService.CreateExpense(CreateExpenseInput{
		Date:        "2026-03-15",
		Amount:      125_000,
		CategoryID:  "plumbing",
		Description: "Copper pipes",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summaryRepo.SaveCount != 1 {
		t.Fatalf("Expected 1 snapshot rebuild, got %d", summaryRepo.SaveCount)
	}
	if summaryRepo.Snapshot.Totals.Spent != 125_000 {
		t.Errorf("Expected snapshot spent 125000, got %d", summaryRepo.Snapshot.Totals.Spent)
	}
}
