package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/baufin/baufin-backend/internal/testutil"
	"github.com/labstack/echo/v4"
)

func newContractHandler() (*ContractHandler, *testutil.MockContractRepository, *testutil.MockExpenseRepository) {
	contractRepo := testutil.NewMockContractRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.Categories["sanitaer"] = &domain.WorkCategory{ID: "sanitaer", Name: "Sanitär"}
	contractService := service.NewContractService(contractRepo, categoryRepo, expenseRepo)
	return NewContractHandler(contractService), contractRepo, expenseRepo
}

func TestPayInstallment_CreatesLinkedExpense(t *testing.T) {
	e := echo.New()
	handler, contractRepo, expenseRepo := newContractHandler()

	now := time.Now().UTC()
	contractRepo.Contracts["c1"] = &domain.Contract{
		ID:           "c1",
		CategoryID:   "sanitaer",
		Counterparty: "Müller Sanitär GmbH",
		Kind:         domain.SpendKindLabor,
		Installments: []*domain.Installment{
			{
				ID:        "i1",
				Kind:      domain.InstallmentPartial,
				Number:    1,
				Amount:    500_000,
				Status:    domain.StatusOpen,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}

	body := `{"paidDate":"2026-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contracts/c1/installments/i1/pay", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "installmentId")
	c.SetParamValues("c1", "i1")

	if err := handler.PayInstallment(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var contract domain.Contract
	if err := json.Unmarshal(rec.Body.Bytes(), &contract); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	installment := contract.Installments[0]
	if installment.Status != domain.StatusPaid {
		t.Errorf("Expected status paid, got %s", installment.Status)
	}
	if installment.PaidDate == nil || *installment.PaidDate != "2026-03-10" {
		t.Errorf("Expected paid date 2026-03-10, got %v", installment.PaidDate)
	}
	if installment.ExpenseID == nil {
		t.Fatal("Expected a linked expense ID")
	}

	expense, ok := expenseRepo.Expenses[*installment.ExpenseID]
	if !ok {
		t.Fatal("Linked expense was not stored")
	}
	if expense.Amount != 500_000 {
		t.Errorf("Expected expense amount 500000, got %d", expense.Amount)
	}
	if expense.Kind != domain.SpendKindLabor {
		t.Errorf("Expected labor expense, got %s", expense.Kind)
	}
}

func TestPayInstallment_AlreadyPaid(t *testing.T) {
	e := echo.New()
	handler, contractRepo, _ := newContractHandler()

	paidDate := "2026-01-05"
	contractRepo.Contracts["c1"] = &domain.Contract{
		ID:           "c1",
		CategoryID:   "sanitaer",
		Counterparty: "Müller Sanitär GmbH",
		Kind:         domain.SpendKindLabor,
		Installments: []*domain.Installment{
			{ID: "i1", Kind: domain.InstallmentPartial, Number: 1, Amount: 100_000, Status: domain.StatusPaid, PaidDate: &paidDate},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contracts/c1/installments/i1/pay", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "installmentId")
	c.SetParamValues("c1", "i1")

	if err := handler.PayInstallment(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestDeleteContract_WithPaidInstallments(t *testing.T) {
	e := echo.New()
	handler, contractRepo, _ := newContractHandler()

	contractRepo.Contracts["c1"] = &domain.Contract{
		ID:           "c1",
		CategoryID:   "sanitaer",
		Counterparty: "Müller Sanitär GmbH",
		Installments: []*domain.Installment{
			{ID: "i1", Number: 1, Amount: 100_000, Status: domain.StatusPaid},
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contracts/c1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := handler.DeleteContract(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
	if _, ok := contractRepo.Contracts["c1"]; !ok {
		t.Error("Contract should not have been deleted")
	}
}
