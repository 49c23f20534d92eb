package service

import (
	"testing"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/testutil"
)

func newSupplierService() (*SupplierService, *testutil.MockDeliveryRepository, *testutil.MockExpenseRepository) {
	supplierRepo := testutil.NewMockSupplierRepository()
	deliveryRepo := testutil.NewMockDeliveryRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.Categories["drywall"] = &domain.WorkCategory{ID: "drywall", Name: "Drywall"}
	expenseRepo := testutil.NewMockExpenseRepository()
	return NewSupplierService(supplierRepo, deliveryRepo, categoryRepo, expenseRepo), deliveryRepo, expenseRepo
}

func TestCreateSupplier_SlugID(t *testing.T) {
	supplierService, _, _ := newSupplierService()

	supplier, err := supplierService.CreateSupplier("Baustoffe Müller", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if supplier.ID != "baustoffe-mueller" {
		t.Errorf("Expected slug ID 'baustoffe-mueller', got %s", supplier.ID)
	}

	if _, err := supplierService.CreateSupplier("Baustoffe Müller", nil); err != domain.ErrSupplierExists {
		t.Errorf("Expected ErrSupplierExists, got %v", err)
	}
}

func TestAddDelivery_Success(t *testing.T) {
	supplierService, deliveryRepo, _ := newSupplierService()
	supplier, _ := supplierService.CreateSupplier("Bauhaus", nil)

	amount := int64(45_000)
	categoryID := "drywall"
	delivery, err := supplierService.AddDelivery(supplier.ID, DeliveryInput{
		Date:       "2026-03-10",
		Amount:     &amount,
		CategoryID: &categoryID,
		Items: []domain.DeliveryItem{
			{Description: "Gypsum boards 12.5mm"},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if delivery.ExpenseID != nil {
		t.Error("Expected new delivery to be unbooked")
	}
	if len(deliveryRepo.Deliveries) != 1 {
		t.Errorf("Expected 1 stored delivery, got %d", len(deliveryRepo.Deliveries))
	}
}

func TestAddDelivery_Validation(t *testing.T) {
	supplierService, _, _ := newSupplierService()
	supplier, _ := supplierService.CreateSupplier("Bauhaus", nil)

	if _, err := supplierService.AddDelivery(supplier.ID, DeliveryInput{}); err != domain.ErrDateRequired {
		t.Errorf("Expected ErrDateRequired, got %v", err)
	}

	badCategory := "nope"
	_, err := supplierService.AddDelivery(supplier.ID, DeliveryInput{
		Date:       "2026-03-10",
		CategoryID: &badCategory,
	})
	if err != domain.ErrCategoryNotFound {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}

	if _, err := supplierService.AddDelivery("nope", DeliveryInput{Date: "2026-03-10"}); err != domain.ErrSupplierNotFound {
		t.Errorf("Expected ErrSupplierNotFound, got %v", err)
	}
}

func TestBookDelivery_CreatesLinkedExpense(t *testing.T) {
	supplierService, _, expenseRepo := newSupplierService()
	supplier, _ := supplierService.CreateSupplier("Bauhaus", nil)

	amount := int64(45_000)
	categoryID := "drywall"
	invoiceNo := "LS-991"
	delivery, _ := supplierService.AddDelivery(supplier.ID, DeliveryInput{
		Date:          "2026-03-10",
		Amount:        &amount,
		CategoryID:    &categoryID,
		InvoiceNumber: &invoiceNo,
	})

	delivery, err := supplierService.BookDelivery(delivery.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if delivery.ExpenseID == nil {
		t.Fatal("Expected expense link on booked delivery")
	}

	expense, err := expenseRepo.GetByID(*delivery.ExpenseID)
	if err != nil {
		t.Fatalf("Expected linked expense to exist, got %v", err)
	}
	if expense.Amount != amount {
		t.Errorf("Expected expense amount %d, got %d", amount, expense.Amount)
	}
	if expense.Kind != domain.SpendKindMaterial {
		t.Errorf("Expected material kind, got %s", expense.Kind)
	}
	if expense.InvoiceRef != invoiceNo {
		t.Errorf("Expected invoice ref %s, got %s", invoiceNo, expense.InvoiceRef)
	}
	if expense.DeliveryID == nil || *expense.DeliveryID != delivery.ID {
		t.Error("Expected expense to link back to the delivery")
	}
}

func TestBookDelivery_Guards(t *testing.T) {
	supplierService, _, _ := newSupplierService()
	supplier, _ := supplierService.CreateSupplier("Bauhaus", nil)

	// No amount and no category yet
	delivery, _ := supplierService.AddDelivery(supplier.ID, DeliveryInput{Date: "2026-03-10"})
	if _, err := supplierService.BookDelivery(delivery.ID); err != domain.ErrDeliveryNotBookable {
		t.Errorf("Expected ErrDeliveryNotBookable, got %v", err)
	}

	amount := int64(45_000)
	categoryID := "drywall"
	delivery, _ = supplierService.UpdateDelivery(delivery.ID, DeliveryInput{
		Date:       "2026-03-10",
		Amount:     &amount,
		CategoryID: &categoryID,
	})

	if _, err := supplierService.BookDelivery(delivery.ID); err != nil {
		t.Fatalf("Expected booking to succeed, got %v", err)
	}
	if _, err := supplierService.BookDelivery(delivery.ID); err != domain.ErrDeliveryBooked {
		t.Errorf("Expected ErrDeliveryBooked on second booking, got %v", err)
	}
	if _, err := supplierService.UpdateDelivery(delivery.ID, DeliveryInput{Date: "2026-03-11"}); err != domain.ErrDeliveryBooked {
		t.Errorf("Expected booked delivery to be frozen, got %v", err)
	}
	if err := supplierService.DeleteDelivery(delivery.ID); err != domain.ErrDeliveryBooked {
		t.Errorf("Expected booked delivery to resist deletion, got %v", err)
	}
}

func TestDeleteSupplier_WithBookedDelivery(t *testing.T) {
	supplierService, deliveryRepo, _ := newSupplierService()
	supplier, _ := supplierService.CreateSupplier("Bauhaus", nil)

	amount := int64(45_000)
	categoryID := "drywall"
	delivery, _ := supplierService.AddDelivery(supplier.ID, DeliveryInput{
		Date:       "2026-03-10",
		Amount:     &amount,
		CategoryID: &categoryID,
	})
	supplierService.BookDelivery(delivery.ID)

	if err := supplierService.DeleteSupplier(supplier.ID); err != domain.ErrSupplierHasBookings {
		t.Errorf("Expected ErrSupplierHasBookings, got %v", err)
	}

	// Still present
	if len(deliveryRepo.Deliveries) != 1 {
		t.Errorf("Expected delivery to survive, got %d", len(deliveryRepo.Deliveries))
	}
}

func TestDeleteSupplier_RemovesUnbookedDeliveries(t *testing.T) {
	supplierService, deliveryRepo, _ := newSupplierService()
	supplier, _ := supplierService.CreateSupplier("Bauhaus", nil)
	supplierService.AddDelivery(supplier.ID, DeliveryInput{Date: "2026-03-10"})
	supplierService.AddDelivery(supplier.ID, DeliveryInput{Date: "2026-03-11"})

	if err := supplierService.DeleteSupplier(supplier.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(deliveryRepo.Deliveries) != 0 {
		t.Errorf("Expected unbooked deliveries to be removed, got %d", len(deliveryRepo.Deliveries))
	}
}
