package service

import (
	"testing"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/testutil"
)

func newCategoryService() (*CategoryService, *testutil.MockCategoryRepository, *testutil.MockBudgetRepository, *testutil.MockExpenseRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	return NewCategoryService(categoryRepo, budgetRepo, expenseRepo), categoryRepo, budgetRepo, expenseRepo
}

func TestCreateCategory_Success(t *testing.T) {
	categoryService, _, budgetRepo, _ := newCategoryService()

	category, err := categoryService.CreateCategory(CreateCategoryInput{
		Name:  "Sanitär & Heizung",
		Color: "#10B981",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.ID != "sanitaer-heizung" {
		t.Errorf("Expected slug ID 'sanitaer-heizung', got %s", category.ID)
	}
	if category.Name != "Sanitär & Heizung" {
		t.Errorf("Expected name unchanged, got %s", category.Name)
	}
	if category.SortOrder != 0 {
		t.Errorf("Expected first category at sort order 0, got %d", category.SortOrder)
	}

	line, err := budgetRepo.GetByCategory(category.ID)
	if err != nil {
		t.Fatalf("Expected zero budget line to exist, got %v", err)
	}
	if line.Planned != 0 {
		t.Errorf("Expected planned 0, got %d", line.Planned)
	}
}

func TestCreateCategory_DefaultColor(t *testing.T) {
	categoryService, _, _, _ := newCategoryService()

	category, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Electrical"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.Color != DefaultCategoryColor {
		t.Errorf("Expected default color, got %s", category.Color)
	}
}

func TestCreateCategory_InvalidColor(t *testing.T) {
	categoryService, _, _, _ := newCategoryService()

	_, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Electrical", Color: "green"})
	if err != domain.ErrInvalidColor {
		t.Errorf("Expected ErrInvalidColor, got %v", err)
	}

	_, err = categoryService.CreateCategory(CreateCategoryInput{Name: "Electrical", Color: "#12345"})
	if err != domain.ErrInvalidColor {
		t.Errorf("Expected ErrInvalidColor for short hex, got %v", err)
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	categoryService, _, _, _ := newCategoryService()

	_, err := categoryService.CreateCategory(CreateCategoryInput{Name: "   "})
	if err != domain.ErrNameRequired {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	categoryService, _, _, _ := newCategoryService()

	if _, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Drywall"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	_, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Drywall"})
	if err != domain.ErrCategoryExists {
		t.Errorf("Expected ErrCategoryExists, got %v", err)
	}
}

func TestCreateCategory_SortOrderIncrements(t *testing.T) {
	categoryService, _, _, _ := newCategoryService()

	first, _ := categoryService.CreateCategory(CreateCategoryInput{Name: "Plumbing"})
	second, _ := categoryService.CreateCategory(CreateCategoryInput{Name: "Electrical"})

	if first.SortOrder != 0 || second.SortOrder != 1 {
		t.Errorf("Expected sort orders 0 and 1, got %d and %d", first.SortOrder, second.SortOrder)
	}
}

func TestUpdateCategory_NameKeepsID(t *testing.T) {
	categoryService, _, _, _ := newCategoryService()

	created, _ := categoryService.CreateCategory(CreateCategoryInput{Name: "Plumbing"})

	updated, err := categoryService.UpdateCategory(created.ID, UpdateCategoryInput{Name: "Plumbing & Heating"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("Expected ID to stay %s, got %s", created.ID, updated.ID)
	}
	if updated.Name != "Plumbing & Heating" {
		t.Errorf("Expected updated name, got %s", updated.Name)
	}
}

func TestDeleteCategory_WithExpenses(t *testing.T) {
	categoryService, _, _, expenseRepo := newCategoryService()

	created, _ := categoryService.CreateCategory(CreateCategoryInput{Name: "Plumbing"})
	expenseRepo.Expenses["e1"] = &domain.Expense{ID: "e1", CategoryID: created.ID, Amount: 100}

	err := categoryService.DeleteCategory(created.ID)
	if err != domain.ErrCategoryHasExpenses {
		t.Errorf("Expected ErrCategoryHasExpenses, got %v", err)
	}
}

func TestDeleteCategory_RemovesBudgetLine(t *testing.T) {
	categoryService, categoryRepo, budgetRepo, _ := newCategoryService()

	created, _ := categoryService.CreateCategory(CreateCategoryInput{Name: "Plumbing"})

	if err := categoryService.DeleteCategory(created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := categoryRepo.GetByID(created.ID); err != domain.ErrCategoryNotFound {
		t.Errorf("Expected category gone, got %v", err)
	}
	if _, err := budgetRepo.GetByCategory(created.ID); err == nil {
		t.Error("Expected budget line gone")
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categoryService, _, _, _ := newCategoryService()

	err := categoryService.DeleteCategory("nope")
	if err != domain.ErrCategoryNotFound {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}
