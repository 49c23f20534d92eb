package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/baufin/baufin-backend/internal/testutil"
	"github.com/labstack/echo/v4"
)

func newCategoryHandler() (*CategoryHandler, *testutil.MockCategoryRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryService := service.NewCategoryService(categoryRepo, budgetRepo, expenseRepo)
	return NewCategoryHandler(categoryService), categoryRepo
}

func TestCreateCategory_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newCategoryHandler()

	body := `{"name":"Sanitär & Heizung","color":"#10B981"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var category domain.WorkCategory
	if err := json.Unmarshal(rec.Body.Bytes(), &category); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if category.ID != "sanitaer-heizung" {
		t.Errorf("Expected ID 'sanitaer-heizung', got %q", category.ID)
	}
	if category.Color != "#10B981" {
		t.Errorf("Expected color '#10B981', got %q", category.Color)
	}
}

func TestCreateCategory_InvalidColor(t *testing.T) {
	e := echo.New()
	handler, _ := newCategoryHandler()

	body := `{"name":"Elektrik","color":"green"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %q", problem.Type)
	}
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "color" {
		t.Errorf("Expected a color field error, got %+v", problem.Errors)
	}
}

func TestCreateCategory_Duplicate(t *testing.T) {
	e := echo.New()
	handler, categoryRepo := newCategoryHandler()

	categoryRepo.Categories["elektrik"] = &domain.WorkCategory{ID: "elektrik", Name: "Elektrik"}

	body := `{"name":"Elektrik"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestDeleteCategory_WithExpenses(t *testing.T) {
	e := echo.New()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryService := service.NewCategoryService(categoryRepo, budgetRepo, expenseRepo)
	handler := NewCategoryHandler(categoryService)

	categoryRepo.Categories["elektrik"] = &domain.WorkCategory{ID: "elektrik", Name: "Elektrik"}
	expenseRepo.Expenses["e1"] = &domain.Expense{ID: "e1", CategoryID: "elektrik", Amount: 5000}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/elektrik", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("elektrik")

	if err := handler.DeleteCategory(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
	if _, ok := categoryRepo.Categories["elektrik"]; !ok {
		t.Error("Category should not have been deleted")
	}
}

func TestGetCategory_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newCategoryHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.GetCategory(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
