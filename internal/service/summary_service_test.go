package service

import (
	"testing"
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/testutil"
	"github.com/baufin/baufin-backend/internal/websocket"
)

type recordingPublisher struct {
	events []websocket.Event
}

func (p *recordingPublisher) Publish(event websocket.Event) {
	p.events = append(p.events, event)
}

func TestSummaryService_RebuildAndGet(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.Categories["plumbing"] = &domain.WorkCategory{ID: "plumbing", Name: "Plumbing"}

	roomRepo := testutil.NewMockRoomRepository()
	roomRepo.Rooms["og-bad"] = &domain.Room{ID: "og-bad", Name: "Bad", Floor: "OG"}
	roomRepo.Rooms["eg-kueche"] = &domain.Room{ID: "eg-kueche", Name: "Küche", Floor: "EG"}

	budgetRepo := testutil.NewMockBudgetRepository()
	budgetRepo.Lines["plumbing"] = &domain.BudgetLine{CategoryID: "plumbing", Planned: 1_000_000}

	expenseRepo := testutil.NewMockExpenseRepository()
	for i, e := range []*domain.Expense{
		{ID: "e1", Date: "2026-01-10", Amount: 200_000, CategoryID: "plumbing", Room: domain.RoomByID("og-bad"), Description: "Pipes"},
		{ID: "e2", Date: "2026-01-12", Amount: 100_000, CategoryID: "plumbing", Description: "Fittings"},
	} {
		e.CreatedAt = time.Date(2026, 1, 10+i, 0, 0, 0, 0, time.UTC)
		expenseRepo.Expenses[e.ID] = e
	}

	contractRepo := testutil.NewMockContractRepository()
	contractRepo.Contracts["c1"] = &domain.Contract{
		ID: "c1", CategoryID: "plumbing",
		Installments: []*domain.Installment{
			{ID: "i1", Amount: 150_000, Status: domain.StatusOpen},
		},
	}

	summaryRepo := testutil.NewMockSummaryRepository()
	summaryService := NewSummaryService(categoryRepo, roomRepo, budgetRepo, expenseRepo, contractRepo, summaryRepo)

	if _, err := summaryService.Get(); err != domain.ErrSummaryNotFound {
		t.Errorf("Expected ErrSummaryNotFound before first rebuild, got %v", err)
	}

	snapshot, err := summaryService.Rebuild("2026-02-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if snapshot.Totals.Spent != 300_000 {
		t.Errorf("Expected spent 300000, got %d", snapshot.Totals.Spent)
	}
	if snapshot.Totals.Budget != 1_000_000 {
		t.Errorf("Expected budget 1000000, got %d", snapshot.Totals.Budget)
	}
	if snapshot.OpenInstallments.Count != 1 || snapshot.OpenInstallments.Amount != 150_000 {
		t.Errorf("Unexpected open installments: %+v", snapshot.OpenInstallments)
	}
	if len(snapshot.Categories) != 1 || snapshot.Categories[0].Spent != 300_000 {
		t.Errorf("Unexpected categories: %+v", snapshot.Categories)
	}

	// Only rooms with spend make it into the snapshot
	if len(snapshot.Rooms) != 1 || snapshot.Rooms[0].ID != "og-bad" {
		t.Errorf("Expected only og-bad in snapshot rooms, got %+v", snapshot.Rooms)
	}
	if len(snapshot.RecentExpenses) != 2 {
		t.Errorf("Expected 2 recent expenses, got %d", len(snapshot.RecentExpenses))
	}
	// Newest created first
	if snapshot.RecentExpenses[0].Description != "Fittings" {
		t.Errorf("Expected newest expense first, got %s", snapshot.RecentExpenses[0].Description)
	}

	stored, err := summaryService.Get()
	if err != nil {
		t.Fatalf("Expected snapshot to be persisted, got %v", err)
	}
	if stored != snapshot {
		t.Error("Expected Get to return the persisted snapshot")
	}
}

func TestSummaryService_RebuildPublishesEvent(t *testing.T) {
	summaryService := NewSummaryService(
		testutil.NewMockCategoryRepository(),
		testutil.NewMockRoomRepository(),
		testutil.NewMockBudgetRepository(),
		testutil.NewMockExpenseRepository(),
		testutil.NewMockContractRepository(),
		testutil.NewMockSummaryRepository(),
	)
	publisher := &recordingPublisher{}
	summaryService.SetEventPublisher(publisher)

	snapshot, err := summaryService.Rebuild("2026-02-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Type != "summary.rebuilt" {
		t.Errorf("Expected summary.rebuilt event, got %s", event.Type)
	}
	if event.Payload != snapshot {
		t.Error("Expected event payload to carry the snapshot")
	}
}

func TestCalculateSummarySnapshot_RecentCap(t *testing.T) {
	var expenses []*domain.Expense
	for i := 0; i < 8; i++ {
		expenses = append(expenses, &domain.Expense{
			ID:        string(rune('a' + i)),
			Date:      "2026-01-10",
			Amount:    1,
			CreatedAt: time.Date(2026, 1, 1, i, 0, 0, 0, time.UTC),
		})
	}

	snapshot := CalculateSummarySnapshot(nil, nil, nil, expenses, nil, "2026-02-01")
	if len(snapshot.RecentExpenses) != SummaryRecentExpenses {
		t.Errorf("Expected %d recent expenses, got %d", SummaryRecentExpenses, len(snapshot.RecentExpenses))
	}
}
