package service

import (
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// SummaryRecentExpenses is how many recently created expenses the snapshot
// keeps.
const SummaryRecentExpenses = 5

// SummaryService recomputes the persisted summary snapshot. The engine
// itself stays stateless: mutating services call Rebuild after every write
// to one of the source collections, and the snapshot is derived from a
// fresh read each time.
type SummaryService struct {
	categoryRepo domain.WorkCategoryRepository
	roomRepo     domain.RoomRepository
	budgetRepo   domain.BudgetLineRepository
	expenseRepo  domain.ExpenseRepository
	contractRepo domain.ContractRepository
	summaryRepo  domain.SummaryRepository

	eventPublisher websocket.EventPublisher
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	categoryRepo domain.WorkCategoryRepository,
	roomRepo domain.RoomRepository,
	budgetRepo domain.BudgetLineRepository,
	expenseRepo domain.ExpenseRepository,
	contractRepo domain.ContractRepository,
	summaryRepo domain.SummaryRepository,
) *SummaryService {
	return &SummaryService{
		categoryRepo: categoryRepo,
		roomRepo:     roomRepo,
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		contractRepo: contractRepo,
		summaryRepo:  summaryRepo,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *SummaryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SummaryService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// Get returns the last persisted snapshot.
func (s *SummaryService) Get() (*domain.SummarySnapshot, error) {
	return s.summaryRepo.Get()
}

// Rebuild recomputes the snapshot from the current collections and
// persists it.
func (s *SummaryService) Rebuild(today string) (*domain.SummarySnapshot, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomRepo.GetAll()
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.GetAll()
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.GetAll()
	if err != nil {
		return nil, err
	}
	contracts, err := s.contractRepo.GetAll()
	if err != nil {
		return nil, err
	}

	snapshot := CalculateSummarySnapshot(categories, rooms, budgets, expenses, contracts, today)
	if err := s.summaryRepo.Save(snapshot); err != nil {
		return nil, err
	}

	log.Debug().
		Int64("spent", snapshot.Totals.Spent).
		Int("open_installments", snapshot.OpenInstallments.Count).
		Msg("Summary snapshot rebuilt")

	s.publishEvent(websocket.SummaryRebuilt(snapshot))

	return snapshot, nil
}

// CalculateSummarySnapshot derives the snapshot: grand totals, per-category
// rows, rooms with nonzero spend, open installment totals and the most
// recently created expenses.
func CalculateSummarySnapshot(
	categories []*domain.WorkCategory,
	rooms []*domain.Room,
	budgets []*domain.BudgetLine,
	expenses []*domain.Expense,
	contracts []*domain.Contract,
	today string,
) *domain.SummarySnapshot {
	snapshot := &domain.SummarySnapshot{
		GeneratedAt: time.Now().UTC(),
		Totals: domain.SummaryTotals{
			Spent:  TotalSpent(expenses),
			Budget: TotalBudget(budgets),
		},
		OpenInstallments: CountOpenInstallments(contracts, today),
		Categories:       []domain.SummaryCategory{},
		Rooms:            []domain.SummaryRoom{},
		RecentExpenses:   []domain.SummaryExpense{},
	}

	for _, summary := range CalculateCategorySummaries(categories, budgets, expenses) {
		snapshot.Categories = append(snapshot.Categories, domain.SummaryCategory{
			ID:      summary.Category.ID,
			Name:    summary.Category.Name,
			Spent:   summary.Spent,
			Planned: summary.Planned,
			Delta:   summary.Delta,
			Count:   summary.Count,
		})
	}

	for _, summary := range CalculateRoomSummaries(rooms, expenses) {
		if summary.Spent <= 0 {
			continue
		}
		snapshot.Rooms = append(snapshot.Rooms, domain.SummaryRoom{
			ID:    summary.Room.ID,
			Name:  summary.Room.Name,
			Floor: summary.Room.Floor,
			Spent: summary.Spent,
		})
	}

	for _, e := range RecentExpenses(expenses, SummaryRecentExpenses) {
		snapshot.RecentExpenses = append(snapshot.RecentExpenses, domain.SummaryExpense{
			Date:        e.Date,
			Amount:      e.Amount,
			CategoryID:  e.CategoryID,
			Description: e.Description,
		})
	}

	return snapshot
}
