package service

import (
	"sort"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/util"
)

// DashboardRecentExpenses is how many recently created expenses the
// dashboard shows.
const DashboardRecentExpenses = 10

// AggregationService folds the raw record collections into per-category and
// per-room summaries. All computation happens in pure package-level
// functions over an in-memory snapshot; the service only supplies the
// snapshot from its repositories.
type AggregationService struct {
	categoryRepo domain.WorkCategoryRepository
	roomRepo     domain.RoomRepository
	budgetRepo   domain.BudgetLineRepository
	expenseRepo  domain.ExpenseRepository
	contractRepo domain.ContractRepository
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	categoryRepo domain.WorkCategoryRepository,
	roomRepo domain.RoomRepository,
	budgetRepo domain.BudgetLineRepository,
	expenseRepo domain.ExpenseRepository,
	contractRepo domain.ContractRepository,
) *AggregationService {
	return &AggregationService{
		categoryRepo: categoryRepo,
		roomRepo:     roomRepo,
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		contractRepo: contractRepo,
	}
}

// CategorySummaries returns the per-category summaries for the current
// collections.
func (s *AggregationService) CategorySummaries() ([]*domain.CategorySummary, error) {
	categories, err := s.categoryRepo.GetAll()
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
	return CalculateCategorySummaries(categories, budgets, expenses), nil
}

// RoomSummaries returns the per-room summaries, floor-level virtual rooms
// first.
func (s *AggregationService) RoomSummaries() ([]*domain.RoomSummary, error) {
	rooms, err := s.roomRepo.GetAll()
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return CalculateRoomSummaries(rooms, expenses), nil
}

// Dashboard assembles the start-page aggregates for the given calendar
// date.
func (s *AggregationService) Dashboard(today string) (*domain.Dashboard, error) {
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
	return CalculateDashboard(categories, rooms, budgets, expenses, contracts, today), nil
}

// CalculateCategorySummaries folds expenses into one summary per work
// category, in sort order. A category without a budget line still appears
// with planned 0. Expenses referencing an unknown category match no bucket
// but still count toward the grand totals computed elsewhere.
func CalculateCategorySummaries(
	categories []*domain.WorkCategory,
	budgets []*domain.BudgetLine,
	expenses []*domain.Expense,
) []*domain.CategorySummary {
	planned := make(map[string]int64, len(budgets))
	for _, b := range budgets {
		planned[b.CategoryID] = b.Planned
	}

	summaries := make([]*domain.CategorySummary, 0, len(categories))
	for _, category := range sortedCategories(categories) {
		summary := &domain.CategorySummary{
			Category: category,
			Planned:  planned[category.ID],
		}
		for _, e := range expenses {
			if e.CategoryID != category.ID {
				continue
			}
			summary.Spent += e.Amount
			summary.ByKind.Add(e.Kind, e.Amount)
			summary.Count++
		}
		summary.Delta = summary.Planned - summary.Spent
		summaries = append(summaries, summary)
	}
	return summaries
}

// CalculateRoomSummaries folds expenses into one summary per room, in sort
// order, preceded by one virtual summary per floor that has whole-floor
// expenses. Virtual rooms are synthesized on the fly and never part of the
// room collection.
func CalculateRoomSummaries(rooms []*domain.Room, expenses []*domain.Expense) []*domain.RoomSummary {
	var summaries []*domain.RoomSummary

	for _, floor := range floorsOf(rooms) {
		summary := &domain.RoomSummary{
			Room: &domain.Room{
				ID:        "floor-" + util.Slugify(floor),
				Name:      floor + " (whole floor)",
				Floor:     floor,
				SortOrder: -1,
			},
			Virtual:    true,
			ByCategory: make(map[string]int64),
		}
		matched := 0
		for _, e := range expenses {
			if e.Room.Kind != domain.RoomRefFloor || e.Room.Floor != floor {
				continue
			}
			summary.Spent += e.Amount
			summary.ByCategory[e.CategoryID] += e.Amount
			matched++
		}
		if matched > 0 {
			summaries = append(summaries, summary)
		}
	}

	for _, room := range sortedRooms(rooms) {
		summary := &domain.RoomSummary{
			Room:       room,
			ByCategory: make(map[string]int64),
		}
		for _, e := range expenses {
			if e.Room.Kind != domain.RoomRefRoom || e.Room.RoomID != room.ID {
				continue
			}
			summary.Spent += e.Amount
			summary.ByCategory[e.CategoryID] += e.Amount
		}
		summaries = append(summaries, summary)
	}

	return summaries
}

// CalculateKindTotals sums all expenses by spend kind, dangling references
// included.
func CalculateKindTotals(expenses []*domain.Expense) domain.KindBreakdown {
	var totals domain.KindBreakdown
	for _, e := range expenses {
		totals.Add(e.Kind, e.Amount)
	}
	return totals
}

// TotalSpent is the grand total over all expenses, regardless of whether
// their category or room still exists.
func TotalSpent(expenses []*domain.Expense) int64 {
	var total int64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// TotalBudget sums the planned amounts of all budget lines.
func TotalBudget(budgets []*domain.BudgetLine) int64 {
	var total int64
	for _, b := range budgets {
		total += b.Planned
	}
	return total
}

// ActiveMonths counts the distinct calendar months with at least one
// expense.
func ActiveMonths(expenses []*domain.Expense) int {
	months := make(map[string]struct{})
	for _, e := range expenses {
		months[e.MonthKey()] = struct{}{}
	}
	return len(months)
}

// RecentExpenses returns the n most recently created expenses, newest
// first. Creation time, not the expense date, decides the order.
func RecentExpenses(expenses []*domain.Expense, n int) []*domain.Expense {
	recent := make([]*domain.Expense, len(expenses))
	copy(recent, expenses)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

// CalculateDashboard combines the aggregates for the project start page.
func CalculateDashboard(
	categories []*domain.WorkCategory,
	rooms []*domain.Room,
	budgets []*domain.BudgetLine,
	expenses []*domain.Expense,
	contracts []*domain.Contract,
	today string,
) *domain.Dashboard {
	dashboard := &domain.Dashboard{
		TotalSpent:     TotalSpent(expenses),
		TotalBudget:    TotalBudget(budgets),
		Categories:     CalculateCategorySummaries(categories, budgets, expenses),
		Rooms:          CalculateRoomSummaries(rooms, expenses),
		RecentExpenses: RecentExpenses(expenses, DashboardRecentExpenses),
		ActiveMonths:   ActiveMonths(expenses),
	}
	if dashboard.ActiveMonths > 0 {
		dashboard.AvgPerMonth = roundDiv(dashboard.TotalSpent, int64(dashboard.ActiveMonths))
	}

	for _, c := range contracts {
		var contractOutstanding int64
		for _, inst := range c.Installments {
			switch inst.EffectiveStatus(today) {
			case domain.StatusOverdue:
				dashboard.HasOverdue = true
				contractOutstanding += inst.Amount
			case domain.StatusOpen:
				contractOutstanding += inst.Amount
			}
		}
		if total, ok := c.TotalValue(); ok {
			if unbilled := total - c.InvoicedTotal(); unbilled > 0 {
				contractOutstanding += unbilled
			}
		}
		if contractOutstanding != 0 {
			dashboard.Outstanding += contractOutstanding
			dashboard.OutstandingContracts++
		}
	}

	return dashboard
}

func sortedCategories(categories []*domain.WorkCategory) []*domain.WorkCategory {
	sorted := make([]*domain.WorkCategory, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})
	return sorted
}

func sortedRooms(rooms []*domain.Room) []*domain.Room {
	sorted := make([]*domain.Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})
	return sorted
}

func floorsOf(rooms []*domain.Room) []string {
	seen := make(map[string]struct{})
	var floors []string
	for _, r := range rooms {
		if _, ok := seen[r.Floor]; ok {
			continue
		}
		seen[r.Floor] = struct{}{}
		floors = append(floors, r.Floor)
	}
	sort.Strings(floors)
	return floors
}

// roundDiv divides a by b rounding half away from zero, matching how burn
// rates and proportional projections are rounded everywhere in this engine.
func roundDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	if (a < 0) != (b < 0) {
		return (a - b/2) / b
	}
	return (a + b/2) / b
}
