package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ReportRecentExpenses is how many recently created expenses the report
// lists.
const ReportRecentExpenses = 10

// ReportService assembles the flat report structure consumed by both the
// dashboard view and the document renderer, plus the plain-text dump handed
// to the analysis collaborator. Everything is computed exactly once per
// build from one snapshot, so the two consumers can never drift apart.
type ReportService struct {
	categoryRepo domain.WorkCategoryRepository
	roomRepo     domain.RoomRepository
	budgetRepo   domain.BudgetLineRepository
	expenseRepo  domain.ExpenseRepository
	contractRepo domain.ContractRepository
	supplierRepo domain.SupplierRepository
	deliveryRepo domain.DeliveryRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	categoryRepo domain.WorkCategoryRepository,
	roomRepo domain.RoomRepository,
	budgetRepo domain.BudgetLineRepository,
	expenseRepo domain.ExpenseRepository,
	contractRepo domain.ContractRepository,
	supplierRepo domain.SupplierRepository,
	deliveryRepo domain.DeliveryRepository,
) *ReportService {
	return &ReportService{
		categoryRepo: categoryRepo,
		roomRepo:     roomRepo,
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		contractRepo: contractRepo,
		supplierRepo: supplierRepo,
		deliveryRepo: deliveryRepo,
	}
}

// reportSnapshot is one consistent read of all source collections.
type reportSnapshot struct {
	categories []*domain.WorkCategory
	rooms      []*domain.Room
	budgets    []*domain.BudgetLine
	expenses   []*domain.Expense
	contracts  []*domain.Contract
	suppliers  []*domain.Supplier
	deliveries []*domain.Delivery
}

func (s *ReportService) snapshot() (*reportSnapshot, error) {
	snap := &reportSnapshot{}
	var err error
	if snap.categories, err = s.categoryRepo.GetAll(); err != nil {
		return nil, err
	}
	if snap.rooms, err = s.roomRepo.GetAll(); err != nil {
		return nil, err
	}
	if snap.budgets, err = s.budgetRepo.GetAll(); err != nil {
		return nil, err
	}
	if snap.expenses, err = s.expenseRepo.GetAll(); err != nil {
		return nil, err
	}
	if snap.contracts, err = s.contractRepo.GetAll(); err != nil {
		return nil, err
	}
	if snap.suppliers, err = s.supplierRepo.GetAll(); err != nil {
		return nil, err
	}
	if snap.deliveries, err = s.deliveryRepo.GetAll(); err != nil {
		return nil, err
	}
	return snap, nil
}

// BuildReportData assembles the report structure for the given date.
func (s *ReportService) BuildReportData(today string) (*domain.ReportData, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return assembleReportData(snap, today), nil
}

// BuildReport assembles the report structure and its plain-text rendering
// from a single snapshot.
func (s *ReportService) BuildReport(today string) (*domain.ReportData, string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, "", err
	}
	data := assembleReportData(snap, today)
	return data, renderReportText(data, snap), nil
}

// assembleReportData is pure composition over the snapshot: the forecast is
// computed once and its committed-funds result is reused instead of being
// derived a second time.
func assembleReportData(snap *reportSnapshot, today string) *domain.ReportData {
	forecast := CalculateForecast(snap.categories, snap.budgets, snap.expenses, snap.contracts, today)

	return &domain.ReportData{
		GeneratedAt:    time.Now().UTC(),
		Today:          today,
		TotalSpent:     TotalSpent(snap.expenses),
		TotalBudget:    TotalBudget(snap.budgets),
		Categories:     CalculateCategorySummaries(snap.categories, snap.budgets, snap.expenses),
		Rooms:          CalculateRoomSummaries(snap.rooms, snap.expenses),
		KindTotals:     CalculateKindTotals(snap.expenses),
		Committed:      forecast.Committed,
		Forecast:       forecast,
		RecentExpenses: RecentExpenses(snap.expenses, ReportRecentExpenses),
	}
}

// renderReportText flattens the numeric report into the sectioned plain
// text the analysis collaborator consumes.
func renderReportText(data *domain.ReportData, snap *reportSnapshot) string {
	categoryNames := make(map[string]string, len(snap.categories))
	for _, c := range snap.categories {
		categoryNames[c.ID] = c.Name
	}

	var b strings.Builder

	b.WriteString("=== PROJECT OVERVIEW ===\n")
	fmt.Fprintf(&b, "Total budget: %s\n", formatEUR(data.TotalBudget))
	fmt.Fprintf(&b, "Spent so far: %s\n", formatEUR(data.TotalSpent))
	fmt.Fprintf(&b, "Remaining: %s\n", formatEUR(data.TotalBudget-data.TotalSpent))
	fmt.Fprintf(&b, "Used: %d%%\n", percentOf(data.TotalSpent, data.TotalBudget))
	fmt.Fprintf(&b, "Number of expenses: %d\n\n", len(snap.expenses))

	b.WriteString("=== BUDGET BY CATEGORY ===\n")
	for _, s := range data.Categories {
		suffix := ""
		if s.Category.IsLumpSum {
			suffix = " [lump sum]"
		}
		fmt.Fprintf(&b, "%s: planned %s, spent %s, delta %s (%d%%)%s\n",
			s.Category.Name, formatEUR(s.Planned), formatEUR(s.Spent),
			formatEUR(s.Delta), percentOf(s.Spent, s.Planned), suffix)
	}
	b.WriteString("\n")

	if len(snap.contracts) > 0 {
		b.WriteString("=== CONTRACTS ===\n")
		var openTotal int64
		for _, c := range snap.contracts {
			total, _ := c.TotalValue()
			var paid, open int64
			hasOverdue := false
			for _, inst := range c.Installments {
				switch inst.EffectiveStatus(data.Today) {
				case domain.StatusPaid:
					paid += inst.Amount
				case domain.StatusOverdue:
					open += inst.Amount
					hasOverdue = true
				case domain.StatusOpen:
					open += inst.Amount
				}
			}
			openTotal += open

			name := categoryNames[c.CategoryID]
			if name == "" {
				name = c.CategoryID
			}
			flag := ""
			if hasOverdue {
				flag = " [OVERDUE]"
			}
			fmt.Fprintf(&b, "%s (%s): contract %s, paid %s, open %s%s\n",
				c.Counterparty, name, formatEUR(total), formatEUR(paid), formatEUR(open), flag)
		}
		fmt.Fprintf(&b, "Total committed funds (open invoices): %s\n\n", formatEUR(openTotal))
	}

	buckets := monthlyBuckets(snap.expenses)
	if len(buckets) > 0 {
		b.WriteString("=== MONTHLY SPEND ===\n")
		for _, bucket := range buckets {
			fmt.Fprintf(&b, "%s: %s\n", bucket.Key, formatEUR(bucket.Total))
		}
		fmt.Fprintf(&b, "Average burn rate: %s / month\n\n", formatEUR(data.Forecast.BurnRate))
	}

	if len(snap.suppliers) > 0 {
		b.WriteString("=== SUPPLIERS ===\n")
		for _, supplier := range snap.suppliers {
			var count int
			var total int64
			for _, d := range snap.deliveries {
				if d.SupplierID != supplier.ID {
					continue
				}
				count++
				if d.Amount != nil {
					total += *d.Amount
				}
			}
			if count > 0 {
				fmt.Fprintf(&b, "%s: %d deliveries, %s\n", supplier.Name, count, formatEUR(total))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatEUR renders cents as a fixed two-decimal euro amount.
func formatEUR(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2) + " EUR"
}

// percentOf returns spent as a rounded percentage of budget, 0 when no
// budget is set.
func percentOf(spent, budget int64) int64 {
	if budget == 0 {
		return 0
	}
	return roundDiv(spent*100, budget)
}
