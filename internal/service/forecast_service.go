package service

import (
	"sort"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/util"
)

// ForecastService projects future spend against the remaining budget using
// the historical burn rate. Like the aggregation service it only loads the
// snapshot; the projection itself is a pure function of its inputs plus the
// explicit calendar date.
type ForecastService struct {
	categoryRepo domain.WorkCategoryRepository
	budgetRepo   domain.BudgetLineRepository
	expenseRepo  domain.ExpenseRepository
	contractRepo domain.ContractRepository
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	categoryRepo domain.WorkCategoryRepository,
	budgetRepo domain.BudgetLineRepository,
	expenseRepo domain.ExpenseRepository,
	contractRepo domain.ContractRepository,
) *ForecastService {
	return &ForecastService{
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		contractRepo: contractRepo,
	}
}

// BuildForecast computes the forecast for the given calendar date.
func (s *ForecastService) BuildForecast(today string) (*domain.Forecast, error) {
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
	contracts, err := s.contractRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return CalculateForecast(categories, budgets, expenses, contracts, today), nil
}

// CommittedFunds computes the committed funds alone, for callers that do not
// need the full projection.
func (s *ForecastService) CommittedFunds(today string) (*domain.CommittedFunds, error) {
	contracts, err := s.contractRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return CalculateCommittedFunds(contracts, today), nil
}

// monthBucket is one calendar month of spend, with the running cumulative
// total up to and including it.
type monthBucket struct {
	Key        string
	Total      int64
	Cumulative int64
}

// monthlyBuckets groups expenses by calendar month, ascending. Month keys
// are YYYY-MM, so lexicographic order is chronological order.
func monthlyBuckets(expenses []*domain.Expense) []monthBucket {
	totals := make(map[string]int64)
	for _, e := range expenses {
		totals[e.MonthKey()] += e.Amount
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]monthBucket, 0, len(keys))
	var cumulative int64
	for _, key := range keys {
		cumulative += totals[key]
		buckets = append(buckets, monthBucket{Key: key, Total: totals[key], Cumulative: cumulative})
	}
	return buckets
}

// CalculateForecast derives burn rate, exhaustion date, chart series and
// per-category projections from the raw collections. With no expenses at
// all it short-circuits to the plain totals instead of dividing by zero.
func CalculateForecast(
	categories []*domain.WorkCategory,
	budgets []*domain.BudgetLine,
	expenses []*domain.Expense,
	contracts []*domain.Contract,
	today string,
) *domain.Forecast {
	forecast := &domain.Forecast{
		TotalBudget:  TotalBudget(budgets),
		ExpenseCount: len(expenses),
		Confidence:   domain.ConfidenceLow,
		Committed:    CalculateCommittedFunds(contracts, today),
		Categories:   []*domain.CategoryProjection{},
	}

	if len(expenses) == 0 {
		forecast.NoData = true
		forecast.Remaining = forecast.TotalBudget
		return forecast
	}

	buckets := monthlyBuckets(expenses)
	last := buckets[len(buckets)-1]

	forecast.TotalSpent = last.Cumulative
	forecast.ActiveMonths = len(buckets)
	forecast.BurnRate = roundDiv(forecast.TotalSpent, int64(len(buckets)))
	forecast.Remaining = forecast.TotalBudget - forecast.TotalSpent

	if forecast.BurnRate > 0 && forecast.Remaining > 0 {
		months := int(ceilDiv(forecast.Remaining, forecast.BurnRate))
		forecast.MonthsRemaining = &months
		exhaustionKey := util.AddMonths(last.Key, months)
		label := util.MonthLabel(exhaustionKey)
		forecast.ExhaustionMonth = &label
		date := util.FirstOfMonth(exhaustionKey)
		forecast.ExhaustionDate = &date
	}

	switch {
	case forecast.ActiveMonths < 2:
		forecast.Confidence = domain.ConfidenceLow
	case forecast.ActiveMonths < 4:
		forecast.Confidence = domain.ConfidenceMedium
	default:
		forecast.Confidence = domain.ConfidenceHigh
	}

	forecast.Chart = buildChartSeries(buckets, forecast)
	forecast.Categories = calculateCategoryProjections(
		categories, budgets, expenses, contracts,
		forecast.TotalSpent, forecast.TotalBudget, forecast.Committed,
	)

	return forecast
}

// buildChartSeries lays out the historical cumulative line, the projected
// continuation and the constant budget line over one shared label axis.
// The projected series starts at the last historical value so the lines
// join seamlessly, then advances by the burn rate per month, capped at the
// total budget, for at most MaxForecastMonths or until the cap is hit.
func buildChartSeries(buckets []monthBucket, forecast *domain.Forecast) domain.ChartSeries {
	series := domain.ChartSeries{}
	last := buckets[len(buckets)-1]

	for i, bucket := range buckets {
		cumulative := bucket.Cumulative
		series.Labels = append(series.Labels, util.MonthLabel(bucket.Key))
		series.Actual = append(series.Actual, &cumulative)
		if i == len(buckets)-1 {
			seam := last.Cumulative
			series.Projected = append(series.Projected, &seam)
		} else {
			series.Projected = append(series.Projected, nil)
		}
		series.Budget = append(series.Budget, forecast.TotalBudget)
	}

	maxMonths := domain.MaxForecastMonths
	if forecast.MonthsRemaining != nil && *forecast.MonthsRemaining < maxMonths {
		maxMonths = *forecast.MonthsRemaining
	}

	for i := 1; i <= maxMonths; i++ {
		projected := forecast.TotalSpent + forecast.BurnRate*int64(i)
		capped := projected
		if capped > forecast.TotalBudget {
			capped = forecast.TotalBudget
		}

		series.Labels = append(series.Labels, util.MonthLabel(util.AddMonths(last.Key, i)))
		series.Actual = append(series.Actual, nil)
		series.Projected = append(series.Projected, &capped)
		series.Budget = append(series.Budget, forecast.TotalBudget)

		if projected >= forecast.TotalBudget {
			break
		}
	}

	return series
}

// calculateCategoryProjections derives one total-at-completion per work
// category. A category with at least one fixed-price contract projects
// from contract evidence (contract values plus spend not originating from
// any contract); otherwise, if it has any spend, it extrapolates its share
// of the total budget proportionally. Contract evidence always wins when
// both are available.
func calculateCategoryProjections(
	categories []*domain.WorkCategory,
	budgets []*domain.BudgetLine,
	expenses []*domain.Expense,
	contracts []*domain.Contract,
	totalSpent, totalBudget int64,
	committed *domain.CommittedFunds,
) []*domain.CategoryProjection {
	planned := make(map[string]int64, len(budgets))
	for _, b := range budgets {
		planned[b.CategoryID] = b.Planned
	}

	projections := make([]*domain.CategoryProjection, 0, len(categories))
	for _, category := range sortedCategories(categories) {
		var spent, directSpent int64
		for _, e := range expenses {
			if e.CategoryID != category.ID {
				continue
			}
			spent += e.Amount
			if e.ContractID == nil {
				directSpent += e.Amount
			}
		}

		var contractTotal int64
		hasContractSum := false
		for _, c := range contracts {
			if c.CategoryID != category.ID {
				continue
			}
			if total, ok := c.TotalValue(); ok {
				hasContractSum = true
				contractTotal += total
			}
		}

		projection := &domain.CategoryProjection{
			Category:  category,
			Planned:   planned[category.ID],
			Spent:     spent,
			Committed: committed.ByCategory[category.ID],
			Status:    domain.ProjectionOK,
		}

		switch {
		case hasContractSum:
			value := contractTotal + directSpent
			source := domain.ProjectionContractBased
			projection.Projected = &value
			projection.Source = &source
		case spent > 0 && totalSpent > 0:
			value := roundDiv(spent*totalBudget, totalSpent)
			source := domain.ProjectionProportional
			projection.Projected = &value
			projection.Source = &source
		}

		if projection.Projected != nil {
			delta := projection.Planned - *projection.Projected
			projection.Delta = &delta
			projection.Status = projectionStatus(*projection.Projected, projection.Planned)
		}

		projections = append(projections, projection)
	}
	return projections
}

// projectionStatus grades a projected total against the planned budget:
// critical above 100%, warning above 80%, warning for any projection when
// nothing was planned at all.
func projectionStatus(projected, planned int64) domain.ProjectionStatus {
	if planned == 0 {
		if projected > 0 {
			return domain.ProjectionWarning
		}
		return domain.ProjectionOK
	}
	if projected > planned {
		return domain.ProjectionCritical
	}
	if projected*5 > planned*4 {
		return domain.ProjectionWarning
	}
	return domain.ProjectionOK
}

// ceilDiv divides a by b rounding up; callers guarantee both positive.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
