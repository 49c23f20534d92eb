package service

import "github.com/baufin/baufin-backend/internal/domain"

// CalculateCommittedFunds folds contracts into the funds that are already
// obligated but not yet recorded as expenses:
//
//   - every installment that is effectively open or overdue on the given
//     date contributes its invoiced amount, and
//   - every contract with a known contract sum contributes the positive
//     remainder of sum + change orders minus everything invoiced so far,
//     regardless of installment status.
//
// Expense records are deliberately never consulted; committed funds run
// strictly parallel to recorded spend.
func CalculateCommittedFunds(contracts []*domain.Contract, today string) *domain.CommittedFunds {
	committed := &domain.CommittedFunds{ByCategory: make(map[string]int64)}

	for _, contract := range contracts {
		for _, inst := range contract.Installments {
			switch inst.EffectiveStatus(today) {
			case domain.StatusOpen, domain.StatusOverdue:
				committed.Total += inst.Amount
				committed.ByCategory[contract.CategoryID] += inst.Amount
			}
		}

		if total, ok := contract.TotalValue(); ok {
			if unbilled := total - contract.InvoicedTotal(); unbilled > 0 {
				committed.Total += unbilled
				committed.ByCategory[contract.CategoryID] += unbilled
			}
		}
	}

	return committed
}

// CountOpenInstallments tallies installments that are effectively open or
// overdue, for the summary snapshot.
func CountOpenInstallments(contracts []*domain.Contract, today string) domain.OpenInstallmentTotals {
	var totals domain.OpenInstallmentTotals
	for _, contract := range contracts {
		for _, inst := range contract.Installments {
			switch inst.EffectiveStatus(today) {
			case domain.StatusOpen, domain.StatusOverdue:
				totals.Count++
				totals.Amount += inst.Amount
			}
		}
	}
	return totals
}
