package domain

import "time"

// KindBreakdown splits a spent amount by spend kind.
type KindBreakdown struct {
	Material int64 `json:"material"`
	Labor    int64 `json:"labor"`
	Other    int64 `json:"other"`
}

// Add accumulates amount into the bucket for kind. Unknown kinds land in
// Other so historical records with drifted values still sum up.
func (b *KindBreakdown) Add(kind SpendKind, amount int64) {
	switch kind {
	case SpendKindMaterial:
		b.Material += amount
	case SpendKindLabor:
		b.Labor += amount
	default:
		b.Other += amount
	}
}

// CategorySummary is the derived spend picture of one work category.
// Delta is planned minus spent; positive means under budget.
type CategorySummary struct {
	Category *WorkCategory `json:"category"`
	Spent    int64         `json:"spent"`
	ByKind   KindBreakdown `json:"byKind"`
	Planned  int64         `json:"planned"`
	Delta    int64         `json:"delta"`
	Count    int           `json:"count"`
}

// RoomSummary is the derived spend picture of one room. Virtual marks
// floor-level summaries synthesized from whole-floor expenses; those are
// listed before the real rooms and are not part of the room collection.
type RoomSummary struct {
	Room       *Room            `json:"room"`
	Virtual    bool             `json:"virtual,omitempty"`
	Spent      int64            `json:"spent"`
	ByCategory map[string]int64 `json:"byCategory"`
}

// Dashboard combines the aggregates shown on the project start page.
type Dashboard struct {
	TotalSpent           int64              `json:"totalSpent"`
	TotalBudget          int64              `json:"totalBudget"`
	Categories           []*CategorySummary `json:"categories"`
	Rooms                []*RoomSummary     `json:"rooms"`
	RecentExpenses       []*Expense         `json:"recentExpenses"`
	ActiveMonths         int                `json:"activeMonths"`
	AvgPerMonth          int64              `json:"avgPerMonth"`
	Outstanding          int64              `json:"outstanding"`
	OutstandingContracts int                `json:"outstandingContracts"`
	HasOverdue           bool               `json:"hasOverdue"`
}

// SummaryTotals are the grand totals of the snapshot.
type SummaryTotals struct {
	Spent  int64 `json:"spent"`
	Budget int64 `json:"budget"`
}

// OpenInstallmentTotals counts installments that are effectively open or
// overdue.
type OpenInstallmentTotals struct {
	Count  int   `json:"count"`
	Amount int64 `json:"amount"`
}

// SummaryCategory is one per-category row of the snapshot.
type SummaryCategory struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Spent   int64  `json:"spent"`
	Planned int64  `json:"planned"`
	Delta   int64  `json:"delta"`
	Count   int    `json:"count"`
}

// SummaryRoom is one per-room row of the snapshot; only rooms with nonzero
// spend are included.
type SummaryRoom struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Floor string `json:"floor"`
	Spent int64  `json:"spent"`
}

// SummaryExpense is a trimmed expense row for the snapshot.
type SummaryExpense struct {
	Date        string `json:"date"`
	Amount      int64  `json:"amount"`
	CategoryID  string `json:"categoryId"`
	Description string `json:"description"`
}

// SummarySnapshot is the derived artifact persisted by the storage layer
// and rewritten after every write to one of the source collections. The
// engine never reads it back; it exists for cheap dashboard access and
// external consumers.
type SummarySnapshot struct {
	GeneratedAt      time.Time             `json:"generatedAt"`
	Totals           SummaryTotals         `json:"totals"`
	OpenInstallments OpenInstallmentTotals `json:"openInstallments"`
	Categories       []SummaryCategory     `json:"categories"`
	Rooms            []SummaryRoom         `json:"rooms"`
	RecentExpenses   []SummaryExpense      `json:"recentExpenses"`
}

type SummaryRepository interface {
	Save(snapshot *SummarySnapshot) error
	Get() (*SummarySnapshot, error)
}
