package domain

import "time"

// Analysis is the optional prose assessment returned by the AI
// collaborator, split into its four fixed sections.
type Analysis struct {
	Summary            string   `json:"summary"`
	RiskAssessment     string   `json:"riskAssessment"`
	CashFlowAssessment string   `json:"cashFlowAssessment"`
	Recommendations    []string `json:"recommendations"`
}

// ReportData is the flat structure handed to the dashboard and the document
// renderer. It is assembled in one pass so both consumers see identical
// numbers; nothing in here is recomputed elsewhere.
type ReportData struct {
	GeneratedAt    time.Time          `json:"generatedAt"`
	Today          string             `json:"today"`
	TotalSpent     int64              `json:"totalSpent"`
	TotalBudget    int64              `json:"totalBudget"`
	Categories     []*CategorySummary `json:"categories"`
	Rooms          []*RoomSummary     `json:"rooms"`
	KindTotals     KindBreakdown      `json:"kindTotals"`
	Committed      *CommittedFunds    `json:"committed"`
	Forecast       *Forecast          `json:"forecast"`
	RecentExpenses []*Expense         `json:"recentExpenses"`
	Analysis       *Analysis          `json:"analysis,omitempty"`
}
