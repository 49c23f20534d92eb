package domain

// Confidence is the forecast confidence tier, a pure lookup on the number
// of months with spend activity.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// MaxForecastMonths caps how far the projected chart series extends past
// the last historical month.
const MaxForecastMonths = 18

// ProjectionSource tags how a category's total-at-completion was derived.
// Contract evidence always wins over proportional extrapolation.
type ProjectionSource string

const (
	ProjectionContractBased ProjectionSource = "contract"
	ProjectionProportional  ProjectionSource = "proportional"
)

// ProjectionStatus grades a projection against the planned budget.
type ProjectionStatus string

const (
	ProjectionOK       ProjectionStatus = "ok"
	ProjectionWarning  ProjectionStatus = "warning"
	ProjectionCritical ProjectionStatus = "critical"
)

// ChartSeries holds the aligned label and value series for the cash-flow
// chart. Actual carries cumulative values for historical months and nil
// afterwards; Projected is nil for all historical months except the last
// one, where it repeats the actual value so the two lines join without a
// gap. Budget is the constant total budget for every label.
type ChartSeries struct {
	Labels    []string `json:"labels"`
	Actual    []*int64 `json:"actual"`
	Projected []*int64 `json:"projected"`
	Budget    []int64  `json:"budget"`
}

// CategoryProjection is the projected total-at-completion of one work
// category. Projected and Delta are nil when the category has neither
// contract evidence nor any spend to extrapolate from.
type CategoryProjection struct {
	Category  *WorkCategory     `json:"category"`
	Planned   int64             `json:"planned"`
	Spent     int64             `json:"spent"`
	Committed int64             `json:"committed"`
	Projected *int64            `json:"projected"`
	Delta     *int64            `json:"delta"`
	Status    ProjectionStatus  `json:"status"`
	Source    *ProjectionSource `json:"source"`
}

// CommittedFunds is money contractually obligated but not yet recorded as
// an expense: open and overdue installments plus positive unbilled contract
// remainders.
type CommittedFunds struct {
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"byCategory"`
}

// Forecast is the full cash-flow projection. When no expenses exist,
// NoData is set, the numeric fields carry the plain totals and the chart
// and category slices are empty.
type Forecast struct {
	NoData          bool                  `json:"noData"`
	BurnRate        int64                 `json:"burnRate"`
	TotalSpent      int64                 `json:"totalSpent"`
	TotalBudget     int64                 `json:"totalBudget"`
	Remaining       int64                 `json:"remaining"`
	MonthsRemaining *int                  `json:"monthsRemaining"`
	ExhaustionMonth *string               `json:"exhaustionMonth"`
	ExhaustionDate  *string               `json:"exhaustionDate"`
	ActiveMonths    int                   `json:"activeMonths"`
	ExpenseCount    int                   `json:"expenseCount"`
	Confidence      Confidence            `json:"confidence"`
	Chart           ChartSeries           `json:"chart"`
	Categories      []*CategoryProjection `json:"categories"`
	Committed       *CommittedFunds       `json:"committed"`
}
