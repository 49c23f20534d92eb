package domain

// WorkCategory is a trade bucket (plumbing, electrical, ...) that expenses
// and budget lines are attributed to. The ID is derived from the name once,
// at creation, and never recomputed afterwards.
type WorkCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sortOrder"`
	IsLumpSum bool   `json:"isLumpSum,omitempty"`
}

// BudgetLine is the planned spend ceiling for one work category.
// Amounts are integer cents, like every monetary value in this system.
type BudgetLine struct {
	CategoryID string `json:"categoryId"`
	Planned    int64  `json:"planned"`
	Note       string `json:"note"`
}

type WorkCategoryRepository interface {
	Create(category *WorkCategory) error
	GetByID(id string) (*WorkCategory, error)
	GetAll() ([]*WorkCategory, error)
	Update(category *WorkCategory) error
	Delete(id string) error
}

type BudgetLineRepository interface {
	GetAll() ([]*BudgetLine, error)
	GetByCategory(categoryID string) (*BudgetLine, error)
	Upsert(line *BudgetLine) error
	DeleteByCategory(categoryID string) error
}
