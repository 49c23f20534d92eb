package postgres

import (
	"context"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.WorkCategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new work category
func (r *CategoryRepository) Create(category *domain.WorkCategory) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO work_categories (id, name, color, sort_order, is_lump_sum)
		 VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.Name, category.Color, category.SortOrder, category.IsLumpSum)
	if isUniqueViolation(err) {
		return domain.ErrCategoryExists
	}
	return err
}

// GetByID retrieves a work category by ID
func (r *CategoryRepository) GetByID(id string) (*domain.WorkCategory, error) {
	ctx := context.Background()
	category := &domain.WorkCategory{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, color, sort_order, is_lump_sum
		 FROM work_categories WHERE id = $1`, id).
		Scan(&category.ID, &category.Name, &category.Color, &category.SortOrder, &category.IsLumpSum)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// GetAll retrieves all work categories in sort order
func (r *CategoryRepository) GetAll() ([]*domain.WorkCategory, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, color, sort_order, is_lump_sum
		 FROM work_categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.WorkCategory
	for rows.Next() {
		category := &domain.WorkCategory{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Color,
			&category.SortOrder, &category.IsLumpSum); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update replaces a work category's editable fields
func (r *CategoryRepository) Update(category *domain.WorkCategory) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE work_categories
		 SET name = $2, color = $3, sort_order = $4, is_lump_sum = $5
		 WHERE id = $1`,
		category.ID, category.Name, category.Color, category.SortOrder, category.IsLumpSum)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a work category. The budget line goes with it via the
// foreign key cascade.
func (r *CategoryRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM work_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// BudgetLineRepository implements domain.BudgetLineRepository using PostgreSQL
type BudgetLineRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetLineRepository creates a new BudgetLineRepository
func NewBudgetLineRepository(pool *pgxpool.Pool) *BudgetLineRepository {
	return &BudgetLineRepository{pool: pool}
}

// GetAll retrieves all budget lines
func (r *BudgetLineRepository) GetAll() ([]*domain.BudgetLine, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT category_id, planned, note FROM budget_lines`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.BudgetLine
	for rows.Next() {
		line := &domain.BudgetLine{}
		if err := rows.Scan(&line.CategoryID, &line.Planned, &line.Note); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetByCategory retrieves the budget line of one category
func (r *BudgetLineRepository) GetByCategory(categoryID string) (*domain.BudgetLine, error) {
	ctx := context.Background()
	line := &domain.BudgetLine{}
	err := r.pool.QueryRow(ctx,
		`SELECT category_id, planned, note FROM budget_lines WHERE category_id = $1`,
		categoryID).
		Scan(&line.CategoryID, &line.Planned, &line.Note)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return line, nil
}

// Upsert creates or replaces the budget line of a category
func (r *BudgetLineRepository) Upsert(line *domain.BudgetLine) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO budget_lines (category_id, planned, note)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (category_id) DO UPDATE SET planned = $2, note = $3`,
		line.CategoryID, line.Planned, line.Note)
	return err
}

// DeleteByCategory removes the budget line of a category
func (r *BudgetLineRepository) DeleteByCategory(categoryID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM budget_lines WHERE category_id = $1`, categoryID)
	return err
}
