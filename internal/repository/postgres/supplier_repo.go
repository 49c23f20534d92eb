package postgres

import (
	"context"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SupplierRepository implements domain.SupplierRepository using PostgreSQL
type SupplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository creates a new SupplierRepository
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{pool: pool}
}

// Create creates a new supplier
func (r *SupplierRepository) Create(supplier *domain.Supplier) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO suppliers (id, name, note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		supplier.ID, supplier.Name, supplier.Note, supplier.CreatedAt, supplier.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrSupplierExists
	}
	return err
}

// GetByID retrieves a supplier by ID
func (r *SupplierRepository) GetByID(id string) (*domain.Supplier, error) {
	ctx := context.Background()
	supplier := &domain.Supplier{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, note, created_at, updated_at FROM suppliers WHERE id = $1`, id).
		Scan(&supplier.ID, &supplier.Name, &supplier.Note, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetAll retrieves all suppliers ordered by name
func (r *SupplierRepository) GetAll() ([]*domain.Supplier, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, note, created_at, updated_at FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*domain.Supplier
	for rows.Next() {
		supplier := &domain.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.Note,
			&supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}

// Update replaces a supplier's editable fields
func (r *SupplierRepository) Update(supplier *domain.Supplier) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE suppliers SET name = $2, note = $3, updated_at = $4 WHERE id = $1`,
		supplier.ID, supplier.Name, supplier.Note, supplier.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

// Delete removes a supplier
func (r *SupplierRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}
