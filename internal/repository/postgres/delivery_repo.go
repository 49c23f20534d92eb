package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DeliveryRepository implements domain.DeliveryRepository using PostgreSQL.
// Line items are stored as JSONB inside the delivery row.
type DeliveryRepository struct {
	pool *pgxpool.Pool
}

// NewDeliveryRepository creates a new DeliveryRepository
func NewDeliveryRepository(pool *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{pool: pool}
}

const deliveryColumns = `id, supplier_id, date, description, invoice_number,
	delivery_note_number, amount, category_id, items, attachments, expense_id,
	note, created_at, updated_at`

func marshalItems(items []domain.DeliveryItem) ([]byte, error) {
	if items == nil {
		items = []domain.DeliveryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delivery items: %w", err)
	}
	return data, nil
}

func scanDelivery(row pgx.Row) (*domain.Delivery, error) {
	d := &domain.Delivery{}
	var items []byte
	err := row.Scan(&d.ID, &d.SupplierID, &d.Date, &d.Description, &d.InvoiceNumber,
		&d.DeliveryNoteNumber, &d.Amount, &d.CategoryID, &items, &d.Attachments,
		&d.ExpenseID, &d.Note, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &d.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery items: %w", err)
	}
	if d.Attachments == nil {
		d.Attachments = []string{}
	}
	return d, nil
}

// Create creates a new delivery
func (r *DeliveryRepository) Create(delivery *domain.Delivery) error {
	ctx := context.Background()
	items, err := marshalItems(delivery.Items)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO deliveries (id, supplier_id, date, description, invoice_number,
			delivery_note_number, amount, category_id, items, attachments, expense_id,
			note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		delivery.ID, delivery.SupplierID, delivery.Date, delivery.Description,
		delivery.InvoiceNumber, delivery.DeliveryNoteNumber, delivery.Amount,
		delivery.CategoryID, items, delivery.Attachments, delivery.ExpenseID,
		delivery.Note, delivery.CreatedAt, delivery.UpdatedAt)
	return err
}

// GetByID retrieves a delivery by ID
func (r *DeliveryRepository) GetByID(id string) (*domain.Delivery, error) {
	ctx := context.Background()
	delivery, err := scanDelivery(r.pool.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, domain.ErrDeliveryNotFound
	}
	return delivery, err
}

// GetAll retrieves all deliveries, newest date first
func (r *DeliveryRepository) GetAll() ([]*domain.Delivery, error) {
	return r.query(`SELECT ` + deliveryColumns + ` FROM deliveries ORDER BY date DESC, created_at DESC`)
}

// GetBySupplier retrieves all deliveries of one supplier, newest date first
func (r *DeliveryRepository) GetBySupplier(supplierID string) ([]*domain.Delivery, error) {
	return r.query(`SELECT `+deliveryColumns+` FROM deliveries
		WHERE supplier_id = $1 ORDER BY date DESC, created_at DESC`, supplierID)
}

func (r *DeliveryRepository) query(sql string, args ...any) ([]*domain.Delivery, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*domain.Delivery
	for rows.Next() {
		delivery, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, delivery)
	}
	return deliveries, rows.Err()
}

// Update replaces a stored delivery
func (r *DeliveryRepository) Update(delivery *domain.Delivery) error {
	ctx := context.Background()
	items, err := marshalItems(delivery.Items)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE deliveries
		 SET supplier_id = $2, date = $3, description = $4, invoice_number = $5,
		     delivery_note_number = $6, amount = $7, category_id = $8, items = $9,
		     attachments = $10, expense_id = $11, note = $12, updated_at = $13
		 WHERE id = $1`,
		delivery.ID, delivery.SupplierID, delivery.Date, delivery.Description,
		delivery.InvoiceNumber, delivery.DeliveryNoteNumber, delivery.Amount,
		delivery.CategoryID, items, delivery.Attachments, delivery.ExpenseID,
		delivery.Note, delivery.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDeliveryNotFound
	}
	return nil
}

// Delete removes a delivery
func (r *DeliveryRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDeliveryNotFound
	}
	return nil
}
