package postgres

import (
	"context"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, date, amount, category_id, room_kind, room_id, room_floor,
	kind, description, invoice_ref, contract_id, installment_id, delivery_id,
	attachments, created_at, updated_at`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	e := &domain.Expense{}
	var roomKind, roomID, roomFloor string
	err := row.Scan(&e.ID, &e.Date, &e.Amount, &e.CategoryID,
		&roomKind, &roomID, &roomFloor,
		&e.Kind, &e.Description, &e.InvoiceRef,
		&e.ContractID, &e.InstallmentID, &e.DeliveryID,
		&e.Attachments, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Room = domain.RoomRef{Kind: domain.RoomRefKind(roomKind), RoomID: roomID, Floor: roomFloor}
	if e.Attachments == nil {
		e.Attachments = []string{}
	}
	return e, nil
}

// Create creates a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) error {
	ctx := context.Background()
	room := expense.Room
	if room.Kind == "" {
		room.Kind = domain.RoomRefNone
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO expenses (id, date, amount, category_id, room_kind, room_id, room_floor,
			kind, description, invoice_ref, contract_id, installment_id, delivery_id,
			attachments, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		expense.ID, expense.Date, expense.Amount, expense.CategoryID,
		string(room.Kind), room.RoomID, room.Floor,
		string(expense.Kind), expense.Description, expense.InvoiceRef,
		expense.ContractID, expense.InstallmentID, expense.DeliveryID,
		expense.Attachments, expense.CreatedAt, expense.UpdatedAt)
	return err
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepository) GetByID(id string) (*domain.Expense, error) {
	ctx := context.Background()
	expense, err := scanExpense(r.pool.QueryRow(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, err
}

// GetAll retrieves all expenses, newest date first
func (r *ExpenseRepository) GetAll() ([]*domain.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// Update replaces a stored expense
func (r *ExpenseRepository) Update(expense *domain.Expense) error {
	ctx := context.Background()
	room := expense.Room
	if room.Kind == "" {
		room.Kind = domain.RoomRefNone
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses
		 SET date = $2, amount = $3, category_id = $4, room_kind = $5, room_id = $6,
		     room_floor = $7, kind = $8, description = $9, invoice_ref = $10,
		     contract_id = $11, installment_id = $12, delivery_id = $13,
		     attachments = $14, updated_at = $15
		 WHERE id = $1`,
		expense.ID, expense.Date, expense.Amount, expense.CategoryID,
		string(room.Kind), room.RoomID, room.Floor,
		string(expense.Kind), expense.Description, expense.InvoiceRef,
		expense.ContractID, expense.InstallmentID, expense.DeliveryID,
		expense.Attachments, expense.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// HasCategory reports whether any expense references the category
func (r *ExpenseRepository) HasCategory(categoryID string) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM expenses WHERE category_id = $1)`, categoryID).
		Scan(&exists)
	return exists, err
}
