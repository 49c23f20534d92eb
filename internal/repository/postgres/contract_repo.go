package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContractRepository implements domain.ContractRepository using PostgreSQL.
// Change orders and installments are stored inside the contract row as
// JSONB; contracts are always read and written as whole aggregates.
type ContractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(pool *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{pool: pool}
}

func marshalContract(contract *domain.Contract) ([]byte, []byte, error) {
	changeOrders := contract.ChangeOrders
	if changeOrders == nil {
		changeOrders = []*domain.ChangeOrder{}
	}
	installments := contract.Installments
	if installments == nil {
		installments = []*domain.Installment{}
	}

	co, err := json.Marshal(changeOrders)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal change orders: %w", err)
	}
	inst, err := json.Marshal(installments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal installments: %w", err)
	}
	return co, inst, nil
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	c := &domain.Contract{}
	var changeOrders, installments []byte
	err := row.Scan(&c.ID, &c.CategoryID, &c.Counterparty, &c.Kind,
		&c.ContractSum, &c.ContractDate, &c.Note,
		&changeOrders, &installments, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(changeOrders, &c.ChangeOrders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal change orders: %w", err)
	}
	if err := json.Unmarshal(installments, &c.Installments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal installments: %w", err)
	}
	return c, nil
}

const contractColumns = `id, category_id, counterparty, kind, contract_sum,
	contract_date, note, change_orders, installments, created_at, updated_at`

// Create creates a new contract
func (r *ContractRepository) Create(contract *domain.Contract) error {
	ctx := context.Background()
	changeOrders, installments, err := marshalContract(contract)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO contracts (id, category_id, counterparty, kind, contract_sum,
			contract_date, note, change_orders, installments, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		contract.ID, contract.CategoryID, contract.Counterparty, string(contract.Kind),
		contract.ContractSum, contract.ContractDate, contract.Note,
		changeOrders, installments, contract.CreatedAt, contract.UpdatedAt)
	return err
}

// GetByID retrieves a contract by ID
func (r *ContractRepository) GetByID(id string) (*domain.Contract, error) {
	ctx := context.Background()
	contract, err := scanContract(r.pool.QueryRow(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, domain.ErrContractNotFound
	}
	return contract, err
}

// GetAll retrieves all contracts, oldest first
func (r *ContractRepository) GetAll() ([]*domain.Contract, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+contractColumns+` FROM contracts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

// Update replaces a stored contract aggregate
func (r *ContractRepository) Update(contract *domain.Contract) error {
	ctx := context.Background()
	changeOrders, installments, err := marshalContract(contract)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE contracts
		 SET category_id = $2, counterparty = $3, kind = $4, contract_sum = $5,
		     contract_date = $6, note = $7, change_orders = $8, installments = $9,
		     updated_at = $10
		 WHERE id = $1`,
		contract.ID, contract.CategoryID, contract.Counterparty, string(contract.Kind),
		contract.ContractSum, contract.ContractDate, contract.Note,
		changeOrders, installments, contract.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContractNotFound
	}
	return nil
}

// Delete removes a contract
func (r *ContractRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContractNotFound
	}
	return nil
}
