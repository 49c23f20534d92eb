package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SummaryRepository implements domain.SummaryRepository using PostgreSQL.
// The snapshot is a single JSONB row that is replaced on every rebuild.
type SummaryRepository struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{pool: pool}
}

// Save replaces the stored snapshot
func (r *SummaryRepository) Save(snapshot *domain.SummarySnapshot) error {
	ctx := context.Background()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO summary_snapshots (id, data, generated_at)
		 VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = $1, generated_at = $2`,
		data, snapshot.GeneratedAt)
	return err
}

// Get retrieves the stored snapshot
func (r *SummaryRepository) Get() (*domain.SummarySnapshot, error) {
	ctx := context.Background()
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data FROM summary_snapshots WHERE id = 1`).Scan(&data)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrSummaryNotFound
	}
	if err != nil {
		return nil, err
	}

	snapshot := &domain.SummarySnapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snapshot, nil
}
