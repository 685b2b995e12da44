package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

var _ repository.CleaningRecordRepository = (*CleaningRecordRepo)(nil)

// CleaningRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
type CleaningRecordRepo struct {
	q Querier
}

// NewCleaningRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCleaningRecordRepository(q Querier) *CleaningRecordRepo {
	return &CleaningRecordRepo{q: q}
}

// Create persiste una constancia de limpieza.
func (r *CleaningRecordRepo) Create(record *entity.CleaningRecord) error {
	query := `
		INSERT INTO cleaning_records (id, warehouse_id, cleaned_at, guarantee_expiry, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.WarehouseID, record.CleanedAt, record.GuaranteeExpiry,
		record.Notes, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create cleaning record: %w", err)
	}
	return nil
}

// LatestForWarehouse devuelve la constancia más reciente por cleaned_at, o nil.
func (r *CleaningRecordRepo) LatestForWarehouse(warehouseID string) (*entity.CleaningRecord, error) {
	query := `
		SELECT id, warehouse_id, cleaned_at, guarantee_expiry, notes, created_at
		FROM cleaning_records
		WHERE warehouse_id = $1
		ORDER BY cleaned_at DESC
		LIMIT 1`
	var c entity.CleaningRecord
	err := r.q.QueryRow(context.Background(), query, warehouseID).Scan(
		&c.ID, &c.WarehouseID, &c.CleanedAt, &c.GuaranteeExpiry, &c.Notes, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest cleaning record: %w", err)
	}
	return &c, nil
}

// ListByWarehouse lista las constancias del depósito, la más reciente primero.
func (r *CleaningRecordRepo) ListByWarehouse(warehouseID string) ([]*entity.CleaningRecord, error) {
	query := `
		SELECT id, warehouse_id, cleaned_at, guarantee_expiry, notes, created_at
		FROM cleaning_records
		WHERE warehouse_id = $1
		ORDER BY cleaned_at DESC`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list cleaning records: %w", err)
	}
	defer rows.Close()

	var out []*entity.CleaningRecord
	for rows.Next() {
		var c entity.CleaningRecord
		if err := rows.Scan(&c.ID, &c.WarehouseID, &c.CleanedAt, &c.GuaranteeExpiry, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cleaning record: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
