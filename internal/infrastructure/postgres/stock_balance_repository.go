package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo de un par (depósito, producto); nil si no hay fila.
func (r *StockBalanceRepo) Get(warehouseID string, product entity.FumigationMethod) (*entity.StockBalance, error) {
	query := `
		SELECT warehouse_id, product_type, kg_amount, unit_count, updated_at
		FROM stock_balances WHERE warehouse_id = $1 AND product_type = $2`
	b, err := scanBalance(r.q.QueryRow(context.Background(), query, warehouseID, string(product)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return b, nil
}

// List devuelve todos los saldos.
func (r *StockBalanceRepo) List() ([]*entity.StockBalance, error) {
	query := `
		SELECT warehouse_id, product_type, kg_amount, unit_count, updated_at
		FROM stock_balances ORDER BY warehouse_id, product_type`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create inserta la fila de saldo de un par que nunca tuvo movimientos.
func (r *StockBalanceRepo) Create(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (warehouse_id, product_type, kg_amount, unit_count, updated_at)
		VALUES ($1, $2, $3, $4, now())`
	_, err := r.q.Exec(context.Background(), query,
		balance.WarehouseID, string(balance.ProductType), balance.KgAmount, balance.UnitCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock balance: %w", err)
	}
	return nil
}

// ApplyDelta aplica el delta con un único UPDATE condicional: la verificación
// de no-negatividad y la mutación son una sola sentencia, no dos round trips,
// así dos débitos concurrentes no pueden dejar el saldo negativo. Para
// pastillas rederiva unit_count del kg resultante en la misma sentencia
// (1 pastilla = 3 g).
func (r *StockBalanceRepo) ApplyDelta(warehouseID string, product entity.FumigationMethod, deltaKg decimal.Decimal) (*entity.StockBalance, error) {
	query := `
		UPDATE stock_balances
		SET kg_amount = kg_amount + $3,
		    unit_count = CASE WHEN product_type = 'tablets'
		                      THEN floor((kg_amount + $3) * 1000 / 3)::bigint
		                      ELSE NULL END,
		    updated_at = now()
		WHERE warehouse_id = $1 AND product_type = $2 AND kg_amount + $3 >= 0
		RETURNING warehouse_id, product_type, kg_amount, unit_count, updated_at`
	b, err := scanBalance(r.q.QueryRow(context.Background(), query, warehouseID, string(product), deltaKg))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}

	// Cero filas: distinguir saldo insuficiente de fila inexistente.
	var exists bool
	check := `SELECT EXISTS (SELECT 1 FROM stock_balances WHERE warehouse_id = $1 AND product_type = $2)`
	if err := r.q.QueryRow(context.Background(), check, warehouseID, string(product)).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check stock balance: %w", err)
	}
	if exists {
		return nil, domain.ErrInsufficientStock
	}
	return nil, domain.ErrNotFound
}

func scanBalance(row pgx.Row) (*entity.StockBalance, error) {
	var b entity.StockBalance
	var product string
	if err := row.Scan(&b.WarehouseID, &product, &b.KgAmount, &b.UnitCount, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.ProductType = entity.FumigationMethod(product)
	return &b, nil
}
