package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fumigacion-api/internal/application/operation"
	"github.com/jhoicas/fumigacion-api/internal/application/stock"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

// Ensure TxRunner implements operation.TxRunner and stock.TxRunner.
var _ operation.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repositorios del ledger de operaciones
// atados a la tx y hace Commit o Rollback. Cubre el débito de stock + alta de
// registro y las cascadas de aprobación.
func (r *TxRunner) Run(ctx context.Context, fn func(
	recordRepo repository.OperationRecordRepository,
	balanceRepo repository.StockBalanceRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recordRepo := NewOperationRecordRepository(tx)
	balanceRepo := NewStockBalanceRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(recordRepo, balanceRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción solo con los repositorios de stock
// (ajustes manuales y compensaciones).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	balanceRepo repository.StockBalanceRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balanceRepo := NewStockBalanceRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(balanceRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
