package stock

import (
	"context"

	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de stock atados a esa tx: el saldo y su movimiento son una
// sola unidad lógica de escritura.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
