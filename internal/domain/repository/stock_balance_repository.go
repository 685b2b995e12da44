package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// StockBalanceRepository define el puerto para los saldos de stock por
// (depósito, producto). Usado dentro de transacciones para garantizar
// consistencia con el historial de movimientos.
type StockBalanceRepository interface {
	// Get devuelve el saldo o nil si el par nunca tuvo movimientos.
	Get(warehouseID string, product entity.FumigationMethod) (*entity.StockBalance, error)
	List() ([]*entity.StockBalance, error)
	Create(balance *entity.StockBalance) error
	// ApplyDelta suma deltaKg al saldo en un único UPDATE condicional
	// (check-and-update en un solo round trip): falla con
	// domain.ErrInsufficientStock si el resultado sería negativo y con
	// domain.ErrNotFound si la fila no existe. Para pastillas rederiva
	// unit_count del kg resultante en la misma sentencia.
	ApplyDelta(warehouseID string, product entity.FumigationMethod, deltaKg decimal.Decimal) (*entity.StockBalance, error)
}
