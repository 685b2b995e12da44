package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del historial de
// movimientos de stock.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// UpdateQuantities corrige las cantidades almacenadas de un movimiento
	// histórico (compensación); el resto del renglón es inmutable.
	UpdateQuantities(id string, kg decimal.Decimal, units *int64) error
	Delete(id string) error
	List(warehouseID string, product entity.FumigationMethod, limit, offset int) ([]*entity.StockMovement, error)
}
