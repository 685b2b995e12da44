package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance saldo actual de un producto en un depósito (fila materializada).
// Invariante: KgAmount >= 0 y, para pastillas, UnitCount se deriva siempre de
// KgAmount por la masa de la pastilla; nunca se actualizan por separado.
type StockBalance struct {
	WarehouseID string
	ProductType FumigationMethod
	KgAmount    decimal.Decimal
	UnitCount   *int64 // solo pastillas; nil para líquido
	UpdatedAt   time.Time
}

// StockMovementType tipo cerrado de movimiento de stock.
type StockMovementType string

const (
	MovementAddition    StockMovementType = "addition"    // ingreso manual
	MovementWithdrawal  StockMovementType = "withdrawal"  // egreso manual
	MovementConsumption StockMovementType = "consumption" // débito por aplicación de producto
)

// Valid reporta si el tipo es uno de los valores cerrados.
func (t StockMovementType) Valid() bool {
	switch t {
	case MovementAddition, MovementWithdrawal, MovementConsumption:
		return true
	}
	return false
}

// Sign devuelve +1 para ingresos y -1 para egresos/consumos, el signo con el
// que el movimiento impacta el saldo.
func (t StockMovementType) Sign() int64 {
	if t == MovementAddition {
		return 1
	}
	return -1
}

// StockMovement renglón append-only del historial de stock. Invariante de
// conciliación: la suma con signo de los movimientos de un par
// (depósito, producto) debe igualar el StockBalance de ese par.
type StockMovement struct {
	ID          string
	Type        StockMovementType
	WarehouseID string
	ProductType FumigationMethod
	KgMoved     decimal.Decimal // siempre positivo; el signo lo da Type
	UnitsMoved  *int64          // solo pastillas
	OperationID *string         // vínculo al OperationRecord que lo originó (consumo)
	Description string
	CreatedAt   time.Time
	CreatedBy   string
}
