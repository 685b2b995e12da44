package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest ajuste manual de stock (ingreso o egreso).
// Amount se expresa en la unidad declarada y se convierte a kilos.
type AdjustStockRequest struct {
	WarehouseID  string          `json:"warehouse_id"`
	ProductType  string          `json:"product_type"`  // tablets | liquid
	Unit         string          `json:"unit"`          // kg | tablets | liters | cm3
	Amount       decimal.Decimal `json:"amount"`        // siempre positivo
	MovementType string          `json:"movement_type"` // addition | withdrawal
	Description  string          `json:"description,omitempty"`
}

// EditMovementRequest corrige las cantidades de un movimiento histórico.
type EditMovementRequest struct {
	Kg    decimal.Decimal `json:"kg"`
	Units *int64          `json:"units,omitempty"`
}

// BalanceResponse saldo de un par (depósito, producto).
type BalanceResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	ProductType string          `json:"product_type"`
	KgAmount    decimal.Decimal `json:"kg_amount"`
	UnitCount   *int64          `json:"unit_count,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementResponse renglón del historial de stock.
type MovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	WarehouseID string          `json:"warehouse_id"`
	ProductType string          `json:"product_type"`
	KgMoved     decimal.Decimal `json:"kg_moved"`
	UnitsMoved  *int64          `json:"units_moved,omitempty"`
	OperationID *string         `json:"operation_id,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by,omitempty"`
}
