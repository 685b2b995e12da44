package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa un depósito donde se almacena y fumiga mercadería.
type Warehouse struct {
	ID           string
	Name         string
	Location     string
	CapacityTons decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
