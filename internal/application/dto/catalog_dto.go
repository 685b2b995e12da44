package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest alta de depósito.
type CreateWarehouseRequest struct {
	Name         string          `json:"name"`
	Location     string          `json:"location,omitempty"`
	CapacityTons decimal.Decimal `json:"capacity_tons"`
}

// CreateClientRequest alta de cliente.
type CreateClientRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// CreateMerchandiseRequest alta de mercadería.
type CreateMerchandiseRequest struct {
	Name string `json:"name"`
}

// CreateCleaningRequest registra una limpieza de depósito; el vencimiento de
// la garantía (180 días) se deriva en el servidor.
type CreateCleaningRequest struct {
	CleanedAt time.Time `json:"cleaned_at"`
	Notes     string    `json:"notes,omitempty"`
}

// CleaningResponse constancia de limpieza.
type CleaningResponse struct {
	ID              string    `json:"id"`
	WarehouseID     string    `json:"warehouse_id"`
	CleanedAt       time.Time `json:"cleaned_at"`
	GuaranteeExpiry time.Time `json:"guarantee_expiry"`
	Notes           string    `json:"notes,omitempty"`
}
