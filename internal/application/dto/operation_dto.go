package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BeginOperationRequest abre una operación de fumigación sobre un depósito.
type BeginOperationRequest struct {
	ClientID      string `json:"client_id"`
	WarehouseID   string `json:"warehouse_id"`
	MerchandiseID string `json:"merchandise_id"`
	Method        string `json:"method"` // tablets | liquid
}

// AppendRecordRequest agrega un evento a una operación en curso.
// Según kind: product_application requiere tons y treatment; movement
// requiere tons y mode; sampling admite solo attachment/description.
type AppendRecordRequest struct {
	Kind          string           `json:"kind"`
	Tons          *decimal.Decimal `json:"tons,omitempty"`
	Treatment     string           `json:"treatment,omitempty"` // preventive | curative
	Mode          string           `json:"mode,omitempty"`      // unload | transfer
	AttachmentURL string           `json:"attachment_url,omitempty"`
}

// ApprovalRequest nota del supervisor al aprobar o rechazar.
type ApprovalRequest struct {
	Note string `json:"note"`
}

// RecordResponse un registro de la cadena.
type RecordResponse struct {
	ID                string           `json:"id"`
	RootID            string           `json:"root_id"`
	Kind              string           `json:"kind"`
	State             string           `json:"state"`
	Approval          string           `json:"approval"`
	ApprovalNote      string           `json:"approval_note,omitempty"`
	ClientID          string           `json:"client_id"`
	WarehouseID       string           `json:"warehouse_id"`
	MerchandiseID     string           `json:"merchandise_id"`
	OperatorName      string           `json:"operator_name"`
	SupervisorID      *string          `json:"supervisor_id,omitempty"`
	Method            string           `json:"method"`
	Tons              *decimal.Decimal `json:"tons,omitempty"`
	ProductAmountUsed *decimal.Decimal `json:"product_amount_used,omitempty"`
	Treatment         string           `json:"treatment,omitempty"`
	Mode              string           `json:"mode,omitempty"`
	AttachmentURL     string           `json:"attachment_url,omitempty"`
	HasWarranty       bool             `json:"has_warranty"`
	WarrantyExpiry    *time.Time       `json:"warranty_expiry,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// RecordAggregate un registro con su acumulado histórico de toneladas.
type RecordAggregate struct {
	RecordID     string           `json:"record_id"`
	Kind         string           `json:"kind"`
	CreatedAt    time.Time        `json:"created_at"`
	Tons         *decimal.Decimal `json:"tons,omitempty"`
	RunningTotal decimal.Decimal  `json:"running_total"`
}

// WarrantyStatus resultado del cálculo de garantía de una cadena terminada.
type WarrantyStatus struct {
	Computed       bool       `json:"computed"` // false mientras la cadena siga en curso
	MeetsDeadline  bool       `json:"meets_deadline"`
	MeetsCleaning  bool       `json:"meets_cleaning"`
	HasWarranty    bool       `json:"has_warranty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`
}

// AggregatesResponse totales de la cadena, acumulados por registro y garantía.
type AggregatesResponse struct {
	RootID       string            `json:"root_id"`
	State        string            `json:"state"`
	TotalTons    decimal.Decimal   `json:"total_tons"`
	TotalProduct decimal.Decimal   `json:"total_product"`
	Records      []RecordAggregate `json:"records"`
	Warranty     WarrantyStatus    `json:"warranty"`
}
