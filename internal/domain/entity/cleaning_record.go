package entity

import "time"

// CleaningGuaranteeDays vigencia de la garantía de limpieza de un depósito.
const CleaningGuaranteeDays = 180

// CleaningRecord constancia de limpieza de un depósito. La garantía de
// limpieza vence a los 180 días de realizada.
type CleaningRecord struct {
	ID              string
	WarehouseID     string
	CleanedAt       time.Time
	GuaranteeExpiry time.Time // CleanedAt + 180 días
	Notes           string
	CreatedAt       time.Time
}

// NewCleaningRecord construye la constancia derivando el vencimiento.
func NewCleaningRecord(id, warehouseID string, cleanedAt time.Time, notes string) *CleaningRecord {
	return &CleaningRecord{
		ID:              id,
		WarehouseID:     warehouseID,
		CleanedAt:       cleanedAt,
		GuaranteeExpiry: cleanedAt.AddDate(0, 0, CleaningGuaranteeDays),
		Notes:           notes,
		CreatedAt:       time.Now(),
	}
}
