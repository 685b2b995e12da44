package repository

import "github.com/jhoicas/fumigacion-api/internal/domain/entity"

// CleaningRecordRepository define el puerto para constancias de limpieza.
// El cálculo de garantía solo necesita la más reciente por depósito.
type CleaningRecordRepository interface {
	Create(record *entity.CleaningRecord) error
	// LatestForWarehouse devuelve la constancia más reciente (por cleaned_at)
	// del depósito, o nil si nunca se registró una limpieza.
	LatestForWarehouse(warehouseID string) (*entity.CleaningRecord, error)
	ListByWarehouse(warehouseID string) ([]*entity.CleaningRecord, error)
}
