package repository

import (
	"time"

	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// OperationRecordRepository define el puerto de persistencia para la cadena
// append-only de registros de operación.
type OperationRecordRepository interface {
	Create(record *entity.OperationRecord) error
	GetByID(id string) (*entity.OperationRecord, error)
	// GetChain devuelve todos los registros con id = rootID o root_id = rootID,
	// ordenados por created_at ascendente. Ese orden es la línea de tiempo
	// canónica de la operación.
	GetChain(rootID string) ([]*entity.OperationRecord, error)
	// ActiveRootForWarehouse devuelve el registro inicial en curso del
	// depósito, o nil si no hay operación abierta.
	ActiveRootForWarehouse(warehouseID string) (*entity.OperationRecord, error)
	ListRoots(limit, offset int) ([]*entity.OperationRecord, error)

	UpdateApproval(id string, status entity.ApprovalStatus, note string, supervisorID *string) error
	// FinishChain marca state = finished en todos los registros de la cadena.
	FinishChain(rootID string) error
	// ApprovePendingInChain aprueba con nota automática todo pending de la
	// cadena, excepto exceptID (la finalización que disparó la cascada).
	ApprovePendingInChain(rootID, exceptID, note string, supervisorID *string) error
	// UpdateWarranty fija el resultado de garantía sobre el registro inicial.
	UpdateWarranty(id string, hasWarranty bool, expiry *time.Time) error
}
