package operation

import (
	"context"

	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

// AutoApproveNote nota generada al aprobar en cascada los registros que
// seguían pendientes cuando se aprobó la finalización de su cadena.
const AutoApproveNote = "aprobado automáticamente al cierre de la operación"

// Approve aprueba un registro pendiente. Si el registro es una finalización,
// cierra la cadena en cascada: state = finished en todos los registros y
// aprobación automática de cualquier otro pendiente — una operación terminada
// no puede retener revisiones abiertas.
func (uc *UseCase) Approve(ctx context.Context, actor Actor, recordID, note string) error {
	record, err := uc.pendingRecord(recordID)
	if err != nil {
		return err
	}

	if record.Kind != entity.KindFinalization {
		return uc.recordRepo.UpdateApproval(record.ID, entity.ApprovalApproved, note, &actor.UserID)
	}

	// Cascada atómica: aprobación + cierre + auto-aprobaciones
	return uc.txRunner.Run(ctx, func(
		recordRepo repository.OperationRecordRepository,
		_ repository.StockBalanceRepository,
		_ repository.StockMovementRepository,
	) error {
		if err := recordRepo.UpdateApproval(record.ID, entity.ApprovalApproved, note, &actor.UserID); err != nil {
			return err
		}
		return uc.cascadeFinish(recordRepo, record.RootID, record.ID, &actor.UserID)
	})
}

// Reject rechaza un registro pendiente. La nota es obligatoria. El registro
// queda fuera de todos los agregados pero nunca se elimina del historial.
func (uc *UseCase) Reject(ctx context.Context, actor Actor, recordID, note string) error {
	if note == "" {
		return domain.ErrInvalidInput
	}
	record, err := uc.pendingRecord(recordID)
	if err != nil {
		return err
	}
	return uc.recordRepo.UpdateApproval(record.ID, entity.ApprovalRejected, note, &actor.UserID)
}

// cascadeFinish cierra la cadena y aprueba con nota automática los registros
// que seguían pendientes (exceptID ya fue resuelto por el llamador).
func (uc *UseCase) cascadeFinish(recordRepo repository.OperationRecordRepository, rootID, exceptID string, supervisorID *string) error {
	if err := recordRepo.FinishChain(rootID); err != nil {
		return err
	}
	return recordRepo.ApprovePendingInChain(rootID, exceptID, AutoApproveNote, supervisorID)
}

// pendingRecord carga el registro y valida que esté pendiente de revisión.
// pending es el único estado no terminal: approved, rejected y none no
// admiten ninguna transición.
func (uc *UseCase) pendingRecord(recordID string) (*entity.OperationRecord, error) {
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if record.Approval != entity.ApprovalPending {
		return nil, domain.ErrConflict
	}
	return record, nil
}
