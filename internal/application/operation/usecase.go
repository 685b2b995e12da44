package operation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/application/dto"
	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/dosage"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de las operaciones de fumigación:
// apertura, agregado de eventos a la cadena, finalización y aprobaciones.
type UseCase struct {
	txRunner        TxRunner
	recordRepo      repository.OperationRecordRepository
	warehouseRepo   repository.WarehouseRepository
	clientRepo      repository.ClientRepository
	merchandiseRepo repository.MerchandiseRepository
	cleaningRepo    repository.CleaningRecordRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	recordRepo repository.OperationRecordRepository,
	warehouseRepo repository.WarehouseRepository,
	clientRepo repository.ClientRepository,
	merchandiseRepo repository.MerchandiseRepository,
	cleaningRepo repository.CleaningRecordRepository,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		recordRepo:      recordRepo,
		warehouseRepo:   warehouseRepo,
		clientRepo:      clientRepo,
		merchandiseRepo: merchandiseRepo,
		cleaningRepo:    cleaningRepo,
	}
}

// Begin abre una operación: crea el registro inicial de la cadena.
// Un depósito admite una sola cadena in_progress a la vez; si ya existe una,
// falla con domain.ErrActiveOperation sin mutar nada.
func (uc *UseCase) Begin(ctx context.Context, actor Actor, in dto.BeginOperationRequest) (*entity.OperationRecord, error) {
	method := entity.FumigationMethod(in.Method)
	if in.ClientID == "" || in.WarehouseID == "" || in.MerchandiseID == "" || !method.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !actor.CanOperateClient(in.ClientID) {
		return nil, domain.ErrForbidden
	}

	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	merch, err := uc.merchandiseRepo.GetByID(in.MerchandiseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || client == nil || merch == nil {
		return nil, domain.ErrNotFound
	}

	active, err := uc.recordRepo.ActiveRootForWarehouse(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrActiveOperation
	}

	id := uuid.New().String()
	record := &entity.OperationRecord{
		ID:            id,
		RootID:        id, // el inicial se apunta a sí mismo
		Kind:          entity.KindInitial,
		State:         entity.StateInProgress,
		Approval:      entity.ApprovalApproved, // el inicial no pasa revisión
		ClientID:      in.ClientID,
		WarehouseID:   in.WarehouseID,
		MerchandiseID: in.MerchandiseID,
		OperatorName:  actor.Name,
		Method:        method,
		CreatedAt:     time.Now(),
	}
	if err := uc.recordRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Append agrega un evento a una cadena en curso. Copia cliente, depósito,
// mercadería y método desde el registro raíz. Para product_application el
// débito de stock, el movimiento de consumo y el registro se escriben en una
// única transacción.
func (uc *UseCase) Append(ctx context.Context, actor Actor, rootID string, in dto.AppendRecordRequest) (*entity.OperationRecord, error) {
	root, err := uc.resolveRoot(rootID)
	if err != nil {
		return nil, err
	}
	if root.State != entity.StateInProgress {
		return nil, domain.ErrConflict
	}
	if !actor.CanOperateClient(root.ClientID) {
		return nil, domain.ErrForbidden
	}

	kind := entity.RecordKind(in.Kind)
	record := &entity.OperationRecord{
		ID:            uuid.New().String(),
		RootID:        root.ID,
		Kind:          kind,
		State:         entity.StateInProgress,
		ClientID:      root.ClientID,
		WarehouseID:   root.WarehouseID,
		MerchandiseID: root.MerchandiseID,
		OperatorName:  actor.Name,
		Method:        root.Method,
		AttachmentURL: in.AttachmentURL,
		CreatedAt:     time.Now(),
	}

	switch kind {
	case entity.KindProductApplication:
		treatment := entity.Treatment(in.Treatment)
		if in.Tons == nil || in.Tons.LessThanOrEqual(decimal.Zero) || !treatment.Valid() {
			return nil, domain.ErrInvalidInput
		}
		record.Approval = entity.ApprovalPending
		record.Tons = in.Tons
		record.Treatment = &treatment
		return record, uc.appendApplication(ctx, actor, record, treatment)
	case entity.KindMovement:
		mode := entity.MovementMode(in.Mode)
		if in.Tons == nil || in.Tons.LessThanOrEqual(decimal.Zero) || !mode.Valid() {
			return nil, domain.ErrInvalidInput
		}
		record.Approval = entity.ApprovalPending
		record.Tons = in.Tons
		record.Mode = &mode
		return record, uc.recordRepo.Create(record)
	case entity.KindSampling:
		record.Approval = entity.ApprovalNone // el muestreo nunca pasa revisión
		return record, uc.recordRepo.Create(record)
	default:
		// initial solo por Begin; finalization solo por Finalize
		return nil, domain.ErrInvalidInput
	}
}

// appendApplication calcula la dosis, debita el stock y persiste registro y
// movimiento de consumo como una sola unidad transaccional.
func (uc *UseCase) appendApplication(ctx context.Context, actor Actor, record *entity.OperationRecord, treatment entity.Treatment) error {
	units, kg, err := dosage.Consumption(record.Method, treatment, *record.Tons)
	if err != nil {
		return err
	}
	used := decimal.NewFromInt(units)
	record.ProductAmountUsed = &used

	return uc.txRunner.Run(ctx, func(
		recordRepo repository.OperationRecordRepository,
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if _, err := balanceRepo.ApplyDelta(record.WarehouseID, record.Method, kg.Neg()); err != nil {
			// sin fila de saldo nunca hubo stock cargado para debitar
			if err == domain.ErrNotFound {
				return domain.ErrInsufficientStock
			}
			return err
		}
		var unitsMoved *int64
		if record.Method == entity.MethodTablets {
			unitsMoved = &units
		}
		movement := &entity.StockMovement{
			ID:          uuid.New().String(),
			Type:        entity.MovementConsumption,
			WarehouseID: record.WarehouseID,
			ProductType: record.Method,
			KgMoved:     kg,
			UnitsMoved:  unitsMoved,
			OperationID: &record.ID,
			Description: "consumo por aplicación de producto",
			CreatedAt:   record.CreatedAt,
			CreatedBy:   actor.UserID,
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}
		return recordRepo.Create(record)
	})
}

// FetchChain devuelve la cadena completa ordenada por created_at ascendente.
func (uc *UseCase) FetchChain(ctx context.Context, rootID string) ([]*entity.OperationRecord, error) {
	if _, err := uc.resolveRoot(rootID); err != nil {
		return nil, err
	}
	return uc.recordRepo.GetChain(rootID)
}

// ListOperations lista los registros iniciales (una fila por operación).
func (uc *UseCase) ListOperations(ctx context.Context, limit, offset int) ([]*entity.OperationRecord, error) {
	return uc.recordRepo.ListRoots(limit, offset)
}

// Finalize agrega el registro de cierre. Pedido por un supervisor, nace
// aprobado y cierra la cadena de inmediato; pedido por un fumigador, queda
// pendiente y la cascada ocurre recién cuando un supervisor lo apruebe.
func (uc *UseCase) Finalize(ctx context.Context, actor Actor, rootID string) (*entity.OperationRecord, error) {
	root, err := uc.resolveRoot(rootID)
	if err != nil {
		return nil, err
	}
	if root.State != entity.StateInProgress {
		return nil, domain.ErrConflict
	}

	record := &entity.OperationRecord{
		ID:            uuid.New().String(),
		RootID:        root.ID,
		Kind:          entity.KindFinalization,
		State:         entity.StateInProgress,
		Approval:      entity.ApprovalPending,
		ClientID:      root.ClientID,
		WarehouseID:   root.WarehouseID,
		MerchandiseID: root.MerchandiseID,
		OperatorName:  actor.Name,
		Method:        root.Method,
		CreatedAt:     time.Now(),
	}

	if actor.Role == entity.RoleSupervisor || actor.Role == entity.RoleAdmin {
		record.Approval = entity.ApprovalApproved
		record.State = entity.StateFinished
		record.SupervisorID = &actor.UserID
		err = uc.txRunner.Run(ctx, func(
			recordRepo repository.OperationRecordRepository,
			_ repository.StockBalanceRepository,
			_ repository.StockMovementRepository,
		) error {
			if err := recordRepo.Create(record); err != nil {
				return err
			}
			return uc.cascadeFinish(recordRepo, root.ID, record.ID, &actor.UserID)
		})
		if err != nil {
			return nil, err
		}
		return record, nil
	}

	if err := uc.recordRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// resolveRoot valida que rootID apunte al registro inicial de una cadena.
func (uc *UseCase) resolveRoot(rootID string) (*entity.OperationRecord, error) {
	root, err := uc.recordRepo.GetByID(rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrNotFound
	}
	if !root.IsRoot() {
		return nil, domain.ErrInvalidInput
	}
	return root, nil
}
