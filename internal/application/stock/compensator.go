package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/dosage"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

// EditMovement corrige retroactivamente las cantidades de un movimiento
// histórico y compensa el saldo con la diferencia firmada:
//
//	kg_difference = nuevo_kg − kg_original
//	delta = kg_difference × (+1 ingreso, −1 egreso/consumo)
//
// Falla con domain.ErrNotFound si la fila de saldo no existe: todo par que
// alguna vez se movió debe tenerla, así que su ausencia es fatal, no un caso
// a reparar acá.
func (uc *UseCase) EditMovement(ctx context.Context, movementID string, newKg decimal.Decimal, newUnits *int64) (*entity.StockMovement, error) {
	if newKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	movement, err := uc.movementRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}

	if movement.ProductType == entity.MethodTablets && newUnits == nil {
		newUnits = dosage.UnitsForBalance(movement.ProductType, newKg)
	}

	kgDifference := newKg.Sub(movement.KgMoved)
	delta := kgDifference.Mul(decimal.NewFromInt(movement.Type.Sign()))

	err = uc.txRunner.RunStock(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if _, err := balanceRepo.ApplyDelta(movement.WarehouseID, movement.ProductType, delta); err != nil {
			return err
		}
		return movementRepo.UpdateQuantities(movement.ID, newKg, newUnits)
	})
	if err != nil {
		return nil, err
	}

	movement.KgMoved = newKg
	movement.UnitsMoved = newUnits
	return movement, nil
}

// DeleteMovement elimina un movimiento histórico revirtiendo primero su
// efecto sobre el saldo (edición a cero) y recién después borrando el
// renglón — siempre en ese orden. Si el borrado falla con la reversa ya
// confirmada, el saldo queda corregido y el renglón huérfano: se devuelve
// OrphanedMovementError para que el operador lo resuelva a mano, sin
// reintentos silenciosos.
func (uc *UseCase) DeleteMovement(ctx context.Context, movementID string) error {
	zero := int64(0)
	var zeroUnits *int64
	movement, err := uc.movementRepo.GetByID(movementID)
	if err != nil {
		return err
	}
	if movement == nil {
		return domain.ErrNotFound
	}
	if movement.ProductType == entity.MethodTablets {
		zeroUnits = &zero
	}

	if _, err := uc.EditMovement(ctx, movementID, decimal.Zero, zeroUnits); err != nil {
		return err
	}

	if err := uc.movementRepo.Delete(movementID); err != nil {
		return &domain.OrphanedMovementError{MovementID: movementID, Err: err}
	}
	return nil
}
