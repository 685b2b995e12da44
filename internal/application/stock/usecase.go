package stock

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

// UseCase administra el stock de producto fumigante: ajustes manuales,
// consultas de saldo y compensación de movimientos históricos.
type UseCase struct {
	txRunner     TxRunner
	balanceRepo  repository.StockBalanceRepository
	movementRepo repository.StockMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, balanceRepo repository.StockBalanceRepository, movementRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, balanceRepo: balanceRepo, movementRepo: movementRepo}
}

// Adjust registra un ingreso o egreso manual de producto. La cantidad se
// convierte a kilos según la unidad declarada; para pastillas el contador de
// unidades del saldo se rederiva siempre del kg resultante. Escribe el saldo
// y exactamente un movimiento en la misma transacción.
func (uc *UseCase) Adjust(ctx context.Context, userID string, in dto.AdjustStockRequest) (*entity.StockMovement, error) {
	product := entity.FumigationMethod(in.ProductType)
	movType := entity.StockMovementType(in.MovementType)
	if in.WarehouseID == "" || !product.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if movType != entity.MovementAddition && movType != entity.MovementWithdrawal {
		// el consumo solo nace de una aplicación de producto
		return nil, domain.ErrInvalidInput
	}

	kg, err := dosage.ManualToKilograms(product, dosage.Unit(in.Unit), in.Amount)
	if err != nil {
		return nil, err
	}

	var unitsMoved *int64
	if product == entity.MethodTablets {
		var n int64
		if dosage.Unit(in.Unit) == dosage.UnitTablets {
			n = in.Amount.IntPart()
		} else {
			// camino de estimación: floor(kg * 1000 / 3)
			n = dosage.EstimateTablets(kg)
		}
		unitsMoved = &n
	}

	movement := &entity.StockMovement{
		ID:          uuid.New().String(),
		Type:        movType,
		WarehouseID: in.WarehouseID,
		ProductType: product,
		KgMoved:     kg,
		UnitsMoved:  unitsMoved,
		Description: in.Description,
		CreatedAt:   time.Now(),
		CreatedBy:   userID,
	}

	delta := kg.Mul(decimal.NewFromInt(movType.Sign()))
	err = uc.txRunner.RunStock(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := uc.applyDelta(balanceRepo, in.WarehouseID, product, delta); err != nil {
			return err
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// applyDelta delega en el UPDATE condicional atómico del repositorio. Si el
// par (depósito, producto) no tiene fila todavía: un ingreso la crea, un
// egreso equivale a debitar de cero y falla por stock insuficiente.
func (uc *UseCase) applyDelta(balanceRepo repository.StockBalanceRepository, warehouseID string, product entity.FumigationMethod, delta decimal.Decimal) error {
	_, err := balanceRepo.ApplyDelta(warehouseID, product, delta)
	if err == nil {
		return nil
	}
	if err != domain.ErrNotFound {
		return err
	}
	if delta.IsNegative() {
		return domain.ErrInsufficientStock
	}
	return balanceRepo.Create(&entity.StockBalance{
		WarehouseID: warehouseID,
		ProductType: product,
		KgAmount:    delta,
		UnitCount:   dosage.UnitsForBalance(product, delta),
		UpdatedAt:   time.Now(),
	})
}

// Balances lista los saldos actuales.
func (uc *UseCase) Balances(ctx context.Context) ([]*entity.StockBalance, error) {
	return uc.balanceRepo.List()
}

// Balance devuelve el saldo de un par (depósito, producto).
func (uc *UseCase) Balance(ctx context.Context, warehouseID string, product entity.FumigationMethod) (*entity.StockBalance, error) {
	if warehouseID == "" || !product.Valid() {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.balanceRepo.Get(warehouseID, product)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Movements lista el historial de movimientos para auditoría.
func (uc *UseCase) Movements(ctx context.Context, warehouseID string, product entity.FumigationMethod, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movementRepo.List(warehouseID, product, limit, offset)
}
