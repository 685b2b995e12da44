package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/application/dto"
	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

// WarehouseUseCase administración de depósitos y sus constancias de limpieza.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
	cleaningRepo  repository.CleaningRecordRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository, cleaningRepo repository.CleaningRecordRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo, cleaningRepo: cleaningRepo}
}

// Create da de alta un depósito.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if in.Name == "" || in.CapacityTons.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Location:     in.Location,
		CapacityTons: in.CapacityTons,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.warehouseRepo.Create(wh); err != nil {
		return nil, err
	}
	return wh, nil
}

// GetByID devuelve un depósito.
func (uc *WarehouseUseCase) GetByID(id string) (*entity.Warehouse, error) {
	wh, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}

// List lista los depósitos.
func (uc *WarehouseUseCase) List() ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List()
}

// RegisterCleaning registra una limpieza; la garantía vence a los 180 días.
func (uc *WarehouseUseCase) RegisterCleaning(warehouseID string, in dto.CreateCleaningRequest) (*entity.CleaningRecord, error) {
	if in.CleanedAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	record := entity.NewCleaningRecord(uuid.New().String(), warehouseID, in.CleanedAt, in.Notes)
	if err := uc.cleaningRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListCleanings lista las constancias de limpieza de un depósito.
func (uc *WarehouseUseCase) ListCleanings(warehouseID string) ([]*entity.CleaningRecord, error) {
	return uc.cleaningRepo.ListByWarehouse(warehouseID)
}
