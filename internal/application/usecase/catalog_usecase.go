package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fumigacion-api/internal/application/dto"
	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

// CatalogUseCase altas y consultas de clientes y mercaderías.
type CatalogUseCase struct {
	clientRepo      repository.ClientRepository
	merchandiseRepo repository.MerchandiseRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(clientRepo repository.ClientRepository, merchandiseRepo repository.MerchandiseRepository) *CatalogUseCase {
	return &CatalogUseCase{clientRepo: clientRepo, merchandiseRepo: merchandiseRepo}
}

// CreateClient da de alta un cliente.
func (uc *CatalogUseCase) CreateClient(in dto.CreateClientRequest) (*entity.Client, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// ListClients lista los clientes.
func (uc *CatalogUseCase) ListClients() ([]*entity.Client, error) {
	return uc.clientRepo.List()
}

// CreateMerchandise da de alta una mercadería.
func (uc *CatalogUseCase) CreateMerchandise(in dto.CreateMerchandiseRequest) (*entity.Merchandise, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.Merchandise{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.merchandiseRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMerchandise lista las mercaderías.
func (uc *CatalogUseCase) ListMerchandise() ([]*entity.Merchandise, error) {
	return uc.merchandiseRepo.List()
}
