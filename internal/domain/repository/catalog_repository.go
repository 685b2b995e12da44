package repository

import "github.com/jhoicas/fumigacion-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para depósitos.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List() ([]*entity.Client, error)
}

// MerchandiseRepository define el puerto de persistencia para mercaderías.
type MerchandiseRepository interface {
	Create(merchandise *entity.Merchandise) error
	GetByID(id string) (*entity.Merchandise, error)
	List() ([]*entity.Merchandise, error)
}
