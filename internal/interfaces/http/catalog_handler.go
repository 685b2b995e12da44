package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fumigacion-api/internal/application/dto"
	"github.com/jhoicas/fumigacion-api/internal/application/usecase"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// CatalogHandler depósitos, limpiezas, clientes y mercaderías.
type CatalogHandler struct {
	warehouseUC *usecase.WarehouseUseCase
	catalogUC   *usecase.CatalogUseCase
}

func NewCatalogHandler(warehouseUC *usecase.WarehouseUseCase, catalogUC *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{warehouseUC: warehouseUC, catalogUC: catalogUC}
}

// CreateWarehouse godoc
// @Summary      Crear un depósito
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "datos del depósito"
// @Success      201  {object}  entity.Warehouse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *CatalogHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.warehouseUC.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(warehouse)
}

// GetWarehouse godoc
// @Summary      Detalle de un depósito
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del depósito"
// @Success      200  {object}  entity.Warehouse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *CatalogHandler) GetWarehouse(c *fiber.Ctx) error {
	warehouse, err := h.warehouseUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(warehouse)
}

// ListWarehouses godoc
// @Summary      Listar depósitos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Warehouse
// @Router       /api/warehouses [get]
func (h *CatalogHandler) ListWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.warehouseUC.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(warehouses), "warehouses": warehouses})
}

// RegisterCleaning godoc
// @Summary      Registrar limpieza de un depósito
// @Description  La garantía de limpieza vence a los 180 días.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del depósito"
// @Param        body  body  dto.CreateCleaningRequest  true  "fecha y notas"
// @Success      201  {object}  dto.CleaningResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/cleanings [post]
func (h *CatalogHandler) RegisterCleaning(c *fiber.Ctx) error {
	var in dto.CreateCleaningRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cleaning, err := h.warehouseUC.RegisterCleaning(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCleaningResponse(cleaning))
}

// ListCleanings godoc
// @Summary      Historial de limpiezas de un depósito
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del depósito"
// @Success      200  {array}  dto.CleaningResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/cleanings [get]
func (h *CatalogHandler) ListCleanings(c *fiber.Ctx) error {
	cleanings, err := h.warehouseUC.ListCleanings(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CleaningResponse, 0, len(cleanings))
	for _, cl := range cleanings {
		out = append(out, toCleaningResponse(cl))
	}
	return c.JSON(fiber.Map{"total": len(out), "cleanings": out})
}

// CreateClient godoc
// @Summary      Crear un cliente
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "datos del cliente"
// @Success      201  {object}  entity.Client
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.catalogUC.CreateClient(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// ListClients godoc
// @Summary      Listar clientes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Client
// @Router       /api/clients [get]
func (h *CatalogHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.catalogUC.ListClients()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(clients), "clients": clients})
}

// CreateMerchandise godoc
// @Summary      Crear una mercadería
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMerchandiseRequest  true  "nombre"
// @Success      201  {object}  entity.Merchandise
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/merchandise [post]
func (h *CatalogHandler) CreateMerchandise(c *fiber.Ctx) error {
	var in dto.CreateMerchandiseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	merchandise, err := h.catalogUC.CreateMerchandise(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(merchandise)
}

// ListMerchandise godoc
// @Summary      Listar mercaderías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Merchandise
// @Router       /api/merchandise [get]
func (h *CatalogHandler) ListMerchandise(c *fiber.Ctx) error {
	items, err := h.catalogUC.ListMerchandise()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "merchandise": items})
}

func toCleaningResponse(cl *entity.CleaningRecord) dto.CleaningResponse {
	return dto.CleaningResponse{
		ID:              cl.ID,
		WarehouseID:     cl.WarehouseID,
		CleanedAt:       cl.CleanedAt,
		GuaranteeExpiry: cl.GuaranteeExpiry,
		Notes:           cl.Notes,
	}
}
