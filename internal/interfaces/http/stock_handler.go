package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fumigacion-api/internal/application/dto"
	"github.com/jhoicas/fumigacion-api/internal/application/stock"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// StockHandler saldos, historial y correcciones de stock.
type StockHandler struct {
	uc *stock.UseCase
}

func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Balances godoc
// @Summary      Saldos de stock de todos los depósitos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/stock/balances [get]
func (h *StockHandler) Balances(c *fiber.Ctx) error {
	balances, err := h.uc.Balances(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, toBalanceResponse(b))
	}
	return c.JSON(fiber.Map{"total": len(out), "balances": out})
}

// Balance godoc
// @Summary      Saldo de un depósito para un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path   string  true  "ID del depósito"
// @Param        product      query  string  true  "tablets | liquid"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/balances/{warehouseId} [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	product := entity.FumigationMethod(c.Query("product"))
	balance, err := h.uc.Balance(c.Context(), c.Params("warehouseId"), product)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBalanceResponse(balance))
}

// Movements godoc
// @Summary      Historial de movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "filtrar por depósito"
// @Param        product       query  string  false  "tablets | liquid"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	product := entity.FumigationMethod(c.Query("product"))
	movements, err := h.uc.Movements(c.Context(), c.Query("warehouse_id"), product, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Registra un ingreso o egreso manual; la cantidad se acepta
//
//	en kilos, pastillas, litros o cm³ y se normaliza a kilos.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "ajuste"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.Adjust(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// EditMovement godoc
// @Summary      Corregir un movimiento histórico
// @Description  Aplica al saldo la diferencia firmada entre la cantidad
//
//	nueva y la registrada, y actualiza el renglón.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        movementId  path  string  true  "ID del movimiento"
// @Param        body        body  dto.EditMovementRequest  true  "cantidades nuevas"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{movementId} [put]
func (h *StockHandler) EditMovement(c *fiber.Ctx) error {
	var in dto.EditMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.EditMovement(c.Context(), c.Params("movementId"), in.Kg, in.Units)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponse(movement))
}

// DeleteMovement godoc
// @Summary      Eliminar un movimiento histórico
// @Description  Revierte primero el efecto del movimiento sobre el saldo y
//
//	luego borra el renglón. Si el borrado falla tras revertir,
//	responde 500 MANUAL_FOLLOWUP: el renglón quedó huérfano y
//	requiere intervención manual.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        movementId  path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{movementId} [delete]
func (h *StockHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.uc.DeleteMovement(c.Context(), c.Params("movementId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

func toBalanceResponse(b *entity.StockBalance) dto.BalanceResponse {
	return dto.BalanceResponse{
		WarehouseID: b.WarehouseID,
		ProductType: string(b.ProductType),
		KgAmount:    b.KgAmount,
		UnitCount:   b.UnitCount,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Type:        string(m.Type),
		WarehouseID: m.WarehouseID,
		ProductType: string(m.ProductType),
		KgMoved:     m.KgMoved,
		UnitsMoved:  m.UnitsMoved,
		OperationID: m.OperationID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}
