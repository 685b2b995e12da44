package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fumigacion-api/internal/application/dto"
	"github.com/jhoicas/fumigacion-api/internal/application/operation"
)

// ApprovalHandler decisiones de supervisión sobre registros pendientes.
// Las rutas se protegen con RequireRole(supervisor, admin).
type ApprovalHandler struct {
	uc *operation.UseCase
}

func NewApprovalHandler(uc *operation.UseCase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc}
}

// Approve godoc
// @Summary      Aprobar un registro pendiente
// @Description  Si el registro es un cierre de operación, la aprobación
//
//	termina la cadena completa.
//
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        recordId  path  string  true  "ID del registro"
// @Param        body      body  dto.ApprovalRequest  false  "nota opcional"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/records/{recordId}/approve [post]
func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApprovalRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Approve(c.Context(), actorFromCtx(c), c.Params("recordId"), in.Note); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "approved"})
}

// Reject godoc
// @Summary      Rechazar un registro pendiente
// @Description  La nota es obligatoria; el registro rechazado queda fuera
//
//	de los totales de la operación.
//
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        recordId  path  string  true  "ID del registro"
// @Param        body      body  dto.ApprovalRequest  true  "motivo del rechazo"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/records/{recordId}/reject [post]
func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	var in dto.ApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Reject(c.Context(), actorFromCtx(c), c.Params("recordId"), in.Note); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "rejected"})
}
