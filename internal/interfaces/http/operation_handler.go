package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fumigacion-api/internal/application/dto"
	"github.com/jhoicas/fumigacion-api/internal/application/operation"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// OperationHandler maneja las peticiones HTTP del ciclo de vida de operaciones (protegido).
type OperationHandler struct {
	uc     *operation.UseCase
	pdfGen operation.CertificatePDFGenerator
}

// NewOperationHandler construye el handler.
func NewOperationHandler(uc *operation.UseCase, pdfGen operation.CertificatePDFGenerator) *OperationHandler {
	return &OperationHandler{uc: uc, pdfGen: pdfGen}
}

// Begin godoc
// @Summary      Abrir una operación de fumigación
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BeginOperationRequest  true  "client_id, warehouse_id, merchandise_id, method"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations [post]
func (h *OperationHandler) Begin(c *fiber.Ctx) error {
	var in dto.BeginOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.Begin(c.Context(), actorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecordResponse(record))
}

// Append godoc
// @Summary      Agregar un evento a la cadena
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        rootId  path  string  true  "ID del registro inicial"
// @Param        body    body  dto.AppendRecordRequest  true  "kind y payload según tipo"
// @Success      201  {object}  dto.RecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{rootId}/records [post]
func (h *OperationHandler) Append(c *fiber.Ctx) error {
	var in dto.AppendRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.Append(c.Context(), actorFromCtx(c), c.Params("rootId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecordResponse(record))
}

// FetchChain godoc
// @Summary      Cadena completa de una operación
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        rootId  path  string  true  "ID del registro inicial"
// @Success      200  {array}   dto.RecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{rootId} [get]
func (h *OperationHandler) FetchChain(c *fiber.Ctx) error {
	chain, err := h.uc.FetchChain(c.Context(), c.Params("rootId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RecordResponse, 0, len(chain))
	for _, r := range chain {
		out = append(out, toRecordResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "records": out})
}

// List godoc
// @Summary      Listar operaciones (registros iniciales)
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RecordResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	roots, err := h.uc.ListOperations(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RecordResponse, 0, len(roots))
	for _, r := range roots {
		out = append(out, toRecordResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "operations": out})
}

// Finalize godoc
// @Summary      Cerrar una operación
// @Description  Un supervisor cierra de inmediato; un fumigador deja el
//
//	cierre pendiente de aprobación.
//
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        rootId  path  string  true  "ID del registro inicial"
// @Success      201  {object}  dto.RecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{rootId}/finalize [post]
func (h *OperationHandler) Finalize(c *fiber.Ctx) error {
	record, err := h.uc.Finalize(c.Context(), actorFromCtx(c), c.Params("rootId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecordResponse(record))
}

// Aggregates godoc
// @Summary      Totales, acumulados y garantía de una operación
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        rootId  path  string  true  "ID del registro inicial"
// @Success      200  {object}  dto.AggregatesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{rootId}/aggregates [get]
func (h *OperationHandler) Aggregates(c *fiber.Ctx) error {
	agg, err := h.uc.ComputeAggregates(c.Context(), c.Params("rootId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(agg)
}

// Certificate godoc
// @Summary      Constancia de fumigación en PDF
// @Tags         operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        rootId  path  string  true  "ID del registro inicial"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{rootId}/certificate [get]
func (h *OperationHandler) Certificate(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Certificate(c.Context(), h.pdfGen, c.Params("rootId"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="constancia-fumigacion.pdf"`)
	return c.Send(pdfBytes)
}

func toRecordResponse(r *entity.OperationRecord) dto.RecordResponse {
	resp := dto.RecordResponse{
		ID:                r.ID,
		RootID:            r.RootID,
		Kind:              string(r.Kind),
		State:             string(r.State),
		Approval:          string(r.Approval),
		ApprovalNote:      r.ApprovalNote,
		ClientID:          r.ClientID,
		WarehouseID:       r.WarehouseID,
		MerchandiseID:     r.MerchandiseID,
		OperatorName:      r.OperatorName,
		SupervisorID:      r.SupervisorID,
		Method:            string(r.Method),
		Tons:              r.Tons,
		ProductAmountUsed: r.ProductAmountUsed,
		AttachmentURL:     r.AttachmentURL,
		HasWarranty:       r.HasWarranty,
		WarrantyExpiry:    r.WarrantyExpiry,
		CreatedAt:         r.CreatedAt,
	}
	if r.Treatment != nil {
		resp.Treatment = string(*r.Treatment)
	}
	if r.Mode != nil {
		resp.Mode = string(*r.Mode)
	}
	return resp
}
