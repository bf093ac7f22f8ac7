package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

// MovementHandler expone el libro de movimientos.
type MovementHandler struct {
	uc *ledger.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// ListByItem godoc
// @Summary      Movimientos de un item
// @Tags         movements
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *MovementHandler) ListByItem(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.ByItemID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// Append godoc
// @Summary      Registrar movimiento
// @Description  type: in | out | damaged. Rechaza con 409 si el stock quedaría negativo.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del item"
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [post]
func (h *MovementHandler) Append(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Append(c.UserContext(), id, ledger.InputFromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Correct godoc
// @Summary      Corregir movimiento
// @Description  Deshace el efecto anterior y aplica el nuevo. Fecha y nota se conservan si se omiten.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id          path  int  true  "ID del item"
// @Param        movementId  path  int  true  "ID del movimiento"
// @Param        body        body  dto.MovementRequest  true  "Movimiento corregido"
// @Success      200  {object}  dto.MovementResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements/{movementId} [put]
func (h *MovementHandler) Correct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	movementID, ok := paramID(c, "movementId")
	if !ok {
		return badRequest(c, "INVALID_ID", "movementId inválido")
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Correct(c.UserContext(), id, movementID, ledger.InputFromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reverse godoc
// @Summary      Eliminar movimiento
// @Description  Elimina el movimiento y revierte su efecto sobre el stock.
// @Tags         movements
// @Produce      json
// @Param        id          path  int  true  "ID del item"
// @Param        movementId  path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements/{movementId} [delete]
func (h *MovementHandler) Reverse(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	movementID, ok := paramID(c, "movementId")
	if !ok {
		return badRequest(c, "INVALID_ID", "movementId inválido")
	}
	out, err := h.uc.Reverse(c.UserContext(), id, movementID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusivo)"
// @Success      200   {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}
	out, err := h.uc.All(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// ListWithItem godoc
// @Summary      Historial de movimientos con datos del item
// @Tags         movements
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusivo)"
// @Success      200   {object}  dto.ListResponse[dto.MovementWithItemResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/all [get]
func (h *MovementHandler) ListWithItem(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}
	out, err := h.uc.AllWithItem(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}
