package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// errorMapping relaciona cada error de dominio con su status y código HTTP.
var errorMapping = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{domain.ErrItemNotFound, fiber.StatusNotFound, "NOT_FOUND", "item no encontrado"},
	{domain.ErrMovementNotFound, fiber.StatusNotFound, "NOT_FOUND", "movimiento no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrDuplicateCode, fiber.StatusConflict, "DUPLICATE_CODE", "el código ya existe"},
	{domain.ErrCodeLocked, fiber.StatusConflict, "CODE_LOCKED", "el código tiene movimientos y no puede cambiar"},
	{domain.ErrInvalidMovement, fiber.StatusBadRequest, "INVALID_MOVEMENT", "cantidad o tipo de movimiento inválido"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrMovementMismatch, fiber.StatusBadRequest, "MOVEMENT_MISMATCH", "el movimiento no pertenece a este item"},
}

// writeError traduce un error de los casos de uso a la respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
