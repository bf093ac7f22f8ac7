package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateCode     = errors.New("el código de item ya existe")
	ErrCodeLocked        = errors.New("el código no puede cambiar: el item ya tiene movimientos")
	ErrInvalidMovement   = errors.New("movimiento inválido: cantidad debe ser positiva y tipo in, out o damaged")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrMovementMismatch  = errors.New("el movimiento no pertenece a este item")
)

// Variantes de ErrNotFound; errors.Is(err, ErrNotFound) sigue siendo verdadero.
var (
	ErrItemNotFound     = fmt.Errorf("item: %w", ErrNotFound)
	ErrMovementNotFound = fmt.Errorf("movimiento: %w", ErrNotFound)
)
