package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de stock.
type MovementRepository interface {
	// Create asigna ID al movimiento.
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// Update sobrescribe cantidad, tipo, fecha, nota y precio unitario.
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id int64) error
	ListByItemCode(ctx context.Context, code string) ([]*entity.Movement, error)
	CountByItemCode(ctx context.Context, code string) (int, error)
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.Movement, error)
}
