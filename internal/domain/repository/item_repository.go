package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el item no existe.
type ItemRepository interface {
	// Create asigna ID al item. Devuelve domain.ErrDuplicateCode si el código ya existe.
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	// Update guarda código y campos descriptivos. No toca Stock.
	Update(ctx context.Context, item *entity.Item) error
	SetStock(ctx context.Context, id int64, stock int) error
	List(ctx context.Context) ([]*entity.Item, error)
	// Delete elimina el item; el almacenamiento borra sus movimientos en cascada.
	Delete(ctx context.Context, id int64) error
}
