package ledger

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro: movimiento y stock del item se escriben juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error) error
}

// EventPublisher publica notificaciones después del commit. Un fallo no revierte la operación.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// NopPublisher descarta los eventos (sin brokers configurados).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }
