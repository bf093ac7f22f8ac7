package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	stockcalc "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// LedgerUseCase libro de movimientos. Cada escritura (Append, Correct, Reverse) corre en una
// transacción que bloquea la fila del item (SELECT FOR UPDATE) y escribe movimiento y stock juntos.
type LedgerUseCase struct {
	txRunner  TxRunner
	items     repository.ItemRepository
	movements repository.MovementRepository
	reports   repository.ReportRepository
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso. items, movements y reports se usan solo para lecturas fuera de tx.
func NewLedgerUseCase(
	txRunner TxRunner,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	reports repository.ReportRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *LedgerUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &LedgerUseCase{
		txRunner:  txRunner,
		items:     items,
		movements: movements,
		reports:   reports,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// MovementInput datos de un movimiento nuevo o corregido.
// Timestamp nil: ahora (Append) o se conserva (Correct). Note nil: "" (Append) o se conserva (Correct).
type MovementInput struct {
	Quantity  int
	Type      entity.MovementType
	Timestamp *time.Time
	Note      *string
}

// InputFromRequest adapta el body HTTP a MovementInput.
func InputFromRequest(in dto.MovementRequest) MovementInput {
	return MovementInput{
		Quantity:  in.Quantity,
		Type:      entity.MovementType(in.Type),
		Timestamp: in.Timestamp,
		Note:      in.Note,
	}
}

// Append registra un movimiento nuevo y ajusta el stock del item.
// Si el stock resultante es negativo no se crea nada (ErrInsufficientStock).
func (uc *LedgerUseCase) Append(ctx context.Context, itemID int64, in MovementInput) (*dto.MovementResult, error) {
	opID := uuid.New().String()
	ts := uc.now()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	note := ""
	if in.Note != nil {
		note = *in.Note
	}

	var (
		item   *entity.Item
		mov    *entity.Movement
		before int
	)
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		it, err := items.GetByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrItemNotFound
		}
		if err := stockcalc.ValidateMovement(in.Quantity, in.Type); err != nil {
			return err
		}
		next, err := stockcalc.Apply(it.Stock, in.Type, in.Quantity)
		if err != nil {
			return err
		}
		m := &entity.Movement{
			ItemCode:  it.Code,
			Quantity:  in.Quantity,
			Type:      in.Type,
			Timestamp: ts,
			Note:      note,
			UnitPrice: stockcalc.UnitPrice(it, in.Type),
		}
		if err := movements.Create(ctx, m); err != nil {
			return err
		}
		if err := items.SetStock(ctx, it.ID, next); err != nil {
			return err
		}
		before = it.Stock
		it.Stock = next
		item, mov = it, m
		return nil
	})
	if err != nil {
		uc.logFailure("append", opID, itemID, 0, err)
		return nil, err
	}

	uc.committed(ctx, EventMovementRecorded, opID, item, mov, before)
	return &dto.MovementResult{Movement: dto.FromMovement(mov), Item: dto.FromItem(item)}, nil
}

// Correct reemplaza cantidad, tipo, fecha y nota de un movimiento existente.
// Deshace el efecto anterior y aplica el nuevo sobre esa base; out y damaged restan en ambos pasos.
// El precio unitario se recalcula con los precios actuales del item.
func (uc *LedgerUseCase) Correct(ctx context.Context, itemID, movementID int64, in MovementInput) (*dto.MovementResult, error) {
	opID := uuid.New().String()

	var (
		item   *entity.Item
		mov    *entity.Movement
		before int
	)
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		it, m, err := resolve(ctx, items, movements, itemID, movementID)
		if err != nil {
			return err
		}
		if err := stockcalc.ValidateMovement(in.Quantity, in.Type); err != nil {
			return err
		}
		next, err := stockcalc.Rebase(it.Stock, m.Type, m.Quantity, in.Type, in.Quantity)
		if err != nil {
			return err
		}
		m.Quantity = in.Quantity
		m.Type = in.Type
		if in.Timestamp != nil {
			m.Timestamp = *in.Timestamp
		}
		if in.Note != nil {
			m.Note = *in.Note
		}
		m.UnitPrice = stockcalc.UnitPrice(it, in.Type)
		if err := movements.Update(ctx, m); err != nil {
			return err
		}
		if err := items.SetStock(ctx, it.ID, next); err != nil {
			return err
		}
		before = it.Stock
		it.Stock = next
		item, mov = it, m
		return nil
	})
	if err != nil {
		uc.logFailure("correct", opID, itemID, movementID, err)
		return nil, err
	}

	uc.committed(ctx, EventMovementCorrected, opID, item, mov, before)
	return &dto.MovementResult{Movement: dto.FromMovement(mov), Item: dto.FromItem(item)}, nil
}

// Reverse elimina un movimiento y revierte su efecto sobre el stock.
// Si la reversión deja el stock negativo se rechaza y el movimiento se conserva.
func (uc *LedgerUseCase) Reverse(ctx context.Context, itemID, movementID int64) (*dto.MovementResult, error) {
	opID := uuid.New().String()

	var (
		item   *entity.Item
		mov    *entity.Movement
		before int
	)
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		it, m, err := resolve(ctx, items, movements, itemID, movementID)
		if err != nil {
			return err
		}
		next, err := stockcalc.Reverse(it.Stock, m.Type, m.Quantity)
		if err != nil {
			return err
		}
		if err := movements.Delete(ctx, m.ID); err != nil {
			return err
		}
		if err := items.SetStock(ctx, it.ID, next); err != nil {
			return err
		}
		before = it.Stock
		it.Stock = next
		item, mov = it, m
		return nil
	})
	if err != nil {
		uc.logFailure("reverse", opID, itemID, movementID, err)
		return nil, err
	}

	uc.committed(ctx, EventMovementReversed, opID, item, mov, before)
	return &dto.MovementResult{Movement: dto.FromMovement(mov), Item: dto.FromItem(item)}, nil
}

// resolve bloquea el item, carga el movimiento y verifica que pertenezca al item.
func resolve(
	ctx context.Context,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	itemID, movementID int64,
) (*entity.Item, *entity.Movement, error) {
	it, err := items.GetByIDForUpdate(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if it == nil {
		return nil, nil, domain.ErrItemNotFound
	}
	m, err := movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, domain.ErrMovementNotFound
	}
	if m.ItemCode != it.Code {
		return nil, nil, domain.ErrMovementMismatch
	}
	return it, m, nil
}

// committed registra y publica una escritura confirmada. Un fallo de publicación solo se registra.
func (uc *LedgerUseCase) committed(ctx context.Context, eventType, opID string, item *entity.Item, mov *entity.Movement, before int) {
	uc.log.Debug().
		Str("op_id", opID).
		Str("event", eventType).
		Int64("item_id", item.ID).
		Int64("movement_id", mov.ID).
		Int("stock_before", before).
		Int("stock_after", item.Stock).
		Msg("movimiento aplicado")

	ev := MovementEvent{
		EventType:   eventType,
		OperationID: opID,
		ItemID:      item.ID,
		ItemCode:    item.Code,
		MovementID:  mov.ID,
		Type:        string(mov.Type),
		Quantity:    mov.Quantity,
		StockBefore: before,
		StockAfter:  item.Stock,
		OccurredAt:  uc.now(),
	}
	if err := uc.publisher.Publish(ctx, item.Code, ev); err != nil {
		uc.log.Warn().Err(err).Str("op_id", opID).Str("event", eventType).Msg("publicar evento")
	}
}

// logFailure: errores de negocio a info, fallos de infraestructura a error.
func (uc *LedgerUseCase) logFailure(op, opID string, itemID, movementID int64, err error) {
	ev := uc.log.Error()
	if isBusinessError(err) {
		ev = uc.log.Info()
	}
	ev.Err(err).
		Str("op", op).
		Str("op_id", opID).
		Int64("item_id", itemID).
		Int64("movement_id", movementID).
		Msg("operación de libro rechazada")
}

func isBusinessError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidMovement) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrMovementMismatch)
}
