package ledger

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	stockcalc "github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// ByItemCode lista los movimientos de un item. Confirma primero que el item exista:
// una lista vacía es una respuesta válida, distinta de ErrItemNotFound.
func (uc *LedgerUseCase) ByItemCode(ctx context.Context, code string) ([]dto.MovementResponse, error) {
	item, err := uc.items.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	list, err := uc.movements.ListByItemCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.FromMovements(list), nil
}

// ByItemID igual que ByItemCode resolviendo el código desde el ID.
func (uc *LedgerUseCase) ByItemID(ctx context.Context, itemID int64) ([]dto.MovementResponse, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return uc.ByItemCode(ctx, item.Code)
}

// All lista todos los movimientos, opcionalmente desde/hasta una fecha.
func (uc *LedgerUseCase) All(ctx context.Context, filter entity.MovementFilter) ([]dto.MovementResponse, error) {
	list, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.FromMovements(list), nil
}

// AllWithItem proyección movimiento + item para historial y exportación. Solo lectura.
func (uc *LedgerUseCase) AllWithItem(ctx context.Context, filter entity.MovementFilter) ([]dto.MovementWithItemResponse, error) {
	list, err := uc.reports.ListMovementsWithItem(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.FromMovementsWithItem(list), nil
}

// Audit compara el stock cacheado de cada item con el derivado de sus movimientos.
// Solo ReconcileStock (o una escritura fuera del libro) puede producir diferencias.
func (uc *LedgerUseCase) Audit(ctx context.Context) (*dto.StockAuditReport, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movements.List(ctx, entity.MovementFilter{})
	if err != nil {
		return nil, err
	}
	byCode := make(map[string][]*entity.Movement, len(items))
	for _, m := range movs {
		byCode[m.ItemCode] = append(byCode[m.ItemCode], m)
	}

	report := &dto.StockAuditReport{
		CheckedAt:  uc.now(),
		Items:      len(items),
		Consistent: true,
		Drifted:    []dto.StockAuditEntry{},
	}
	for _, it := range items {
		ledgerStock := stockcalc.LedgerStock(byCode[it.Code])
		if ledgerStock == it.Stock {
			continue
		}
		report.Consistent = false
		report.Drifted = append(report.Drifted, dto.StockAuditEntry{
			ItemID:      it.ID,
			Code:        it.Code,
			Name:        it.Name,
			Stock:       it.Stock,
			LedgerStock: ledgerStock,
			Drift:       it.Stock - ledgerStock,
			Movements:   len(byCode[it.Code]),
		})
	}
	if !report.Consistent {
		uc.log.Warn().Int("drifted", len(report.Drifted)).Msg("auditoría de stock con diferencias")
	}
	return report, nil
}
