package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// CategoryValuation valor del stock de una categoría (precio de compra * stock).
type CategoryValuation struct {
	Category  string
	Items     int
	Units     int
	Value     decimal.Decimal
	SaleValue decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes; no tiene implicaciones sobre invariantes.
type ReportRepository interface {
	ListMovementsWithItem(ctx context.Context, filter entity.MovementFilter) ([]*entity.MovementWithItem, error)
	StockValuation(ctx context.Context) ([]CategoryValuation, error)
}
