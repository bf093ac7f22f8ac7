package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para historial y valorización.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) ListMovementsWithItem(ctx context.Context, filter entity.MovementFilter) ([]*entity.MovementWithItem, error) {
	from, to := bound(filter.From), bound(filter.To)
	rows, err := r.q.QueryContext(ctx, `
		SELECT m.id, m.item_code, m.quantity, m.type, m.occurred_at, m.note, m.unit_price,
		       i.id, i.name, i.category, i.purchase_price, i.sale_price
		FROM item_movements m
		JOIN items i ON i.code = m.item_code
		WHERE (? IS NULL OR m.occurred_at >= ?)
		  AND (? IS NULL OR m.occurred_at <= ?)
		ORDER BY m.occurred_at DESC, m.id DESC`, from, from, to, to)
	if err != nil {
		return nil, fmt.Errorf("list movements with item: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.MovementWithItem, 0)
	for rows.Next() {
		var (
			row entity.MovementWithItem
			typ string
			ts  int64
		)
		if err := rows.Scan(
			&row.ID, &row.ItemCode, &row.Quantity, &typ, &ts, &row.Note, &row.UnitPrice,
			&row.ItemID, &row.ItemName, &row.ItemCategory, &row.ItemPurchasePrice, &row.ItemSalePrice,
		); err != nil {
			return nil, fmt.Errorf("scan movement with item: %w", err)
		}
		row.Type = entity.MovementType(typ)
		row.Timestamp = fromUnix(ts)
		list = append(list, &row)
	}
	return list, rows.Err()
}

// StockValuation SQLite suma en INTEGER de 64 bits; se convierte a decimal al leer.
func (r *ReportRepo) StockValuation(ctx context.Context) ([]repository.CategoryValuation, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT category, COUNT(*), COALESCE(SUM(stock), 0),
		       COALESCE(SUM(stock * purchase_price), 0), COALESCE(SUM(stock * sale_price), 0)
		FROM items
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("stock valuation: %w", err)
	}
	defer rows.Close()

	out := make([]repository.CategoryValuation, 0)
	for rows.Next() {
		var (
			v           repository.CategoryValuation
			value, sale int64
		)
		if err := rows.Scan(&v.Category, &v.Items, &v.Units, &value, &sale); err != nil {
			return nil, fmt.Errorf("scan valuation: %w", err)
		}
		v.Value = decimal.NewFromInt(value)
		v.SaleValue = decimal.NewFromInt(sale)
		out = append(out, v)
	}
	return out, rows.Err()
}
