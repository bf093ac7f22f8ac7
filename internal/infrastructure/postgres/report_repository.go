package postgres

import (
	"context"
	"fmt"

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

// ListMovementsWithItem une cada movimiento con los datos actuales de su item.
func (r *ReportRepo) ListMovementsWithItem(ctx context.Context, filter entity.MovementFilter) ([]*entity.MovementWithItem, error) {
	query := `
		SELECT m.id, m.item_code, m.quantity, m.type, m.occurred_at, m.note, m.unit_price,
		       i.id, i.name, i.category, i.purchase_price, i.sale_price
		FROM item_movements m
		JOIN items i ON i.code = m.item_code
		WHERE ($1::timestamptz IS NULL OR m.occurred_at >= $1)
		  AND ($2::timestamptz IS NULL OR m.occurred_at <= $2)
		ORDER BY m.occurred_at DESC, m.id DESC`
	rows, err := r.q.Query(ctx, query, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("list movements with item: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.MovementWithItem, 0)
	for rows.Next() {
		var (
			row entity.MovementWithItem
			typ string
		)
		if err := rows.Scan(
			&row.ID, &row.ItemCode, &row.Quantity, &typ, &row.Timestamp, &row.Note, &row.UnitPrice,
			&row.ItemID, &row.ItemName, &row.ItemCategory, &row.ItemPurchasePrice, &row.ItemSalePrice,
		); err != nil {
			return nil, fmt.Errorf("scan movement with item: %w", err)
		}
		row.Type = entity.MovementType(typ)
		list = append(list, &row)
	}
	return list, rows.Err()
}

// StockValuation agrupa por categoría. Las sumas se calculan en NUMERIC y se leen como decimal.Decimal.
func (r *ReportRepo) StockValuation(ctx context.Context) ([]repository.CategoryValuation, error) {
	query := `
		SELECT category,
		       COUNT(*),
		       COALESCE(SUM(stock), 0),
		       COALESCE(SUM(stock::numeric * purchase_price), 0),
		       COALESCE(SUM(stock::numeric * sale_price), 0)
		FROM items
		GROUP BY category
		ORDER BY category`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock valuation: %w", err)
	}
	defer rows.Close()

	out := make([]repository.CategoryValuation, 0)
	for rows.Next() {
		var v repository.CategoryValuation
		if err := rows.Scan(&v.Category, &v.Items, &v.Units, &v.Value, &v.SaleValue); err != nil {
			return nil, fmt.Errorf("scan valuation: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
