package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, name, category, purchase_price, sale_price, stock`

// ItemRepo implementación de ItemRepository sobre SQLite.
type ItemRepo struct {
	q Querier
}

// NewItemRepository pasar *sql.DB o *sql.Tx.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO items (code, name, category, purchase_price, sale_price, stock) VALUES (?, ?, ?, ?, ?, ?)`,
		item.Code, item.Name, item.Category, item.PurchasePrice, item.SalePrice, item.Stock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert item id: %w", err)
	}
	item.ID = id
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
}

// GetByIDForUpdate SQLite no tiene FOR UPDATE; la única conexión ya serializa las transacciones.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE code = ?`, code)
}

func (r *ItemRepo) getOne(ctx context.Context, query string, arg any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&it.ID, &it.Code, &it.Name, &it.Category, &it.PurchasePrice, &it.SalePrice, &it.Stock,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE items SET code = ?, name = ?, category = ?, purchase_price = ?, sale_price = ? WHERE id = ?`,
		item.Code, item.Name, item.Category, item.PurchasePrice, item.SalePrice, item.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		if isForeignKeyViolation(err) {
			return domain.ErrCodeLocked
		}
		return fmt.Errorf("update item: %w", err)
	}
	return affected(res, domain.ErrItemNotFound)
}

func (r *ItemRepo) SetStock(ctx context.Context, id int64, stock int) error {
	res, err := r.q.ExecContext(ctx, `UPDATE items SET stock = ? WHERE id = ?`, stock, id)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	return affected(res, domain.ErrItemNotFound)
}

func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Item, 0)
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Category, &it.PurchasePrice, &it.SalePrice, &it.Stock); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete requiere foreign_keys(1) para que la cascada borre los movimientos.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return affected(res, domain.ErrItemNotFound)
}

func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
