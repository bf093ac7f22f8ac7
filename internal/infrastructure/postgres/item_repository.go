package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, name, category, purchase_price, sale_price, stock`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo item y asigna su ID.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (code, name, category, purchase_price, sale_price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.Code, item.Name, item.Category, item.PurchasePrice, item.SalePrice, item.Stock,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila hasta el fin de la tx.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// GetByCode obtiene un item por código.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE code = $1`, code)
}

func (r *ItemRepo) getOne(ctx context.Context, query string, arg any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update actualiza código y campos descriptivos. El stock solo cambia vía SetStock.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET code = $2, name = $3, category = $4, purchase_price = $5, sale_price = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Code, item.Name, item.Category, item.PurchasePrice, item.SalePrice,
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
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// SetStock escribe el contador de stock (usado por el libro de movimientos).
func (r *ItemRepo) SetStock(ctx context.Context, id int64, stock int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// List lista todos los items ordenados por ID.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Delete elimina el item; item_movements lo sigue con ON DELETE CASCADE.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	if err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Category, &it.PurchasePrice, &it.SalePrice, &it.Stock); err != nil {
		return nil, err
	}
	return &it, nil
}
