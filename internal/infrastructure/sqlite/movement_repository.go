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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_code, quantity, type, occurred_at, note, unit_price`

// MovementRepo implementación de MovementRepository sobre SQLite.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository pasar *sql.DB o *sql.Tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO item_movements (item_code, quantity, type, occurred_at, note, unit_price) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ItemCode, m.Quantity, string(m.Type), toUnix(m.Timestamp), m.Note, m.UnitPrice,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert movement id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRowContext(ctx, `SELECT `+movementColumns+` FROM item_movements WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE item_movements SET quantity = ?, type = ?, occurred_at = ?, note = ?, unit_price = ? WHERE id = ?`,
		m.Quantity, string(m.Type), toUnix(m.Timestamp), m.Note, m.UnitPrice, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return affected(res, domain.ErrMovementNotFound)
}

func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM item_movements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return affected(res, domain.ErrMovementNotFound)
}

func (r *MovementRepo) ListByItemCode(ctx context.Context, code string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM item_movements
		WHERE item_code = ?
		ORDER BY occurred_at DESC, id DESC`, code)
}

func (r *MovementRepo) CountByItemCode(ctx context.Context, code string) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM item_movements WHERE item_code = ?`, code).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) List(ctx context.Context, filter entity.MovementFilter) ([]*entity.Movement, error) {
	from, to := bound(filter.From), bound(filter.To)
	return r.list(ctx, `SELECT `+movementColumns+` FROM item_movements
		WHERE (? IS NULL OR occurred_at >= ?)
		  AND (? IS NULL OR occurred_at <= ?)
		ORDER BY occurred_at DESC, id DESC`, from, from, to, to)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovement(row scanner) (*entity.Movement, error) {
	var (
		m   entity.Movement
		typ string
		ts  int64
	)
	if err := row.Scan(&m.ID, &m.ItemCode, &m.Quantity, &typ, &ts, &m.Note, &m.UnitPrice); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	m.Timestamp = fromUnix(ts)
	return &m, nil
}
