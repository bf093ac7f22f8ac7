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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_code, quantity, type, occurred_at, note, unit_price`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna su ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO item_movements (item_code, quantity, type, occurred_at, note, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ItemCode, m.Quantity, string(m.Type), m.Timestamp, m.Note, m.UnitPrice,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM item_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update sobrescribe cantidad, tipo, fecha, nota y precio unitario.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE item_movements SET quantity = $2, type = $3, occurred_at = $4, note = $5, unit_price = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, m.ID, m.Quantity, string(m.Type), m.Timestamp, m.Note, m.UnitPrice)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// Delete elimina un movimiento.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM item_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// ListByItemCode movimientos de un item, más recientes primero.
func (r *MovementRepo) ListByItemCode(ctx context.Context, code string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM item_movements
		WHERE item_code = $1
		ORDER BY occurred_at DESC, id DESC`
	return r.list(ctx, query, code)
}

// CountByItemCode cuenta los movimientos que referencian un código.
func (r *MovementRepo) CountByItemCode(ctx context.Context, code string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM item_movements WHERE item_code = $1`, code).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// List todos los movimientos dentro del rango (extremos inclusivos, nil = sin límite).
func (r *MovementRepo) List(ctx context.Context, filter entity.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM item_movements
		WHERE ($1::timestamptz IS NULL OR occurred_at >= $1)
		  AND ($2::timestamptz IS NULL OR occurred_at <= $2)
		ORDER BY occurred_at DESC, id DESC`
	return r.list(ctx, query, filter.From, filter.To)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
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

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m   entity.Movement
		typ string
	)
	if err := row.Scan(&m.ID, &m.ItemCode, &m.Quantity, &typ, &m.Timestamp, &m.Note, &m.UnitPrice); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}
