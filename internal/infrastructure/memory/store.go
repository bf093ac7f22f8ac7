// Package memory implementa los puertos de persistencia en memoria.
// Run serializa todas las transacciones con un mutex y trabaja sobre una copia del estado:
// si fn falla la copia se descarta, así ningún error deja escrituras parciales.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ ledger.TxRunner               = (*Store)(nil)
	_ repository.ItemRepository     = (*itemRepo)(nil)
	_ repository.MovementRepository = (*movementRepo)(nil)
	_ repository.ReportRepository   = (*reportRepo)(nil)
)

type state struct {
	items     map[int64]entity.Item
	movements map[int64]entity.Movement
	nextItem  int64
	nextMov   int64
}

func newState() *state {
	return &state{
		items:     make(map[int64]entity.Item),
		movements: make(map[int64]entity.Movement),
	}
}

func (s *state) clone() *state {
	c := &state{
		items:     make(map[int64]entity.Item, len(s.items)),
		movements: make(map[int64]entity.Movement, len(s.movements)),
		nextItem:  s.nextItem,
		nextMov:   s.nextMov,
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	return c
}

// Store almacenamiento en memoria.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&itemRepo{st: work}, &movementRepo{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Items repositorio de items fuera de transacción.
func (s *Store) Items() repository.ItemRepository { return &itemRepo{store: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{store: s} }

// Reports repositorio de reportes.
func (s *Store) Reports() repository.ReportRepository { return &reportRepo{store: s} }

// view ejecuta fn con lectura concurrente sobre el estado publicado.
func (s *Store) view(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// update ejecuta una escritura suelta como una transacción de un solo paso.
func (s *Store) update(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.st = work
	return nil
}

// ── Items ────────────────────────────────────────────────────────────────────

// itemRepo usa st cuando está atado a una tx y store en caso contrario.
type itemRepo struct {
	st    *state
	store *Store
}

func (r *itemRepo) read(fn func(st *state) error) error {
	if r.st != nil {
		return fn(r.st)
	}
	return r.store.view(fn)
}

func (r *itemRepo) write(fn func(st *state) error) error {
	if r.st != nil {
		return fn(r.st)
	}
	return r.store.update(fn)
}

func (r *itemRepo) Create(ctx context.Context, item *entity.Item) error {
	return r.write(func(st *state) error {
		for _, it := range st.items {
			if it.Code == item.Code {
				return domain.ErrDuplicateCode
			}
		}
		st.nextItem++
		item.ID = st.nextItem
		st.items[item.ID] = *item
		return nil
	})
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	var out *entity.Item
	err := r.read(func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate dentro de Run el mutex del Store ya serializa a los escritores.
func (r *itemRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	var out *entity.Item
	err := r.read(func(st *state) error {
		for _, it := range st.items {
			if it.Code == code {
				it := it
				out = &it
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *itemRepo) Update(ctx context.Context, item *entity.Item) error {
	return r.write(func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok {
			return domain.ErrItemNotFound
		}
		for id, it := range st.items {
			if id != item.ID && it.Code == item.Code {
				return domain.ErrDuplicateCode
			}
		}
		updated := *item
		updated.Stock = cur.Stock
		st.items[item.ID] = updated
		return nil
	})
}

func (r *itemRepo) SetStock(ctx context.Context, id int64, stock int) error {
	return r.write(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrItemNotFound
		}
		it.Stock = stock
		st.items[id] = it
		return nil
	})
}

func (r *itemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.read(func(st *state) error {
		out = make([]*entity.Item, 0, len(st.items))
		for _, it := range st.items {
			it := it
			out = append(out, &it)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// Delete borra el item y sus movimientos (equivalente a ON DELETE CASCADE).
func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	return r.write(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrItemNotFound
		}
		for mid, m := range st.movements {
			if m.ItemCode == it.Code {
				delete(st.movements, mid)
			}
		}
		delete(st.items, id)
		return nil
	})
}

// ── Movements ────────────────────────────────────────────────────────────────

type movementRepo struct {
	st    *state
	store *Store
}

func (r *movementRepo) read(fn func(st *state) error) error {
	if r.st != nil {
		return fn(r.st)
	}
	return r.store.view(fn)
}

func (r *movementRepo) write(fn func(st *state) error) error {
	if r.st != nil {
		return fn(r.st)
	}
	return r.store.update(fn)
}

// Create exige que el código exista (equivalente a la FK item_movements.item_code).
func (r *movementRepo) Create(ctx context.Context, m *entity.Movement) error {
	return r.write(func(st *state) error {
		if !hasCode(st, m.ItemCode) {
			return domain.ErrItemNotFound
		}
		st.nextMov++
		m.ID = st.nextMov
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *movementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.read(func(st *state) error {
		if m, ok := st.movements[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) Update(ctx context.Context, m *entity.Movement) error {
	return r.write(func(st *state) error {
		cur, ok := st.movements[m.ID]
		if !ok {
			return domain.ErrMovementNotFound
		}
		cur.Quantity = m.Quantity
		cur.Type = m.Type
		cur.Timestamp = m.Timestamp
		cur.Note = m.Note
		cur.UnitPrice = m.UnitPrice
		st.movements[m.ID] = cur
		return nil
	})
}

func (r *movementRepo) Delete(ctx context.Context, id int64) error {
	return r.write(func(st *state) error {
		if _, ok := st.movements[id]; !ok {
			return domain.ErrMovementNotFound
		}
		delete(st.movements, id)
		return nil
	})
}

func (r *movementRepo) ListByItemCode(ctx context.Context, code string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.read(func(st *state) error {
		out = collect(st, func(m entity.Movement) bool { return m.ItemCode == code })
		return nil
	})
	return out, err
}

func (r *movementRepo) CountByItemCode(ctx context.Context, code string) (int, error) {
	list, err := r.ListByItemCode(ctx, code)
	return len(list), err
}

func (r *movementRepo) List(ctx context.Context, filter entity.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.read(func(st *state) error {
		out = collect(st, func(m entity.Movement) bool { return filter.Match(m.Timestamp) })
		return nil
	})
	return out, err
}

// ── Reports ──────────────────────────────────────────────────────────────────

type reportRepo struct {
	store *Store
}

func (r *reportRepo) ListMovementsWithItem(ctx context.Context, filter entity.MovementFilter) ([]*entity.MovementWithItem, error) {
	var out []*entity.MovementWithItem
	err := r.store.view(func(st *state) error {
		byCode := make(map[string]entity.Item, len(st.items))
		for _, it := range st.items {
			byCode[it.Code] = it
		}
		for _, m := range collect(st, func(m entity.Movement) bool { return filter.Match(m.Timestamp) }) {
			it := byCode[m.ItemCode]
			out = append(out, &entity.MovementWithItem{
				Movement:          *m,
				ItemID:            it.ID,
				ItemName:          it.Name,
				ItemCategory:      it.Category,
				ItemPurchasePrice: it.PurchasePrice,
				ItemSalePrice:     it.SalePrice,
			})
		}
		return nil
	})
	return out, err
}

func (r *reportRepo) StockValuation(ctx context.Context) ([]repository.CategoryValuation, error) {
	var out []repository.CategoryValuation
	err := r.store.view(func(st *state) error {
		groups := make(map[string]*repository.CategoryValuation)
		for _, it := range st.items {
			g, ok := groups[it.Category]
			if !ok {
				g = &repository.CategoryValuation{Category: it.Category, Value: decimal.Zero, SaleValue: decimal.Zero}
				groups[it.Category] = g
			}
			units := decimal.NewFromInt(int64(it.Stock))
			g.Items++
			g.Units += it.Stock
			g.Value = g.Value.Add(units.Mul(decimal.NewFromInt(it.PurchasePrice)))
			g.SaleValue = g.SaleValue.Add(units.Mul(decimal.NewFromInt(it.SalePrice)))
		}
		for _, g := range groups {
			out = append(out, *g)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func hasCode(st *state, code string) bool {
	for _, it := range st.items {
		if it.Code == code {
			return true
		}
	}
	return false
}

// collect filtra y ordena por fecha descendente, luego por ID descendente (igual que las consultas SQL).
func collect(st *state, keep func(entity.Movement) bool) []*entity.Movement {
	out := make([]*entity.Movement, 0)
	for _, m := range st.movements {
		if keep(m) {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
