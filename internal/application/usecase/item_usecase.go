package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	stockcalc "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// OpeningNote nota del movimiento que registra el stock inicial de un item.
const OpeningNote = "stock inicial"

// ItemUseCase registro de items. El stock solo cambia vía libro de movimientos,
// salvo ReconcileStock, que lo sobrescribe de forma explícita.
type ItemUseCase struct {
	txRunner ledger.TxRunner
	repo     repository.ItemRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewItemUseCase construye el caso de uso. repo se usa para lecturas fuera de tx.
func NewItemUseCase(txRunner ledger.TxRunner, repo repository.ItemRepository, log *logger.Logger) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, repo: repo, log: log, now: time.Now}
}

// Create crea un item. Un stock inicial > 0 se registra como movimiento de entrada en la misma tx,
// de modo que el stock sigue siendo la suma de sus movimientos.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" || in.PurchasePrice < 0 || in.SalePrice < 0 || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.Item{
		Code:          code,
		Name:          name,
		Category:      strings.TrimSpace(in.Category),
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         in.Stock,
	}
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		existing, err := items.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateCode
		}
		if err := items.Create(ctx, item); err != nil {
			return err
		}
		if item.Stock == 0 {
			return nil
		}
		return movements.Create(ctx, &entity.Movement{
			ItemCode:  item.Code,
			Quantity:  item.Stock,
			Type:      entity.MovementTypeIn,
			Timestamp: uc.now(),
			Note:      OpeningNote,
			UnitPrice: stockcalc.UnitPrice(item, entity.MovementTypeIn),
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromItem(item)
	return &out, nil
}

// Get obtiene un item por ID.
func (uc *ItemUseCase) Get(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	out := dto.FromItem(item)
	return &out, nil
}

// List lista todos los items.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromItems(list), nil
}

// Update actualiza código y campos descriptivos. No permite modificar Stock.
// El código solo puede cambiar mientras ningún movimiento lo referencie.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	var item *entity.Item
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		it, err := items.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrItemNotFound
		}
		if in.Code != nil {
			code := strings.TrimSpace(*in.Code)
			if code == "" {
				return domain.ErrInvalidInput
			}
			if code != it.Code {
				if err := checkRename(ctx, items, movements, it.Code, code); err != nil {
					return err
				}
				it.Code = code
			}
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			it.Name = name
		}
		if in.Category != nil {
			it.Category = strings.TrimSpace(*in.Category)
		}
		if in.PurchasePrice != nil {
			if *in.PurchasePrice < 0 {
				return domain.ErrInvalidInput
			}
			it.PurchasePrice = *in.PurchasePrice
		}
		if in.SalePrice != nil {
			if *in.SalePrice < 0 {
				return domain.ErrInvalidInput
			}
			it.SalePrice = *in.SalePrice
		}
		if err := items.Update(ctx, it); err != nil {
			return err
		}
		item = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromItem(item)
	return &out, nil
}

func checkRename(ctx context.Context, items repository.ItemRepository, movements repository.MovementRepository, from, to string) error {
	n, err := movements.CountByItemCode(ctx, from)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCodeLocked
	}
	other, err := items.GetByCode(ctx, to)
	if err != nil {
		return err
	}
	if other != nil {
		return domain.ErrDuplicateCode
	}
	return nil
}

// ReconcileStock sobrescribe el stock sin movimiento (reconteo físico).
// Rompe la igualdad stock = suma de movimientos hasta la próxima auditoría; queda registrado en el log.
func (uc *ItemUseCase) ReconcileStock(ctx context.Context, id int64, stock int, reason string) (*dto.ItemResponse, error) {
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var (
		item   *entity.Item
		before int
	)
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository) error {
		it, err := items.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrItemNotFound
		}
		if err := items.SetStock(ctx, it.ID, stock); err != nil {
			return err
		}
		before = it.Stock
		it.Stock = stock
		item = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Warn().
		Int64("item_id", item.ID).
		Str("code", item.Code).
		Int("stock_before", before).
		Int("stock_after", stock).
		Str("reason", reason).
		Msg("stock reconciliado fuera del libro")
	out := dto.FromItem(item)
	return &out, nil
}

// Delete elimina un item; sus movimientos se borran en cascada.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	var (
		item    *entity.Item
		removed int
	)
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		it, err := items.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrItemNotFound
		}
		if removed, err = movements.CountByItemCode(ctx, it.Code); err != nil {
			return err
		}
		if err := items.Delete(ctx, it.ID); err != nil {
			return err
		}
		item = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("item_id", item.ID).Str("code", item.Code).Int("movements", removed).Msg("item eliminado")
	out := dto.FromItem(item)
	return &out, nil
}
