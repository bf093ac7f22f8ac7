package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func newItemUseCase() (*usecase.ItemUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewItemUseCase(store, store.Items(), logger.Nop()), store
}

func ptr[T any](v T) *T { return &v }

func validItem(code string, stock int) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Code: code, Name: "Teclado", Category: "Aksesoris", PurchasePrice: 650000, SalePrice: 800000, Stock: stock,
	}
}

func TestItemUseCase_CreateRecordsOpeningMovement(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()

	out, err := uc.Create(ctx, validItem("  BR003 ", 15))
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "BR003", out.Code, "el código se normaliza")
	assert.Equal(t, 15, out.Stock)

	movs, err := store.Movements().ListByItemCode(ctx, "BR003")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, 15, movs[0].Quantity)
	assert.Equal(t, usecase.OpeningNote, movs[0].Note)
	assert.Equal(t, int64(650000), movs[0].UnitPrice)
}

func TestItemUseCase_CreateWithoutStockHasNoMovements(t *testing.T) {
	uc, store := newItemUseCase()
	_, err := uc.Create(context.Background(), validItem("BR001", 0))
	require.NoError(t, err)

	n, err := store.Movements().CountByItemCode(context.Background(), "BR001")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestItemUseCase_CreateValidation(t *testing.T) {
	uc, _ := newItemUseCase()
	ctx := context.Background()

	cases := map[string]dto.CreateItemRequest{
		"código vacío":           {Code: " ", Name: "x"},
		"nombre vacío":           {Code: "A", Name: ""},
		"precio compra negativo": {Code: "A", Name: "x", PurchasePrice: -1},
		"precio venta negativo":  {Code: "A", Name: "x", SalePrice: -1},
		"stock negativo":         {Code: "A", Name: "x", Stock: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestItemUseCase_CreateDuplicateCodeLeavesNoTrace(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, validItem("BR001", 5))
	require.NoError(t, err)

	_, err = uc.Create(ctx, validItem("BR001", 9))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	n, err := store.Movements().CountByItemCode(ctx, "BR001")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestItemUseCase_GetNotFound(t *testing.T) {
	uc, _ := newItemUseCase()
	_, err := uc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemUseCase_UpdateDescriptiveFields(t *testing.T) {
	uc, _ := newItemUseCase()
	ctx := context.Background()
	it, err := uc.Create(ctx, validItem("BR001", 5))
	require.NoError(t, err)

	out, err := uc.Update(ctx, it.ID, dto.UpdateItemRequest{
		Name:      ptr("Teclado mecánico"),
		SalePrice: ptr(int64(900000)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Teclado mecánico", out.Name)
	assert.Equal(t, int64(900000), out.SalePrice)
	assert.Equal(t, int64(650000), out.PurchasePrice)
	assert.Equal(t, 5, out.Stock)

	_, err = uc.Update(ctx, it.ID, dto.UpdateItemRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, it.ID, dto.UpdateItemRequest{PurchasePrice: ptr(int64(-5))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, 999, dto.UpdateItemRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemUseCase_RenameCode(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()
	free, err := uc.Create(ctx, validItem("BR001", 0))
	require.NoError(t, err)
	_, err = uc.Create(ctx, validItem("BR002", 0))
	require.NoError(t, err)
	withMovs, err := uc.Create(ctx, validItem("BR003", 2))
	require.NoError(t, err)

	out, err := uc.Update(ctx, free.ID, dto.UpdateItemRequest{Code: ptr("BR100")})
	require.NoError(t, err)
	assert.Equal(t, "BR100", out.Code)

	_, err = uc.Update(ctx, free.ID, dto.UpdateItemRequest{Code: ptr("BR002")})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = uc.Update(ctx, withMovs.ID, dto.UpdateItemRequest{Code: ptr("BR300")})
	assert.ErrorIs(t, err, domain.ErrCodeLocked)

	// Mismo código: no es un renombre.
	_, err = uc.Update(ctx, withMovs.ID, dto.UpdateItemRequest{Code: ptr("BR003"), Name: ptr("Otro")})
	require.NoError(t, err)

	movs, err := store.Movements().ListByItemCode(ctx, "BR003")
	require.NoError(t, err)
	assert.Len(t, movs, 1, "los movimientos siguen apuntando al código")
}

func TestItemUseCase_ReconcileStock(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()
	it, err := uc.Create(ctx, validItem("BR001", 10))
	require.NoError(t, err)

	out, err := uc.ReconcileStock(ctx, it.ID, 7, "reconteo mensual")
	require.NoError(t, err)
	assert.Equal(t, 7, out.Stock)

	n, err := store.Movements().CountByItemCode(ctx, "BR001")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la reconciliación no crea movimientos")

	_, err = uc.ReconcileStock(ctx, it.ID, -1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ReconcileStock(ctx, 404, 1, "")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemUseCase_Delete(t *testing.T) {
	uc, store := newItemUseCase()
	ctx := context.Background()
	it, err := uc.Create(ctx, validItem("BR001", 3))
	require.NoError(t, err)
	lg := ledger.NewLedgerUseCase(store, store.Items(), store.Movements(), store.Reports(), nil, logger.Nop())
	_, err = lg.Append(ctx, it.ID, ledger.MovementInput{Quantity: 1, Type: entity.MovementTypeOut})
	require.NoError(t, err)

	deleted, err := uc.Delete(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "BR001", deleted.Code)

	_, err = uc.Get(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	n, err := store.Movements().CountByItemCode(ctx, "BR001")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = uc.Delete(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
