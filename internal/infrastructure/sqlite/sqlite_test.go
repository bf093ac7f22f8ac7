package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return db
}

func seedItem(t *testing.T, db *sql.DB, code string, stock int) *entity.Item {
	t.Helper()
	it := &entity.Item{Code: code, Name: "Item " + code, Category: "Bebidas", PurchasePrice: 1000, SalePrice: 1500, Stock: stock}
	require.NoError(t, sqlite.NewItemRepository(db).Create(context.Background(), it))
	return it
}

func TestItemRepo_CreateAndGet(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := sqlite.NewItemRepository(db)

	it := seedItem(t, db, "BR001", 4)
	assert.NotZero(t, it.ID)

	got, err := repo.GetByCode(ctx, "BR001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *it, *got)

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestItemRepo_DuplicateCode(t *testing.T) {
	db := openDB(t)
	seedItem(t, db, "BR001", 0)

	err := sqlite.NewItemRepository(db).Create(context.Background(), &entity.Item{Code: "BR001", Name: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestItemRepo_UpdateKeepsStock(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := sqlite.NewItemRepository(db)
	it := seedItem(t, db, "BR001", 7)

	it.Name = "Renombrado"
	it.Stock = 0
	require.NoError(t, repo.Update(ctx, it))

	got, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", got.Name)
	assert.Equal(t, 7, got.Stock)

	assert.ErrorIs(t, repo.Update(ctx, &entity.Item{ID: 404, Code: "X", Name: "x"}), domain.ErrNotFound)
}

func TestItemRepo_RenameReferencedCodeFails(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	it := seedItem(t, db, "BR001", 0)
	require.NoError(t, sqlite.NewMovementRepository(db).Create(ctx, &entity.Movement{
		ItemCode: "BR001", Quantity: 1, Type: entity.MovementTypeIn, Timestamp: time.Now(),
	}))

	it.Code = "BR999"
	assert.ErrorIs(t, sqlite.NewItemRepository(db).Update(ctx, it), domain.ErrCodeLocked)
}

func TestItemRepo_DeleteCascadesMovements(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	movs := sqlite.NewMovementRepository(db)
	it := seedItem(t, db, "BR001", 0)
	other := seedItem(t, db, "BR002", 0)

	for _, code := range []string{it.Code, it.Code, other.Code} {
		require.NoError(t, movs.Create(ctx, &entity.Movement{
			ItemCode: code, Quantity: 2, Type: entity.MovementTypeIn, Timestamp: time.Now(),
		}))
	}

	require.NoError(t, sqlite.NewItemRepository(db).Delete(ctx, it.ID))

	n, err := movs.CountByItemCode(ctx, it.Code)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = movs.CountByItemCode(ctx, other.Code)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, sqlite.NewItemRepository(db).Delete(ctx, it.ID), domain.ErrItemNotFound)
}

func TestMovementRepo_UnknownItem(t *testing.T) {
	db := openDB(t)
	err := sqlite.NewMovementRepository(db).Create(context.Background(), &entity.Movement{
		ItemCode: "NOPE", Quantity: 1, Type: entity.MovementTypeIn, Timestamp: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestMovementRepo_ListOrderAndFilter(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	movs := sqlite.NewMovementRepository(db)
	seedItem(t, db, "BR001", 0)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, movs.Create(ctx, &entity.Movement{
			ItemCode:  "BR001",
			Quantity:  i + 1,
			Type:      entity.MovementTypeIn,
			Timestamp: base.AddDate(0, 0, i),
			Note:      "lote",
		}))
	}

	all, err := movs.List(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].Quantity, "más reciente primero")
	assert.True(t, all[2].Timestamp.Equal(base))

	from := base.AddDate(0, 0, 1)
	since, err := movs.List(ctx, entity.MovementFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	to := base.AddDate(0, 0, 1)
	window, err := movs.List(ctx, entity.MovementFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, 2, window[0].Quantity)
}

func TestMovementRepo_UpdateAndDelete(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	movs := sqlite.NewMovementRepository(db)
	seedItem(t, db, "BR001", 0)

	m := &entity.Movement{ItemCode: "BR001", Quantity: 3, Type: entity.MovementTypeIn, Timestamp: time.Now()}
	require.NoError(t, movs.Create(ctx, m))

	m.Quantity = 1
	m.Type = entity.MovementTypeDamaged
	m.Note = "roto"
	m.UnitPrice = 1500
	require.NoError(t, movs.Update(ctx, m))

	got, err := movs.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, entity.MovementTypeDamaged, got.Type)
	assert.Equal(t, "roto", got.Note)
	assert.Equal(t, int64(1500), got.UnitPrice)

	require.NoError(t, movs.Delete(ctx, m.ID))
	assert.ErrorIs(t, movs.Delete(ctx, m.ID), domain.ErrMovementNotFound)
	gone, err := movs.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	it := seedItem(t, db, "BR001", 5)

	err := sqlite.NewTxRunner(db).Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		if err := movements.Create(ctx, &entity.Movement{
			ItemCode: "BR001", Quantity: 5, Type: entity.MovementTypeIn, Timestamp: time.Now(),
		}); err != nil {
			return err
		}
		if err := items.SetStock(ctx, it.ID, 10); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := sqlite.NewItemRepository(db).GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
	n, err := sqlite.NewMovementRepository(db).CountByItemCode(ctx, "BR001")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReportRepo(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	seedItem(t, db, "BR001", 2) // 2 * 1000
	seedItem(t, db, "BR002", 3) // 3 * 1000
	require.NoError(t, sqlite.NewItemRepository(db).Create(ctx, &entity.Item{
		Code: "SN001", Name: "Papas", Category: "Snacks", PurchasePrice: 500, SalePrice: 800, Stock: 10,
	}))
	require.NoError(t, sqlite.NewMovementRepository(db).Create(ctx, &entity.Movement{
		ItemCode: "SN001", Quantity: 10, Type: entity.MovementTypeIn, Timestamp: time.Now(), UnitPrice: 500,
	}))

	reports := sqlite.NewReportRepository(db)

	vals, err := reports.StockValuation(ctx)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, "Bebidas", vals[0].Category)
	assert.Equal(t, 2, vals[0].Items)
	assert.Equal(t, 5, vals[0].Units)
	assert.Equal(t, "5000", vals[0].Value.String())
	assert.Equal(t, "7500", vals[0].SaleValue.String())
	assert.Equal(t, "Snacks", vals[1].Category)
	assert.Equal(t, "5000", vals[1].Value.String())

	rows, err := reports.ListMovementsWithItem(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Papas", rows[0].ItemName)
	assert.Equal(t, "Snacks", rows[0].ItemCategory)
	assert.Equal(t, int64(800), rows[0].ItemSalePrice)
}
