package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	return db
}

func TestFindOrCreateByUserIsIdempotent(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	first, err := repo.FindOrCreateByUser(ctx, userID)
	require.NoError(t, err)

	second, err := repo.FindOrCreateByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Table("carts").Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertItemIncrementMergesQuantities(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart, err := repo.FindOrCreateByUser(ctx, uuid.New())
	require.NoError(t, err)
	productID := uuid.New()

	require.NoError(t, repo.UpsertItemIncrement(ctx, cart.ID, productID, 2))
	require.NoError(t, repo.UpsertItemIncrement(ctx, cart.ID, productID, 3))

	items, err := repo.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	// a different product gets its own line
	require.NoError(t, repo.UpsertItemIncrement(ctx, cart.ID, uuid.New(), 1))
	items, err = repo.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSetItemQuantityReportsMissingLine(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart, err := repo.FindOrCreateByUser(ctx, uuid.New())
	require.NoError(t, err)
	productID := uuid.New()
	require.NoError(t, repo.UpsertItemIncrement(ctx, cart.ID, productID, 2))

	affected, err := repo.SetItemQuantity(ctx, cart.ID, productID, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	items, err := repo.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)

	affected, err = repo.SetItemQuantity(ctx, cart.ID, uuid.New(), 3)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}

func TestDeleteItemAndClearItems(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart, err := repo.FindOrCreateByUser(ctx, uuid.New())
	require.NoError(t, err)
	productA := uuid.New()
	productB := uuid.New()
	require.NoError(t, repo.UpsertItemIncrement(ctx, cart.ID, productA, 1))
	require.NoError(t, repo.UpsertItemIncrement(ctx, cart.ID, productB, 4))

	affected, err := repo.DeleteItem(ctx, cart.ID, productA)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = repo.DeleteItem(ctx, cart.ID, productA)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	cleared, err := repo.ClearItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)

	cleared, err = repo.ClearItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, cleared)
}
