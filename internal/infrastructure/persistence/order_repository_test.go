package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/domain/trade"
	"github.com/smartauto/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &models.OrderModel{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("SSW-100", "Smart Switch Pro", decimal.NewFromFloat(9.99), stock)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

func newTestOrder(t *testing.T, productID, userID uuid.UUID, quantity int) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(
		trade.GenerateOrderCode(), productID, "Smart Switch Pro", quantity,
		decimal.NewFromFloat(9.99), userID,
		"Alice", "alice@example.com", "1 Main Street", "",
	)
	require.NoError(t, err)
	return order
}

func TestOrderRepository_CreateWithStockDecrement(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order and decrements stock", func(t *testing.T) {
		db := setupOrderTestDB(t)
		repo := NewGormOrderRepository(db)
		product := seedProduct(t, db, 5)

		order := newTestOrder(t, product.ID, uuid.New(), 2)
		require.NoError(t, repo.CreateWithStockDecrement(ctx, order))

		var updated catalog.Product
		require.NoError(t, db.First(&updated, "id = ?", product.ID).Error)
		assert.Equal(t, 3, updated.Stock)

		found, err := repo.FindByOrderCode(ctx, order.OrderCode)
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
		assert.Equal(t, trade.OrderStatusPending, found.Status)
	})

	t.Run("rejects order exceeding stock and leaves stock untouched", func(t *testing.T) {
		db := setupOrderTestDB(t)
		repo := NewGormOrderRepository(db)
		product := seedProduct(t, db, 1)

		order := newTestOrder(t, product.ID, uuid.New(), 2)
		err := repo.CreateWithStockDecrement(ctx, order)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		var after catalog.Product
		require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
		assert.Equal(t, 1, after.Stock)

		_, err = repo.FindByOrderCode(ctx, order.OrderCode)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("allows taking the last unit exactly", func(t *testing.T) {
		db := setupOrderTestDB(t)
		repo := NewGormOrderRepository(db)
		product := seedProduct(t, db, 2)

		order := newTestOrder(t, product.ID, uuid.New(), 2)
		require.NoError(t, repo.CreateWithStockDecrement(ctx, order))

		var after catalog.Product
		require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
		assert.Equal(t, 0, after.Stock)
	})

	t.Run("unknown product yields not found", func(t *testing.T) {
		db := setupOrderTestDB(t)
		repo := NewGormOrderRepository(db)

		order := newTestOrder(t, uuid.New(), uuid.New(), 1)
		err := repo.CreateWithStockDecrement(ctx, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate order code rolls back the stock decrement", func(t *testing.T) {
		db := setupOrderTestDB(t)
		repo := NewGormOrderRepository(db)
		product := seedProduct(t, db, 10)

		first := newTestOrder(t, product.ID, uuid.New(), 1)
		require.NoError(t, repo.CreateWithStockDecrement(ctx, first))

		second := newTestOrder(t, product.ID, uuid.New(), 1)
		second.OrderCode = first.OrderCode
		err := repo.CreateWithStockDecrement(ctx, second)
		assert.ErrorIs(t, err, shared.ErrDuplicateCode)

		var after catalog.Product
		require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
		assert.Equal(t, 9, after.Stock, "failed insert must not consume stock")
	})
}

func TestOrderRepository_Queries(t *testing.T) {
	ctx := context.Background()
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	product := seedProduct(t, db, 100)

	alice := uuid.New()
	bob := uuid.New()

	aliceOrder := newTestOrder(t, product.ID, alice, 1)
	require.NoError(t, repo.CreateWithStockDecrement(ctx, aliceOrder))

	bobOrder, err := trade.NewOrder(
		trade.GenerateOrderCode(), product.ID, "Smart Switch Pro", 3,
		decimal.NewFromFloat(9.99), bob,
		"Bob", "bob@example.com", "2 Side Street", "",
	)
	require.NoError(t, err)
	require.NoError(t, repo.CreateWithStockDecrement(ctx, bobOrder))
	require.NoError(t, bobOrder.TransitionTo(trade.OrderStatusCompleted))
	require.NoError(t, repo.Save(ctx, bobOrder))

	t.Run("FindByUser returns only that user's orders", func(t *testing.T) {
		orders, err := repo.FindByUser(ctx, alice, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, aliceOrder.OrderCode, orders[0].OrderCode)
	})

	t.Run("FindAll returns every order", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("search matches order code literally", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = aliceOrder.OrderCode
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, aliceOrder.OrderCode, orders[0].OrderCode)
	})

	t.Run("search matches customer email case-insensitively", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "BOB@"
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "bob@example.com", orders[0].CustomerEmail)
	})

	t.Run("search matches product name case-insensitively", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "smart switch"
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("status filter narrows results", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = "completed"
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, trade.OrderStatusCompleted, orders[0].Status)
	})

	t.Run("search and status combine with AND", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "bob"
		filter.Filters["status"] = "pending"
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}
