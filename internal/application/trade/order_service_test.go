package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domaincatalog "github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/domain/shared"
	domaintrade "github.com/smartauto/backend/internal/domain/trade"
	"github.com/smartauto/backend/internal/infrastructure/persistence"
	"github.com/smartauto/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// captureNotifier records notifications instead of forwarding them
type captureNotifier struct {
	kinds    []shared.SubmissionKind
	payloads []any
	err      error
	failHTTP bool
}

func (n *captureNotifier) Notify(_ context.Context, kind shared.SubmissionKind, payload any) (*shared.DeliveryReport, error) {
	if n.err != nil {
		return nil, n.err
	}
	n.kinds = append(n.kinds, kind)
	n.payloads = append(n.payloads, payload)
	report := &shared.DeliveryReport{Kind: kind}
	if n.failHTTP {
		report.Primary = shared.DeliveryOutcome{Destination: "http://test", StatusCode: 500}
	} else {
		report.Primary = shared.DeliveryOutcome{Destination: "http://test", StatusCode: 200}
	}
	return report, nil
}

func setupOrderService(t *testing.T, notifier shared.Notifier) (*OrderService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domaincatalog.Product{}, &models.OrderModel{}))

	svc := NewOrderService(
		persistence.NewGormOrderRepository(db),
		persistence.NewGormProductRepository(db),
		notifier,
		zap.NewNop(),
	)
	return svc, db
}

func seedTestProduct(t *testing.T, db *gorm.DB, code string, price string, stock int) *domaincatalog.Product {
	t.Helper()
	p, err := domaincatalog.NewProduct(code, "Product "+code, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	require.NoError(t, db.Create(p).Error)
	return p
}

func submitInput(productID uuid.UUID, quantity int) SubmitOrderInput {
	return SubmitOrderInput{
		ProductID:       productID,
		Quantity:        quantity,
		UserID:          uuid.New(),
		CustomerName:    "Alice",
		CustomerEmail:   "alice@example.com",
		ShippingAddress: "1 Main St",
	}
}

func TestOrderServiceSubmitOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the order, decrements stock, and notifies", func(t *testing.T) {
		notifier := &captureNotifier{}
		svc, db := setupOrderService(t, notifier)
		product := seedTestProduct(t, db, "SW-100", "19.99", 10)

		order, err := svc.SubmitOrder(ctx, submitInput(product.ID, 3))
		require.NoError(t, err)

		assert.True(t, domaintrade.IsOrderCode(order.OrderCode))
		assert.Equal(t, "59.97", order.TotalPrice.StringFixed(2))
		assert.Equal(t, "pending", order.Status)

		var stock int
		require.NoError(t, db.Model(&domaincatalog.Product{}).
			Where("id = ?", product.ID).Select("stock").Scan(&stock).Error)
		assert.Equal(t, 7, stock)

		require.Len(t, notifier.kinds, 1)
		assert.Equal(t, shared.SubmissionKindOrder, notifier.kinds[0])
		payload := notifier.payloads[0].(OrderPayload)
		assert.Equal(t, order.OrderCode, payload.OrderCode)
		assert.Equal(t, "59.97", payload.TotalPrice)
	})

	t.Run("insufficient stock aborts before any write", func(t *testing.T) {
		notifier := &captureNotifier{}
		svc, db := setupOrderService(t, notifier)
		product := seedTestProduct(t, db, "DL-200", "89.00", 2)

		_, err := svc.SubmitOrder(ctx, submitInput(product.ID, 5))
		require.ErrorIs(t, err, shared.ErrInsufficientStock)

		var count int64
		require.NoError(t, db.Model(&models.OrderModel{}).Count(&count).Error)
		assert.Zero(t, count)
		assert.Empty(t, notifier.kinds)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		svc, _ := setupOrderService(t, &captureNotifier{})
		_, err := svc.SubmitOrder(ctx, submitInput(uuid.New(), 1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Product not found")
	})

	t.Run("notify failure does not undo the order", func(t *testing.T) {
		notifier := &captureNotifier{err: errors.New("relay down")}
		svc, db := setupOrderService(t, notifier)
		product := seedTestProduct(t, db, "CAM-300", "129.00", 4)

		order, err := svc.SubmitOrder(ctx, submitInput(product.ID, 1))
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.OrderModel{}).
			Where("order_code = ?", order.OrderCode).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("downstream 500 does not undo the order", func(t *testing.T) {
		notifier := &captureNotifier{failHTTP: true}
		svc, db := setupOrderService(t, notifier)
		product := seedTestProduct(t, db, "TH-400", "45.50", 4)

		_, err := svc.SubmitOrder(ctx, submitInput(product.ID, 2))
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.OrderModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestOrderServiceListing(t *testing.T) {
	ctx := context.Background()
	svc, db := setupOrderService(t, &captureNotifier{})
	product := seedTestProduct(t, db, "SW-100", "19.99", 100)

	userID := uuid.New()
	mine := submitInput(product.ID, 1)
	mine.UserID = userID
	mine.CustomerName = "Dana"
	_, err := svc.SubmitOrder(ctx, mine)
	require.NoError(t, err)

	other := submitInput(product.ID, 2)
	other.CustomerName = "Evan"
	other.CustomerEmail = "evan@example.com"
	placed, err := svc.SubmitOrder(ctx, other)
	require.NoError(t, err)

	t.Run("ListUserOrders scopes to the caller", func(t *testing.T) {
		orders, err := svc.ListUserOrders(ctx, userID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "Dana", orders[0].CustomerName)
	})

	t.Run("ListOrders matches name case-insensitively", func(t *testing.T) {
		orders, err := svc.ListOrders(ctx, ListOrdersInput{Search: "eVaN"})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "Evan", orders[0].CustomerName)
	})

	t.Run("ListOrders rejects an unknown status", func(t *testing.T) {
		_, err := svc.ListOrders(ctx, ListOrdersInput{Status: "shipped"})
		require.Error(t, err)
	})

	t.Run("search and status compose with AND", func(t *testing.T) {
		transitioned, err := svc.TransitionOrder(ctx, placed.ID, "completed")
		require.NoError(t, err)
		assert.Equal(t, "completed", transitioned.Status)

		orders, err := svc.ListOrders(ctx, ListOrdersInput{Search: "evan", Status: "completed"})
		require.NoError(t, err)
		require.Len(t, orders, 1)

		orders, err = svc.ListOrders(ctx, ListOrdersInput{Search: "dana", Status: "completed"})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestOrderServiceTransition(t *testing.T) {
	ctx := context.Background()
	svc, db := setupOrderService(t, &captureNotifier{})
	product := seedTestProduct(t, db, "SW-100", "19.99", 10)

	placed, err := svc.SubmitOrder(ctx, submitInput(product.ID, 1))
	require.NoError(t, err)

	t.Run("pending to cancelled is allowed", func(t *testing.T) {
		order, err := svc.TransitionOrder(ctx, placed.ID, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", order.Status)
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		_, err := svc.TransitionOrder(ctx, placed.ID, "completed")
		require.Error(t, err)
	})

	t.Run("unknown order ID fails", func(t *testing.T) {
		_, err := svc.TransitionOrder(ctx, uuid.New(), "completed")
		require.Error(t, err)
	})
}
