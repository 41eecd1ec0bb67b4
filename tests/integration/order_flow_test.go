package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/google/uuid"
	tradeapp "github.com/smartauto/backend/internal/application/trade"
	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/domain/trade"
	"github.com/smartauto/backend/internal/infrastructure/config"
	"github.com/smartauto/backend/internal/infrastructure/persistence"
	"github.com/smartauto/backend/internal/infrastructure/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var orderCodePattern = regexp.MustCompile(`^SA-\d{8}-\d{4}$`)

// orderFlowSetup wires the real repositories and a recording downstream
// webhook server against a containerized database.
type orderFlowSetup struct {
	DB           *TestDB
	OrderService *tradeapp.OrderService
	OrderRepo    *persistence.GormOrderRepository
	Downstream   *httptest.Server

	mu       sync.Mutex
	received []string
}

func newOrderFlowSetup(t *testing.T) *orderFlowSetup {
	t.Helper()

	testDB := NewTestDB(t)

	setup := &orderFlowSetup{DB: testDB}

	setup.Downstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setup.mu.Lock()
		setup.received = append(setup.received, r.URL.Path)
		setup.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(setup.Downstream.Close)

	webhookCfg := config.WebhookConfig{
		OrderURL:         setup.Downstream.URL + "/order",
		InvoiceURL:       setup.Downstream.URL + "/invoice",
		ComplaintURL:     setup.Downstream.URL + "/complaint",
		ReviewURL:        setup.Downstream.URL + "/review",
		MaxResponseBytes: 1 << 20,
	}

	log := zap.NewNop()
	forwarder := webhook.NewForwarder(webhookCfg, log)

	setup.OrderRepo = persistence.NewGormOrderRepository(testDB.DB)
	productRepo := persistence.NewGormProductRepository(testDB.DB)
	setup.OrderService = tradeapp.NewOrderService(setup.OrderRepo, productRepo, forwarder, log)

	return setup
}

func (s *orderFlowSetup) receivedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.received...)
}

func TestOrderSubmissionDecrementsStock(t *testing.T) {
	setup := newOrderFlowSetup(t)
	ctx := context.Background()

	userID := setup.DB.CreateTestUser("buyer@example.com")
	product := setup.DB.CreateTestProduct("ITF-001", 49.99, 5)

	order, err := setup.OrderService.SubmitOrder(ctx, tradeapp.SubmitOrderInput{
		ProductID:       product.ID,
		Quantity:        2,
		UserID:          userID,
		CustomerName:    "Buyer",
		CustomerEmail:   "buyer@example.com",
		ShippingAddress: "1 Test Street",
	})
	require.NoError(t, err)

	assert.Regexp(t, orderCodePattern, order.OrderCode)
	assert.Equal(t, "99.98", order.TotalPrice.StringFixed(2))
	assert.Equal(t, 3, setup.DB.ProductStock(product.ID))

	// Orders fan out to both the order and invoice destinations
	paths := setup.receivedPaths()
	assert.Contains(t, paths, "/order")
	assert.Contains(t, paths, "/invoice")

	// The order destination receives the persisted record
	stored, err := setup.OrderRepo.FindByOrderCode(ctx, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
	assert.Equal(t, trade.OrderStatusPending, stored.Status)
}

func TestOrderSubmissionInsufficientStock(t *testing.T) {
	setup := newOrderFlowSetup(t)
	ctx := context.Background()

	userID := setup.DB.CreateTestUser("buyer@example.com")
	product := setup.DB.CreateTestProduct("ITF-002", 10.00, 1)

	_, err := setup.OrderService.SubmitOrder(ctx, tradeapp.SubmitOrderInput{
		ProductID:       product.ID,
		Quantity:        3,
		UserID:          userID,
		CustomerName:    "Buyer",
		CustomerEmail:   "buyer@example.com",
		ShippingAddress: "1 Test Street",
	})
	require.ErrorIs(t, err, shared.ErrInsufficientStock)

	// Nothing was persisted and nothing was forwarded
	orders, err := setup.OrderRepo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, setup.receivedPaths())
	assert.Equal(t, 1, setup.DB.ProductStock(product.ID))
}

// TestConcurrentOrdersLastUnit exercises the conditional decrement under
// contention: two orders race for a single remaining unit and exactly one
// wins.
func TestConcurrentOrdersLastUnit(t *testing.T) {
	setup := newOrderFlowSetup(t)
	ctx := context.Background()

	userID := setup.DB.CreateTestUser("buyer@example.com")
	product := setup.DB.CreateTestProduct("ITF-003", 25.00, 1)

	submit := func() error {
		order, err := trade.NewOrder(
			trade.GenerateOrderCode(),
			product.ID,
			product.Name,
			1,
			product.Price,
			userID,
			"Buyer",
			"buyer@example.com",
			"1 Test Street",
			"",
		)
		if err != nil {
			return err
		}
		return setup.OrderRepo.CreateWithStockDecrement(ctx, order)
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- submit()
		}()
	}
	wg.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}
	require.Len(t, failures, 1, "exactly one of two racing orders must fail")
	assert.ErrorIs(t, failures[0], shared.ErrInsufficientStock)
	assert.Equal(t, 0, setup.DB.ProductStock(product.ID))

	orders, err := setup.OrderRepo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestDuplicateOrderCodeRejected(t *testing.T) {
	setup := newOrderFlowSetup(t)
	ctx := context.Background()

	userID := setup.DB.CreateTestUser("buyer@example.com")
	product := setup.DB.CreateTestProduct("ITF-004", 15.00, 10)

	code := trade.GenerateOrderCode()
	makeOrder := func() *trade.Order {
		order, err := trade.NewOrder(
			code, product.ID, product.Name, 1, product.Price,
			userID, "Buyer", "buyer@example.com", "1 Test Street", "",
		)
		require.NoError(t, err)
		return order
	}

	require.NoError(t, setup.OrderRepo.CreateWithStockDecrement(ctx, makeOrder()))

	err := setup.OrderRepo.CreateWithStockDecrement(ctx, makeOrder())
	require.ErrorIs(t, err, shared.ErrDuplicateCode)

	// The losing insert must not leak its stock decrement
	assert.Equal(t, 9, setup.DB.ProductStock(product.ID))
}

func TestOrderSearchAndStatusFilter(t *testing.T) {
	setup := newOrderFlowSetup(t)
	ctx := context.Background()

	userID := setup.DB.CreateTestUser("alice@example.com")
	otherID := setup.DB.CreateTestUser("bob@example.com")
	product := setup.DB.CreateTestProduct("ITF-005", 20.00, 50)

	submit := func(uid uuid.UUID, name, email string) *tradeapp.Order {
		order, err := setup.OrderService.SubmitOrder(ctx, tradeapp.SubmitOrderInput{
			ProductID:       product.ID,
			Quantity:        1,
			UserID:          uid,
			CustomerName:    name,
			CustomerEmail:   email,
			ShippingAddress: "1 Test Street",
		})
		require.NoError(t, err)
		return order
	}

	aliceOrder := submit(userID, "Alice", "alice@example.com")
	submit(otherID, "Bob", "bob@example.com")

	// Case-insensitive email search
	found, err := setup.OrderRepo.FindAll(ctx, shared.Filter{Search: "ALICE@"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, aliceOrder.OrderCode, found[0].OrderCode)

	// Status filter composes with search
	found, err = setup.OrderRepo.FindAll(ctx, shared.Filter{
		Search:  "alice",
		Filters: map[string]interface{}{"status": "completed"},
	})
	require.NoError(t, err)
	assert.Empty(t, found)

	// Scoped read returns only the caller's orders
	mine, err := setup.OrderRepo.FindByUser(ctx, userID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "alice@example.com", mine[0].CustomerEmail)
}

// TestSeededCatalog verifies the seed migration leaves a usable catalog
func TestSeededCatalog(t *testing.T) {
	setup := newOrderFlowSetup(t)

	var count int64
	require.NoError(t, setup.DB.DB.Table("products").Count(&count).Error)
	assert.GreaterOrEqual(t, count, int64(8))

	var row struct {
		Code  string
		Stock int
	}
	require.NoError(t, setup.DB.DB.Table("products").
		Where("code = ?", "SA-JMP-007").
		Select("code, stock").
		Scan(&row).Error)
	assert.Equal(t, 8, row.Stock, "seeded jump starter sits below the low stock threshold")
}
