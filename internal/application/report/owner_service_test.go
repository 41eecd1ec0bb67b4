package report

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domaincatalog "github.com/smartauto/backend/internal/domain/catalog"
	domainfeedback "github.com/smartauto/backend/internal/domain/feedback"
	domaintrade "github.com/smartauto/backend/internal/domain/trade"
	"github.com/smartauto/backend/internal/infrastructure/persistence"
	"github.com/smartauto/backend/internal/infrastructure/persistence/models"
	"github.com/smartauto/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOwnerService(t *testing.T) (*OwnerService, *gorm.DB, *storage.InMemoryBackupStore) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domaincatalog.Product{}, &models.OrderModel{},
		&models.ComplaintModel{}, &models.ReviewModel{}))

	backups := storage.NewInMemoryBackupStore()
	svc := NewOwnerService(
		persistence.NewGormOrderRepository(db),
		persistence.NewGormComplaintRepository(db),
		persistence.NewGormReviewRepository(db),
		persistence.NewGormProductRepository(db),
		backups,
		zap.NewNop(),
	)
	return svc, db, backups
}

func seedData(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	product, err := domaincatalog.NewProduct("SW-100", "Smart Switch", decimal.RequireFromString("20.00"), 5)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	orderRepo := persistence.NewGormOrderRepository(db)
	order1, err := domaintrade.NewOrder(domaintrade.GenerateOrderCode(), product.ID, product.Name,
		2, product.Price, uuid.New(), `Alice "Ace"`, "alice@example.com", "1 Main St", "")
	require.NoError(t, err)
	require.NoError(t, orderRepo.CreateWithStockDecrement(ctx, order1))

	order2, err := domaintrade.NewOrder(domaintrade.GenerateOrderCode(), product.ID, product.Name,
		1, product.Price, uuid.New(), "Bob", "bob@example.com", "2 Side St", "ring twice")
	require.NoError(t, err)
	require.NoError(t, orderRepo.CreateWithStockDecrement(ctx, order2))
	require.NoError(t, order2.TransitionTo(domaintrade.OrderStatusCancelled))
	require.NoError(t, orderRepo.Save(ctx, order2))

	complaintRepo := persistence.NewGormComplaintRepository(db)
	complaint, err := domainfeedback.NewComplaint(uuid.New(), "Carol", "carol@example.com",
		"", "Late delivery", "A week late")
	require.NoError(t, err)
	require.NoError(t, complaintRepo.Create(ctx, complaint))

	reviewRepo := persistence.NewGormReviewRepository(db)
	review, err := domainfeedback.NewReview(uuid.New(), product.ID, product.Name,
		"Alice", "alice@example.com", 4, "", "Works well")
	require.NoError(t, err)
	require.NoError(t, reviewRepo.Create(ctx, review))
}

func TestOwnerServiceData(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := setupOwnerService(t)
	seedData(t, db)

	t.Run("orders data set", func(t *testing.T) {
		data, err := svc.Data(ctx, "orders")
		require.NoError(t, err)
		orders := data.([]OrderRecord)
		assert.Len(t, orders, 2)
	})

	t.Run("complaints data set", func(t *testing.T) {
		data, err := svc.Data(ctx, "complaints")
		require.NoError(t, err)
		assert.Len(t, data.([]ComplaintRecord), 1)
	})

	t.Run("reviews data set", func(t *testing.T) {
		data, err := svc.Data(ctx, "reviews")
		require.NoError(t, err)
		assert.Len(t, data.([]ReviewRecord), 1)
	})

	t.Run("unknown data type is rejected", func(t *testing.T) {
		_, err := svc.Data(ctx, "users")
		require.Error(t, err)
	})
}

func TestOwnerServiceDashboard(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := setupOwnerService(t)
	seedData(t, db)

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalOrders)
	// Revenue includes the cancelled order
	assert.Equal(t, "60.00", dashboard.TotalRevenue.StringFixed(2))
	assert.Equal(t, 1, dashboard.PendingOrders)
	assert.Equal(t, 1, dashboard.OpenComplaints)
	assert.Equal(t, 1, dashboard.TotalReviews)
	assert.Equal(t, "4", dashboard.AverageRating.String())

	// Stock dropped from 5 to 2, below the threshold of 10
	require.Len(t, dashboard.LowStock, 1)
	assert.Equal(t, 2, dashboard.LowStock[0].Stock)

	// alice, bob, carol
	require.Len(t, dashboard.Customers, 3)
	assert.Equal(t, "alice@example.com", dashboard.Customers[0].Email)
	assert.Equal(t, "40.00", dashboard.Customers[0].TotalSpent.StringFixed(2))

	var carol CustomerSummary
	for _, c := range dashboard.Customers {
		if c.Email == "carol@example.com" {
			carol = c
		}
	}
	assert.Equal(t, 0, carol.OrderCount)
	assert.Equal(t, 1, carol.Complaints)
}

func TestOwnerServiceExports(t *testing.T) {
	ctx := context.Background()

	t.Run("orders CSV quotes every field and doubles embedded quotes", func(t *testing.T) {
		svc, db, _ := setupOwnerService(t)
		seedData(t, db)

		data, err := svc.ExportOrdersCSV(ctx)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		require.Len(t, lines, 3)

		assert.Equal(t,
			`"order_code","product_name","quantity","unit_price","total_price","customer_name","customer_email","shipping_address","special_instructions","status","created_at"`,
			lines[0])
		assert.Contains(t, string(data), `"Alice ""Ace"""`)
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, `"`))
			assert.True(t, strings.HasSuffix(line, `"`))
		}
	})

	t.Run("customers CSV aggregates per email", func(t *testing.T) {
		svc, db, _ := setupOwnerService(t)
		seedData(t, db)

		data, err := svc.ExportCustomersCSV(ctx)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		// header + alice + bob + carol
		require.Len(t, lines, 4)
		assert.Contains(t, lines[1], `"alice@example.com"`)
	})

	t.Run("empty data set yields no CSV document", func(t *testing.T) {
		svc, _, _ := setupOwnerService(t)

		data, err := svc.ExportOrdersCSV(ctx)
		require.NoError(t, err)
		assert.Nil(t, data)

		data, err = svc.ExportComplaintsCSV(ctx)
		require.NoError(t, err)
		assert.Nil(t, data)

		data, err = svc.ExportCustomersCSV(ctx)
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("backup JSON wraps the data set in a single-element array", func(t *testing.T) {
		svc, db, _ := setupOwnerService(t)
		seedData(t, db)

		data, err := svc.ExportBackupJSON(ctx)
		require.NoError(t, err)

		var doc []map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &doc))
		require.Len(t, doc, 1)
		for _, key := range []string{"orders", "complaints", "reviews", "products"} {
			assert.Contains(t, doc[0], key)
		}
	})
}

func TestOwnerServiceBackup(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads the backup document", func(t *testing.T) {
		svc, db, backups := setupOwnerService(t)
		seedData(t, db)

		key, err := svc.Backup(ctx)
		require.NoError(t, err)

		stored, ok := backups.Get(key)
		require.True(t, ok)
		assert.True(t, json.Valid(stored))
	})

	t.Run("refuses to back up an empty data set", func(t *testing.T) {
		svc, _, _ := setupOwnerService(t)
		_, err := svc.Backup(ctx)
		require.Error(t, err)
	})
}
