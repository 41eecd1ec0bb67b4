package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	appcatalog "github.com/smartauto/backend/internal/application/catalog"
	appfeedback "github.com/smartauto/backend/internal/application/feedback"
	appidentity "github.com/smartauto/backend/internal/application/identity"
	apprelay "github.com/smartauto/backend/internal/application/relay"
	appreport "github.com/smartauto/backend/internal/application/report"
	apptrade "github.com/smartauto/backend/internal/application/trade"
	domaincatalog "github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/infrastructure/auth"
	"github.com/smartauto/backend/internal/infrastructure/config"
	"github.com/smartauto/backend/internal/infrastructure/persistence"
	"github.com/smartauto/backend/internal/infrastructure/persistence/models"
	"github.com/smartauto/backend/internal/infrastructure/storage"
	"github.com/smartauto/backend/internal/infrastructure/webhook"
	"github.com/smartauto/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const relayKey = "test-relay-key"

type testEnv struct {
	engine     *gin.Engine
	db         *gorm.DB
	downstream *httptest.Server

	mu       sync.Mutex
	received []string
}

func (e *testEnv) receivedPaths() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.received...)
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domaincatalog.Product{}, &models.OrderModel{}, &models.ComplaintModel{},
		&models.ReviewModel{}, &models.UserModel{}))

	env := &testEnv{db: db}
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.received = append(env.received, r.URL.Path)
		env.mu.Unlock()
		// The complaint destination answers in plain text; the others in
		// JSON. Downstream automation is not obliged to speak JSON back.
		if r.URL.Path == "/complaint" {
			w.Header().Set("Content-Type", "text/plain")
			fmt.Fprint(w, "Accepted")
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	t.Cleanup(downstream.Close)
	env.downstream = downstream

	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "smartauto-test",
		MaxRefreshCount:        10,
	}
	jwtService := auth.NewJWTService(jwtCfg)
	blacklist := auth.NewInMemoryTokenBlacklist()

	forwarder := webhook.NewForwarder(config.WebhookConfig{
		OrderURL:         downstream.URL + "/order",
		InvoiceURL:       downstream.URL + "/invoice",
		ComplaintURL:     downstream.URL + "/complaint",
		ReviewURL:        downstream.URL + "/review",
		Timeout:          5 * time.Second,
		MaxResponseBytes: 1 << 20,
	}, zap.NewNop())

	userRepo := persistence.NewGormUserRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	complaintRepo := persistence.NewGormComplaintRepository(db)
	reviewRepo := persistence.NewGormReviewRepository(db)
	backups := storage.NewInMemoryBackupStore()

	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, zap.NewNop())
	productService := appcatalog.NewProductService(productRepo, zap.NewNop())
	orderService := apptrade.NewOrderService(orderRepo, productRepo, forwarder, zap.NewNop())
	complaintService := appfeedback.NewComplaintService(complaintRepo, forwarder, zap.NewNop())
	reviewService := appfeedback.NewReviewService(reviewRepo, productRepo, forwarder, zap.NewNop())
	relayService := apprelay.NewRelayService(forwarder, zap.NewNop())
	ownerService := appreport.NewOwnerService(orderRepo, complaintRepo, reviewRepo, productRepo, backups, zap.NewNop())

	env.engine = Setup(Config{
		HTTPConfig: config.HTTPConfig{
			MaxBodySize:      1 << 20,
			CORSAllowOrigins: []string{"*"},
			CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			CORSAllowHeaders: []string{"Content-Type", "Authorization"},
		},
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		ServiceName:    "smartauto-test",
		Logger:         zap.NewNop(),

		SystemHandler:    handler.NewSystemHandler(db),
		AuthHandler:      handler.NewAuthHandler(authService),
		ProductHandler:   handler.NewProductHandler(productService),
		OrderHandler:     handler.NewOrderHandler(orderService),
		ComplaintHandler: handler.NewComplaintHandler(complaintService),
		ReviewHandler:    handler.NewReviewHandler(reviewService),
		RelayHandler:     handler.NewRelayHandler(relayService, jwtService, relayKey, zap.NewNop()),
		OwnerHandler:     handler.NewOwnerHandler(ownerService, orderService, complaintService),
	})

	return env
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	w := e.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":        email,
		"password":     "password123",
		"display_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func (e *testEnv) ownerToken(t *testing.T) string {
	t.Helper()
	ctx := t.Context()
	authService := appidentity.NewAuthService(
		persistence.NewGormUserRepository(e.db),
		auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-at-least-32-characters!!",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "smartauto-test",
			MaxRefreshCount:        10,
		}),
		auth.NewInMemoryTokenBlacklist(),
		zap.NewNop(),
	)
	require.NoError(t, authService.EnsureOwner(ctx, "owner@example.com", "ownerpass123", "Owner"))

	w := e.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "owner@example.com",
		"password": "ownerpass123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.AccessToken
}

func (e *testEnv) seedProduct(t *testing.T, code string, stock int) *domaincatalog.Product {
	t.Helper()
	product, err := domaincatalog.NewProduct(code, "Smart Plug "+code, decimal.RequireFromString("19.99"), stock)
	require.NoError(t, err)
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func TestHealthEndpoint(t *testing.T) {
	env := setupEnv(t)

	w := env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAuthFlow(t *testing.T) {
	env := setupEnv(t)

	token := env.registerUser(t, "flow@example.com")

	t.Run("me returns the profile", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "flow@example.com")
		assert.Contains(t, w.Body.String(), `"role":"customer"`)
	})

	t.Run("me without token is rejected", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"email":        "flow@example.com",
			"password":     "password123",
			"display_name": "Dup",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "EMAIL_TAKEN")
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})
}

func TestOrderSubmission(t *testing.T) {
	env := setupEnv(t)
	product := env.seedProduct(t, "PL-100", 5)
	token := env.registerUser(t, "buyer@example.com")

	orderBody := gin.H{
		"product_id":       product.ID.String(),
		"quantity":         2,
		"customer_name":    "Buyer",
		"customer_email":   "buyer@example.com",
		"shipping_address": "1 Main St",
	}

	t.Run("requires authentication", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/shop/orders", "", orderBody)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("submits and decrements stock", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/shop/orders", token, orderBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Data struct {
				OrderCode  string `json:"order_code"`
				TotalPrice string `json:"total_price"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Regexp(t, regexp.MustCompile(`^SA-\d{8}-\d{4}$`), resp.Data.OrderCode)

		var stock int
		require.NoError(t, env.db.Model(&domaincatalog.Product{}).
			Where("id = ?", product.ID).Select("stock").Scan(&stock).Error)
		assert.Equal(t, 3, stock)

		// Order forwards fan out to both the order and invoice endpoints
		paths := env.receivedPaths()
		assert.Contains(t, paths, "/order")
		assert.Contains(t, paths, "/invoice")
	})

	t.Run("rejects when stock runs out", func(t *testing.T) {
		over := gin.H{
			"product_id":       product.ID.String(),
			"quantity":         100,
			"customer_name":    "Buyer",
			"customer_email":   "buyer@example.com",
			"shipping_address": "1 Main St",
		}
		w := env.do(http.MethodPost, "/api/v1/shop/orders", token, over)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "INSUFFICIENT_STOCK")
	})

	t.Run("lists own orders only", func(t *testing.T) {
		other := env.registerUser(t, "other@example.com")
		w := env.do(http.MethodGet, "/api/v1/shop/orders", other, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})
}

func TestRelayEndpoint(t *testing.T) {
	env := setupEnv(t)
	token := env.registerUser(t, "relay@example.com")

	t.Run("preflight answers with empty success", func(t *testing.T) {
		w := env.do(http.MethodOptions, "/api/v1/relay", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("rejects missing auth with legacy envelope", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/relay", "", gin.H{"type": "order"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/relay", token, gin.H{
			"type":    "shipment",
			"payload": gin.H{"order_code": "SA-20260901-1234"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid webhook type"}`, w.Body.String())
	})

	t.Run("forwards a valid payload and returns the raw body as a string", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/relay", token, gin.H{
			"type": "invoice",
			"payload": gin.H{
				"order_code": "SA-20260901-1234",
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"success":true,"result":"{\"ok\":true}"}`, w.Body.String())
	})

	t.Run("returns a plain text downstream body verbatim", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/relay", token, gin.H{
			"type": "complaint",
			"payload": gin.H{
				"customer_email": "customer@example.com",
				"subject":        "Damaged on arrival",
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"success":true,"result":"Accepted"}`, w.Body.String())
	})

	t.Run("accepts the static relay key", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/relay", relayKey, gin.H{
			"type":    "invoice",
			"payload": gin.H{"order_code": "SA-20260901-5678"},
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func TestOwnerRoutes(t *testing.T) {
	env := setupEnv(t)
	product := env.seedProduct(t, "PL-200", 8)
	customerToken := env.registerUser(t, "customer@example.com")
	ownerToken := env.ownerToken(t)

	w := env.do(http.MethodPost, "/api/v1/shop/orders", customerToken, gin.H{
		"product_id":       product.ID.String(),
		"quantity":         1,
		"customer_name":    "Customer",
		"customer_email":   "customer@example.com",
		"shipping_address": "2 Side St",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("customer role is forbidden", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/owner/dashboard", customerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("data returns the bare record array", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/owner/data?type=orders", ownerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var records []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "customer@example.com", records[0]["customer_email"])
	})

	t.Run("unknown data type is a client error", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/owner/data?type=users", ownerToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("dashboard aggregates", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/owner/dashboard", ownerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_orders":1`)
	})

	t.Run("orders filter by search", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/owner/orders?search=CUSTOMER", ownerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "customer@example.com")

		w = env.do(http.MethodGet, "/api/v1/owner/orders?search=nobody", ownerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})

	t.Run("invalid status filter is rejected", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/owner/orders?status=shipped", ownerToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("csv export downloads orders", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/owner/export/orders.csv", ownerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "orders.csv")
		assert.Contains(t, w.Body.String(), `"order_code"`)
	})

	t.Run("empty export yields no content", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/owner/export/complaints.csv", ownerToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("backup uploads to the object store", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/owner/backup", ownerToken, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"key"`)
	})

	t.Run("order status transition", func(t *testing.T) {
		var record models.OrderModel
		require.NoError(t, env.db.First(&record).Error)

		w := env.do(http.MethodPut, "/api/v1/owner/orders/"+record.ID.String()+"/status",
			ownerToken, gin.H{"status": "completed"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"status":"completed"`)

		// Terminal state rejects further transitions
		w = env.do(http.MethodPut, "/api/v1/owner/orders/"+record.ID.String()+"/status",
			ownerToken, gin.H{"status": "pending"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
