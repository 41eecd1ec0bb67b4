package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(orderURL, invoiceURL, complaintURL, reviewURL string) config.WebhookConfig {
	return config.WebhookConfig{
		OrderURL:         orderURL,
		InvoiceURL:       invoiceURL,
		ComplaintURL:     complaintURL,
		ReviewURL:        reviewURL,
		Timeout:          5 * time.Second,
		MaxResponseBytes: 1 << 20,
	}
}

func TestForwarderNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards payload to the kind's destination", func(t *testing.T) {
		var received map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		f := NewForwarder(testConfig("", "", srv.URL, ""), zap.NewNop())
		report, err := f.Notify(ctx, shared.SubmissionKindComplaint, map[string]string{"subject": "Broken"})
		require.NoError(t, err)

		assert.True(t, report.Primary.Succeeded())
		assert.Equal(t, `{"ok":true}`, report.Primary.Body)
		assert.Nil(t, report.Secondary)
		assert.Equal(t, "Broken", received["subject"])
	})

	t.Run("orders fan out to the invoice destination", func(t *testing.T) {
		var orderHits, invoiceHits atomic.Int32
		orderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			orderHits.Add(1)
			w.Write([]byte("order ok"))
		}))
		defer orderSrv.Close()
		invoiceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			invoiceHits.Add(1)
			w.Write([]byte("invoice ok"))
		}))
		defer invoiceSrv.Close()

		f := NewForwarder(testConfig(orderSrv.URL, invoiceSrv.URL, "", ""), zap.NewNop())
		report, err := f.Notify(ctx, shared.SubmissionKindOrder, map[string]string{"order_code": "SA-20260901-1234"})
		require.NoError(t, err)

		assert.Equal(t, int32(1), orderHits.Load())
		assert.Equal(t, int32(1), invoiceHits.Load())
		assert.Equal(t, "order ok", report.Primary.Body)
		require.NotNil(t, report.Secondary)
		assert.Equal(t, "invoice ok", report.Secondary.Body)
	})

	t.Run("invoice fan-out still happens when the primary forward fails", func(t *testing.T) {
		orderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer orderSrv.Close()
		var invoiceHits atomic.Int32
		invoiceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			invoiceHits.Add(1)
			w.Write([]byte("invoice ok"))
		}))
		defer invoiceSrv.Close()

		f := NewForwarder(testConfig(orderSrv.URL, invoiceSrv.URL, "", ""), zap.NewNop())
		report, err := f.Notify(ctx, shared.SubmissionKindOrder, map[string]string{})
		require.NoError(t, err)

		assert.False(t, report.Primary.Succeeded())
		assert.Equal(t, http.StatusInternalServerError, report.Primary.StatusCode)
		assert.Equal(t, int32(1), invoiceHits.Load())
		require.NotNil(t, report.Secondary)
		assert.True(t, report.Secondary.Succeeded())
	})

	t.Run("unreachable destination is captured, not returned as error", func(t *testing.T) {
		f := NewForwarder(testConfig("", "", "", "http://127.0.0.1:1/unreachable"), zap.NewNop())
		report, err := f.Notify(ctx, shared.SubmissionKindReview, map[string]string{})
		require.NoError(t, err)
		assert.Error(t, report.Primary.Err)
		assert.False(t, report.Primary.Succeeded())
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		f := NewForwarder(testConfig("", "", "", ""), zap.NewNop())
		_, err := f.Notify(ctx, shared.SubmissionKind("payment"), map[string]string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid webhook type")
	})

	t.Run("unconfigured destination is an error", func(t *testing.T) {
		f := NewForwarder(testConfig("", "", "", ""), zap.NewNop())
		_, err := f.Notify(ctx, shared.SubmissionKindReview, map[string]string{})
		require.Error(t, err)
	})

	t.Run("response body is capped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(make([]byte, 4096))
		}))
		defer srv.Close()

		cfg := testConfig("", "", srv.URL, "")
		cfg.MaxResponseBytes = 1024
		f := NewForwarder(cfg, zap.NewNop())

		report, err := f.Notify(ctx, shared.SubmissionKindComplaint, map[string]string{})
		require.NoError(t, err)
		assert.Len(t, report.Primary.Body, 1024)
	})
}
