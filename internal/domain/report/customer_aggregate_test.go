package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrder(t *testing.T, email string, quantity int, unit float64) trade.Order {
	t.Helper()
	o, err := trade.NewOrder(trade.GenerateOrderCode(), uuid.New(), "Smart Switch Pro",
		quantity, decimal.NewFromFloat(unit), uuid.New(), "Alice", email, "1 Main Street", "")
	require.NoError(t, err)
	return *o
}

func makeComplaint(t *testing.T, email string) feedback.Complaint {
	t.Helper()
	c, err := feedback.NewComplaint(uuid.New(), "Bob", email, "", "Broken", "It broke")
	require.NoError(t, err)
	return *c
}

func makeReview(t *testing.T, email string, rating int) feedback.Review {
	t.Helper()
	r, err := feedback.NewReview(uuid.New(), uuid.New(), "Smart Switch Pro",
		"Carol", email, rating, "", "ok")
	require.NoError(t, err)
	return *r
}

func TestBuildCustomerAggregates(t *testing.T) {
	t.Run("rolls up orders complaints and reviews per email", func(t *testing.T) {
		orders := []trade.Order{
			makeOrder(t, "alice@example.com", 2, 10.00),
			makeOrder(t, "alice@example.com", 1, 5.50),
			makeOrder(t, "bob@example.com", 1, 3.00),
		}
		complaints := []feedback.Complaint{makeComplaint(t, "alice@example.com")}
		reviews := []feedback.Review{
			makeReview(t, "alice@example.com", 4),
			makeReview(t, "bob@example.com", 5),
		}

		aggs := BuildCustomerAggregates(orders, complaints, reviews)
		require.Len(t, aggs, 2)

		// Sorted by spend descending
		alice := aggs[0]
		assert.Equal(t, "alice@example.com", alice.Email)
		assert.Equal(t, 2, alice.OrderCount)
		assert.True(t, alice.TotalSpent.Equal(decimal.NewFromFloat(25.50)),
			"expected 25.50, got %s", alice.TotalSpent)
		assert.Equal(t, 1, alice.Complaints)
		assert.Equal(t, 1, alice.Reviews)

		bob := aggs[1]
		assert.Equal(t, 1, bob.OrderCount)
		assert.Equal(t, 0, bob.Complaints)
	})

	t.Run("matches emails case-insensitively", func(t *testing.T) {
		orders := []trade.Order{makeOrder(t, "Alice@Example.com", 1, 10.00)}
		reviews := []feedback.Review{makeReview(t, "ALICE@example.com", 5)}

		aggs := BuildCustomerAggregates(orders, nil, reviews)
		require.Len(t, aggs, 1)
		assert.Equal(t, "alice@example.com", aggs[0].Email)
		assert.Equal(t, 1, aggs[0].OrderCount)
		assert.Equal(t, 1, aggs[0].Reviews)
	})

	t.Run("complaint-only customer gets zero-spend entry", func(t *testing.T) {
		complaints := []feedback.Complaint{makeComplaint(t, "noorders@example.com")}

		aggs := BuildCustomerAggregates(nil, complaints, nil)
		require.Len(t, aggs, 1)
		assert.Equal(t, 0, aggs[0].OrderCount)
		assert.True(t, aggs[0].TotalSpent.IsZero())
		assert.Equal(t, 1, aggs[0].Complaints)
	})

	t.Run("empty inputs produce empty slice", func(t *testing.T) {
		aggs := BuildCustomerAggregates(nil, nil, nil)
		assert.Empty(t, aggs)
	})
}
