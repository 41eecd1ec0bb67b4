package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderCode finds an order by its generated code
	FindByOrderCode(ctx context.Context, orderCode string) (*Order, error)

	// FindByUser returns a customer's own orders, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll returns all orders, newest first (owner read path)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// CreateWithStockDecrement inserts the order and conditionally
	// decrements the product's stock in one transaction. Returns
	// shared.ErrInsufficientStock when the decrement would go negative and
	// shared.ErrDuplicateCode when the order code collides.
	CreateWithStockDecrement(ctx context.Context, order *Order) error

	// Save updates an existing order (owner-side status transitions)
	Save(ctx context.Context, order *Order) error
}
