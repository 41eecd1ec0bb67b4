package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/shared"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Order represents a customer order aggregate root.
// The order denormalizes product name and unit price at submission time;
// total price is always unit price times quantity.
type Order struct {
	shared.BaseEntity
	OrderCode           string
	ProductID           uuid.UUID
	ProductName         string
	Quantity            int
	UnitPrice           decimal.Decimal
	TotalPrice          decimal.Decimal
	UserID              uuid.UUID
	CustomerName        string
	CustomerEmail       string
	ShippingAddress     string
	SpecialInstructions string
	Status              OrderStatus
}

// NewOrder creates a new pending order
func NewOrder(
	orderCode string,
	productID uuid.UUID,
	productName string,
	quantity int,
	unitPrice decimal.Decimal,
	userID uuid.UUID,
	customerName, customerEmail, shippingAddress, specialInstructions string,
) (*Order, error) {
	if !IsOrderCode(orderCode) {
		return nil, shared.NewDomainError("INVALID_ORDER_CODE", "Order code does not match the expected format")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(customerEmail) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_EMAIL", "Customer email cannot be empty")
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, shared.NewDomainError("INVALID_SHIPPING_ADDRESS", "Shipping address cannot be empty")
	}

	return &Order{
		BaseEntity:          shared.NewBaseEntity(),
		OrderCode:           orderCode,
		ProductID:           productID,
		ProductName:         strings.TrimSpace(productName),
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		TotalPrice:          unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		UserID:              userID,
		CustomerName:        strings.TrimSpace(customerName),
		CustomerEmail:       strings.ToLower(strings.TrimSpace(customerEmail)),
		ShippingAddress:     strings.TrimSpace(shippingAddress),
		SpecialInstructions: strings.TrimSpace(specialInstructions),
		Status:              OrderStatusPending,
	}, nil
}

// TransitionTo moves the order to the target status
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}
