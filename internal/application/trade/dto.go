// Package trade contains the order submission application service.
package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/trade"
)

// SubmitOrderInput contains input for order submission
type SubmitOrderInput struct {
	ProductID           uuid.UUID
	Quantity            int
	UserID              uuid.UUID
	CustomerName        string
	CustomerEmail       string
	ShippingAddress     string
	SpecialInstructions string
}

// Order is the order shape returned to clients
type Order struct {
	ID                  uuid.UUID       `json:"id"`
	OrderCode           string          `json:"order_code"`
	ProductID           uuid.UUID       `json:"product_id"`
	ProductName         string          `json:"product_name"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	CustomerName        string          `json:"customer_name"`
	CustomerEmail       string          `json:"customer_email"`
	ShippingAddress     string          `json:"shipping_address"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
}

// OrderPayload is the document forwarded to the automation endpoints
type OrderPayload struct {
	OrderCode           string `json:"order_code"`
	ProductName         string `json:"product_name"`
	Quantity            int    `json:"quantity"`
	UnitPrice           string `json:"unit_price"`
	TotalPrice          string `json:"total_price"`
	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	ShippingAddress     string `json:"shipping_address"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
	SubmittedAt         string `json:"submitted_at"`
}

// ListOrdersInput contains input for order listing
type ListOrdersInput struct {
	Search string
	Status string
	Page   int
}

func toOrder(o *trade.Order) Order {
	return Order{
		ID:                  o.ID,
		OrderCode:           o.OrderCode,
		ProductID:           o.ProductID,
		ProductName:         o.ProductName,
		Quantity:            o.Quantity,
		UnitPrice:           o.UnitPrice,
		TotalPrice:          o.TotalPrice,
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		ShippingAddress:     o.ShippingAddress,
		SpecialInstructions: o.SpecialInstructions,
		Status:              o.Status.String(),
		CreatedAt:           o.CreatedAt,
	}
}

func toOrderList(orders []trade.Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		out = append(out, toOrder(&orders[i]))
	}
	return out
}

func toOrderPayload(o *trade.Order) OrderPayload {
	return OrderPayload{
		OrderCode:           o.OrderCode,
		ProductName:         o.ProductName,
		Quantity:            o.Quantity,
		UnitPrice:           o.UnitPrice.StringFixed(2),
		TotalPrice:          o.TotalPrice.StringFixed(2),
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		ShippingAddress:     o.ShippingAddress,
		SpecialInstructions: o.SpecialInstructions,
		SubmittedAt:         o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
