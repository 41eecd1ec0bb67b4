package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order domain entity.
// The unique index on order_code is what the order service relies on to
// detect code collisions and retry.
type OrderModel struct {
	BaseModel
	OrderCode           string            `gorm:"type:varchar(20);not null;uniqueIndex"`
	ProductID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductName         string            `gorm:"type:varchar(200);not null"`
	Quantity            int               `gorm:"not null"`
	UnitPrice           decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	TotalPrice          decimal.Decimal   `gorm:"type:decimal(14,2);not null"`
	UserID              uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName        string            `gorm:"type:varchar(200);not null"`
	CustomerEmail       string            `gorm:"type:varchar(254);not null;index"`
	ShippingAddress     string            `gorm:"type:text;not null"`
	SpecialInstructions string            `gorm:"type:text"`
	Status              trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseEntity:          m.BaseModel.ToDomain(),
		OrderCode:           m.OrderCode,
		ProductID:           m.ProductID,
		ProductName:         m.ProductName,
		Quantity:            m.Quantity,
		UnitPrice:           m.UnitPrice,
		TotalPrice:          m.TotalPrice,
		UserID:              m.UserID,
		CustomerName:        m.CustomerName,
		CustomerEmail:       m.CustomerEmail,
		ShippingAddress:     m.ShippingAddress,
		SpecialInstructions: m.SpecialInstructions,
		Status:              m.Status,
	}
}

// OrderModelFromDomain creates a persistence model from a domain Order entity
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		OrderCode:           o.OrderCode,
		ProductID:           o.ProductID,
		ProductName:         o.ProductName,
		Quantity:            o.Quantity,
		UnitPrice:           o.UnitPrice,
		TotalPrice:          o.TotalPrice,
		UserID:              o.UserID,
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		ShippingAddress:     o.ShippingAddress,
		SpecialInstructions: o.SpecialInstructions,
		Status:              o.Status,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}
