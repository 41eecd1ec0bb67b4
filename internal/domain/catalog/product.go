package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/shared"
)

// LowStockThreshold is the stock level below which a product is flagged
// on the owner dashboard.
const LowStockThreshold = 10

// Product represents a product in the storefront catalog.
// It is the aggregate root for catalog operations; stock is a single
// on-hand count decremented atomically when orders are placed.
type Product struct {
	shared.BaseEntity
	Code  string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name  string          `gorm:"type:varchar(200);not null"`
	Price decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToUpper(code),
		Name:       name,
		Price:      price,
		Stock:      stock,
	}, nil
}

// HasStock reports whether the requested quantity can be fulfilled from
// the current on-hand count. The authoritative check happens at insert
// time in the repository; this guards the request before any write.
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Stock
}

// IsLowStock reports whether the product is below the dashboard threshold
func (p *Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}

// Restock increases the on-hand count
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrice updates the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

func validateProductCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
