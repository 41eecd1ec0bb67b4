package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/catalog"
)

// Product is the catalog entry shape returned to clients
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"product_code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	InStock   bool            `json:"in_stock"`
	CreatedAt time.Time       `json:"created_at"`
}

func toProduct(p *catalog.Product) Product {
	return Product{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		InStock:   p.Stock > 0,
		CreatedAt: p.CreatedAt,
	}
}

func toProductList(products []catalog.Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		out = append(out, toProduct(&products[i]))
	}
	return out
}
