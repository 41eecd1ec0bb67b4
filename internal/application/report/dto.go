// Package report contains the owner-facing aggregation and export service.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/report"
	"github.com/smartauto/backend/internal/domain/trade"
)

// OrderRecord is the owner-facing order shape (raw reads, exports, backups)
type OrderRecord struct {
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

// ComplaintRecord is the owner-facing complaint shape
type ComplaintRecord struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	OrderCode     string    `json:"order_code,omitempty"`
	Subject       string    `json:"subject"`
	Description   string    `json:"description"`
	Sentiment     string    `json:"sentiment,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReviewRecord is the owner-facing review shape
type ReviewRecord struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Rating        int       `json:"rating"`
	Title         string    `json:"title,omitempty"`
	ReviewText    string    `json:"review_text"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductRecord is the owner-facing catalog shape
type ProductRecord struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"product_code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// CustomerSummary is the per-email rollup returned on the dashboard
type CustomerSummary struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	OrderCount  int             `json:"order_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	Complaints  int             `json:"complaints"`
	Reviews     int             `json:"reviews"`
	LastOrderAt string          `json:"last_order_at,omitempty"`
}

// DashboardResult is the owner landing summary
type DashboardResult struct {
	TotalOrders     int               `json:"total_orders"`
	TotalRevenue    decimal.Decimal   `json:"total_revenue"`
	PendingOrders   int               `json:"pending_orders"`
	OpenComplaints  int               `json:"open_complaints"`
	TotalComplaints int               `json:"total_complaints"`
	TotalReviews    int               `json:"total_reviews"`
	AverageRating   decimal.Decimal   `json:"average_rating"`
	LowStock        []ProductRecord   `json:"low_stock"`
	Customers       []CustomerSummary `json:"customers"`
}

func toOrderRecord(o *trade.Order) OrderRecord {
	return OrderRecord{
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

func toOrderRecords(orders []trade.Order) []OrderRecord {
	out := make([]OrderRecord, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderRecord(&orders[i]))
	}
	return out
}

func toComplaintRecord(c *feedback.Complaint) ComplaintRecord {
	return ComplaintRecord{
		ID:            c.ID,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		OrderCode:     c.OrderCode,
		Subject:       c.Subject,
		Description:   c.Description,
		Sentiment:     c.Sentiment,
		Status:        c.Status.String(),
		CreatedAt:     c.CreatedAt,
	}
}

func toComplaintRecords(complaints []feedback.Complaint) []ComplaintRecord {
	out := make([]ComplaintRecord, 0, len(complaints))
	for i := range complaints {
		out = append(out, toComplaintRecord(&complaints[i]))
	}
	return out
}

func toReviewRecord(r *feedback.Review) ReviewRecord {
	return ReviewRecord{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Rating:        r.Rating,
		Title:         r.Title,
		ReviewText:    r.ReviewText,
		CreatedAt:     r.CreatedAt,
	}
}

func toReviewRecords(reviews []feedback.Review) []ReviewRecord {
	out := make([]ReviewRecord, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewRecord(&reviews[i]))
	}
	return out
}

func toProductRecords(products []catalog.Product) []ProductRecord {
	out := make([]ProductRecord, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, ProductRecord{
			ID:        p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}

func toCustomerSummaries(aggregates []report.CustomerAggregate) []CustomerSummary {
	out := make([]CustomerSummary, 0, len(aggregates))
	for _, agg := range aggregates {
		out = append(out, CustomerSummary{
			Name:        agg.Name,
			Email:       agg.Email,
			OrderCount:  agg.OrderCount,
			TotalSpent:  agg.TotalSpent,
			Complaints:  agg.Complaints,
			Reviews:     agg.Reviews,
			LastOrderAt: agg.LastOrderAt,
		})
	}
	return out
}
