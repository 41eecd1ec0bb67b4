package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smartauto/backend/internal/domain/report"
)

// ExportOrdersCSV renders the full order set as CSV. An empty set yields
// no document at all (nil), not a lone header row.
func (s *OwnerService) ExportOrdersCSV(ctx context.Context) ([]byte, error) {
	orders, err := s.orderRepo.FindAll(ctx, fullReadFilter())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	header := []string{
		"order_code", "product_name", "quantity", "unit_price", "total_price",
		"customer_name", "customer_email", "shipping_address",
		"special_instructions", "status", "created_at",
	}
	rows := make([][]string, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		rows = append(rows, []string{
			o.OrderCode,
			o.ProductName,
			fmt.Sprintf("%d", o.Quantity),
			o.UnitPrice.StringFixed(2),
			o.TotalPrice.StringFixed(2),
			o.CustomerName,
			o.CustomerEmail,
			o.ShippingAddress,
			o.SpecialInstructions,
			o.Status.String(),
			o.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return renderCSV(header, rows), nil
}

// ExportComplaintsCSV renders the full complaint set as CSV
func (s *OwnerService) ExportComplaintsCSV(ctx context.Context) ([]byte, error) {
	complaints, err := s.complaintRepo.FindAll(ctx, fullReadFilter())
	if err != nil {
		return nil, err
	}
	if len(complaints) == 0 {
		return nil, nil
	}

	header := []string{
		"customer_name", "customer_email", "order_code", "subject",
		"description", "sentiment", "status", "created_at",
	}
	rows := make([][]string, 0, len(complaints))
	for i := range complaints {
		c := &complaints[i]
		rows = append(rows, []string{
			c.CustomerName,
			c.CustomerEmail,
			c.OrderCode,
			c.Subject,
			c.Description,
			c.Sentiment,
			c.Status.String(),
			c.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return renderCSV(header, rows), nil
}

// ExportCustomersCSV renders the per-email customer aggregates as CSV
func (s *OwnerService) ExportCustomersCSV(ctx context.Context) ([]byte, error) {
	orders, complaints, reviews, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	aggregates := report.BuildCustomerAggregates(orders, complaints, reviews)
	if len(aggregates) == 0 {
		return nil, nil
	}

	header := []string{
		"name", "email", "order_count", "total_spent",
		"complaints", "reviews", "last_order_at",
	}
	rows := make([][]string, 0, len(aggregates))
	for _, agg := range aggregates {
		rows = append(rows, []string{
			agg.Name,
			agg.Email,
			fmt.Sprintf("%d", agg.OrderCount),
			agg.TotalSpent.StringFixed(2),
			fmt.Sprintf("%d", agg.Complaints),
			fmt.Sprintf("%d", agg.Reviews),
			agg.LastOrderAt,
		})
	}
	return renderCSV(header, rows), nil
}

// backupDocument is the element wrapped in the backup array
type backupDocument struct {
	Orders     []OrderRecord     `json:"orders"`
	Complaints []ComplaintRecord `json:"complaints"`
	Reviews    []ReviewRecord    `json:"reviews"`
	Products   []ProductRecord   `json:"products"`
}

// ExportBackupJSON renders the full data set as a pretty-printed JSON
// backup: a single-element array wrapping the four record sets. An entirely
// empty data set yields no document.
func (s *OwnerService) ExportBackupJSON(ctx context.Context) ([]byte, error) {
	orders, complaints, reviews, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 && len(complaints) == 0 && len(reviews) == 0 && len(products) == 0 {
		return nil, nil
	}

	doc := []backupDocument{{
		Orders:     toOrderRecords(orders),
		Complaints: toComplaintRecords(complaints),
		Reviews:    toReviewRecords(reviews),
		Products:   toProductRecords(products),
	}}

	return json.MarshalIndent(doc, "", "  ")
}

// renderCSV writes rows with every field quoted and embedded quotes
// doubled, matching the export format the downstream tooling expects.
// encoding/csv quotes only when required, which would change the bytes.
func renderCSV(header []string, rows [][]string) []byte {
	var b strings.Builder
	writeRow := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return []byte(b.String())
}
