package report

import (
	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/trade"
)

// Dashboard is the owner landing summary computed over the full data set
type Dashboard struct {
	TotalOrders     int
	TotalRevenue    decimal.Decimal
	PendingOrders   int
	OpenComplaints  int
	TotalComplaints int
	TotalReviews    int
	AverageRating   decimal.Decimal
	LowStock        []catalog.Product
	Customers       int
}

// BuildDashboard computes the owner summary. Revenue counts every order
// regardless of status; cancelled orders are not excluded because the
// underlying payments are reconciled downstream, not here.
func BuildDashboard(
	orders []trade.Order,
	complaints []feedback.Complaint,
	reviews []feedback.Review,
	lowStock []catalog.Product,
) Dashboard {
	d := Dashboard{
		TotalOrders:     len(orders),
		TotalRevenue:    decimal.Zero,
		TotalComplaints: len(complaints),
		TotalReviews:    len(reviews),
		AverageRating:   decimal.Zero,
		LowStock:        lowStock,
	}

	for i := range orders {
		d.TotalRevenue = d.TotalRevenue.Add(orders[i].TotalPrice)
		if orders[i].Status == trade.OrderStatusPending {
			d.PendingOrders++
		}
	}

	for i := range complaints {
		if complaints[i].Status == feedback.ComplaintStatusOpen {
			d.OpenComplaints++
		}
	}

	if len(reviews) > 0 {
		sum := 0
		for i := range reviews {
			sum += reviews[i].Rating
		}
		d.AverageRating = decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(len(reviews)))).
			Round(2)
	}

	d.Customers = len(BuildCustomerAggregates(orders, complaints, reviews))
	return d
}
