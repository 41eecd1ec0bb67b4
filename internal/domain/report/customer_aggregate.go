package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/trade"
)

// CustomerAggregate is a per-email rollup across orders, complaints and
// reviews. An email that only ever complained or reviewed still gets an
// entry with zero orders and zero spend.
type CustomerAggregate struct {
	Name        string
	Email       string
	OrderCount  int
	TotalSpent  decimal.Decimal
	Complaints  int
	Reviews     int
	LastOrderAt string
}

// BuildCustomerAggregates joins the three submission streams on customer
// email. Emails are matched case-insensitively; the display name comes from
// the most recent submission that carried one.
func BuildCustomerAggregates(orders []trade.Order, complaints []feedback.Complaint, reviews []feedback.Review) []CustomerAggregate {
	byEmail := make(map[string]*CustomerAggregate)

	get := func(email, name string) *CustomerAggregate {
		key := strings.ToLower(strings.TrimSpace(email))
		if key == "" {
			return nil
		}
		agg, ok := byEmail[key]
		if !ok {
			agg = &CustomerAggregate{Email: key, TotalSpent: decimal.Zero}
			byEmail[key] = agg
		}
		if agg.Name == "" && name != "" {
			agg.Name = name
		}
		return agg
	}

	for i := range orders {
		o := &orders[i]
		agg := get(o.CustomerEmail, o.CustomerName)
		if agg == nil {
			continue
		}
		agg.OrderCount++
		agg.TotalSpent = agg.TotalSpent.Add(o.TotalPrice)
		placed := o.CreatedAt.UTC().Format("2006-01-02")
		if placed > agg.LastOrderAt {
			agg.LastOrderAt = placed
		}
	}

	for i := range complaints {
		c := &complaints[i]
		if agg := get(c.CustomerEmail, c.CustomerName); agg != nil {
			agg.Complaints++
		}
	}

	for i := range reviews {
		r := &reviews[i]
		if agg := get(r.CustomerEmail, r.CustomerName); agg != nil {
			agg.Reviews++
		}
	}

	result := make([]CustomerAggregate, 0, len(byEmail))
	for _, agg := range byEmail {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].TotalSpent.Equal(result[j].TotalSpent) {
			return result[i].TotalSpent.GreaterThan(result[j].TotalSpent)
		}
		return result[i].Email < result[j].Email
	})
	return result
}
