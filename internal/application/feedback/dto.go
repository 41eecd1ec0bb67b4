// Package feedback contains the complaint and review application services.
package feedback

import (
	"time"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/feedback"
)

// SubmitComplaintInput contains input for complaint submission
type SubmitComplaintInput struct {
	UserID        uuid.UUID
	CustomerName  string
	CustomerEmail string
	OrderCode     string
	Subject       string
	Description   string
}

// Complaint is the complaint shape returned to clients
type Complaint struct {
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

// ComplaintPayload is the document forwarded to the automation endpoint
type ComplaintPayload struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	OrderCode     string `json:"order_code,omitempty"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`
	SubmittedAt   string `json:"submitted_at"`
}

// SubmitReviewInput contains input for review submission
type SubmitReviewInput struct {
	UserID        uuid.UUID
	ProductID     uuid.UUID
	CustomerName  string
	CustomerEmail string
	Rating        int
	Title         string
	ReviewText    string
}

// Review is the review shape returned to clients
type Review struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title,omitempty"`
	ReviewText   string    `json:"review_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewPayload is the document forwarded to the automation endpoint
type ReviewPayload struct {
	ProductName   string `json:"product_name"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Rating        int    `json:"rating"`
	Title         string `json:"title,omitempty"`
	ReviewText    string `json:"review_text"`
	SubmittedAt   string `json:"submitted_at"`
}

func toComplaint(c *feedback.Complaint) Complaint {
	return Complaint{
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

func toComplaintList(complaints []feedback.Complaint) []Complaint {
	out := make([]Complaint, 0, len(complaints))
	for i := range complaints {
		out = append(out, toComplaint(&complaints[i]))
	}
	return out
}

func toComplaintPayload(c *feedback.Complaint) ComplaintPayload {
	return ComplaintPayload{
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		OrderCode:     c.OrderCode,
		Subject:       c.Subject,
		Description:   c.Description,
		SubmittedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReview(r *feedback.Review) Review {
	return Review{
		ID:           r.ID,
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		Title:        r.Title,
		ReviewText:   r.ReviewText,
		CreatedAt:    r.CreatedAt,
	}
}

func toReviewList(reviews []feedback.Review) []Review {
	out := make([]Review, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReview(&reviews[i]))
	}
	return out
}

func toReviewPayload(r *feedback.Review) ReviewPayload {
	return ReviewPayload{
		ProductName:   r.ProductName,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Rating:        r.Rating,
		Title:         r.Title,
		ReviewText:    r.ReviewText,
		SubmittedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
