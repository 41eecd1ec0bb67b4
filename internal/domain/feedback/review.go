package feedback

import (
	"strings"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/shared"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a customer product review.
// Product name is denormalized at submission time so the review stays
// readable even if the catalog entry is later renamed.
type Review struct {
	shared.BaseEntity
	UserID        uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	CustomerName  string
	CustomerEmail string
	Rating        int
	Title         string
	ReviewText    string
}

// NewReview creates a new review
func NewReview(
	userID, productID uuid.UUID,
	productName, customerName, customerEmail string,
	rating int,
	title, reviewText string,
) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(customerEmail) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_EMAIL", "Customer email cannot be empty")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(reviewText) == "" {
		return nil, shared.NewDomainError("INVALID_REVIEW_TEXT", "Review text cannot be empty")
	}

	return &Review{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		ProductID:     productID,
		ProductName:   strings.TrimSpace(productName),
		CustomerName:  strings.TrimSpace(customerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(customerEmail)),
		Rating:        rating,
		Title:         strings.TrimSpace(title),
		ReviewText:    strings.TrimSpace(reviewText),
	}, nil
}
