package feedback

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/shared"
)

// ComplaintRepository defines the interface for complaint persistence
type ComplaintRepository interface {
	// FindByID finds a complaint by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Complaint, error)

	// FindByUser returns a customer's own complaints, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Complaint, error)

	// FindAll returns all complaints, newest first (owner read path)
	FindAll(ctx context.Context, filter shared.Filter) ([]Complaint, error)

	// Create inserts a new complaint
	Create(ctx context.Context, complaint *Complaint) error

	// Save updates an existing complaint
	Save(ctx context.Context, complaint *Complaint) error
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByProduct returns reviews for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)

	// FindAll returns all reviews, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Review, error)

	// Create inserts a new review
	Create(ctx context.Context, review *Review) error
}
