package feedback

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/shared"
)

// ComplaintStatus represents the resolution state of a complaint
type ComplaintStatus string

const (
	ComplaintStatusOpen     ComplaintStatus = "open"
	ComplaintStatusResolved ComplaintStatus = "resolved"
)

// IsValid checks if the status is a valid ComplaintStatus
func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusResolved:
		return true
	}
	return false
}

// String returns the string representation of ComplaintStatus
func (s ComplaintStatus) String() string {
	return string(s)
}

// Complaint represents a customer complaint submission.
// OrderCode is free text: customers may reference an order that was placed
// elsewhere, so it is never validated against the orders table. Sentiment is
// an opaque label attached by the downstream automation, if any.
type Complaint struct {
	shared.BaseEntity
	UserID        uuid.UUID
	CustomerName  string
	CustomerEmail string
	OrderCode     string
	Subject       string
	Description   string
	Sentiment     string
	Status        ComplaintStatus
}

// NewComplaint creates a new open complaint
func NewComplaint(userID uuid.UUID, customerName, customerEmail, orderCode, subject, description string) (*Complaint, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(customerEmail) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_EMAIL", "Customer email cannot be empty")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}

	return &Complaint{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(customerEmail)),
		OrderCode:     strings.TrimSpace(orderCode),
		Subject:       strings.TrimSpace(subject),
		Description:   strings.TrimSpace(description),
		Status:        ComplaintStatusOpen,
	}, nil
}

// Resolve marks the complaint as resolved
func (c *Complaint) Resolve() error {
	if c.Status == ComplaintStatusResolved {
		return shared.NewDomainError("INVALID_STATE", "Complaint is already resolved")
	}
	c.Status = ComplaintStatusResolved
	c.UpdatedAt = time.Now()
	return nil
}

// SetSentiment records the sentiment label reported by the automation pipeline
func (c *Complaint) SetSentiment(sentiment string) {
	c.Sentiment = strings.TrimSpace(sentiment)
	c.UpdatedAt = time.Now()
}
