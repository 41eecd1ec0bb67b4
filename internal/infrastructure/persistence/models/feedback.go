package models

import (
	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/feedback"
)

// ComplaintModel is the persistence model for the Complaint domain entity.
type ComplaintModel struct {
	BaseModel
	UserID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	CustomerName  string                   `gorm:"type:varchar(200);not null"`
	CustomerEmail string                   `gorm:"type:varchar(254);not null;index"`
	OrderCode     string                   `gorm:"type:varchar(100)"`
	Subject       string                   `gorm:"type:varchar(300);not null"`
	Description   string                   `gorm:"type:text;not null"`
	Sentiment     string                   `gorm:"type:varchar(50)"`
	Status        feedback.ComplaintStatus `gorm:"type:varchar(20);not null;default:'open';index"`
}

// TableName returns the table name for GORM
func (ComplaintModel) TableName() string {
	return "complaints"
}

// ToDomain converts the persistence model to a domain Complaint entity
func (m *ComplaintModel) ToDomain() *feedback.Complaint {
	return &feedback.Complaint{
		BaseEntity:    m.BaseModel.ToDomain(),
		UserID:        m.UserID,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		OrderCode:     m.OrderCode,
		Subject:       m.Subject,
		Description:   m.Description,
		Sentiment:     m.Sentiment,
		Status:        m.Status,
	}
}

// ComplaintModelFromDomain creates a persistence model from a domain Complaint entity
func ComplaintModelFromDomain(c *feedback.Complaint) *ComplaintModel {
	m := &ComplaintModel{
		UserID:        c.UserID,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		OrderCode:     c.OrderCode,
		Subject:       c.Subject,
		Description:   c.Description,
		Sentiment:     c.Sentiment,
		Status:        c.Status,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ReviewModel is the persistence model for the Review domain entity.
type ReviewModel struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName   string    `gorm:"type:varchar(200);not null"`
	CustomerName  string    `gorm:"type:varchar(200);not null"`
	CustomerEmail string    `gorm:"type:varchar(254);not null;index"`
	Rating        int       `gorm:"not null"`
	Title         string    `gorm:"type:varchar(300)"`
	ReviewText    string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity
func (m *ReviewModel) ToDomain() *feedback.Review {
	return &feedback.Review{
		BaseEntity:    m.BaseModel.ToDomain(),
		UserID:        m.UserID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		Rating:        m.Rating,
		Title:         m.Title,
		ReviewText:    m.ReviewText,
	}
}

// ReviewModelFromDomain creates a persistence model from a domain Review entity
func ReviewModelFromDomain(r *feedback.Review) *ReviewModel {
	m := &ReviewModel{
		UserID:        r.UserID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Rating:        r.Rating,
		Title:         r.Title,
		ReviewText:    r.ReviewText,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
