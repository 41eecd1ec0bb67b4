package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormComplaintRepository implements ComplaintRepository using GORM
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewGormComplaintRepository creates a new GormComplaintRepository
func NewGormComplaintRepository(db *gorm.DB) *GormComplaintRepository {
	return &GormComplaintRepository{db: db}
}

// FindByID finds a complaint by ID
func (r *GormComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*feedback.Complaint, error) {
	var model models.ComplaintModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns a customer's own complaints, newest first
func (r *GormComplaintRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]feedback.Complaint, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ComplaintModel{}).
		Where("user_id = ?", userID)
	return r.list(applyFeedbackFilter(query, filter))
}

// FindAll returns all complaints, newest first
func (r *GormComplaintRepository) FindAll(ctx context.Context, filter shared.Filter) ([]feedback.Complaint, error) {
	query := r.db.WithContext(ctx).Model(&models.ComplaintModel{})
	return r.list(applyFeedbackFilter(query, filter))
}

func (r *GormComplaintRepository) list(query *gorm.DB) ([]feedback.Complaint, error) {
	var complaintModels []models.ComplaintModel
	if err := query.Find(&complaintModels).Error; err != nil {
		return nil, err
	}
	complaints := make([]feedback.Complaint, 0, len(complaintModels))
	for i := range complaintModels {
		complaints = append(complaints, *complaintModels[i].ToDomain())
	}
	return complaints, nil
}

// Create inserts a new complaint
func (r *GormComplaintRepository) Create(ctx context.Context, complaint *feedback.Complaint) error {
	model := models.ComplaintModelFromDomain(complaint)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing complaint
func (r *GormComplaintRepository) Save(ctx context.Context, complaint *feedback.Complaint) error {
	model := models.ComplaintModelFromDomain(complaint)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFeedbackFilter applies status and pagination to feedback queries
func applyFeedbackFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok && status != nil && status != "" {
		query = query.Where("status = ?", status)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

var _ feedback.ComplaintRepository = (*GormComplaintRepository)(nil)
