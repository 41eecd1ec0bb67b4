package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*feedback.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct returns reviews for a product, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]feedback.Review, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("product_id = ?", productID)
	return r.list(applyFeedbackFilter(query, filter))
}

// FindAll returns all reviews, newest first
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]feedback.Review, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{})
	return r.list(applyFeedbackFilter(query, filter))
}

func (r *GormReviewRepository) list(query *gorm.DB) ([]feedback.Review, error) {
	var reviewModels []models.ReviewModel
	if err := query.Find(&reviewModels).Error; err != nil {
		return nil, err
	}
	reviews := make([]feedback.Review, 0, len(reviewModels))
	for i := range reviewModels {
		reviews = append(reviews, *reviewModels[i].ToDomain())
	}
	return reviews, nil
}

// Create inserts a new review
func (r *GormReviewRepository) Create(ctx context.Context, review *feedback.Review) error {
	model := models.ReviewModelFromDomain(review)
	return r.db.WithContext(ctx).Create(model).Error
}

var _ feedback.ReviewRepository = (*GormReviewRepository)(nil)
