package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// recentReviewLimit caps the public recent-reviews listing
const recentReviewLimit = 20

// ReviewService handles review submission and reads
type ReviewService struct {
	reviewRepo  feedback.ReviewRepository
	productRepo catalog.ProductRepository
	notifier    shared.Notifier
	logger      *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo feedback.ReviewRepository,
	productRepo catalog.ProductRepository,
	notifier shared.Notifier,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SubmitReview validates, persists, and forwards a new review.
// The product name is denormalized from the catalog at submission time.
func (s *ReviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*Review, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		s.logger.Error("Failed to load product for review", zap.Error(err))
		return nil, err
	}

	review, err := feedback.NewReview(
		input.UserID,
		product.ID,
		product.Name,
		input.CustomerName,
		input.CustomerEmail,
		input.Rating,
		input.Title,
		input.ReviewText,
	)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error("Failed to persist review", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("product", review.ProductName),
		zap.Int("rating", review.Rating))

	if report, err := s.notifier.Notify(ctx, shared.SubmissionKindReview, toReviewPayload(review)); err != nil {
		s.logger.Warn("Review forward skipped",
			zap.String("review_id", review.ID.String()),
			zap.Error(err))
	} else if !report.Primary.Succeeded() {
		s.logger.Warn("Review forward failed downstream",
			zap.String("review_id", review.ID.String()),
			zap.Int("status", report.Primary.StatusCode))
	}

	result := toReview(review)
	return &result, nil
}

// RecentReviews returns the newest reviews for the public storefront
func (s *ReviewService) RecentReviews(ctx context.Context) ([]Review, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = recentReviewLimit

	reviews, err := s.reviewRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list recent reviews", zap.Error(err))
		return nil, err
	}
	return toReviewList(reviews), nil
}

// ProductReviews returns reviews for one product, newest first
func (s *ReviewService) ProductReviews(ctx context.Context, productID uuid.UUID) ([]Review, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, shared.DefaultFilter())
	if err != nil {
		s.logger.Error("Failed to list product reviews", zap.Error(err))
		return nil, err
	}
	return toReviewList(reviews), nil
}
