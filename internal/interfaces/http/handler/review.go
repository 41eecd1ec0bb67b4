package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appfeedback "github.com/smartauto/backend/internal/application/feedback"
	"github.com/smartauto/backend/internal/interfaces/http/dto"
	"github.com/smartauto/backend/internal/interfaces/http/middleware"
)

// SubmitReviewRequest represents the review submission request body
type SubmitReviewRequest struct {
	ProductID     string `json:"product_id" binding:"required,uuid"`
	CustomerName  string `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Title         string `json:"title" binding:"max=200"`
	ReviewText    string `json:"review_text" binding:"required,min=1,max=5000"`
}

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *appfeedback.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *appfeedback.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// SubmitReview posts a review for the authenticated user
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindError(err))
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), appfeedback.SubmitReviewInput{
		UserID:        userID,
		ProductID:     uuid.MustParse(req.ProductID),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		Title:         req.Title,
		ReviewText:    req.ReviewText,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// RecentReviews returns the most recent reviews across all products
func (h *ReviewHandler) RecentReviews(c *gin.Context) {
	reviews, err := h.reviewService.RecentReviews(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}

// ProductReviews returns all reviews for one product
func (h *ReviewHandler) ProductReviews(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	reviews, err := h.reviewService.ProductReviews(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}
