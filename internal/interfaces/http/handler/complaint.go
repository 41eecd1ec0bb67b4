package handler

import (
	"github.com/gin-gonic/gin"
	appfeedback "github.com/smartauto/backend/internal/application/feedback"
	"github.com/smartauto/backend/internal/interfaces/http/middleware"
)

// SubmitComplaintRequest represents the complaint submission request body
type SubmitComplaintRequest struct {
	CustomerName  string `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	OrderCode     string `json:"order_code" binding:"max=50"`
	Subject       string `json:"subject" binding:"required,min=1,max=200"`
	Description   string `json:"description" binding:"required,min=1,max=5000"`
}

// ComplaintHandler handles customer complaint endpoints
type ComplaintHandler struct {
	BaseHandler
	complaintService *appfeedback.ComplaintService
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(complaintService *appfeedback.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// SubmitComplaint files a complaint for the authenticated user
func (h *ComplaintHandler) SubmitComplaint(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindError(err))
		return
	}

	complaint, err := h.complaintService.SubmitComplaint(c.Request.Context(), appfeedback.SubmitComplaintInput{
		UserID:        userID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		OrderCode:     req.OrderCode,
		Subject:       req.Subject,
		Description:   req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, complaint)
}

// ListMyComplaints returns the authenticated user's complaints
func (h *ComplaintHandler) ListMyComplaints(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	complaints, err := h.complaintService.ListUserComplaints(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, complaints)
}
