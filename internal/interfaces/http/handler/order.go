package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apptrade "github.com/smartauto/backend/internal/application/trade"
	"github.com/smartauto/backend/internal/interfaces/http/middleware"
)

// SubmitOrderRequest represents the order submission request body
type SubmitOrderRequest struct {
	ProductID           string `json:"product_id" binding:"required,uuid"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	CustomerName        string `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail       string `json:"customer_email" binding:"required,email"`
	ShippingAddress     string `json:"shipping_address" binding:"required,min=1,max=500"`
	SpecialInstructions string `json:"special_instructions" binding:"max=1000"`
}

// OrderHandler handles customer order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *apptrade.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apptrade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// SubmitOrder places an order for the authenticated user
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindError(err))
		return
	}

	order, err := h.orderService.SubmitOrder(c.Request.Context(), apptrade.SubmitOrderInput{
		ProductID:           uuid.MustParse(req.ProductID),
		Quantity:            req.Quantity,
		UserID:              userID,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		ShippingAddress:     req.ShippingAddress,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// ListMyOrders returns the authenticated user's orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
