package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appfeedback "github.com/smartauto/backend/internal/application/feedback"
	appreport "github.com/smartauto/backend/internal/application/report"
	apptrade "github.com/smartauto/backend/internal/application/trade"
	"github.com/smartauto/backend/internal/interfaces/http/dto"
	"github.com/smartauto/backend/internal/interfaces/http/middleware"
)

// UpdateOrderStatusRequest represents the order status transition request body
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OwnerHandler handles the privileged owner endpoints
type OwnerHandler struct {
	BaseHandler
	ownerService     *appreport.OwnerService
	orderService     *apptrade.OrderService
	complaintService *appfeedback.ComplaintService
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(
	ownerService *appreport.OwnerService,
	orderService *apptrade.OrderService,
	complaintService *appfeedback.ComplaintService,
) *OwnerHandler {
	return &OwnerHandler{
		ownerService:     ownerService,
		orderService:     orderService,
		complaintService: complaintService,
	}
}

// Data returns the raw record array for ?type=orders|complaints|reviews.
// The response is the bare array, not the standard envelope, because
// existing automation consumes this path as-is.
func (h *OwnerHandler) Data(c *gin.Context) {
	data, err := h.ownerService.Data(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// Dashboard returns the aggregated owner dashboard
func (h *OwnerHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.ownerService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// ListOrders returns all orders, filtered by ?search= and ?status=
func (h *OwnerHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), apptrade.ListOrdersInput{
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// UpdateOrderStatus transitions an order to a new status
func (h *OwnerHandler) UpdateOrderStatus(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindError(err))
		return
	}

	order, err := h.orderService.TransitionOrder(c.Request.Context(), uuid.MustParse(uri.ID), req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListComplaints returns all complaints, filtered by ?status=
func (h *OwnerHandler) ListComplaints(c *gin.Context) {
	complaints, err := h.complaintService.ListComplaints(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, complaints)
}

// ResolveComplaint marks a complaint as resolved
func (h *OwnerHandler) ResolveComplaint(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}

	complaint, err := h.complaintService.ResolveComplaint(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, complaint)
}

// ExportOrdersCSV downloads the order set as CSV
func (h *OwnerHandler) ExportOrdersCSV(c *gin.Context) {
	data, err := h.ownerService.ExportOrdersCSV(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendFile(c, data, "orders.csv", "text/csv")
}

// ExportComplaintsCSV downloads the complaint set as CSV
func (h *OwnerHandler) ExportComplaintsCSV(c *gin.Context) {
	data, err := h.ownerService.ExportComplaintsCSV(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendFile(c, data, "complaints.csv", "text/csv")
}

// ExportCustomersCSV downloads the customer aggregates as CSV
func (h *OwnerHandler) ExportCustomersCSV(c *gin.Context) {
	data, err := h.ownerService.ExportCustomersCSV(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendFile(c, data, "customers.csv", "text/csv")
}

// ExportBackupJSON downloads the full data set as a JSON backup
func (h *OwnerHandler) ExportBackupJSON(c *gin.Context) {
	data, err := h.ownerService.ExportBackupJSON(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendFile(c, data, "smartauto-backup.json", "application/json")
}

// Backup uploads a backup document to the configured object store
func (h *OwnerHandler) Backup(c *gin.Context) {
	key, err := h.ownerService.Backup(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{"key": key})
}

// sendFile streams an export download; an empty export yields 204
func (h *OwnerHandler) sendFile(c *gin.Context, data []byte, filename, contentType string) {
	if len(data) == 0 {
		h.NoContent(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
