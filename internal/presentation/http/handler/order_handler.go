package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tyreshoppe/shopdesk-api/internal/application/service"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/dto/request"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/dto/response"
	"github.com/tyreshoppe/shopdesk-api/pkg/catalog"
)

// OrderHandler handles customer order and tyre request HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders lists the shop's customer orders from the partner platform
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListCustomerOrders(c.Request.Context(), GetBearerToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved", orders)
}

// CompleteTyreOrder marks a tyre order as delivered
func (h *OrderHandler) CompleteTyreOrder(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.CompleteTyreOrder(c.Request.Context(), GetBearerToken(c), *userID, req.OrderID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order completed", nil)
}

// CompleteAppointment marks a fitment appointment as done
func (h *OrderHandler) CompleteAppointment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.CompleteAppointment(c.Request.Context(), GetBearerToken(c), *userID, req.AppointmentID, req.OrderID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment completed", nil)
}

// CreateTyreRequest submits a restock request to the partner platform
func (h *OrderHandler) CreateTyreRequest(c *gin.Context) {
	var req request.CreateTyreRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &catalog.TyreRequestInput{Comments: req.Comments}
	for _, spec := range req.Specification {
		input.Specification = append(input.Specification, catalog.TyreSpec{
			TyreID:   spec.TyreID,
			Brand:    spec.Brand,
			Model:    spec.Model,
			Size:     spec.Size,
			Quantity: spec.Quantity,
		})
	}

	if err := h.orderService.CreateTyreRequest(c.Request.Context(), GetBearerToken(c), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tyre request submitted", nil)
}

// ListTyreRequests lists the shop's pending and resolved tyre requests
func (h *OrderHandler) ListTyreRequests(c *gin.Context) {
	requests, err := h.orderService.ListTyreRequests(c.Request.Context(), GetBearerToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tyre requests retrieved", requests)
}
