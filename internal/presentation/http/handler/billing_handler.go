package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/application/service"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/dto/request"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/dto/response"
	"github.com/tyreshoppe/shopdesk-api/pkg/pagination"
)

// BillingHandler handles billing session HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
	invoiceService *service.InvoiceService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService, invoiceService *service.InvoiceService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		invoiceService: invoiceService,
	}
}

func (h *BillingHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// ActiveSession returns the caller's open session, creating one if needed
func (h *BillingHandler) ActiveSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	session, err := h.billingService.ActiveSession(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active session", gin.H{
		"session": session,
		"totals":  session.Totals(),
	})
}

// ListSessions lists the caller's billing sessions
func (h *BillingHandler) ListSessions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := &repository.BillingFilterParams{
		Pagination: &params,
		Search:     c.Query("search"),
	}
	if raw := c.Query("status"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status := enum.BillingStatus(value)
		filter.Status = &status
	}

	result, err := h.billingService.ListSessions(c.Request.Context(), *userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sessions retrieved", result)
}

// GetSession returns one session with its lines and computed totals
func (h *BillingHandler) GetSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.billingService.GetSession(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved", gin.H{
		"session": session,
		"totals":  session.Totals(),
	})
}

// UpdateSession applies header edits to a draft session
func (h *BillingHandler) UpdateSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req request.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateSessionInput{
		GSTPercent: req.GSTPercent,
		CSTPercent: req.CSTPercent,
	}
	if req.Shop != nil {
		input.Shop = &entity.ShopProfile{
			GSTIN:   req.Shop.GSTIN,
			Name:    req.Shop.Name,
			Address: req.Shop.Address,
			PAN:     req.Shop.PAN,
			Phone:   req.Shop.Phone,
			Email:   req.Shop.Email,
		}
	}
	if req.Customer != nil {
		input.Customer = &entity.CustomerProfile{
			Name:             req.Customer.Name,
			Address:          req.Customer.Address,
			GSTIN:            req.Customer.GSTIN,
			PhoneNumber:      req.Customer.PhoneNumber,
			VehicleNumber:    req.Customer.VehicleNumber,
			PurchaseType:     req.Customer.PurchaseType,
			AddressProofType: req.Customer.AddressProofType,
			Pincode:          req.Customer.Pincode,
		}
	}

	session, err := h.billingService.UpdateSession(c.Request.Context(), *userID, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session updated", gin.H{
		"session": session,
		"totals":  session.Totals(),
	})
}

func lineInput(req *request.LineRequest) *service.LineInput {
	return &service.LineInput{
		Description:  req.Description,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitPrice:    req.UnitPrice,
		SourceTyreID: req.SourceTyreID,
		Size:         req.Size,
	}
}

// AddLine appends a row to the cart
func (h *BillingHandler) AddLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req request.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	line, err := h.billingService.AddLine(c.Request.Context(), *userID, id, lineInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line added", line)
}

// AddCatalogLine adds a tyre from the stock catalog to the cart
func (h *BillingHandler) AddCatalogLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req request.AddCatalogLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	line, err := h.billingService.AddCatalogLine(c.Request.Context(), *userID, id, GetBearerToken(c), enum.StockSource(req.Source), req.TyreID, req.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	if line == nil {
		response.OK(c, "Size out of stock, nothing added", nil)
		return
	}

	response.Created(c, "Line added", line)
}

// UpdateLine edits one cart row
func (h *BillingHandler) UpdateLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	line, err := h.billingService.UpdateLine(c.Request.Context(), *userID, id, lineID, lineInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line updated", line)
}

// RemoveLine deletes one cart row
func (h *BillingHandler) RemoveLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	if err := h.billingService.RemoveLine(c.Request.Context(), *userID, id, lineID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line removed", nil)
}

// ClearCart removes every row from a draft session
func (h *BillingHandler) ClearCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.billingService.ClearCart(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared", nil)
}

// OpenPreview moves a draft into the read-only preview state
func (h *BillingHandler) OpenPreview(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.billingService.OpenPreview(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preview opened", gin.H{
		"session": session,
		"totals":  session.Totals(),
	})
}

// ClosePreview returns a previewed invoice to the draft state
func (h *BillingHandler) ClosePreview(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.billingService.ClosePreview(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preview closed", nil)
}

// Finalize submits the order upstream and locks the invoice
func (h *BillingHandler) Finalize(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.billingService.Finalize(c.Request.Context(), *userID, id, GetBearerToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice finalized", gin.H{
		"session": session,
		"totals":  session.Totals(),
	})
}

// Complete archives a finalized invoice
func (h *BillingHandler) Complete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.billingService.Complete(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice completed", nil)
}

// GetInvoice returns the print-ready render model
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	doc, err := h.invoiceService.BuildInvoice(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice built", doc)
}

// ExportInvoicePDF streams the invoice as a PDF download
func (h *BillingHandler) ExportInvoicePDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	data, filename, err := h.invoiceService.ExportPDF(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", data)
}
