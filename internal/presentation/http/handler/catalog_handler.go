package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tyreshoppe/shopdesk-api/internal/application/service"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/dto/request"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/dto/response"
	"github.com/tyreshoppe/shopdesk-api/pkg/catalog"
)

// CatalogHandler handles stock browsing and own-inventory HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// FetchStock lists tyres from the partner catalog or the shop's own inventory
// @Summary List stock
// @Tags catalog
// @Produce json
// @Param source query string true "partner or own"
// @Param search query string false "Brand, model or size filter"
// @Success 200 {object} response.APIResponse
// @Router /stock [get]
func (h *CatalogHandler) FetchStock(c *gin.Context) {
	source := enum.StockSource(c.DefaultQuery("source", string(enum.StockSourcePartner)))

	result, err := h.catalogService.FetchStock(c.Request.Context(), GetBearerToken(c), source, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("X-Fetch-Seq", strconv.FormatUint(result.Seq, 10))
	response.OK(c, "Stock retrieved", result)
}

// AddOwnTyre adds a tyre to the shop's own inventory
// @Summary Add own tyre
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body request.AddOwnTyreRequest true "Tyre details"
// @Success 201 {object} response.APIResponse
// @Router /stock/own [post]
func (h *CatalogHandler) AddOwnTyre(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddOwnTyreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &catalog.OwnTyreInput{
		Brand:       req.Brand,
		Model:       req.Model,
		Type:        req.Type,
		VehicleType: req.VehicleType,
		LoadIndex:   req.LoadIndex,
		Warranty:    req.Warranty,
		Images:      req.Images,
	}
	for _, row := range req.Stock {
		input.Stock = append(input.Stock, catalog.SizeStock{
			Size:     row.Size,
			Quantity: row.Quantity,
			Price:    row.Price,
		})
	}

	if err := h.catalogService.AddOwnTyre(c.Request.Context(), GetBearerToken(c), *userID, input); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tyre added to inventory", nil)
}
