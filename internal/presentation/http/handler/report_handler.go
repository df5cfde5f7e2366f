package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tyreshoppe/shopdesk-api/internal/application/service"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("Invalid %s date, expected YYYY-MM-DD", key))
		return nil, false
	}
	return &t, true
}

// InvoiceRegister streams the finalized invoice register as an xlsx download
func (h *ReportHandler) InvoiceRegister(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	if to != nil {
		// make the bound inclusive of the whole day
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	data, err := h.reportService.BuildInvoiceRegister(c.Request.Context(), *userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.RegisterFilename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
