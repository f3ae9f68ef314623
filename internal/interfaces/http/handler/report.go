package handler

import (
	"net/http"

	reportapp "github.com/amitkkna/quote-sub001/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles register and GST summary endpoints
type ReportHandler struct {
	BaseHandler
	reports *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes registers report routes on the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/invoice-register", h.InvoiceRegister)
		reports.GET("/invoice-register/csv", h.ExportRegisterCSV)
		reports.GET("/gst-summary", h.GSTSummary)
	}
}

// InvoiceRegister returns the invoice register for a date range
func (h *ReportHandler) InvoiceRegister(c *gin.Context) {
	var req reportapp.RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reg, err := h.reports.InvoiceRegister(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reg)
}

// GSTSummary returns tax amounts grouped by type and rate
func (h *ReportHandler) GSTSummary(c *gin.Context) {
	var req reportapp.RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reports.GSTSummary(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ExportRegisterCSV streams the invoice register as a CSV download
func (h *ReportHandler) ExportRegisterCSV(c *gin.Context) {
	var req reportapp.RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	data, err := h.reports.ExportRegisterCSV(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := "invoice-register-" + req.StartDate.Format("2006-01-02") +
		"-" + req.EndDate.Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
