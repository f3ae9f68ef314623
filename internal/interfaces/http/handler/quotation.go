package handler

import (
	"net/http"

	billingapp "github.com/amitkkna/quote-sub001/internal/application/billing"
	printingapp "github.com/amitkkna/quote-sub001/internal/application/printing"
	"github.com/gin-gonic/gin"
)

// QuotationHandler handles quotation API endpoints
type QuotationHandler struct {
	BaseHandler
	quotations *billingapp.QuotationService
	pdf        *printingapp.Service
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotations *billingapp.QuotationService, pdf *printingapp.Service) *QuotationHandler {
	return &QuotationHandler{quotations: quotations, pdf: pdf}
}

// RegisterRoutes registers quotation routes on the API group
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/quotations")
	{
		quotations.POST("", h.Create)
		quotations.GET("", h.List)
		quotations.GET("/:id", h.Get)
		quotations.GET("/number/:number", h.GetByNumber)
		quotations.DELETE("/:id", h.Delete)

		quotations.POST("/:id/items", h.AddItem)
		quotations.DELETE("/:id/items/:itemId", h.RemoveItem)
		quotations.PUT("/:id/items/:itemId/field", h.SetItemField)

		quotations.POST("/:id/columns", h.AddColumn)
		quotations.DELETE("/:id/columns/:columnId", h.RemoveColumn)

		quotations.PUT("/:id/tax", h.SetTax)
		quotations.PUT("/:id/parties", h.SetParties)
		quotations.PUT("/:id/notes", h.SetNotes)
		quotations.PUT("/:id/layout", h.SetLayout)
		quotations.PUT("/:id/valid-until", h.SetValidUntil)

		quotations.POST("/:id/issue", h.Issue)
		quotations.POST("/:id/cancel", h.Cancel)
		quotations.POST("/:id/convert", h.ConvertToInvoice)

		quotations.GET("/:id/pdf", h.DownloadPDF)
	}
}

// Create creates a new draft quotation with an auto-generated number
func (h *QuotationHandler) Create(c *gin.Context) {
	var req billingapp.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q, err := h.quotations.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, q)
}

// Get retrieves a quotation by ID
func (h *QuotationHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	q, err := h.quotations.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// GetByNumber retrieves a quotation by its document number
func (h *QuotationHandler) GetByNumber(c *gin.Context) {
	q, err := h.quotations.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// List returns a paginated quotation list
func (h *QuotationHandler) List(c *gin.Context) {
	req := billingapp.ListRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.quotations.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// Delete removes a quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.quotations.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem appends a new default row to the item table
func (h *QuotationHandler) AddItem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	q, err := h.quotations.AddItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// RemoveItem removes one row from the item table
func (h *QuotationHandler) RemoveItem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	q, err := h.quotations.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// SetItemField updates one cell of the item table
func (h *QuotationHandler) SetItemField(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	var req billingapp.SetItemFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q, err := h.quotations.SetItemField(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// AddColumn adds a custom column before the Amount column
func (h *QuotationHandler) AddColumn(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.AddColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q, err := h.quotations.AddColumn(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// RemoveColumn removes a custom column and its values
func (h *QuotationHandler) RemoveColumn(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	q, err := h.quotations.RemoveColumn(c.Request.Context(), id, c.Param("columnId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// SetTax replaces the tax configuration
func (h *QuotationHandler) SetTax(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.TaxConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q, err := h.quotations.SetTax(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// SetParties updates the Bill-To and Ship-To blocks
func (h *QuotationHandler) SetParties(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.SetPartiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q, err := h.quotations.SetParties(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// SetNotes updates the free-text notes
func (h *QuotationHandler) SetNotes(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q, err := h.quotations.SetNotes(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// SetLayout updates the PDF layout flags
func (h *QuotationHandler) SetLayout(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.SetLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q, err := h.quotations.SetLayout(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// SetValidUntil updates the quotation validity date
func (h *QuotationHandler) SetValidUntil(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.SetValidUntilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	q, err := h.quotations.SetValidUntil(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// Issue transitions the quotation from draft to issued
func (h *QuotationHandler) Issue(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	q, err := h.quotations.Issue(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// Cancel cancels the quotation
func (h *QuotationHandler) Cancel(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	q, err := h.quotations.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// ConvertToInvoice creates a draft invoice carrying the quotation's
// full item table, tax setup and parties
func (h *QuotationHandler) ConvertToInvoice(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.quotations.ConvertToInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, inv)
}

// DownloadPDF renders the quotation on its company letterhead
func (h *QuotationHandler) DownloadPDF(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.pdf.QuotationPDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}
