package handler

import (
	companyapp "github.com/amitkkna/quote-sub001/internal/application/company"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company profile API endpoints
type CompanyHandler struct {
	BaseHandler
	companies *companyapp.Service
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companies *companyapp.Service) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// RegisterRoutes registers company routes on the API group
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.POST("", h.Create)
		companies.GET("", h.List)
		companies.GET("/:id", h.Get)
		companies.GET("/code/:code", h.GetByCode)
		companies.PUT("/:id", h.Update)
		companies.PUT("/:id/bank", h.UpdateBank)
		companies.DELETE("/:id", h.Delete)
	}
}

// Create registers a new issuing company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req companyapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	co, err := h.companies.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, co)
}

// Get retrieves a company by ID
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	co, err := h.companies.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, co)
}

// GetByCode retrieves a company by its short code
func (h *CompanyHandler) GetByCode(c *gin.Context) {
	co, err := h.companies.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, co)
}

// List returns all companies
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companies.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// Update updates the company profile
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req companyapp.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	co, err := h.companies.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, co)
}

// UpdateBank replaces the company's bank details
func (h *CompanyHandler) UpdateBank(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req companyapp.BankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	co, err := h.companies.UpdateBank(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, co)
}

// Delete removes a company
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.companies.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
