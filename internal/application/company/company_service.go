// Package company contains the application service for managing the
// issuing-company profiles.
package company

import (
	"context"

	"github.com/amitkkna/quote-sub001/internal/domain/company"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCompanyRequest carries the fields for registering a company
type CreateCompanyRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	GSTIN       string `json:"gstin" binding:"omitempty,gstin"`
	Tagline     string `json:"tagline"`
	Address     string `json:"address"`
	State       string `json:"state"`
	StateCode   string `json:"state_code"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	TemplateKey string `json:"template_key"`
}

// UpdateCompanyRequest carries the updatable profile fields
type UpdateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Tagline     string `json:"tagline"`
	Address     string `json:"address"`
	GSTIN       string `json:"gstin" binding:"omitempty,gstin"`
	State       string `json:"state"`
	StateCode   string `json:"state_code"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	TemplateKey string `json:"template_key"`
	IsActive    *bool  `json:"is_active"`
}

// BankDetailsRequest carries the bank details printed on invoices
type BankDetailsRequest struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
	IFSCCode      string `json:"ifsc_code"`
}

// CompanyResponse is the company profile view returned by the service
type CompanyResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Address     string `json:"address"`
	GSTIN       string `json:"gstin"`
	State       string `json:"state"`
	StateCode   string `json:"state_code"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Bank        BankDetailsRequest `json:"bank"`
	TemplateKey string `json:"template_key"`
	IsActive    bool   `json:"is_active"`
}

func toResponse(c *company.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        c.ID.String(),
		Code:      c.Code,
		Name:      c.Name,
		Tagline:   c.Tagline,
		Address:   c.Address,
		GSTIN:     c.GSTIN,
		State:     c.State,
		StateCode: c.StateCode,
		Email:     c.Email,
		Phone:     c.Phone,
		Bank: BankDetailsRequest{
			AccountName:   c.Bank.AccountName,
			AccountNumber: c.Bank.AccountNumber,
			BankName:      c.Bank.BankName,
			Branch:        c.Bank.Branch,
			IFSCCode:      c.Bank.IFSCCode,
		},
		TemplateKey: c.TemplateKey,
		IsActive:    c.IsActive,
	}
}

// Service orchestrates company profile use cases
type Service struct {
	companies company.Repository
	logger    *zap.Logger
}

// NewService creates a new company Service
func NewService(companies company.Repository, logger *zap.Logger) *Service {
	return &Service{companies: companies, logger: logger.Named("company_service")}
}

// Create registers a new company profile
func (s *Service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	if _, err := s.companies.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.NewDomainError("DUPLICATE_COMPANY", "A company with this code already exists")
	}

	c, err := company.NewCompany(req.Code, req.Name, req.GSTIN)
	if err != nil {
		return nil, err
	}
	c.Tagline = req.Tagline
	c.Address = req.Address
	c.State = req.State
	c.StateCode = req.StateCode
	c.Email = req.Email
	c.Phone = req.Phone
	if req.TemplateKey != "" {
		if err := c.SetTemplateKey(req.TemplateKey); err != nil {
			return nil, err
		}
	}

	if err := s.companies.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("company created", zap.String("code", c.Code))
	return toResponse(c), nil
}

// Get returns a company by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// GetByCode returns a company by its code
func (s *Service) GetByCode(ctx context.Context, code string) (*CompanyResponse, error) {
	c, err := s.companies.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// List returns all company profiles
func (s *Service) List(ctx context.Context) ([]*CompanyResponse, error) {
	companies, err := s.companies.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	out := make([]*CompanyResponse, len(companies))
	for i, c := range companies {
		out[i] = toResponse(c)
	}
	return out, nil
}

// Update updates a company profile
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateProfile(req.Name, req.Tagline, req.Address, req.Email, req.Phone); err != nil {
		return nil, err
	}
	c.UpdateRegistration(req.GSTIN, req.State, req.StateCode)
	if req.TemplateKey != "" {
		if err := c.SetTemplateKey(req.TemplateKey); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			c.Activate()
		} else {
			c.Deactivate()
		}
	}

	if err := s.companies.Save(ctx, c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// UpdateBank updates the bank details printed on invoices
func (s *Service) UpdateBank(ctx context.Context, id uuid.UUID, req BankDetailsRequest) (*CompanyResponse, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.UpdateBank(company.BankDetails{
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		Branch:        req.Branch,
		IFSCCode:      req.IFSCCode,
	})
	if err := s.companies.Save(ctx, c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// Delete removes a company profile
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.companies.Delete(ctx, id)
}
