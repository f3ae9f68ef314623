// Package company holds the issuing-company profiles. Each profile carries
// the letterhead identity, GST registration and bank details printed on
// documents, plus the template key selecting the branded PDF layout.
package company

import (
	"strings"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/shared"
)

// BankDetails holds the remittance information printed on invoices
type BankDetails struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
	IFSCCode      string `json:"ifsc_code"`
}

// Company is the aggregate root for one issuing company profile
type Company struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Tagline     string
	Address     string
	GSTIN       string
	State       string
	StateCode   string
	Email       string
	Phone       string
	Bank        BankDetails
	// TemplateKey selects the branded document layout, e.g. "gdc" or "sustainability"
	TemplateKey string
	IsActive    bool
}

// NewCompany creates a new active company profile
func NewCompany(code, name, gstin string) (*Company, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Company code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}

	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              strings.TrimSpace(name),
		GSTIN:             strings.TrimSpace(gstin),
		TemplateKey:       strings.ToLower(code),
		IsActive:          true,
	}, nil
}

// UpdateProfile updates the letterhead details
func (c *Company) UpdateProfile(name, tagline, address, email, phone string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	c.Name = strings.TrimSpace(name)
	c.Tagline = tagline
	c.Address = address
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateRegistration updates the GST registration details
func (c *Company) UpdateRegistration(gstin, state, stateCode string) {
	c.GSTIN = strings.TrimSpace(gstin)
	c.State = state
	c.StateCode = stateCode
	c.UpdatedAt = time.Now()
}

// UpdateBank updates the bank details printed on invoices
func (c *Company) UpdateBank(bank BankDetails) {
	c.Bank = bank
	c.UpdatedAt = time.Now()
}

// SetTemplateKey selects the branded document layout
func (c *Company) SetTemplateKey(key string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "Template key cannot be empty")
	}
	c.TemplateKey = key
	c.UpdatedAt = time.Now()
	return nil
}

// Activate re-enables the company for new documents
func (c *Company) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}

// Deactivate blocks new documents for this company
func (c *Company) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}
