package models

import (
	"github.com/amitkkna/quote-sub001/internal/domain/company"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
)

// CompanyModel is the persistence model for the Company aggregate root
type CompanyModel struct {
	AggregateModel
	Code        string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(200);not null"`
	Tagline     string `gorm:"type:varchar(300)"`
	Address     string `gorm:"type:text"`
	GSTIN       string `gorm:"type:varchar(20)"`
	State       string `gorm:"type:varchar(100)"`
	StateCode   string `gorm:"type:varchar(5)"`
	Email       string `gorm:"type:varchar(200)"`
	Phone       string `gorm:"type:varchar(50)"`
	BankAccount string `gorm:"type:varchar(200)"`
	BankNumber  string `gorm:"type:varchar(50)"`
	BankName    string `gorm:"type:varchar(200)"`
	BankBranch  string `gorm:"type:varchar(200)"`
	BankIFSC    string `gorm:"type:varchar(20)"`
	TemplateKey string `gorm:"type:varchar(50);not null"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *company.Company {
	return &company.Company{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Code:              m.Code,
		Name:              m.Name,
		Tagline:           m.Tagline,
		Address:           m.Address,
		GSTIN:             m.GSTIN,
		State:             m.State,
		StateCode:         m.StateCode,
		Email:             m.Email,
		Phone:             m.Phone,
		Bank: company.BankDetails{
			AccountName:   m.BankAccount,
			AccountNumber: m.BankNumber,
			BankName:      m.BankName,
			Branch:        m.BankBranch,
			IFSCCode:      m.BankIFSC,
		},
		TemplateKey: m.TemplateKey,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Company
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Tagline = c.Tagline
	m.Address = c.Address
	m.GSTIN = c.GSTIN
	m.State = c.State
	m.StateCode = c.StateCode
	m.Email = c.Email
	m.Phone = c.Phone
	m.BankAccount = c.Bank.AccountName
	m.BankNumber = c.Bank.AccountNumber
	m.BankName = c.Bank.BankName
	m.BankBranch = c.Bank.Branch
	m.BankIFSC = c.Bank.IFSCCode
	m.TemplateKey = c.TemplateKey
	m.IsActive = c.IsActive
}
