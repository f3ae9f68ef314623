// Package report holds read models for the billing register and GST
// summaries. These are query-side projections computed from stored
// invoices, never persisted on their own.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRow is one invoice line in the invoice register
type RegisterRow struct {
	Number     string          `json:"number"`
	IssueDate  time.Time       `json:"issue_date"`
	PartyName  string          `json:"party_name"`
	PartyGSTIN string          `json:"party_gstin,omitempty"`
	TaxType    string          `json:"tax_type"`
	Status     string          `json:"status"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	CGST       decimal.Decimal `json:"cgst_amount"`
	SGST       decimal.Decimal `json:"sgst_amount"`
	IGST       decimal.Decimal `json:"igst_amount"`
	Tax        decimal.Decimal `json:"tax_amount"`
	Total      decimal.Decimal `json:"total"`
}

// InvoiceRegister is the invoice register for a company over a period
type InvoiceRegister struct {
	CompanyCode string          `json:"company_code"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Rows        []RegisterRow   `json:"rows"`
	Count       int             `json:"count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
}

// GSTBucket aggregates tax amounts for one GST rate
type GSTBucket struct {
	TaxType      string          `json:"tax_type"`
	Rate         decimal.Decimal `json:"rate"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst_amount"`
	SGST         decimal.Decimal `json:"sgst_amount"`
	IGST         decimal.Decimal `json:"igst_amount"`
	Tax          decimal.Decimal `json:"tax_amount"`
	InvoiceCount int             `json:"invoice_count"`
}

// GSTSummary groups a period's invoices by tax type and rate for filing
type GSTSummary struct {
	CompanyCode  string          `json:"company_code"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	Buckets      []GSTBucket     `json:"buckets"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	Tax          decimal.Decimal `json:"tax_amount"`
}

// Filter defines the period and company for register queries
type Filter struct {
	CompanyCode string    `json:"company_code"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}
