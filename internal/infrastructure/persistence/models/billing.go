package models

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentItemModel is the persistence model for one item row of an invoice
// or quotation. SerialNo preserves row order; CustomValues stores the
// user-defined column values as a JSON object keyed by column id.
type DocumentItemModel struct {
	BaseModel
	DocumentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SerialNo     int             `gorm:"not null"`
	Description  string          `gorm:"type:text"`
	HSNSACCode   string          `gorm:"type:varchar(50)"`
	Quantity     string          `gorm:"type:varchar(100);not null;default:'1'"`
	Rate         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CustomValues string          `gorm:"type:text"`
}

// DocumentColumnModel is the persistence model for one user-defined column
// of an invoice or quotation. ColumnOrder preserves display order.
type DocumentColumnModel struct {
	BaseModel
	DocumentID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ColumnName        string    `gorm:"type:varchar(100);not null"`
	ColumnDisplayName string    `gorm:"type:varchar(200);not null"`
	ColumnOrder       int       `gorm:"not null"`
}

// InvoiceItemModel maps item rows to the invoice_items table
type InvoiceItemModel struct {
	DocumentItemModel
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// InvoiceColumnModel maps custom columns to the invoice_columns table
type InvoiceColumnModel struct {
	DocumentColumnModel
}

// TableName returns the table name for GORM
func (InvoiceColumnModel) TableName() string {
	return "invoice_columns"
}

// QuotationItemModel maps item rows to the quotation_items table
type QuotationItemModel struct {
	DocumentItemModel
}

// TableName returns the table name for GORM
func (QuotationItemModel) TableName() string {
	return "quotation_items"
}

// QuotationColumnModel maps custom columns to the quotation_columns table
type QuotationColumnModel struct {
	DocumentColumnModel
}

// TableName returns the table name for GORM
func (QuotationColumnModel) TableName() string {
	return "quotation_columns"
}

// InvoiceModel is the persistence model for the Invoice aggregate root
type InvoiceModel struct {
	AggregateModel
	Number      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CompanyCode string    `gorm:"type:varchar(20);not null;index"`
	IssueDate   time.Time `gorm:"not null;index"`

	BillToName      string `gorm:"type:varchar(200)"`
	BillToAddress   string `gorm:"type:text"`
	BillToGSTIN     string `gorm:"type:varchar(20)"`
	BillToState     string `gorm:"type:varchar(100)"`
	BillToStateCode string `gorm:"type:varchar(5)"`
	ShipToName      string `gorm:"type:varchar(200)"`
	ShipToAddress   string `gorm:"type:text"`
	ShipToGSTIN     string `gorm:"type:varchar(20)"`
	ShipToState     string `gorm:"type:varchar(100)"`
	ShipToStateCode string `gorm:"type:varchar(5)"`

	TaxType  billing.TaxType `gorm:"type:varchar(20);not null;default:'cgst_sgst'"`
	IGSTRate decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	CGSTRate decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	SGSTRate decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	RoundOff bool            `gorm:"not null;default:false"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CGSTAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SGSTAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IGSTAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Notes      string                 `gorm:"type:text"`
	FitOnePage bool                   `gorm:"not null;default:false"`
	HindiMode  bool                   `gorm:"not null;default:false"`
	Status     billing.DocumentStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`

	Items   []InvoiceItemModel   `gorm:"foreignKey:DocumentID;references:ID"`
	Columns []InvoiceColumnModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// QuotationModel is the persistence model for the Quotation aggregate root
type QuotationModel struct {
	AggregateModel
	Number      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CompanyCode string    `gorm:"type:varchar(20);not null;index"`
	IssueDate   time.Time `gorm:"not null;index"`
	ValidUntil  time.Time `gorm:"not null"`

	BillToName      string `gorm:"type:varchar(200)"`
	BillToAddress   string `gorm:"type:text"`
	BillToGSTIN     string `gorm:"type:varchar(20)"`
	BillToState     string `gorm:"type:varchar(100)"`
	BillToStateCode string `gorm:"type:varchar(5)"`
	ShipToName      string `gorm:"type:varchar(200)"`
	ShipToAddress   string `gorm:"type:text"`
	ShipToGSTIN     string `gorm:"type:varchar(20)"`
	ShipToState     string `gorm:"type:varchar(100)"`
	ShipToStateCode string `gorm:"type:varchar(5)"`

	TaxType  billing.TaxType `gorm:"type:varchar(20);not null;default:'cgst_sgst'"`
	IGSTRate decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	CGSTRate decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	SGSTRate decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	RoundOff bool            `gorm:"not null;default:false"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CGSTAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SGSTAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IGSTAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Notes      string                 `gorm:"type:text"`
	FitOnePage bool                   `gorm:"not null;default:false"`
	HindiMode  bool                   `gorm:"not null;default:false"`
	Status     billing.DocumentStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`

	Items   []QuotationItemModel   `gorm:"foreignKey:DocumentID;references:ID"`
	Columns []QuotationColumnModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

func itemToDomain(m DocumentItemModel) billing.ItemRow {
	row := billing.ItemRow{
		ID:          m.ID,
		Description: m.Description,
		HSNSACCode:  m.HSNSACCode,
		Quantity:    m.Quantity,
		Rate:        m.Rate,
		Amount:      m.Amount,
		Custom:      map[string]string{},
	}
	if m.CustomValues != "" {
		// A corrupt blob degrades to empty custom values; the ledger
		// backfills blanks for every defined column on rebuild.
		_ = json.Unmarshal([]byte(m.CustomValues), &row.Custom)
	}
	return row
}

func itemFromDomain(documentID uuid.UUID, serialNo int, row billing.ItemRow, createdAt, updatedAt time.Time) DocumentItemModel {
	blob, _ := json.Marshal(row.Custom)
	return DocumentItemModel{
		BaseModel: BaseModel{
			ID:        row.ID,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		DocumentID:   documentID,
		SerialNo:     serialNo,
		Description:  row.Description,
		HSNSACCode:   row.HSNSACCode,
		Quantity:     row.Quantity,
		Rate:         row.Rate,
		Amount:       row.Amount,
		CustomValues: string(blob),
	}
}

func columnFromDomain(documentID uuid.UUID, order int, col billing.Column, createdAt, updatedAt time.Time) DocumentColumnModel {
	return DocumentColumnModel{
		BaseModel: BaseModel{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		DocumentID:        documentID,
		ColumnName:        col.ID,
		ColumnDisplayName: col.Name,
		ColumnOrder:       order,
	}
}

func columnToDomain(m DocumentColumnModel) billing.Column {
	return billing.Column{ID: m.ColumnName, Name: m.ColumnDisplayName}
}

func taxConfigToDomain(taxType billing.TaxType, igst, cgst, sgst decimal.Decimal, roundOff bool) billing.TaxConfig {
	return billing.TaxConfig{
		Type:     taxType,
		IGSTRate: igst,
		CGSTRate: cgst,
		SGSTRate: sgst,
		RoundOff: roundOff,
	}
}

// ToDomain converts the persistence model to a domain Invoice, rebuilding
// the item ledger from the stored columns and rows.
func (m *InvoiceModel) ToDomain() (*billing.Invoice, error) {
	ledger, err := rebuildLedger(invoiceColumns(m.Columns), invoiceItems(m.Items))
	if err != nil {
		return nil, err
	}

	inv := &billing.Invoice{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Number:            m.Number,
		CompanyCode:       m.CompanyCode,
		IssueDate:         m.IssueDate,
		BillTo: billing.Party{
			Name: m.BillToName, Address: m.BillToAddress, GSTIN: m.BillToGSTIN,
			State: m.BillToState, StateCode: m.BillToStateCode,
		},
		ShipTo: billing.Party{
			Name: m.ShipToName, Address: m.ShipToAddress, GSTIN: m.ShipToGSTIN,
			State: m.ShipToState, StateCode: m.ShipToStateCode,
		},
		Ledger:     ledger,
		Tax:        taxConfigToDomain(m.TaxType, m.IGSTRate, m.CGSTRate, m.SGSTRate, m.RoundOff),
		Notes:      m.Notes,
		FitOnePage: m.FitOnePage,
		HindiMode:  m.HindiMode,
		Status:     m.Status,
	}
	inv.Totals = inv.Tax.Compute(ledger.Amounts())
	return inv, nil
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.Number = inv.Number
	m.CompanyCode = inv.CompanyCode
	m.IssueDate = inv.IssueDate
	m.BillToName, m.BillToAddress, m.BillToGSTIN = inv.BillTo.Name, inv.BillTo.Address, inv.BillTo.GSTIN
	m.BillToState, m.BillToStateCode = inv.BillTo.State, inv.BillTo.StateCode
	m.ShipToName, m.ShipToAddress, m.ShipToGSTIN = inv.ShipTo.Name, inv.ShipTo.Address, inv.ShipTo.GSTIN
	m.ShipToState, m.ShipToStateCode = inv.ShipTo.State, inv.ShipTo.StateCode
	m.TaxType = inv.Tax.Type
	m.IGSTRate, m.CGSTRate, m.SGSTRate = inv.Tax.IGSTRate, inv.Tax.CGSTRate, inv.Tax.SGSTRate
	m.RoundOff = inv.Tax.RoundOff
	m.Subtotal = inv.Totals.Subtotal
	m.CGSTAmount, m.SGSTAmount, m.IGSTAmount = inv.Totals.CGST, inv.Totals.SGST, inv.Totals.IGST
	m.TaxAmount, m.Total = inv.Totals.Tax, inv.Totals.Total
	m.Notes = inv.Notes
	m.FitOnePage, m.HindiMode = inv.FitOnePage, inv.HindiMode
	m.Status = inv.Status

	m.Items = make([]InvoiceItemModel, 0, inv.Ledger.RowCount())
	for i, row := range inv.Ledger.Rows() {
		m.Items = append(m.Items, InvoiceItemModel{
			DocumentItemModel: itemFromDomain(inv.ID, i+1, row, inv.CreatedAt, inv.UpdatedAt),
		})
	}
	m.Columns = make([]InvoiceColumnModel, 0, len(inv.Ledger.CustomColumns()))
	for i, col := range inv.Ledger.CustomColumns() {
		m.Columns = append(m.Columns, InvoiceColumnModel{
			DocumentColumnModel: columnFromDomain(inv.ID, i+1, col, inv.CreatedAt, inv.UpdatedAt),
		})
	}
}

// ToDomain converts the persistence model to a domain Quotation
func (m *QuotationModel) ToDomain() (*billing.Quotation, error) {
	ledger, err := rebuildLedger(quotationColumns(m.Columns), quotationItems(m.Items))
	if err != nil {
		return nil, err
	}

	q := &billing.Quotation{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Number:            m.Number,
		CompanyCode:       m.CompanyCode,
		IssueDate:         m.IssueDate,
		ValidUntil:        m.ValidUntil,
		BillTo: billing.Party{
			Name: m.BillToName, Address: m.BillToAddress, GSTIN: m.BillToGSTIN,
			State: m.BillToState, StateCode: m.BillToStateCode,
		},
		ShipTo: billing.Party{
			Name: m.ShipToName, Address: m.ShipToAddress, GSTIN: m.ShipToGSTIN,
			State: m.ShipToState, StateCode: m.ShipToStateCode,
		},
		Ledger:     ledger,
		Tax:        taxConfigToDomain(m.TaxType, m.IGSTRate, m.CGSTRate, m.SGSTRate, m.RoundOff),
		Notes:      m.Notes,
		FitOnePage: m.FitOnePage,
		HindiMode:  m.HindiMode,
		Status:     m.Status,
	}
	q.Totals = q.Tax.Compute(ledger.Amounts())
	return q, nil
}

// FromDomain populates the persistence model from a domain Quotation
func (m *QuotationModel) FromDomain(q *billing.Quotation) {
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	m.Number = q.Number
	m.CompanyCode = q.CompanyCode
	m.IssueDate = q.IssueDate
	m.ValidUntil = q.ValidUntil
	m.BillToName, m.BillToAddress, m.BillToGSTIN = q.BillTo.Name, q.BillTo.Address, q.BillTo.GSTIN
	m.BillToState, m.BillToStateCode = q.BillTo.State, q.BillTo.StateCode
	m.ShipToName, m.ShipToAddress, m.ShipToGSTIN = q.ShipTo.Name, q.ShipTo.Address, q.ShipTo.GSTIN
	m.ShipToState, m.ShipToStateCode = q.ShipTo.State, q.ShipTo.StateCode
	m.TaxType = q.Tax.Type
	m.IGSTRate, m.CGSTRate, m.SGSTRate = q.Tax.IGSTRate, q.Tax.CGSTRate, q.Tax.SGSTRate
	m.RoundOff = q.Tax.RoundOff
	m.Subtotal = q.Totals.Subtotal
	m.CGSTAmount, m.SGSTAmount, m.IGSTAmount = q.Totals.CGST, q.Totals.SGST, q.Totals.IGST
	m.TaxAmount, m.Total = q.Totals.Tax, q.Totals.Total
	m.Notes = q.Notes
	m.FitOnePage, m.HindiMode = q.FitOnePage, q.HindiMode
	m.Status = q.Status

	m.Items = make([]QuotationItemModel, 0, q.Ledger.RowCount())
	for i, row := range q.Ledger.Rows() {
		m.Items = append(m.Items, QuotationItemModel{
			DocumentItemModel: itemFromDomain(q.ID, i+1, row, q.CreatedAt, q.UpdatedAt),
		})
	}
	m.Columns = make([]QuotationColumnModel, 0, len(q.Ledger.CustomColumns()))
	for i, col := range q.Ledger.CustomColumns() {
		m.Columns = append(m.Columns, QuotationColumnModel{
			DocumentColumnModel: columnFromDomain(q.ID, i+1, col, q.CreatedAt, q.UpdatedAt),
		})
	}
}

func invoiceItems(items []InvoiceItemModel) []DocumentItemModel {
	out := make([]DocumentItemModel, len(items))
	for i, it := range items {
		out[i] = it.DocumentItemModel
	}
	return out
}

func invoiceColumns(cols []InvoiceColumnModel) []DocumentColumnModel {
	out := make([]DocumentColumnModel, len(cols))
	for i, c := range cols {
		out[i] = c.DocumentColumnModel
	}
	return out
}

func quotationItems(items []QuotationItemModel) []DocumentItemModel {
	out := make([]DocumentItemModel, len(items))
	for i, it := range items {
		out[i] = it.DocumentItemModel
	}
	return out
}

func quotationColumns(cols []QuotationColumnModel) []DocumentColumnModel {
	out := make([]DocumentColumnModel, len(cols))
	for i, c := range cols {
		out[i] = c.DocumentColumnModel
	}
	return out
}

// rebuildLedger reconstructs a domain ledger from stored column and item
// models, sorted by their persisted order fields.
func rebuildLedger(cols []DocumentColumnModel, items []DocumentItemModel) (*billing.ItemLedger, error) {
	sortColumns(cols)
	sortItems(items)

	custom := make([]billing.Column, len(cols))
	for i, c := range cols {
		custom[i] = columnToDomain(c)
	}
	rows := make([]billing.ItemRow, len(items))
	for i, it := range items {
		rows[i] = itemToDomain(it)
	}
	return billing.NewItemLedgerFromParts(custom, rows)
}

func sortColumns(cols []DocumentColumnModel) {
	sort.Slice(cols, func(i, j int) bool { return cols[i].ColumnOrder < cols[j].ColumnOrder })
}

func sortItems(items []DocumentItemModel) {
	sort.Slice(items, func(i, j int) bool { return items[i].SerialNo < items[j].SerialNo })
}
