// Package billing contains the application services orchestrating invoice
// and quotation use cases over the domain layer.
package billing

import (
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// PartyRequest carries Bill-To / Ship-To details
type PartyRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
}

func (p PartyRequest) toDomain() billing.Party {
	return billing.Party{
		Name:      p.Name,
		Address:   p.Address,
		GSTIN:     p.GSTIN,
		State:     p.State,
		StateCode: p.StateCode,
	}
}

// CreateDocumentRequest carries the fields for creating an invoice or quotation
type CreateDocumentRequest struct {
	CompanyCode string     `json:"company_code" binding:"required"`
	IssueDate   *time.Time `json:"issue_date"`
	ValidUntil  *time.Time `json:"valid_until"` // quotations only
}

// SetPartiesRequest updates the Bill-To and Ship-To details
type SetPartiesRequest struct {
	BillTo PartyRequest `json:"bill_to" binding:"required"`
	ShipTo PartyRequest `json:"ship_to"`
}

// SetItemFieldRequest updates one field of one item row
type SetItemFieldRequest struct {
	ColumnID string `json:"column_id" binding:"required"`
	Value    string `json:"value"`
}

// AddColumnRequest defines a new custom column
type AddColumnRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// TaxConfigRequest replaces the document's tax configuration
type TaxConfigRequest struct {
	Type     string          `json:"tax_type" binding:"required,oneof=igst cgst_sgst"`
	IGSTRate decimal.Decimal `json:"igst_rate"`
	CGSTRate decimal.Decimal `json:"cgst_rate"`
	SGSTRate decimal.Decimal `json:"sgst_rate"`
	RoundOff bool            `json:"round_off"`
}

func (r TaxConfigRequest) toDomain() billing.TaxConfig {
	return billing.TaxConfig{
		Type:     billing.TaxType(r.Type),
		IGSTRate: r.IGSTRate,
		CGSTRate: r.CGSTRate,
		SGSTRate: r.SGSTRate,
		RoundOff: r.RoundOff,
	}
}

// SetNotesRequest updates the document notes
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// SetLayoutRequest updates the PDF layout flags
type SetLayoutRequest struct {
	FitOnePage bool `json:"fit_one_page"`
	HindiMode  bool `json:"hindi_mode"`
}

// SetValidUntilRequest updates a quotation's validity date
type SetValidUntilRequest struct {
	ValidUntil time.Time `json:"valid_until" binding:"required"`
}

// ListRequest carries list filtering and pagination
type ListRequest struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	CompanyCode string `form:"company_code"`
	Status      string `form:"status"`
	Search      string `form:"search"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
}

// ColumnResponse describes one column of the item table
type ColumnResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Required bool   `json:"is_required"`
}

// ItemRowResponse is one rendered item row. SerialNo is positional and
// regenerated on every read.
type ItemRowResponse struct {
	ID          string            `json:"id"`
	SerialNo    int               `json:"serial_no"`
	Description string            `json:"description"`
	HSNSACCode  string            `json:"hsn_sac_code"`
	Quantity    string            `json:"quantity"`
	Rate        string            `json:"rate"`
	Amount      string            `json:"amount"`
	Custom      map[string]string `json:"custom"`
}

// TotalsResponse carries the document totals as fixed-point strings
type TotalsResponse struct {
	Subtotal   string `json:"subtotal"`
	CGSTAmount string `json:"cgst_amount"`
	SGSTAmount string `json:"sgst_amount"`
	IGSTAmount string `json:"igst_amount"`
	TaxAmount  string `json:"tax_amount"`
	Total      string `json:"total"`
}

// TaxConfigResponse describes the document's tax configuration
type TaxConfigResponse struct {
	Type     string `json:"tax_type"`
	IGSTRate string `json:"igst_rate"`
	CGSTRate string `json:"cgst_rate"`
	SGSTRate string `json:"sgst_rate"`
	RoundOff bool   `json:"round_off"`
}

// PartyResponse carries Bill-To / Ship-To details
type PartyResponse struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
}

// InvoiceResponse is the full invoice view returned by the service
type InvoiceResponse struct {
	ID          string            `json:"id"`
	Number      string            `json:"number"`
	CompanyCode string            `json:"company_code"`
	IssueDate   time.Time         `json:"issue_date"`
	Status      string            `json:"status"`
	BillTo      PartyResponse     `json:"bill_to"`
	ShipTo      PartyResponse     `json:"ship_to"`
	Columns     []ColumnResponse  `json:"columns"`
	Items       []ItemRowResponse `json:"items"`
	Tax         TaxConfigResponse `json:"tax"`
	Totals      TotalsResponse    `json:"totals"`
	Notes       string            `json:"notes"`
	FitOnePage  bool              `json:"fit_one_page"`
	HindiMode   bool              `json:"hindi_mode"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// QuotationResponse is the full quotation view returned by the service
type QuotationResponse struct {
	ID          string            `json:"id"`
	Number      string            `json:"number"`
	CompanyCode string            `json:"company_code"`
	IssueDate   time.Time         `json:"issue_date"`
	ValidUntil  time.Time         `json:"valid_until"`
	Status      string            `json:"status"`
	BillTo      PartyResponse     `json:"bill_to"`
	ShipTo      PartyResponse     `json:"ship_to"`
	Columns     []ColumnResponse  `json:"columns"`
	Items       []ItemRowResponse `json:"items"`
	Tax         TaxConfigResponse `json:"tax"`
	Totals      TotalsResponse    `json:"totals"`
	Notes       string            `json:"notes"`
	FitOnePage  bool              `json:"fit_one_page"`
	HindiMode   bool              `json:"hindi_mode"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func partyResponse(p billing.Party) PartyResponse {
	return PartyResponse{
		Name:      p.Name,
		Address:   p.Address,
		GSTIN:     p.GSTIN,
		State:     p.State,
		StateCode: p.StateCode,
	}
}

func columnResponses(cols []billing.Column) []ColumnResponse {
	out := make([]ColumnResponse, len(cols))
	for i, c := range cols {
		out[i] = ColumnResponse{ID: c.ID, Name: c.Name, Required: c.Required}
	}
	return out
}

func itemResponses(rows []billing.ItemRow) []ItemRowResponse {
	out := make([]ItemRowResponse, len(rows))
	for i, r := range rows {
		out[i] = ItemRowResponse{
			ID:          r.ID.String(),
			SerialNo:    i + 1,
			Description: r.Description,
			HSNSACCode:  r.HSNSACCode,
			Quantity:    r.Quantity,
			Rate:        r.Rate.StringFixed(2),
			Amount:      r.Amount.StringFixed(2),
			Custom:      r.Custom,
		}
	}
	return out
}

func totalsResponse(t billing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:   t.Subtotal.String(),
		CGSTAmount: t.CGST.String(),
		SGSTAmount: t.SGST.String(),
		IGSTAmount: t.IGST.String(),
		TaxAmount:  t.Tax.String(),
		Total:      t.Total.String(),
	}
}

func taxResponse(c billing.TaxConfig) TaxConfigResponse {
	return TaxConfigResponse{
		Type:     c.Type.String(),
		IGSTRate: c.IGSTRate.String(),
		CGSTRate: c.CGSTRate.String(),
		SGSTRate: c.SGSTRate.String(),
		RoundOff: c.RoundOff,
	}
}

// ToInvoiceResponse converts a domain invoice to its response view
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          inv.ID.String(),
		Number:      inv.Number,
		CompanyCode: inv.CompanyCode,
		IssueDate:   inv.IssueDate,
		Status:      inv.Status.String(),
		BillTo:      partyResponse(inv.BillTo),
		ShipTo:      partyResponse(inv.ShipTo),
		Columns:     columnResponses(inv.Ledger.Columns()),
		Items:       itemResponses(inv.Ledger.Rows()),
		Tax:         taxResponse(inv.Tax),
		Totals:      totalsResponse(inv.Totals),
		Notes:       inv.Notes,
		FitOnePage:  inv.FitOnePage,
		HindiMode:   inv.HindiMode,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// ToQuotationResponse converts a domain quotation to its response view
func ToQuotationResponse(q *billing.Quotation) *QuotationResponse {
	return &QuotationResponse{
		ID:          q.ID.String(),
		Number:      q.Number,
		CompanyCode: q.CompanyCode,
		IssueDate:   q.IssueDate,
		ValidUntil:  q.ValidUntil,
		Status:      q.Status.String(),
		BillTo:      partyResponse(q.BillTo),
		ShipTo:      partyResponse(q.ShipTo),
		Columns:     columnResponses(q.Ledger.Columns()),
		Items:       itemResponses(q.Ledger.Rows()),
		Tax:         taxResponse(q.Tax),
		Totals:      totalsResponse(q.Totals),
		Notes:       q.Notes,
		FitOnePage:  q.FitOnePage,
		HindiMode:   q.HindiMode,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func listFilter(req ListRequest) map[string]interface{} {
	filters := make(map[string]interface{})
	if req.CompanyCode != "" {
		filters["company_code"] = req.CompanyCode
	}
	if req.Status != "" {
		filters["status"] = req.Status
	}
	return filters
}
