package printing

import (
	"strconv"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/domain/company"
	"github.com/shopspring/decimal"
)

// CompanyView carries the letterhead fields of the issuing company
type CompanyView struct {
	Name      string
	Tagline   string
	Address   string
	GSTIN     string
	State     string
	StateCode string
	Email     string
	Phone     string
	Bank      company.BankDetails
}

// PartyView carries one billing party block
type PartyView struct {
	Name      string
	Address   string
	GSTIN     string
	State     string
	StateCode string
}

// RowView is one rendered item table row. Cells align positionally with
// DocumentView.Columns.
type RowView struct {
	Cells []string
}

// TotalLine is one labelled line of the totals block
type TotalLine struct {
	Label string
	Value decimal.Decimal
}

// DocumentView is the template data for one rendered document
type DocumentView struct {
	Title         string
	Number        string
	IssueDate     time.Time
	ValidUntil    *time.Time
	Status        string
	Company       CompanyView
	BillTo        PartyView
	ShipTo        PartyView
	Columns       []string
	Rows          []RowView
	Totals        []TotalLine
	GrandTotal    decimal.Decimal
	AmountInWords string
	Notes         string
	FitOnePage    bool
	Hindi         bool
	Theme         Theme
}

// BuildInvoiceView assembles the template data for an invoice
func BuildInvoiceView(inv *billing.Invoice, co *company.Company) *DocumentView {
	view := buildDocumentView(inv.Number, inv.IssueDate, inv.Status, inv.BillTo, inv.ShipTo,
		inv.Ledger, inv.Tax, inv.Totals, inv.Notes, co)
	view.Title = "TAX INVOICE"
	view.FitOnePage = inv.FitOnePage
	view.Hindi = inv.HindiMode
	return view
}

// BuildQuotationView assembles the template data for a quotation
func BuildQuotationView(q *billing.Quotation, co *company.Company) *DocumentView {
	view := buildDocumentView(q.Number, q.IssueDate, q.Status, q.BillTo, q.ShipTo,
		q.Ledger, q.Tax, q.Totals, q.Notes, co)
	view.Title = "QUOTATION"
	validUntil := q.ValidUntil
	view.ValidUntil = &validUntil
	view.FitOnePage = q.FitOnePage
	view.Hindi = q.HindiMode
	return view
}

func buildDocumentView(number string, issueDate time.Time, status billing.DocumentStatus,
	billTo, shipTo billing.Party, ledger *billing.ItemLedger, tax billing.TaxConfig,
	totals billing.Totals, notes string, co *company.Company) *DocumentView {

	view := &DocumentView{
		Number:    number,
		IssueDate: issueDate,
		Status:    status.String(),
		Company: CompanyView{
			Name:      co.Name,
			Tagline:   co.Tagline,
			Address:   co.Address,
			GSTIN:     co.GSTIN,
			State:     co.State,
			StateCode: co.StateCode,
			Email:     co.Email,
			Phone:     co.Phone,
			Bank:      co.Bank,
		},
		BillTo:        partyView(billTo),
		ShipTo:        partyView(shipTo),
		Notes:         notes,
		GrandTotal:    totals.Total,
		AmountInWords: amountInWords(totals.Total),
		Theme:         ThemeFor(co.TemplateKey),
	}

	columns := ledger.Columns()
	view.Columns = make([]string, len(columns))
	for i, c := range columns {
		view.Columns[i] = c.Name
	}

	for i, row := range ledger.Rows() {
		cells := make([]string, len(columns))
		for j, c := range columns {
			cells[j] = cellValue(c.ID, i, row)
		}
		view.Rows = append(view.Rows, RowView{Cells: cells})
	}

	view.Totals = totalLines(tax, totals)
	return view
}

func partyView(p billing.Party) PartyView {
	return PartyView{
		Name:      p.Name,
		Address:   p.Address,
		GSTIN:     p.GSTIN,
		State:     p.State,
		StateCode: p.StateCode,
	}
}

func cellValue(columnID string, rowIndex int, row billing.ItemRow) string {
	switch columnID {
	case billing.ColumnSerialNo:
		return strconv.Itoa(rowIndex + 1)
	case billing.ColumnDescription:
		return row.Description
	case billing.ColumnHSNSAC:
		return row.HSNSACCode
	case billing.ColumnQuantity:
		return row.Quantity
	case billing.ColumnRate:
		return formatAmount(row.Rate)
	case billing.ColumnAmount:
		return formatAmount(row.Amount)
	default:
		return row.Custom[columnID]
	}
}

func totalLines(tax billing.TaxConfig, totals billing.Totals) []TotalLine {
	lines := []TotalLine{{Label: "Total", Value: totals.Subtotal}}
	if tax.Type == billing.TaxTypeIGST {
		lines = append(lines, TotalLine{
			Label: "IGST @ " + tax.IGSTRate.String() + "%",
			Value: totals.IGST,
		})
	} else {
		lines = append(lines,
			TotalLine{Label: "CGST @ " + tax.CGSTRate.String() + "%", Value: totals.CGST},
			TotalLine{Label: "SGST @ " + tax.SGSTRate.String() + "%", Value: totals.SGST},
		)
	}
	lines = append(lines, TotalLine{Label: "Grand Total", Value: totals.Total})
	return lines
}
