package report

import (
	"bytes"
	"strings"

	"github.com/amitkkna/quote-sub001/internal/domain/report"
	"github.com/shopspring/decimal"
)

// Every field is quoted so spreadsheet imports never reinterpret
// invoice numbers, GSTINs, or fixed-point amounts. encoding/csv only
// quotes when forced to, so the rows are written by hand.
func writeCSVRow(buf *bytes.Buffer, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func registerCSV(reg *report.InvoiceRegister) []byte {
	var buf bytes.Buffer
	writeCSVRow(&buf,
		"Invoice No", "Date", "Party", "GSTIN", "Tax Type", "Status",
		"Subtotal", "CGST", "SGST", "IGST", "Tax", "Total")

	for _, row := range reg.Rows {
		writeCSVRow(&buf,
			row.Number,
			row.IssueDate.Format("02-01-2006"),
			row.PartyName,
			row.PartyGSTIN,
			row.TaxType,
			row.Status,
			money(row.Subtotal),
			money(row.CGST),
			money(row.SGST),
			money(row.IGST),
			money(row.Tax),
			money(row.Total))
	}

	writeCSVRow(&buf,
		"TOTAL", "", "", "", "", "",
		money(reg.Subtotal), "", "", "", money(reg.Tax), money(reg.Total))
	return buf.Bytes()
}
