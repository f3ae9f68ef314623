package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuotation(t *testing.T) *Quotation {
	t.Helper()
	issue := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	q, err := NewQuotation("QTN/GDC/2025-26/0001", "GDC", issue, issue.AddDate(0, 1, 0))
	require.NoError(t, err)
	q.ClearDomainEvents()
	return q
}

func TestNewQuotation(t *testing.T) {
	t.Run("defaults validity to one month", func(t *testing.T) {
		issue := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
		q, err := NewQuotation("QTN/GDC/2025-26/0001", "GDC", issue, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, issue.AddDate(0, 1, 0), q.ValidUntil)
		assert.Equal(t, DocumentStatusDraft, q.Status)
	})

	t.Run("validity before issue rejected", func(t *testing.T) {
		issue := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
		_, err := NewQuotation("QTN/GDC/2025-26/0001", "GDC", issue, issue.AddDate(0, 0, -1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INVALID_VALIDITY")
	})
}

func TestQuotation_Totals(t *testing.T) {
	q := newTestQuotation(t)

	rowID := q.Ledger.Rows()[0].ID
	require.NoError(t, q.SetItemField(rowID, ColumnQuantity, "2 pcs"))
	require.NoError(t, q.SetItemField(rowID, ColumnRate, "550"))

	require.NoError(t, q.SetTaxConfig(TaxConfig{
		Type:     TaxTypeIGST,
		IGSTRate: decimal.NewFromInt(18),
	}))

	assert.True(t, q.Totals.Subtotal.Equal(decimal.NewFromInt(1100)))
	assert.True(t, q.Totals.IGST.Equal(decimal.NewFromInt(198)))
	assert.True(t, q.Totals.Total.Equal(decimal.NewFromInt(1298)))
}

func TestQuotation_ConvertToInvoice(t *testing.T) {
	q := newTestQuotation(t)

	_, err := q.AddColumn("Delivery")
	require.NoError(t, err)
	rowID := q.Ledger.Rows()[0].ID
	require.NoError(t, q.SetItemField(rowID, ColumnDescription, "installation service"))
	require.NoError(t, q.SetItemField(rowID, ColumnQuantity, "1"))
	require.NoError(t, q.SetItemField(rowID, ColumnRate, "2500"))
	require.NoError(t, q.SetItemField(rowID, "delivery", "ex works"))
	require.NoError(t, q.SetTaxConfig(TaxConfig{
		Type:     TaxTypeCGSTSGST,
		CGSTRate: decimal.NewFromInt(9),
		SGSTRate: decimal.NewFromInt(9),
	}))
	require.NoError(t, q.SetParties(Party{Name: "Acme Traders"}, Party{Name: "Acme Warehouse"}))
	require.NoError(t, q.SetNotes("Delivery within 2 weeks"))
	require.NoError(t, q.SetLayout(true, false))

	inv, err := q.ConvertToInvoice("INV/GDC/2025-26/0009", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "INV/GDC/2025-26/0009", inv.Number)
	assert.Equal(t, q.CompanyCode, inv.CompanyCode)
	assert.Equal(t, DocumentStatusDraft, inv.Status)
	assert.Equal(t, q.BillTo, inv.BillTo)
	assert.Equal(t, q.Notes, inv.Notes)
	assert.True(t, inv.FitOnePage)

	// Ledger content carried over with fresh row ids
	require.Equal(t, 1, inv.Ledger.RowCount())
	got := inv.Ledger.Rows()[0]
	assert.NotEqual(t, rowID, got.ID)
	assert.Equal(t, "Installation service", got.Description)
	assert.Equal(t, "Ex works", got.Custom["delivery"])

	assert.True(t, inv.Totals.Subtotal.Equal(decimal.NewFromInt(2500)))
	assert.True(t, inv.Totals.Total.Equal(decimal.NewFromInt(2950)))

	// Converting must not mutate the quotation
	assert.Equal(t, "Installation service", q.Ledger.Rows()[0].Description)

	var converted bool
	for _, e := range q.GetDomainEvents() {
		if ce, ok := e.(*QuotationConvertedEvent); ok {
			converted = true
			assert.Equal(t, inv.Number, ce.InvoiceNumber)
		}
	}
	assert.True(t, converted, "expected a converted event")
}

func TestQuotation_ColumnOperationsEmitEvents(t *testing.T) {
	q := newTestQuotation(t)

	col, err := q.AddColumn("batch no")
	require.NoError(t, err)
	assert.Equal(t, "batch_no", col.ID)

	var sawColumns bool
	for _, e := range q.GetDomainEvents() {
		if ce, ok := e.(*QuotationColumnsChangedEvent); ok {
			sawColumns = true
			assert.Equal(t, []string{"Batch no"}, ce.ColumnNames)
			assert.Equal(t, "batch_no", ce.ColumnIDs["Batch no"])
		}
	}
	assert.True(t, sawColumns, "expected a columns changed event")

	q.ClearDomainEvents()
	rowID := q.Ledger.Rows()[0].ID
	require.NoError(t, q.SetItemField(rowID, ColumnRate, "100"))

	var sawItems, sawRecalc bool
	for _, e := range q.GetDomainEvents() {
		switch e.(type) {
		case *QuotationItemsChangedEvent:
			sawItems = true
		case *QuotationRecalculatedEvent:
			sawRecalc = true
		}
	}
	assert.True(t, sawItems, "expected an items changed event")
	assert.True(t, sawRecalc, "expected a recalculated event")
}

func TestQuotation_LifecycleEmitsEvents(t *testing.T) {
	q := newTestQuotation(t)

	require.NoError(t, q.Issue())
	events := q.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeQuotationIssued, events[0].EventType())

	q.ClearDomainEvents()
	require.NoError(t, q.Cancel())
	events = q.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeQuotationCancelled, events[0].EventType())
}

func TestQuotation_ConvertCancelledRejected(t *testing.T) {
	q := newTestQuotation(t)
	require.NoError(t, q.Cancel())

	_, err := q.ConvertToInvoice("INV/GDC/2025-26/0010", time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_STATE")
}

func TestQuotation_IssuedCanConvert(t *testing.T) {
	q := newTestQuotation(t)
	require.NoError(t, q.Issue())

	inv, err := q.ConvertToInvoice("INV/GDC/2025-26/0011", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, DocumentStatusDraft, inv.Status)
}
