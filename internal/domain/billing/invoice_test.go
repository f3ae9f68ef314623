package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice("INV/GDC/2025-26/0001", "GDC", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	inv.ClearDomainEvents()
	return inv
}

// fillThreeRows fills the ledger with the 1100 / 575 / 900 amounts used
// across the totals tests.
func fillThreeRows(t *testing.T, inv *Invoice) {
	t.Helper()
	first := inv.Ledger.Rows()[0].ID
	require.NoError(t, inv.SetItemField(first, ColumnQuantity, "2 pcs"))
	require.NoError(t, inv.SetItemField(first, ColumnRate, "550"))

	second, err := inv.AddItem()
	require.NoError(t, err)
	require.NoError(t, inv.SetItemField(second.ID, ColumnQuantity, "2.5"))
	require.NoError(t, inv.SetItemField(second.ID, ColumnRate, "230"))

	third, err := inv.AddItem()
	require.NoError(t, err)
	require.NoError(t, inv.SetItemField(third.ID, ColumnQuantity, "1"))
	require.NoError(t, inv.SetItemField(third.ID, ColumnRate, "900"))
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft with one default row", func(t *testing.T) {
		inv, err := NewInvoice("INV/GDC/2025-26/0001", "GDC", time.Time{})
		require.NoError(t, err)
		assert.Equal(t, DocumentStatusDraft, inv.Status)
		assert.Equal(t, 1, inv.Ledger.RowCount())
		assert.True(t, inv.Totals.Total.IsZero())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())
	})

	t.Run("empty number rejected", func(t *testing.T) {
		_, err := NewInvoice("", "GDC", time.Time{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INVALID_NUMBER")
	})

	t.Run("empty company rejected", func(t *testing.T) {
		_, err := NewInvoice("INV/X/2025-26/0001", "  ", time.Time{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INVALID_COMPANY")
	})
}

func TestInvoice_TotalsFlow(t *testing.T) {
	inv := newTestInvoice(t)
	fillThreeRows(t, inv)

	require.NoError(t, inv.SetTaxConfig(TaxConfig{
		Type:     TaxTypeCGSTSGST,
		CGSTRate: decimal.NewFromInt(9),
		SGSTRate: decimal.NewFromInt(9),
	}))

	assert.True(t, inv.Totals.Subtotal.Equal(decimal.NewFromInt(2575)))
	assert.True(t, inv.Totals.CGST.Equal(decimal.NewFromFloat(231.75)))
	assert.True(t, inv.Totals.SGST.Equal(decimal.NewFromFloat(231.75)))
	assert.True(t, inv.Totals.Tax.Equal(decimal.NewFromFloat(463.5)))
	assert.True(t, inv.Totals.Total.Equal(decimal.NewFromFloat(3038.5)))

	// Removing a row recalculates
	rows := inv.Ledger.Rows()
	require.NoError(t, inv.RemoveItem(rows[2].ID))
	assert.True(t, inv.Totals.Subtotal.Equal(decimal.NewFromInt(1675)))
}

func TestInvoice_PercentRateIncrease(t *testing.T) {
	// Base rates 550/230/900 come from 500/200/750 with +10%, +15%, +20%
	// applied upstream; totals must match the canonical 2575 subtotal.
	inv := newTestInvoice(t)

	base := []struct {
		rate    decimal.Decimal
		percent decimal.Decimal
		qty     string
	}{
		{decimal.NewFromInt(500), decimal.NewFromInt(10), "2"},
		{decimal.NewFromInt(200), decimal.NewFromInt(15), "2.5"},
		{decimal.NewFromInt(750), decimal.NewFromInt(20), "1"},
	}

	rowID := inv.Ledger.Rows()[0].ID
	for i, b := range base {
		if i > 0 {
			row, err := inv.AddItem()
			require.NoError(t, err)
			rowID = row.ID
		}
		marked := b.rate.Mul(decimal.NewFromInt(100).Add(b.percent)).Div(decimal.NewFromInt(100))
		require.NoError(t, inv.SetItemField(rowID, ColumnQuantity, b.qty))
		require.NoError(t, inv.SetItemField(rowID, ColumnRate, marked.String()))
	}

	assert.True(t, inv.Totals.Subtotal.Equal(decimal.NewFromInt(2575)),
		"subtotal = %s", inv.Totals.Subtotal)
}

func TestInvoice_ColumnOperations(t *testing.T) {
	inv := newTestInvoice(t)

	col, err := inv.AddColumn("batch no")
	require.NoError(t, err)
	assert.Equal(t, "batch_no", col.ID)

	rowID := inv.Ledger.Rows()[0].ID
	require.NoError(t, inv.SetItemField(rowID, "batch_no", "lot 7"))
	assert.Equal(t, "Lot 7", inv.Ledger.Rows()[0].Custom["batch_no"])

	var sawColumns bool
	for _, e := range inv.GetDomainEvents() {
		if ce, ok := e.(*InvoiceColumnsChangedEvent); ok {
			sawColumns = true
			assert.Equal(t, []string{"Batch no"}, ce.ColumnNames)
			assert.Equal(t, "batch_no", ce.ColumnIDs["Batch no"])
		}
	}
	assert.True(t, sawColumns, "expected a columns changed event")

	require.NoError(t, inv.RemoveColumn("batch_no"))
	assert.Empty(t, inv.Ledger.CustomColumns())
}

func TestInvoice_Lifecycle(t *testing.T) {
	inv := newTestInvoice(t)

	require.NoError(t, inv.Issue())
	assert.Equal(t, DocumentStatusIssued, inv.Status)

	// Issued documents are frozen
	err := inv.SetNotes("late edit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_STATE")
	_, err = inv.AddItem()
	require.Error(t, err)

	assert.Error(t, inv.Issue(), "cannot issue twice")

	require.NoError(t, inv.Cancel())
	assert.Equal(t, DocumentStatusCancelled, inv.Status)
	assert.Error(t, inv.Cancel())
}

func TestInvoice_LayoutAndParties(t *testing.T) {
	inv := newTestInvoice(t)

	require.NoError(t, inv.SetLayout(true, true))
	assert.True(t, inv.FitOnePage)
	assert.True(t, inv.HindiMode)

	billTo := Party{Name: "Acme Traders", GSTIN: "22AAAAA0000A1Z5", State: "Chhattisgarh", StateCode: "22"}
	require.NoError(t, inv.SetParties(billTo, billTo))
	assert.Equal(t, "Acme Traders", inv.BillTo.Name)
	assert.Equal(t, "22", inv.ShipTo.StateCode)
}

func TestFiscalYear(t *testing.T) {
	assert.Equal(t, "2025-26", FiscalYear(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-26", FiscalYear(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-25", FiscalYear(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDocumentNumber(t *testing.T) {
	got := FormatDocumentNumber("INV", "GDC", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), 42)
	assert.Equal(t, "INV/GDC/2025-26/0042", got)
}
