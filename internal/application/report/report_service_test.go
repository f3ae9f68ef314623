package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/cache"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportFixture struct {
	service  *Service
	invoices *persistence.GormInvoiceRepository
}

func setupReportService(t *testing.T) *reportFixture {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	invoices := persistence.NewGormInvoiceRepository(db.DB)
	service := NewService(invoices, cache.NewInMemoryReportCache(), time.Minute, zap.NewNop())
	return &reportFixture{service: service, invoices: invoices}
}

func seedInvoice(t *testing.T, f *reportFixture, number string, issued time.Time, cfg billing.TaxConfig, party string, cancelled bool) {
	t.Helper()
	inv, err := billing.NewInvoice(number, "GDC", issued)
	require.NoError(t, err)

	rowID := inv.Ledger.Rows()[0].ID
	require.NoError(t, inv.SetItemField(rowID, "description", "printing charges"))
	require.NoError(t, inv.SetItemField(rowID, "rate", "1100"))
	require.NoError(t, inv.SetTaxConfig(cfg))
	require.NoError(t, inv.SetParties(billing.Party{Name: party, GSTIN: "22AAAAA0000A1Z5"}, billing.Party{}))
	if cancelled {
		require.NoError(t, inv.Cancel())
	}
	require.NoError(t, f.invoices.Save(context.Background(), inv))
}

func intraState(rate string) billing.TaxConfig {
	half := decimal.RequireFromString(rate).Div(decimal.NewFromInt(2))
	return billing.TaxConfig{Type: billing.TaxTypeCGSTSGST, CGSTRate: half, SGSTRate: half}
}

func julyRange() RangeRequest {
	return RangeRequest{
		CompanyCode: "GDC",
		StartDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_InvoiceRegister(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	seedInvoice(t, f, "INV/GDC/2025-26/0001", day, intraState("18"), "Alpha Traders", false)
	seedInvoice(t, f, "INV/GDC/2025-26/0002", day.AddDate(0, 0, 2), intraState("18"), "Beta Mills", false)
	seedInvoice(t, f, "INV/GDC/2025-26/0003", day.AddDate(0, 0, 4), intraState("18"), "Gamma Works", true)

	reg, err := f.service.InvoiceRegister(ctx, julyRange())
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Count, "cancelled invoices stay listed")
	assert.Equal(t, "CANCELLED", reg.Rows[2].Status)

	// Totals exclude the cancelled invoice: 2 x (1100 + 198).
	assert.Equal(t, "2200.00", reg.Subtotal.StringFixed(2))
	assert.Equal(t, "396.00", reg.Tax.StringFixed(2))
	assert.Equal(t, "2596.00", reg.Total.StringFixed(2))
	assert.Equal(t, "Alpha Traders", reg.Rows[0].PartyName)
}

func TestService_InvoiceRegister_Caching(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	seedInvoice(t, f, "INV/GDC/2025-26/0001", day, intraState("18"), "Alpha Traders", false)

	reg, err := f.service.InvoiceRegister(ctx, julyRange())
	require.NoError(t, err)
	require.Equal(t, 1, reg.Count)

	seedInvoice(t, f, "INV/GDC/2025-26/0002", day, intraState("18"), "Beta Mills", false)

	cached, err := f.service.InvoiceRegister(ctx, julyRange())
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Count, "served from cache until invalidated")

	f.service.InvalidateCache(ctx)
	fresh, err := f.service.InvoiceRegister(ctx, julyRange())
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Count)
}

func TestService_GSTSummary(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	seedInvoice(t, f, "INV/GDC/2025-26/0001", day, intraState("18"), "Alpha Traders", false)
	seedInvoice(t, f, "INV/GDC/2025-26/0002", day, intraState("18"), "Beta Mills", false)
	seedInvoice(t, f, "INV/GDC/2025-26/0003", day, billing.TaxConfig{
		Type:     billing.TaxTypeIGST,
		IGSTRate: decimal.NewFromInt(12),
	}, "Delta Exports", false)

	summary, err := f.service.GSTSummary(ctx, julyRange())
	require.NoError(t, err)
	require.Len(t, summary.Buckets, 2)

	intra := summary.Buckets[0]
	assert.Equal(t, "cgst_sgst", intra.TaxType)
	assert.Equal(t, "18", intra.Rate.String())
	assert.Equal(t, 2, intra.InvoiceCount)
	assert.Equal(t, "2200.00", intra.TaxableValue.StringFixed(2))
	assert.Equal(t, "198.00", intra.CGST.StringFixed(2))
	assert.Equal(t, "198.00", intra.SGST.StringFixed(2))
	assert.Equal(t, "396.00", intra.Tax.StringFixed(2))

	inter := summary.Buckets[1]
	assert.Equal(t, "igst", inter.TaxType)
	assert.Equal(t, "12", inter.Rate.String())
	assert.Equal(t, "132.00", inter.IGST.StringFixed(2))

	assert.Equal(t, "3300.00", summary.TaxableValue.StringFixed(2))
	assert.Equal(t, "528.00", summary.Tax.StringFixed(2))
}

func TestService_ExportRegisterCSV(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	seedInvoice(t, f, "INV/GDC/2025-26/0001", day, intraState("18"), `Alpha "AT" Traders`, false)

	out, err := f.service.ExportRegisterCSV(ctx, julyRange())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\r\n"), "\r\n")
	require.Len(t, lines, 3, "header, one row, totals")
	assert.Equal(t, `"Invoice No","Date","Party","GSTIN","Tax Type","Status","Subtotal","CGST","SGST","IGST","Tax","Total"`, lines[0])
	assert.Contains(t, lines[1], `"INV/GDC/2025-26/0001"`)
	assert.Contains(t, lines[1], `"10-07-2025"`)
	assert.Contains(t, lines[1], `"Alpha ""AT"" Traders"`, "embedded quotes are doubled")
	assert.Contains(t, lines[1], `"1298.00"`)
	assert.True(t, strings.HasPrefix(lines[2], `"TOTAL"`))
	assert.Contains(t, lines[2], `"1100.00"`)
}
