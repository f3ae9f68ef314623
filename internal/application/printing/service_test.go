package printing

import (
	"context"
	"testing"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/domain/company"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	infra "github.com/amitkkna/quote-sub001/internal/infrastructure/printing"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubRenderer captures the render request and returns fixed bytes
type stubRenderer struct {
	lastRequest *infra.RenderRequest
}

func (r *stubRenderer) Render(ctx context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	r.lastRequest = req
	return &infra.RenderResult{PDFData: []byte("%PDF-1.7 stub"), RenderDuration: time.Millisecond}, nil
}

func (r *stubRenderer) Close() error { return nil }

type pdfFixture struct {
	service  *Service
	renderer *stubRenderer
	invoices billing.InvoiceRepository
}

func setupPDFService(t *testing.T) *pdfFixture {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	companies := persistence.NewGormCompanyRepository(db.DB)
	co, err := company.NewCompany("GDC", "Global Digital Connect", "22AAAAA0000A1Z5")
	require.NoError(t, err)
	require.NoError(t, companies.Save(context.Background(), co))

	invoices := persistence.NewGormInvoiceRepository(db.DB)
	quotations := persistence.NewGormQuotationRepository(db.DB)
	renderer := &stubRenderer{}

	service := NewService(invoices, quotations, companies,
		infra.NewTemplateEngine(), renderer,
		RenderOptions{PaperWidth: 8.27, PaperHeight: 11.69, Timeout: 30 * time.Second},
		zap.NewNop())
	return &pdfFixture{service: service, renderer: renderer, invoices: invoices}
}

func TestService_InvoicePDF(t *testing.T) {
	f := setupPDFService(t)
	ctx := context.Background()

	inv, err := billing.NewInvoice("INV/GDC/2025-26/0042", "GDC",
		time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	rowID := inv.Ledger.Rows()[0].ID
	require.NoError(t, inv.SetItemField(rowID, "description", "signage work"))
	require.NoError(t, inv.SetItemField(rowID, "rate", "2575"))
	require.NoError(t, inv.SetTaxConfig(billing.TaxConfig{
		Type:     billing.TaxTypeCGSTSGST,
		CGSTRate: decimal.NewFromInt(9),
		SGSTRate: decimal.NewFromInt(9),
	}))
	require.NoError(t, f.invoices.Save(ctx, inv))

	doc, err := f.service.InvoicePDF(ctx, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, "INV-GDC-2025-26-0042.pdf", doc.Filename)
	assert.Equal(t, []byte("%PDF-1.7 stub"), doc.Data)

	req := f.renderer.lastRequest
	require.NotNil(t, req)
	assert.Equal(t, "INV/GDC/2025-26/0042", req.Title)
	assert.Equal(t, 8.27, req.PaperWidth)
	assert.Contains(t, req.HTML, "TAX INVOICE")
	assert.Contains(t, req.HTML, "Signage work")
	assert.Contains(t, req.HTML, "3,038.50")
}

func TestService_QuotationPDF(t *testing.T) {
	f := setupPDFService(t)
	ctx := context.Background()

	db := f.service.quotations
	issued := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	q, err := billing.NewQuotation("QTN/GDC/2025-26/0007", "GDC", issued, issued.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NoError(t, db.Save(ctx, q))

	doc, err := f.service.QuotationPDF(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "QTN-GDC-2025-26-0007.pdf", doc.Filename)
	assert.Contains(t, f.renderer.lastRequest.HTML, "QUOTATION")
	assert.Contains(t, f.renderer.lastRequest.HTML, "Valid Until")
}

func TestService_InvoicePDF_NotFound(t *testing.T) {
	f := setupPDFService(t)
	_, err := f.service.InvoicePDF(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
