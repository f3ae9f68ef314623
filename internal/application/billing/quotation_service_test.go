package billing

import (
	"context"
	"testing"
	"time"

	reportapp "github.com/amitkkna/quote-sub001/internal/application/report"
	domainbilling "github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotationService_CreateAndEdit(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	created, err := f.quotations.Create(ctx, CreateDocumentRequest{CompanyCode: "GDC", IssueDate: issueDateJuly()})
	require.NoError(t, err)
	assert.Equal(t, "QTN/GDC/2025-26/0001", created.Number)
	assert.True(t, created.ValidUntil.After(created.IssueDate))

	id := uuid.MustParse(created.ID)
	rowID := uuid.MustParse(created.Items[0].ID)

	_, err = f.quotations.SetItemField(ctx, id, rowID, SetItemFieldRequest{ColumnID: domainbilling.ColumnRate, Value: "2500"})
	require.NoError(t, err)
	resp, err := f.quotations.SetTax(ctx, id, TaxConfigRequest{Type: "igst", IGSTRate: decimal.NewFromInt(18)})
	require.NoError(t, err)
	assert.Equal(t, "2500", resp.Totals.Subtotal)
	assert.Equal(t, "450", resp.Totals.IGSTAmount)
	assert.Equal(t, "2950", resp.Totals.Total)
}

func TestQuotationService_ConvertToInvoice(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	created, err := f.quotations.Create(ctx, CreateDocumentRequest{CompanyCode: "GDC", IssueDate: issueDateJuly()})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)
	rowID := uuid.MustParse(created.Items[0].ID)

	_, err = f.quotations.SetItemField(ctx, id, rowID, SetItemFieldRequest{ColumnID: domainbilling.ColumnDescription, Value: "installation"})
	require.NoError(t, err)
	_, err = f.quotations.SetItemField(ctx, id, rowID, SetItemFieldRequest{ColumnID: domainbilling.ColumnRate, Value: "2500"})
	require.NoError(t, err)
	_, err = f.quotations.AddColumn(ctx, id, AddColumnRequest{DisplayName: "Delivery"})
	require.NoError(t, err)

	inv, err := f.quotations.ConvertToInvoice(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, inv.Number, "INV/GDC/")
	assert.Equal(t, "DRAFT", inv.Status)
	assert.Equal(t, "Installation", inv.Items[0].Description)
	assert.Equal(t, "2500", inv.Totals.Subtotal)
	require.Len(t, inv.Columns, 7)

	// The converted invoice is persisted and retrievable
	loaded, err := f.invoices.Get(ctx, uuid.MustParse(inv.ID))
	require.NoError(t, err)
	assert.Equal(t, inv.Number, loaded.Number)
}

func TestQuotationService_ConvertInvalidatesReportCache(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	created, err := f.quotations.Create(ctx, CreateDocumentRequest{CompanyCode: "GDC", IssueDate: issueDateJuly()})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// Conversion issues the invoice at the current date
	now := time.Now().UTC()
	period := reportapp.RangeRequest{
		CompanyCode: "GDC",
		StartDate:   now.AddDate(0, 0, -1),
		EndDate:     now.AddDate(0, 0, 1),
	}

	reg, err := f.reports.InvoiceRegister(ctx, period)
	require.NoError(t, err)
	require.Equal(t, 0, reg.Count)

	inv, err := f.quotations.ConvertToInvoice(ctx, id)
	require.NoError(t, err)

	reg, err = f.reports.InvoiceRegister(ctx, period)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Count, "register reflects the converted invoice immediately")
	assert.Equal(t, inv.Number, reg.Rows[0].Number)
}

func TestQuotationService_CancelBlocksConversion(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	created, err := f.quotations.Create(ctx, CreateDocumentRequest{CompanyCode: "GDC", IssueDate: issueDateJuly()})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = f.quotations.Cancel(ctx, id)
	require.NoError(t, err)

	_, err = f.quotations.ConvertToInvoice(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_STATE")
}
