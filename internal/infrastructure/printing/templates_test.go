package printing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentHTML(t *testing.T) {
	engine := NewTemplateEngine()
	view := BuildInvoiceView(testInvoice(t), testCompany(t))

	html, err := DocumentHTML(engine, view)
	require.NoError(t, err)

	assert.Contains(t, html, "Global Digital Connect")
	assert.Contains(t, html, "Connecting your business", "gdc theme shows the tagline")
	assert.Contains(t, html, "TAX INVOICE")
	assert.Contains(t, html, "INV/GDC/2025-26/0001")
	assert.Contains(t, html, "10-07-2025")
	assert.Contains(t, html, "Alpha Traders")
	assert.Contains(t, html, "<th>Batch No</th>")
	assert.Contains(t, html, "Lot 42")
	assert.Contains(t, html, "1,100.00")
	assert.Contains(t, html, "CGST @ 9%")
	assert.Contains(t, html, "Rupees One Thousand Two Hundred Ninety Eight Only")
	assert.Contains(t, html, "#1a4f8b")
	assert.Contains(t, html, "Bill To")
	assert.NotContains(t, html, "Valid Until", "invoices carry no validity line")
}

func TestDocumentHTML_HindiMode(t *testing.T) {
	engine := NewTemplateEngine()
	inv := testInvoice(t)
	require.NoError(t, inv.SetLayout(false, true))

	html, err := DocumentHTML(engine, BuildInvoiceView(inv, testCompany(t)))
	require.NoError(t, err)

	assert.Contains(t, html, "सेवा में")
	assert.Contains(t, html, "अधिकृत हस्ताक्षरकर्ता")
	assert.NotContains(t, html, ">Bill To<")
}

func TestDocumentHTML_FitOnePage(t *testing.T) {
	engine := NewTemplateEngine()
	inv := testInvoice(t)
	require.NoError(t, inv.SetLayout(true, false))

	html, err := DocumentHTML(engine, BuildInvoiceView(inv, testCompany(t)))
	require.NoError(t, err)
	assert.Contains(t, html, "font-size: 11px")
	assert.False(t, strings.Contains(html, "font-size: 13px"))
}

func TestDocumentHTML_EscapesPartyInput(t *testing.T) {
	engine := NewTemplateEngine()
	inv := testInvoice(t)
	require.NoError(t, inv.SetNotes(`<script>alert("x")</script>`))

	html, err := DocumentHTML(engine, BuildInvoiceView(inv, testCompany(t)))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}
