// Package billing contains the invoicing domain: the item ledger with its
// dynamic column model, GST tax computation, and the Invoice and Quotation
// aggregates built on top of them.
package billing
