package billing

import (
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
)

// Event type constants
const (
	EventTypeInvoiceCreated        = "invoice.created"
	EventTypeInvoiceItemsChanged   = "invoice.items_changed"
	EventTypeInvoiceColumnsChanged = "invoice.columns_changed"
	EventTypeInvoiceRecalculated   = "invoice.recalculated"
	EventTypeInvoiceIssued         = "invoice.issued"
	EventTypeInvoiceCancelled      = "invoice.cancelled"

	EventTypeQuotationCreated        = "quotation.created"
	EventTypeQuotationItemsChanged   = "quotation.items_changed"
	EventTypeQuotationColumnsChanged = "quotation.columns_changed"
	EventTypeQuotationRecalculated   = "quotation.recalculated"
	EventTypeQuotationIssued         = "quotation.issued"
	EventTypeQuotationCancelled      = "quotation.cancelled"
	EventTypeQuotationConverted      = "quotation.converted"
)

// InvoiceCreatedEvent is published when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	Number      string `json:"number"`
	CompanyCode string `json:"company_code"`
}

// NewInvoiceCreatedEvent creates a new invoice created event
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, "Invoice", inv.ID),
		Number:          inv.Number,
		CompanyCode:     inv.CompanyCode,
	}
}

// InvoiceItemsChangedEvent carries the full row list after any item mutation
type InvoiceItemsChangedEvent struct {
	shared.BaseDomainEvent
	Rows []ItemRow `json:"rows"`
}

// NewInvoiceItemsChangedEvent creates an items changed event
func NewInvoiceItemsChangedEvent(inv *Invoice, rows []ItemRow) *InvoiceItemsChangedEvent {
	return &InvoiceItemsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceItemsChanged, "Invoice", inv.ID),
		Rows:            rows,
	}
}

// InvoiceColumnsChangedEvent carries the ordered custom column display names
// and the display-name-to-id mapping after any column mutation.
type InvoiceColumnsChangedEvent struct {
	shared.BaseDomainEvent
	ColumnNames []string          `json:"column_names"`
	ColumnIDs   map[string]string `json:"column_ids"`
}

// NewInvoiceColumnsChangedEvent creates a columns changed event
func NewInvoiceColumnsChangedEvent(inv *Invoice, names []string, ids map[string]string) *InvoiceColumnsChangedEvent {
	return &InvoiceColumnsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceColumnsChanged, "Invoice", inv.ID),
		ColumnNames:     names,
		ColumnIDs:       ids,
	}
}

// InvoiceRecalculatedEvent is published whenever the invoice totals change
type InvoiceRecalculatedEvent struct {
	shared.BaseDomainEvent
	Totals Totals `json:"totals"`
}

// NewInvoiceRecalculatedEvent creates a recalculated event
func NewInvoiceRecalculatedEvent(inv *Invoice) *InvoiceRecalculatedEvent {
	return &InvoiceRecalculatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceRecalculated, "Invoice", inv.ID),
		Totals:          inv.Totals,
	}
}

// InvoiceIssuedEvent is published when an invoice is issued
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Totals Totals `json:"totals"`
}

// NewInvoiceIssuedEvent creates an issued event
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, "Invoice", inv.ID),
		Number:          inv.Number,
		Totals:          inv.Totals,
	}
}

// InvoiceCancelledEvent is published when an invoice is cancelled
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewInvoiceCancelledEvent creates a cancelled event
func NewInvoiceCancelledEvent(inv *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, "Invoice", inv.ID),
		Number:          inv.Number,
	}
}

// QuotationCreatedEvent is published when a new quotation is created
type QuotationCreatedEvent struct {
	shared.BaseDomainEvent
	Number      string `json:"number"`
	CompanyCode string `json:"company_code"`
}

// NewQuotationCreatedEvent creates a quotation created event
func NewQuotationCreatedEvent(q *Quotation) *QuotationCreatedEvent {
	return &QuotationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationCreated, "Quotation", q.ID),
		Number:          q.Number,
		CompanyCode:     q.CompanyCode,
	}
}

// QuotationItemsChangedEvent carries the full row list after any item mutation
type QuotationItemsChangedEvent struct {
	shared.BaseDomainEvent
	Rows []ItemRow `json:"rows"`
}

// NewQuotationItemsChangedEvent creates an items changed event
func NewQuotationItemsChangedEvent(q *Quotation, rows []ItemRow) *QuotationItemsChangedEvent {
	return &QuotationItemsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationItemsChanged, "Quotation", q.ID),
		Rows:            rows,
	}
}

// QuotationColumnsChangedEvent carries the ordered custom column display names
// and the display-name-to-id mapping after any column mutation.
type QuotationColumnsChangedEvent struct {
	shared.BaseDomainEvent
	ColumnNames []string          `json:"column_names"`
	ColumnIDs   map[string]string `json:"column_ids"`
}

// NewQuotationColumnsChangedEvent creates a columns changed event
func NewQuotationColumnsChangedEvent(q *Quotation, names []string, ids map[string]string) *QuotationColumnsChangedEvent {
	return &QuotationColumnsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationColumnsChanged, "Quotation", q.ID),
		ColumnNames:     names,
		ColumnIDs:       ids,
	}
}

// QuotationRecalculatedEvent is published whenever the quotation totals change
type QuotationRecalculatedEvent struct {
	shared.BaseDomainEvent
	Totals Totals `json:"totals"`
}

// NewQuotationRecalculatedEvent creates a recalculated event
func NewQuotationRecalculatedEvent(q *Quotation) *QuotationRecalculatedEvent {
	return &QuotationRecalculatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationRecalculated, "Quotation", q.ID),
		Totals:          q.Totals,
	}
}

// QuotationIssuedEvent is published when a quotation is issued
type QuotationIssuedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Totals Totals `json:"totals"`
}

// NewQuotationIssuedEvent creates an issued event
func NewQuotationIssuedEvent(q *Quotation) *QuotationIssuedEvent {
	return &QuotationIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationIssued, "Quotation", q.ID),
		Number:          q.Number,
		Totals:          q.Totals,
	}
}

// QuotationCancelledEvent is published when a quotation is cancelled
type QuotationCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewQuotationCancelledEvent creates a cancelled event
func NewQuotationCancelledEvent(q *Quotation) *QuotationCancelledEvent {
	return &QuotationCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationCancelled, "Quotation", q.ID),
		Number:          q.Number,
	}
}

// QuotationConvertedEvent is published when a quotation is converted into an invoice
type QuotationConvertedEvent struct {
	shared.BaseDomainEvent
	QuotationNumber string `json:"quotation_number"`
	InvoiceNumber   string `json:"invoice_number"`
}

// NewQuotationConvertedEvent creates a quotation converted event
func NewQuotationConvertedEvent(q *Quotation, invoiceNumber string) *QuotationConvertedEvent {
	return &QuotationConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationConverted, "Quotation", q.ID),
		QuotationNumber: q.Number,
		InvoiceNumber:   invoiceNumber,
	}
}
