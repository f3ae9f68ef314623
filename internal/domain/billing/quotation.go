package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Quotation is the aggregate root for a sales quotation. It shares the
// item ledger and tax semantics of an invoice but carries a validity date
// and can be converted into a draft invoice.
type Quotation struct {
	shared.BaseAggregateRoot
	Number      string
	CompanyCode string
	IssueDate   time.Time
	ValidUntil  time.Time
	BillTo      Party
	ShipTo      Party
	Ledger      *ItemLedger
	Tax         TaxConfig
	Totals      Totals
	Notes       string
	FitOnePage  bool
	HindiMode   bool
	Status      DocumentStatus
}

// NewQuotation creates a new draft quotation with an empty ledger
func NewQuotation(number, companyCode string, issueDate, validUntil time.Time) (*Quotation, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quotation number cannot be empty")
	}
	if strings.TrimSpace(companyCode) == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company code cannot be empty")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	if validUntil.IsZero() {
		validUntil = issueDate.AddDate(0, 1, 0)
	}
	if validUntil.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_VALIDITY", "Valid-until date cannot precede the issue date")
	}

	q := &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CompanyCode:       companyCode,
		IssueDate:         issueDate,
		ValidUntil:        validUntil,
		Ledger:            NewItemLedger(),
		Tax:               DefaultTaxConfig(),
		Status:            DocumentStatusDraft,
	}
	q.Totals = q.Tax.Compute(q.Ledger.Amounts())
	q.AddDomainEvent(NewQuotationCreatedEvent(q))
	return q, nil
}

// CanModify returns true if the quotation contents can still change
func (q *Quotation) CanModify() bool {
	return q.Status == DocumentStatusDraft
}

func (q *Quotation) guardDraft() error {
	if !q.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotations can be modified")
	}
	return nil
}

// SetParties sets the Bill-To and Ship-To details
func (q *Quotation) SetParties(billTo, shipTo Party) error {
	if err := q.guardDraft(); err != nil {
		return err
	}
	q.BillTo = billTo
	q.ShipTo = shipTo
	q.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the free-text notes shown under the item table
func (q *Quotation) SetNotes(notes string) error {
	if err := q.guardDraft(); err != nil {
		return err
	}
	q.Notes = notes
	q.UpdatedAt = time.Now()
	return nil
}

// SetLayout sets the PDF layout flags
func (q *Quotation) SetLayout(fitOnePage, hindiMode bool) error {
	if err := q.guardDraft(); err != nil {
		return err
	}
	q.FitOnePage = fitOnePage
	q.HindiMode = hindiMode
	q.UpdatedAt = time.Now()
	return nil
}

// SetValidUntil updates the validity date
func (q *Quotation) SetValidUntil(validUntil time.Time) error {
	if err := q.guardDraft(); err != nil {
		return err
	}
	if validUntil.Before(q.IssueDate) {
		return shared.NewDomainError("INVALID_VALIDITY", "Valid-until date cannot precede the issue date")
	}
	q.ValidUntil = validUntil
	q.UpdatedAt = time.Now()
	return nil
}

// SetTaxConfig replaces the tax configuration and recalculates totals
func (q *Quotation) SetTaxConfig(cfg TaxConfig) error {
	if err := q.guardDraft(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	q.Tax = cfg
	q.recalculate()
	return nil
}

// AddItem appends a new row with default values
func (q *Quotation) AddItem() (ItemRow, error) {
	if err := q.guardDraft(); err != nil {
		return ItemRow{}, err
	}
	row := q.Ledger.AddRow()
	q.recalculate()
	return row, nil
}

// RemoveItem removes a row; removing the sole remaining row is a no-op
func (q *Quotation) RemoveItem(rowID uuid.UUID) error {
	if err := q.guardDraft(); err != nil {
		return err
	}
	if q.Ledger.RemoveRow(rowID) {
		q.recalculate()
	}
	return nil
}

// SetItemField updates one field of one row and recalculates totals
func (q *Quotation) SetItemField(rowID uuid.UUID, columnID, value string) error {
	if err := q.guardDraft(); err != nil {
		return err
	}
	q.Ledger.SetField(rowID, columnID, value)
	q.recalculate()
	return nil
}

// AddColumn defines a new custom column on the item table
func (q *Quotation) AddColumn(displayName string) (Column, error) {
	if err := q.guardDraft(); err != nil {
		return Column{}, err
	}
	col, err := q.Ledger.AddColumn(displayName)
	if err != nil {
		return Column{}, err
	}
	q.flushLedgerChanges()
	q.UpdatedAt = time.Now()
	return col, nil
}

// RemoveColumn removes a custom column from the item table
func (q *Quotation) RemoveColumn(columnID string) error {
	if err := q.guardDraft(); err != nil {
		return err
	}
	if q.Ledger.RemoveColumn(columnID) {
		q.flushLedgerChanges()
		q.UpdatedAt = time.Now()
	}
	return nil
}

// Issue finalizes the quotation
func (q *Quotation) Issue() error {
	if !q.Status.CanTransitionTo(DocumentStatusIssued) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot issue quotation in %s status", q.Status))
	}
	q.Status = DocumentStatusIssued
	q.UpdatedAt = time.Now()
	q.AddDomainEvent(NewQuotationIssuedEvent(q))
	return nil
}

// Cancel cancels the quotation
func (q *Quotation) Cancel() error {
	if !q.Status.CanTransitionTo(DocumentStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel quotation in %s status", q.Status))
	}
	q.Status = DocumentStatusCancelled
	q.UpdatedAt = time.Now()
	q.AddDomainEvent(NewQuotationCancelledEvent(q))
	return nil
}

// ConvertToInvoice creates a draft invoice carrying over the quotation's
// parties, items, custom columns, tax configuration, notes and layout.
// The cloned ledger gets fresh row ids so the two documents never share state.
func (q *Quotation) ConvertToInvoice(invoiceNumber string, issueDate time.Time) (*Invoice, error) {
	if q.Status == DocumentStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot convert a cancelled quotation")
	}
	if strings.TrimSpace(invoiceNumber) == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            invoiceNumber,
		CompanyCode:       q.CompanyCode,
		IssueDate:         issueDate,
		BillTo:            q.BillTo,
		ShipTo:            q.ShipTo,
		Ledger:            q.Ledger.Clone(),
		Tax:               q.Tax,
		Notes:             q.Notes,
		FitOnePage:        q.FitOnePage,
		HindiMode:         q.HindiMode,
		Status:            DocumentStatusDraft,
	}
	inv.Totals = inv.Tax.Compute(inv.Ledger.Amounts())
	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	q.AddDomainEvent(NewQuotationConvertedEvent(q, invoiceNumber))
	return inv, nil
}

// recalculate recomputes totals and converts the ledger's pending change
// notifications into domain events.
func (q *Quotation) recalculate() {
	q.flushLedgerChanges()
	q.Totals = q.Tax.Compute(q.Ledger.Amounts())
	q.UpdatedAt = time.Now()
	q.AddDomainEvent(NewQuotationRecalculatedEvent(q))
}

func (q *Quotation) flushLedgerChanges() {
	for _, ch := range q.Ledger.Changes() {
		switch c := ch.(type) {
		case RowsChanged:
			q.AddDomainEvent(NewQuotationItemsChangedEvent(q, c.Rows))
		case ColumnsChanged:
			q.AddDomainEvent(NewQuotationColumnsChangedEvent(q, c.Names, c.IDs))
		}
	}
	q.Ledger.ClearChanges()
}
