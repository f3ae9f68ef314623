package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentStatus represents the lifecycle status of an invoice or quotation
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusIssued    DocumentStatus = "ISSUED"
	DocumentStatusCancelled DocumentStatus = "CANCELLED"
)

// IsValid checks if the status is a known DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusIssued, DocumentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DocumentStatus) CanTransitionTo(target DocumentStatus) bool {
	switch s {
	case DocumentStatusDraft:
		return target == DocumentStatusIssued || target == DocumentStatusCancelled
	case DocumentStatusIssued:
		return target == DocumentStatusCancelled
	}
	return false
}

// Party holds the Bill-To or Ship-To details of a document
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
}

// Invoice is the aggregate root for a GST tax invoice. It owns an item
// ledger and a tax configuration and keeps its totals consistent with both.
type Invoice struct {
	shared.BaseAggregateRoot
	Number      string
	CompanyCode string
	IssueDate   time.Time
	BillTo      Party
	ShipTo      Party
	Ledger      *ItemLedger
	Tax         TaxConfig
	Totals      Totals
	Notes       string
	// FitOnePage asks the PDF renderer to compress the layout onto a
	// single page; HindiMode selects the Hindi template variant.
	FitOnePage bool
	HindiMode  bool
	Status     DocumentStatus
}

// NewInvoice creates a new draft invoice with an empty ledger
func NewInvoice(number, companyCode string, issueDate time.Time) (*Invoice, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if strings.TrimSpace(companyCode) == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company code cannot be empty")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CompanyCode:       companyCode,
		IssueDate:         issueDate,
		Ledger:            NewItemLedger(),
		Tax:               DefaultTaxConfig(),
		Status:            DocumentStatusDraft,
	}
	inv.Totals = inv.Tax.Compute(inv.Ledger.Amounts())
	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))
	return inv, nil
}

// CanModify returns true if the invoice contents can still change
func (inv *Invoice) CanModify() bool {
	return inv.Status == DocumentStatusDraft
}

func (inv *Invoice) guardDraft() error {
	if !inv.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be modified")
	}
	return nil
}

// SetParties sets the Bill-To and Ship-To details
func (inv *Invoice) SetParties(billTo, shipTo Party) error {
	if err := inv.guardDraft(); err != nil {
		return err
	}
	inv.BillTo = billTo
	inv.ShipTo = shipTo
	inv.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the free-text notes shown under the item table
func (inv *Invoice) SetNotes(notes string) error {
	if err := inv.guardDraft(); err != nil {
		return err
	}
	inv.Notes = notes
	inv.UpdatedAt = time.Now()
	return nil
}

// SetLayout sets the PDF layout flags
func (inv *Invoice) SetLayout(fitOnePage, hindiMode bool) error {
	if err := inv.guardDraft(); err != nil {
		return err
	}
	inv.FitOnePage = fitOnePage
	inv.HindiMode = hindiMode
	inv.UpdatedAt = time.Now()
	return nil
}

// SetTaxConfig replaces the tax configuration and recalculates totals
func (inv *Invoice) SetTaxConfig(cfg TaxConfig) error {
	if err := inv.guardDraft(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	inv.Tax = cfg
	inv.recalculate()
	return nil
}

// AddItem appends a new row with default values
func (inv *Invoice) AddItem() (ItemRow, error) {
	if err := inv.guardDraft(); err != nil {
		return ItemRow{}, err
	}
	row := inv.Ledger.AddRow()
	inv.recalculate()
	return row, nil
}

// RemoveItem removes a row. Removing the sole remaining row is refused
// without error, matching the ledger's never-empty invariant.
func (inv *Invoice) RemoveItem(rowID uuid.UUID) error {
	if err := inv.guardDraft(); err != nil {
		return err
	}
	if inv.Ledger.RemoveRow(rowID) {
		inv.recalculate()
	}
	return nil
}

// SetItemField updates one field of one row and recalculates totals
func (inv *Invoice) SetItemField(rowID uuid.UUID, columnID, value string) error {
	if err := inv.guardDraft(); err != nil {
		return err
	}
	inv.Ledger.SetField(rowID, columnID, value)
	inv.recalculate()
	return nil
}

// AddColumn defines a new custom column on the item table
func (inv *Invoice) AddColumn(displayName string) (Column, error) {
	if err := inv.guardDraft(); err != nil {
		return Column{}, err
	}
	col, err := inv.Ledger.AddColumn(displayName)
	if err != nil {
		return Column{}, err
	}
	inv.flushLedgerChanges()
	inv.UpdatedAt = time.Now()
	return col, nil
}

// RemoveColumn removes a custom column from the item table
func (inv *Invoice) RemoveColumn(columnID string) error {
	if err := inv.guardDraft(); err != nil {
		return err
	}
	if inv.Ledger.RemoveColumn(columnID) {
		inv.flushLedgerChanges()
		inv.UpdatedAt = time.Now()
	}
	return nil
}

// Issue finalizes the invoice, transitioning from DRAFT to ISSUED
func (inv *Invoice) Issue() error {
	if !inv.Status.CanTransitionTo(DocumentStatusIssued) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot issue invoice in %s status", inv.Status))
	}
	inv.Status = DocumentStatusIssued
	inv.UpdatedAt = time.Now()
	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))
	return nil
}

// Cancel cancels the invoice
func (inv *Invoice) Cancel() error {
	if !inv.Status.CanTransitionTo(DocumentStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}
	inv.Status = DocumentStatusCancelled
	inv.UpdatedAt = time.Now()
	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv))
	return nil
}

// recalculate recomputes totals and converts the ledger's pending change
// notifications into domain events.
func (inv *Invoice) recalculate() {
	inv.flushLedgerChanges()
	inv.Totals = inv.Tax.Compute(inv.Ledger.Amounts())
	inv.UpdatedAt = time.Now()
	inv.AddDomainEvent(NewInvoiceRecalculatedEvent(inv))
}

func (inv *Invoice) flushLedgerChanges() {
	for _, ch := range inv.Ledger.Changes() {
		switch c := ch.(type) {
		case RowsChanged:
			inv.AddDomainEvent(NewInvoiceItemsChangedEvent(inv, c.Rows))
		case ColumnsChanged:
			inv.AddDomainEvent(NewInvoiceColumnsChangedEvent(inv, c.Names, c.IDs))
		}
	}
	inv.Ledger.ClearChanges()
}
