package billing

import (
	"context"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/domain/company"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportInvalidator drops cached report output. Invoices feed the
// register and GST summary reports, so every invoice write goes
// through it. A nil invalidator disables the hook.
type ReportInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// InvoiceService orchestrates invoice use cases
type InvoiceService struct {
	invoices  billing.InvoiceRepository
	companies company.Repository
	reports   ReportInvalidator
	logger    *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices billing.InvoiceRepository, companies company.Repository, reports ReportInvalidator, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		companies: companies,
		reports:   reports,
		logger:    logger.Named("invoice_service"),
	}
}

func (s *InvoiceService) invalidateReports(ctx context.Context) {
	if s.reports != nil {
		s.reports.InvalidateCache(ctx)
	}
}

// Create creates a new draft invoice with the next document number for the company
func (s *InvoiceService) Create(ctx context.Context, req CreateDocumentRequest) (*InvoiceResponse, error) {
	comp, err := s.companies.FindByCode(ctx, req.CompanyCode)
	if err != nil {
		return nil, err
	}
	if !comp.IsActive {
		return nil, shared.NewDomainError("COMPANY_INACTIVE", "Company is not active")
	}

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	seq, err := s.invoices.NextSequence(ctx, comp.Code, issueDate)
	if err != nil {
		return nil, err
	}
	number := billing.FormatDocumentNumber("INV", comp.Code, issueDate, seq)

	inv, err := billing.NewInvoice(number, comp.Code, issueDate)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.logger.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.String("company", comp.Code))
	return ToInvoiceResponse(inv), nil
}

// Get returns an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// GetByNumber returns an invoice by its document number
func (s *InvoiceService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// List returns invoices matching the request, with the total count
func (s *InvoiceService) List(ctx context.Context, req ListRequest) ([]*InvoiceResponse, int64, error) {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  listFilter(req),
	}

	invoices, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.invoices.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = ToInvoiceResponse(inv)
	}
	return out, count, nil
}

// Delete removes an invoice entirely
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	s.logger.Info("invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

// mutate loads, applies fn, saves and returns the refreshed view
func (s *InvoiceService) mutate(ctx context.Context, id uuid.UUID, fn func(*billing.Invoice) error) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(inv); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return ToInvoiceResponse(inv), nil
}

// AddItem appends a new row to the invoice
func (s *InvoiceService) AddItem(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		_, err := inv.AddItem()
		return err
	})
}

// RemoveItem removes a row from the invoice
func (s *InvoiceService) RemoveItem(ctx context.Context, id, rowID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.RemoveItem(rowID)
	})
}

// SetItemField updates one field of one row
func (s *InvoiceService) SetItemField(ctx context.Context, id, rowID uuid.UUID, req SetItemFieldRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.SetItemField(rowID, req.ColumnID, req.Value)
	})
}

// AddColumn defines a new custom column
func (s *InvoiceService) AddColumn(ctx context.Context, id uuid.UUID, req AddColumnRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		_, err := inv.AddColumn(req.DisplayName)
		return err
	})
}

// RemoveColumn removes a custom column
func (s *InvoiceService) RemoveColumn(ctx context.Context, id uuid.UUID, columnID string) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.RemoveColumn(columnID)
	})
}

// SetTax replaces the tax configuration
func (s *InvoiceService) SetTax(ctx context.Context, id uuid.UUID, req TaxConfigRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.SetTaxConfig(req.toDomain())
	})
}

// SetParties updates the Bill-To and Ship-To details
func (s *InvoiceService) SetParties(ctx context.Context, id uuid.UUID, req SetPartiesRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.SetParties(req.BillTo.toDomain(), req.ShipTo.toDomain())
	})
}

// SetNotes updates the document notes
func (s *InvoiceService) SetNotes(ctx context.Context, id uuid.UUID, req SetNotesRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.SetNotes(req.Notes)
	})
}

// SetLayout updates the PDF layout flags
func (s *InvoiceService) SetLayout(ctx context.Context, id uuid.UUID, req SetLayoutRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.SetLayout(req.FitOnePage, req.HindiMode)
	})
}

// Issue finalizes the invoice
func (s *InvoiceService) Issue(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	resp, err := s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.Issue()
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("invoice issued", zap.String("invoice_id", id.String()), zap.String("number", resp.Number))
	return resp, nil
}

// Cancel cancels the invoice
func (s *InvoiceService) Cancel(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	resp, err := s.mutate(ctx, id, func(inv *billing.Invoice) error {
		return inv.Cancel()
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("invoice cancelled", zap.String("invoice_id", id.String()))
	return resp, nil
}
