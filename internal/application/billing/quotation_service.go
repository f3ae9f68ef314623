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

// QuotationService orchestrates quotation use cases, including conversion
// into invoices.
type QuotationService struct {
	quotations billing.QuotationRepository
	invoices   billing.InvoiceRepository
	companies  company.Repository
	reports    ReportInvalidator
	logger     *zap.Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	quotations billing.QuotationRepository,
	invoices billing.InvoiceRepository,
	companies company.Repository,
	reports ReportInvalidator,
	logger *zap.Logger,
) *QuotationService {
	return &QuotationService{
		quotations: quotations,
		invoices:   invoices,
		companies:  companies,
		reports:    reports,
		logger:     logger.Named("quotation_service"),
	}
}

// Create creates a new draft quotation with the next document number for the company
func (s *QuotationService) Create(ctx context.Context, req CreateDocumentRequest) (*QuotationResponse, error) {
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
	var validUntil time.Time
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	seq, err := s.quotations.NextSequence(ctx, comp.Code, issueDate)
	if err != nil {
		return nil, err
	}
	number := billing.FormatDocumentNumber("QTN", comp.Code, issueDate, seq)

	q, err := billing.NewQuotation(number, comp.Code, issueDate, validUntil)
	if err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}

	s.logger.Info("quotation created",
		zap.String("quotation_id", q.ID.String()),
		zap.String("number", q.Number),
		zap.String("company", comp.Code))
	return ToQuotationResponse(q), nil
}

// Get returns a quotation by ID
func (s *QuotationService) Get(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// GetByNumber returns a quotation by its document number
func (s *QuotationService) GetByNumber(ctx context.Context, number string) (*QuotationResponse, error) {
	q, err := s.quotations.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// List returns quotations matching the request, with the total count
func (s *QuotationService) List(ctx context.Context, req ListRequest) ([]*QuotationResponse, int64, error) {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  listFilter(req),
	}

	quotations, err := s.quotations.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.quotations.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*QuotationResponse, len(quotations))
	for i, q := range quotations {
		out[i] = ToQuotationResponse(q)
	}
	return out, count, nil
}

// Delete removes a quotation entirely
func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.quotations.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("quotation deleted", zap.String("quotation_id", id.String()))
	return nil
}

func (s *QuotationService) mutate(ctx context.Context, id uuid.UUID, fn func(*billing.Quotation) error) (*QuotationResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(q); err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// AddItem appends a new row to the quotation
func (s *QuotationService) AddItem(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		_, err := q.AddItem()
		return err
	})
}

// RemoveItem removes a row from the quotation
func (s *QuotationService) RemoveItem(ctx context.Context, id, rowID uuid.UUID) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.RemoveItem(rowID)
	})
}

// SetItemField updates one field of one row
func (s *QuotationService) SetItemField(ctx context.Context, id, rowID uuid.UUID, req SetItemFieldRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.SetItemField(rowID, req.ColumnID, req.Value)
	})
}

// AddColumn defines a new custom column
func (s *QuotationService) AddColumn(ctx context.Context, id uuid.UUID, req AddColumnRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		_, err := q.AddColumn(req.DisplayName)
		return err
	})
}

// RemoveColumn removes a custom column
func (s *QuotationService) RemoveColumn(ctx context.Context, id uuid.UUID, columnID string) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.RemoveColumn(columnID)
	})
}

// SetTax replaces the tax configuration
func (s *QuotationService) SetTax(ctx context.Context, id uuid.UUID, req TaxConfigRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.SetTaxConfig(req.toDomain())
	})
}

// SetParties updates the Bill-To and Ship-To details
func (s *QuotationService) SetParties(ctx context.Context, id uuid.UUID, req SetPartiesRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.SetParties(req.BillTo.toDomain(), req.ShipTo.toDomain())
	})
}

// SetNotes updates the document notes
func (s *QuotationService) SetNotes(ctx context.Context, id uuid.UUID, req SetNotesRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.SetNotes(req.Notes)
	})
}

// SetLayout updates the PDF layout flags
func (s *QuotationService) SetLayout(ctx context.Context, id uuid.UUID, req SetLayoutRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.SetLayout(req.FitOnePage, req.HindiMode)
	})
}

// SetValidUntil updates the validity date
func (s *QuotationService) SetValidUntil(ctx context.Context, id uuid.UUID, req SetValidUntilRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.SetValidUntil(req.ValidUntil)
	})
}

// Issue finalizes the quotation
func (s *QuotationService) Issue(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.Issue()
	})
}

// Cancel cancels the quotation
func (s *QuotationService) Cancel(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	return s.mutate(ctx, id, func(q *billing.Quotation) error {
		return q.Cancel()
	})
}

// ConvertToInvoice converts a quotation into a new draft invoice carrying
// the next invoice number for the company.
func (s *QuotationService) ConvertToInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	issueDate := time.Now()
	seq, err := s.invoices.NextSequence(ctx, q.CompanyCode, issueDate)
	if err != nil {
		return nil, err
	}
	number := billing.FormatDocumentNumber("INV", q.CompanyCode, issueDate, seq)

	inv, err := q.ConvertToInvoice(number, issueDate)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	// Conversion writes an invoice, so period reports change too.
	if s.reports != nil {
		s.reports.InvalidateCache(ctx)
	}

	s.logger.Info("quotation converted",
		zap.String("quotation", q.Number),
		zap.String("invoice", inv.Number))
	return ToInvoiceResponse(inv), nil
}
