// Package printing exposes PDF generation for invoices and quotations.
package printing

import (
	"context"
	"strings"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/domain/company"
	infra "github.com/amitkkna/quote-sub001/internal/infrastructure/printing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PDFDocument is a rendered document ready for download
type PDFDocument struct {
	Filename string
	Data     []byte
}

// RenderOptions controls the physical output of one render
type RenderOptions struct {
	PaperWidth  float64
	PaperHeight float64
	Timeout     time.Duration
}

// Service renders billing documents on the issuing company's letterhead
type Service struct {
	invoices   billing.InvoiceRepository
	quotations billing.QuotationRepository
	companies  company.Repository
	engine     *infra.TemplateEngine
	renderer   infra.PDFRenderer
	options    RenderOptions
	logger     *zap.Logger
}

// NewService creates a document PDF service
func NewService(
	invoices billing.InvoiceRepository,
	quotations billing.QuotationRepository,
	companies company.Repository,
	engine *infra.TemplateEngine,
	renderer infra.PDFRenderer,
	options RenderOptions,
	logger *zap.Logger,
) *Service {
	return &Service{
		invoices:   invoices,
		quotations: quotations,
		companies:  companies,
		engine:     engine,
		renderer:   renderer,
		options:    options,
		logger:     logger.Named("pdf_service"),
	}
}

// InvoicePDF renders one invoice to PDF
func (s *Service) InvoicePDF(ctx context.Context, id uuid.UUID) (*PDFDocument, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	co, err := s.companies.FindByCode(ctx, inv.CompanyCode)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, inv.Number, infra.BuildInvoiceView(inv, co))
}

// QuotationPDF renders one quotation to PDF
func (s *Service) QuotationPDF(ctx context.Context, id uuid.UUID) (*PDFDocument, error) {
	q, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	co, err := s.companies.FindByCode(ctx, q.CompanyCode)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, q.Number, infra.BuildQuotationView(q, co))
}

func (s *Service) render(ctx context.Context, number string, view *infra.DocumentView) (*PDFDocument, error) {
	html, err := infra.DocumentHTML(s.engine, view)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:        html,
		Title:       number,
		PaperWidth:  s.options.PaperWidth,
		PaperHeight: s.options.PaperHeight,
		Timeout:     s.options.Timeout,
	})
	if err != nil {
		s.logger.Error("document render failed", zap.String("number", number), zap.Error(err))
		return nil, err
	}

	s.logger.Info("document rendered",
		zap.String("number", number),
		zap.Int("bytes", len(result.PDFData)),
		zap.Duration("duration", result.RenderDuration))

	return &PDFDocument{
		Filename: pdfFilename(number),
		Data:     result.PDFData,
	}, nil
}

// pdfFilename turns a document number into a safe download name.
// "INV/GDC/2025-26/0042" becomes "INV-GDC-2025-26-0042.pdf".
func pdfFilename(number string) string {
	return strings.ReplaceAll(number, "/", "-") + ".pdf"
}
