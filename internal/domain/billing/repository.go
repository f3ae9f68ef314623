package billing

import (
	"context"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines the persistence interface for invoices
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Invoice, error)
	FindByDateRange(ctx context.Context, companyCode string, from, to time.Time) ([]*Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// NextSequence returns the next per-company sequence number within the
	// fiscal year containing the given date.
	NextSequence(ctx context.Context, companyCode string, date time.Time) (int, error)
}

// QuotationRepository defines the persistence interface for quotations
type QuotationRepository interface {
	Save(ctx context.Context, quotation *Quotation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)
	FindByNumber(ctx context.Context, number string) (*Quotation, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Quotation, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	NextSequence(ctx context.Context, companyCode string, date time.Time) (int, error)
}
