// Package report computes invoice registers and GST summaries from
// stored invoices.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/domain/report"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RangeRequest defines the request filter for register reports
type RangeRequest struct {
	CompanyCode string    `form:"company_code"`
	StartDate   time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate     time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
}

func (r RangeRequest) toFilter() report.Filter {
	return report.Filter{
		CompanyCode: r.CompanyCode,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// Service answers register and GST summary queries. Results are cached
// because a period query re-reads every invoice in range.
type Service struct {
	invoices billing.InvoiceRepository
	cache    cache.ReportCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService creates a report service. Pass a nil cache to disable caching.
func NewService(invoices billing.InvoiceRepository, reportCache cache.ReportCache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		invoices: invoices,
		cache:    reportCache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("report_service"),
	}
}

// InvoiceRegister returns the invoice register for the period
func (s *Service) InvoiceRegister(ctx context.Context, req RangeRequest) (*report.InvoiceRegister, error) {
	key := cacheKey("register", req)
	if cached, ok := s.fromCache(ctx, key); ok {
		var reg report.InvoiceRegister
		if err := json.Unmarshal(cached, &reg); err == nil {
			return &reg, nil
		}
	}

	invoices, err := s.invoices.FindByDateRange(ctx, req.CompanyCode, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	reg := buildRegister(req.toFilter(), invoices)
	s.toCache(ctx, key, reg)
	return reg, nil
}

// GSTSummary returns the period's tax amounts grouped by type and rate
func (s *Service) GSTSummary(ctx context.Context, req RangeRequest) (*report.GSTSummary, error) {
	key := cacheKey("gst", req)
	if cached, ok := s.fromCache(ctx, key); ok {
		var summary report.GSTSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
	}

	invoices, err := s.invoices.FindByDateRange(ctx, req.CompanyCode, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	summary := buildGSTSummary(req.toFilter(), invoices)
	s.toCache(ctx, key, summary)
	return summary, nil
}

// ExportRegisterCSV returns the invoice register as CSV bytes
func (s *Service) ExportRegisterCSV(ctx context.Context, req RangeRequest) ([]byte, error) {
	reg, err := s.InvoiceRegister(ctx, req)
	if err != nil {
		return nil, err
	}
	return registerCSV(reg), nil
}

// InvalidateCache drops all cached reports. Called after billing writes.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

func (s *Service) fromCache(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return payload, ok
}

func (s *Service) toCache(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(kind string, req RangeRequest) string {
	return fmt.Sprintf("%s:%s:%s:%s", kind, req.CompanyCode,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
}

func buildRegister(filter report.Filter, invoices []*billing.Invoice) *report.InvoiceRegister {
	reg := &report.InvoiceRegister{
		CompanyCode: filter.CompanyCode,
		PeriodStart: filter.StartDate,
		PeriodEnd:   filter.EndDate,
		Rows:        make([]report.RegisterRow, 0, len(invoices)),
		Subtotal:    decimal.Zero,
		Tax:         decimal.Zero,
		Total:       decimal.Zero,
	}

	for _, inv := range invoices {
		reg.Rows = append(reg.Rows, report.RegisterRow{
			Number:     inv.Number,
			IssueDate:  inv.IssueDate,
			PartyName:  inv.BillTo.Name,
			PartyGSTIN: inv.BillTo.GSTIN,
			TaxType:    string(inv.Tax.Type),
			Status:     inv.Status.String(),
			Subtotal:   inv.Totals.Subtotal,
			CGST:       inv.Totals.CGST,
			SGST:       inv.Totals.SGST,
			IGST:       inv.Totals.IGST,
			Tax:        inv.Totals.Tax,
			Total:      inv.Totals.Total,
		})

		// Cancelled invoices stay in the register for audit but do not
		// count towards the period totals.
		if inv.Status == billing.DocumentStatusCancelled {
			continue
		}
		reg.Subtotal = reg.Subtotal.Add(inv.Totals.Subtotal)
		reg.Tax = reg.Tax.Add(inv.Totals.Tax)
		reg.Total = reg.Total.Add(inv.Totals.Total)
	}
	reg.Count = len(reg.Rows)
	return reg
}

func buildGSTSummary(filter report.Filter, invoices []*billing.Invoice) *report.GSTSummary {
	summary := &report.GSTSummary{
		CompanyCode:  filter.CompanyCode,
		PeriodStart:  filter.StartDate,
		PeriodEnd:    filter.EndDate,
		Buckets:      []report.GSTBucket{},
		TaxableValue: decimal.Zero,
		Tax:          decimal.Zero,
	}

	index := make(map[string]int)
	for _, inv := range invoices {
		if inv.Status == billing.DocumentStatusCancelled {
			continue
		}

		rate := inv.Tax.IGSTRate
		if inv.Tax.Type == billing.TaxTypeCGSTSGST {
			rate = inv.Tax.CGSTRate.Add(inv.Tax.SGSTRate)
		}
		key := string(inv.Tax.Type) + ":" + rate.String()

		i, ok := index[key]
		if !ok {
			i = len(summary.Buckets)
			index[key] = i
			summary.Buckets = append(summary.Buckets, report.GSTBucket{
				TaxType:      string(inv.Tax.Type),
				Rate:         rate,
				TaxableValue: decimal.Zero,
				CGST:         decimal.Zero,
				SGST:         decimal.Zero,
				IGST:         decimal.Zero,
				Tax:          decimal.Zero,
			})
		}

		b := &summary.Buckets[i]
		b.TaxableValue = b.TaxableValue.Add(inv.Totals.Subtotal)
		b.CGST = b.CGST.Add(inv.Totals.CGST)
		b.SGST = b.SGST.Add(inv.Totals.SGST)
		b.IGST = b.IGST.Add(inv.Totals.IGST)
		b.Tax = b.Tax.Add(inv.Totals.Tax)
		b.InvoiceCount++

		summary.TaxableValue = summary.TaxableValue.Add(inv.Totals.Subtotal)
		summary.Tax = summary.Tax.Add(inv.Totals.Tax)
	}
	return summary
}
