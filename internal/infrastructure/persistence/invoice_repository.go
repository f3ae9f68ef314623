package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save creates or updates an invoice along with its items and custom columns
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Items and columns are replaced wholesale: the row set, values and
		// column layout can all change between saves.
		if err := tx.Where("document_id = ?", model.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", model.ID).Delete(&models.InvoiceColumnModel{}).Error; err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Columns").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByNumber finds an invoice by its document number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Columns").
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds invoices with filtering and pagination
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Invoice, error) {
	var rows []models.InvoiceModel
	query := applyDocumentFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
			Preload("Items").Preload("Columns"),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*billing.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

// FindByDateRange finds invoices issued within [from, to] for a company.
// An empty company code matches all companies.
func (r *GormInvoiceRepository) FindByDateRange(ctx context.Context, companyCode string, from, to time.Time) ([]*billing.Invoice, error) {
	var rows []models.InvoiceModel
	query := r.db.WithContext(ctx).
		Preload("Items").Preload("Columns").
		Where("issue_date >= ? AND issue_date <= ?", from, to).
		Order("issue_date ASC, number ASC")
	if companyCode != "" {
		query = query.Where("company_code = ?", companyCode)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*billing.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyDocumentFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes an invoice along with its items and columns
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.InvoiceColumnModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.InvoiceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextSequence returns the next sequence number for a company within the
// fiscal year containing the given date, based on the highest stored number.
func (r *GormInvoiceRepository) NextSequence(ctx context.Context, companyCode string, date time.Time) (int, error) {
	return nextDocumentSequence(ctx, r.db, &models.InvoiceModel{}, "INV", companyCode, date)
}

// nextDocumentSequence parses the highest existing document number sharing
// the prefix/company/fiscal-year segments and returns its sequence plus one.
func nextDocumentSequence(ctx context.Context, db *gorm.DB, model interface{}, prefix, companyCode string, date time.Time) (int, error) {
	like := fmt.Sprintf("%s/%s/%s/", prefix, companyCode, billing.FiscalYear(date))

	var lastNumber string
	err := db.WithContext(ctx).
		Model(model).
		Where("number LIKE ?", like+"%").
		Order("number DESC").
		Limit(1).
		Pluck("number", &lastNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if lastNumber == "" {
		return 1, nil
	}
	parts := strings.Split(lastNumber, "/")
	var seq int
	if _, err := fmt.Sscanf(parts[len(parts)-1], "%d", &seq); err != nil {
		return 0, fmt.Errorf("malformed document number %q: %w", lastNumber, err)
	}
	return seq + 1, nil
}

// applyDocumentFilter applies filter options to the query
func applyDocumentFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyDocumentFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyDocumentFilterWithoutPagination applies filter options without pagination
func applyDocumentFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR bill_to_name LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "company_code":
			query = query.Where("company_code = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
