package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/amitkkna/quote-sub001/internal/domain/billing"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuotationRepository implements billing.QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// Save creates or updates a quotation along with its items and custom columns
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *billing.Quotation) error {
	var model models.QuotationModel
	model.FromDomain(quotation)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", model.ID).Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", model.ID).Delete(&models.QuotationColumnModel{}).Error; err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
}

// FindByID finds a quotation by its ID
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Quotation, error) {
	var model models.QuotationModel
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

// FindByNumber finds a quotation by its document number
func (r *GormQuotationRepository) FindByNumber(ctx context.Context, number string) (*billing.Quotation, error) {
	var model models.QuotationModel
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

// FindAll finds quotations with filtering and pagination
func (r *GormQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Quotation, error) {
	var rows []models.QuotationModel
	query := applyDocumentFilter(
		r.db.WithContext(ctx).Model(&models.QuotationModel{}).
			Preload("Items").Preload("Columns"),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*billing.Quotation, 0, len(rows))
	for i := range rows {
		q, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Count counts quotations matching the filter
func (r *GormQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyDocumentFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a quotation along with its items and columns
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.QuotationColumnModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.QuotationModel{}, "id = ?", id)
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
// fiscal year containing the given date.
func (r *GormQuotationRepository) NextSequence(ctx context.Context, companyCode string, date time.Time) (int, error) {
	return nextDocumentSequence(ctx, r.db, &models.QuotationModel{}, "QTN", companyCode, date)
}

// Ensure GormQuotationRepository implements QuotationRepository
var _ billing.QuotationRepository = (*GormQuotationRepository)(nil)
