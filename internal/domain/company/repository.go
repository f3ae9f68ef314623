package company

import (
	"context"

	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence interface for company profiles
type Repository interface {
	Save(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByCode(ctx context.Context, code string) (*Company, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
