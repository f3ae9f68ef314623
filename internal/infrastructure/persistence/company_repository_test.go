package persistence

import (
	"context"
	"testing"

	"github.com/amitkkna/quote-sub001/internal/domain/company"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCompanyRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCompanyRepository(db.DB)
	ctx := context.Background()

	c, err := company.NewCompany("GDC", "Global Digital Connect", "22AAAAA0000A1Z5")
	require.NoError(t, err)
	c.UpdateBank(company.BankDetails{AccountNumber: "1234567890", IFSCCode: "HDFC0000001"})
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByCode(ctx, "gdc")
	require.NoError(t, err)
	assert.Equal(t, "GDC", loaded.Code)
	assert.Equal(t, "gdc", loaded.TemplateKey)
	assert.Equal(t, "HDFC0000001", loaded.Bank.IFSCCode)
	assert.True(t, loaded.IsActive)

	// Update round-trips
	loaded.Deactivate()
	require.NoError(t, repo.Save(ctx, loaded))
	again, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, again.IsActive)

	_, err = repo.FindByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	all, err := repo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
