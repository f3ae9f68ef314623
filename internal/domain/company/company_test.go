package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	t.Run("normalizes code and defaults template key", func(t *testing.T) {
		c, err := NewCompany(" gdc ", "Global Digital Connect", "22AAAAA0000A1Z5")
		require.NoError(t, err)
		assert.Equal(t, "GDC", c.Code)
		assert.Equal(t, "gdc", c.TemplateKey)
		assert.True(t, c.IsActive)
	})

	t.Run("empty code rejected", func(t *testing.T) {
		_, err := NewCompany("  ", "Name", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INVALID_CODE")
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewCompany("GDC", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INVALID_NAME")
	})
}

func TestCompany_Updates(t *testing.T) {
	c, err := NewCompany("GTC", "Global Trading Corporation", "22BBBBB0000B1Z4")
	require.NoError(t, err)

	require.NoError(t, c.UpdateProfile("Global Trading Corporation", "Industrial supplies",
		"Raipur, Chhattisgarh", "sales@gtc.example", "+91 771 0000000"))
	assert.Equal(t, "Industrial supplies", c.Tagline)

	assert.Error(t, c.UpdateProfile("", "", "", "", ""))

	c.UpdateRegistration("22BBBBB0000B1Z4", "Chhattisgarh", "22")
	assert.Equal(t, "22", c.StateCode)

	c.UpdateBank(BankDetails{AccountNumber: "1234567890", IFSCCode: "HDFC0000001"})
	assert.Equal(t, "HDFC0000001", c.Bank.IFSCCode)

	require.NoError(t, c.SetTemplateKey("Sustainability"))
	assert.Equal(t, "sustainability", c.TemplateKey)
	assert.Error(t, c.SetTemplateKey(" "))

	c.Deactivate()
	assert.False(t, c.IsActive)
	c.Activate()
	assert.True(t, c.IsActive)
}
