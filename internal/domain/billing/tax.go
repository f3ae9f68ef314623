package billing

import (
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxType selects the GST split applied to a document
type TaxType string

const (
	// TaxTypeIGST applies integrated GST (inter-state supply)
	TaxTypeIGST TaxType = "igst"
	// TaxTypeCGSTSGST applies the central + state GST split (intra-state supply)
	TaxTypeCGSTSGST TaxType = "cgst_sgst"
)

// IsValid checks if the tax type is a known value
func (t TaxType) IsValid() bool {
	return t == TaxTypeIGST || t == TaxTypeCGSTSGST
}

// String returns the string representation of the tax type
func (t TaxType) String() string {
	return string(t)
}

var hundred = decimal.NewFromInt(100)

// TaxConfig holds the GST configuration for one document. The two tax
// types are mutually exclusive: under igst the CGST/SGST rates are kept in
// storage but never applied, and vice versa.
type TaxConfig struct {
	Type     TaxType         `json:"tax_type"`
	IGSTRate decimal.Decimal `json:"igst_rate"`
	CGSTRate decimal.Decimal `json:"cgst_rate"`
	SGSTRate decimal.Decimal `json:"sgst_rate"`
	// RoundOff rounds all monetary outputs to the nearest whole rupee
	// instead of 2 decimal places.
	RoundOff bool `json:"round_off"`
}

// DefaultTaxConfig returns the intra-state split with zero rates
func DefaultTaxConfig() TaxConfig {
	return TaxConfig{
		Type:     TaxTypeCGSTSGST,
		IGSTRate: decimal.Zero,
		CGSTRate: decimal.Zero,
		SGSTRate: decimal.Zero,
	}
}

// Validate checks the tax type and that every rate is a percentage in [0, 100]
func (c TaxConfig) Validate() error {
	if !c.Type.IsValid() {
		return shared.NewDomainError("INVALID_TAX_TYPE", "Tax type must be igst or cgst_sgst")
	}
	for _, rate := range []decimal.Decimal{c.IGSTRate, c.CGSTRate, c.SGSTRate} {
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			return shared.NewDomainError("INVALID_TAX_RATE", "Tax rates must be between 0 and 100")
		}
	}
	return nil
}

// round applies the configured rounding policy: nearest whole unit when
// RoundOff is set, 2 decimal places otherwise.
func (c TaxConfig) round(d decimal.Decimal) decimal.Decimal {
	if c.RoundOff {
		return d.Round(0)
	}
	return d.Round(2)
}

// Totals holds the aggregated billing figures for one document
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	CGST     decimal.Decimal `json:"cgst_amount"`
	SGST     decimal.Decimal `json:"sgst_amount"`
	IGST     decimal.Decimal `json:"igst_amount"`
	Tax      decimal.Decimal `json:"tax_amount"`
	Total    decimal.Decimal `json:"total"`
}

// ZeroTotals returns all-zero totals
func ZeroTotals() Totals {
	return Totals{
		Subtotal: decimal.Zero,
		CGST:     decimal.Zero,
		SGST:     decimal.Zero,
		IGST:     decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
}

// Compute aggregates per-row amounts into billing totals.
//
// Each tax component is computed from the precise (unrounded) subtotal, and
// the combined tax amount from the precise component sum, so rounding error
// never compounds. The grand total is then formed from the already-rounded
// subtotal and tax amount. Under round-off mode the displayed CGST and SGST
// are each rounded independently, so tax amount is not guaranteed to equal
// their displayed sum.
func (c TaxConfig) Compute(amounts []decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, a := range amounts {
		subtotal = subtotal.Add(a)
	}

	t := ZeroTotals()
	t.Subtotal = c.round(subtotal)

	switch c.Type {
	case TaxTypeIGST:
		igst := subtotal.Mul(c.IGSTRate).Div(hundred)
		t.IGST = c.round(igst)
		t.Tax = t.IGST
	case TaxTypeCGSTSGST:
		cgst := subtotal.Mul(c.CGSTRate).Div(hundred)
		sgst := subtotal.Mul(c.SGSTRate).Div(hundred)
		t.CGST = c.round(cgst)
		t.SGST = c.round(sgst)
		t.Tax = c.round(cgst.Add(sgst))
	}

	t.Total = c.round(t.Subtotal.Add(t.Tax))
	return t
}
