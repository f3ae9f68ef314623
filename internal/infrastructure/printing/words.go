package printing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var wordsBelowTwenty = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var wordsTens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// amountInWords spells a money value in the Indian numbering system.
// Example: 123456.78 -> "Rupees One Lakh Twenty Three Thousand Four
// Hundred Fifty Six and Seventy Eight Paise Only"
func amountInWords(v interface{}) string {
	d := toDecimal(v)
	negative := d.IsNegative()
	if negative {
		d = d.Abs()
	}

	paise := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	rupees := paise / 100
	paise = paise % 100

	var b strings.Builder
	b.WriteString("Rupees ")
	if negative {
		b.WriteString("Minus ")
	}
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(integerInWords(rupees))
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(integerInWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// integerInWords converts a positive integer using crore/lakh/thousand
// scales. Values of a hundred crore or more recurse on the crore count.
func integerInWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string
	if n >= 1_00_00_000 {
		parts = append(parts, integerInWords(n/1_00_00_000), "Crore")
		n %= 1_00_00_000
	}
	if n >= 1_00_000 {
		parts = append(parts, belowThousandInWords(n/1_00_000), "Lakh")
		n %= 1_00_000
	}
	if n >= 1_000 {
		parts = append(parts, belowThousandInWords(n/1_000), "Thousand")
		n %= 1_000
	}
	if n > 0 {
		parts = append(parts, belowThousandInWords(n))
	}
	return strings.Join(parts, " ")
}

func belowThousandInWords(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, wordsBelowTwenty[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, wordsTens[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, wordsBelowTwenty[n])
	}
	return strings.Join(parts, " ")
}
