package billing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/amitkkna/quote-sub001/internal/domain/shared"
)

// Built-in column ids. These are fixed literals; user-added columns get
// their id derived from the display name.
const (
	ColumnSerialNo    = "serial_no"
	ColumnDescription = "description"
	ColumnHSNSAC      = "hsn_sac_code"
	ColumnQuantity    = "quantity"
	ColumnRate        = "rate"
	ColumnAmount      = "amount"
)

// Column describes one column of the item table
type Column struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Required bool   `json:"is_required"`
}

// builtinColumns returns the six required columns in their fixed order
func builtinColumns() []Column {
	return []Column{
		{ID: ColumnSerialNo, Name: "S.No.", Required: true},
		{ID: ColumnDescription, Name: "Description", Required: true},
		{ID: ColumnHSNSAC, Name: "HSN/SAC Code", Required: true},
		{ID: ColumnQuantity, Name: "Quantity", Required: true},
		{ID: ColumnRate, Name: "Rate", Required: true},
		{ID: ColumnAmount, Name: "Amount", Required: true},
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// DeriveColumnID derives a stable column id from a display name:
// lowercase with runs of whitespace replaced by underscores.
func DeriveColumnID(displayName string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(displayName)), "_")
}

// CapitalizeFirst capitalizes only the first character of s, leaving the
// rest unchanged. Empty strings pass through untouched.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ColumnSet maintains the ordered set of columns for one document.
// The built-in columns keep their fixed relative order; user-added columns
// sit immediately before the amount column, in the order they were added.
type ColumnSet struct {
	cols []Column
}

// NewColumnSet creates a column set containing only the built-in columns
func NewColumnSet() ColumnSet {
	return ColumnSet{cols: builtinColumns()}
}

// NewColumnSetFromColumns rebuilds a column set from stored definitions.
// Custom column order is preserved; the built-ins are always present.
func NewColumnSetFromColumns(custom []Column) (ColumnSet, error) {
	s := NewColumnSet()
	for _, c := range custom {
		if c.Required {
			continue
		}
		added, err := s.Add(c.Name)
		if err != nil {
			return ColumnSet{}, err
		}
		if added.ID != c.ID {
			return ColumnSet{}, shared.NewDomainError("COLUMN_MISMATCH",
				"Stored column id does not match its display name: "+c.ID)
		}
	}
	return s, nil
}

// Columns returns a copy of all columns in display order
func (s *ColumnSet) Columns() []Column {
	out := make([]Column, len(s.cols))
	copy(out, s.cols)
	return out
}

// Custom returns the user-added columns in display order
func (s *ColumnSet) Custom() []Column {
	var out []Column
	for _, c := range s.cols {
		if !c.Required {
			out = append(out, c)
		}
	}
	return out
}

// Has reports whether a column with the given id exists
func (s *ColumnSet) Has(id string) bool {
	for _, c := range s.cols {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Get returns the column with the given id
func (s *ColumnSet) Get(id string) (Column, bool) {
	for _, c := range s.cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Add inserts a user-defined column immediately before the amount column.
// The id is derived from the display name; the stored name gets its first
// character capitalized. Empty names and duplicate ids are rejected.
func (s *ColumnSet) Add(displayName string) (Column, error) {
	if strings.TrimSpace(displayName) == "" {
		return Column{}, shared.NewDomainError("INVALID_COLUMN_NAME", "Column name cannot be empty")
	}

	id := DeriveColumnID(displayName)
	if s.Has(id) {
		return Column{}, shared.NewDomainError("DUPLICATE_COLUMN", "A column with this name already exists")
	}

	col := Column{
		ID:       id,
		Name:     CapitalizeFirst(strings.TrimSpace(displayName)),
		Required: false,
	}

	for i, c := range s.cols {
		if c.ID == ColumnAmount {
			s.cols = append(s.cols[:i], append([]Column{col}, s.cols[i:]...)...)
			return col, nil
		}
	}
	// Unreachable while the amount column invariant holds
	s.cols = append(s.cols, col)
	return col, nil
}

// Remove deletes a user-defined column. Required columns are never removed;
// the call is a no-op and returns false.
func (s *ColumnSet) Remove(id string) bool {
	for i, c := range s.cols {
		if c.ID != id {
			continue
		}
		if c.Required {
			return false
		}
		s.cols = append(s.cols[:i], s.cols[i+1:]...)
		return true
	}
	return false
}
