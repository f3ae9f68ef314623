package billing

import (
	"regexp"
	"strings"

	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// leadingNumber matches the leading decimal portion of a quantity string,
// e.g. "5 pcs" -> "5", "2.5 kg" -> "2.5", ".5 m" -> ".5".
var leadingNumber = regexp.MustCompile(`^\d*\.?\d+`)

// NumericMagnitude extracts the effective numeric magnitude of a quantity
// string. Text with no leading parseable number degrades to zero; data
// entry is never blocked by malformed input.
func NumericMagnitude(quantity string) decimal.Decimal {
	m := leadingNumber.FindString(quantity)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseRate parses a rate value from user input. Malformed input degrades
// to zero; negative rates are passed through unvalidated and propagate to
// a negative amount.
func ParseRate(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RowAmount computes a row's amount from its quantity text and rate,
// rounded half-up to 2 decimal places to absorb floating-point drift.
func RowAmount(quantity string, rate decimal.Decimal) decimal.Decimal {
	return NumericMagnitude(quantity).Mul(rate).Round(2)
}

// ItemRow is one line of the item table. Amount is derived and never set
// directly; Custom carries one value per user-defined column id.
type ItemRow struct {
	ID          uuid.UUID         `json:"id"`
	Description string            `json:"description"`
	HSNSACCode  string            `json:"hsn_sac_code"`
	Quantity    string            `json:"quantity"`
	Rate        decimal.Decimal   `json:"rate"`
	Amount      decimal.Decimal   `json:"amount"`
	Custom      map[string]string `json:"custom"`
}

// clone returns a deep copy of the row
func (r ItemRow) clone() ItemRow {
	out := r
	out.Custom = make(map[string]string, len(r.Custom))
	for k, v := range r.Custom {
		out.Custom[k] = v
	}
	return out
}

// newDefaultRow creates a row with the default values for the required
// columns and an empty string for every given custom column.
func newDefaultRow(custom []Column) ItemRow {
	row := ItemRow{
		ID:       uuid.New(),
		Quantity: "1",
		Rate:     decimal.Zero,
		Amount:   decimal.Zero,
		Custom:   make(map[string]string, len(custom)),
	}
	for _, c := range custom {
		row.Custom[c.ID] = ""
	}
	return row
}

// LedgerChange is a change notification recorded by the ledger. Consumers
// drain changes after each mutation instead of registering callbacks.
type LedgerChange interface {
	ledgerChange()
}

// RowsChanged carries the full row list after any row-set mutation
type RowsChanged struct {
	Rows []ItemRow
}

func (RowsChanged) ledgerChange() {}

// ColumnsChanged carries the ordered non-required column display names and
// the display-name-to-id mapping after any column-set mutation.
type ColumnsChanged struct {
	Names []string
	IDs   map[string]string
}

func (ColumnsChanged) ledgerChange() {}

// ItemLedger maintains the ordered rows and columns of one document and
// keeps every row's amount consistent with its quantity and rate.
// The ledger always contains at least one row.
type ItemLedger struct {
	columns ColumnSet
	rows    []ItemRow
	changes []LedgerChange
}

// NewItemLedger creates a ledger with the built-in columns and one default row
func NewItemLedger() *ItemLedger {
	l := &ItemLedger{columns: NewColumnSet()}
	l.rows = append(l.rows, newDefaultRow(nil))
	return l
}

// NewItemLedgerFromParts rebuilds a ledger from stored custom column
// definitions and rows, preserving row order. Used when loading a saved
// document; amounts are recomputed so loaded totals stay consistent with
// the stored quantity and rate.
func NewItemLedgerFromParts(custom []Column, rows []ItemRow) (*ItemLedger, error) {
	cols, err := NewColumnSetFromColumns(custom)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.NewDomainError("EMPTY_LEDGER", "A document must contain at least one item row")
	}

	l := &ItemLedger{columns: cols}
	for _, r := range rows {
		row := r.clone()
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.Custom == nil {
			row.Custom = make(map[string]string)
		}
		for _, c := range cols.Custom() {
			if _, ok := row.Custom[c.ID]; !ok {
				row.Custom[c.ID] = ""
			}
		}
		row.Amount = RowAmount(row.Quantity, row.Rate)
		l.rows = append(l.rows, row)
	}
	return l, nil
}

// Columns returns all columns in display order
func (l *ItemLedger) Columns() []Column {
	return l.columns.Columns()
}

// CustomColumns returns the user-added columns in display order
func (l *ItemLedger) CustomColumns() []Column {
	return l.columns.Custom()
}

// Rows returns a deep copy of all rows in order
func (l *ItemLedger) Rows() []ItemRow {
	out := make([]ItemRow, len(l.rows))
	for i, r := range l.rows {
		out[i] = r.clone()
	}
	return out
}

// RowCount returns the number of rows
func (l *ItemLedger) RowCount() int {
	return len(l.rows)
}

// Amounts returns the per-row amounts in row order
func (l *ItemLedger) Amounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(l.rows))
	for i, r := range l.rows {
		out[i] = r.Amount
	}
	return out
}

// AddRow appends a new row with default values for the required columns
// and an empty string for every currently defined custom column.
func (l *ItemLedger) AddRow() ItemRow {
	row := newDefaultRow(l.columns.Custom())
	l.rows = append(l.rows, row)
	l.recordRowsChanged()
	return row.clone()
}

// RemoveRow removes the row with the given id. Removing the sole remaining
// row is refused: the call is a no-op and returns false.
func (l *ItemLedger) RemoveRow(rowID uuid.UUID) bool {
	if len(l.rows) <= 1 {
		return false
	}
	for i, r := range l.rows {
		if r.ID == rowID {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			l.recordRowsChanged()
			return true
		}
	}
	return false
}

// capitalizationExempt lists the built-in columns whose values are stored
// verbatim. Every other text field gets its first character capitalized.
func capitalizationExempt(columnID string) bool {
	switch columnID {
	case ColumnRate, ColumnAmount, ColumnHSNSAC, ColumnQuantity:
		return true
	}
	return false
}

// SetField updates one field of one row. Unknown row ids and unknown or
// derived columns (amount, serial number) are silent no-ops. Changing
// quantity or rate recomputes the row's amount immediately.
func (l *ItemLedger) SetField(rowID uuid.UUID, columnID, value string) {
	idx := -1
	for i, r := range l.rows {
		if r.ID == rowID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	row := &l.rows[idx]
	switch columnID {
	case ColumnAmount, ColumnSerialNo:
		// Derived fields, never directly editable
		return
	case ColumnQuantity:
		row.Quantity = value
		row.Amount = RowAmount(row.Quantity, row.Rate)
	case ColumnRate:
		row.Rate = ParseRate(value)
		row.Amount = RowAmount(row.Quantity, row.Rate)
	case ColumnHSNSAC:
		row.HSNSACCode = value
	case ColumnDescription:
		row.Description = CapitalizeFirst(value)
	default:
		if !l.columns.Has(columnID) {
			return
		}
		row.Custom[columnID] = CapitalizeFirst(value)
	}
	l.recordRowsChanged()
}

// AddColumn defines a new user column and propagates an empty value for it
// to every existing row.
func (l *ItemLedger) AddColumn(displayName string) (Column, error) {
	col, err := l.columns.Add(displayName)
	if err != nil {
		return Column{}, err
	}
	for i := range l.rows {
		l.rows[i].Custom[col.ID] = ""
	}
	l.recordColumnsChanged()
	return col, nil
}

// RemoveColumn removes a user column and deletes its field from every row.
// Required columns are never removed; the call is a no-op returning false.
func (l *ItemLedger) RemoveColumn(columnID string) bool {
	if !l.columns.Remove(columnID) {
		return false
	}
	for i := range l.rows {
		delete(l.rows[i].Custom, columnID)
	}
	l.recordColumnsChanged()
	return true
}

// Clone returns a deep copy of the ledger with fresh row ids.
// Used when converting a quotation into an invoice.
func (l *ItemLedger) Clone() *ItemLedger {
	out := &ItemLedger{columns: ColumnSet{cols: l.columns.Columns()}}
	for _, r := range l.rows {
		row := r.clone()
		row.ID = uuid.New()
		out.rows = append(out.rows, row)
	}
	return out
}

// Changes returns the change notifications recorded since the last drain
func (l *ItemLedger) Changes() []LedgerChange {
	return l.changes
}

// ClearChanges drops all recorded change notifications
func (l *ItemLedger) ClearChanges() {
	l.changes = nil
}

func (l *ItemLedger) recordRowsChanged() {
	l.changes = append(l.changes, RowsChanged{Rows: l.Rows()})
}

func (l *ItemLedger) recordColumnsChanged() {
	custom := l.columns.Custom()
	names := make([]string, 0, len(custom))
	ids := make(map[string]string, len(custom))
	for _, c := range custom {
		names = append(names, c.Name)
		ids[c.Name] = c.ID
	}
	l.changes = append(l.changes, ColumnsChanged{Names: names, IDs: ids})
}
