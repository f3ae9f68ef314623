package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericMagnitude(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		expected string
	}{
		{"plain integer", "5", "5"},
		{"decimal", "2.5", "2.5"},
		{"leading dot", ".5", "0.5"},
		{"number with unit", "5 pcs", "5"},
		{"decimal with unit", "2.5 kg", "2.5"},
		{"no space before unit", "10nos", "10"},
		{"pure text", "five", "0"},
		{"empty", "", "0"},
		{"unit before number", "kg 5", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tt.expected)
			require.NoError(t, err)
			assert.True(t, NumericMagnitude(tt.quantity).Equal(expected),
				"NumericMagnitude(%q) = %s", tt.quantity, NumericMagnitude(tt.quantity))
		})
	}
}

func TestParseRate(t *testing.T) {
	assert.True(t, ParseRate("550").Equal(decimal.NewFromInt(550)))
	assert.True(t, ParseRate(" 12.50 ").Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, ParseRate("abc").IsZero())
	assert.True(t, ParseRate("").IsZero())
	assert.True(t, ParseRate("-10").Equal(decimal.NewFromInt(-10)), "negative rates pass through")
}

func TestRowAmount(t *testing.T) {
	assert.True(t, RowAmount("2 pcs", decimal.NewFromInt(550)).Equal(decimal.NewFromInt(1100)))
	assert.True(t, RowAmount("2.5 kg", decimal.NewFromInt(230)).Equal(decimal.NewFromInt(575)))
	assert.True(t, RowAmount("three", decimal.NewFromInt(100)).IsZero())
	// 1.005 * 3 = 3.015 -> 3.02 half-up
	assert.True(t, RowAmount("1.005", decimal.NewFromInt(3)).Equal(decimal.NewFromFloat(3.02)))
}

func TestNewItemLedger(t *testing.T) {
	l := NewItemLedger()
	require.Equal(t, 1, l.RowCount())

	row := l.Rows()[0]
	assert.Equal(t, "1", row.Quantity)
	assert.True(t, row.Rate.IsZero())
	assert.True(t, row.Amount.IsZero())
	assert.Empty(t, row.Description)
}

func TestItemLedger_AddRemoveRow(t *testing.T) {
	l := NewItemLedger()

	row := l.AddRow()
	assert.Equal(t, 2, l.RowCount())
	assert.Equal(t, "1", row.Quantity)

	assert.True(t, l.RemoveRow(row.ID))
	assert.Equal(t, 1, l.RowCount())

	// Last row can never be removed
	sole := l.Rows()[0]
	assert.False(t, l.RemoveRow(sole.ID))
	assert.Equal(t, 1, l.RowCount())

	assert.False(t, l.RemoveRow(uuid.New()), "unknown row id")
}

func TestItemLedger_SetField(t *testing.T) {
	l := NewItemLedger()
	rowID := l.Rows()[0].ID

	t.Run("quantity and rate drive amount", func(t *testing.T) {
		l.SetField(rowID, ColumnQuantity, "2 pcs")
		l.SetField(rowID, ColumnRate, "550")
		row := l.Rows()[0]
		assert.Equal(t, "2 pcs", row.Quantity)
		assert.True(t, row.Rate.Equal(decimal.NewFromInt(550)))
		assert.True(t, row.Amount.Equal(decimal.NewFromInt(1100)))
	})

	t.Run("malformed quantity zeroes amount", func(t *testing.T) {
		l.SetField(rowID, ColumnQuantity, "some pieces")
		row := l.Rows()[0]
		assert.Equal(t, "some pieces", row.Quantity, "text is kept verbatim")
		assert.True(t, row.Amount.IsZero())
	})

	t.Run("description is capitalized", func(t *testing.T) {
		l.SetField(rowID, ColumnDescription, "steel rods")
		assert.Equal(t, "Steel rods", l.Rows()[0].Description)
	})

	t.Run("hsn code kept verbatim", func(t *testing.T) {
		l.SetField(rowID, ColumnHSNSAC, "7214")
		assert.Equal(t, "7214", l.Rows()[0].HSNSACCode)
	})

	t.Run("amount and serial are read-only", func(t *testing.T) {
		before := l.Rows()[0].Amount
		l.SetField(rowID, ColumnAmount, "999999")
		l.SetField(rowID, ColumnSerialNo, "42")
		assert.True(t, l.Rows()[0].Amount.Equal(before))
	})

	t.Run("unknown row and column are no-ops", func(t *testing.T) {
		before := l.Rows()[0]
		l.SetField(uuid.New(), ColumnDescription, "other")
		l.SetField(rowID, "no_such_column", "x")
		assert.Equal(t, before, l.Rows()[0])
	})
}

func TestItemLedger_CustomColumns(t *testing.T) {
	l := NewItemLedger()
	l.AddRow()
	rowID := l.Rows()[0].ID

	col, err := l.AddColumn("batch no")
	require.NoError(t, err)
	assert.Equal(t, "batch_no", col.ID)

	for _, r := range l.Rows() {
		v, ok := r.Custom["batch_no"]
		assert.True(t, ok, "every row gets the new column")
		assert.Empty(t, v)
	}

	l.SetField(rowID, "batch_no", "lot 42")
	assert.Equal(t, "Lot 42", l.Rows()[0].Custom["batch_no"])

	// New rows inherit defined columns
	added := l.AddRow()
	_, ok := added.Custom["batch_no"]
	assert.True(t, ok)

	require.True(t, l.RemoveColumn("batch_no"))
	for _, r := range l.Rows() {
		_, ok := r.Custom["batch_no"]
		assert.False(t, ok)
	}

	assert.False(t, l.RemoveColumn(ColumnRate), "required columns stay")
}

func TestItemLedger_Changes(t *testing.T) {
	l := NewItemLedger()
	l.ClearChanges()

	rowID := l.Rows()[0].ID
	l.SetField(rowID, ColumnRate, "100")
	_, err := l.AddColumn("Remarks")
	require.NoError(t, err)

	changes := l.Changes()
	require.Len(t, changes, 2)

	rc, ok := changes[0].(RowsChanged)
	require.True(t, ok)
	require.Len(t, rc.Rows, 1)
	assert.True(t, rc.Rows[0].Rate.Equal(decimal.NewFromInt(100)))

	cc, ok := changes[1].(ColumnsChanged)
	require.True(t, ok)
	assert.Equal(t, []string{"Remarks"}, cc.Names)
	assert.Equal(t, map[string]string{"Remarks": "remarks"}, cc.IDs)

	l.ClearChanges()
	assert.Empty(t, l.Changes())
}

func TestNewItemLedgerFromParts(t *testing.T) {
	t.Run("rebuilds rows and recomputes amounts", func(t *testing.T) {
		rows := []ItemRow{
			{Description: "Steel rods", Quantity: "2 pcs", Rate: decimal.NewFromInt(550)},
			{Description: "Cement", Quantity: "2.5", Rate: decimal.NewFromInt(230),
				Custom: map[string]string{"batch_no": "Lot 1"}},
		}
		l, err := NewItemLedgerFromParts([]Column{{ID: "batch_no", Name: "Batch no"}}, rows)
		require.NoError(t, err)
		require.Equal(t, 2, l.RowCount())

		got := l.Rows()
		assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(1100)))
		assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(575)))
		assert.NotEqual(t, uuid.Nil, got[0].ID)
		// Missing custom values are backfilled
		assert.Equal(t, "", got[0].Custom["batch_no"])
		assert.Equal(t, "Lot 1", got[1].Custom["batch_no"])
	})

	t.Run("empty row set rejected", func(t *testing.T) {
		_, err := NewItemLedgerFromParts(nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EMPTY_LEDGER")
	})
}

func TestItemLedger_Clone(t *testing.T) {
	l := NewItemLedger()
	rowID := l.Rows()[0].ID
	l.SetField(rowID, ColumnDescription, "widgets")
	_, err := l.AddColumn("Remarks")
	require.NoError(t, err)

	clone := l.Clone()
	require.Equal(t, l.RowCount(), clone.RowCount())
	assert.NotEqual(t, l.Rows()[0].ID, clone.Rows()[0].ID, "clone gets fresh row ids")
	assert.Equal(t, l.Rows()[0].Description, clone.Rows()[0].Description)

	// Mutating the clone must not leak into the original
	clone.SetField(clone.Rows()[0].ID, ColumnDescription, "gadgets")
	assert.Equal(t, "Widgets", l.Rows()[0].Description)
}
