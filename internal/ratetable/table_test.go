package ratetable_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/ratetable"
)

func threeBracketTable() ratetable.Table {
	return ratetable.Table{
		Name: "test",
		Brackets: []ratetable.Bracket{
			{Min: decimal.Zero, Max: ratetable.UpTo(999.99), FlatAmount: decimal.NewFromInt(10)},
			{Min: decimal.NewFromInt(1000), Max: ratetable.UpTo(1999.99), FlatAmount: decimal.NewFromInt(20)},
			{Min: decimal.NewFromInt(2000), Max: nil, FlatAmount: decimal.NewFromInt(30)},
		},
	}
}

func TestLookupBoundaries(t *testing.T) {
	table := threeBracketTable()

	cases := []struct {
		name  string
		value float64
		want  int64
	}{
		{"zero lands in first", 0, 10},
		{"just below first max", 999.99, 10},
		{"exact second min", 1000, 20},
		{"inside second", 1500.50, 20},
		{"just below second max", 1999.99, 20},
		{"exact open-ended min", 2000, 30},
		{"far above open-ended min", 9_000_000, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := table.Lookup(decimal.NewFromFloat(tc.value))
			assert.NoError(t, err)
			assert.True(t, b.FlatAmount.Equal(decimal.NewFromInt(tc.want)),
				"value %v resolved flat %s", tc.value, b.FlatAmount)
		})
	}
}

func TestLookupClampsBelowFirstMin(t *testing.T) {
	table := ratetable.Table{
		Name: "clamp",
		Brackets: []ratetable.Bracket{
			{Min: decimal.NewFromInt(100), Max: nil, FlatAmount: decimal.NewFromInt(7)},
		},
	}

	b, err := table.Lookup(decimal.NewFromInt(50))
	assert.NoError(t, err)
	assert.True(t, b.FlatAmount.Equal(decimal.NewFromInt(7)))
}

func TestLookupNegativeValue(t *testing.T) {
	table := threeBracketTable()

	_, err := table.Lookup(decimal.NewFromFloat(-0.01))
	assert.ErrorIs(t, err, ratetable.ErrNegativeValue)
}

func TestLookupEmptyTable(t *testing.T) {
	_, err := ratetable.Table{Name: "empty"}.Lookup(decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ratetable.ErrEmptyTable)
}

func TestValidateAcceptsWellFormedTable(t *testing.T) {
	assert.NoError(t, threeBracketTable().Validate())
}

func TestValidateRejectsOverlap(t *testing.T) {
	table := ratetable.Table{
		Name: "overlap",
		Brackets: []ratetable.Bracket{
			{Min: decimal.Zero, Max: ratetable.UpTo(1000)},
			{Min: decimal.NewFromInt(1000), Max: nil},
		},
	}

	assert.Error(t, table.Validate())
}

func TestValidateRejectsGap(t *testing.T) {
	table := ratetable.Table{
		Name: "gap",
		Brackets: []ratetable.Bracket{
			{Min: decimal.Zero, Max: ratetable.UpTo(999.99)},
			{Min: decimal.NewFromInt(1500), Max: nil},
		},
	}

	assert.Error(t, table.Validate())
}

func TestValidateRejectsOpenEndedNotLast(t *testing.T) {
	table := ratetable.Table{
		Name: "open",
		Brackets: []ratetable.Bracket{
			{Min: decimal.Zero, Max: nil},
			{Min: decimal.NewFromInt(1000), Max: nil},
		},
	}

	assert.Error(t, table.Validate())
}

func TestValidateRejectsMaxBelowMin(t *testing.T) {
	table := ratetable.Table{
		Name: "inverted",
		Brackets: []ratetable.Bracket{
			{Min: decimal.NewFromInt(500), Max: ratetable.UpTo(100)},
		},
	}

	assert.Error(t, table.Validate())
}
