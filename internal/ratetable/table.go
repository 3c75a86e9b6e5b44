package ratetable

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeValue = errors.New("lookup value cannot be negative")
	ErrNoBracket     = errors.New("no bracket matches the value")
	ErrEmptyTable    = errors.New("rate table has no brackets")
)

// centavo is the smallest money step; adjacent brackets must meet at it.
var centavo = decimal.NewFromFloat(0.01)

// Bracket is one row of a statutory rate table. Max == nil means the bracket
// is open-ended ("and above"). Depending on the table, either FlatAmount,
// Rate, or the share fields carry the payload; unused fields stay zero.
type Bracket struct {
	Min           decimal.Decimal
	Max           *decimal.Decimal
	FlatAmount    decimal.Decimal
	Rate          decimal.Decimal
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
	ECShare       decimal.Decimal
}

// Contains reports whether value falls inside the bracket range.
func (b Bracket) Contains(value decimal.Decimal) bool {
	if value.LessThan(b.Min) {
		return false
	}
	if b.Max == nil {
		return true
	}
	return value.LessThanOrEqual(*b.Max)
}

// Table is an ordered, read-only set of brackets for one statutory scheme.
type Table struct {
	Name     string
	Brackets []Bracket
}

// Lookup resolves the bracket for a salary/income value.
//
// Brackets are scanned ascending; the first bracket containing the value
// wins. A value below the smallest bracket's Min clamps to that bracket so a
// zero or near-zero salary never fails the lookup.
func (t Table) Lookup(value decimal.Decimal) (Bracket, error) {
	if value.IsNegative() {
		return Bracket{}, fmt.Errorf("%s: %w", t.Name, ErrNegativeValue)
	}
	if len(t.Brackets) == 0 {
		return Bracket{}, fmt.Errorf("%s: %w", t.Name, ErrEmptyTable)
	}

	if value.LessThan(t.Brackets[0].Min) {
		return t.Brackets[0], nil
	}

	for _, b := range t.Brackets {
		if b.Contains(value) {
			return b, nil
		}
	}

	return Bracket{}, fmt.Errorf("%s: %w", t.Name, ErrNoBracket)
}

// Validate checks the structural invariants of the table: brackets sorted
// ascending by Min, ranges well-formed, no overlaps, no gaps wider than one
// centavo, and only the last bracket open-ended.
func (t Table) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("%s: %w", t.Name, ErrEmptyTable)
	}

	for i, b := range t.Brackets {
		if b.Min.IsNegative() {
			return fmt.Errorf("%s: bracket %d has negative min", t.Name, i)
		}
		if b.Max == nil {
			if i != len(t.Brackets)-1 {
				return fmt.Errorf("%s: bracket %d is open-ended but not last", t.Name, i)
			}
			continue
		}
		if b.Max.LessThan(b.Min) {
			return fmt.Errorf("%s: bracket %d has max below min", t.Name, i)
		}
		if i == len(t.Brackets)-1 {
			continue
		}

		next := t.Brackets[i+1]
		if next.Min.LessThanOrEqual(*b.Max) {
			return fmt.Errorf("%s: brackets %d and %d overlap", t.Name, i, i+1)
		}
		if next.Min.Sub(*b.Max).GreaterThan(centavo) {
			return fmt.Errorf("%s: gap between brackets %d and %d", t.Name, i, i+1)
		}
	}

	return nil
}

// UpTo returns a pointer Max for bracket literals; a nil Max means "and above".
func UpTo(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
