package statutory

import (
	"github.com/shopspring/decimal"

	"go-payroll/internal/ratetable"
)

// Default contribution tables. These mirror the published Philippine schedules
// (SSS 2023 circular, PhilHealth premium schedule, Pag-IBIG circular, TRAIN
// monthly withholding). They are plain data: the administering side can swap
// any of them out via NewCalculatorWithTables without touching the math.

const (
	sssEmployeeRate = 0.045
	sssEmployerRate = 0.095

	philHealthRate    = 0.05
	philHealthFloor   = 10000
	philHealthCeiling = 100000

	pagibigLowerRate = 0.01
	pagibigUpperRate = 0.02
	pagibigBaseCap   = 10000
)

// DefaultSSSTable builds the salary-credit schedule: ranges of 500 starting at
// 4,250 with a monthly salary credit stepping from 4,000 to the 30,000 cap.
// EC is a flat 10 up to a 14,750 credit, 30 above it.
func DefaultSSSTable() ratetable.Table {
	eeRate := decimal.NewFromFloat(sssEmployeeRate)
	erRate := decimal.NewFromFloat(sssEmployerRate)

	brackets := make([]ratetable.Bracket, 0, 53)

	addBracket := func(min decimal.Decimal, max *decimal.Decimal, credit decimal.Decimal) {
		ec := decimal.NewFromInt(10)
		if credit.GreaterThan(decimal.NewFromInt(14500)) {
			ec = decimal.NewFromInt(30)
		}
		brackets = append(brackets, ratetable.Bracket{
			Min:           min,
			Max:           max,
			EmployeeShare: credit.Mul(eeRate).Round(2),
			EmployerShare: credit.Mul(erRate).Round(2),
			ECShare:       ec,
		})
	}

	// Below-minimum earners map to the lowest credit.
	addBracket(decimal.Zero, ratetable.UpTo(4249.99), decimal.NewFromInt(4000))

	step := decimal.NewFromInt(500)
	min := decimal.NewFromInt(4250)
	credit := decimal.NewFromInt(4500)
	top := decimal.NewFromInt(29750)

	for min.LessThan(top) {
		max := min.Add(step).Sub(decimal.NewFromFloat(0.01))
		addBracket(min, &max, credit)
		min = min.Add(step)
		credit = credit.Add(step)
	}

	// 29,750 and above pegs at the 30,000 credit.
	addBracket(top, nil, decimal.NewFromInt(30000))

	return ratetable.Table{Name: "sss", Brackets: brackets}
}

// DefaultPhilHealthTable encodes the premium schedule: 5% of the monthly basic
// salary, with the contribution base floored at 10,000 and capped at 100,000.
// The premium is split evenly between employee and employer; shares here carry
// the employee half (flat at the floor/ceiling, rate-driven in between).
func DefaultPhilHealthTable() ratetable.Table {
	rate := decimal.NewFromFloat(philHealthRate)
	half := decimal.NewFromInt(2)

	floorPremium := decimal.NewFromInt(philHealthFloor).Mul(rate).Div(half).Round(2)
	ceilingPremium := decimal.NewFromInt(philHealthCeiling).Mul(rate).Div(half).Round(2)

	return ratetable.Table{
		Name: "philhealth",
		Brackets: []ratetable.Bracket{
			{Min: decimal.Zero, Max: ratetable.UpTo(9999.99), FlatAmount: floorPremium},
			{Min: decimal.NewFromInt(10000), Max: ratetable.UpTo(99999.99), Rate: rate},
			{Min: decimal.NewFromInt(100000), Max: nil, FlatAmount: ceilingPremium},
		},
	}
}

// DefaultPagIBIGTable: 1% employee share at 1,500/month and below, 2% above,
// employer always 2%. The fund caps the contribution base at 10,000.
func DefaultPagIBIGTable() ratetable.Table {
	return ratetable.Table{
		Name: "pagibig",
		Brackets: []ratetable.Bracket{
			{Min: decimal.Zero, Max: ratetable.UpTo(1500), Rate: decimal.NewFromFloat(pagibigLowerRate)},
			{Min: decimal.NewFromFloat(1500.01), Max: nil, Rate: decimal.NewFromFloat(pagibigUpperRate)},
		},
	}
}

// DefaultTaxTable is the TRAIN monthly withholding schedule. FlatAmount is the
// base tax for the bracket and Rate applies to the excess over Min.
func DefaultTaxTable() ratetable.Table {
	return ratetable.Table{
		Name: "withholding_tax",
		Brackets: []ratetable.Bracket{
			{Min: decimal.Zero, Max: ratetable.UpTo(20832.99)},
			{Min: decimal.NewFromInt(20833), Max: ratetable.UpTo(33332.99), Rate: decimal.NewFromFloat(0.15)},
			{Min: decimal.NewFromInt(33333), Max: ratetable.UpTo(66666.99), FlatAmount: decimal.NewFromFloat(1875), Rate: decimal.NewFromFloat(0.20)},
			{Min: decimal.NewFromInt(66667), Max: ratetable.UpTo(166666.99), FlatAmount: decimal.NewFromFloat(8541.80), Rate: decimal.NewFromFloat(0.25)},
			{Min: decimal.NewFromInt(166667), Max: ratetable.UpTo(666666.99), FlatAmount: decimal.NewFromFloat(33541.80), Rate: decimal.NewFromFloat(0.30)},
			{Min: decimal.NewFromInt(666667), Max: nil, FlatAmount: decimal.NewFromFloat(183541.80), Rate: decimal.NewFromFloat(0.35)},
		},
	}
}
