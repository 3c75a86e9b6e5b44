package statutory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/statutory"
)

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func TestDefaultTablesAreWellFormed(t *testing.T) {
	assert.NoError(t, statutory.NewCalculator().Validate())
}

func TestComputeMidRangeSalary(t *testing.T) {
	c := statutory.NewCalculator()

	got, err := c.Compute(decimal.NewFromInt(30000))
	assert.NoError(t, err)

	// 30,000 pegs the top SSS credit of 30,000.
	assertAmount(t, "1350.00", got.SSS.Employee)
	assertAmount(t, "2850.00", got.SSS.Employer)
	assertAmount(t, "30.00", got.SSS.EC)

	// 5% premium split evenly.
	assertAmount(t, "750.00", got.PhilHealth.Employee)
	assertAmount(t, "750.00", got.PhilHealth.Employer)

	// Contribution base caps at 10,000.
	assertAmount(t, "200.00", got.PagIBIG.Employee)
	assertAmount(t, "200.00", got.PagIBIG.Employer)

	// Taxable income is salary net of the three employee shares.
	assertAmount(t, "27700.00", got.TaxableIncome)
	assertAmount(t, "1030.05", got.WithholdingTax)

	assertAmount(t, "3330.05", got.TotalEmployeeShare())
}

func TestComputeLowSalary(t *testing.T) {
	c := statutory.NewCalculator()

	got, err := c.Compute(decimal.NewFromInt(5000))
	assert.NoError(t, err)

	// 5,000 lands in the 4,750-5,249.99 range with a 5,000 credit.
	assertAmount(t, "225.00", got.SSS.Employee)
	// PhilHealth floors its base at 10,000.
	assertAmount(t, "250.00", got.PhilHealth.Employee)
	// Above 1,500 the Pag-IBIG employee rate is 2%.
	assertAmount(t, "100.00", got.PagIBIG.Employee)

	assertAmount(t, "4425.00", got.TaxableIncome)
	assertAmount(t, "0.00", got.WithholdingTax)
}

func TestComputeHighSalaryHitsAllCaps(t *testing.T) {
	c := statutory.NewCalculator()

	got, err := c.Compute(decimal.NewFromInt(200000))
	assert.NoError(t, err)

	assertAmount(t, "1350.00", got.SSS.Employee)
	// PhilHealth base ceilings at 100,000.
	assertAmount(t, "2500.00", got.PhilHealth.Employee)
	assertAmount(t, "200.00", got.PagIBIG.Employee)

	assertAmount(t, "195950.00", got.TaxableIncome)
	assertAmount(t, "42326.70", got.WithholdingTax)
}

func TestComputeZeroSalary(t *testing.T) {
	c := statutory.NewCalculator()

	got, err := c.Compute(decimal.Zero)
	assert.NoError(t, err)

	// Zero clamps into the lowest SSS bracket (4,000 credit).
	assertAmount(t, "180.00", got.SSS.Employee)
	assertAmount(t, "250.00", got.PhilHealth.Employee)
	assertAmount(t, "0.00", got.PagIBIG.Employee)

	// Deductions exceed the salary; taxable income clamps at zero.
	assertAmount(t, "0.00", got.TaxableIncome)
	assertAmount(t, "0.00", got.WithholdingTax)
}

func TestComputeNegativeSalary(t *testing.T) {
	c := statutory.NewCalculator()

	_, err := c.Compute(decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestTaxBracketBoundary(t *testing.T) {
	// At each bracket floor the tax equals the bracket's base amount; the
	// marginal rate only applies to the excess.
	tables := []struct {
		taxable string
		want    string
	}{
		{"20833", "0.00"},
		{"33333", "1875.00"},
		{"66667", "8541.80"},
	}

	for _, tc := range tables {
		taxable, err := decimal.NewFromString(tc.taxable)
		assert.NoError(t, err)

		b, err := statutory.DefaultTaxTable().Lookup(taxable)
		assert.NoError(t, err)

		excess := taxable.Sub(b.Min)
		tax := b.FlatAmount.Add(excess.Mul(b.Rate)).Round(2)
		assert.Equal(t, tc.want, tax.StringFixed(2))
	}
}
