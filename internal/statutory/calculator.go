package statutory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"go-payroll/internal/ratetable"
)

// Share is one scheme's contribution split. Only the employee share reduces
// net pay; employer and EC amounts are carried for reporting.
type Share struct {
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
	EC       decimal.Decimal `json:"ec"`
}

// Contributions is the full statutory breakdown for one basic salary figure.
type Contributions struct {
	SSS            Share           `json:"sss"`
	PhilHealth     Share           `json:"philhealth"`
	PagIBIG        Share           `json:"pagibig"`
	TaxableIncome  decimal.Decimal `json:"taxable_income"`
	WithholdingTax decimal.Decimal `json:"withholding_tax"`
}

// TotalEmployeeShare is the amount deducted from the employee's pay:
// the three contribution shares plus withholding tax.
func (c Contributions) TotalEmployeeShare() decimal.Decimal {
	return c.SSS.Employee.
		Add(c.PhilHealth.Employee).
		Add(c.PagIBIG.Employee).
		Add(c.WithholdingTax)
}

type Calculator struct {
	sss        ratetable.Table
	philHealth ratetable.Table
	pagIBIG    ratetable.Table
	tax        ratetable.Table
}

// NewCalculator builds a calculator over the default schedules.
func NewCalculator() *Calculator {
	return NewCalculatorWithTables(
		DefaultSSSTable(),
		DefaultPhilHealthTable(),
		DefaultPagIBIGTable(),
		DefaultTaxTable(),
	)
}

// NewCalculatorWithTables accepts externally administered tables. The tables
// are treated as read-only snapshots from here on.
func NewCalculatorWithTables(sss, philHealth, pagIBIG, tax ratetable.Table) *Calculator {
	return &Calculator{
		sss:        sss,
		philHealth: philHealth,
		pagIBIG:    pagIBIG,
		tax:        tax,
	}
}

// Validate checks all four tables for overlaps and gaps.
func (c *Calculator) Validate() error {
	for _, t := range []ratetable.Table{c.sss, c.philHealth, c.pagIBIG, c.tax} {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Compute resolves the statutory breakdown for a monthly basic salary.
//
// The order is fixed: SSS, PhilHealth and Pag-IBIG are resolved first, and
// taxable income is the salary minus those three employee shares. Withholding
// tax is then bracketed on the taxable figure, never on the raw salary.
func (c *Calculator) Compute(basicSalary decimal.Decimal) (Contributions, error) {
	sss, err := c.computeSSS(basicSalary)
	if err != nil {
		return Contributions{}, err
	}

	philHealth, err := c.computePhilHealth(basicSalary)
	if err != nil {
		return Contributions{}, err
	}

	pagIBIG, err := c.computePagIBIG(basicSalary)
	if err != nil {
		return Contributions{}, err
	}

	taxable := basicSalary.
		Sub(sss.Employee).
		Sub(philHealth.Employee).
		Sub(pagIBIG.Employee)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	tax, err := c.computeTax(taxable)
	if err != nil {
		return Contributions{}, err
	}

	return Contributions{
		SSS:            sss,
		PhilHealth:     philHealth,
		PagIBIG:        pagIBIG,
		TaxableIncome:  taxable.Round(2),
		WithholdingTax: tax,
	}, nil
}

func (c *Calculator) computeSSS(salary decimal.Decimal) (Share, error) {
	b, err := c.sss.Lookup(salary)
	if err != nil {
		return Share{}, fmt.Errorf("sss lookup: %w", err)
	}
	return Share{
		Employee: b.EmployeeShare,
		Employer: b.EmployerShare,
		EC:       b.ECShare,
	}, nil
}

func (c *Calculator) computePhilHealth(salary decimal.Decimal) (Share, error) {
	b, err := c.philHealth.Lookup(salary)
	if err != nil {
		return Share{}, fmt.Errorf("philhealth lookup: %w", err)
	}

	// Flat brackets carry the employee half directly (floor and ceiling);
	// rate brackets split the premium evenly.
	employee := b.FlatAmount
	if b.Rate.IsPositive() {
		employee = salary.Mul(b.Rate).Div(decimal.NewFromInt(2)).Round(2)
	}

	return Share{Employee: employee, Employer: employee}, nil
}

func (c *Calculator) computePagIBIG(salary decimal.Decimal) (Share, error) {
	b, err := c.pagIBIG.Lookup(salary)
	if err != nil {
		return Share{}, fmt.Errorf("pagibig lookup: %w", err)
	}

	base := salary
	cap := decimal.NewFromInt(pagibigBaseCap)
	if base.GreaterThan(cap) {
		base = cap
	}

	return Share{
		Employee: base.Mul(b.Rate).Round(2),
		Employer: base.Mul(decimal.NewFromFloat(pagibigUpperRate)).Round(2),
	}, nil
}

func (c *Calculator) computeTax(taxable decimal.Decimal) (decimal.Decimal, error) {
	b, err := c.tax.Lookup(taxable)
	if err != nil {
		return decimal.Zero, fmt.Errorf("tax lookup: %w", err)
	}

	excess := taxable.Sub(b.Min)
	if excess.IsNegative() {
		excess = decimal.Zero
	}

	return b.FlatAmount.Add(excess.Mul(b.Rate)).Round(2), nil
}
