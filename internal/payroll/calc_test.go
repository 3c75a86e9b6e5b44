package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/statutory"
)

// August 2026 runs Saturday the 1st through Monday the 31st: 21 weekdays.
var (
	periodStart = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
)

func testEmployee(salary int64) *employee.Employee {
	return &employee.Employee{
		FullName:         "Maria Santos",
		Department:       "Engineering",
		BasicSalary:      decimal.NewFromInt(salary),
		EmploymentStatus: employee.StatusActive,
	}
}

func TestEngineComputeFullPipeline(t *testing.T) {
	engine := payroll.NewEngine(statutory.NewCalculator())

	absentDay := attendance.Attendance{
		AttendanceDate: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		Status:         attendance.StatusAbsent,
	}

	calc, err := engine.Compute(testEmployee(21000), []attendance.Attendance{absentDay}, periodStart, periodEnd, payroll.ComputeInput{
		OvertimeHours:  decimal.NewFromInt(8),
		NightDiffHours: decimal.NewFromInt(10),
		HolidayHours:   decimal.NewFromInt(8),
		Allowances:     decimal.NewFromInt(500),
		Bonuses:        decimal.NewFromInt(1000),
	})
	assert.NoError(t, err)

	assert.Equal(t, 21, calc.WorkingDays)
	assert.Equal(t, "1000.00", calc.DailyRate.StringFixed(2))
	assert.Equal(t, "125.00", calc.HourlyRate.StringFixed(2))

	// 8h x 125 x 1.25 / 10h x 125 x 0.10 / 8h x 125 x 1.0
	assert.Equal(t, "1250.00", calc.OvertimePay.StringFixed(2))
	assert.Equal(t, "125.00", calc.NightDiffPay.StringFixed(2))
	assert.Equal(t, "1000.00", calc.HolidayPay.StringFixed(2))
	assert.Equal(t, "24875.00", calc.GrossPay.StringFixed(2))

	// One absence at the full daily rate.
	assert.Equal(t, "1000.00", calc.AttendanceDeduction.StringFixed(2))

	// 21,000 basic: SSS 945 + PhilHealth 525 + Pag-IBIG 200, no tax.
	assert.Equal(t, "945.00", calc.Statutory.SSS.Employee.StringFixed(2))
	assert.Equal(t, "525.00", calc.Statutory.PhilHealth.Employee.StringFixed(2))
	assert.Equal(t, "200.00", calc.Statutory.PagIBIG.Employee.StringFixed(2))
	assert.Equal(t, "0.00", calc.Statutory.WithholdingTax.StringFixed(2))
	assert.Equal(t, "1670.00", calc.StatutoryDeduction.StringFixed(2))

	assert.Equal(t, "2670.00", calc.TotalDeductions.StringFixed(2))
	assert.Equal(t, "22205.00", calc.NetPay.StringFixed(2))
	assert.False(t, calc.ComputedAt.IsZero())
}

func TestEngineComputeGrossEqualsSumOfEarnings(t *testing.T) {
	engine := payroll.NewEngine(statutory.NewCalculator())

	calc, err := engine.Compute(testEmployee(30000), nil, periodStart, periodEnd, payroll.ComputeInput{
		OvertimeHours: decimal.NewFromFloat(3.5),
		Allowances:    decimal.NewFromFloat(1234.56),
	})
	assert.NoError(t, err)

	sum := calc.BasicSalary.
		Add(calc.OvertimePay).
		Add(calc.NightDiffPay).
		Add(calc.HolidayPay).
		Add(calc.Allowances).
		Add(calc.Bonuses)
	assert.True(t, calc.GrossPay.Equal(sum.Round(2)), "gross %s != earnings sum %s", calc.GrossPay, sum)

	net := calc.GrossPay.Sub(calc.TotalDeductions)
	assert.True(t, calc.NetPay.Equal(net), "net %s != gross - deductions %s", calc.NetPay, net)
}

func TestEngineComputeNoWorkingDays(t *testing.T) {
	engine := payroll.NewEngine(statutory.NewCalculator())

	// Saturday and Sunday only.
	weekend := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := engine.Compute(testEmployee(21000), nil, weekend, weekend.AddDate(0, 0, 1), payroll.ComputeInput{})

	assert.ErrorIs(t, err, payrollerrors.ErrNoWorkingDays)
}

func TestEngineComputeNegativeNetPay(t *testing.T) {
	engine := payroll.NewEngine(statutory.NewCalculator())

	// A month of absences plus statutory deductions exceeds the salary.
	records := make([]attendance.Attendance, 0, 21)
	for d := periodStart; !d.After(periodEnd); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		records = append(records, attendance.Attendance{
			AttendanceDate: d,
			Status:         attendance.StatusAbsent,
		})
	}

	_, err := engine.Compute(testEmployee(4000), records, periodStart, periodEnd, payroll.ComputeInput{})

	assert.ErrorIs(t, err, payrollerrors.ErrNegativeNetPay)
}

func TestEngineComputeSingleWeekday(t *testing.T) {
	engine := payroll.NewEngine(statutory.NewCalculator())

	monday := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	calc, err := engine.Compute(testEmployee(21000), nil, monday, monday, payroll.ComputeInput{})

	assert.NoError(t, err)
	assert.Equal(t, 1, calc.WorkingDays)
	assert.Equal(t, "21000.00", calc.DailyRate.StringFixed(2))
}
