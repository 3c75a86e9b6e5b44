package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/statutory"
)

const hoursPerDay = 8

// Multipliers are the premium rates applied to employee-reported hours.
// Overtime and holiday multiply the hourly rate; night differential is the
// premium fraction on top of hours already paid in the basic salary.
type Multipliers struct {
	Overtime  decimal.Decimal
	NightDiff decimal.Decimal
	Holiday   decimal.Decimal
}

func DefaultMultipliers() Multipliers {
	return Multipliers{
		Overtime:  decimal.NewFromFloat(1.25),
		NightDiff: decimal.NewFromFloat(0.10),
		Holiday:   decimal.NewFromFloat(1.0),
	}
}

// ComputeInput carries the period's employee-reported figures.
type ComputeInput struct {
	OvertimeHours  decimal.Decimal
	NightDiffHours decimal.Decimal
	HolidayHours   decimal.Decimal
	Allowances     decimal.Decimal
	Bonuses        decimal.Decimal
}

// Calculation is the full computation snapshot. It is marshaled verbatim into
// the record's CalculationDetails blob so what was shown at computation time
// can always be reproduced without re-running any arithmetic.
type Calculation struct {
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`
	WorkingDays    int    `json:"working_days"`

	BasicSalary decimal.Decimal `json:"basic_salary"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`

	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	NightDiffHours decimal.Decimal `json:"night_diff_hours"`
	NightDiffPay   decimal.Decimal `json:"night_diff_pay"`
	HolidayHours   decimal.Decimal `json:"holiday_hours"`
	HolidayPay     decimal.Decimal `json:"holiday_pay"`
	Allowances     decimal.Decimal `json:"allowances"`
	Bonuses        decimal.Decimal `json:"bonuses"`
	GrossPay       decimal.Decimal `json:"gross_pay"`

	Attendance attendance.DeductionResult `json:"attendance"`
	Statutory  statutory.Contributions    `json:"statutory"`

	AttendanceDeduction decimal.Decimal `json:"attendance_deduction"`
	StatutoryDeduction  decimal.Decimal `json:"statutory_deduction"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetPay              decimal.Decimal `json:"net_pay"`

	ComputedAt time.Time `json:"computed_at"`
}

// Engine turns pay terms plus a period's attendance into a Calculation.
type Engine struct {
	statutory   *statutory.Calculator
	multipliers Multipliers
}

func NewEngine(calc *statutory.Calculator) *Engine {
	return NewEngineWithMultipliers(calc, DefaultMultipliers())
}

func NewEngineWithMultipliers(calc *statutory.Calculator, m Multipliers) *Engine {
	return &Engine{statutory: calc, multipliers: m}
}

// Compute runs the fixed calculation pipeline:
//
//	basic -> premium pay -> attendance deductions -> gross ->
//	statutory contributions -> totals -> net
//
// The daily rate is the monthly basic salary divided by the period's weekday
// count (Mon-Fri). A period with no weekdays fails fast rather than dividing
// by zero, and a negative net result is rejected before anything persists.
func (e *Engine) Compute(
	emp *employee.Employee,
	records []attendance.Attendance,
	periodStart, periodEnd time.Time,
	input ComputeInput,
) (Calculation, error) {
	workingDays := countWeekdays(periodStart, periodEnd)
	if workingDays == 0 {
		return Calculation{}, payrollerrors.ErrNoWorkingDays
	}

	basic := emp.BasicSalary
	dailyRate := basic.Div(decimal.NewFromInt(int64(workingDays)))
	hourlyRate := dailyRate.Div(decimal.NewFromInt(hoursPerDay))

	overtimePay := input.OvertimeHours.Mul(hourlyRate).Mul(e.multipliers.Overtime).Round(2)
	nightDiffPay := input.NightDiffHours.Mul(hourlyRate).Mul(e.multipliers.NightDiff).Round(2)
	holidayPay := input.HolidayHours.Mul(hourlyRate).Mul(e.multipliers.Holiday).Round(2)

	grossPay := basic.
		Add(overtimePay).
		Add(nightDiffPay).
		Add(holidayPay).
		Add(input.Allowances).
		Add(input.Bonuses).
		Round(2)

	attendanceResult := attendance.ComputeDeductions(records, dailyRate)

	contributions, err := e.statutory.Compute(basic)
	if err != nil {
		return Calculation{}, err
	}

	attendanceDeduction := attendanceResult.Total
	statutoryDeduction := contributions.TotalEmployeeShare()
	totalDeductions := attendanceDeduction.Add(statutoryDeduction).Round(2)

	netPay := grossPay.Sub(totalDeductions)
	if netPay.IsNegative() {
		return Calculation{}, payrollerrors.ErrNegativeNetPay
	}

	return Calculation{
		PayPeriodStart: periodStart.Format("2006-01-02"),
		PayPeriodEnd:   periodEnd.Format("2006-01-02"),
		WorkingDays:    workingDays,

		BasicSalary: basic,
		DailyRate:   dailyRate.Round(2),
		HourlyRate:  hourlyRate.Round(2),

		OvertimeHours:  input.OvertimeHours,
		OvertimePay:    overtimePay,
		NightDiffHours: input.NightDiffHours,
		NightDiffPay:   nightDiffPay,
		HolidayHours:   input.HolidayHours,
		HolidayPay:     holidayPay,
		Allowances:     input.Allowances,
		Bonuses:        input.Bonuses,
		GrossPay:       grossPay,

		Attendance: attendanceResult,
		Statutory:  contributions,

		AttendanceDeduction: attendanceDeduction,
		StatutoryDeduction:  statutoryDeduction,
		TotalDeductions:     totalDeductions,
		NetPay:              netPay,

		ComputedAt: time.Now().UTC(),
	}, nil
}

// countWeekdays counts Mon-Fri days in the inclusive date range.
func countWeekdays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
