package payroll

import (
	"go-payroll/internal/attendance"
)

type CreatePayrollRequest struct {
	EmployeeID     string  `json:"employee_id" binding:"required,uuid"`
	PayPeriodStart string  `json:"pay_period_start" binding:"required"`
	PayPeriodEnd   string  `json:"pay_period_end" binding:"required"`
	OvertimeHours  float64 `json:"overtime_hours" binding:"gte=0"`
	NightDiffHours float64 `json:"night_diff_hours" binding:"gte=0"`
	HolidayHours   float64 `json:"holiday_hours" binding:"gte=0"`
	Allowances     float64 `json:"allowances" binding:"gte=0"`
	Bonuses        float64 `json:"bonuses" binding:"gte=0"`
}

// UpdatePayrollRequest is a whole-record overwrite: the record is recomputed
// from these figures and saved in full, never field-patched.
type UpdatePayrollRequest struct {
	OvertimeHours  float64 `json:"overtime_hours" binding:"gte=0"`
	NightDiffHours float64 `json:"night_diff_hours" binding:"gte=0"`
	HolidayHours   float64 `json:"holiday_hours" binding:"gte=0"`
	Allowances     float64 `json:"allowances" binding:"gte=0"`
	Bonuses        float64 `json:"bonuses" binding:"gte=0"`
	Status         string  `json:"status" binding:"required,oneof=PENDING PROCESSED PAID RELEASED CANCELLED"`
}

type GetPayrollsFilterRequest struct {
	Status     string `form:"status"`
	Department string `form:"department"`
	EmployeeID string `form:"employee_id"`
}

type BatchMarkPaidRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

type PayrollResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	Department     string `json:"department,omitempty"`
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`

	BasicSalary  float64 `json:"basic_salary"`
	OvertimePay  float64 `json:"overtime_pay"`
	NightDiffPay float64 `json:"night_diff_pay"`
	HolidayPay   float64 `json:"holiday_pay"`
	Allowances   float64 `json:"allowances"`
	Bonuses      float64 `json:"bonuses"`
	GrossPay     float64 `json:"gross_pay"`

	LateDeduction      float64 `json:"late_deduction"`
	AbsenceDeduction   float64 `json:"absence_deduction"`
	UndertimeDeduction float64 `json:"undertime_deduction"`
	HalfDayDeduction   float64 `json:"halfday_deduction"`
	StatutoryDeduction float64 `json:"statutory_deduction"`
	TotalDeductions    float64 `json:"total_deductions"`
	NetPay             float64 `json:"net_pay"`

	Status      string  `json:"status"`
	PaymentDate *string `json:"payment_date,omitempty"`
	CreatedBy   string  `json:"created_by"`
}

// PayrollBreakdownResponse exposes the frozen snapshots. The amounts come
// straight from the stored blobs, not from a recomputation.
type PayrollBreakdownResponse struct {
	ID          string                 `json:"id"`
	Status      string                 `json:"status"`
	Calculation Calculation            `json:"calculation"`
	Attendance  []AttendanceDaySummary `json:"attendance"`
}

// AttendanceDaySummary is the per-day slice of the AttendanceData snapshot.
type AttendanceDaySummary struct {
	Date             string `json:"date"`
	Status           string `json:"status"`
	LateMinutes      int    `json:"late_minutes,omitempty"`
	UndertimeMinutes int    `json:"undertime_minutes,omitempty"`
}

// TransitionResponse reports a guarded status update. Affected is 0 when the
// record was not in an eligible state; repeating the call is always safe.
type TransitionResponse struct {
	ID          string  `json:"id"`
	Affected    int64   `json:"affected"`
	Status      string  `json:"status,omitempty"`
	PaymentDate *string `json:"payment_date,omitempty"`
	Message     string  `json:"message,omitempty"`
}

type BatchTransitionResponse struct {
	Requested int   `json:"requested"`
	Affected  int64 `json:"affected"`
}

func attendanceDaySummaries(records []attendance.Attendance) []AttendanceDaySummary {
	out := make([]AttendanceDaySummary, len(records))
	for i, rec := range records {
		out[i] = AttendanceDaySummary{
			Date:             rec.AttendanceDate.Format("2006-01-02"),
			Status:           rec.Status,
			LateMinutes:      rec.LateMinutes,
			UndertimeMinutes: rec.UndertimeMinutes,
		}
	}
	return out
}
