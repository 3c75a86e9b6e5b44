package attendance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	hoursPerDay    = 8
	minutesPerHour = 60

	// A half day is reported as 240 minutes regardless of the actual
	// timestamps; the amount math uses dailyRate/2, not the minutes.
	halfDayMinutes = 240
)

// DayDetail is one contributing line of the deduction breakdown.
type DayDetail struct {
	Date    string          `json:"date"`
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Minutes int             `json:"minutes"`
}

// Summary counts the period's days per status.
type Summary struct {
	PresentDays           int `json:"present_days"`
	AbsentDays            int `json:"absent_days"`
	LateDays              int `json:"late_days"`
	HalfDayDays           int `json:"halfday_days"`
	UndertimeDays         int `json:"undertime_days"`
	TotalLateMinutes      int `json:"total_late_minutes"`
	TotalUndertimeMinutes int `json:"total_undertime_minutes"`
	TotalDays             int `json:"total_days"`
}

// DeductionResult is the derived attendance deduction breakdown. It is never
// persisted on its own; payroll freezes it into the record snapshot.
type DeductionResult struct {
	LateDeduction      decimal.Decimal `json:"late_deduction"`
	AbsenceDeduction   decimal.Decimal `json:"absence_deduction"`
	UndertimeDeduction decimal.Decimal `json:"undertime_deduction"`
	HalfDayDeduction   decimal.Decimal `json:"halfday_deduction"`
	Total              decimal.Decimal `json:"total_attendance_deduction"`
	PerDay             []DayDetail     `json:"per_day_details"`
	Summary            Summary         `json:"summary"`
}

// ComputeDeductions reduces a period's attendance rows to a deduction
// breakdown against the given daily rate.
//
// Each day lands in at most one bucket, decided by its status. Unknown
// statuses only increment the day count. A nil or empty slice is a valid
// input meaning "nothing to deduct", not an error.
func ComputeDeductions(records []Attendance, dailyRate decimal.Decimal) DeductionResult {
	hourlyRate := dailyRate.Div(decimal.NewFromInt(hoursPerDay))
	minuteRate := hourlyRate.Div(decimal.NewFromInt(minutesPerHour))

	result := DeductionResult{
		LateDeduction:      decimal.Zero,
		AbsenceDeduction:   decimal.Zero,
		UndertimeDeduction: decimal.Zero,
		HalfDayDeduction:   decimal.Zero,
		Total:              decimal.Zero,
		PerDay:             []DayDetail{},
	}

	for _, rec := range records {
		result.Summary.TotalDays++
		date := rec.AttendanceDate.Format("2006-01-02")

		switch rec.Status {
		case StatusPresent:
			result.Summary.PresentDays++

		case StatusAbsent:
			amount := dailyRate.Round(2)
			result.AbsenceDeduction = result.AbsenceDeduction.Add(amount)
			result.Summary.AbsentDays++
			result.PerDay = append(result.PerDay, DayDetail{
				Date:   date,
				Type:   "Absent",
				Amount: amount,
			})

		case StatusLate:
			amount := minuteRate.Mul(decimal.NewFromInt(int64(rec.LateMinutes))).Round(2)
			result.LateDeduction = result.LateDeduction.Add(amount)
			result.Summary.LateDays++
			result.Summary.TotalLateMinutes += rec.LateMinutes
			result.PerDay = append(result.PerDay, DayDetail{
				Date:    date,
				Type:    fmt.Sprintf("Late (%d min)", rec.LateMinutes),
				Amount:  amount,
				Minutes: rec.LateMinutes,
			})

		case StatusUndertime:
			amount := minuteRate.Mul(decimal.NewFromInt(int64(rec.UndertimeMinutes))).Round(2)
			result.UndertimeDeduction = result.UndertimeDeduction.Add(amount)
			result.Summary.UndertimeDays++
			result.Summary.TotalUndertimeMinutes += rec.UndertimeMinutes
			result.PerDay = append(result.PerDay, DayDetail{
				Date:    date,
				Type:    fmt.Sprintf("Undertime (%d min)", rec.UndertimeMinutes),
				Amount:  amount,
				Minutes: rec.UndertimeMinutes,
			})

		case StatusHalfDay:
			amount := dailyRate.Div(decimal.NewFromInt(2)).Round(2)
			result.HalfDayDeduction = result.HalfDayDeduction.Add(amount)
			result.Summary.HalfDayDays++
			result.PerDay = append(result.PerDay, DayDetail{
				Date:    date,
				Type:    "Half Day",
				Amount:  amount,
				Minutes: halfDayMinutes,
			})

		default:
			// Unknown status: counted in total_days only.
		}
	}

	result.Total = result.LateDeduction.
		Add(result.AbsenceDeduction).
		Add(result.UndertimeDeduction).
		Add(result.HalfDayDeduction)

	return result
}
