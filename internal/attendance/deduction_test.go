package attendance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/attendance"
)

func day(t *testing.T, offset int, status string, late, undertime int) attendance.Attendance {
	t.Helper()
	base := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	return attendance.Attendance{
		AttendanceDate:   base.AddDate(0, 0, offset),
		Status:           status,
		LateMinutes:      late,
		UndertimeMinutes: undertime,
	}
}

func TestComputeDeductionsEmpty(t *testing.T) {
	got := attendance.ComputeDeductions(nil, decimal.NewFromInt(800))

	assert.Equal(t, "0.00", got.Total.StringFixed(2))
	assert.Empty(t, got.PerDay)
	assert.Equal(t, 0, got.Summary.TotalDays)
}

func TestComputeDeductionsAbsent(t *testing.T) {
	records := []attendance.Attendance{day(t, 0, attendance.StatusAbsent, 0, 0)}

	got := attendance.ComputeDeductions(records, decimal.NewFromInt(800))

	assert.Equal(t, "800.00", got.AbsenceDeduction.StringFixed(2))
	assert.Equal(t, "800.00", got.Total.StringFixed(2))
	assert.Equal(t, 1, got.Summary.AbsentDays)
	assert.Len(t, got.PerDay, 1)
	assert.Equal(t, "Absent", got.PerDay[0].Type)
}

func TestComputeDeductionsLate(t *testing.T) {
	records := []attendance.Attendance{day(t, 0, attendance.StatusLate, 30, 0)}

	got := attendance.ComputeDeductions(records, decimal.NewFromInt(800))

	// 800 / 8 / 60 = 1.666... per minute; 30 minutes round to 50.00.
	assert.Equal(t, "50.00", got.LateDeduction.StringFixed(2))
	assert.Equal(t, 30, got.Summary.TotalLateMinutes)
	assert.Equal(t, "Late (30 min)", got.PerDay[0].Type)
	assert.Equal(t, 30, got.PerDay[0].Minutes)
}

func TestComputeDeductionsUndertime(t *testing.T) {
	records := []attendance.Attendance{day(t, 0, attendance.StatusUndertime, 0, 45)}

	got := attendance.ComputeDeductions(records, decimal.NewFromInt(800))

	assert.Equal(t, "75.00", got.UndertimeDeduction.StringFixed(2))
	assert.Equal(t, 45, got.Summary.TotalUndertimeMinutes)
	assert.Equal(t, "Undertime (45 min)", got.PerDay[0].Type)
}

func TestComputeDeductionsHalfDay(t *testing.T) {
	records := []attendance.Attendance{day(t, 0, attendance.StatusHalfDay, 0, 0)}

	got := attendance.ComputeDeductions(records, decimal.NewFromInt(800))

	assert.Equal(t, "400.00", got.HalfDayDeduction.StringFixed(2))
	assert.Equal(t, 240, got.PerDay[0].Minutes)
	assert.Equal(t, 1, got.Summary.HalfDayDays)
}

func TestComputeDeductionsPresentOnly(t *testing.T) {
	records := []attendance.Attendance{
		day(t, 0, attendance.StatusPresent, 0, 0),
		day(t, 1, attendance.StatusPresent, 0, 0),
	}

	got := attendance.ComputeDeductions(records, decimal.NewFromInt(800))

	assert.Equal(t, "0.00", got.Total.StringFixed(2))
	assert.Equal(t, 2, got.Summary.PresentDays)
	assert.Equal(t, 2, got.Summary.TotalDays)
	assert.Empty(t, got.PerDay)
}

func TestComputeDeductionsMixedMonth(t *testing.T) {
	records := make([]attendance.Attendance, 0, 22)
	for i := 0; i < 20; i++ {
		records = append(records, day(t, i, attendance.StatusPresent, 0, 0))
	}
	records = append(records, day(t, 20, attendance.StatusAbsent, 0, 0))
	records = append(records, day(t, 21, attendance.StatusLate, 30, 0))

	got := attendance.ComputeDeductions(records, decimal.NewFromInt(800))

	assert.Equal(t, "850.00", got.Total.StringFixed(2))
	assert.Equal(t, 22, got.Summary.TotalDays)
	assert.Equal(t, 20, got.Summary.PresentDays)
	assert.Equal(t, 1, got.Summary.AbsentDays)
	assert.Equal(t, 1, got.Summary.LateDays)
	assert.Len(t, got.PerDay, 2)
}

func TestComputeDeductionsUnknownStatusCountsDayOnly(t *testing.T) {
	records := []attendance.Attendance{day(t, 0, "ON_LEAVE", 0, 0)}

	got := attendance.ComputeDeductions(records, decimal.NewFromInt(800))

	assert.Equal(t, "0.00", got.Total.StringFixed(2))
	assert.Equal(t, 1, got.Summary.TotalDays)
	assert.Empty(t, got.PerDay)
}

// The stored bucket totals must always sum to Total, because each per-day
// amount is rounded before it accumulates.
func TestComputeDeductionsAdditivity(t *testing.T) {
	records := []attendance.Attendance{
		day(t, 0, attendance.StatusAbsent, 0, 0),
		day(t, 1, attendance.StatusLate, 17, 0),
		day(t, 2, attendance.StatusUndertime, 0, 23),
		day(t, 3, attendance.StatusHalfDay, 0, 0),
		day(t, 4, attendance.StatusLate, 7, 0),
	}

	got := attendance.ComputeDeductions(records, decimal.NewFromFloat(913.43))

	sum := got.LateDeduction.
		Add(got.AbsenceDeduction).
		Add(got.UndertimeDeduction).
		Add(got.HalfDayDeduction)
	assert.True(t, got.Total.Equal(sum), "total %s != bucket sum %s", got.Total, sum)

	perDaySum := decimal.Zero
	for _, d := range got.PerDay {
		perDaySum = perDaySum.Add(d.Amount)
	}
	assert.True(t, got.Total.Equal(perDaySum), "total %s != per-day sum %s", got.Total, perDaySum)
}
