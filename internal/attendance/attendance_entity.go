package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent   = "PRESENT"
	StatusAbsent    = "ABSENT"
	StatusLate      = "LATE"
	StatusUndertime = "UNDERTIME"
	StatusHalfDay   = "HALF_DAY"
)

// Attendance is one employee-day in a pay period. Once a period is finalized
// these rows are read-only input to payroll.
type Attendance struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index:idx_employee_date,unique"`
	AttendanceDate   time.Time      `gorm:"column:attendance_date;type:date;not null;index:idx_employee_date,unique"`
	ClockIn          *time.Time     `gorm:"column:clock_in;type:timestamptz"`
	ClockOut         *time.Time     `gorm:"column:clock_out;type:timestamptz"`
	Status           string         `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	LateMinutes      int            `gorm:"column:late_minutes;not null;default:0"`
	UndertimeMinutes int            `gorm:"column:undertime_minutes;not null;default:0"`
	Notes            *string        `gorm:"column:notes;type:text"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Attendance) TableName() string {
	return "attendances"
}
