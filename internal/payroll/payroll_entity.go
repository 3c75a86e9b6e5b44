package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayrollRecord is the persisted pay computation for one employee and period.
//
// CalculationDetails and AttendanceData are snapshot blobs written once at
// creation. Display and payslip rendering read them back; nothing ever
// re-derives amounts from them.
type PayrollRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_period"`
	EmployeeName string    `gorm:"column:employee_name;type:varchar(120);not null"`
	Department   string    `gorm:"type:varchar(80)"`

	PayPeriodStart time.Time `gorm:"type:date;not null;index:idx_employee_period"`
	PayPeriodEnd   time.Time `gorm:"type:date;not null;index:idx_employee_period"`

	// Earnings
	BasicSalary    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimeHours  decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	OvertimePay    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NightDiffHours decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	NightDiffPay   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HolidayPay     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Allowances     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Bonuses        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GrossPay       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Deductions
	LateDeduction      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	AbsenceDeduction   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	UndertimeDeduction decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HalfDayDeduction   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	StatutoryDeduction decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDeductions    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetPay             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Workflow & audit
	Status      Status     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentDate *time.Time `gorm:"type:date;index"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`

	// Frozen snapshots (JSON blobs)
	CalculationDetails []byte `gorm:"type:jsonb"`
	AttendanceData     []byte `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}
