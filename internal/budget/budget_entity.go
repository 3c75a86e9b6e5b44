package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a snapshot aggregate over a set of payroll records. The totals
// are summed once at creation; editing a member record afterwards does not
// change them.
type Budget struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BudgetName string    `gorm:"column:budget_name;type:varchar(60);not null;uniqueIndex"`

	BudgetPeriodStart time.Time `gorm:"type:date;not null"`
	BudgetPeriodEnd   time.Time `gorm:"type:date;not null"`

	TotalEmployees  int             `gorm:"not null;default:0"`
	TotalGrossPay   decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	TotalNetPay     decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`

	BudgetStatus   BudgetStatus   `gorm:"column:budget_status;type:varchar(20);not null;default:'DRAFT';index"`
	ApprovalStatus ApprovalStatus `gorm:"column:approval_status;type:varchar(20);not null;default:'DRAFT';index"`

	SubmittedForApprovalAt *time.Time
	ApprovedAt             *time.Time
	ApprovedBy             *uuid.UUID `gorm:"type:uuid"`
	ApproverNotes          string     `gorm:"type:varchar(500)"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Budget) TableName() string {
	return "budgets"
}

// BudgetMember associates a payroll record with the budget that counted it.
// The amounts are copied at aggregation time so the association stays a
// by-value snapshot; the payroll record itself is neither owned nor locked.
type BudgetMember struct {
	BudgetID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayrollRecordID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GrossPay        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetPay          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt       time.Time
}

func (BudgetMember) TableName() string {
	return "budget_members"
}
