package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName         string          `gorm:"column:full_name;type:varchar(120);not null"`
	Email            string          `gorm:"uniqueIndex"`
	Department       string          `gorm:"type:varchar(80);not null"`
	Position         string          `gorm:"type:varchar(80)"`
	BasicSalary      decimal.Decimal `gorm:"column:basic_salary;type:numeric(14,2);not null;default:0"`
	EmploymentStatus string          `gorm:"column:employment_status;type:varchar(20);not null;default:'ACTIVE';index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
