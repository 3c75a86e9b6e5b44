package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type PayrollQueryFilter struct {
	Status     *Status
	Department string
	EmployeeID string
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *PayrollRecord) error
	FindAll(ctx context.Context, filter PayrollQueryFilter) ([]PayrollRecord, error)
	FindByID(ctx context.Context, id string) (*PayrollRecord, error)
	FindAllInStatus(ctx context.Context, statuses []Status) ([]PayrollRecord, error)
	Update(ctx context.Context, record *PayrollRecord) error
	Delete(ctx context.Context, id string) error
	HasOverlappingPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, excludeID *string) (bool, error)
	// UpdateStatusWhere is the guarded-transition primitive: one conditional
	// UPDATE that only touches rows currently in an allowed prior state, and
	// reports how many rows it actually moved.
	UpdateStatusWhere(ctx context.Context, ids []string, from []Status, to Status, paymentDate *time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, record *PayrollRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindAll(ctx context.Context, filter PayrollQueryFilter) ([]PayrollRecord, error) {
	db := r.db.WithContext(ctx).Model(&PayrollRecord{})

	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}

	var records []PayrollRecord
	err := db.Order("pay_period_start DESC, employee_name ASC").Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindAllInStatus(ctx context.Context, statuses []Status) ([]PayrollRecord, error) {
	var records []PayrollRecord
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("pay_period_start ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) Update(ctx context.Context, record *PayrollRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&PayrollRecord{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingPeriod(
	ctx context.Context,
	employeeID string,
	periodStart, periodEnd time.Time,
	excludeID *string,
) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusCancelled).
		Where("NOT (pay_period_end < ? OR pay_period_start > ?)", periodStart, periodEnd)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateStatusWhere(
	ctx context.Context,
	ids []string,
	from []Status,
	to Status,
	paymentDate *time.Time,
) (int64, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if paymentDate != nil {
		updates["payment_date"] = *paymentDate
	}

	res := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("id IN ?", ids).
		Where("status IN ?", from).
		Updates(updates)

	return res.RowsAffected, res.Error
}
