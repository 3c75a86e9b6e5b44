package budget

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=budget_repo.go -destination=mock/budget_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *Budget, members []BudgetMember) error
	FindAll(ctx context.Context) ([]Budget, error)
	FindByID(ctx context.Context, id string) (*Budget, error)
	FindMembers(ctx context.Context, budgetID string) ([]BudgetMember, error)
	// UpdateWorkflowWhere is the guarded-transition primitive for the
	// approval workflow: a single conditional UPDATE that only touches the
	// budget when its approval status is still in an allowed prior state.
	UpdateWorkflowWhere(ctx context.Context, id string, from []ApprovalStatus, updates map[string]interface{}) (int64, error)
	// ReleaseWhereApproved guards the disbursement step on budget_status.
	ReleaseWhereApproved(ctx context.Context, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, b *Budget, members []BudgetMember) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&members).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Budget, error) {
	var budgets []Budget
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&budgets).Error
	return budgets, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Budget, error) {
	var b Budget
	err := r.db.WithContext(ctx).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindMembers(ctx context.Context, budgetID string) ([]BudgetMember, error) {
	var members []BudgetMember
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) UpdateWorkflowWhere(
	ctx context.Context,
	id string,
	from []ApprovalStatus,
	updates map[string]interface{},
) (int64, error) {
	updates["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&Budget{}).
		Where("id = ?", id).
		Where("approval_status IN ?", from).
		Updates(updates)

	return res.RowsAffected, res.Error
}

func (r *repository) ReleaseWhereApproved(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Budget{}).
		Where("id = ?", id).
		Where("budget_status = ?", StatusApproved).
		Where("approval_status = ?", ApprovalApproved).
		Updates(map[string]interface{}{
			"budget_status": StatusReleased,
			"updated_at":    time.Now().UTC(),
		})

	return res.RowsAffected, res.Error
}
