package budget_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/budget"
	budgeterrors "go-payroll/internal/budget/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
)

type fakeBudgetRepository struct {
	withTxFn               func(tx *sql.Tx) budget.Repository
	createFn               func(ctx context.Context, b *budget.Budget, members []budget.BudgetMember) error
	findAllFn              func(ctx context.Context) ([]budget.Budget, error)
	findByIDFn             func(ctx context.Context, id string) (*budget.Budget, error)
	findMembersFn          func(ctx context.Context, budgetID string) ([]budget.BudgetMember, error)
	updateWorkflowWhereFn  func(ctx context.Context, id string, from []budget.ApprovalStatus, updates map[string]interface{}) (int64, error)
	releaseWhereApprovedFn func(ctx context.Context, id string) (int64, error)
}

func (f *fakeBudgetRepository) WithTx(tx *sql.Tx) budget.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBudgetRepository) Create(ctx context.Context, b *budget.Budget, members []budget.BudgetMember) error {
	if f.createFn != nil {
		return f.createFn(ctx, b, members)
	}
	return nil
}

func (f *fakeBudgetRepository) FindAll(ctx context.Context) ([]budget.Budget, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeBudgetRepository) FindByID(ctx context.Context, id string) (*budget.Budget, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &budget.Budget{ID: uuid.MustParse(id)}, nil
}

func (f *fakeBudgetRepository) FindMembers(ctx context.Context, budgetID string) ([]budget.BudgetMember, error) {
	if f.findMembersFn != nil {
		return f.findMembersFn(ctx, budgetID)
	}
	return nil, nil
}

func (f *fakeBudgetRepository) UpdateWorkflowWhere(ctx context.Context, id string, from []budget.ApprovalStatus, updates map[string]interface{}) (int64, error) {
	if f.updateWorkflowWhereFn != nil {
		return f.updateWorkflowWhereFn(ctx, id, from, updates)
	}
	return 0, nil
}

func (f *fakeBudgetRepository) ReleaseWhereApproved(ctx context.Context, id string) (int64, error) {
	if f.releaseWhereApprovedFn != nil {
		return f.releaseWhereApprovedFn(ctx, id)
	}
	return 0, nil
}

type fakePayrollSource struct {
	records []payroll.PayrollRecord
	err     error
}

func (f *fakePayrollSource) FindAllInStatus(ctx context.Context, statuses []payroll.Status) ([]payroll.PayrollRecord, error) {
	return f.records, f.err
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type budgetServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  budget.Service
	repo     *fakeBudgetRepository
	payrolls *fakePayrollSource
	outbox   *fakeOutboxRepository
}

func setupBudgetServiceTest(t *testing.T) *budgetServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeBudgetRepository{}
	payrolls := &fakePayrollSource{}
	outbox := &fakeOutboxRepository{}

	svc := budget.NewServiceWithOutbox(db, repo, payrolls, &fakeCounterRepository{}, outbox)

	return &budgetServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		payrolls: payrolls,
		outbox:   outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func payableRecord(employeeID uuid.UUID, gross, deductions int64) payroll.PayrollRecord {
	return payroll.PayrollRecord{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Status:          payroll.StatusPending,
		GrossPay:        decimal.NewFromInt(gross),
		TotalDeductions: decimal.NewFromInt(deductions),
		NetPay:          decimal.NewFromInt(gross - deductions),
	}
}

func TestBudgetService_ComputeAllAndCreateBudget(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	deps := setupBudgetServiceTest(t)
	defer deps.db.Close()

	empA := uuid.New()
	empB := uuid.New()
	deps.payrolls.records = []payroll.PayrollRecord{
		payableRecord(empA, 25000, 3000),
		payableRecord(empA, 24000, 2500),
		payableRecord(empB, 30000, 4000),
	}

	expectTx(t, deps.sqlMock, true)

	var created *budget.Budget
	var createdMembers []budget.BudgetMember
	deps.repo.createFn = func(ctx context.Context, b *budget.Budget, members []budget.BudgetMember) error {
		created = b
		createdMembers = members
		return nil
	}

	resp, err := deps.service.ComputeAllAndCreateBudget(ctx, actorID, budget.CreateBudgetRequest{
		BudgetPeriodStart: "2026-08-01",
		BudgetPeriodEnd:   "2026-08-31",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "BUDGET-2026-08-0001", created.BudgetName)
	assert.Equal(t, 2, created.TotalEmployees)
	assert.Equal(t, "79000.00", created.TotalGrossPay.StringFixed(2))
	assert.Equal(t, "9500.00", created.TotalDeductions.StringFixed(2))
	assert.Equal(t, "69500.00", created.TotalNetPay.StringFixed(2))
	assert.Equal(t, budget.ApprovalDraft, created.ApprovalStatus)
	assert.Equal(t, budget.StatusDraft, created.BudgetStatus)

	assert.Len(t, createdMembers, 3)
	for _, m := range createdMembers {
		assert.Equal(t, created.ID, m.BudgetID)
	}

	assert.Equal(t, string(budget.ApprovalDraft), resp.ApprovalStatus)
	assert.Len(t, resp.Members, 3)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

// Totals are frozen at aggregation: changing a payroll record after the
// budget exists must not ripple back into the stored sums.
func TestBudgetService_SnapshotImmutability(t *testing.T) {
	ctx := context.Background()

	deps := setupBudgetServiceTest(t)
	defer deps.db.Close()

	record := payableRecord(uuid.New(), 25000, 3000)
	deps.payrolls.records = []payroll.PayrollRecord{record}

	expectTx(t, deps.sqlMock, true)

	var created *budget.Budget
	deps.repo.createFn = func(ctx context.Context, b *budget.Budget, members []budget.BudgetMember) error {
		created = b
		return nil
	}

	_, err := deps.service.ComputeAllAndCreateBudget(ctx, uuid.New().String(), budget.CreateBudgetRequest{
		BudgetPeriodStart: "2026-08-01",
		BudgetPeriodEnd:   "2026-08-31",
	})
	assert.NoError(t, err)

	deps.payrolls.records[0].NetPay = decimal.NewFromInt(1)

	assert.Equal(t, "22000.00", created.TotalNetPay.StringFixed(2))
}

func TestBudgetService_ComputeAll_NoPayableRecords(t *testing.T) {
	ctx := context.Background()

	deps := setupBudgetServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.ComputeAllAndCreateBudget(ctx, uuid.New().String(), budget.CreateBudgetRequest{
		BudgetPeriodStart: "2026-08-01",
		BudgetPeriodEnd:   "2026-08-31",
	})

	assert.ErrorIs(t, err, budgeterrors.ErrNoPayableRecords)
}

func TestBudgetService_SubmitForApproval(t *testing.T) {
	ctx := context.Background()
	budgetID := uuid.New().String()

	t.Run("draft budget submits", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.updateWorkflowWhereFn = func(ctx context.Context, id string, from []budget.ApprovalStatus, updates map[string]interface{}) (int64, error) {
			assert.Equal(t, []budget.ApprovalStatus{budget.ApprovalDraft}, from)
			assert.Equal(t, budget.ApprovalWaiting, updates["approval_status"])
			assert.NotNil(t, updates["submitted_for_approval_at"])
			return 1, nil
		}

		resp, err := deps.service.SubmitForApproval(ctx, budgetID)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), resp.Affected)
		assert.Equal(t, string(budget.ApprovalWaiting), resp.ApprovalStatus)
	})

	t.Run("already decided budget is a no-op", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.updateWorkflowWhereFn = func(ctx context.Context, id string, from []budget.ApprovalStatus, updates map[string]interface{}) (int64, error) {
			return 0, nil
		}

		resp, err := deps.service.SubmitForApproval(ctx, budgetID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.Affected)
		assert.NotEmpty(t, resp.Message)
	})
}

func TestBudgetService_ApproveAndReject(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	budgetID := uuid.New().String()

	t.Run("approve from waiting", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.updateWorkflowWhereFn = func(ctx context.Context, id string, from []budget.ApprovalStatus, updates map[string]interface{}) (int64, error) {
			assert.Equal(t, []budget.ApprovalStatus{budget.ApprovalWaiting}, from)
			assert.Equal(t, budget.ApprovalApproved, updates["approval_status"])
			assert.Equal(t, budget.StatusApproved, updates["budget_status"])
			assert.Equal(t, uuid.MustParse(actorID), updates["approved_by"])
			return 1, nil
		}

		resp, err := deps.service.Approve(ctx, actorID, budgetID, budget.DecisionRequest{Notes: "within plan"})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), resp.Affected)
		assert.Equal(t, string(budget.ApprovalApproved), resp.ApprovalStatus)
		assert.Equal(t, string(budget.StatusApproved), resp.BudgetStatus)
	})

	t.Run("approve an already approved budget is a no-op", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.updateWorkflowWhereFn = func(ctx context.Context, id string, from []budget.ApprovalStatus, updates map[string]interface{}) (int64, error) {
			return 0, nil
		}

		resp, err := deps.service.Approve(ctx, actorID, budgetID, budget.DecisionRequest{})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.Affected)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("reject requires notes", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, actorID, budgetID, budget.DecisionRequest{Notes: "  "})
		assert.ErrorIs(t, err, budgeterrors.ErrApproverNotesRequired)
	})

	t.Run("reject from waiting", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.updateWorkflowWhereFn = func(ctx context.Context, id string, from []budget.ApprovalStatus, updates map[string]interface{}) (int64, error) {
			assert.Equal(t, []budget.ApprovalStatus{budget.ApprovalWaiting}, from)
			assert.Equal(t, budget.ApprovalRejected, updates["approval_status"])
			assert.Equal(t, "over headcount plan", updates["approver_notes"])
			return 1, nil
		}

		resp, err := deps.service.Reject(ctx, actorID, budgetID, budget.DecisionRequest{Notes: "over headcount plan"})

		assert.NoError(t, err)
		assert.Equal(t, string(budget.ApprovalRejected), resp.ApprovalStatus)
	})
}

func TestBudgetService_Release(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	budgetID := uuid.New().String()

	t.Run("approved budget releases and queues event", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.releaseWhereApprovedFn = func(ctx context.Context, id string) (int64, error) {
			return 1, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*budget.Budget, error) {
			return &budget.Budget{
				ID:           uuid.MustParse(id),
				BudgetName:   "BUDGET-2026-08-0001",
				BudgetStatus: budget.StatusReleased,
			}, nil
		}

		var queued *kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = &event
			return nil
		}

		resp, err := deps.service.Release(ctx, actorID, budgetID)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), resp.Affected)
		assert.Equal(t, string(budget.StatusReleased), resp.BudgetStatus)

		assert.NotNil(t, queued)
		assert.Equal(t, events.BudgetReleasedTopic, queued.Topic)
		assert.Equal(t, budgetID, queued.AggregateID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unapproved budget is a no-op", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.releaseWhereApprovedFn = func(ctx context.Context, id string) (int64, error) {
			return 0, nil
		}
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			t.Fatal("no event should be queued for a no-op release")
			return nil
		}

		resp, err := deps.service.Release(ctx, actorID, budgetID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.Affected)
		assert.NotEmpty(t, resp.Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
