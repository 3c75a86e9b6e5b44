package budget

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	budgeterrors "go-payroll/internal/budget/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
)

// PayrollSource exposes the payroll rows the aggregation scans. Only records
// still payable (PENDING or PROCESSED) are counted into a budget.
type PayrollSource interface {
	FindAllInStatus(ctx context.Context, statuses []payroll.Status) ([]payroll.PayrollRecord, error)
}

//go:generate mockgen -source=budget_service.go -destination=mock/budget_service_mock.go -package=mock
type Service interface {
	ComputeAllAndCreateBudget(ctx context.Context, actorID string, req CreateBudgetRequest) (BudgetDetailResponse, error)
	GetAll(ctx context.Context) ([]BudgetResponse, error)
	GetByID(ctx context.Context, id string) (BudgetDetailResponse, error)
	SubmitForApproval(ctx context.Context, id string) (WorkflowResponse, error)
	Approve(ctx context.Context, actorID, id string, req DecisionRequest) (WorkflowResponse, error)
	Reject(ctx context.Context, actorID, id string, req DecisionRequest) (WorkflowResponse, error)
	Release(ctx context.Context, actorID, id string) (WorkflowResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	payrolls PayrollSource
	counters counter.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	payrolls PayrollSource,
	counters counter.Repository,
) Service {
	return &service{
		db:       db,
		repo:     repo,
		payrolls: payrolls,
		counters: counters,
		logger:   zap.L().Named("budget.service"),
	}
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	payrolls PayrollSource,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:       db,
		repo:     repo,
		payrolls: payrolls,
		counters: counters,
		outbox:   outbox,
		logger:   zap.L().Named("budget.service"),
	}
}

// ComputeAllAndCreateBudget scans every payable payroll record, sums the
// stored amounts and freezes them into one DRAFT budget. The totals are a
// snapshot: editing a member record later never changes them.
func (s *service) ComputeAllAndCreateBudget(
	ctx context.Context,
	actorID string,
	req CreateBudgetRequest,
) (BudgetDetailResponse, error) {
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return BudgetDetailResponse{}, budgeterrors.ErrInvalidActorID
	}

	periodStart, periodEnd, err := parsePeriod(req.BudgetPeriodStart, req.BudgetPeriodEnd)
	if err != nil {
		return BudgetDetailResponse{}, err
	}

	records, err := s.payrolls.FindAllInStatus(ctx, payroll.PayableStates)
	if err != nil {
		return BudgetDetailResponse{}, err
	}
	if len(records) == 0 {
		return BudgetDetailResponse{}, budgeterrors.ErrNoPayableRecords
	}

	name, err := s.nextBudgetName(ctx, periodStart)
	if err != nil {
		return BudgetDetailResponse{}, err
	}

	totalGross := decimal.Zero
	totalDeductions := decimal.Zero
	totalNet := decimal.Zero
	employees := map[uuid.UUID]struct{}{}

	members := make([]BudgetMember, 0, len(records))
	for _, rec := range records {
		totalGross = totalGross.Add(rec.GrossPay)
		totalDeductions = totalDeductions.Add(rec.TotalDeductions)
		totalNet = totalNet.Add(rec.NetPay)
		employees[rec.EmployeeID] = struct{}{}

		members = append(members, BudgetMember{
			PayrollRecordID: rec.ID,
			GrossPay:        rec.GrossPay,
			TotalDeductions: rec.TotalDeductions,
			NetPay:          rec.NetPay,
		})
	}

	b := &Budget{
		ID:                uuid.New(),
		BudgetName:        name,
		BudgetPeriodStart: periodStart,
		BudgetPeriodEnd:   periodEnd,
		TotalEmployees:    len(employees),
		TotalGrossPay:     totalGross.Round(2),
		TotalDeductions:   totalDeductions.Round(2),
		TotalNetPay:       totalNet.Round(2),
		BudgetStatus:      StatusDraft,
		ApprovalStatus:    ApprovalDraft,
		CreatedBy:         createdBy,
	}

	for i := range members {
		members[i].BudgetID = b.ID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BudgetDetailResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, b, members); err != nil {
		s.logger.Error("persist budget failed",
			zap.String("budget_name", name),
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return BudgetDetailResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BudgetDetailResponse{}, err
	}

	return mapToDetailResponse(*b, members), nil
}

func (s *service) GetAll(ctx context.Context) ([]BudgetResponse, error) {
	budgets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BudgetDetailResponse, error) {
	b, err := s.findBudget(ctx, id)
	if err != nil {
		return BudgetDetailResponse{}, err
	}

	members, err := s.repo.FindMembers(ctx, id)
	if err != nil {
		return BudgetDetailResponse{}, err
	}

	return mapToDetailResponse(*b, members), nil
}

// SubmitForApproval is only valid from DRAFT. A budget already waiting or
// already decided is left untouched and the response reports zero affected.
func (s *service) SubmitForApproval(ctx context.Context, id string) (WorkflowResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkflowResponse{}, budgeterrors.ErrInvalidBudgetID
	}

	affected, err := s.repo.UpdateWorkflowWhere(ctx, id, []ApprovalStatus{ApprovalDraft}, map[string]interface{}{
		"approval_status":           ApprovalWaiting,
		"submitted_for_approval_at": time.Now().UTC(),
	})
	if err != nil {
		return WorkflowResponse{}, err
	}

	if affected == 0 {
		return WorkflowResponse{
			ID:       id,
			Affected: 0,
			Message:  "budget not found or not eligible for submission",
		}, nil
	}

	return WorkflowResponse{ID: id, Affected: affected, ApprovalStatus: string(ApprovalWaiting)}, nil
}

func (s *service) Approve(ctx context.Context, actorID, id string, req DecisionRequest) (WorkflowResponse, error) {
	approvedBy, err := uuid.Parse(actorID)
	if err != nil {
		return WorkflowResponse{}, budgeterrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return WorkflowResponse{}, budgeterrors.ErrInvalidBudgetID
	}

	affected, err := s.repo.UpdateWorkflowWhere(ctx, id, []ApprovalStatus{ApprovalWaiting}, map[string]interface{}{
		"approval_status": ApprovalApproved,
		"budget_status":   StatusApproved,
		"approved_at":     time.Now().UTC(),
		"approved_by":     approvedBy,
		"approver_notes":  strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return WorkflowResponse{}, err
	}

	if affected == 0 {
		return WorkflowResponse{
			ID:       id,
			Affected: 0,
			Message:  "budget not found or not awaiting approval",
		}, nil
	}

	return WorkflowResponse{
		ID:             id,
		Affected:       affected,
		ApprovalStatus: string(ApprovalApproved),
		BudgetStatus:   string(StatusApproved),
	}, nil
}

func (s *service) Reject(ctx context.Context, actorID, id string, req DecisionRequest) (WorkflowResponse, error) {
	rejectedBy, err := uuid.Parse(actorID)
	if err != nil {
		return WorkflowResponse{}, budgeterrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return WorkflowResponse{}, budgeterrors.ErrInvalidBudgetID
	}

	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		return WorkflowResponse{}, budgeterrors.ErrApproverNotesRequired
	}

	affected, err := s.repo.UpdateWorkflowWhere(ctx, id, []ApprovalStatus{ApprovalWaiting}, map[string]interface{}{
		"approval_status": ApprovalRejected,
		"approved_at":     time.Now().UTC(),
		"approved_by":     rejectedBy,
		"approver_notes":  notes,
	})
	if err != nil {
		return WorkflowResponse{}, err
	}

	if affected == 0 {
		return WorkflowResponse{
			ID:       id,
			Affected: 0,
			Message:  "budget not found or not awaiting approval",
		}, nil
	}

	return WorkflowResponse{ID: id, Affected: affected, ApprovalStatus: string(ApprovalRejected)}, nil
}

// Release moves an approved budget to RELEASED and announces it on the
// outbox in the same transaction.
func (s *service) Release(ctx context.Context, actorID, id string) (WorkflowResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return WorkflowResponse{}, budgeterrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return WorkflowResponse{}, budgeterrors.ErrInvalidBudgetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkflowResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.ReleaseWhereApproved(ctx, id)
	if err != nil {
		return WorkflowResponse{}, err
	}

	if affected == 0 {
		return WorkflowResponse{
			ID:       id,
			Affected: 0,
			Message:  "budget not found or not eligible for release",
		}, nil
	}

	if s.outbox != nil {
		b, err := qtx.FindByID(ctx, id)
		if err != nil {
			return WorkflowResponse{}, err
		}
		if err := s.queueReleasedEvent(ctx, tx, b, actorID); err != nil {
			return WorkflowResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return WorkflowResponse{}, err
	}

	return WorkflowResponse{ID: id, Affected: affected, BudgetStatus: string(StatusReleased)}, nil
}

func (s *service) findBudget(ctx context.Context, id string) (*Budget, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, budgeterrors.ErrInvalidBudgetID
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgeterrors.ErrBudgetNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) nextBudgetName(ctx context.Context, periodStart time.Time) (string, error) {
	seq, err := s.counters.GetNextValue(ctx, "budget_name")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BUDGET-%s-%04d", periodStart.Format("2006-01"), seq), nil
}

func (s *service) queueReleasedEvent(ctx context.Context, tx *sql.Tx, b *Budget, actorID string) error {
	event := events.BudgetReleasedEvent{
		EventType:  events.BudgetReleasedEventType,
		BudgetID:   b.ID.String(),
		BudgetName: b.BudgetName,
		ReleasedBy: actorID,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "budget",
		AggregateID:   b.ID.String(),
		EventType:     events.BudgetReleasedEventType,
		Topic:         events.BudgetReleasedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	periodStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, budgeterrors.ErrInvalidDateFormat
	}
	periodEnd, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, budgeterrors.ErrInvalidDateFormat
	}
	if periodStart.After(periodEnd) {
		return time.Time{}, time.Time{}, budgeterrors.ErrInvalidDateRange
	}
	return periodStart, periodEnd, nil
}

func mapToResponse(b Budget) BudgetResponse {
	resp := BudgetResponse{
		ID:         b.ID.String(),
		BudgetName: b.BudgetName,

		BudgetPeriodStart: b.BudgetPeriodStart.Format("2006-01-02"),
		BudgetPeriodEnd:   b.BudgetPeriodEnd.Format("2006-01-02"),

		TotalEmployees:  b.TotalEmployees,
		TotalGrossPay:   toFloat(b.TotalGrossPay),
		TotalDeductions: toFloat(b.TotalDeductions),
		TotalNetPay:     toFloat(b.TotalNetPay),

		BudgetStatus:   string(b.BudgetStatus),
		ApprovalStatus: string(b.ApprovalStatus),
		ApproverNotes:  b.ApproverNotes,

		CreatedBy: b.CreatedBy.String(),
	}

	if b.SubmittedForApprovalAt != nil {
		v := b.SubmittedForApprovalAt.UTC().Format(time.RFC3339)
		resp.SubmittedForApprovalAt = &v
	}
	if b.ApprovedAt != nil {
		v := b.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if b.ApprovedBy != nil {
		v := b.ApprovedBy.String()
		resp.ApprovedBy = &v
	}

	return resp
}

func mapToDetailResponse(b Budget, members []BudgetMember) BudgetDetailResponse {
	resp := BudgetDetailResponse{
		BudgetResponse: mapToResponse(b),
		Members:        make([]BudgetMemberResponse, len(members)),
	}

	for i, m := range members {
		resp.Members[i] = BudgetMemberResponse{
			PayrollRecordID: m.PayrollRecordID.String(),
			GrossPay:        toFloat(m.GrossPay),
			TotalDeductions: toFloat(m.TotalDeductions),
			NetPay:          toFloat(m.NetPay),
		}
	}

	return resp
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
