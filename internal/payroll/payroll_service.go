package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
)

// EmployeeSource is the engine-facing employee lookup. Implementations must
// only ever hand back employees in ACTIVE status.
type EmployeeSource interface {
	GetActive(ctx context.Context, id string) (*employee.Employee, error)
}

// AttendanceSource feeds the finalized attendance rows for a pay period.
type AttendanceSource interface {
	FindByEmployeeAndPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) ([]attendance.Attendance, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	GetBreakdown(ctx context.Context, id string) (PayrollBreakdownResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, id string) (TransitionResponse, error)
	MarkMultipleAsPaid(ctx context.Context, ids []string) (BatchTransitionResponse, error)
	Release(ctx context.Context, id string) (TransitionResponse, error)
	Delete(ctx context.Context, id string) error
	GeneratePayslip(ctx context.Context, id string) ([]byte, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	engine      *Engine
	employees   EmployeeSource
	attendances AttendanceSource
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	engine *Engine,
	employees EmployeeSource,
	attendances AttendanceSource,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		engine:      engine,
		employees:   employees,
		attendances: attendances,
		logger:      zap.L().Named("payroll.service"),
	}
}

// NewServiceWithOutbox also records a released-salary event in the outbox, in
// the same transaction as the status change.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	engine *Engine,
	employees EmployeeSource,
	attendances AttendanceSource,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		engine:      engine,
		employees:   employees,
		attendances: attendances,
		outbox:      outbox,
		logger:      zap.L().Named("payroll.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreatePayrollRequest,
) (PayrollResponse, error) {
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	periodStart, periodEnd, err := parsePeriod(req.PayPeriodStart, req.PayPeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	emp, err := s.employees.GetActive(ctx, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}

	records, err := s.attendances.FindByEmployeeAndPeriod(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, req.EmployeeID, periodStart, periodEnd, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrPayrollOverlap
	}

	calc, err := s.engine.Compute(emp, records, periodStart, periodEnd, computeInputFromCreate(req))
	if err != nil {
		return PayrollResponse{}, err
	}

	record, err := buildRecord(emp, records, periodStart, periodEnd, calc, createdBy)
	if err != nil {
		return PayrollResponse{}, err
	}

	if err := qtx.Create(ctx, record); err != nil {
		s.logger.Error("persist payroll record failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, error) {
	queryFilter := PayrollQueryFilter{
		Department: filter.Department,
		EmployeeID: filter.EmployeeID,
	}

	if filter.Status != "" {
		status := Status(strings.ToUpper(filter.Status))
		if !status.Valid() {
			return nil, payrollerrors.ErrInvalidStatus
		}
		queryFilter.Status = &status
	}

	records, err := s.repo.FindAll(ctx, queryFilter)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	record, err := s.findRecord(ctx, s.repo, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*record), nil
}

// GetBreakdown serves the frozen snapshots. Amounts come from the stored
// blobs; nothing here re-runs the engine.
func (s *service) GetBreakdown(ctx context.Context, id string) (PayrollBreakdownResponse, error) {
	record, err := s.findRecord(ctx, s.repo, id)
	if err != nil {
		return PayrollBreakdownResponse{}, err
	}

	var calc Calculation
	if len(record.CalculationDetails) > 0 {
		if err := json.Unmarshal(record.CalculationDetails, &calc); err != nil {
			return PayrollBreakdownResponse{}, err
		}
	}

	var days []AttendanceDaySummary
	if len(record.AttendanceData) > 0 {
		if err := json.Unmarshal(record.AttendanceData, &days); err != nil {
			return PayrollBreakdownResponse{}, err
		}
	}

	return PayrollBreakdownResponse{
		ID:          record.ID.String(),
		Status:      string(record.Status),
		Calculation: calc,
		Attendance:  days,
	}, nil
}

// Update is a whole-record re-save: the pay figures are recomputed from the
// request, both snapshots are rewritten, and the record is stored in full.
func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdatePayrollRequest,
) (PayrollResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	newStatus := Status(req.Status)
	if !newStatus.Valid() {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := s.findRecord(ctx, qtx, id)
	if err != nil {
		return PayrollResponse{}, err
	}

	emp, err := s.employees.GetActive(ctx, record.EmployeeID.String())
	if err != nil {
		return PayrollResponse{}, err
	}

	records, err := s.attendances.FindByEmployeeAndPeriod(
		ctx, record.EmployeeID.String(), record.PayPeriodStart, record.PayPeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	calc, err := s.engine.Compute(emp, records, record.PayPeriodStart, record.PayPeriodEnd, computeInputFromUpdate(req))
	if err != nil {
		return PayrollResponse{}, err
	}

	if err := applyCalculation(record, records, calc); err != nil {
		return PayrollResponse{}, err
	}

	if newStatus != record.Status && !record.Status.CanTransition(newStatus) {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatus
	}

	record.Status = newStatus
	if (newStatus == StatusPaid || newStatus == StatusReleased) && record.PaymentDate == nil {
		today := dateToday()
		record.PaymentDate = &today
	}

	if err := qtx.Update(ctx, record); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*record), nil
}

// MarkAsPaid moves a payable record (PENDING or PROCESSED) to PAID via one
// guarded UPDATE. Calling it again is safe: the second call matches no row
// and reports zero affected without touching status or payment date.
func (s *service) MarkAsPaid(ctx context.Context, id string) (TransitionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TransitionResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	today := dateToday()
	affected, err := s.repo.UpdateStatusWhere(ctx, []string{id}, PayableStates, StatusPaid, &today)
	if err != nil {
		return TransitionResponse{}, err
	}

	resp := TransitionResponse{ID: id, Affected: affected}
	if affected == 0 {
		resp.Message = "record not found or already paid"
		return resp, nil
	}

	paymentDate := today.Format("2006-01-02")
	resp.Status = string(StatusPaid)
	resp.PaymentDate = &paymentDate
	return resp, nil
}

// MarkMultipleAsPaid applies the same guard as MarkAsPaid in a single batch
// statement. Affected may be smaller than the request when some records were
// already paid or terminal; those rows are simply left untouched.
func (s *service) MarkMultipleAsPaid(ctx context.Context, ids []string) (BatchTransitionResponse, error) {
	if len(ids) == 0 {
		return BatchTransitionResponse{}, payrollerrors.ErrEmptyBatch
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return BatchTransitionResponse{}, payrollerrors.ErrInvalidPayrollID
		}
	}

	today := dateToday()
	affected, err := s.repo.UpdateStatusWhere(ctx, ids, PayableStates, StatusPaid, &today)
	if err != nil {
		return BatchTransitionResponse{}, err
	}

	return BatchTransitionResponse{Requested: len(ids), Affected: affected}, nil
}

// Release moves a PAID record to RELEASED and queues the released-salary
// event in the same transaction, so the payslip pipeline only ever sees
// transitions that actually committed.
func (s *service) Release(ctx context.Context, id string) (TransitionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TransitionResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TransitionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.UpdateStatusWhere(ctx, []string{id}, []Status{StatusPaid}, StatusReleased, nil)
	if err != nil {
		return TransitionResponse{}, err
	}

	if affected == 0 {
		return TransitionResponse{
			ID:       id,
			Affected: 0,
			Message:  "record not found or not eligible for release",
		}, nil
	}

	if s.outbox != nil {
		if err := s.queueReleasedEvent(ctx, tx, id); err != nil {
			return TransitionResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return TransitionResponse{}, err
	}

	return TransitionResponse{ID: id, Affected: affected, Status: string(StatusReleased)}, nil
}

// Delete refuses to remove a released (paid-out) record; everything else is
// soft-deleted so the row stays recoverable for audit.
func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := s.findRecord(ctx, qtx, id)
	if err != nil {
		return err
	}
	if record.Status == StatusReleased {
		return payrollerrors.ErrDeleteReleased
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) GeneratePayslip(ctx context.Context, id string) ([]byte, error) {
	record, err := s.findRecord(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return RenderPayslip(record)
}

func (s *service) findRecord(ctx context.Context, repo Repository, id string) (*PayrollRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPayrollID
	}

	record, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *service) queueReleasedEvent(ctx context.Context, tx *sql.Tx, payrollID string) error {
	event := events.SalaryReleasedEvent{
		EventType:  events.SalaryReleasedEventType,
		PayrollID:  payrollID,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_record",
		AggregateID:   payrollID,
		EventType:     events.SalaryReleasedEventType,
		Topic:         events.SalaryReleasedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	periodStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	periodEnd, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	if periodStart.After(periodEnd) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateRange
	}
	return periodStart, periodEnd, nil
}

func dateToday() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func computeInputFromCreate(req CreatePayrollRequest) ComputeInput {
	return ComputeInput{
		OvertimeHours:  decimal.NewFromFloat(req.OvertimeHours),
		NightDiffHours: decimal.NewFromFloat(req.NightDiffHours),
		HolidayHours:   decimal.NewFromFloat(req.HolidayHours),
		Allowances:     decimal.NewFromFloat(req.Allowances),
		Bonuses:        decimal.NewFromFloat(req.Bonuses),
	}
}

func computeInputFromUpdate(req UpdatePayrollRequest) ComputeInput {
	return ComputeInput{
		OvertimeHours:  decimal.NewFromFloat(req.OvertimeHours),
		NightDiffHours: decimal.NewFromFloat(req.NightDiffHours),
		HolidayHours:   decimal.NewFromFloat(req.HolidayHours),
		Allowances:     decimal.NewFromFloat(req.Allowances),
		Bonuses:        decimal.NewFromFloat(req.Bonuses),
	}
}

func buildRecord(
	emp *employee.Employee,
	records []attendance.Attendance,
	periodStart, periodEnd time.Time,
	calc Calculation,
	createdBy uuid.UUID,
) (*PayrollRecord, error) {
	record := &PayrollRecord{
		ID:             uuid.New(),
		EmployeeID:     emp.ID,
		EmployeeName:   emp.FullName,
		Department:     emp.Department,
		PayPeriodStart: periodStart,
		PayPeriodEnd:   periodEnd,
		Status:         StatusPending,
		CreatedBy:      createdBy,
	}

	if err := applyCalculation(record, records, calc); err != nil {
		return nil, err
	}
	return record, nil
}

// applyCalculation copies the computed amounts onto the row and freezes both
// snapshot blobs.
func applyCalculation(record *PayrollRecord, records []attendance.Attendance, calc Calculation) error {
	record.BasicSalary = calc.BasicSalary
	record.OvertimeHours = calc.OvertimeHours
	record.OvertimePay = calc.OvertimePay
	record.NightDiffHours = calc.NightDiffHours
	record.NightDiffPay = calc.NightDiffPay
	record.HolidayPay = calc.HolidayPay
	record.Allowances = calc.Allowances
	record.Bonuses = calc.Bonuses
	record.GrossPay = calc.GrossPay

	record.LateDeduction = calc.Attendance.LateDeduction
	record.AbsenceDeduction = calc.Attendance.AbsenceDeduction
	record.UndertimeDeduction = calc.Attendance.UndertimeDeduction
	record.HalfDayDeduction = calc.Attendance.HalfDayDeduction
	record.StatutoryDeduction = calc.StatutoryDeduction
	record.TotalDeductions = calc.TotalDeductions
	record.NetPay = calc.NetPay

	calcBlob, err := json.Marshal(calc)
	if err != nil {
		return err
	}
	attBlob, err := json.Marshal(attendanceDaySummaries(records))
	if err != nil {
		return err
	}

	record.CalculationDetails = calcBlob
	record.AttendanceData = attBlob
	return nil
}

func mapToResponse(record PayrollRecord) PayrollResponse {
	resp := PayrollResponse{
		ID:             record.ID.String(),
		EmployeeID:     record.EmployeeID.String(),
		EmployeeName:   record.EmployeeName,
		Department:     record.Department,
		PayPeriodStart: record.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:   record.PayPeriodEnd.Format("2006-01-02"),

		BasicSalary:  toFloat(record.BasicSalary),
		OvertimePay:  toFloat(record.OvertimePay),
		NightDiffPay: toFloat(record.NightDiffPay),
		HolidayPay:   toFloat(record.HolidayPay),
		Allowances:   toFloat(record.Allowances),
		Bonuses:      toFloat(record.Bonuses),
		GrossPay:     toFloat(record.GrossPay),

		LateDeduction:      toFloat(record.LateDeduction),
		AbsenceDeduction:   toFloat(record.AbsenceDeduction),
		UndertimeDeduction: toFloat(record.UndertimeDeduction),
		HalfDayDeduction:   toFloat(record.HalfDayDeduction),
		StatutoryDeduction: toFloat(record.StatutoryDeduction),
		TotalDeductions:    toFloat(record.TotalDeductions),
		NetPay:             toFloat(record.NetPay),

		Status:    string(record.Status),
		CreatedBy: record.CreatedBy.String(),
	}

	if record.PaymentDate != nil {
		v := record.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &v
	}

	return resp
}

func mapToListResponse(records []PayrollRecord) []PayrollResponse {
	resp := make([]PayrollResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
