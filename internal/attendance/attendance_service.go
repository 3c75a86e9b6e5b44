package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceerrors "go-payroll/internal/attendance/errors"
)

// Work schedule used to derive late/undertime minutes. Clock-ins inside the
// grace window still count as PRESENT.
const (
	workStartHour    = 9
	workEndHour      = 18
	graceMinutes     = 15
	halfDayThreshold = 240
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	MarkDay(ctx context.Context, req MarkDayRequest) (AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	status := StatusPresent
	lateMinutes := 0

	workStart := time.Date(now.Year(), now.Month(), now.Day(), workStartHour, 0, 0, 0, time.UTC)
	if now.After(workStart.Add(graceMinutes * time.Minute)) {
		status = StatusLate
		lateMinutes = int(now.Sub(workStart).Minutes())
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(employeeID),
		AttendanceDate: today,
		ClockIn:        &now,
		Status:         status,
		LateMinutes:    lateMinutes,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrClockInNotFound
		}
		return AttendanceResponse{}, err
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	// Leaving before the scheduled end records undertime; half the day or
	// more short flips the whole day to HALF_DAY.
	workEnd := time.Date(now.Year(), now.Month(), now.Day(), workEndHour, 0, 0, 0, time.UTC)
	if now.Before(workEnd) && row.Status != StatusLate {
		short := int(workEnd.Sub(now).Minutes())
		if short >= halfDayThreshold {
			row.Status = StatusHalfDay
			row.UndertimeMinutes = 0
		} else if short > 0 {
			row.Status = StatusUndertime
			row.UndertimeMinutes = short
		}
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// MarkDay lets HR set a day's status directly (absences, corrections).
func (s *service) MarkDay(ctx context.Context, req MarkDayRequest) (AttendanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	if row == nil {
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeID,
			AttendanceDate: date,
		}
	}

	row.Status = req.Status
	row.LateMinutes = 0
	row.UndertimeMinutes = 0
	switch req.Status {
	case StatusLate:
		row.LateMinutes = req.Minutes
	case StatusUndertime:
		row.UndertimeMinutes = req.Minutes
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if row.CreatedAt.IsZero() {
		err = qtx.Create(ctx, row)
	} else {
		err = qtx.Update(ctx, row)
	}
	if err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID.String(),
		EmployeeID:       a.EmployeeID.String(),
		AttendanceDate:   a.AttendanceDate.Format("2006-01-02"),
		Status:           a.Status,
		LateMinutes:      a.LateMinutes,
		UndertimeMinutes: a.UndertimeMinutes,
		Notes:            a.Notes,
	}
	if a.ClockIn != nil {
		v := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
