package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/IwanSuryana77/PresenceApp/internal/attendance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPresent = "Present"
	StatusSick    = "Sick"
	StatusLeave   = "Leave"
	StatusAbsent  = "Absent"
)

const (
	defaultListLimit = 30
	maxListLimit     = 100
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, id string, req CheckOutRequest) (AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, q ListQuery) ([]AttendanceResponse, error)
	GetByDate(ctx context.Context, employeeID, date string) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error) {
	s.logger.Debug("check-in requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	date, err := parseDate(req.Date)
	if err != nil {
		s.logger.Warn("check-in invalid date", zap.String("date", req.Date))
		return CheckInResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return CheckInResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// At most one check-in per (employee, date) is a convention the mobile
	// client follows; the store does not enforce it.
	row := &Attendance{
		ID:           uuid.New(),
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Date:         date,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: nil,
		Status:       StatusPresent,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PhotoURL:     req.PhotoURL,
		Notes:        req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return CheckInResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		return CheckInResponse{}, err
	}

	s.logger.Info("check-in recorded",
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return CheckInResponse{
		ID:          row.ID.String(),
		EmployeeID:  row.EmployeeID,
		CheckInTime: row.CheckInTime,
		Date:        req.Date,
	}, nil
}

func (s *service) CheckOut(ctx context.Context, id string, req CheckOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	row.CheckOutTime = &req.CheckOutTime

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-out commit failed", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out recorded", zap.String("attendance_id", id))
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, q ListQuery) ([]AttendanceResponse, error) {
	var startDate, endDate *time.Time

	if q.StartDate != "" {
		t, err := parseDate(q.StartDate)
		if err != nil {
			return nil, err
		}
		startDate = &t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &t
	}

	limit := clampLimit(q.Limit, defaultListLimit)

	rows, err := s.repo.FindByEmployee(ctx, employeeID, startDate, endDate, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByDate(ctx context.Context, employeeID, date string) (AttendanceResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return AttendanceResponse{}, err
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, d)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrAttendanceNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("attendance deleted", zap.String("attendance_id", id))
	return nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format(time.RFC3339),
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		Status:       a.Status,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
		PhotoURL:     a.PhotoURL,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp
}
