package stats

import (
	"context"
	"time"

	"github.com/IwanSuryana77/PresenceApp/internal/attendance"
	"github.com/IwanSuryana77/PresenceApp/internal/leave"
	"github.com/IwanSuryana77/PresenceApp/internal/reimbursement"

	"gorm.io/gorm"
)

//go:generate mockgen -source=stats_repo.go -destination=mock/stats_repo_mock.go -package=mock
type Repository interface {
	FindAttendanceInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error)
	FindLeaveRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error)
	FindReimbursements(ctx context.Context, employeeID string) ([]reimbursement.ReimbursementRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAttendanceInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var rows []attendance.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date >= ?", start.Format("2006-01-02")).
		Where("date <= ?", end.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindLeaveRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var rows []leave.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindReimbursements(ctx context.Context, employeeID string) ([]reimbursement.ReimbursementRequest, error) {
	var rows []reimbursement.ReimbursementRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Find(&rows).Error
	return rows, err
}
