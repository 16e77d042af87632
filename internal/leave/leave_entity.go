package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   string    `gorm:"column:employee_id;type:varchar(100);not null;index:idx_leave_requests_employee_status"`
	EmployeeName string    `gorm:"column:employee_name;type:varchar(150);not null"`
	StartDate    time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate      time.Time `gorm:"column:end_date;type:date;not null"`
	Reason       string    `gorm:"column:reason;type:text;not null"`
	DaysCount    int       `gorm:"column:days_count;type:int;not null"`

	Status          string     `gorm:"column:status;type:varchar(20);not null;default:'Pending';index:idx_leave_requests_employee_status"`
	ApprovedBy      *string    `gorm:"column:approved_by;type:varchar(100)"`
	ApprovedAt      *time.Time `gorm:"column:approved_at;type:timestamptz"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
