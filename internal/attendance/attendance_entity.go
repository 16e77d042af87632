package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   string    `gorm:"column:employee_id;type:varchar(100);not null;index:idx_attendance_employee_date"`
	EmployeeName string    `gorm:"column:employee_name;type:varchar(150);not null"`
	Date         time.Time `gorm:"column:date;type:date;not null;index:idx_attendance_employee_date"`
	CheckInTime  string    `gorm:"column:check_in_time;type:varchar(20);not null"`
	CheckOutTime *string   `gorm:"column:check_out_time;type:varchar(20)"`
	Status       string    `gorm:"column:status;type:varchar(20);not null;default:'Present'"`
	Latitude     *float64  `gorm:"column:latitude"`
	Longitude    *float64  `gorm:"column:longitude"`
	PhotoURL     *string   `gorm:"column:photo_url;type:text"`
	Notes        *string   `gorm:"column:notes;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendance_records"
}
