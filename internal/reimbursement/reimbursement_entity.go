package reimbursement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReimbursementRequest struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID      string          `gorm:"type:varchar(100);not null;index:idx_reimbursement_employee_status,priority:1"`
	EmployeeName    string          `gorm:"type:varchar(255);not null"`
	StartDate       time.Time       `gorm:"type:date;not null"`
	EndDate         time.Time       `gorm:"type:date;not null"`
	Description     string          `gorm:"type:text;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AttachmentURLs  []string        `gorm:"column:attachment_urls;type:jsonb;serializer:json"`
	Status          string          `gorm:"type:varchar(20);not null;default:'Pending';index:idx_reimbursement_employee_status,priority:2"`
	ApprovedBy      *string         `gorm:"type:varchar(100)"`
	ApprovedAt      *time.Time
	RejectionReason *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (ReimbursementRequest) TableName() string {
	return "reimbursement_requests"
}
