package reimbursement

import "github.com/shopspring/decimal"

type CreateReimbursementRequest struct {
	EmployeeID     string          `json:"employeeId" binding:"required"`
	EmployeeName   string          `json:"employeeName" binding:"required"`
	StartDate      string          `json:"startDate" binding:"required"`
	EndDate        string          `json:"endDate" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	AttachmentURLs []string        `json:"attachmentUrls"`
}

type ApproveReimbursementRequest struct {
	ApprovedBy string `json:"approvedBy" binding:"required"`
}

type RejectReimbursementRequest struct {
	ApprovedBy      string  `json:"approvedBy" binding:"required"`
	RejectionReason *string `json:"rejectionReason"`
}

type CreateReimbursementResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Status     string `json:"status"`
	Amount     string `json:"amount"`
}

type ListQuery struct {
	Status string
	Limit  int
}

type ReimbursementResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employeeId"`
	EmployeeName    string   `json:"employeeName"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	Description     string   `json:"description"`
	Amount          string   `json:"amount"`
	AttachmentURLs  []string `json:"attachmentUrls"`
	Status          string   `json:"status"`
	ApprovedBy      *string  `json:"approvedBy,omitempty"`
	ApprovedAt      *string  `json:"approvedAt,omitempty"`
	RejectionReason *string  `json:"rejectionReason,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

type ListReimbursementsResult struct {
	Items       []ReimbursementResponse
	TotalAmount decimal.Decimal
}
