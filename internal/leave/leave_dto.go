package leave

type CreateLeaveRequest struct {
	EmployeeID   string `json:"employeeId" binding:"required"`
	EmployeeName string `json:"employeeName" binding:"required"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
	DaysCount    int    `json:"daysCount" binding:"required"`
}

type ApproveLeaveRequest struct {
	ApprovedBy string `json:"approvedBy" binding:"required"`
}

type RejectLeaveRequest struct {
	ApprovedBy      string  `json:"approvedBy" binding:"required"`
	RejectionReason *string `json:"rejectionReason"`
}

// CreateLeaveResponse is the trimmed 201 payload.
type CreateLeaveResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Status     string `json:"status"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

type ListQuery struct {
	Status string
	Limit  int
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employeeId"`
	EmployeeName    string  `json:"employeeName"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Reason          string  `json:"reason"`
	DaysCount       int     `json:"daysCount"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approvedBy"`
	ApprovedAt      *string `json:"approvedAt"`
	RejectionReason *string `json:"rejectionReason"`
	CreatedAt       string  `json:"createdAt"`
}
