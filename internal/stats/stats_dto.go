package stats

type StatsQuery struct {
	Month int
	Year  int
}

type StatsResponse struct {
	TotalAttendance       int     `json:"totalAttendance"`
	TotalPresent          int     `json:"totalPresent"`
	TotalSick             int     `json:"totalSick"`
	TotalLeave            int     `json:"totalLeave"`
	TotalAbsent           int     `json:"totalAbsent"`
	PendingLeaveRequests  int     `json:"pendingLeaveRequests"`
	ApprovedLeaveRequests int     `json:"approvedLeaveRequests"`
	PendingReimbursement  int     `json:"pendingReimbursement"`
	TotalReimbursement    float64 `json:"totalReimbursement"`
}
