package attendance

type CheckInRequest struct {
	EmployeeID   string   `json:"employeeId" binding:"required"`
	EmployeeName string   `json:"employeeName" binding:"required"`
	Date         string   `json:"date" binding:"required"`
	CheckInTime  string   `json:"checkInTime" binding:"required"`
	Notes        *string  `json:"notes"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	PhotoURL     *string  `json:"photoUrl"`
}

type CheckOutRequest struct {
	CheckOutTime string `json:"checkOutTime" binding:"required"`
}

// CheckInResponse is the trimmed 201 payload of the check-in endpoint.
type CheckInResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	CheckInTime string `json:"checkInTime"`
	Date        string `json:"date"`
}

type ListQuery struct {
	StartDate string
	EndDate   string
	Limit     int
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	Date         string   `json:"date"`
	CheckInTime  string   `json:"checkInTime"`
	CheckOutTime *string  `json:"checkOutTime"`
	Status       string   `json:"status"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	PhotoURL     *string  `json:"photoUrl,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}
