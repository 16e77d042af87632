package response

import (
	"github.com/gin-gonic/gin"
)

// ApiEnvelope is the uniform response wrapper. Every endpoint except
// /api/health writes one of these.
type ApiEnvelope struct {
	Success     bool     `json:"success"`
	Data        any      `json:"data,omitempty"`
	Message     string   `json:"message,omitempty"`
	Error       string   `json:"error,omitempty"`
	Count       *int     `json:"count,omitempty"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
}

func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SuccessList adds the count field for list endpoints.
func SuccessList(c *gin.Context, status int, data any, count int) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

// SuccessListWithTotal is used by the reimbursement list, which carries a
// summed totalAmount next to count.
func SuccessListWithTotal(c *gin.Context, status int, data any, count int, totalAmount float64) {
	c.JSON(status, ApiEnvelope{
		Success:     true,
		Data:        data,
		Count:       &count,
		TotalAmount: &totalAmount,
	})
}

func Error(c *gin.Context, status int, message string, detail string) {
	c.JSON(status, ApiEnvelope{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
