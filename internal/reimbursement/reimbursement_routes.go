package reimbursement

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, idempotency ...gin.HandlerFunc) {
	reqs := r.Group("/reimbursement-requests")
	{
		reqs.POST("", append(idempotency, h.Create)...)
		reqs.GET("/user/:employeeId", h.GetByEmployee)
		reqs.PUT("/:requestId/approve", h.Approve)
		reqs.PUT("/:requestId/reject", h.Reject)
	}
}
