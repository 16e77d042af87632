package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, idempotency ...gin.HandlerFunc) {
	leaves := r.Group("/leave-requests")
	{
		leaves.POST("", append(idempotency, h.Create)...)
		leaves.GET("/user/:employeeId", h.GetByEmployee)
		leaves.PUT("/:requestId/approve", h.Approve)
		leaves.PUT("/:requestId/reject", h.Reject)
	}
}
