package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, idempotency ...gin.HandlerFunc) {
	att := r.Group("/attendance")
	{
		att.POST("/check-in", append(idempotency, h.CheckIn)...)
		att.PUT("/check-out/:attendanceId", h.CheckOut)
		att.GET("/user/:employeeId", h.GetByEmployee)
		att.GET("/date/:employeeId/:date", h.GetByDate)
		att.DELETE("/:attendanceId", h.Delete)
	}
}
