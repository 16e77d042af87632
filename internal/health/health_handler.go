package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Check reports liveness. The payload is deliberately bare, not the usual
// envelope, so load balancer probes stay trivial to parse.
func (h *Handler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version,
	})
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/health", h.Check)
}
