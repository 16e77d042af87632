package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/IwanSuryana77/PresenceApp/internal/shared/apperror"
	"github.com/IwanSuryana77/PresenceApp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("stats.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetMonthly(c *gin.Context) {
	now := time.Now().UTC()
	month := int(now.Month()) - 1
	year := now.Year()

	if v := c.Query("month"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			month = parsed
		}
	}
	if v := c.Query("year"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			year = parsed
		}
	}

	resp, err := h.service.GetMonthly(c.Request.Context(), c.Param("employeeId"), StatsQuery{
		Month: month,
		Year:  year,
	})
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("stats request failed",
			zap.String("employee_id", c.Param("employeeId")),
			zap.Int("status", httpErr.Status),
			zap.String("message", httpErr.Message),
		)
		response.Error(c, httpErr.Status, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, "")
}
