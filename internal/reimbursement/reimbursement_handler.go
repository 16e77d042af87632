package reimbursement

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/IwanSuryana77/PresenceApp/internal/shared/apperror"
	"github.com/IwanSuryana77/PresenceApp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("reimbursement.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("reimbursement request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req CreateReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Message, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, "Reimbursement request created")
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.service.GetByEmployee(c.Request.Context(), c.Param("employeeId"), ListQuery{
		Status: c.Query("status"),
		Limit:  limit,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessListWithTotal(c, http.StatusOK, result.Items, len(result.Items), result.TotalAmount.InexactFloat64())
}

func (h *Handler) Approve(c *gin.Context) {
	id := c.Param("requestId")

	var req ApproveReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Message, err.Error())
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), id, req.ApprovedBy)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, "Reimbursement request approved")
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("requestId")

	var req RejectReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Message, err.Error())
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), id, req.ApprovedBy, req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, "Reimbursement request rejected")
}
