package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IwanSuryana77/PresenceApp/internal/leave"
	leaveerrors "github.com/IwanSuryana77/PresenceApp/internal/leave/errors"
	"github.com/IwanSuryana77/PresenceApp/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Count   *int            `json:"count"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn        func(ctx context.Context, req leave.CreateLeaveRequest) (leave.CreateLeaveResponse, error)
	getByEmployeeFn func(ctx context.Context, employeeID string, q leave.ListQuery) ([]leave.LeaveResponse, error)
	approveFn       func(ctx context.Context, id, approvedBy string) (leave.LeaveResponse, error)
	rejectFn        func(ctx context.Context, id, approvedBy string, rejectionReason *string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.CreateLeaveResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeLeaveService) GetByEmployee(ctx context.Context, employeeID string, q leave.ListQuery) ([]leave.LeaveResponse, error) {
	return f.getByEmployeeFn(ctx, employeeID, q)
}
func (f *fakeLeaveService) Approve(ctx context.Context, id, approvedBy string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, id, approvedBy)
}
func (f *fakeLeaveService) Reject(ctx context.Context, id, approvedBy string, rejectionReason *string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, id, approvedBy, rejectionReason)
}

func TestLeaveHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.CreateLeaveResponse, error) {
				assert.Equal(t, "E1", req.EmployeeID)
				assert.Equal(t, 3, req.DaysCount)
				return leave.CreateLeaveResponse{
					ID:         id,
					EmployeeID: req.EmployeeID,
					Status:     leave.StatusPending,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employeeId":"E1","employeeName":"Alice","startDate":"2024-03-10","endDate":"2024-03-12","reason":"Family event","daysCount":3}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		assert.Equal(t, "Leave request created", env.Message)

		var got leave.CreateLeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("negative missing daysCount", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.CreateLeaveResponse, error) {
				t.Fatal("service must not be called on invalid input")
				return leave.CreateLeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employeeId":"E1","employeeName":"Alice","startDate":"2024-03-10","endDate":"2024-03-12","reason":"Family event"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, "Days Count is required", env.Message)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, targetID, approvedBy string) (leave.LeaveResponse, error) {
				assert.Equal(t, id, targetID)
				assert.Equal(t, "M1", approvedBy)
				return leave.LeaveResponse{ID: targetID, Status: leave.StatusApproved, ApprovedBy: &approvedBy}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "requestId", Value: id}}
		c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/"+id+"/approve", strings.NewReader(`{"approvedBy":"M1"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		assert.Equal(t, "Leave request approved", env.Message)
	})

	t.Run("negative missing approvedBy", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, id, approvedBy string) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on invalid input")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "requestId", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/x/approve", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Approve(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, "Approved By is required", env.Message)
	})

	t.Run("negative unknown request returns 404", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, id, approvedBy string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveRequestNotFound
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "requestId", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/x/approve", strings.NewReader(`{"approvedBy":"M1"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Approve(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	t.Run("success without reason", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, targetID, approvedBy string, rejectionReason *string) (leave.LeaveResponse, error) {
				assert.Equal(t, "M1", approvedBy)
				assert.Nil(t, rejectionReason)
				return leave.LeaveResponse{ID: targetID, Status: leave.StatusRejected}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "requestId", Value: id}}
		c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/"+id+"/reject", strings.NewReader(`{"approvedBy":"M1"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		assert.Equal(t, "Leave request rejected", env.Message)
	})
}

func TestLeaveHandler_GetByEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success carries count", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByEmployeeFn: func(ctx context.Context, employeeID string, q leave.ListQuery) ([]leave.LeaveResponse, error) {
				assert.Equal(t, "E1", employeeID)
				assert.Equal(t, leave.StatusPending, q.Status)
				return []leave.LeaveResponse{
					{ID: uuid.New().String(), EmployeeID: "E1", Status: leave.StatusPending},
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "employeeId", Value: "E1"}}
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests/user/E1?status=Pending", nil)

		h.GetByEmployee(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		assert.NotNil(t, env.Count)
		assert.Equal(t, 1, *env.Count)
	})
}
