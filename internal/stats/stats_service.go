package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IwanSuryana77/PresenceApp/internal/attendance"
	"github.com/IwanSuryana77/PresenceApp/internal/leave"
	"github.com/IwanSuryana77/PresenceApp/internal/reimbursement"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	statsCacheKeyPrefix = "stats:"
	statsCacheTTL       = 5 * time.Minute
)

//go:generate mockgen -source=stats_service.go -destination=mock/stats_service_mock.go -package=mock
type Service interface {
	GetMonthly(ctx context.Context, employeeID string, q StatsQuery) (StatsResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetMonthly aggregates one employee's month. The month is zero-based to
// match the mobile client's convention (0 = January).
func (s *service) GetMonthly(ctx context.Context, employeeID string, q StatsQuery) (StatsResponse, error) {
	cacheKey := fmt.Sprintf("%s%s:%d:%d", statsCacheKeyPrefix, employeeID, q.Year, q.Month)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp StatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.aggregate(ctx, employeeID, q)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, statsCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return StatsResponse{}, err
	}

	return v.(StatsResponse), nil
}

func (s *service) aggregate(ctx context.Context, employeeID string, q StatsQuery) (StatsResponse, error) {
	start := time.Date(q.Year, time.Month(q.Month+1), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(q.Year, time.Month(q.Month+2), 0, 0, 0, 0, 0, time.UTC)

	attendanceRows, err := s.repo.FindAttendanceInRange(ctx, employeeID, start, end)
	if err != nil {
		return StatsResponse{}, err
	}
	leaveRows, err := s.repo.FindLeaveRequests(ctx, employeeID)
	if err != nil {
		return StatsResponse{}, err
	}
	reimbursementRows, err := s.repo.FindReimbursements(ctx, employeeID)
	if err != nil {
		return StatsResponse{}, err
	}

	var resp StatsResponse
	resp.TotalAttendance = len(attendanceRows)
	for _, a := range attendanceRows {
		switch a.Status {
		case attendance.StatusPresent:
			resp.TotalPresent++
		case attendance.StatusSick:
			resp.TotalSick++
		case attendance.StatusLeave:
			resp.TotalLeave++
		case attendance.StatusAbsent:
			resp.TotalAbsent++
		}
	}

	for _, l := range leaveRows {
		switch l.Status {
		case leave.StatusPending:
			resp.PendingLeaveRequests++
		case leave.StatusApproved:
			resp.ApprovedLeaveRequests++
		}
	}

	total := decimal.Zero
	for _, r := range reimbursementRows {
		if r.Status == reimbursement.StatusPending {
			resp.PendingReimbursement++
		}
		total = total.Add(r.Amount)
	}
	resp.TotalReimbursement = total.InexactFloat64()

	s.logger.Debug("monthly stats aggregated",
		zap.String("employee_id", employeeID),
		zap.Int("month", q.Month),
		zap.Int("year", q.Year),
		zap.Int("attendance_rows", len(attendanceRows)),
	)

	return resp, nil
}
