package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/IwanSuryana77/PresenceApp/internal/events"
	leaveerrors "github.com/IwanSuryana77/PresenceApp/internal/leave/errors"
	"github.com/IwanSuryana77/PresenceApp/internal/messaging/kafka"
	"github.com/IwanSuryana77/PresenceApp/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (CreateLeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, q ListQuery) ([]LeaveResponse, error)
	Approve(ctx context.Context, id, approvedBy string) (LeaveResponse, error)
	Reject(ctx context.Context, id, approvedBy string, rejectionReason *string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (CreateLeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		s.logger.Warn("create leave request invalid start date", zap.String("start_date", req.StartDate))
		return CreateLeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		s.logger.Warn("create leave request invalid end date", zap.String("end_date", req.EndDate))
		return CreateLeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       req.Reason,
		DaysCount:    req.DaysCount,
		Status:       StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("request_id", rid),
		zap.String("leave_request_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return CreateLeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID,
		Status:     l.Status,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, q ListQuery) ([]LeaveResponse, error) {
	limit := clampLimit(q.Limit, defaultListLimit)

	rows, err := s.repo.FindByEmployee(ctx, employeeID, q.Status, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Approve(ctx context.Context, id, approvedBy string) (LeaveResponse, error) {
	return s.resolve(ctx, id, StatusApproved, approvedBy, nil)
}

func (s *service) Reject(ctx context.Context, id, approvedBy string, rejectionReason *string) (LeaveResponse, error) {
	return s.resolve(ctx, id, StatusRejected, approvedBy, rejectionReason)
}

// resolve applies an approve/reject transition. The current status is not a
// precondition: re-resolving an already resolved request overwrites the
// resolution fields and nothing else.
func (s *service) resolve(ctx context.Context, id, targetStatus, approvedBy string, rejectionReason *string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("resolve leave request",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("target_status", targetStatus),
		zap.String("approved_by", approvedBy),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve leave request begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	l.ApprovedBy = &approvedBy
	l.ApprovedAt = &now
	if targetStatus == StatusRejected {
		l.RejectionReason = rejectionReason
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("resolve leave request persist failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		eventType := "leave.approved"
		if targetStatus == StatusRejected {
			eventType = "leave.rejected"
		}
		event := events.WorkflowResolvedEvent{
			EventID:         uuid.New().String(),
			EventType:       eventType,
			RequestID:       l.ID.String(),
			EmployeeID:      l.EmployeeID,
			EmployeeName:    l.EmployeeName,
			Status:          targetStatus,
			ApprovedBy:      approvedBy,
			RejectionReason: rejectionReason,
			OccurredAt:      now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return LeaveResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            event.EventID,
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   l.ID.String(),
			EventType:     eventType,
			Topic:         events.LeaveResolvedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("resolve leave request outbox persist failed",
				zap.String("leave_request_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve leave request commit failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request resolved",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*l), nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID,
		EmployeeName:    l.EmployeeName,
		StartDate:       l.StartDate.Format(time.RFC3339),
		EndDate:         l.EndDate.Format(time.RFC3339),
		Reason:          l.Reason,
		DaysCount:       l.DaysCount,
		Status:          l.Status,
		ApprovedBy:      l.ApprovedBy,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp
}
