package reimbursement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/IwanSuryana77/PresenceApp/internal/events"
	"github.com/IwanSuryana77/PresenceApp/internal/messaging/kafka"
	reimbursementerrors "github.com/IwanSuryana77/PresenceApp/internal/reimbursement/errors"
	"github.com/IwanSuryana77/PresenceApp/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

//go:generate mockgen -source=reimbursement_service.go -destination=mock/reimbursement_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateReimbursementRequest) (CreateReimbursementResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, q ListQuery) (ListReimbursementsResult, error)
	Approve(ctx context.Context, id, approvedBy string) (ReimbursementResponse, error)
	Reject(ctx context.Context, id, approvedBy string, rejectionReason *string) (ReimbursementResponse, error)
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
	l := zap.L().Named("reimbursement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateReimbursementRequest) (CreateReimbursementResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create reimbursement request",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("amount", req.Amount.String()),
	)

	if req.Amount.IsNegative() {
		return CreateReimbursementResponse{}, reimbursementerrors.ErrNegativeAmount
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		s.logger.Warn("create reimbursement invalid start date", zap.String("start_date", req.StartDate))
		return CreateReimbursementResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		s.logger.Warn("create reimbursement invalid end date", zap.String("end_date", req.EndDate))
		return CreateReimbursementResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create reimbursement begin tx failed", zap.Error(err))
		return CreateReimbursementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r := &ReimbursementRequest{
		ID:             uuid.New(),
		EmployeeID:     req.EmployeeID,
		EmployeeName:   req.EmployeeName,
		StartDate:      startDate,
		EndDate:        endDate,
		Description:    req.Description,
		Amount:         req.Amount,
		AttachmentURLs: req.AttachmentURLs,
		Status:         StatusPending,
	}

	if err := qtx.Create(ctx, r); err != nil {
		s.logger.Error("create reimbursement persist failed", zap.Error(err))
		return CreateReimbursementResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create reimbursement commit failed", zap.Error(err))
		return CreateReimbursementResponse{}, err
	}

	s.logger.Info("reimbursement request created",
		zap.String("request_id", rid),
		zap.String("reimbursement_id", r.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return CreateReimbursementResponse{
		ID:         r.ID.String(),
		EmployeeID: r.EmployeeID,
		Status:     r.Status,
		Amount:     r.Amount.String(),
	}, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, q ListQuery) (ListReimbursementsResult, error) {
	limit := clampLimit(q.Limit, defaultListLimit)

	rows, err := s.repo.FindByEmployee(ctx, employeeID, q.Status, limit)
	if err != nil {
		return ListReimbursementsResult{}, err
	}

	total := decimal.Zero
	items := make([]ReimbursementResponse, len(rows))
	for i, r := range rows {
		items[i] = mapToResponse(r)
		total = total.Add(r.Amount)
	}

	return ListReimbursementsResult{Items: items, TotalAmount: total}, nil
}

func (s *service) Approve(ctx context.Context, id, approvedBy string) (ReimbursementResponse, error) {
	return s.resolve(ctx, id, StatusApproved, approvedBy, nil)
}

func (s *service) Reject(ctx context.Context, id, approvedBy string, rejectionReason *string) (ReimbursementResponse, error) {
	return s.resolve(ctx, id, StatusRejected, approvedBy, rejectionReason)
}

// resolve applies an approve/reject transition. The current status is not a
// precondition: re-resolving an already resolved request overwrites the
// resolution fields and nothing else.
func (s *service) resolve(ctx context.Context, id, targetStatus, approvedBy string, rejectionReason *string) (ReimbursementResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("resolve reimbursement request",
		zap.String("request_id", rid),
		zap.String("reimbursement_id", id),
		zap.String("target_status", targetStatus),
		zap.String("approved_by", approvedBy),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve reimbursement begin tx failed", zap.Error(err))
		return ReimbursementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReimbursementResponse{}, reimbursementerrors.ErrReimbursementNotFound
		}
		return ReimbursementResponse{}, err
	}

	now := time.Now().UTC()
	r.Status = targetStatus
	r.ApprovedBy = &approvedBy
	r.ApprovedAt = &now
	if targetStatus == StatusRejected {
		r.RejectionReason = rejectionReason
	}

	if err := qtx.Update(ctx, r); err != nil {
		s.logger.Error("resolve reimbursement persist failed",
			zap.String("reimbursement_id", id),
			zap.Error(err),
		)
		return ReimbursementResponse{}, err
	}

	if s.outbox != nil {
		eventType := "reimbursement.approved"
		if targetStatus == StatusRejected {
			eventType = "reimbursement.rejected"
		}
		event := events.WorkflowResolvedEvent{
			EventID:         uuid.New().String(),
			EventType:       eventType,
			RequestID:       r.ID.String(),
			EmployeeID:      r.EmployeeID,
			EmployeeName:    r.EmployeeName,
			Status:          targetStatus,
			ApprovedBy:      approvedBy,
			RejectionReason: rejectionReason,
			OccurredAt:      now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ReimbursementResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            event.EventID,
			RequestID:     rid,
			AggregateType: "reimbursement_request",
			AggregateID:   r.ID.String(),
			EventType:     eventType,
			Topic:         events.ReimbursementResolvedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("resolve reimbursement outbox persist failed",
				zap.String("reimbursement_id", id),
				zap.Error(err),
			)
			return ReimbursementResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve reimbursement commit failed",
			zap.String("reimbursement_id", id),
			zap.Error(err),
		)
		return ReimbursementResponse{}, err
	}

	s.logger.Info("reimbursement request resolved",
		zap.String("request_id", rid),
		zap.String("reimbursement_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*r), nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, reimbursementerrors.ErrInvalidDateFormat
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

func mapToResponse(r ReimbursementRequest) ReimbursementResponse {
	resp := ReimbursementResponse{
		ID:              r.ID.String(),
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		StartDate:       r.StartDate.Format(time.RFC3339),
		EndDate:         r.EndDate.Format(time.RFC3339),
		Description:     r.Description,
		Amount:          r.Amount.String(),
		AttachmentURLs:  r.AttachmentURLs,
		Status:          r.Status,
		ApprovedBy:      r.ApprovedBy,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}
