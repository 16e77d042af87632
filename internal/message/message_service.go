package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	messageerrors "github.com/IwanSuryana77/PresenceApp/internal/message/errors"
	"github.com/IwanSuryana77/PresenceApp/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TypeText   = "text"
	TypeSystem = "system"

	systemSenderID   = "system"
	systemSenderName = "System"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

//go:generate mockgen -source=message_service.go -destination=mock/message_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateMessageRequest) (CreateMessageResponse, error)
	CreateSystem(ctx context.Context, req SystemMessageRequest) error
	GetConversation(ctx context.Context, userID, otherID string, q ListQuery) ([]MessageResponse, error)
	GetGroup(ctx context.Context, groupID string, q ListQuery) ([]MessageResponse, error)
	MarkRead(ctx context.Context, id string) (MessageResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("message.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("message.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateMessageRequest) (CreateMessageResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	hasRecipient := req.RecipientID != nil && *req.RecipientID != ""
	hasGroup := req.GroupID != nil && *req.GroupID != ""
	if hasRecipient == hasGroup {
		return CreateMessageResponse{}, messageerrors.ErrRecipientOrGroup
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = TypeText
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create message begin tx failed", zap.Error(err))
		return CreateMessageResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	m := &Message{
		ID:            uuid.New(),
		SenderID:      req.SenderID,
		SenderName:    req.SenderName,
		RecipientID:   req.RecipientID,
		RecipientName: req.RecipientName,
		GroupID:       req.GroupID,
		Content:       req.Content,
		MessageType:   messageType,
		AttachmentURL: req.AttachmentURL,
		IsRead:        false,
	}

	if err := qtx.Create(ctx, m); err != nil {
		s.logger.Error("create message persist failed", zap.Error(err))
		return CreateMessageResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create message commit failed", zap.Error(err))
		return CreateMessageResponse{}, err
	}

	s.logger.Info("message created",
		zap.String("request_id", rid),
		zap.String("message_id", m.ID.String()),
		zap.String("sender_id", m.SenderID),
	)

	return CreateMessageResponse{
		ID:          m.ID.String(),
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		GroupID:     m.GroupID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// CreateSystem writes a notification message with a caller-chosen ID, so a
// redelivered event hits the primary key instead of producing a duplicate.
func (s *service) CreateSystem(ctx context.Context, req SystemMessageRequest) error {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return fmt.Errorf("parse system message id: %w", err)
	}

	recipientID := req.RecipientID
	recipientName := req.RecipientName

	m := &Message{
		ID:            id,
		SenderID:      systemSenderID,
		SenderName:    systemSenderName,
		RecipientID:   &recipientID,
		RecipientName: &recipientName,
		Content:       req.Content,
		MessageType:   TypeSystem,
		IsRead:        false,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return err
	}

	s.logger.Info("system message created",
		zap.String("message_id", req.ID),
		zap.String("recipient_id", req.RecipientID),
	)
	return nil
}

// GetConversation projects the direct exchange between two users. The store
// query cannot express the symmetric pair condition, so it overfetches by
// sender and the exact {user, other} pairing is filtered here, then reversed
// to chronological order.
func (s *service) GetConversation(ctx context.Context, userID, otherID string, q ListQuery) ([]MessageResponse, error) {
	limit := clampLimit(q.Limit, defaultListLimit)

	rows, err := s.repo.FindBySenders(ctx, userID, otherID, limit)
	if err != nil {
		return nil, err
	}

	filtered := make([]Message, 0, len(rows))
	for _, m := range rows {
		if m.GroupID != nil || m.RecipientID == nil {
			continue
		}
		direct := m.SenderID == userID && *m.RecipientID == otherID
		reverse := m.SenderID == otherID && *m.RecipientID == userID
		if direct || reverse {
			filtered = append(filtered, m)
		}
	}

	resp := make([]MessageResponse, len(filtered))
	for i, m := range filtered {
		resp[len(filtered)-1-i] = mapToResponse(m)
	}
	return resp, nil
}

func (s *service) GetGroup(ctx context.Context, groupID string, q ListQuery) ([]MessageResponse, error) {
	limit := clampLimit(q.Limit, defaultListLimit)

	rows, err := s.repo.FindByGroup(ctx, groupID, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]MessageResponse, len(rows))
	for i, m := range rows {
		resp[len(rows)-1-i] = mapToResponse(m)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, id string) (MessageResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark message read begin tx failed", zap.Error(err))
		return MessageResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	m, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MessageResponse{}, messageerrors.ErrMessageNotFound
		}
		return MessageResponse{}, err
	}

	m.IsRead = true
	if err := qtx.Update(ctx, m); err != nil {
		s.logger.Error("mark message read persist failed", zap.String("message_id", id), zap.Error(err))
		return MessageResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("mark message read commit failed", zap.String("message_id", id), zap.Error(err))
		return MessageResponse{}, err
	}

	return mapToResponse(*m), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete message begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return messageerrors.ErrMessageNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete message persist failed", zap.String("message_id", id), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete message commit failed", zap.String("message_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("message deleted", zap.String("message_id", id))
	return nil
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

func mapToResponse(m Message) MessageResponse {
	return MessageResponse{
		ID:            m.ID.String(),
		SenderID:      m.SenderID,
		SenderName:    m.SenderName,
		RecipientID:   m.RecipientID,
		RecipientName: m.RecipientName,
		GroupID:       m.GroupID,
		Content:       m.Content,
		MessageType:   m.MessageType,
		AttachmentURL: m.AttachmentURL,
		IsRead:        m.IsRead,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
