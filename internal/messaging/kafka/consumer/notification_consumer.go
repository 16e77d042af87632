package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/IwanSuryana77/PresenceApp/internal/events"
	"github.com/IwanSuryana77/PresenceApp/internal/message"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeWorkflowResolved turns approve/reject events into system messages
// for the requesting employee. The message ID reuses the event ID, so a
// redelivered event trips the primary key and is committed as a duplicate
// instead of notifying twice.
func ConsumeWorkflowResolved(
	ctx context.Context,
	reader *kafkago.Reader,
	messageService message.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.workflow_resolved")
	log.Info("workflow resolution consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("workflow resolution consumer stopped")
				return
			}
			log.Error("fetch workflow resolution message failed", zap.Error(err))
			continue
		}

		var event events.WorkflowResolvedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode workflow resolution event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = messageService.CreateSystem(ctx, message.SystemMessageRequest{
			ID:            event.EventID,
			RecipientID:   event.EmployeeID,
			RecipientName: event.EmployeeName,
			Content:       notificationContent(event),
		})
		if err != nil {
			if isDuplicateMessage(err) {
				log.Warn("notification already delivered for event, skipping",
					zap.String("event_id", event.EventID),
					zap.String("employee_id", event.EmployeeID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create notification message failed",
				zap.String("event_id", event.EventID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit workflow resolution message failed", zap.Error(err))
			continue
		}

		log.Info("notification message created from workflow resolution",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}

func notificationContent(event events.WorkflowResolvedEvent) string {
	kind := "leave request"
	if strings.HasPrefix(event.EventType, "reimbursement.") {
		kind = "reimbursement request"
	}

	if event.Status == "Rejected" {
		if event.RejectionReason != nil && *event.RejectionReason != "" {
			return fmt.Sprintf("Your %s has been rejected: %s", kind, *event.RejectionReason)
		}
		return fmt.Sprintf("Your %s has been rejected", kind)
	}
	return fmt.Sprintf("Your %s has been approved", kind)
}

func isDuplicateMessage(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "messages_pkey"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "messages_pkey")
}
