package message_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/IwanSuryana77/PresenceApp/internal/message"
	messageerrors "github.com/IwanSuryana77/PresenceApp/internal/message/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeMessageRepository struct {
	withTxFn        func(tx *sql.Tx) message.Repository
	createFn        func(ctx context.Context, m *message.Message) error
	findByIDFn      func(ctx context.Context, id string) (*message.Message, error)
	findBySendersFn func(ctx context.Context, senderA, senderB string, limit int) ([]message.Message, error)
	findByGroupFn   func(ctx context.Context, groupID string, limit int) ([]message.Message, error)
	updateFn        func(ctx context.Context, m *message.Message) error
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakeMessageRepository) WithTx(tx *sql.Tx) message.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeMessageRepository) Create(ctx context.Context, m *message.Message) error {
	if f.createFn != nil {
		return f.createFn(ctx, m)
	}
	return nil
}

func (f *fakeMessageRepository) FindByID(ctx context.Context, id string) (*message.Message, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeMessageRepository) FindBySenders(ctx context.Context, senderA, senderB string, limit int) ([]message.Message, error) {
	if f.findBySendersFn != nil {
		return f.findBySendersFn(ctx, senderA, senderB, limit)
	}
	return nil, nil
}

func (f *fakeMessageRepository) FindByGroup(ctx context.Context, groupID string, limit int) ([]message.Message, error) {
	if f.findByGroupFn != nil {
		return f.findByGroupFn(ctx, groupID, limit)
	}
	return nil, nil
}

func (f *fakeMessageRepository) Update(ctx context.Context, m *message.Message) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, m)
	}
	return nil
}

func (f *fakeMessageRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type messageServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service message.Service
	repo    *fakeMessageRepository
}

func setupMessageServiceTest(t *testing.T) *messageServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeMessageRepository{}
	svc := message.NewService(db, repo)

	return &messageServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(s string) *string { return &s }

func TestMessageService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("direct message defaults to text type", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, m *message.Message) error {
			assert.Equal(t, "U1", m.SenderID)
			assert.Equal(t, "U2", *m.RecipientID)
			assert.Nil(t, m.GroupID)
			assert.Equal(t, message.TypeText, m.MessageType)
			assert.False(t, m.IsRead)
			return nil
		}

		resp, err := deps.service.Create(ctx, message.CreateMessageRequest{
			SenderID:    "U1",
			SenderName:  "Alice",
			RecipientID: strPtr("U2"),
			Content:     "hello",
		})

		assert.NoError(t, err)
		assert.Equal(t, "U1", resp.SenderID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative both recipient and group", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, message.CreateMessageRequest{
			SenderID:    "U1",
			SenderName:  "Alice",
			RecipientID: strPtr("U2"),
			GroupID:     strPtr("G1"),
			Content:     "hello",
		})

		assert.ErrorIs(t, err, messageerrors.ErrRecipientOrGroup)
	})

	t.Run("negative neither recipient nor group", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, message.CreateMessageRequest{
			SenderID:   "U1",
			SenderName: "Alice",
			Content:    "hello",
		})

		assert.ErrorIs(t, err, messageerrors.ErrRecipientOrGroup)
	})
}

func TestMessageService_GetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps only the symmetric pair, ascending, no group messages", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		deps.repo.findBySendersFn = func(ctx context.Context, senderA, senderB string, limit int) ([]message.Message, error) {
			assert.Equal(t, "U1", senderA)
			assert.Equal(t, "U2", senderB)
			assert.Equal(t, 50, limit)
			// Descending, the way the store returns them.
			return []message.Message{
				{ID: uuid.New(), SenderID: "U2", RecipientID: strPtr("U1"), Content: "third", CreatedAt: base.Add(2 * time.Minute)},
				{ID: uuid.New(), SenderID: "U1", GroupID: strPtr("G1"), Content: "group noise", CreatedAt: base.Add(90 * time.Second)},
				{ID: uuid.New(), SenderID: "U1", RecipientID: strPtr("U3"), Content: "other chat", CreatedAt: base.Add(time.Minute)},
				{ID: uuid.New(), SenderID: "U1", RecipientID: strPtr("U2"), Content: "second", CreatedAt: base.Add(30 * time.Second)},
				{ID: uuid.New(), SenderID: "U2", RecipientID: strPtr("U1"), Content: "first", CreatedAt: base},
			}, nil
		}

		resp, err := deps.service.GetConversation(ctx, "U1", "U2", message.ListQuery{})

		assert.NoError(t, err)
		assert.Len(t, resp, 3)
		assert.Equal(t, "first", resp[0].Content)
		assert.Equal(t, "second", resp[1].Content)
		assert.Equal(t, "third", resp[2].Content)
	})

	t.Run("empty conversation is not an error", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		deps.repo.findBySendersFn = func(ctx context.Context, senderA, senderB string, limit int) ([]message.Message, error) {
			return nil, nil
		}

		resp, err := deps.service.GetConversation(ctx, "U1", "U2", message.ListQuery{})

		assert.NoError(t, err)
		assert.Empty(t, resp)
	})
}

func TestMessageService_GetGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses to chronological order", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		deps.repo.findByGroupFn = func(ctx context.Context, groupID string, limit int) ([]message.Message, error) {
			assert.Equal(t, "G1", groupID)
			return []message.Message{
				{ID: uuid.New(), SenderID: "U2", GroupID: strPtr("G1"), Content: "later", CreatedAt: base.Add(time.Minute)},
				{ID: uuid.New(), SenderID: "U1", GroupID: strPtr("G1"), Content: "earlier", CreatedAt: base},
			}, nil
		}

		resp, err := deps.service.GetGroup(ctx, "G1", message.ListQuery{})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "earlier", resp[0].Content)
		assert.Equal(t, "later", resp[1].Content)
	})
}

func TestMessageService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("success flips only the read flag", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		id := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*message.Message, error) {
			return &message.Message{
				ID:          id,
				SenderID:    "U1",
				RecipientID: strPtr("U2"),
				Content:     "hello",
				MessageType: message.TypeText,
				IsRead:      false,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, m *message.Message) error {
			assert.True(t, m.IsRead)
			assert.Equal(t, "hello", m.Content)
			return nil
		}

		resp, err := deps.service.MarkRead(ctx, id.String())

		assert.NoError(t, err)
		assert.True(t, resp.IsRead)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative message not found", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.MarkRead(ctx, uuid.New().String())

		assert.ErrorIs(t, err, messageerrors.ErrMessageNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestMessageService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("negative nonexistent message yields not found", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, messageerrors.ErrMessageNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestMessageService_CreateSystem(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the supplied id and system sender", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		eventID := uuid.New().String()
		deps.repo.createFn = func(ctx context.Context, m *message.Message) error {
			assert.Equal(t, eventID, m.ID.String())
			assert.Equal(t, "system", m.SenderID)
			assert.Equal(t, message.TypeSystem, m.MessageType)
			assert.Equal(t, "E1", *m.RecipientID)
			return nil
		}

		err := deps.service.CreateSystem(ctx, message.SystemMessageRequest{
			ID:            eventID,
			RecipientID:   "E1",
			RecipientName: "Alice",
			Content:       "Your leave request has been approved",
		})

		assert.NoError(t, err)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		deps := setupMessageServiceTest(t)
		defer deps.db.Close()

		err := deps.service.CreateSystem(ctx, message.SystemMessageRequest{
			ID:          "not-a-uuid",
			RecipientID: "E1",
			Content:     "x",
		})

		assert.Error(t, err)
	})
}
