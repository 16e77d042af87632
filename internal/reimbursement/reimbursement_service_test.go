package reimbursement_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/IwanSuryana77/PresenceApp/internal/messaging/kafka"
	"github.com/IwanSuryana77/PresenceApp/internal/reimbursement"
	reimbursementerrors "github.com/IwanSuryana77/PresenceApp/internal/reimbursement/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeReimbursementRepository struct {
	withTxFn         func(tx *sql.Tx) reimbursement.Repository
	createFn         func(ctx context.Context, r *reimbursement.ReimbursementRequest) error
	findByIDFn       func(ctx context.Context, id string) (*reimbursement.ReimbursementRequest, error)
	findByEmployeeFn func(ctx context.Context, employeeID, status string, limit int) ([]reimbursement.ReimbursementRequest, error)
	updateFn         func(ctx context.Context, r *reimbursement.ReimbursementRequest) error
}

func (f *fakeReimbursementRepository) WithTx(tx *sql.Tx) reimbursement.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeReimbursementRepository) Create(ctx context.Context, r *reimbursement.ReimbursementRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeReimbursementRepository) FindByID(ctx context.Context, id string) (*reimbursement.ReimbursementRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeReimbursementRepository) FindByEmployee(ctx context.Context, employeeID, status string, limit int) ([]reimbursement.ReimbursementRequest, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID, status, limit)
	}
	return nil, nil
}

func (f *fakeReimbursementRepository) Update(ctx context.Context, r *reimbursement.ReimbursementRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error      { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, _ string) error { return nil }

type reimbursementServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service reimbursement.Service
	repo    *fakeReimbursementRepository
	outbox  *fakeOutboxRepository
}

func setupReimbursementServiceTest(t *testing.T) *reimbursementServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeReimbursementRepository{}
	outbox := &fakeOutboxRepository{}
	svc := reimbursement.NewServiceWithOutbox(db, repo, outbox)

	return &reimbursementServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		outbox:  outbox,
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

func TestReimbursementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success starts Pending", func(t *testing.T) {
		deps := setupReimbursementServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, r *reimbursement.ReimbursementRequest) error {
			assert.Equal(t, "E1", r.EmployeeID)
			assert.Equal(t, reimbursement.StatusPending, r.Status)
			assert.True(t, r.Amount.Equal(decimal.RequireFromString("125.50")))
			assert.Equal(t, []string{"https://cdn.example/receipt-1.jpg"}, r.AttachmentURLs)
			assert.Nil(t, r.ApprovedBy)
			return nil
		}

		resp, err := deps.service.Create(ctx, reimbursement.CreateReimbursementRequest{
			EmployeeID:     "E1",
			EmployeeName:   "Alice",
			StartDate:      "2024-03-05",
			EndDate:        "2024-03-06",
			Description:    "Client visit transport",
			Amount:         decimal.RequireFromString("125.50"),
			AttachmentURLs: []string{"https://cdn.example/receipt-1.jpg"},
		})

		assert.NoError(t, err)
		assert.Equal(t, reimbursement.StatusPending, resp.Status)
		assert.Equal(t, "125.5", resp.Amount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative amount rejected before any write", func(t *testing.T) {
		deps := setupReimbursementServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, reimbursement.CreateReimbursementRequest{
			EmployeeID:   "E1",
			EmployeeName: "Alice",
			StartDate:    "2024-03-05",
			EndDate:      "2024-03-06",
			Description:  "Client visit transport",
			Amount:       decimal.RequireFromString("-10"),
		})

		assert.ErrorIs(t, err, reimbursementerrors.ErrNegativeAmount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestReimbursementService_GetByEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("sums returned amounts exactly", func(t *testing.T) {
		deps := setupReimbursementServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeFn = func(ctx context.Context, employeeID, status string, limit int) ([]reimbursement.ReimbursementRequest, error) {
			assert.Equal(t, 20, limit)
			return []reimbursement.ReimbursementRequest{
				{ID: uuid.New(), EmployeeID: "E1", Amount: decimal.RequireFromString("0.10"), Status: reimbursement.StatusPending},
				{ID: uuid.New(), EmployeeID: "E1", Amount: decimal.RequireFromString("0.20"), Status: reimbursement.StatusApproved},
			}, nil
		}

		result, err := deps.service.GetByEmployee(ctx, "E1", reimbursement.ListQuery{})

		assert.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("0.30")))
	})

	t.Run("empty list totals zero", func(t *testing.T) {
		deps := setupReimbursementServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeFn = func(ctx context.Context, employeeID, status string, limit int) ([]reimbursement.ReimbursementRequest, error) {
			return nil, nil
		}

		result, err := deps.service.GetByEmployee(ctx, "E1", reimbursement.ListQuery{})

		assert.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.True(t, result.TotalAmount.IsZero())
	})
}

func TestReimbursementService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("approve queues reimbursement.approved event", func(t *testing.T) {
		deps := setupReimbursementServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		id := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*reimbursement.ReimbursementRequest, error) {
			return &reimbursement.ReimbursementRequest{
				ID:         id,
				EmployeeID: "E1",
				Amount:     decimal.RequireFromString("80"),
				Status:     reimbursement.StatusPending,
			}, nil
		}

		var queued kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = event
			return nil
		}

		resp, err := deps.service.Approve(ctx, id.String(), "M1")

		assert.NoError(t, err)
		assert.Equal(t, reimbursement.StatusApproved, resp.Status)
		assert.Equal(t, "reimbursement.approved", queued.EventType)
		assert.Equal(t, "reimbursement_request", queued.AggregateType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative record not found", func(t *testing.T) {
		deps := setupReimbursementServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*reimbursement.ReimbursementRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Reject(ctx, uuid.New().String(), "M1", nil)

		assert.ErrorIs(t, err, reimbursementerrors.ErrReimbursementNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
