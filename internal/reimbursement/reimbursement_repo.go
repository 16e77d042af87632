package reimbursement

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=reimbursement_repo.go -destination=mock/reimbursement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *ReimbursementRequest) error
	FindByID(ctx context.Context, id string) (*ReimbursementRequest, error)
	FindByEmployee(ctx context.Context, employeeID, status string, limit int) ([]ReimbursementRequest, error)
	Update(ctx context.Context, r *ReimbursementRequest) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, req *ReimbursementRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ReimbursementRequest, error) {
	var req ReimbursementRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID, status string, limit int) ([]ReimbursementRequest, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID)

	if status != "" {
		db = db.Where("status = ?", status)
	}

	var rows []ReimbursementRequest
	err := db.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, req *ReimbursementRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
