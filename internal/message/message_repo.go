package message

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=message_repo.go -destination=mock/message_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id string) (*Message, error)
	FindBySenders(ctx context.Context, senderA, senderB string, limit int) ([]Message, error)
	FindByGroup(ctx context.Context, groupID string, limit int) ([]Message, error)
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Message, error) {
	var m Message
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) FindBySenders(ctx context.Context, senderA, senderB string, limit int) ([]Message, error) {
	var rows []Message
	err := r.db.WithContext(ctx).
		Where("sender_id IN ?", []string{senderA, senderB}).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByGroup(ctx context.Context, groupID string, limit int) ([]Message, error) {
	var rows []Message
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Message{}, "id = ?", id).Error
}
