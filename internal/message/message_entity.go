package message

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID      string    `gorm:"type:varchar(100);not null;index"`
	SenderName    string    `gorm:"type:varchar(255);not null"`
	RecipientID   *string   `gorm:"type:varchar(100);index"`
	RecipientName *string   `gorm:"type:varchar(255)"`
	GroupID       *string   `gorm:"type:varchar(100);index"`
	Content       string    `gorm:"type:text;not null"`
	MessageType   string    `gorm:"type:varchar(50);not null;default:'text'"`
	AttachmentURL *string   `gorm:"type:text"`
	IsRead        bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
