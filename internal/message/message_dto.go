package message

type CreateMessageRequest struct {
	SenderID      string  `json:"senderId" binding:"required"`
	SenderName    string  `json:"senderName" binding:"required"`
	RecipientID   *string `json:"recipientId"`
	RecipientName *string `json:"recipientName"`
	GroupID       *string `json:"groupId"`
	Content       string  `json:"content" binding:"required"`
	MessageType   string  `json:"messageType"`
	AttachmentURL *string `json:"attachmentUrl"`
}

// SystemMessageRequest is a notification write originating from the
// workflow-resolution consumer rather than an HTTP caller. The caller
// supplies the message ID so redelivered events collapse onto the same row.
type SystemMessageRequest struct {
	ID            string
	RecipientID   string
	RecipientName string
	Content       string
}

type CreateMessageResponse struct {
	ID          string  `json:"id"`
	SenderID    string  `json:"senderId"`
	RecipientID *string `json:"recipientId,omitempty"`
	GroupID     *string `json:"groupId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

type ListQuery struct {
	Limit int
}

type MessageResponse struct {
	ID            string  `json:"id"`
	SenderID      string  `json:"senderId"`
	SenderName    string  `json:"senderName"`
	RecipientID   *string `json:"recipientId,omitempty"`
	RecipientName *string `json:"recipientName,omitempty"`
	GroupID       *string `json:"groupId,omitempty"`
	Content       string  `json:"content"`
	MessageType   string  `json:"messageType"`
	AttachmentURL *string `json:"attachmentUrl,omitempty"`
	IsRead        bool    `json:"isRead"`
	CreatedAt     string  `json:"createdAt"`
}
