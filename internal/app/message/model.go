package message

import (
	"errors"
	"time"
)

var (
	// ErrEmptyMessage rejects a send carrying neither text nor an attachment.
	ErrEmptyMessage = errors.New("message must contain text or a file")
	ErrNotFound     = errors.New("message not found")
)

type Message struct {
	ID        string     `json:"_id" gorm:"type:uuid;primaryKey"`
	Sender    string     `json:"sender" gorm:"type:uuid;not null;index:idx_messages_sender"`
	Receiver  string     `json:"receiver" gorm:"type:uuid;not null;index:idx_messages_receiver"`
	Body      string     `json:"message" gorm:"column:message;type:text"`
	FileID    string     `json:"files,omitempty" gorm:"column:files"`
	FileURL   string     `json:"fileUrl,omitempty" gorm:"-"`
	IsRead    bool       `json:"isRead" gorm:"not null;default:false"`
	Edited    bool       `json:"edited" gorm:"not null;default:false"`
	Deleted   bool       `json:"deleted" gorm:"not null;default:false"`
	Reactions []Reaction `json:"reactions" gorm:"foreignKey:MessageID"`
	CreatedAt time.Time  `json:"timestamp" gorm:"column:timestamp;not null"`
}

// Reaction rows are append-only; a user may react to the same message more
// than once. Ordering follows insertion order.
type Reaction struct {
	ID        uint64    `json:"-" gorm:"primaryKey"`
	MessageID string    `json:"-" gorm:"type:uuid;not null;index"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null"`
	Emoji     string    `json:"emoji" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
}

func (Reaction) TableName() string {
	return "message_reactions"
}

type EditMessageRequest struct {
	NewMessage string `json:"newMessage" binding:"required"`
}

type AddReactionRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

type ConversationResponse struct {
	Messages []*Message  `json:"messages"`
	User     interface{} `json:"user"`
	Client   string      `json:"client"`
}

type SendMessageResponse struct {
	Success bool     `json:"success"`
	Message *Message `json:"message"`
	MsgID   string   `json:"msgid"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
