package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wastewise/wastewise-backend/pkg/enums"
)

// ChatMessage is one entry of a session's assistant transcript.
type ChatMessage struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID        `gorm:"column:session_id;type:uuid;not null;index:idx_chat_messages_session" json:"-"`
	Sender    enums.ChatSender `gorm:"column:sender;not null" json:"sender"`
	Body      string           `gorm:"column:body;not null" json:"body"`
	Remote    bool             `gorm:"column:remote;not null;default:false" json:"remote"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
