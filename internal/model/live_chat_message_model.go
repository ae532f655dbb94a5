package model

import (
	"time"

	"github.com/google/uuid"
)

type LiveChatMessage struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderId   uuid.UUID `gorm:"type:uuid;not null"`
	SenderRole string    `gorm:"type:varchar(20);not null"`
	Message    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Session LiveChatSession `gorm:"foreignKey:SessionId;references:Id"`
}

func (LiveChatMessage) TableName() string {
	return "live_chat_messages"
}
