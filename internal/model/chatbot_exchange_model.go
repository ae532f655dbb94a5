package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatbotExchange struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    *uuid.UUID     `gorm:"type:uuid;index"`
	Role      string         `gorm:"type:varchar(20);not null"`
	Question  string         `gorm:"type:text;not null"`
	Answer    string         `gorm:"type:text;not null"`
	History   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (ChatbotExchange) TableName() string {
	return "chatbot_exchanges"
}
