package model

import (
	"time"

	"github.com/google/uuid"
)

// LiveChatSession rows are append-and-update only; the broker never deletes
// them so closed conversations stay auditable.
type LiveChatSession struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	FacultyId  *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"type:varchar(20);not null;index:idx_live_chat_sessions_dept_status,priority:2"`
	Topic      string     `gorm:"type:text;not null"`
	Department string     `gorm:"type:varchar(10);not null;index:idx_live_chat_sessions_dept_status,priority:1"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	AcceptedAt *time.Time
	ClosedAt   *time.Time
}

func (LiveChatSession) TableName() string {
	return "live_chat_sessions"
}
