package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notice struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Content        string         `gorm:"type:text;not null"`
	Priority       string         `gorm:"type:varchar(20);not null;default:'normal'"`
	TargetAudience datatypes.JSON `gorm:"type:jsonb"`
	IsActive       bool           `gorm:"not null;default:true;index"`
	ExpiresAt      *time.Time
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Notice) TableName() string {
	return "notices"
}
