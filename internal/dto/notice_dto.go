package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoticeRequest struct {
	Title          string     `json:"title" validate:"required"`
	Content        string     `json:"content" validate:"required"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=low normal high"`
	TargetAudience []string   `json:"target_audience" validate:"dive,oneof=student faculty"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type UpdateNoticeRequest struct {
	Title          *string    `json:"title"`
	Content        *string    `json:"content"`
	Priority       *string    `json:"priority" validate:"omitempty,oneof=low normal high"`
	TargetAudience []string   `json:"target_audience" validate:"dive,oneof=student faculty"`
	IsActive       *bool      `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type NoticeResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Priority       string     `json:"priority"`
	TargetAudience []string   `json:"target_audience"`
	IsActive       bool       `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}
