package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Department string `json:"department" validate:"required"`
	Topic      string `json:"topic" validate:"required"`
}

type SessionResponse struct {
	Id         uuid.UUID  `json:"id"`
	StudentId  uuid.UUID  `json:"student_id"`
	FacultyId  *uuid.UUID `json:"faculty_id,omitempty"`
	Status     string     `json:"status"`
	Topic      string     `json:"topic"`
	Department string     `json:"department"`
	CreatedAt  time.Time  `json:"created_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
}

type PostMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type MessageResponse struct {
	Id         uuid.UUID `json:"id"`
	SessionId  uuid.UUID `json:"session_id"`
	SenderId   uuid.UUID `json:"sender_id"`
	SenderRole string    `json:"sender_role"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
