package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FullName   string `json:"full_name" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=student faculty"`
	Department string `json:"department" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

type ProfileResponse struct {
	Id         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}
