package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

type User struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	Department   string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
