package mapper

import (
	"time"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	return &entity.User{
		Id:           u.Id,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Department:   u.Department,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var updatedAt time.Time
	if u.UpdatedAt != nil {
		updatedAt = *u.UpdatedAt
	}

	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Department:   u.Department,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}
