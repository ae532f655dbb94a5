package specification

import (
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
