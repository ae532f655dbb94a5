package specification

import (
	"time"

	"college-portal-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDepartment struct {
	Department string
}

func (s ByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("department = ?", s.Department)
}

type ByStatus struct {
	Status entity.SessionStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByStudentID struct {
	StudentID uuid.UUID
}

func (s ByStudentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("student_id = ?", s.StudentID)
}

type CreatedBefore struct {
	Cutoff time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Cutoff)
}

// TranscriptOrder is the canonical per-session message ordering: ascending
// creation time, id as the tie-break so the order is total and stable.
type TranscriptOrder struct{}

func (s TranscriptOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}
