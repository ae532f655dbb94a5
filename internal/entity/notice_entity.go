package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notice is a board announcement targeted at one or more portal roles.
type Notice struct {
	Id             uuid.UUID
	Title          string
	Content        string
	Priority       string
	TargetAudience []string
	IsActive       bool
	ExpiresAt      *time.Time
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// VisibleTo reports whether the notice is currently live for the given role.
func (n *Notice) VisibleTo(role string, now time.Time) bool {
	if !n.IsActive {
		return false
	}
	if n.ExpiresAt != nil && now.After(*n.ExpiresAt) {
		return false
	}
	if len(n.TargetAudience) == 0 {
		return true
	}
	for _, audience := range n.TargetAudience {
		if audience == role {
			return true
		}
	}
	return false
}
