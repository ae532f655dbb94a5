package contract

import (
	"context"
	"time"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/repository/specification"

	"github.com/google/uuid"
)

// StatusTransition describes the target of a conditional status update. Only
// non-nil fields are written alongside the new status.
type StatusTransition struct {
	NewStatus  entity.SessionStatus
	FacultyId  *uuid.UUID
	AcceptedAt *time.Time
	ClosedAt   *time.Time
}

type LiveChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TransitionStatus performs a single conditional update guarded by the
	// expected current status ("transition only if status is still X"). It
	// returns false when no row matched: either the session does not exist
	// or its status changed under the caller. This is the store-side
	// atomicity guarantee for the accept race: of N concurrent transitions
	// from the same expected status, exactly one observes true.
	TransitionStatus(ctx context.Context, id uuid.UUID, expected entity.SessionStatus, transition StatusTransition) (bool, error)
}
