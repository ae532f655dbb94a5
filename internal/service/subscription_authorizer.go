package service

import (
	"context"

	"college-portal-be/internal/constant"
	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/apperror"
	"college-portal-be/internal/repository/specification"
	"college-portal-be/internal/repository/unitofwork"
	ws "college-portal-be/internal/websocket"

	"github.com/google/uuid"
)

// subscriptionAuthorizer gates realtime channel subscriptions: faculty get
// their own department feed, participants get their session feed. Department
// feeds never cross department lines.
type subscriptionAuthorizer struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSubscriptionAuthorizer(uowFactory unitofwork.RepositoryFactory) ws.SubscriptionAuthorizer {
	return &subscriptionAuthorizer{uowFactory: uowFactory}
}

func (a *subscriptionAuthorizer) Authorize(ctx context.Context, userId uuid.UUID, role, department string, channel ws.Channel) error {
	switch channel.Kind {
	case ws.KindDepartment:
		if !constant.IsValidDepartment(channel.Department) {
			return apperror.Validation("unknown department channel")
		}
		if role != entity.RoleFaculty && role != entity.RoleAdmin {
			return apperror.Forbidden("department feeds are faculty only")
		}
		if role == entity.RoleFaculty && channel.Department != department {
			return apperror.Forbidden("cannot subscribe to another department's feed")
		}
		return nil

	case ws.KindSession:
		uow := a.uowFactory.NewUnitOfWork(ctx)
		session, err := uow.LiveChatSessionRepository().FindOne(ctx, specification.ByID{ID: channel.SessionId})
		if err != nil {
			return err
		}
		if session == nil {
			return apperror.NotFound("chat session not found")
		}
		if session.Participant(userId) {
			return nil
		}
		// Faculty of the owning department may watch a pending request so
		// they see it resolve after triage.
		if role == entity.RoleFaculty && session.Department == department {
			return nil
		}
		return apperror.Forbidden("not a participant of this session")

	default:
		return apperror.Validation("unknown channel kind")
	}
}
