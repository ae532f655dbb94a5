package service

import (
	"context"
	"fmt"
	"time"

	"college-portal-be/internal/constant"
	"college-portal-be/internal/dto"
	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/apperror"
	"college-portal-be/internal/pkg/logger"
	"college-portal-be/internal/repository/contract"
	"college-portal-be/internal/repository/specification"
	"college-portal-be/internal/repository/unitofwork"
	"college-portal-be/pkg/events"

	"github.com/google/uuid"
)

// IEventPublisher is the slice of the NATS publisher the services need.
// Satisfied by *nats.Publisher.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ILiveChatService interface {
	RequestSession(ctx context.Context, studentId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	ListPending(ctx context.Context, department string) ([]*dto.SessionResponse, error)
	AcceptSession(ctx context.Context, facultyId uuid.UUID, department string, sessionId uuid.UUID) (*dto.SessionResponse, error)
	DeclineSession(ctx context.Context, facultyId uuid.UUID, department string, sessionId uuid.UUID) (*dto.SessionResponse, error)
	CloseSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, role, department string, sessionId uuid.UUID) (*dto.SessionResponse, error)
	PostMessage(ctx context.Context, senderId uuid.UUID, senderRole string, sessionId uuid.UUID, req *dto.PostMessageRequest) (*dto.MessageResponse, error)
	FetchTranscript(ctx context.Context, userId uuid.UUID, role, department string, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
}

type liveChatService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IEventPublisher
	log            logger.ILogger
}

func NewLiveChatService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher IEventPublisher,
	log logger.ILogger,
) ILiveChatService {
	return &liveChatService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *liveChatService) RequestSession(ctx context.Context, studentId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if !constant.IsValidDepartment(req.Department) {
		return nil, apperror.Validation(fmt.Sprintf("unknown department: %s", req.Department))
	}

	session := &entity.ChatSession{
		Id:         uuid.New(),
		StudentId:  studentId,
		Status:     entity.StatusPending,
		Topic:      req.Topic,
		Department: req.Department,
		CreatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LiveChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewSessionCreated(
		session.Id.String(), studentId.String(), session.Department, session.Topic, session.CreatedAt,
	))

	return sessionToResponse(session), nil
}

func (s *liveChatService) ListPending(ctx context.Context, department string) ([]*dto.SessionResponse, error) {
	if !constant.IsValidDepartment(department) {
		return nil, apperror.Validation(fmt.Sprintf("unknown department: %s", department))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.LiveChatSessionRepository().FindAll(ctx,
		specification.ByDepartment{Department: department},
		specification.ByStatus{Status: entity.StatusPending},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, sessionToResponse(session))
	}
	return result, nil
}

// AcceptSession claims a pending session for the calling faculty member. The
// claim is a conditional update keyed on the pending status, so of N
// concurrent accepts exactly one wins; the rest surface RaceLost.
func (s *liveChatService) AcceptSession(ctx context.Context, facultyId uuid.UUID, department string, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.LiveChatSessionRepository()

	session, err := repo.FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if session.Department != department {
		return nil, apperror.Forbidden("session belongs to another department")
	}

	now := time.Now()
	ok, err := repo.TransitionStatus(ctx, sessionId, entity.StatusPending, contract.StatusTransition{
		NewStatus:  entity.StatusActive,
		FacultyId:  &facultyId,
		AcceptedAt: &now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, repo, sessionId, entity.StatusActive)
	}

	session.Status = entity.StatusActive
	session.FacultyId = &facultyId
	session.AcceptedAt = &now

	s.publish(ctx, events.NewSessionUpdated(
		session.Id.String(), session.Department, string(entity.StatusActive), facultyId.String(),
	))

	return sessionToResponse(session), nil
}

func (s *liveChatService) DeclineSession(ctx context.Context, facultyId uuid.UUID, department string, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.LiveChatSessionRepository()

	session, err := repo.FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if session.Department != department {
		return nil, apperror.Forbidden("session belongs to another department")
	}

	ok, err := repo.TransitionStatus(ctx, sessionId, entity.StatusPending, contract.StatusTransition{
		NewStatus: entity.StatusDeclined,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, repo, sessionId, entity.StatusDeclined)
	}

	session.Status = entity.StatusDeclined

	s.publish(ctx, events.NewSessionUpdated(
		session.Id.String(), session.Department, string(entity.StatusDeclined), facultyId.String(),
	))

	return sessionToResponse(session), nil
}

// CloseSession ends a session from either side. Closing an already-closed
// session is a no-op that reports success; the original closed_at stands.
func (s *liveChatService) CloseSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.LiveChatSessionRepository()

	session, err := repo.FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if !session.Participant(userId) {
		return nil, apperror.Forbidden("only session participants may close it")
	}

	now := time.Now()
	transition := contract.StatusTransition{
		NewStatus: entity.StatusClosed,
		ClosedAt:  &now,
	}

	// Try from active first, then pending (student cancelling an unclaimed
	// request). Both may lose to a concurrent close.
	ok, err := repo.TransitionStatus(ctx, sessionId, entity.StatusActive, transition)
	if err != nil {
		return nil, err
	}
	if !ok {
		ok, err = repo.TransitionStatus(ctx, sessionId, entity.StatusPending, transition)
		if err != nil {
			return nil, err
		}
	}

	if !ok {
		current, err := repo.FindOne(ctx, specification.ByID{ID: sessionId})
		if err != nil {
			return nil, err
		}
		switch {
		case current == nil:
			return nil, apperror.NotFound("chat session not found")
		case current.Status == entity.StatusClosed:
			// Already closed, idempotent success.
			return sessionToResponse(current), nil
		default:
			return nil, apperror.InvalidTransition(fmt.Sprintf("cannot close session in status %s", current.Status))
		}
	}

	session.Status = entity.StatusClosed
	session.ClosedAt = &now

	facultyId := ""
	if session.FacultyId != nil {
		facultyId = session.FacultyId.String()
	}
	s.publish(ctx, events.NewSessionUpdated(
		session.Id.String(), session.Department, string(entity.StatusClosed), facultyId,
	))

	return sessionToResponse(session), nil
}

func (s *liveChatService) GetSession(ctx context.Context, userId uuid.UUID, role, department string, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.LiveChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if err := authorizeSessionRead(session, userId, role, department); err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *liveChatService) PostMessage(ctx context.Context, senderId uuid.UUID, senderRole string, sessionId uuid.UUID, req *dto.PostMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.LiveChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if !session.Participant(senderId) {
		return nil, apperror.Forbidden("only session participants may post messages")
	}
	if session.Status != entity.StatusActive {
		return nil, apperror.InvalidTransition(fmt.Sprintf("cannot post to a %s session", session.Status))
	}

	message := &entity.ChatMessage{
		Id:         uuid.New(),
		SessionId:  sessionId,
		SenderId:   senderId,
		SenderRole: senderRole,
		Message:    req.Message,
		CreatedAt:  time.Now(),
	}
	if err := uow.LiveChatMessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewMessageCreated(
		message.Id.String(), sessionId.String(), senderId.String(), senderRole, message.Message, message.CreatedAt,
	))

	return messageToResponse(message), nil
}

func (s *liveChatService) FetchTranscript(ctx context.Context, userId uuid.UUID, role, department string, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.LiveChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if err := authorizeSessionRead(session, userId, role, department); err != nil {
		return nil, err
	}

	messages, err := uow.LiveChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.TranscriptOrder{},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		result = append(result, messageToResponse(message))
	}
	return result, nil
}

// transitionConflict classifies a lost conditional update by re-reading the
// row: a concurrent accept surfaces RaceLost, anything else InvalidTransition.
func (s *liveChatService) transitionConflict(ctx context.Context, repo contract.LiveChatSessionRepository, sessionId uuid.UUID, attempted entity.SessionStatus) error {
	current, err := repo.FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if current == nil {
		return apperror.NotFound("chat session not found")
	}
	if current.Status == entity.StatusActive {
		return apperror.RaceLost("session was already accepted by another faculty member")
	}
	return apperror.InvalidTransition(fmt.Sprintf("cannot move session from %s to %s", current.Status, attempted))
}

// authorizeSessionRead gates session and transcript reads: participants
// always, plus faculty of the owning department so they can triage pending
// requests. Cross-department faculty never see the session.
func authorizeSessionRead(session *entity.ChatSession, userId uuid.UUID, role, department string) error {
	if session.Participant(userId) {
		return nil
	}
	if role == entity.RoleFaculty && session.Department == department {
		return nil
	}
	return apperror.Forbidden("not a participant of this session")
}

func (s *liveChatService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		// Delivery is best effort; the state change already committed.
		s.log.Error("livechat", "failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

func sessionToResponse(session *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:         session.Id,
		StudentId:  session.StudentId,
		FacultyId:  session.FacultyId,
		Status:     string(session.Status),
		Topic:      session.Topic,
		Department: session.Department,
		CreatedAt:  session.CreatedAt,
		AcceptedAt: session.AcceptedAt,
		ClosedAt:   session.ClosedAt,
	}
}

func messageToResponse(message *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:         message.Id,
		SessionId:  message.SessionId,
		SenderId:   message.SenderId,
		SenderRole: message.SenderRole,
		Message:    message.Message,
		CreatedAt:  message.CreatedAt,
	}
}
