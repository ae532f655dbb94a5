package service

import (
	"context"
	"time"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/logger"
	"college-portal-be/internal/pkg/mailer"
	"college-portal-be/internal/repository/contract"
	"college-portal-be/internal/repository/specification"
	"college-portal-be/internal/repository/unitofwork"
	"college-portal-be/pkg/events"
)

// ISweeperService declines pending chat requests that no faculty member
// picked up within the configured TTL.
type ISweeperService interface {
	Run(ctx context.Context)
	SweepOnce(ctx context.Context) (int, error)
}

type sweeperService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IEventPublisher
	emailService   mailer.IEmailService
	pendingTTL     time.Duration
	interval       time.Duration
	log            logger.ILogger
}

func NewSweeperService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher IEventPublisher,
	emailService mailer.IEmailService,
	pendingTTL time.Duration,
	interval time.Duration,
	log logger.ILogger,
) ISweeperService {
	return &sweeperService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		pendingTTL:     pendingTTL,
		interval:       interval,
		log:            log,
	}
}

// Run blocks until the context is cancelled. With a zero TTL the sweeper is
// disabled and returns immediately.
func (s *sweeperService) Run(ctx context.Context) {
	if s.pendingTTL <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.log.Error("sweeper", "sweep failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// SweepOnce declines every pending session older than the TTL and returns how
// many it expired. Each decline is the same conditional update faculty
// declines use, so a request accepted mid-sweep is left alone.
func (s *sweeperService) SweepOnce(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.LiveChatSessionRepository()

	cutoff := time.Now().Add(-s.pendingTTL)
	stale, err := repo.FindAll(ctx,
		specification.ByStatus{Status: entity.StatusPending},
		specification.CreatedBefore{Cutoff: cutoff},
	)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, session := range stale {
		ok, err := repo.TransitionStatus(ctx, session.Id, entity.StatusPending, contract.StatusTransition{
			NewStatus: entity.StatusDeclined,
		})
		if err != nil {
			s.log.Error("sweeper", "failed to expire session", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
			continue
		}
		if !ok {
			// Accepted or closed between the read and the update.
			continue
		}
		expired++

		if s.eventPublisher != nil {
			if err := s.eventPublisher.Publish(ctx, events.NewSessionUpdated(
				session.Id.String(), session.Department, string(entity.StatusDeclined), "",
			)); err != nil {
				s.log.Error("sweeper", "failed to publish expiry event", map[string]interface{}{
					"session_id": session.Id.String(),
					"error":      err.Error(),
				})
			}
		}

		s.notifyStudent(ctx, uow, session)
	}

	if expired > 0 {
		s.log.Info("sweeper", "expired stale pending sessions", map[string]interface{}{
			"count": expired,
		})
	}
	return expired, nil
}

func (s *sweeperService) notifyStudent(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession) {
	if s.emailService == nil {
		return
	}

	student, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: session.StudentId})
	if err != nil || student == nil {
		s.log.Warn("sweeper", "could not load student for expiry mail", map[string]interface{}{
			"session_id": session.Id.String(),
			"student_id": session.StudentId.String(),
		})
		return
	}

	if err := s.emailService.SendChatDeclined(student.Email, session.Topic, session.Department); err != nil {
		s.log.Error("sweeper", "failed to send expiry mail", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}
