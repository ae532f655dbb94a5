package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"college-portal-be/internal/dto"
	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/apperror"
	"college-portal-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLiveChatFixture() (*memFactory, *recordingPublisher, ILiveChatService) {
	factory := newMemFactory()
	publisher := &recordingPublisher{}
	svc := NewLiveChatService(factory, publisher, nopLogger{})
	return factory, publisher, svc
}

func TestRequestSession(t *testing.T) {
	_, publisher, svc := newLiveChatFixture()
	studentId := uuid.New()

	res, err := svc.RequestSession(context.Background(), studentId, &dto.CreateSessionRequest{
		Department: "CSE",
		Topic:      "Doubt about semester registration",
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusPending), res.Status)
	assert.Equal(t, studentId, res.StudentId)
	assert.Nil(t, res.FacultyId)
	assert.Equal(t, "CSE", res.Department)

	created := publisher.byType(events.TypeSessionCreated)
	require.Len(t, created, 1)
	assert.Equal(t, "CSE", created[0].Payload()["department"])
}

func TestRequestSessionUnknownDepartment(t *testing.T) {
	_, _, svc := newLiveChatFixture()

	_, err := svc.RequestSession(context.Background(), uuid.New(), &dto.CreateSessionRequest{
		Department: "ARCH",
		Topic:      "anything",
	})
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
}

func TestListPendingScopedToDepartment(t *testing.T) {
	factory, _, svc := newLiveChatFixture()

	base := time.Now().Add(-time.Hour)
	for i, dept := range []string{"CSE", "CSE", "ECE"} {
		seedSession(factory, &entity.ChatSession{
			Id:         uuid.New(),
			StudentId:  uuid.New(),
			Status:     entity.StatusPending,
			Topic:      fmt.Sprintf("topic %d", i),
			Department: dept,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	seedSession(factory, &entity.ChatSession{
		Id:         uuid.New(),
		StudentId:  uuid.New(),
		Status:     entity.StatusClosed,
		Department: "CSE",
		CreatedAt:  base,
	})

	pending, err := svc.ListPending(context.Background(), "CSE")
	require.NoError(t, err)
	require.Len(t, pending, 2, "only pending CSE sessions are listed")

	// Oldest request first.
	assert.True(t, pending[0].CreatedAt.Before(pending[1].CreatedAt))
}

func TestAcceptSession(t *testing.T) {
	factory, publisher, svc := newLiveChatFixture()
	facultyId := uuid.New()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusPending,
		Department: "ECE",
	})

	res, err := svc.AcceptSession(context.Background(), facultyId, "ECE", sessionId)
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusActive), res.Status)
	require.NotNil(t, res.FacultyId)
	assert.Equal(t, facultyId, *res.FacultyId)
	assert.NotNil(t, res.AcceptedAt)

	updated := publisher.byType(events.TypeSessionUpdated)
	require.Len(t, updated, 1)
	assert.Equal(t, "active", updated[0].Payload()["status"])
}

func TestAcceptSessionCrossDepartment(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusPending,
		Department: "MECH",
	})

	_, err := svc.AcceptSession(context.Background(), uuid.New(), "CIVIL", sessionId)
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))
	assert.Equal(t, entity.StatusPending, sessionStatus(factory, sessionId))
}

func TestAcceptSessionNotFound(t *testing.T) {
	_, _, svc := newLiveChatFixture()

	_, err := svc.AcceptSession(context.Background(), uuid.New(), "CSE", uuid.New())
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}

// Of N faculty racing to accept the same request, exactly one wins; every
// loser gets a race-lost conflict, never a partial claim.
func TestAcceptSessionConcurrentSingleWinner(t *testing.T) {
	factory, publisher, svc := newLiveChatFixture()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusPending,
		Department: "CSE",
	})

	const contenders = 16
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	winners := make([]uuid.UUID, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			facultyId := uuid.New()
			res, err := svc.AcceptSession(context.Background(), facultyId, "CSE", sessionId)
			errs[i] = err
			if err == nil && res.FacultyId != nil {
				winners[i] = *res.FacultyId
			}
		}(i)
	}
	wg.Wait()

	wins, raceLost := 0, 0
	var winner uuid.UUID
	for i := 0; i < contenders; i++ {
		if errs[i] == nil {
			wins++
			winner = winners[i]
		} else if apperror.CodeOf(errs[i]) == apperror.CodeRaceLost {
			raceLost++
		}
	}

	assert.Equal(t, 1, wins, "exactly one accept succeeds")
	assert.Equal(t, contenders-1, raceLost, "all others lose the race")

	// The stored session belongs to the winner.
	session, err := factory.NewUnitOfWork(context.Background()).
		LiveChatSessionRepository().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, session, 1)
	assert.Equal(t, entity.StatusActive, session[0].Status)
	require.NotNil(t, session[0].FacultyId)
	assert.Equal(t, winner, *session[0].FacultyId)

	assert.Len(t, publisher.byType(events.TypeSessionUpdated), 1)
}

func TestDeclineSession(t *testing.T) {
	factory, publisher, svc := newLiveChatFixture()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusPending,
		Department: "EEE",
	})

	res, err := svc.DeclineSession(context.Background(), uuid.New(), "EEE", sessionId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDeclined), res.Status)
	assert.Nil(t, res.FacultyId, "decline never assigns the faculty member")

	updated := publisher.byType(events.TypeSessionUpdated)
	require.Len(t, updated, 1)
	assert.Equal(t, "declined", updated[0].Payload()["status"])
}

func TestDeclineAfterAcceptIsRaceLost(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusPending,
		Department: "CSE",
	})

	_, err := svc.AcceptSession(context.Background(), uuid.New(), "CSE", sessionId)
	require.NoError(t, err)

	_, err = svc.DeclineSession(context.Background(), uuid.New(), "CSE", sessionId)
	assert.Equal(t, apperror.CodeRaceLost, apperror.CodeOf(err))
	assert.Equal(t, entity.StatusActive, sessionStatus(factory, sessionId))
}

func TestDeclineTerminalSessionIsInvalid(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusClosed,
		Department: "CSE",
	})

	_, err := svc.DeclineSession(context.Background(), uuid.New(), "CSE", sessionId)
	assert.Equal(t, apperror.CodeInvalidTransition, apperror.CodeOf(err))
}

func TestCloseActiveSession(t *testing.T) {
	factory, publisher, svc := newLiveChatFixture()
	studentId := uuid.New()
	facultyId := uuid.New()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  studentId,
		FacultyId:  &facultyId,
		Status:     entity.StatusActive,
		Department: "CSE",
	})

	res, err := svc.CloseSession(context.Background(), facultyId, sessionId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusClosed), res.Status)
	assert.NotNil(t, res.ClosedAt)

	updated := publisher.byType(events.TypeSessionUpdated)
	require.Len(t, updated, 1)
	assert.Equal(t, "closed", updated[0].Payload()["status"])
}

func TestCloseSessionIdempotent(t *testing.T) {
	factory, publisher, svc := newLiveChatFixture()
	studentId := uuid.New()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  studentId,
		Status:     entity.StatusActive,
		Department: "CSE",
	})

	first, err := svc.CloseSession(context.Background(), studentId, sessionId)
	require.NoError(t, err)
	require.NotNil(t, first.ClosedAt)

	second, err := svc.CloseSession(context.Background(), studentId, sessionId)
	require.NoError(t, err, "closing a closed session succeeds")
	require.NotNil(t, second.ClosedAt)
	assert.True(t, first.ClosedAt.Equal(*second.ClosedAt), "repeat close never moves closed_at")

	// Only the first close emits an event.
	assert.Len(t, publisher.byType(events.TypeSessionUpdated), 1)
}

func TestClosePendingSessionByStudent(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	studentId := uuid.New()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  studentId,
		Status:     entity.StatusPending,
		Department: "ECE",
	})

	res, err := svc.CloseSession(context.Background(), studentId, sessionId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusClosed), res.Status)
}

func TestCloseSessionNonParticipant(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusActive,
		Department: "CSE",
	})

	_, err := svc.CloseSession(context.Background(), uuid.New(), sessionId)
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))
}

func TestCloseDeclinedSessionIsInvalid(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	studentId := uuid.New()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  studentId,
		Status:     entity.StatusDeclined,
		Department: "CSE",
	})

	_, err := svc.CloseSession(context.Background(), studentId, sessionId)
	assert.Equal(t, apperror.CodeInvalidTransition, apperror.CodeOf(err))
}

func TestPostMessage(t *testing.T) {
	factory, publisher, svc := newLiveChatFixture()
	studentId := uuid.New()
	facultyId := uuid.New()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  studentId,
		FacultyId:  &facultyId,
		Status:     entity.StatusActive,
		Department: "CSE",
	})

	res, err := svc.PostMessage(context.Background(), studentId, entity.SenderStudent, sessionId, &dto.PostMessageRequest{
		Message: "hello, I need help with my project submission",
	})
	require.NoError(t, err)
	assert.Equal(t, sessionId, res.SessionId)
	assert.Equal(t, entity.SenderStudent, res.SenderRole)

	created := publisher.byType(events.TypeMessageCreated)
	require.Len(t, created, 1)
	assert.Equal(t, sessionId.String(), created[0].Payload()["session_id"])
}

func TestPostMessageRejectedUnlessActive(t *testing.T) {
	for _, status := range []entity.SessionStatus{entity.StatusPending, entity.StatusDeclined, entity.StatusClosed} {
		t.Run(string(status), func(t *testing.T) {
			factory, _, svc := newLiveChatFixture()
			studentId := uuid.New()
			sessionId := uuid.New()

			seedSession(factory, &entity.ChatSession{
				Id:         sessionId,
				StudentId:  studentId,
				Status:     status,
				Department: "CSE",
			})

			_, err := svc.PostMessage(context.Background(), studentId, entity.SenderStudent, sessionId, &dto.PostMessageRequest{
				Message: "anyone there?",
			})
			assert.Equal(t, apperror.CodeInvalidTransition, apperror.CodeOf(err))
		})
	}
}

func TestPostMessageNonParticipant(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusActive,
		Department: "CSE",
	})

	_, err := svc.PostMessage(context.Background(), uuid.New(), entity.SenderFaculty, sessionId, &dto.PostMessageRequest{
		Message: "let me jump in",
	})
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))
}

func TestFetchTranscriptOrdering(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	studentId := uuid.New()
	facultyId := uuid.New()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  studentId,
		FacultyId:  &facultyId,
		Status:     entity.StatusActive,
		Department: "CSE",
	})

	bodies := []string{"first", "second", "third", "fourth"}
	for i, body := range bodies {
		sender, role := studentId, entity.SenderStudent
		if i%2 == 1 {
			sender, role = facultyId, entity.SenderFaculty
		}
		_, err := svc.PostMessage(context.Background(), sender, role, sessionId, &dto.PostMessageRequest{Message: body})
		require.NoError(t, err)
	}

	transcript, err := svc.FetchTranscript(context.Background(), studentId, entity.RoleStudent, "", sessionId)
	require.NoError(t, err)
	require.Len(t, transcript, len(bodies))
	for i, body := range bodies {
		assert.Equal(t, body, transcript[i].Message)
	}
}

func TestFetchTranscriptDepartmentIsolation(t *testing.T) {
	factory, _, svc := newLiveChatFixture()
	sessionId := uuid.New()

	seedSession(factory, &entity.ChatSession{
		Id:         sessionId,
		StudentId:  uuid.New(),
		Status:     entity.StatusActive,
		Department: "CSE",
	})

	// Faculty of the owning department can read, another department cannot.
	_, err := svc.FetchTranscript(context.Background(), uuid.New(), entity.RoleFaculty, "CSE", sessionId)
	assert.NoError(t, err)

	_, err = svc.FetchTranscript(context.Background(), uuid.New(), entity.RoleFaculty, "ECE", sessionId)
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))

	// A student who is not the requester cannot read either.
	_, err = svc.FetchTranscript(context.Background(), uuid.New(), entity.RoleStudent, "CSE", sessionId)
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))
}

func TestGetSessionNotFound(t *testing.T) {
	_, _, svc := newLiveChatFixture()

	_, err := svc.GetSession(context.Background(), uuid.New(), entity.RoleStudent, "", uuid.New())
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}
