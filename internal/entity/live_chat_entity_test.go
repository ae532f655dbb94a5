package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from SessionStatus
		to   SessionStatus
		want bool
	}{
		{"pending to active", StatusPending, StatusActive, true},
		{"pending to declined", StatusPending, StatusDeclined, true},
		{"pending to closed", StatusPending, StatusClosed, true},
		{"active to closed", StatusActive, StatusClosed, true},
		{"active to declined", StatusActive, StatusDeclined, false},
		{"active to pending", StatusActive, StatusPending, false},
		{"declined to active", StatusDeclined, StatusActive, false},
		{"declined to closed", StatusDeclined, StatusClosed, false},
		{"closed to active", StatusClosed, StatusActive, false},
		{"closed to pending", StatusClosed, StatusPending, false},
		{"pending to pending", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestSessionStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusDeclined.Terminal())
	assert.True(t, StatusClosed.Terminal())
}

func TestSessionStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusClosed.Valid())
	assert.False(t, SessionStatus("archived").Valid())
	assert.False(t, SessionStatus("").Valid())
}

func TestChatSessionParticipant(t *testing.T) {
	student := uuid.New()
	faculty := uuid.New()
	stranger := uuid.New()

	session := &ChatSession{
		Id:        uuid.New(),
		StudentId: student,
		Status:    StatusPending,
	}

	assert.True(t, session.Participant(student))
	assert.False(t, session.Participant(faculty), "unassigned faculty is not a participant")
	assert.False(t, session.Participant(stranger))

	session.FacultyId = &faculty
	assert.True(t, session.Participant(faculty))
	assert.False(t, session.Participant(stranger))
}
