package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the live chat session lifecycle state.
//
//	pending -> active   (faculty accept)
//	pending -> declined (faculty decline, or sweeper expiry)
//	pending -> closed   (student cancels before anyone acts)
//	active  -> closed   (either participant ends the chat)
//
// declined and closed are terminal.
type SessionStatus string

const (
	StatusPending  SessionStatus = "pending"
	StatusActive   SessionStatus = "active"
	StatusDeclined SessionStatus = "declined"
	StatusClosed   SessionStatus = "closed"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	StatusPending: {StatusActive, StatusDeclined, StatusClosed},
	StatusActive:  {StatusClosed},
}

// CanTransition reports whether moving from -> to is a legal lifecycle edge.
func (s SessionStatus) CanTransition(to SessionStatus) bool {
	for _, next := range sessionTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s SessionStatus) Terminal() bool {
	return len(sessionTransitions[s]) == 0
}

func (s SessionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusDeclined, StatusClosed:
		return true
	}
	return false
}

const (
	SenderStudent = "student"
	SenderFaculty = "faculty"
)

// ChatSession is one help-request interaction between a student and a faculty
// member, scoped to a department. Sessions are never deleted; closed and
// declined sessions remain readable for history.
type ChatSession struct {
	Id         uuid.UUID
	StudentId  uuid.UUID
	FacultyId  *uuid.UUID // nil until a faculty member accepts
	Status     SessionStatus
	Topic      string
	Department string
	CreatedAt  time.Time
	AcceptedAt *time.Time
	ClosedAt   *time.Time
}

// Participant reports whether the given user is the requesting student or the
// assigned faculty member.
func (s *ChatSession) Participant(userId uuid.UUID) bool {
	if s.StudentId == userId {
		return true
	}
	return s.FacultyId != nil && *s.FacultyId == userId
}

// ChatMessage is one utterance within a session. Messages are immutable once
// created; (CreatedAt, Id) orders them within the session.
type ChatMessage struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	SenderId   uuid.UUID
	SenderRole string
	Message    string
	CreatedAt  time.Time
}
