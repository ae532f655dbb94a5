package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/repository/contract"
	"college-portal-be/internal/repository/specification"
	"college-portal-be/internal/repository/unitofwork"
	"college-portal-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory repository doubles. They interpret the same specifications the
// GORM implementations receive, so services are exercised unmodified.

type memStore struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*entity.ChatSession
	messages  []*entity.ChatMessage
	users     map[uuid.UUID]*entity.User
	notices   map[uuid.UUID]*entity.Notice
	exchanges []*entity.ChatbotExchange
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[uuid.UUID]*entity.ChatSession),
		users:    make(map[uuid.UUID]*entity.User),
		notices:  make(map[uuid.UUID]*entity.Notice),
	}
}

type memFactory struct {
	store *memStore
}

func newMemFactory() *memFactory {
	return &memFactory{store: newMemStore()}
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUnitOfWork{store: f.store}
}

type memUnitOfWork struct {
	store *memStore
}

func (u *memUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memUnitOfWork) Commit() error                   { return nil }
func (u *memUnitOfWork) Rollback() error                 { return nil }

func (u *memUnitOfWork) UserRepository() contract.UserRepository {
	return &memUserRepo{store: u.store}
}

func (u *memUnitOfWork) LiveChatSessionRepository() contract.LiveChatSessionRepository {
	return &memSessionRepo{store: u.store}
}

func (u *memUnitOfWork) LiveChatMessageRepository() contract.LiveChatMessageRepository {
	return &memMessageRepo{store: u.store}
}

func (u *memUnitOfWork) NoticeRepository() contract.NoticeRepository {
	return &memNoticeRepo{store: u.store}
}

func (u *memUnitOfWork) ChatbotExchangeRepository() contract.ChatbotExchangeRepository {
	return &memExchangeRepo{store: u.store}
}

// --- sessions ---

type memSessionRepo struct {
	store *memStore
}

func (r *memSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *session
	r.store.sessions[session.Id] = &copied
	return nil
}

func (r *memSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	sessions, err := r.FindAll(ctx, specs...)
	if err != nil || len(sessions) == 0 {
		return nil, err
	}
	return sessions[0], nil
}

func (r *memSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]*entity.ChatSession, 0)
	for _, session := range r.store.sessions {
		if matchSession(session, specs) {
			copied := *session
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	sessions, err := r.FindAll(ctx, specs...)
	return int64(len(sessions)), err
}

func (r *memSessionRepo) TransitionStatus(ctx context.Context, id uuid.UUID, expected entity.SessionStatus, transition contract.StatusTransition) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session, ok := r.store.sessions[id]
	if !ok || session.Status != expected {
		return false, nil
	}

	session.Status = transition.NewStatus
	if transition.FacultyId != nil {
		session.FacultyId = transition.FacultyId
	}
	if transition.AcceptedAt != nil {
		session.AcceptedAt = transition.AcceptedAt
	}
	if transition.ClosedAt != nil {
		session.ClosedAt = transition.ClosedAt
	}
	return true, nil
}

func matchSession(session *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if session.Id != s.ID {
				return false
			}
		case specification.ByDepartment:
			if session.Department != s.Department {
				return false
			}
		case specification.ByStatus:
			if session.Status != s.Status {
				return false
			}
		case specification.ByStudentID:
			if session.StudentId != s.StudentID {
				return false
			}
		case specification.CreatedBefore:
			if !session.CreatedAt.Before(s.Cutoff) {
				return false
			}
		}
	}
	return true
}

// --- messages ---

type memMessageRepo struct {
	store *memStore
}

func (r *memMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *message
	r.store.messages = append(r.store.messages, &copied)
	return nil
}

func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]*entity.ChatMessage, 0)
	for _, message := range r.store.messages {
		if matchMessage(message, specs) {
			copied := *message
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Id.String() < result[j].Id.String()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, err := r.FindAll(ctx, specs...)
	return int64(len(messages)), err
}

func matchMessage(message *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			if message.SessionId != s.SessionID {
				return false
			}
		}
	}
	return true
}

// --- users ---

type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *user
	r.store.users[user.Id] = &copied
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *memUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	users, err := r.FindAll(ctx, specs...)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

func (r *memUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]*entity.User, 0)
	for _, user := range r.store.users {
		if matchUser(user, specs) {
			copied := *user
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, err := r.FindAll(ctx, specs...)
	return int64(len(users)), err
}

func matchUser(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if user.Email != s.Email {
				return false
			}
		case specification.ByRole:
			if user.Role != s.Role {
				return false
			}
		}
	}
	return true
}

// --- notices ---

type memNoticeRepo struct {
	store *memStore
}

func (r *memNoticeRepo) Create(ctx context.Context, notice *entity.Notice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *notice
	r.store.notices[notice.Id] = &copied
	return nil
}

func (r *memNoticeRepo) Update(ctx context.Context, notice *entity.Notice) error {
	return r.Create(ctx, notice)
}

func (r *memNoticeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.notices, id)
	return nil
}

func (r *memNoticeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notice, error) {
	notices, err := r.FindAll(ctx, specs...)
	if err != nil || len(notices) == 0 {
		return nil, err
	}
	return notices[0], nil
}

func (r *memNoticeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]*entity.Notice, 0)
	for _, notice := range r.store.notices {
		if matchNotice(notice, specs) {
			copied := *notice
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func matchNotice(notice *entity.Notice, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if notice.Id != s.ID {
				return false
			}
		}
	}
	return true
}

// --- chatbot exchanges ---

type memExchangeRepo struct {
	store *memStore
}

func (r *memExchangeRepo) Create(ctx context.Context, exchange *entity.ChatbotExchange) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *exchange
	r.store.exchanges = append(r.store.exchanges, &copied)
	return nil
}

func (r *memExchangeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatbotExchange, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]*entity.ChatbotExchange, 0, len(r.store.exchanges))
	for _, exchange := range r.store.exchanges {
		copied := *exchange
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memExchangeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	exchanges, err := r.FindAll(ctx, specs...)
	return int64(len(exchanges)), err
}

// --- event publisher recorder ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) byType(eventType string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]events.Event, 0)
	for _, event := range p.events {
		if event.EventType() == eventType {
			result = append(result, event)
		}
	}
	return result
}

// --- logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// seedSession inserts a session directly into the store.
func seedSession(f *memFactory, session *entity.ChatSession) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	copied := *session
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	f.store.sessions[session.Id] = &copied
}

// seedUser inserts a user directly into the store.
func seedUser(f *memFactory, user *entity.User) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	copied := *user
	f.store.users[user.Id] = &copied
}

func sessionStatus(f *memFactory, id uuid.UUID) entity.SessionStatus {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.sessions[id].Status
}
