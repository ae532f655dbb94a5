package mapper

import (
	"college-portal-be/internal/entity"
	"college-portal-be/internal/model"
)

type LiveChatMapper struct{}

func NewLiveChatMapper() *LiveChatMapper {
	return &LiveChatMapper{}
}

// Session Mappers

func (m *LiveChatMapper) SessionToEntity(s *model.LiveChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:         s.Id,
		StudentId:  s.StudentId,
		FacultyId:  s.FacultyId,
		Status:     entity.SessionStatus(s.Status),
		Topic:      s.Topic,
		Department: s.Department,
		CreatedAt:  s.CreatedAt,
		AcceptedAt: s.AcceptedAt,
		ClosedAt:   s.ClosedAt,
	}
}

func (m *LiveChatMapper) SessionToModel(s *entity.ChatSession) *model.LiveChatSession {
	if s == nil {
		return nil
	}

	return &model.LiveChatSession{
		Id:         s.Id,
		StudentId:  s.StudentId,
		FacultyId:  s.FacultyId,
		Status:     string(s.Status),
		Topic:      s.Topic,
		Department: s.Department,
		CreatedAt:  s.CreatedAt,
		AcceptedAt: s.AcceptedAt,
		ClosedAt:   s.ClosedAt,
	}
}

func (m *LiveChatMapper) SessionsToEntities(models []*model.LiveChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(models))
	for i, s := range models {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

// Message Mappers

func (m *LiveChatMapper) MessageToEntity(msg *model.LiveChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		SenderId:   msg.SenderId,
		SenderRole: msg.SenderRole,
		Message:    msg.Message,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *LiveChatMapper) MessageToModel(msg *entity.ChatMessage) *model.LiveChatMessage {
	if msg == nil {
		return nil
	}

	return &model.LiveChatMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		SenderId:   msg.SenderId,
		SenderRole: msg.SenderRole,
		Message:    msg.Message,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *LiveChatMapper) MessagesToEntities(models []*model.LiveChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
