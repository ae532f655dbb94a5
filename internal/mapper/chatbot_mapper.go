package mapper

import (
	"encoding/json"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/model"

	"gorm.io/datatypes"
)

type ChatbotMapper struct{}

func NewChatbotMapper() *ChatbotMapper {
	return &ChatbotMapper{}
}

func (m *ChatbotMapper) ToEntity(e *model.ChatbotExchange) *entity.ChatbotExchange {
	if e == nil {
		return nil
	}

	var history []entity.ChatbotTurn
	if len(e.History) > 0 {
		_ = json.Unmarshal(e.History, &history)
	}

	return &entity.ChatbotExchange{
		Id:        e.Id,
		UserId:    e.UserId,
		Role:      e.Role,
		Question:  e.Question,
		Answer:    e.Answer,
		History:   history,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatbotMapper) ToModel(e *entity.ChatbotExchange) *model.ChatbotExchange {
	if e == nil {
		return nil
	}

	var history datatypes.JSON
	if len(e.History) > 0 {
		raw, _ := json.Marshal(e.History)
		history = datatypes.JSON(raw)
	}

	return &model.ChatbotExchange{
		Id:        e.Id,
		UserId:    e.UserId,
		Role:      e.Role,
		Question:  e.Question,
		Answer:    e.Answer,
		History:   history,
		CreatedAt: e.CreatedAt,
	}
}
