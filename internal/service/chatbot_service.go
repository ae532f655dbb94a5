package service

import (
	"context"
	"errors"
	"time"

	"college-portal-be/internal/constant"
	"college-portal-be/internal/dto"
	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/apperror"
	"college-portal-be/internal/pkg/logger"
	"college-portal-be/pkg/llm"
	"college-portal-be/pkg/llm/gateway"

	"github.com/google/uuid"
)

type IChatbotService interface {
	Ask(ctx context.Context, userId *uuid.UUID, req *dto.ChatbotRequest) (*dto.ChatbotResponse, error)
}

type chatbotService struct {
	llmProvider      llm.LLMProvider
	publisherService IPublisherService
	log              logger.ILogger
}

func NewChatbotService(
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		llmProvider:      llmProvider,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *chatbotService) Ask(ctx context.Context, userId *uuid.UUID, req *dto.ChatbotRequest) (*dto.ChatbotResponse, error) {
	role := req.Role
	if role == "" {
		role = "visitor"
	}

	history := buildPrompt(role, req.History, req.Message)

	answer, err := s.llmProvider.Chat(ctx, history)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrRateLimited):
			return nil, apperror.New(apperror.CodeUnavailable, "The assistant is receiving too many requests right now. Please try again in a moment.")
		case errors.Is(err, gateway.ErrCreditsExhausted):
			return nil, apperror.New(apperror.CodeUnavailable, "The assistant is temporarily out of capacity. Please try again later.")
		default:
			return nil, apperror.Wrap(apperror.CodeUnavailable, "the assistant could not be reached", err)
		}
	}

	archive := &ArchiveExchangeMessage{
		ExchangeId: uuid.New(),
		UserId:     userId,
		Role:       role,
		Question:   req.Message,
		Answer:     answer,
		History:    turnsFromPayload(req.History),
		AskedAt:    time.Now(),
	}
	if err := s.publisherService.PublishArchiveExchange(ctx, archive); err != nil {
		// The student already has their answer; losing the archive record is
		// acceptable.
		s.log.Error("chatbot", "failed to enqueue exchange for archiving", map[string]interface{}{
			"exchange_id": archive.ExchangeId.String(),
			"error":       err.Error(),
		})
	}

	return &dto.ChatbotResponse{Reply: answer}, nil
}

func buildPrompt(role string, prior []dto.ChatbotTurnPayload, question string) []llm.Message {
	systemPrompt := constant.CollegeContext
	if rolePrompt, ok := constant.RolePrompts[role]; ok {
		systemPrompt += "\n" + rolePrompt
	}
	systemPrompt += "\n" + constant.ChatbotInstructions

	history := make([]llm.Message, 0, len(prior)+2)
	history = append(history, llm.Message{Role: "system", Content: systemPrompt})
	for _, turn := range prior {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: "user", Content: question})
	return history
}

func turnsFromPayload(prior []dto.ChatbotTurnPayload) []entity.ChatbotTurn {
	turns := make([]entity.ChatbotTurn, 0, len(prior))
	for _, turn := range prior {
		turns = append(turns, entity.ChatbotTurn{Role: turn.Role, Content: turn.Content})
	}
	return turns
}
