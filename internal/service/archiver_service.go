package service

import (
	"context"
	"encoding/json"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/logger"
	"college-portal-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IArchiverService drains the archive topic and persists chatbot exchanges.
type IArchiverService interface {
	Consume(ctx context.Context) error
}

type archiverService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewArchiverService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IArchiverService {
	return &archiverService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *archiverService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *archiverService) processMessage(ctx context.Context, msg *message.Message) {
	var payload ArchiveExchangeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("archiver", "failed to unmarshal archive message", map[string]interface{}{
			"error": err.Error(),
		})
		// Malformed payloads never become valid, drop them.
		msg.Ack()
		return
	}

	exchange := &entity.ChatbotExchange{
		Id:        payload.ExchangeId,
		UserId:    payload.UserId,
		Role:      payload.Role,
		Question:  payload.Question,
		Answer:    payload.Answer,
		History:   payload.History,
		CreatedAt: payload.AskedAt,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatbotExchangeRepository().Create(ctx, exchange); err != nil {
		s.log.Error("archiver", "failed to persist exchange", map[string]interface{}{
			"exchange_id": payload.ExchangeId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
