package service

import (
	"context"
	"encoding/json"
	"time"

	"college-portal-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ArchiveExchangeMessage is the in-process payload for one exchange to persist.
type ArchiveExchangeMessage struct {
	ExchangeId uuid.UUID            `json:"exchange_id"`
	UserId     *uuid.UUID           `json:"user_id,omitempty"`
	Role       string               `json:"role"`
	Question   string               `json:"question"`
	Answer     string               `json:"answer"`
	History    []entity.ChatbotTurn `json:"history"`
	AskedAt    time.Time            `json:"asked_at"`
}

type IPublisherService interface {
	PublishArchiveExchange(ctx context.Context, payload *ArchiveExchangeMessage) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{topicName: topicName, pubSub: pubSub}
}

func (s *publisherService) PublishArchiveExchange(ctx context.Context, payload *ArchiveExchangeMessage) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, msg)
}
