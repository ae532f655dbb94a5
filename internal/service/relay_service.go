package service

import (
	"context"
	"encoding/json"

	"college-portal-be/internal/pkg/logger"
	ws "college-portal-be/internal/websocket"
	"college-portal-be/pkg/events"
	pktNats "college-portal-be/pkg/nats"

	"github.com/google/uuid"
)

// RelayService bridges the durable event bus and the in-process websocket
// hub: every live chat event is routed to the channels whose subscribers
// care about it.
type RelayService struct {
	subscriber *pktNats.Subscriber
	hub        *ws.Hub
	logger     logger.ILogger
}

func NewRelayService(subscriber *pktNats.Subscriber, hub *ws.Hub, log logger.ILogger) *RelayService {
	return &RelayService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

// Start begins draining live chat events with a durable consumer, so events
// emitted while the instance was down are replayed on restart.
func (s *RelayService) Start() error {
	if err := s.subscriber.Subscribe("livechat.>", "livechat-relay", s.handleEvent); err != nil {
		return err
	}
	s.logger.Info("RelayService", "relay started, listening to livechat events", nil)
	return nil
}

func (s *RelayService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	frame, err := json.Marshal(map[string]interface{}{
		"type": event.EventType(),
		"data": payload,
	})
	if err != nil {
		return err
	}

	for _, channel := range routeEvent(event.EventType(), payload) {
		s.hub.Publish(channel, frame)
	}
	return nil
}

// routeEvent maps one event to the channels it belongs on:
//
//	session_created -> the department's faculty feed
//	session_updated -> the session feed plus the department feed
//	message_created -> the session feed only
func routeEvent(eventType string, payload map[string]interface{}) []ws.Channel {
	channels := make([]ws.Channel, 0, 2)

	sessionId := uuidField(payload, "session_id")
	department, _ := payload["department"].(string)

	switch eventType {
	case events.TypeSessionCreated:
		if department != "" {
			channels = append(channels, ws.DepartmentChannel(department))
		}
	case events.TypeSessionUpdated:
		if sessionId != uuid.Nil {
			channels = append(channels, ws.SessionChannel(sessionId))
		}
		if department != "" {
			channels = append(channels, ws.DepartmentChannel(department))
		}
	case events.TypeMessageCreated:
		if sessionId != uuid.Nil {
			channels = append(channels, ws.SessionChannel(sessionId))
		}
	}
	return channels
}

func uuidField(payload map[string]interface{}, key string) uuid.UUID {
	raw, _ := payload[key].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
