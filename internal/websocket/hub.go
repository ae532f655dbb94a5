package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"college-portal-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const fanoutRedisChannel = "livechat_fanout"

// SubscriptionAuthorizer decides whether a connected user may join a channel.
// The hub never inspects domain state itself.
type SubscriptionAuthorizer interface {
	Authorize(ctx context.Context, userId uuid.UUID, role, department string, channel Channel) error
}

// Hub tracks which client listens on which channel and fans messages out.
// All methods are safe for concurrent use; a subscription lives at most as
// long as its client's connection.
type Hub struct {
	mu sync.RWMutex

	// channel wire name -> subscribed clients
	subscriptions map[string]map[*Client]struct{}
	// client -> channel wire names it holds
	clients map[*Client]map[string]struct{}

	authorizer SubscriptionAuthorizer

	// Redis fans messages to sibling instances. Optional.
	rdb *redis.Client

	// instanceId filters out our own messages on the Redis channel.
	instanceId string

	logger logger.ILogger
}

func NewHub(authorizer SubscriptionAuthorizer, rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		subscriptions: make(map[string]map[*Client]struct{}),
		clients:       make(map[*Client]map[string]struct{}),
		authorizer:    authorizer,
		rdb:           rdb,
		instanceId:    uuid.NewString(),
		logger:        log,
	}
}

// Run starts the cross-instance listener. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	go h.subscribeToRedis(ctx)
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = make(map[string]struct{})
}

// Unregister drops the client and releases every channel it held.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channels, ok := h.clients[client]
	if !ok {
		return
	}
	for name := range channels {
		h.dropSubscriptionLocked(name, client)
	}
	delete(h.clients, client)
	close(client.send)
}

// Subscribe joins the client to a channel after the authorizer clears it.
func (h *Hub) Subscribe(ctx context.Context, client *Client, channel Channel) error {
	if h.authorizer != nil {
		if err := h.authorizer.Authorize(ctx, client.UserId, client.Role, client.Department, channel); err != nil {
			return err
		}
	}

	name := channel.String()

	h.mu.Lock()
	defer h.mu.Unlock()

	channels, ok := h.clients[client]
	if !ok {
		// Connection already torn down.
		return nil
	}
	channels[name] = struct{}{}

	if h.subscriptions[name] == nil {
		h.subscriptions[name] = make(map[*Client]struct{})
	}
	h.subscriptions[name][client] = struct{}{}
	return nil
}

func (h *Hub) Unsubscribe(client *Client, channel Channel) {
	name := channel.String()

	h.mu.Lock()
	defer h.mu.Unlock()

	if channels, ok := h.clients[client]; ok {
		delete(channels, name)
	}
	h.dropSubscriptionLocked(name, client)
}

// Publish delivers payload to every local subscriber of the channel and
// forwards it to sibling instances over Redis.
func (h *Hub) Publish(channel Channel, payload []byte) {
	h.fanoutLocal(channel.String(), payload)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceId,
			"channel": channel.String(),
			"message": json.RawMessage(payload),
		})
		if err := h.rdb.Publish(context.Background(), fanoutRedisChannel, envelope).Err(); err != nil {
			h.logger.Warn("Hub", "redis fanout publish failed", map[string]interface{}{
				"channel": channel.String(),
				"error":   err.Error(),
			})
		}
	}
}

// SubscriberCount reports how many clients hold the channel on this instance.
func (h *Hub) SubscriberCount(channel Channel) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[channel.String()])
}

func (h *Hub) fanoutLocal(name string, payload []byte) {
	h.mu.RLock()
	stale := make([]*Client, 0)
	for client := range h.subscriptions[name] {
		select {
		case client.send <- payload:
		default:
			// Slow consumer, drop the connection rather than block the hub.
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("Hub", "client send buffer full, dropping connection", map[string]interface{}{
			"user_id": client.UserId.String(),
			"channel": name,
		})
		h.Unregister(client)
	}
}

func (h *Hub) dropSubscriptionLocked(name string, client *Client) {
	if subscribers, ok := h.subscriptions[name]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.subscriptions, name)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, fanoutRedisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var envelope struct {
				Origin  string          `json:"origin"`
				Channel string          `json:"channel"`
				Message json.RawMessage `json:"message"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				h.logger.Warn("Hub", "malformed redis fanout payload", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			if envelope.Origin == h.instanceId {
				// Local subscribers already got it in Publish.
				continue
			}
			h.fanoutLocal(envelope.Channel, envelope.Message)
		}
	}
}
