package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type allowAll struct{}

func (allowAll) Authorize(ctx context.Context, userId uuid.UUID, role, department string, channel Channel) error {
	return nil
}

type denyAll struct{}

func (denyAll) Authorize(ctx context.Context, userId uuid.UUID, role, department string, channel Channel) error {
	return errors.New("denied")
}

func newTestClient() *Client {
	return &Client{
		UserId: uuid.New(),
		send:   make(chan []byte, 8),
	}
}

func drain(c *Client) [][]byte {
	frames := make([][]byte, 0)
	for {
		select {
		case frame := <-c.send:
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestHubPublishReachesSubscribersOnly(t *testing.T) {
	hub := NewHub(allowAll{}, nil, nopLogger{})
	channel := DepartmentChannel("CSE")
	other := DepartmentChannel("ECE")

	subscriber := newTestClient()
	bystander := newTestClient()
	hub.Register(subscriber)
	hub.Register(bystander)

	require.NoError(t, hub.Subscribe(context.Background(), subscriber, channel))
	require.NoError(t, hub.Subscribe(context.Background(), bystander, other))

	hub.Publish(channel, []byte(`{"type":"test"}`))

	assert.Len(t, drain(subscriber), 1)
	assert.Empty(t, drain(bystander))
}

func TestHubSubscribeDenied(t *testing.T) {
	hub := NewHub(denyAll{}, nil, nopLogger{})
	client := newTestClient()
	hub.Register(client)

	err := hub.Subscribe(context.Background(), client, DepartmentChannel("CSE"))
	require.Error(t, err)
	assert.Equal(t, 0, hub.SubscriberCount(DepartmentChannel("CSE")))
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(allowAll{}, nil, nopLogger{})
	channel := SessionChannel(uuid.New())

	client := newTestClient()
	hub.Register(client)
	require.NoError(t, hub.Subscribe(context.Background(), client, channel))

	hub.Publish(channel, []byte("one"))
	hub.Unsubscribe(client, channel)
	hub.Publish(channel, []byte("two"))

	assert.Len(t, drain(client), 1)
	assert.Equal(t, 0, hub.SubscriberCount(channel))
}

// A dropped connection releases every channel it held.
func TestHubUnregisterReleasesAllSubscriptions(t *testing.T) {
	hub := NewHub(allowAll{}, nil, nopLogger{})
	deptChannel := DepartmentChannel("MECH")
	sessChannel := SessionChannel(uuid.New())

	client := newTestClient()
	hub.Register(client)
	require.NoError(t, hub.Subscribe(context.Background(), client, deptChannel))
	require.NoError(t, hub.Subscribe(context.Background(), client, sessChannel))

	hub.Unregister(client)

	assert.Equal(t, 0, hub.SubscriberCount(deptChannel))
	assert.Equal(t, 0, hub.SubscriberCount(sessChannel))

	// The outbound channel is closed so the write pump exits.
	_, open := <-client.send
	assert.False(t, open)

	// Double unregister is harmless.
	hub.Unregister(client)
}

func TestHubSlowConsumerDropped(t *testing.T) {
	hub := NewHub(allowAll{}, nil, nopLogger{})
	channel := DepartmentChannel("CIVIL")

	client := &Client{UserId: uuid.New(), send: make(chan []byte, 1)}
	hub.Register(client)
	require.NoError(t, hub.Subscribe(context.Background(), client, channel))

	hub.Publish(channel, []byte("fills the buffer"))
	hub.Publish(channel, []byte("overflows"))

	assert.Equal(t, 0, hub.SubscriberCount(channel), "slow consumer is dropped")
}

func TestHubSubscribeAfterUnregisterIsNoop(t *testing.T) {
	hub := NewHub(allowAll{}, nil, nopLogger{})
	channel := DepartmentChannel("CSE")

	client := newTestClient()
	hub.Register(client)
	hub.Unregister(client)

	require.NoError(t, hub.Subscribe(context.Background(), client, channel))
	assert.Equal(t, 0, hub.SubscriberCount(channel))
}
