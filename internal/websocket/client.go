package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	UserId     uuid.UUID
	Role       string
	Department string

	// Buffered channel of outbound messages.
	send chan []byte
}

// controlFrame is what a connected client sends to manage its subscriptions.
type controlFrame struct {
	Action  string `json:"action"` // "subscribe" | "unsubscribe"
	Channel string `json:"channel"`
}

type ackFrame struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
	Message string `json:"message,omitempty"`
}

// ServeWs runs the read/write pumps for an upgraded connection. It blocks
// until the connection drops; the hub releases all subscriptions on exit.
func ServeWs(hub *Hub, conn *websocket.Conn, userId uuid.UUID, role, department string) {
	client := &Client{
		hub:        hub,
		conn:       conn,
		UserId:     userId,
		Role:       role,
		Department: department,
		send:       make(chan []byte, 256),
	}
	hub.Register(client)

	go client.writePump()
	client.readPump()
}

// readPump consumes control frames until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.handleControlFrame(raw)
	}
}

func (c *Client) handleControlFrame(raw []byte) {
	var frame controlFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.sendAck(ackFrame{Type: "error", Message: "malformed frame"})
		return
	}

	channel, err := ParseChannel(frame.Channel)
	if err != nil {
		c.sendAck(ackFrame{Type: "error", Message: err.Error()})
		return
	}

	switch frame.Action {
	case "subscribe":
		if err := c.hub.Subscribe(context.Background(), c, channel); err != nil {
			c.sendAck(ackFrame{Type: "error", Channel: channel.String(), Message: err.Error()})
			return
		}
		c.sendAck(ackFrame{Type: "subscribed", Channel: channel.String()})
	case "unsubscribe":
		c.hub.Unsubscribe(c, channel)
		c.sendAck(ackFrame{Type: "unsubscribed", Channel: channel.String()})
	default:
		c.sendAck(ackFrame{Type: "error", Message: "unknown action"})
	}
}

func (c *Client) sendAck(frame ackFrame) {
	data, _ := json.Marshal(frame)
	select {
	case c.send <- data:
	default:
	}
}

// writePump pushes hub messages and keepalive pings to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
