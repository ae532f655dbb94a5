package handler

import (
	"os"

	"college-portal-be/internal/pkg/logger"
	internalWS "college-portal-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RealtimeHandler upgrades authenticated connections and hands them to the
// hub for channel-scoped fanout.
type RealtimeHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewRealtimeHandler(hub *internalWS.Hub, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer. Browsers cannot set
// headers on the WebSocket handshake, so the token also comes as a query
// param.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("RealtimeHandler", "invalid token in handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	userIdStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid user id in token"})
	}
	role, _ := claims["role"].(string)
	department, _ := claims["department"].(string)

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("RealtimeHandler", "websocket session started", map[string]interface{}{"user_id": userId.String()})
			internalWS.ServeWs(h.hub, conn, userId, role, department)
			h.logger.Info("RealtimeHandler", "websocket session ended", map[string]interface{}{"user_id": userId.String()})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
