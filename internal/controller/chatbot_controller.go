package controller

import (
	"college-portal-be/internal/dto"
	"college-portal-be/internal/pkg/serverutils"
	"college-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	// Visitors may ask without an account; a valid token enriches the prompt.
	h.Post("/ask", serverutils.OptionalJwtMiddleware, c.Ask)
}

func (c *chatbotController) Ask(ctx *fiber.Ctx) error {
	var req dto.ChatbotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	var userId *uuid.UUID
	if userIdStr, ok := ctx.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(userIdStr); err == nil {
			userId = &id
		}
	}
	if req.Role == "" {
		if role, ok := ctx.Locals("role").(string); ok {
			req.Role = role
		}
	}

	res, err := c.service.Ask(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Assistant reply", res))
}
