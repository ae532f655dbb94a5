package controller

import (
	"college-portal-be/internal/dto"
	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/apperror"
	"college-portal-be/internal/pkg/serverutils"
	"college-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILiveChatController interface {
	RegisterRoutes(r fiber.Router)
	RequestSession(ctx *fiber.Ctx) error
	ListPending(ctx *fiber.Ctx) error
	AcceptSession(ctx *fiber.Ctx) error
	DeclineSession(ctx *fiber.Ctx) error
	CloseSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	PostMessage(ctx *fiber.Ctx) error
	FetchTranscript(ctx *fiber.Ctx) error
}

type liveChatController struct {
	service service.ILiveChatService
}

func NewLiveChatController(service service.ILiveChatService) ILiveChatController {
	return &liveChatController{service: service}
}

func (c *liveChatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/livechat/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Post("/sessions", serverutils.RequireRole(entity.RoleStudent), c.RequestSession)
	h.Get("/sessions/pending", serverutils.RequireRole(entity.RoleFaculty), c.ListPending)
	h.Post("/sessions/:id/accept", serverutils.RequireRole(entity.RoleFaculty), c.AcceptSession)
	h.Post("/sessions/:id/decline", serverutils.RequireRole(entity.RoleFaculty), c.DeclineSession)
	h.Post("/sessions/:id/close", c.CloseSession)
	h.Get("/sessions/:id", c.GetSession)
	h.Post("/sessions/:id/messages", c.PostMessage)
	h.Get("/sessions/:id/messages", c.FetchTranscript)
}

func (c *liveChatController) RequestSession(ctx *fiber.Ctx) error {
	studentId, err := callerId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RequestSession(ctx.Context(), studentId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat request created", res))
}

func (c *liveChatController) ListPending(ctx *fiber.Ctx) error {
	department, _ := ctx.Locals("department").(string)

	res, err := c.service.ListPending(ctx.Context(), department)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Pending chat requests", res))
}

func (c *liveChatController) AcceptSession(ctx *fiber.Ctx) error {
	facultyId, err := callerId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	department, _ := ctx.Locals("department").(string)

	res, err := c.service.AcceptSession(ctx.Context(), facultyId, department, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat session accepted", res))
}

func (c *liveChatController) DeclineSession(ctx *fiber.Ctx) error {
	facultyId, err := callerId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	department, _ := ctx.Locals("department").(string)

	res, err := c.service.DeclineSession(ctx.Context(), facultyId, department, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat session declined", res))
}

func (c *liveChatController) CloseSession(ctx *fiber.Ctx) error {
	userId, err := callerId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CloseSession(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat session closed", res))
}

func (c *liveChatController) GetSession(ctx *fiber.Ctx) error {
	userId, err := callerId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	role, _ := ctx.Locals("role").(string)
	department, _ := ctx.Locals("department").(string)

	res, err := c.service.GetSession(ctx.Context(), userId, role, department, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat session", res))
}

func (c *liveChatController) PostMessage(ctx *fiber.Ctx) error {
	senderId, err := callerId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	role, _ := ctx.Locals("role").(string)

	var req dto.PostMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.PostMessage(ctx.Context(), senderId, role, sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *liveChatController) FetchTranscript(ctx *fiber.Ctx) error {
	userId, err := callerId(ctx)
	if err != nil {
		return err
	}
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}
	role, _ := ctx.Locals("role").(string)
	department, _ := ctx.Locals("department").(string)

	res, err := c.service.FetchTranscript(ctx.Context(), userId, role, department, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat transcript", res))
}

func callerId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("invalid user identity")
	}
	return userId, nil
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid session id")
	}
	return id, nil
}
