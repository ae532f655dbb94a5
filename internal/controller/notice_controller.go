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

type INoticeController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type noticeController struct {
	service service.INoticeService
}

func NewNoticeController(service service.INoticeService) INoticeController {
	return &noticeController{service: service}
}

func (c *noticeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notices/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Get("", c.List)
	h.Post("", serverutils.RequireRole(entity.RoleFaculty, entity.RoleAdmin), c.Create)
	h.Put(":id", serverutils.RequireRole(entity.RoleFaculty, entity.RoleAdmin), c.Update)
	h.Delete(":id", serverutils.RequireRole(entity.RoleAdmin), c.Delete)
}

func (c *noticeController) Create(ctx *fiber.Ctx) error {
	createdBy, err := callerId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoticeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), createdBy, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Notice created", res))
}

func (c *noticeController) Update(ctx *fiber.Ctx) error {
	id, err := noticeIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoticeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notice updated", res))
}

func (c *noticeController) Delete(ctx *fiber.Ctx) error {
	id, err := noticeIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notice deleted", nil))
}

func (c *noticeController) List(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)

	res, err := c.service.ListForRole(ctx.Context(), role)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notices", res))
}

func noticeIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid notice id")
	}
	return id, nil
}
