package controller

import (
	"sahby-assistant-be/internal/dto"
	"sahby-assistant-be/internal/pkg/serverutils"
	"sahby-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDraftController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Discard(ctx *fiber.Ctx) error
}

type draftController struct {
	draftService service.IDraftService
}

func NewDraftController(draftService service.IDraftService) IDraftController {
	return &draftController{
		draftService: draftService,
	}
}

func (c *draftController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/draft/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put("", c.Save)
	h.Get(":threadId", c.Show)
	h.Delete(":threadId", c.Discard)
}

func (c *draftController) Save(ctx *fiber.Ctx) error {
	var req dto.UpsertDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.draftService.Save(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save draft", res))
}

func (c *draftController) Show(ctx *fiber.Ctx) error {
	idParam := ctx.Params("threadId")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid thread id")
	}

	res, err := c.draftService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Draft not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get draft", res))
}

func (c *draftController) Discard(ctx *fiber.Ctx) error {
	idParam := ctx.Params("threadId")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid thread id")
	}

	if err := c.draftService.Discard(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success discard draft", nil))
}
