package controller

import (
	"sahby-assistant-be/internal/dto"
	"sahby-assistant-be/internal/pkg/serverutils"
	"sahby-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	GetThreads(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetViewState(ctx *fiber.Ctx) error
	NewChat(ctx *fiber.Ctx) error
	SelectThread(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	ClearChat(ctx *fiber.Ctx) error
	UpdateInput(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("threads", c.GetThreads)
	h.Get("threads/:id/messages", c.GetHistory)
	h.Get("view-state", c.GetViewState)
	h.Post("threads", c.NewChat)
	h.Put("threads/:id/select", c.SelectThread)
	h.Post("chat", c.SendChat)
	h.Delete("chat", c.ClearChat)
	h.Put("input", c.UpdateInput)
}

func (c *assistantController) GetThreads(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.assistantService.GetAllThreads(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get threads", res))
}

func (c *assistantController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid thread id")
	}

	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.assistantService.GetHistory(ctx.Context(), userId, id, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *assistantController) GetViewState(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.assistantService.ViewState(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get view state", res))
}

func (c *assistantController) NewChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.assistantService.NewChat(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat", res))
}

func (c *assistantController) SelectThread(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid thread id")
	}

	if err := c.assistantService.SelectThread(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select thread", nil))
}

func (c *assistantController) SendChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	// Blank input is dropped without an error; the client keeps its state.
	if res == nil {
		return ctx.JSON(serverutils.SuccessResponse("Nothing to send", nil))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *assistantController) ClearChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.assistantService.ClearChat(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear chat", nil))
}

func (c *assistantController) UpdateInput(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.UpdateInputRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.assistantService.UpdateInput(ctx.Context(), userId, req.Text); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update input", nil))
}
