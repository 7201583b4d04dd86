package controller

import (
	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/serverutils"
	"doc-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, chatLimiter fiber.Handler, clearLimiter fiber.Handler)
	SendChat(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router, chatLimiter fiber.Handler, clearLimiter fiber.Handler) {
	h := r.Group("/chat/v1")
	h.Post("", chatLimiter, c.SendChat)
	h.Get("clear", clearLimiter, c.Clear)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	if err := c.chatService.ClearConversation(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Memory cleared successfully", nil))
}
