package controller

import (
	"errors"

	"tsai-chat-be/internal/dto"
	"tsai-chat-be/internal/pkg/serverutils"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	jwtSecret   string
}

func NewChatController(chatService service.IChatService, jwtSecret string) IChatController {
	return &chatController{
		chatService: chatService,
		jwtSecret:   jwtSecret,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Post("", c.SendChat)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, contract.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
		}
		if errors.Is(err, service.ErrGenerationFailed) {
			return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, "Answer generation failed"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}
