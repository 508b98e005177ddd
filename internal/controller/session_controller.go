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

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
	Collections(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	jwtSecret      string
}

func NewSessionController(sessionService service.ISessionService, jwtSecret string) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		jwtSecret:      jwtSecret,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Get("/open", c.Open)
	h.Post("", c.Create)
	h.Put("/rename", c.Rename)
	h.Delete("", c.Delete)
	h.Get("/list", c.List)
	h.Get("/messages/:session_id", c.Messages)
	h.Get("/collections/:session_id", c.Collections)
}

func (c *sessionController) Open(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	requested := uuid.Nil
	if q := ctx.Query("session_id", ""); q != "" {
		requested, _ = uuid.Parse(q)
	}

	res, err := c.sessionService.Open(ctx.Context(), userId, requested)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success open session", res))
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Rename(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sessionService.Rename(ctx.Context(), userId, &req); err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename session", nil))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	var req dto.DeleteSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sessionService.Delete(ctx.Context(), userId, &req); err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	res, err := c.sessionService.ListVisible(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) Messages(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	sessionId, _ := uuid.Parse(ctx.Params("session_id"))
	limit := ctx.QueryInt("limit", 50)

	res, err := c.sessionService.GetMessages(ctx.Context(), userId, sessionId, limit)
	if err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *sessionController) Collections(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	sessionId, _ := uuid.Parse(ctx.Params("session_id"))
	limit := ctx.QueryInt("per_page", 500)

	res, err := c.sessionService.GetFiles(ctx.Context(), userId, sessionId, limit)
	if err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session files", res))
}

func sessionError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, contract.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
	}
	return err
}
