package controller

import (
	"errors"
	"io"

	"tsai-chat-be/internal/pkg/serverutils"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	uploadService service.IUploadService
	jwtSecret     string
}

func NewUploadController(uploadService service.IUploadService, jwtSecret string) IUploadController {
	return &uploadController{
		uploadService: uploadService,
		jwtSecret:     jwtSecret,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Post("", c.Upload)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uuid.UUID)

	sessionId, err := uuid.Parse(ctx.FormValue("session_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session_id"))
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing file"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	res, err := c.uploadService.Upload(ctx.Context(), userId, sessionId, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, contract.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Session not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload file", res))
}
