package controller

import (
	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/inference")
	handlers := append(middleware, c.Chat)
	h.Post("/chat", handlers...)
}

// Chat always answers 200; a failed inference comes back as explanatory
// text inside result.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed chat payload",
		})
	}

	res := c.service.Chat(ctx.Context(), &req)
	return ctx.JSON(res)
}
