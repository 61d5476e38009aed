package controller

import (
	"errors"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRetrievalController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
}

type retrievalController struct {
	service service.IRetrievalService
}

func NewRetrievalController(service service.IRetrievalService) IRetrievalController {
	return &retrievalController{service: service}
}

func (c *retrievalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/retrieval")
	h.Post("/ingest", c.Ingest)
}

func (c *retrievalController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.IngestErrorResponse{
			Status:  "error",
			Message: "texts must be a list of strings",
		})
	}

	res, err := c.service.Ingest(ctx.Context(), &req)
	if err != nil {
		status := fiber.StatusBadGateway
		if errors.Is(err, service.ErrInvalidInput) {
			status = fiber.StatusBadRequest
		}
		return ctx.Status(status).JSON(dto.IngestErrorResponse{
			Status:  "error",
			Message: err.Error(),
		})
	}

	return ctx.JSON(res)
}
