package controller

import (
	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/pkg/serverutils"
	"ai-tripmate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITravelController interface {
	RegisterRoutes(r fiber.Router)
}

type travelController struct {
	service service.ITravelService
}

func NewTravelController(service service.ITravelService) ITravelController {
	return &travelController{service: service}
}

func (c *travelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/travel")
	h.Get("/hotels", c.Hotels)
	h.Get("/flights", c.Flights)
	h.Get("/weather", c.Weather)
	h.Get("/currency", c.Currency)
	h.Get("/events", c.Events)
	h.Get("/attractions", c.Attractions)
}

func (c *travelController) Hotels(ctx *fiber.Ctx) error {
	var q dto.HotelSearchQuery
	if err := ctx.QueryParser(&q); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.TravelErrorResponse{Error: err.Error()})
	}
	if err := serverutils.ValidateStruct(&q); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.TravelErrorResponse{Error: err.Error()})
	}

	res, err := c.service.SearchHotels(ctx.Context(), &q)
	return c.respond(ctx, res, err)
}

func (c *travelController) Flights(ctx *fiber.Ctx) error {
	var q dto.FlightSearchQuery
	if err := ctx.QueryParser(&q); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.TravelErrorResponse{Error: err.Error()})
	}
	if err := serverutils.ValidateStruct(&q); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.TravelErrorResponse{Error: err.Error()})
	}

	res, err := c.service.SearchFlights(ctx.Context(), &q)
	return c.respond(ctx, res, err)
}

func (c *travelController) Weather(ctx *fiber.Ctx) error {
	res, err := c.service.GetWeather(ctx.Context(), ctx.Query("city"))
	return c.respond(ctx, res, err)
}

func (c *travelController) Currency(ctx *fiber.Ctx) error {
	res, err := c.service.GetCurrency(ctx.Context(), ctx.Query("base"), ctx.Query("symbols"))
	return c.respond(ctx, res, err)
}

func (c *travelController) Events(ctx *fiber.Ctx) error {
	res, err := c.service.GetEvents(ctx.Context(), ctx.Query("city"))
	return c.respond(ctx, res, err)
}

func (c *travelController) Attractions(ctx *fiber.Ctx) error {
	res, err := c.service.GetAttractions(ctx.Context(), ctx.Query("location"))
	return c.respond(ctx, res, err)
}

func (c *travelController) respond(ctx *fiber.Ctx, res dto.ProxyResponse, err error) error {
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(dto.TravelErrorResponse{Error: err.Error()})
	}
	ctx.Set("Content-Type", "application/json")
	return ctx.Send(res)
}
