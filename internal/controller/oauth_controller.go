package controller

import (
	"time"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/pkg/serverutils"
	"ai-tripmate-be/internal/service"
	"ai-tripmate-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
	isProd  bool
}

func NewOAuthController(service service.IOAuthService, isProd bool) IOAuthController {
	return &oauthController{
		service: service,
		isProd:  isProd,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/oauth")
	h.Get("/:provider/login", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	url, err := c.service.GetLoginURL(ctx.Params("provider"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.AuthErrorResponse{Error: err.Error()})
	}
	return ctx.JSON(fiber.Map{"url": url})
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.AuthErrorResponse{Error: "Missing code"})
	}

	profile, credential, err := c.service.HandleCallback(ctx.Context(), ctx.Params("provider"), code)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.AuthErrorResponse{Error: err.Error()})
	}

	sameSite := fiber.CookieSameSiteLaxMode
	if c.isProd {
		sameSite = fiber.CookieSameSiteStrictMode
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.SessionCookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		Expires:  time.Now().Add(session.TTL),
		HTTPOnly: true,
		Secure:   c.isProd,
		SameSite: sameSite,
	})

	return ctx.JSON(profile)
}
