package controller

import (
	"errors"
	"time"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/pkg/serverutils"
	"ai-tripmate-be/internal/service"
	"ai-tripmate-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	SignIn(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
	SignOut(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	isProd  bool
}

func NewAuthController(service service.IAuthService, isProd bool) IAuthController {
	return &authController{
		service: service,
		isProd:  isProd,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signin", c.SignIn)
	h.Get("/profile", c.GetProfile)
	h.Post("/signout", c.SignOut)
}

func (c *authController) SignIn(ctx *fiber.Ctx) error {
	var req dto.SignInRequest
	_ = ctx.BodyParser(&req) // empty body falls through to missing-token below

	profile, credential, err := c.service.SignIn(ctx.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrMissingToken) {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.AuthErrorResponse{Error: "Missing idToken"})
		}
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.AuthErrorResponse{Error: err.Error()})
	}

	c.setSessionCookie(ctx, credential)
	return ctx.JSON(profile)
}

func (c *authController) GetProfile(ctx *fiber.Ctx) error {
	credential := ctx.Cookies(serverutils.SessionCookieName)

	profile, err := c.service.GetProfile(ctx.Context(), credential)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(dto.AuthErrorResponse{Error: "Not authenticated"})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.AuthErrorResponse{Error: "Invalid session"})
	}

	return ctx.JSON(profile)
}

// SignOut always succeeds from the client's perspective; revocation
// failures are logged inside the service.
func (c *authController) SignOut(ctx *fiber.Ctx) error {
	credential := ctx.Cookies(serverutils.SessionCookieName)
	c.service.SignOut(ctx.Context(), credential)

	c.clearSessionCookie(ctx)
	return ctx.JSON(dto.SignOutResponse{Message: "Signed out"})
}

func (c *authController) setSessionCookie(ctx *fiber.Ctx, credential string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.SessionCookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   c.isProd,
		SameSite: c.sameSite(),
	})
}

func (c *authController) clearSessionCookie(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   c.isProd,
		SameSite: c.sameSite(),
	})
}

// Development relaxes the cookie for cross-site local frontends; production
// requires secure transport and strict cross-site policy.
func (c *authController) sameSite() string {
	if c.isProd {
		return fiber.CookieSameSiteStrictMode
	}
	return fiber.CookieSameSiteLaxMode
}
