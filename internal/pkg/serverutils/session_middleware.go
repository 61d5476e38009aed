package serverutils

import (
	"ai-tripmate-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

const SessionCookieName = "session"

// SessionMiddleware gates a route on a valid session cookie. It checks
// signature and expiry locally; revocation is only re-checked on the
// profile endpoint, which round-trips to the identity provider.
func SessionMiddleware(sessions *session.Manager) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		credential := ctx.Cookies(SessionCookieName)
		if credential == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}

		claims, err := sessions.Parse(credential)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session"})
		}

		ctx.Locals("session_subject", claims.Subject)
		return ctx.Next()
	}
}
