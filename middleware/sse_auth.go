// middleware/sse_auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// SSEAuthMiddleware validates the gateway token passed as the `token` query parameter.
//
// Usage:
//
//	app.Get("/user/progress/stream", middleware.SSEAuthMiddleware(token), handler)
func SSEAuthMiddleware(expectedToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if expectedToken == "" {
			return c.Next()
		}
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing token in query",
			})
		}
		if !tokenMatches(token, expectedToken) {
			log.Warn().Str("ip", c.IP()).Msg("[SSEAuth] invalid stream token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
