package handlers

import (
	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

// param returns a route parameter that is safe to keep after the handler returns.
// c.Params aliases the request buffer, which fiber reuses for the next request.
func param(c *fiber.Ctx, key string) string {
	return fiberutils.CopyString(c.Params(key))
}
