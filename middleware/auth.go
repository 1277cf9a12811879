// middleware/auth.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"questchain/models"
)

const (
	AddressKey  = "address"
	ProviderKey = "provider"
)

// IdentitySource reports the wallet currently connected. Implemented by *wallet.Session.
type IdentitySource interface {
	Identity() (models.WalletIdentity, bool)
}

// WalletSessionMiddleware guards /s/ routes: a wallet must be connected. The connected address
// and provider are attached to the request locals.
func WalletSessionMiddleware(session IdentitySource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := session.Identity()
		if !ok {
			log.Debug().Str("path", c.Path()).Msg("[WALLET_CTX] no wallet connected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "wallet not connected",
			})
		}
		c.Locals(AddressKey, id.Address)
		c.Locals(ProviderKey, id.Provider)
		return c.Next()
	}
}

// Address returns the connected address set by WalletSessionMiddleware.
func Address(c *fiber.Ctx) string {
	addr, _ := c.Locals(AddressKey).(string)
	return addr
}
