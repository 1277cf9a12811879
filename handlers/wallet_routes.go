// handlers/wallet_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"questchain/models"
	"questchain/services"
	"questchain/wallet"
)

type connectRequest struct {
	Provider   string `json:"provider" validate:"required,oneof=keplr leap metamask"`
	CurrentURL string `json:"current_url"`
}

type injectRequest struct {
	Accounts               []string `json:"accounts"`
	RejectChainSuggestions bool     `json:"reject_chain_suggestions"`
}

// SetupWalletRoutes exposes the wallet session. The /wallet/providers routes are the bridge the
// browser extension side uses to fill and clear provider slots.
func SetupWalletRoutes(app *fiber.App, env *wallet.Environment, session *wallet.Session, store *services.QuestStore, defaultChain wallet.ChainInfo) {
	app.Get("/wallet/session", func(c *fiber.Ctx) error {
		return c.JSON(session.State())
	})

	app.Post("/wallet/availability", func(c *fiber.Ctx) error {
		return c.JSON(session.CheckAvailableWallets(c.UserContext()))
	})

	app.Post("/wallet/connect", func(c *fiber.Ctx) error {
		var req connectRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, "validation failed", err)
		}
		kind := models.ProviderKind(req.Provider)

		res, err := session.Connect(c.UserContext(), kind, wallet.ClientInfo{
			UserAgent:  c.Get(fiber.HeaderUserAgent),
			CurrentURL: req.CurrentURL,
		})
		if err != nil {
			return fail(c, err, "wallet connection failed")
		}
		if res.Outcome == wallet.OutcomeHandoff {
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"result": res})
		}

		user, err := store.SetCurrentUser(res.Address)
		if err != nil {
			return fail(c, err, "failed to activate user")
		}
		return c.JSON(fiber.Map{
			"result": res,
			"user":   newProfileView(user, store.Badges()),
		})
	})

	app.Post("/wallet/disconnect", func(c *fiber.Ctx) error {
		session.Disconnect()
		store.ClearCurrentUser()
		return c.JSON(session.State())
	})

	app.Put("/wallet/providers/:provider", func(c *fiber.Ctx) error {
		kind, err := models.ParseProviderKind(param(c, "provider"))
		if err != nil {
			return badRequest(c, "unknown provider", err)
		}
		var req injectRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return badRequest(c, "invalid JSON", err)
			}
		}
		env.Inject(wallet.NewInjectedProvider(kind, req.Accounts, req.RejectChainSuggestions))
		log.Info().Str("provider", string(kind)).Int("accounts", len(req.Accounts)).Msg("[WALLET] provider injected")
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Delete("/wallet/providers/:provider", func(c *fiber.Ctx) error {
		kind, err := models.ParseProviderKind(param(c, "provider"))
		if err != nil {
			return badRequest(c, "unknown provider", err)
		}
		env.Remove(kind)
		log.Info().Str("provider", string(kind)).Msg("[WALLET] provider removed")
		return c.SendStatus(fiber.StatusNoContent)
	})

	// An empty body registers the default network.
	app.Post("/wallet/providers/:provider/network", func(c *fiber.Ctx) error {
		kind, err := models.ParseProviderKind(param(c, "provider"))
		if err != nil {
			return badRequest(c, "unknown provider", err)
		}
		info := defaultChain
		if len(c.Body()) > 0 {
			var custom wallet.ChainInfo
			if err := c.BodyParser(&custom); err != nil {
				return badRequest(c, "invalid chain info", err)
			}
			info = custom
		}
		if info.ChainID == "" {
			return badRequest(c, "chainId is required", nil)
		}
		if err := session.AddNetwork(c.UserContext(), kind, info); err != nil {
			return fail(c, err, "network registration failed")
		}
		return c.JSON(fiber.Map{"message": "network registered", "chain_id": info.ChainID})
	})
}
