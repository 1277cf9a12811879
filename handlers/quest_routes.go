// handlers/quest_routes.go
package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"questchain/middleware"
	"questchain/models"
	"questchain/services"
)

// SetupQuestRoutes registers quest routes. Routes under /s run behind walletGuard.
func SetupQuestRoutes(app *fiber.App, store *services.QuestStore, walletGuard fiber.Handler) {
	// 🔓 Public
	app.Get("/quests", func(c *fiber.Ctx) error {
		filter := services.QuestFilter{
			Search:    strings.TrimSpace(c.Query("search")),
			ProjectID: c.Query("project"),
		}
		if d := c.Query("difficulty"); d != "" {
			diff, err := models.ParseDifficulty(d)
			if err != nil {
				return badRequest(c, "invalid difficulty", err)
			}
			filter.Difficulty = diff
		}
		if t := c.Query("type"); t != "" {
			qt, err := models.ParseQuestType(t)
			if err != nil {
				return badRequest(c, "invalid quest type", err)
			}
			filter.Type = qt
		}
		return c.JSON(store.Quests(filter))
	})

	app.Get("/quests/:id", func(c *fiber.Ctx) error {
		id := param(c, "id")
		q, ok := store.Quest(id)
		if !ok {
			return fail(c, fmt.Errorf("quest %s: %w", id, services.ErrQuestNotFound), "quest not found")
		}
		p, _ := store.Project(q.ProjectID)

		completed := false
		if u, ok := store.CurrentUser(); ok {
			completed = u.HasCompleted(id)
		}
		return c.JSON(fiber.Map{
			"quest":     q,
			"project":   p,
			"completed": completed,
		})
	})

	// 🔐 Connected wallet required. The guard is per route: a group middleware on "/s" also matches "/stats".
	secured := app.Group("/s")

	secured.Post("/quests/:id/complete", walletGuard, func(c *fiber.Ctx) error {
		before, _ := store.GetUserProfile(middleware.Address(c))

		u, err := store.CompleteQuest(param(c, "id"), middleware.Address(c))
		if err != nil {
			return fail(c, err, "quest completion failed")
		}

		var newBadges []models.Badge
		for _, b := range u.Badges {
			if before == nil || !before.HasBadge(b.ID) {
				newBadges = append(newBadges, b)
			}
		}
		return c.JSON(fiber.Map{
			"profile":    newProfileView(u, store.Badges()),
			"new_badges": newBadges,
			"level_up":   before == nil && u.Level > 0 || before != nil && u.Level > before.Level,
		})
	})
}
