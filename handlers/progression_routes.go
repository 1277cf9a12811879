// handlers/progression_routes.go
package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"questchain/models"
	"questchain/services"
)

const keepAliveInterval = 15 * time.Second

type profileView struct {
	*models.User
	LevelName     string        `json:"level_name"`
	XPToNextLevel *int64        `json:"xp_to_next_level,omitempty"`
	NextBadge     *models.Badge `json:"next_badge,omitempty"`
}

func newProfileView(u *models.User, badges []models.Badge) profileView {
	v := profileView{User: u, LevelName: services.LevelName(u.Level)}
	if left, ok := services.XPToNextLevel(u.TotalXP); ok {
		v.XPToNextLevel = &left
	}
	if b, ok := services.NextBadge(u.TotalXP, badges); ok {
		v.NextBadge = &b
	}
	return v
}

func SetupProgressionRoutes(app *fiber.App, store *services.QuestStore, streamAuth fiber.Handler) {
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		entries := store.LeaderboardEntries()
		if limit := c.QueryInt("limit", 0); limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}
		return c.JSON(entries)
	})

	app.Get("/users/:address", func(c *fiber.Ctx) error {
		addr := param(c, "address")
		u, ok := store.GetUserProfile(addr)
		if !ok {
			return fail(c, fmt.Errorf("%s: %w", addr, services.ErrUserNotFound), "user not found")
		}
		return c.JSON(fiber.Map{
			"profile":     newProfileView(u, store.Badges()),
			"completions": store.Completions(addr),
		})
	})

	app.Get("/user/progress", func(c *fiber.Ctx) error {
		u, ok := store.CurrentUser()
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no active user"})
		}
		return c.JSON(newProfileView(u, store.Badges()))
	})

	// Pushes a "progress" event each time the active user is set or completes a quest.
	app.Get("/user/progress/stream", streamAuth, func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		updates, cancel := store.Subscribe()
		badges := store.Badges()
		initial, hasInitial := store.CurrentUser()
		ctx := c.Context()

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer cancel()
			ticker := time.NewTicker(keepAliveInterval)
			defer ticker.Stop()

			w.WriteString(":\n\n")
			if hasInitial {
				writeProgressEvent(w, newProfileView(initial, badges))
			}
			if err := w.Flush(); err != nil {
				return
			}

			for {
				select {
				case u, ok := <-updates:
					if !ok {
						return
					}
					writeProgressEvent(w, newProfileView(&u, badges))
					if err := w.Flush(); err != nil {
						return
					}
				case <-ticker.C:
					w.WriteString(":\n\n")
					if err := w.Flush(); err != nil {
						return
					}
				case <-ctx.Done():
					return
				}
			}
		})
		return nil
	})

	app.Get("/badges", func(c *fiber.Ctx) error {
		return c.JSON(store.Badges())
	})

	app.Get("/stats", func(c *fiber.Ctx) error {
		stats := store.Stats()
		tag := language.English
		if accept := c.Get(fiber.HeaderAcceptLanguage); accept != "" {
			if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
				tag = tags[0]
			}
		}
		return c.JSON(fiber.Map{
			"stats":     stats,
			"formatted": stats.Format(tag),
		})
	})
}

func writeProgressEvent(w *bufio.Writer, v profileView) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("[SSE] failed to encode progress")
		return
	}
	fmt.Fprintf(w, "event: progress\ndata: %s\n\n", payload)
}
