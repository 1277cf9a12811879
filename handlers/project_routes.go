// handlers/project_routes.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"questchain/middleware"
	"questchain/models"
	"questchain/services"
	"questchain/utils"
)

// AssetUploader stores an uploaded image and returns its public URL.
type AssetUploader interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error)
}

type questRequest struct {
	Title               string `json:"title" validate:"required,max=120"`
	ShortDescription    string `json:"short_description" validate:"required,max=200"`
	DetailedDescription string `json:"detailed_description"`
	XPReward            int64  `json:"xp_reward" validate:"required,min=1,max=100000"`
	Difficulty          string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	QuestType           string `json:"quest_type" validate:"required,oneof=onchain offchain hybrid"`
	ExternalLink        string `json:"external_link" validate:"omitempty,url"`
	ImageURL            string `json:"image_url" validate:"omitempty,url"`
}

type projectRequest struct {
	Name          string        `json:"name" validate:"required,max=80"`
	Description   string        `json:"description" validate:"max=1000"`
	LogoURL       string        `json:"logo_url" validate:"omitempty,url"`
	Website       string        `json:"website" validate:"omitempty,url"`
	TwitterHandle string        `json:"twitter_handle" validate:"max=32"`
	FirstQuest    *questRequest `json:"first_quest"`
}

func (r questRequest) toQuest(id, projectID string) models.Quest {
	image := r.ImageURL
	if image == "" {
		image = services.DefaultQuestImage
	}
	return models.Quest{
		ID:                  id,
		ProjectID:           projectID,
		Title:               r.Title,
		ShortDescription:    r.ShortDescription,
		DetailedDescription: r.DetailedDescription,
		XPReward:            r.XPReward,
		Difficulty:          models.QuestDifficulty(r.Difficulty),
		QuestType:           models.QuestType(r.QuestType),
		Status:              models.QuestStatusActive,
		ExternalLink:        r.ExternalLink,
		ImageURL:            image,
	}
}

func newQuestID() string {
	return "quest-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// newProjectID slugs the name, falling back to a random suffix when the slug is taken or empty.
func newProjectID(store *services.QuestStore, name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "project"
	} else if _, taken := store.Project(base); !taken {
		return base
	}
	return base + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func SetupProjectRoutes(app *fiber.App, store *services.QuestStore, uploader AssetUploader, walletGuard fiber.Handler) {
	// 🔓 Public
	app.Get("/projects", func(c *fiber.Ctx) error {
		return c.JSON(store.Projects())
	})

	app.Get("/projects/:id/quests", func(c *fiber.Ctx) error {
		id := param(c, "id")
		if _, ok := store.Project(id); !ok {
			return fail(c, fmt.Errorf("project %s: %w", id, services.ErrProjectNotFound), "project not found")
		}
		return c.JSON(store.GetQuestsByProject(id))
	})

	// 🔐 Connected wallet required. The guard is per route: a group middleware on "/s" also matches "/stats".
	secured := app.Group("/s")

	// Mirrors the partner form: a project and, optionally, its first quest.
	secured.Post("/projects", walletGuard, func(c *fiber.Ctx) error {
		var req projectRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, "validation failed", err)
		}

		logo := req.LogoURL
		if logo == "" {
			logo = services.DefaultProjectLogo
		}
		project := models.Project{
			ID:            newProjectID(store, req.Name),
			Name:          req.Name,
			Description:   req.Description,
			LogoURL:       logo,
			Website:       req.Website,
			TwitterHandle: req.TwitterHandle,
			CreatedBy:     middleware.Address(c),
		}
		var first *models.Quest
		if req.FirstQuest != nil {
			q := req.FirstQuest.toQuest(newQuestID(), project.ID)
			if err := services.ValidateQuest(q); err != nil {
				return fail(c, err, "invalid first quest")
			}
			first = &q
		}
		if err := store.AddProject(project); err != nil {
			return fail(c, err, "failed to create project")
		}

		resp := fiber.Map{"project": project}
		if first != nil {
			if err := store.AddQuest(*first); err != nil {
				return fail(c, err, "project created but quest failed")
			}
			resp["quest"] = first
		}

		log.Info().
			Str("project_id", project.ID).
			Str("created_by", project.CreatedBy).
			Bool("with_quest", req.FirstQuest != nil).
			Msg("[PROJECTS] project submitted")
		return c.Status(fiber.StatusCreated).JSON(resp)
	})

	secured.Post("/projects/:id/quests", walletGuard, func(c *fiber.Ctx) error {
		projectID := param(c, "id")
		project, ok := store.Project(projectID)
		if !ok {
			return fail(c, fmt.Errorf("project %s: %w", projectID, services.ErrProjectNotFound), "project not found")
		}
		if project.CreatedBy != "" && project.CreatedBy != middleware.Address(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "only the project creator can add quests",
			})
		}

		var req questRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, "validation failed", err)
		}

		q := req.toQuest(newQuestID(), projectID)
		if err := store.AddQuest(q); err != nil {
			return fail(c, err, "failed to create quest")
		}
		return c.Status(fiber.StatusCreated).JSON(q)
	})

	// multipart: file + kind (logos | quests)
	secured.Post("/assets", walletGuard, func(c *fiber.Ctx) error {
		if uploader == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "asset uploads are disabled"})
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "file is required", err)
		}
		key, err := utils.AssetKey(utils.AssetKind(c.FormValue("kind", string(utils.AssetLogo))), fh)
		if err != nil {
			return fail(c, err, "unsupported asset")
		}
		url, err := uploader.Upload(c.UserContext(), fh, key)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return c.SendStatus(fiber.StatusRequestTimeout)
			}
			return fail(c, err, "upload failed")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url, "key": key})
	})
}
