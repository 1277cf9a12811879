package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"questchain/config"
	"questchain/handlers"
	"questchain/logger"
	"questchain/middleware"
	"questchain/services"
	"questchain/utils"
	"questchain/wallet"
	"questchain/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("failed to load catalog")
	}
	store, err := services.NewQuestStore(catalog, services.WithRepeatCompletions(cfg.AllowRepeatCompletion))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid catalog")
	}
	log.Info().
		Int("projects", len(catalog.Projects)).
		Int("quests", len(catalog.Quests)).
		Int("badges", len(catalog.Badges)).
		Msg("catalog loaded")

	env := wallet.NewEnvironment()
	session := wallet.NewSession(env, wallet.WithDetection(cfg.Wallet.DetectAttempts, cfg.Wallet.DetectInterval))

	sched, err := services.StartScheduler(ctx, services.SchedulerConfig{
		WalletRefresh:  cfg.Wallet.RefreshInterval,
		LeaderboardLog: cfg.LeaderboardLogInterval,
	}, session, store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	if cfg.Catalog.SyncURL != "" {
		workers.NewCatalogSyncWorker(store, cfg.Catalog.SyncURL, cfg.ServiceToken, cfg.Catalog.SyncInterval).Start(ctx)
	}

	app := fiber.New(fiber.Config{
		Immutable: true,
		BodyLimit: utils.MaxAssetSize + 1<<20,
	})
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: !slices.Contains(cfg.AllowedOrigins, "*"),
		MaxAge:           86400,
	}))
	app.Use(middleware.GatewayAuthMiddleware(cfg.ServiceToken))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize asset uploads")
	}
	if local, ok := uploader.(utils.LocalUploader); ok {
		app.Static(local.URLPrefix, local.Dir)
	}

	walletGuard := middleware.WalletSessionMiddleware(session)
	handlers.SetupWalletRoutes(app, env, session, store, wallet.InjectiveTestnet())
	handlers.SetupQuestRoutes(app, store, walletGuard)
	handlers.SetupProjectRoutes(app, store, uploader, walletGuard)
	handlers.SetupProgressionRoutes(app, store, middleware.SSEAuthMiddleware(cfg.ServiceToken))

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()
	log.Info().
		Str("addr", cfg.HTTPAddr).
		Strs("origins", cfg.AllowedOrigins).
		Bool("gateway_auth", cfg.ServiceToken != "").
		Bool("repeat_completions", cfg.AllowRepeatCompletion).
		Msg("server running")

	<-ctx.Done()
	log.Info().Msg("shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := sched.Shutdown(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown")
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*services.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.CatalogFile:
		return services.FileCatalog{Path: cfg.Catalog.File}.Load(ctx)
	case config.CatalogPostgres:
		db, err := gorm.Open(postgres.Open(cfg.Catalog.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect to catalog database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// Read once at boot; later additions arrive through the sync worker.
		defer sqlDB.Close()
		return services.DBCatalog{DB: db}.Load(ctx)
	default:
		return services.SeedCatalog{}.Load(ctx)
	}
}

func newUploader(ctx context.Context, cfg *config.Config) (handlers.AssetUploader, error) {
	if !cfg.UploadsEnabled() {
		log.Warn().Msg("R2 not configured, storing assets on local disk")
		return utils.LocalUploader{Dir: "./uploads", URLPrefix: "/uploads"}, nil
	}
	r2, err := utils.NewR2Uploader(ctx, utils.R2Config{
		AccountID:       cfg.R2.AccountID,
		AccessKeyID:     cfg.R2.AccessKeyID,
		AccessKeySecret: cfg.R2.AccessKeySecret,
		Bucket:          cfg.R2.BucketName,
		CDNBaseURL:      cfg.CDNBaseURL,
	})
	if err != nil {
		return nil, err
	}
	return r2, nil
}
