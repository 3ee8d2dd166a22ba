package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wldnd519/BE/internal/app"
	"github.com/wldnd519/BE/internal/config"
	"github.com/wldnd519/BE/internal/database"
	"github.com/wldnd519/BE/internal/discord"
	"github.com/wldnd519/BE/internal/handler"
	"github.com/wldnd519/BE/internal/jobs"
	"github.com/wldnd519/BE/internal/logging"
	"github.com/wldnd519/BE/internal/middleware"
	"github.com/wldnd519/BE/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("development", "info").Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := database.RunMigrations(ctx, a.Pool); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// Services
	authSvc := service.NewAuthService(a.Seniors, a.Sessions, cfg.JWTSecret)
	checkinSvc := service.NewCheckInService(a.Seniors)
	companionSvc := service.NewCompanionService(a.Chats, a.AI, logger)
	wsHub := service.NewWSHub(logger)
	regionSvc := service.NewRegionService(a.Seniors, a.Regions, wsHub)

	// Ops reporting
	bot, err := discord.NewBot(cfg.DiscordBotToken, cfg.DiscordReportChannel,
		discord.NewCommandHandler(a.Seniors, wsHub, a.Scheduler), logger)
	if err != nil {
		logger.Warn("discord bot init failed", "error", err)
	}
	a.Scheduler.OnReport(bot.PostReport)
	a.Scheduler.OnReport(func(r jobs.Report) {
		logger.Info("job finished", "job", r.Job, "sent", r.Sent(), "skipped", r.Skipped(),
			"failed", r.Failed(), "degraded", r.Degraded(), "duration", r.Duration())
	})

	// Fiber app
	srv := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // admin job runs are synchronous
		IdleTimeout:  30 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	srv.Use(recover.New())
	srv.Use(middleware.Logger(os.Stdout))
	srv.Use(middleware.CORS())

	healthH := handler.NewHealthHandler(a.Pool)
	srv.Get("/health", healthH.Health)
	srv.Get("/ready", healthH.Ready)
	srv.Get("/metrics", handler.Metrics(a.Registry))

	api := srv.Group("/api")

	// Public
	authH := handler.NewAuthHandler(authSvc, logger)
	api.Post("/register", middleware.RateLimit(5, time.Minute), authH.Register)
	api.Post("/login", middleware.RateLimit(10, time.Minute), authH.Login)
	api.Post("/refresh", middleware.RateLimit(20, time.Minute), authH.Refresh)
	api.Post("/logout", authH.Logout)

	publicH := handler.NewPublicHandler(a.Seniors, wsHub)
	api.Get("/regions", publicH.Regions)
	api.Get("/public/stats", publicH.Stats)

	// Admin, registered before the JWT group
	admin := api.Group("/admin", middleware.AdminKey(cfg.AdminKey))
	adminH := handler.NewAdminHandler(a.Seniors, wsHub, a.Scheduler, logger)
	admin.Get("/stats", adminH.Stats)
	admin.Post("/announce", adminH.Announce)
	admin.Post("/jobs/:name/run", adminH.RunJob)

	protected := api.Group("", middleware.Auth(authSvc))

	seniorH := handler.NewSeniorHandler(checkinSvc, logger)
	protected.Post("/checkin", seniorH.CheckIn)

	chatH := handler.NewChatHandler(companionSvc, a.Gateway, logger)
	protected.Post("/chat", chatH.Chat)
	protected.Get("/analyze", chatH.Analyze)
	protected.Post("/test-email", chatH.TestEmail)

	regionH := handler.NewRegionHandler(regionSvc, logger)
	protected.Post("/region-chat", regionH.Post)
	protected.Get("/region-chat", regionH.Feed)

	wsH := handler.NewWSHandler(wsHub, authSvc, regionSvc, logger)
	srv.Get("/ws/region", wsH.Upgrade)

	go wsHub.Run()
	if err := bot.Start(); err != nil {
		logger.Warn("discord bot start failed", "error", err)
	}
	a.Scheduler.Start(ctx)

	go func() {
		if err := srv.Listen(":" + cfg.Port); err != nil {
			logger.Error("server error", "error", err)
			stop()
		}
	}()
	logger.Info("eldercare backend running", "port", cfg.Port, "env", cfg.Env, "tz", cfg.Location().String())

	<-ctx.Done()
	logger.Info("shutting down")
	a.Scheduler.Stop()
	_ = srv.ShutdownWithTimeout(5 * time.Second)
	wsHub.Shutdown()
	bot.Stop()
	logger.Info("server stopped")
}
