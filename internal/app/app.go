// Package app builds the dependency graph shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/wldnd519/BE/internal/ai"
	"github.com/wldnd519/BE/internal/config"
	"github.com/wldnd519/BE/internal/database"
	"github.com/wldnd519/BE/internal/jobs"
	"github.com/wldnd519/BE/internal/notify"
	"github.com/wldnd519/BE/internal/repository"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool

	Seniors  *repository.SeniorRepository
	Chats    *repository.ChatLogRepository
	Regions  *repository.RegionMessageRepository
	Sessions *repository.SessionRepository

	Gateway *notify.Gateway
	AI      ai.Client

	Scheduler *jobs.Scheduler
	Registry  *prometheus.Registry
	Metrics   *jobs.Metrics
}

// New connects to the database and wires repositories, providers and jobs.
// It does not apply migrations or start the scheduler.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Pool:     pool,
		Seniors:  repository.NewSeniorRepository(pool),
		Chats:    repository.NewChatLogRepository(pool),
		Regions:  repository.NewRegionMessageRepository(pool),
		Sessions: repository.NewSessionRepository(pool),
		Gateway:  NewGateway(cfg, logger),
		AI: ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}),
		Registry: prometheus.NewRegistry(),
	}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = jobs.NewMetrics(a.Registry)

	if a.Scheduler, err = a.newScheduler(); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// NewGateway picks Twilio and SMTP when credentials are present and log-only
// stand-ins otherwise.
func NewGateway(cfg *config.Config, logger *slog.Logger) *notify.Gateway {
	var sms notify.SMSProvider = notify.LogOnlySMS{Logger: logger}
	if cfg.SMSEnabled() {
		sms = notify.NewTwilioSMS(cfg.TwilioSID, cfg.TwilioAuthToken, cfg.TwilioPhone)
	}

	var mail notify.MailProvider = notify.LogOnlyMailer{Logger: logger}
	if cfg.EmailEnabled() {
		mail = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
		})
	}

	if !cfg.SMSEnabled() || !cfg.EmailEnabled() {
		logger.Warn("notification providers partly unconfigured", "sms", cfg.SMSEnabled(), "email", cfg.EmailEnabled())
	}
	return notify.NewGateway(sms, mail, logger, notify.WithSMSRate(cfg.SMSRatePerSec))
}

func (a *App) newScheduler() (*jobs.Scheduler, error) {
	cfg := a.Config
	now := func() time.Time { return time.Now().In(cfg.Location()) }

	checkin := jobs.NewCheckInMonitor(a.Seniors, a.Gateway, cfg.BatchPageSize, now, a.Logger)
	summary := jobs.NewSummaryGenerator(a.Seniors, a.Chats, a.AI, a.Gateway, jobs.SummaryConfig{
		PageSize: cfg.BatchPageSize,
		Location: cfg.Location(),
		Now:      now,
	}, a.Logger)

	s := jobs.NewScheduler(now, a.Logger)
	if err := s.Register(checkin, cfg.CheckInCron); err != nil {
		return nil, err
	}
	if err := s.Register(summary, cfg.SummaryCron); err != nil {
		return nil, err
	}
	if err := s.Register(jobs.NewSessionCleanup(a.Sessions, now, a.Logger), cfg.SessionCleanupCron); err != nil {
		return nil, err
	}
	s.OnReport(a.Metrics.Observe)
	return s, nil
}

func (a *App) Close() {
	a.Pool.Close()
}
