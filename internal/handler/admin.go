package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/wldnd519/BE/internal/jobs"
	"github.com/wldnd519/BE/internal/model"
)

type SeniorCounter interface {
	CountTotal(ctx context.Context) (int, error)
}

type Hub interface {
	OnlineCount() int
	OnlineByRegion() map[model.Region]int
	Broadcast(event *model.WSEvent)
}

type JobRunner interface {
	RunNow(ctx context.Context, name string) (jobs.Report, error)
	LastReports() map[string]jobs.Report
}

type AdminHandler struct {
	seniors SeniorCounter
	hub     Hub
	jobs    JobRunner
	logger  *slog.Logger
}

func NewAdminHandler(seniors SeniorCounter, hub Hub, runner JobRunner, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{seniors: seniors, hub: hub, jobs: runner, logger: logger.With("component", "handler.admin")}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	total, err := h.seniors.CountTotal(c.Context())
	if err != nil {
		return serverError(c, h.logger, msgServerError, err)
	}

	return c.JSON(fiber.Map{
		"seniorsTotal":   total,
		"online":         h.hub.OnlineCount(),
		"onlineByRegion": h.hub.OnlineByRegion(),
		"lastRuns":       h.jobs.LastReports(),
	})
}

// RunJob runs a batch job immediately and returns its report.
// POST /api/admin/jobs/:name/run
func (h *AdminHandler) RunJob(c *fiber.Ctx) error {
	name := c.Params("name")
	rep, err := h.jobs.RunNow(c.Context(), name)
	switch {
	case errors.Is(err, jobs.ErrUnknownJob):
		return fail(c, 404, "unknown job: "+name)
	case errors.Is(err, jobs.ErrJobRunning):
		return fail(c, 409, "job already running: "+name)
	case err != nil:
		return serverError(c, h.logger, msgServerError, err)
	}

	h.logger.Info("job run by admin", "job", name, "sent", rep.Sent(), "failed", rep.Failed())
	return c.JSON(rep)
}

func (h *AdminHandler) Announce(c *fiber.Ctx) error {
	var req model.WSAnnounce
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, msgBadRequest)
	}
	if req.Message == "" {
		return fail(c, 400, "message is required")
	}

	data, _ := json.Marshal(req)
	h.hub.Broadcast(&model.WSEvent{Type: model.WSEventAnnounce, Data: data})

	return c.JSON(fiber.Map{"ok": true, "online": h.hub.OnlineCount()})
}
