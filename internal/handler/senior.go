package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/wldnd519/BE/internal/middleware"
	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/service"
)

type CheckInRecorder interface {
	CheckIn(ctx context.Context, seniorID string) (*model.Senior, error)
}

type SeniorHandler struct {
	checkins CheckInRecorder
	logger   *slog.Logger
}

func NewSeniorHandler(checkins CheckInRecorder, logger *slog.Logger) *SeniorHandler {
	return &SeniorHandler{checkins: checkins, logger: logger.With("component", "handler.senior")}
}

// CheckIn marks the caller as alive now.
// POST /api/checkin
func (h *SeniorHandler) CheckIn(c *fiber.Ctx) error {
	senior, err := h.checkins.CheckIn(c.Context(), middleware.SeniorID(c))
	if err != nil {
		if errors.Is(err, service.ErrSeniorNotFound) {
			return fail(c, 404, msgNotFound)
		}
		return serverError(c, h.logger, msgServerError, err)
	}
	return c.JSON(fiber.Map{"message": "체크인 완료", "data": senior})
}
