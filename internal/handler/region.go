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

type RegionBoard interface {
	Post(ctx context.Context, seniorID, message string) (*model.RegionMessage, error)
	Feed(ctx context.Context, seniorID string) (*model.RegionFeed, error)
}

type RegionHandler struct {
	board  RegionBoard
	logger *slog.Logger
}

func NewRegionHandler(board RegionBoard, logger *slog.Logger) *RegionHandler {
	return &RegionHandler{board: board, logger: logger.With("component", "handler.region")}
}

// Post adds a message to the caller's region board.
// POST /api/region-chat
func (h *RegionHandler) Post(c *fiber.Ctx) error {
	var req model.RegionPostRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, msgBadRequest)
	}

	if _, err := h.board.Post(c.Context(), middleware.SeniorID(c), req.Message); err != nil {
		return h.regionError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "메시지 전송 완료"})
}

// Feed lists the caller's region board, oldest first.
// GET /api/region-chat
func (h *RegionHandler) Feed(c *fiber.Ctx) error {
	feed, err := h.board.Feed(c.Context(), middleware.SeniorID(c))
	if err != nil {
		return h.regionError(c, err)
	}
	return c.JSON(feed)
}

func (h *RegionHandler) regionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		return fail(c, 400, "메시지를 입력해주세요.")
	case errors.Is(err, service.ErrSeniorNotFound):
		return fail(c, 404, "사용자 없음")
	default:
		return serverError(c, h.logger, msgServerError, err)
	}
}
