package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wldnd519/BE/internal/model"
)

type OnlineCounter interface {
	OnlineCount() int
}

type PublicHandler struct {
	seniors SeniorCounter
	online  OnlineCounter
}

func NewPublicHandler(seniors SeniorCounter, online OnlineCounter) *PublicHandler {
	return &PublicHandler{seniors: seniors, online: online}
}

// Regions lists the values accepted by /api/register, for sign-up forms.
// GET /api/regions
func (h *PublicHandler) Regions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"regions": model.Regions})
}

// Stats is an unauthenticated status summary.
// GET /api/public/stats
func (h *PublicHandler) Stats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	total, _ := h.seniors.CountTotal(ctx)
	return c.JSON(fiber.Map{
		"seniorsTotal":  total,
		"seniorsOnline": h.online.OnlineCount(),
		"serverStatus":  "online",
	})
}
