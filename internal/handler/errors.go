package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

const (
	msgBadRequest  = "잘못된 요청입니다."
	msgServerError = "서버 오류"
	msgNotFound    = "사용자를 찾을 수 없습니다."
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// serverError logs err and answers with a generic message so internals never reach clients.
func serverError(c *fiber.Ctx, logger *slog.Logger, msg string, err error) error {
	logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return fail(c, 500, msg)
}
