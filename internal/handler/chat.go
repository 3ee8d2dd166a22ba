package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wldnd519/BE/internal/middleware"
	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/notify"
	"github.com/wldnd519/BE/internal/service"
)

type Companion interface {
	Chat(ctx context.Context, seniorID, message string) (string, error)
	AnalyzeEmotion(ctx context.Context, seniorID string) (string, error)
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type ChatHandler struct {
	companion Companion
	mail      EmailSender
	logger    *slog.Logger
}

func NewChatHandler(companion Companion, mail EmailSender, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{companion: companion, mail: mail, logger: logger.With("component", "handler.chat")}
}

// Chat relays one message to the companion model.
// POST /api/chat
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, msgBadRequest)
	}
	if strings.TrimSpace(req.Message) == "" {
		return fail(c, 400, "메시지를 입력해주세요.")
	}

	reply, err := h.companion.Chat(c.Context(), middleware.SeniorID(c), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return fail(c, 400, "메시지를 입력해주세요.")
		}
		return serverError(c, h.logger, "AI 챗봇 응답 실패", err)
	}
	return c.JSON(model.ChatResponse{Reply: reply})
}

// Analyze infers the caller's mood from their latest turns.
// GET /api/analyze
func (h *ChatHandler) Analyze(c *fiber.Ctx) error {
	out, err := h.companion.AnalyzeEmotion(c.Context(), middleware.SeniorID(c))
	if err != nil {
		if errors.Is(err, service.ErrNoHistory) {
			return fail(c, 400, "대화 기록이 없습니다.")
		}
		return serverError(c, h.logger, "감정 분석 실패", err)
	}
	return c.JSON(model.EmotionResponse{EmotionAnalysis: out})
}

// TestEmail sends content to toEmail with the daily summary subject.
// POST /api/test-email
func (h *ChatHandler) TestEmail(c *fiber.Ctx) error {
	var req model.TestEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, msgBadRequest)
	}
	if strings.TrimSpace(req.ToEmail) == "" {
		return fail(c, 400, "이메일 주소를 입력해주세요.")
	}

	if err := h.mail.SendEmail(c.Context(), req.ToEmail, notify.DailySummarySubject, req.Content); err != nil {
		return serverError(c, h.logger, "이메일 전송 실패", err)
	}
	return c.JSON(fiber.Map{"message": "테스트 이메일 전송 성공"})
}
