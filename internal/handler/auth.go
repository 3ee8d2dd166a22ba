package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/service"
)

type Authenticator interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Senior, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type AuthHandler struct {
	auth   Authenticator
	logger *slog.Logger
}

func NewAuthHandler(auth Authenticator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger.With("component", "handler.auth")}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, msgBadRequest)
	}

	senior, err := h.auth.Register(c.Context(), &req)
	if err != nil {
		return h.authError(c, err)
	}

	h.logger.Info("senior registered", "senior_id", senior.ID, "region", senior.Region)
	return c.Status(201).JSON(fiber.Map{"message": "회원가입 성공"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, msgBadRequest)
	}
	if req.Name == "" || req.Password == "" {
		return fail(c, 400, "이름과 비밀번호를 입력해주세요.")
	}

	tokens, err := h.auth.Login(c.Context(), &req)
	if err != nil {
		return h.authError(c, err)
	}

	return c.JSON(model.LoginResponse{
		Message:      "로그인 성공",
		Token:        tokens.Token,
		RefreshToken: tokens.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req model.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, msgBadRequest)
	}
	if req.RefreshToken == "" {
		return fail(c, 400, "refreshToken이 필요합니다.")
	}

	tokens, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return h.authError(c, err)
	}
	return c.JSON(tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req model.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, msgBadRequest)
	}

	if req.RefreshToken != "" {
		if err := h.auth.Logout(c.Context(), req.RefreshToken); err != nil {
			h.logger.Warn("revoke refresh token failed", "error", err)
		}
	}
	return c.JSON(fiber.Map{"message": "로그아웃 완료"})
}

func (h *AuthHandler) authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return fail(c, 400, "모든 항목을 입력해주세요.")
	case errors.Is(err, service.ErrInvalidRegion):
		return fail(c, 400, "유효하지 않은 지역입니다.")
	case errors.Is(err, service.ErrSeniorExists):
		return fail(c, 409, "이미 존재하는 사용자입니다.")
	case errors.Is(err, service.ErrSeniorNotFound):
		return fail(c, 404, msgNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		return fail(c, 401, "비밀번호가 일치하지 않습니다.")
	case errors.Is(err, service.ErrInvalidToken):
		return fail(c, 401, "유효하지 않은 토큰입니다.")
	default:
		return serverError(c, h.logger, msgServerError, err)
	}
}
