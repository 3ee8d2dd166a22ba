package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/wldnd519/BE/internal/middleware"
	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/service"
)

const (
	localRegion = "region"
	readTimeout = 60 * time.Second
)

type RegionResolver interface {
	RegionOf(ctx context.Context, seniorID string) (model.Region, error)
}

type WSHandler struct {
	hub     *service.WSHub
	tokens  middleware.TokenValidator
	regions RegionResolver
	logger  *slog.Logger
}

func NewWSHandler(hub *service.WSHub, tokens middleware.TokenValidator, regions RegionResolver, logger *slog.Logger) *WSHandler {
	return &WSHandler{hub: hub, tokens: tokens, regions: regions, logger: logger.With("component", "handler.ws")}
}

// Upgrade authenticates ?token= and subscribes the socket to the caller's region.
// GET /ws/region
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		return fail(c, 401, "인증 토큰이 없습니다.")
	}
	claims, err := h.tokens.ValidateAccessToken(token)
	if err != nil {
		return fail(c, 401, "유효하지 않은 토큰입니다.")
	}
	region, err := h.regions.RegionOf(c.Context(), claims.SeniorID)
	if err != nil {
		return fail(c, 404, "사용자 없음")
	}

	c.Locals(middleware.LocalSeniorID, claims.SeniorID)
	c.Locals(middleware.LocalName, claims.Name)
	c.Locals(localRegion, region)
	return websocket.New(h.handleConnection)(c)
}

func (h *WSHandler) handleConnection(c *websocket.Conn) {
	seniorID, _ := c.Locals(middleware.LocalSeniorID).(string)
	name, _ := c.Locals(middleware.LocalName).(string)
	region, _ := c.Locals(localRegion).(model.Region)

	client := service.NewWSClient(c, seniorID, name, region)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	go func() {
		defer c.Close()
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	_ = c.SetReadDeadline(time.Now().Add(readTimeout))
	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			break
		}
		_ = c.SetReadDeadline(time.Now().Add(readTimeout))

		var event model.WSEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		switch event.Type {
		case model.WSEventPing:
			pong, _ := json.Marshal(model.WSEvent{Type: model.WSEventPong})
			h.hub.SendTo(client, pong)
		default:
			h.logger.Debug("unknown ws event", "type", event.Type, "senior", name)
		}
	}
}
