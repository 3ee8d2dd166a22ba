package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wldnd519/BE/internal/service"
)

const (
	LocalSeniorID = "senior_id"
	LocalName     = "name"
)

type TokenValidator interface {
	ValidateAccessToken(token string) (*service.Claims, error)
}

// Auth requires a bearer access token and exposes the caller through
// c.Locals(LocalSeniorID) and c.Locals(LocalName).
func Auth(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader || tokenString == "" {
			return c.Status(401).JSON(fiber.Map{"error": "인증 토큰이 없습니다."})
		}

		claims, err := tokens.ValidateAccessToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "유효하지 않은 토큰입니다."})
		}

		c.Locals(LocalSeniorID, claims.SeniorID)
		c.Locals(LocalName, claims.Name)
		return c.Next()
	}
}

func AdminKey(expectedKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-Admin-Key")
		if key == "" || key != expectedKey {
			return c.Status(403).JSON(fiber.Map{"error": "invalid admin key"})
		}
		return c.Next()
	}
}

// SeniorID reads the id Auth stored on the request.
func SeniorID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSeniorID).(string)
	return id
}
