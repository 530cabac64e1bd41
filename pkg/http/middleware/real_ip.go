package middleware

import (
	"strings"

	"github.com/go-arcade/opsboard/internal/engine/consts"
	"github.com/gofiber/fiber/v2"
)

// RealIPMiddleware 获取真实 IP 中间件
func RealIPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(consts.CLIENT_IP, clientIP(c))
		return c.Next()
	}
}

func clientIP(c *fiber.Ctx) string {
	// XFF: client, proxy1, proxy2
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return c.IP()
}
