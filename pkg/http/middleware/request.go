package middleware

import (
	"github.com/go-arcade/opsboard/internal/engine/consts"
	"github.com/go-arcade/opsboard/pkg/id"
	"github.com/gofiber/fiber/v2"
)

const HeaderRequestId = "X-Request-Id"

// RequestMiddleware set request id
func RequestMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := c.Get(HeaderRequestId)
		if requestId == "" {
			requestId = id.GetUUID()
		}
		c.Set(HeaderRequestId, requestId)
		c.Locals(consts.REQUEST_ID, requestId)
		return c.Next()
	}
}
