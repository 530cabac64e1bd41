package middleware

import (
	"github.com/go-arcade/opsboard/internal/engine/consts"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware 统一响应拦截器
// c.Locals(consts.DETAIL, value) 用于设置响应数据
// c.Locals(consts.OPERATION, "msg") 只返回 {message}
// 如有其他需要，可自行添加
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		// 如果未设置响应状态码，默认将状态码设置为200（OK）
		if status == 0 {
			status = fiber.StatusOK
			c.Status(status)
		}
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}

		// 业务逻辑正确, 设置响应数据
		if detail := c.Locals(consts.DETAIL); detail != nil {
			return http.WithRepJSON(c, detail)
		}
		// 业务逻辑正确, 无响应数据, 只返回结果
		if msg, ok := c.Locals(consts.OPERATION).(string); ok {
			return http.WithRepMsg(c, msg)
		}
		return nil
	}
}
