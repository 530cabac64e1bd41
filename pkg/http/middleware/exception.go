package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware 异常中间件
// 捕获 panic 错误，返回 500 状态码和 {message}
// This function is used as the middleware of fiber.
func ExceptionMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic recovered", "path", c.Path(), "panic", r, "stack", string(debug.Stack()))
			// 一律返回服务器错误，避免返回堆栈错误给客户端
			err = http.WithRepErr(c, http.InternalError.WithCause(panicError(r)))
		}
	}()

	return c.Next()
}

func panicError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return fmt.Errorf("%s", v)
	default:
		return fmt.Errorf("%v", v)
	}
}
