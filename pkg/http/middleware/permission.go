package middleware

import (
	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: permission.go
 * @description: 角色白名单校验，必须挂在 AuthorizationMiddleware 之后
 */

// Role allow-lists per write operation.
var (
	ActionWriters = []model.Role{model.RoleManager, model.RoleLeader}
	Leaders       = []model.Role{model.RoleLeader}
)

// RequireRole 仅允许指定角色访问
func RequireRole(m *metrics.Metrics, roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member := CurrentMember(c)
		if member == nil {
			return reject(c, m, http.Unauthorized)
		}
		if !member.Role.In(roles...) {
			log.Debugw("role not allowed", "memberId", member.MemberId, "role", member.Role, "path", c.Path())
			return reject(c, m, http.Forbidden)
		}
		return c.Next()
	}
}
