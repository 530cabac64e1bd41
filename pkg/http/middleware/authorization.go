package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/go-arcade/opsboard/internal/engine/consts"
	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/http/jwt"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// MemberGetter loads the caller's profile by the id carried in the token.
type MemberGetter interface {
	Get(ctx context.Context, memberId string) (*model.Member, error)
}

// AuthorizationMiddleware 认证中间件
// 解析 Bearer token，加载调用者档案，失败时在进入 handler 前返回 401
// This function is used as the middleware of fiber.
func AuthorizationMiddleware(auth http.Auth, members MemberGetter, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get(fiber.HeaderAuthorization)
		if aToken == "" {
			return reject(c, m, http.TokenEmpty)
		}

		// 按空格分割
		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) || strings.TrimSpace(parts[1]) == "" {
			return reject(c, m, http.TokenEmpty)
		}

		claims, err := jwt.ParseToken(strings.TrimSpace(parts[1]), auth.SecretKey)
		if err != nil {
			// 检查是否是令牌过期错误
			if errors.Is(err, jwt.ErrTokenExpired) {
				return reject(c, m, http.TokenExpired)
			}
			log.Debugw("parse token failed", "path", c.Path(), "error", err)
			return reject(c, m, http.InvalidToken)
		}

		member, err := members.Get(c.UserContext(), claims.MemberId)
		if err != nil {
			if errors.Is(err, repo.ErrMemberNotFound) {
				return reject(c, m, http.MemberNotFoundForToken)
			}
			log.Errorw("load member for token failed", "memberId", claims.MemberId, "error", err)
			return http.WithRepErr(c, http.InternalError.WithCause(err))
		}

		c.Locals(consts.CLAIMS, claims)
		c.Locals(consts.MEMBER, member)
		return c.Next()
	}
}

// CurrentMember returns the member resolved by AuthorizationMiddleware, nil on public routes.
func CurrentMember(c *fiber.Ctx) *model.Member {
	member, _ := c.Locals(consts.MEMBER).(*model.Member)
	return member
}

func reject(c *fiber.Ctx, m *metrics.Metrics, e *http.Error) error {
	if m != nil {
		m.GateRejections.WithLabelValues(utils.StatusMessage(e.Status)).Inc()
	}
	return http.WithRepErr(c, e)
}
