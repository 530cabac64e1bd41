// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-arcade/opsboard/internal/engine/consts"
	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/http/jwt"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

type memberMap map[string]*model.Member

func (mm memberMap) Get(_ context.Context, memberId string) (*model.Member, error) {
	if memberId == "broken" {
		return nil, errors.New("connection reset")
	}
	m, ok := mm[memberId]
	if !ok {
		return nil, repo.ErrMemberNotFound
	}
	return m, nil
}

func newApp(m *metrics.Metrics) *fiber.App {
	members := memberMap{
		"leader": {MemberId: "leader", Username: "admin", Role: model.RoleLeader},
		"member": {MemberId: "member", Username: "operador1", Role: model.RoleMember},
	}
	app := fiber.New(fiber.Config{ErrorHandler: http.ErrorHandler})
	app.Use(ExceptionMiddleware, RequestMiddleware(), RealIPMiddleware(), UnifiedResponseMiddleware())
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	api := app.Group("/api", AuthorizationMiddleware(http.Auth{SecretKey: secret}, members, m))
	api.Get("/me", func(c *fiber.Ctx) error {
		c.Locals(consts.DETAIL, CurrentMember(c).Info())
		return nil
	})
	api.Delete("/thing", RequireRole(m, Leaders...), func(c *fiber.Ctx) error {
		c.Locals(consts.OPERATION, "removido")
		return nil
	})
	return app
}

func token(t *testing.T, memberId string) string {
	t.Helper()
	tok, err := jwt.GenToken(memberId, []byte(secret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(t *testing.T, app *fiber.App, method, path, auth string) (int, map[string]any, *nethttp.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body, resp
}

func TestAuthorizationMiddleware(t *testing.T) {
	m := metrics.NewMetrics()
	app := newApp(m)

	tests := []struct {
		name    string
		auth    string
		status  int
		message string
	}{
		{"missing header", "", 401, http.TokenEmpty.Msg},
		{"not bearer", "Basic abc", 401, http.TokenEmpty.Msg},
		{"garbage token", "Bearer abc.def.ghi", 401, http.InvalidToken.Msg},
		{"wrong secret", func() string {
			tok, _ := jwt.GenToken("leader", []byte("other"), time.Hour)
			return "Bearer " + tok
		}(), 401, http.InvalidToken.Msg},
		{"expired", func() string {
			tok, _ := jwt.GenToken("leader", []byte(secret), -time.Minute)
			return "Bearer " + tok
		}(), 401, http.TokenExpired.Msg},
		{"deleted member", token(t, "gone"), 401, http.MemberNotFoundForToken.Msg},
		{"store failure", token(t, "broken"), 500, http.InternalError.Msg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, _ := do(t, app, fiber.MethodGet, "/api/me", tt.auth)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body["message"])
		})
	}
	assert.Equal(t, float64(6), testutil.ToFloat64(m.GateRejections.WithLabelValues("Unauthorized")))

	status, body, _ := do(t, app, fiber.MethodGet, "/api/me", token(t, "member"))
	assert.Equal(t, 200, status)
	assert.Equal(t, "operador1", body["username"])
	assert.Equal(t, "Membro", body["role"])
}

func TestRequireRole(t *testing.T) {
	m := metrics.NewMetrics()
	app := newApp(m)

	status, body, _ := do(t, app, fiber.MethodDelete, "/api/thing", token(t, "member"))
	assert.Equal(t, 403, status)
	assert.Equal(t, http.Forbidden.Msg, body["message"])
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GateRejections.WithLabelValues("Forbidden")))

	status, body, _ = do(t, app, fiber.MethodDelete, "/api/thing", token(t, "leader"))
	assert.Equal(t, 200, status)
	assert.Equal(t, "removido", body["message"])
}

func TestExceptionAndRequestId(t *testing.T) {
	app := newApp(nil)

	status, body, resp := do(t, app, fiber.MethodGet, "/panic", "")
	assert.Equal(t, 500, status)
	assert.Equal(t, http.InternalError.Msg, body["message"])
	assert.Equal(t, "boom", body["error"])
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestId))

	req := httptest.NewRequest(fiber.MethodGet, "/nowhere", nil)
	req.Header.Set(HeaderRequestId, "req-1")
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 404, r.StatusCode)
	assert.Equal(t, "req-1", r.Header.Get(HeaderRequestId))
}

func TestSkipAccessLog(t *testing.T) {
	assert.True(t, skipAccessLog("/health"))
	assert.True(t, skipAccessLog("/metrics"))
	assert.False(t, skipAccessLog("/api/actions"))
}
