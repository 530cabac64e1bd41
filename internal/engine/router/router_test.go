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

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/internal/engine/service"
	"github.com/go-arcade/opsboard/pkg/cache"
	"github.com/go-arcade/opsboard/pkg/database"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"github.com/go-arcade/opsboard/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app   *fiber.App
	repos *repo.Repositories
	svc   *service.Services
	sd    *shutdown.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewDatabase(database.Database{Type: database.TypeSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos, err := repo.ProvideRepositories(db, cache.NewFastCache(cache.FastCacheConfig{}), &cache.Redis{})
	require.NoError(t, err)

	conf := &http.Http{TimeZone: "UTC", ExposeMetrics: true, Auth: http.Auth{SecretKey: "router-secret"}}
	conf.SetDefaults()
	m := metrics.NewMetrics()
	svc := service.NewServices(repos, conf, m)
	sd := shutdown.NewManager()
	return &testEnv{app: NewRouter(conf, svc, repos, m, sd).Router(), repos: repos, svc: svc, sd: sd}
}

// member registers username with role and returns a bearer token for it.
func (e *testEnv) member(t *testing.T, username string, role model.Role) (string, string) {
	t.Helper()
	resp, err := e.svc.Auth.Register(context.Background(), &model.RegisterReq{
		Username: username,
		Email:    username + "@facao.com",
		Password: "senha123",
		Role:     string(role),
	})
	require.NoError(t, err)
	return resp.Id, resp.Token
}

func (e *testEnv) call(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	e := newTestEnv(t)
	paths := []struct{ method, path string }{
		{fiber.MethodGet, "/api/auth/me"},
		{fiber.MethodPost, "/api/auth/logout"},
		{fiber.MethodGet, "/api/actions"},
		{fiber.MethodPost, "/api/actions"},
		{fiber.MethodPut, "/api/actions/abc"},
		{fiber.MethodDelete, "/api/actions/abc"},
		{fiber.MethodGet, "/api/members"},
		{fiber.MethodPut, "/api/members/abc"},
		{fiber.MethodDelete, "/api/members/abc"},
		{fiber.MethodGet, "/api/statistics/dashboard"},
		{fiber.MethodGet, "/api/statistics/actions-by-type"},
		{fiber.MethodGet, "/api/statistics/performance-timeline"},
		{fiber.MethodGet, "/api/statistics/top-performers"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			status, raw := e.call(t, p.method, p.path, "", nil)
			assert.Equal(t, 401, status)
			assert.Equal(t, http.TokenEmpty.Msg, decode[map[string]any](t, raw)["message"])
		})
	}

	status, _ := e.call(t, fiber.MethodGet, "/api/actions", "not-a-token", nil)
	assert.Equal(t, 401, status)
}

func TestRegisterLoginMeLogout(t *testing.T) {
	e := newTestEnv(t)
	body := map[string]string{"username": "operador1", "email": "operador1@facao.com", "password": "senha123"}

	status, raw := e.call(t, fiber.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, 201, status, string(raw))
	reg := decode[map[string]any](t, raw)
	assert.Equal(t, "Membro", reg["role"])
	assert.NotEmpty(t, reg["token"])

	status, raw = e.call(t, fiber.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, 400, status)
	assert.Equal(t, http.UserAlreadyExist.Msg, decode[map[string]any](t, raw)["message"])

	status, _ = e.call(t, fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": "operador1@facao.com", "password": "x"})
	assert.Equal(t, 401, status)

	status, raw = e.call(t, fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": "operador1@facao.com", "password": "senha123"})
	require.Equal(t, 200, status, string(raw))
	login := decode[model.LoginResp](t, raw)
	assert.Equal(t, "Recruta", login.Rank)

	status, raw = e.call(t, fiber.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, 200, status)
	me := decode[model.MemberInfo](t, raw)
	assert.Equal(t, "Online", me.Status)
	assert.Equal(t, login.Id, me.Id)

	status, raw = e.call(t, fiber.MethodPost, "/api/auth/logout", login.Token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, http.MsgLogout, decode[map[string]any](t, raw)["message"])

	status, _ = e.call(t, fiber.MethodPost, "/api/auth/register", "", map[string]string{"username": "x"})
	assert.Equal(t, 400, status)
}

func TestRegisterWithRequestedRole(t *testing.T) {
	e := newTestEnv(t)

	status, raw := e.call(t, fiber.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "admin", "email": "admin@facao.com", "password": "senha123", "role": "Líder",
	})
	require.Equal(t, 201, status, string(raw))
	reg := decode[map[string]any](t, raw)
	assert.Equal(t, "Líder", reg["role"])

	// the self-assigned role opens leader-only routes right away
	status, _ = e.call(t, fiber.MethodDelete, "/api/actions/missing", reg["token"].(string), nil)
	assert.Equal(t, 404, status)

	status, _ = e.call(t, fiber.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "x1", "email": "x1@facao.com", "password": "senha123", "role": "imperador",
	})
	assert.Equal(t, 400, status)
}

func TestMemberRoleCannotWriteActions(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.member(t, "operador1", model.RoleMember)

	status, raw := e.call(t, fiber.MethodPost, "/api/actions", token, map[string]any{
		"actionType": "Pequeno", "actionName": "Lojinha", "dateTime": "2025-03-10T20:00", "result": "Vitória",
	})
	assert.Equal(t, 403, status)
	assert.Equal(t, http.Forbidden.Msg, decode[map[string]any](t, raw)["message"])

	status, raw = e.call(t, fiber.MethodGet, "/api/actions", token, nil)
	assert.Equal(t, 200, status)
	assert.Empty(t, decode[[]model.ActionInfo](t, raw))

	status, _ = e.call(t, fiber.MethodGet, "/api/actions/catalog", token, nil)
	assert.Equal(t, 200, status)
}

func TestCreateActionGrantsXP(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.member(t, "gerente1", model.RoleManager)

	status, raw := e.call(t, fiber.MethodPost, "/api/actions", token, map[string]any{
		"actionType":   "Pequeno",
		"actionName":   "Lojinha",
		"dateTime":     "2025-03-10T20:00",
		"participants": []string{"operador1", "operador2"},
		"result":       "Vitória",
	})
	require.Equal(t, 201, status, string(raw))
	created := decode[model.CreateActionResp](t, raw)
	assert.Equal(t, 10, created.XpGained)
	assert.True(t, created.StatsSynced)
	assert.Equal(t, "Ação registrada com sucesso! +10 XP", created.Message)
	assert.Equal(t, "Vitória", created.Result)

	status, raw = e.call(t, fiber.MethodPost, "/api/actions", token, map[string]any{
		"actionType": "Médio", "actionName": "Joalheria", "dateTime": "2025-03-11T20:00", "result": "Derrota",
	})
	require.Equal(t, 201, status, string(raw))
	assert.Equal(t, 12, decode[model.CreateActionResp](t, raw).XpGained)

	_, raw = e.call(t, fiber.MethodGet, "/api/auth/me", token, nil)
	me := decode[model.MemberInfo](t, raw)
	assert.Equal(t, int64(22), me.Reputation)
	assert.Equal(t, int64(2), me.ActionsParticipated)
	assert.Equal(t, int64(1), me.Victories)
	assert.Equal(t, int64(1), me.Defeats)

	status, raw = e.call(t, fiber.MethodGet, "/api/actions?result="+url.QueryEscape("Vitória"), token, nil)
	require.Equal(t, 200, status)
	victories := decode[[]model.ActionInfo](t, raw)
	require.Len(t, victories, 1)
	assert.Equal(t, "Lojinha", victories[0].ActionName)
	require.NotNil(t, victories[0].Manager)
	assert.Equal(t, "gerente1", victories[0].Manager.Username)

	status, raw = e.call(t, fiber.MethodGet, "/api/actions/"+created.Id, token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, []string{"operador1", "operador2"}, decode[model.ActionInfo](t, raw).Participants)

	status, _ = e.call(t, fiber.MethodGet, "/api/actions/missing", token, nil)
	assert.Equal(t, 404, status)

	status, raw = e.call(t, fiber.MethodPut, "/api/actions/"+created.Id, token, map[string]any{"observations": "ok"})
	require.Equal(t, 200, status, string(raw))
	assert.Equal(t, "ok", decode[model.ActionInfo](t, raw).Observations)

	// 只有领袖可以删除
	status, _ = e.call(t, fiber.MethodDelete, "/api/actions/"+created.Id, token, nil)
	assert.Equal(t, 403, status)
}

func TestCreateActionDropsBlankParticipants(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.member(t, "gerente1", model.RoleManager)

	status, raw := e.call(t, fiber.MethodPost, "/api/actions", token, map[string]any{
		"actionType":   "Pequeno",
		"actionName":   "Barbearia",
		"dateTime":     "2025-03-12T21:00",
		"participants": []string{" operador1 ", "", "   ", "operador2"},
		"result":       "Vitória",
	})
	require.Equal(t, 201, status, string(raw))
	created := decode[model.CreateActionResp](t, raw)
	assert.Equal(t, []string{"operador1", "operador2"}, created.Participants)

	status, raw = e.call(t, fiber.MethodPost, "/api/actions", token, map[string]any{
		"actionType":   "Pequeno",
		"actionName":   "Barbearia",
		"dateTime":     "2025-03-12T21:00",
		"participants": []string{strings.Repeat("x", 65)},
		"result":       "Vitória",
	})
	assert.Equal(t, 400, status, string(raw))
}

func TestLeaderDeletesMemberWithActions(t *testing.T) {
	e := newTestEnv(t)
	managerId, managerToken := e.member(t, "gerente1", model.RoleManager)
	_, leaderToken := e.member(t, "admin", model.RoleLeader)

	status, raw := e.call(t, fiber.MethodPost, "/api/actions", managerToken, map[string]any{
		"actionType": "grande", "actionName": "Banco Central", "dateTime": "2025-03-10T20:00", "result": "vitoria",
	})
	require.Equal(t, 201, status, string(raw))
	actionId := decode[model.CreateActionResp](t, raw).Id

	status, _ = e.call(t, fiber.MethodDelete, "/api/members/"+managerId, managerToken, nil)
	assert.Equal(t, 403, status)

	status, raw = e.call(t, fiber.MethodDelete, "/api/members/"+managerId, leaderToken, nil)
	require.Equal(t, 200, status, string(raw))
	assert.Equal(t, http.MsgMemberRemoved, decode[map[string]any](t, raw)["message"])

	status, raw = e.call(t, fiber.MethodGet, "/api/actions/"+actionId, leaderToken, nil)
	require.Equal(t, 200, status)
	body := decode[map[string]any](t, raw)
	assert.Nil(t, body["manager"])
	assert.Nil(t, body["createdBy"])

	// 被删除成员的 token 不再可用
	status, raw = e.call(t, fiber.MethodGet, "/api/actions", managerToken, nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, http.MemberNotFoundForToken.Msg, decode[map[string]any](t, raw)["message"])

	status, _ = e.call(t, fiber.MethodDelete, "/api/members/"+managerId, leaderToken, nil)
	assert.Equal(t, 404, status)

	status, raw = e.call(t, fiber.MethodDelete, "/api/actions/"+actionId, leaderToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, http.MsgActionRemoved, decode[map[string]any](t, raw)["message"])
}

func TestLeaderUpdatesMember(t *testing.T) {
	e := newTestEnv(t)
	memberId, _ := e.member(t, "operador1", model.RoleMember)
	_, leaderToken := e.member(t, "admin", model.RoleLeader)

	status, raw := e.call(t, fiber.MethodPut, "/api/members/"+memberId, leaderToken, map[string]any{
		"role": "Gerente", "rank": "Cabo", "reputation": 300,
	})
	require.Equal(t, 200, status, string(raw))
	updated := decode[model.MemberInfo](t, raw)
	assert.Equal(t, "Gerente", updated.Role)
	assert.Equal(t, int64(300), updated.Reputation)

	status, _ = e.call(t, fiber.MethodPut, "/api/members/"+memberId, leaderToken, map[string]any{"role": "Rei"})
	assert.Equal(t, 400, status)

	status, raw = e.call(t, fiber.MethodGet, "/api/members", leaderToken, nil)
	require.Equal(t, 200, status)
	members := decode[[]model.MemberInfo](t, raw)
	require.Len(t, members, 2)
	assert.Equal(t, "operador1", members[0].Username)

	status, raw = e.call(t, fiber.MethodGet, "/api/members/ranking/top?limit=1", leaderToken, nil)
	require.Equal(t, 200, status)
	assert.Len(t, decode[[]model.MemberInfo](t, raw), 1)

	status, _ = e.call(t, fiber.MethodGet, "/api/members/"+memberId, leaderToken, nil)
	assert.Equal(t, 200, status)
}

func TestStatisticsEndpoints(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.member(t, "gerente1", model.RoleManager)

	status, raw := e.call(t, fiber.MethodGet, "/api/statistics/dashboard", token, nil)
	require.Equal(t, 200, status)
	empty := decode[model.DashboardSummary](t, raw)
	assert.Equal(t, "0", empty.VictoryRate)
	assert.Nil(t, empty.LastAction)

	status, raw = e.call(t, fiber.MethodPost, "/api/actions", token, map[string]any{
		"actionType": "pequeno", "actionName": "Mequi", "dateTime": "2025-03-10T20:00", "result": "vitoria",
	})
	require.Equal(t, 201, status, string(raw))

	_, raw = e.call(t, fiber.MethodGet, "/api/statistics/dashboard", token, nil)
	summary := decode[model.DashboardSummary](t, raw)
	assert.Equal(t, "100.0", summary.VictoryRate)
	assert.Equal(t, int64(1), summary.ActionsByType.Small)
	require.NotNil(t, summary.LastAction)

	status, raw = e.call(t, fiber.MethodGet, "/api/statistics/actions-by-type", token, nil)
	require.Equal(t, 200, status)
	byType := decode[[]model.TypeStats](t, raw)
	require.Len(t, byType, 1)
	assert.Equal(t, "pequeno", byType[0].Type)
	assert.Equal(t, "Pequeno", byType[0].Label)

	status, _ = e.call(t, fiber.MethodGet, "/api/statistics/performance-timeline?period=month", token, nil)
	assert.Equal(t, 200, status)
	status, _ = e.call(t, fiber.MethodGet, "/api/statistics/performance-timeline?period=decade", token, nil)
	assert.Equal(t, 400, status)

	status, raw = e.call(t, fiber.MethodGet, "/api/statistics/top-performers", token, nil)
	require.Equal(t, 200, status)
	top := decode[[]model.MemberInfo](t, raw)
	require.Len(t, top, 1)
	assert.Equal(t, int64(10), top[0].Reputation)
}

func TestOpsEndpoints(t *testing.T) {
	e := newTestEnv(t)

	status, raw := e.call(t, fiber.MethodGet, "/health", "", nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", string(raw))

	status, raw = e.call(t, fiber.MethodGet, "/version", "", nil)
	assert.Equal(t, 200, status)
	assert.Contains(t, string(raw), "version")

	_, _ = e.call(t, fiber.MethodGet, "/api/actions", "", nil)
	status, raw = e.call(t, fiber.MethodGet, "/metrics", "", nil)
	assert.Equal(t, 200, status)
	assert.Contains(t, string(raw), "opsboard_gate_rejections_total")

	status, raw = e.call(t, fiber.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, http.NotFound.Msg, decode[map[string]any](t, raw)["message"])

	e.sd.Begin()
	status, raw = e.call(t, fiber.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "draining", string(raw))
}
