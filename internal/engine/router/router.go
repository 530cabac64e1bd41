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
	"fmt"
	"time"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/internal/engine/service"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/http/middleware"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"github.com/go-arcade/opsboard/pkg/shutdown"
	"github.com/go-arcade/opsboard/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
)

/**
 * @file: router.go
 * @description: setup router
 *  		     /api is the dashboard api, /health /version /metrics are ops endpoints
 */

type Router struct {
	Http     *http.Http
	Services *service.Services
	Members  repo.IMemberRepository
	Metrics  *metrics.Metrics
	Shutdown *shutdown.Manager
}

func NewRouter(httpConf *http.Http, services *service.Services, repos *repo.Repositories, m *metrics.Metrics, sd *shutdown.Manager) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Members:  repos.Member,
		Metrics:  m,
		Shutdown: sd,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               fmt.Sprintf("opsboard %s", version.GetVersion().Version),
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:             rt.Http.BodyLimit,
		ErrorHandler:          http.ErrorHandler,
	})

	// panic recover
	app.Use(middleware.ExceptionMiddleware)

	app.Use(
		middleware.RequestMiddleware(),
		middleware.RealIPMiddleware(),
		middleware.AccessLogMiddleware(rt.Http),
		middleware.CorsMiddleware(rt.Http.AllowOrigins),
		middleware.MetricsMiddleware(rt.Metrics),
	)

	if rt.Http.PProf {
		app.Use(pprof.New())
	}

	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if rt.Shutdown != nil && rt.Shutdown.Draining() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("draining")
		}
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	// unified response interceptor
	api := app.Group("/api", middleware.UnifiedResponseMiddleware())
	rt.routerGroup(api)

	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth, rt.Members, rt.Metrics)

	rt.authRouter(r, auth)
	rt.actionRouter(r, auth)
	rt.memberRouter(r, auth)
	rt.statisticsRouter(r, auth)
}

// requireRole must run after auth
func (rt *Router) requireRole(roles ...model.Role) fiber.Handler {
	return middleware.RequireRole(rt.Metrics, roles...)
}

// bodyErr wraps a body/query parse failure as 400.
func bodyErr(c *fiber.Ctx, err error) error {
	return http.WithRepErr(c, http.BadRequest.WithCause(err))
}
