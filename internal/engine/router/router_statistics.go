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
	"github.com/go-arcade/opsboard/internal/engine/consts"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) statisticsRouter(r fiber.Router, auth fiber.Handler) {
	statsGroup := r.Group("/statistics", auth)
	{
		statsGroup.Get("/dashboard", rt.dashboard)
		statsGroup.Get("/actions-by-type", rt.actionsByType)
		statsGroup.Get("/performance-timeline", rt.performanceTimeline)
		statsGroup.Get("/top-performers", rt.topPerformers)
	}
}

func (rt *Router) dashboard(c *fiber.Ctx) error {
	summary, err := rt.Services.Statistics.Dashboard(c.UserContext())
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, summary)
	return nil
}

func (rt *Router) actionsByType(c *fiber.Ctx) error {
	stats, err := rt.Services.Statistics.ByType(c.UserContext())
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, stats)
	return nil
}

func (rt *Router) performanceTimeline(c *fiber.Ctx) error {
	points, err := rt.Services.Statistics.Timeline(c.UserContext(), c.Query("period"))
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, points)
	return nil
}

func (rt *Router) topPerformers(c *fiber.Ctx) error {
	members, err := rt.Services.Statistics.TopPerformers(c.UserContext())
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, members)
	return nil
}
