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
	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) actionRouter(r fiber.Router, auth fiber.Handler) {
	actionGroup := r.Group("/actions", auth)
	{
		actionGroup.Get("/", rt.listActions)
		actionGroup.Get("/catalog", rt.actionCatalog)
		actionGroup.Get("/:id", rt.getAction)

		actionGroup.Post("/", rt.requireRole(middleware.ActionWriters...), rt.createAction)
		actionGroup.Put("/:id", rt.requireRole(middleware.ActionWriters...), rt.updateAction)
		actionGroup.Delete("/:id", rt.requireRole(middleware.Leaders...), rt.deleteAction)
	}
}

func (rt *Router) listActions(c *fiber.Ctx) error {
	var q model.ActionQuery
	if err := c.QueryParser(&q); err != nil {
		return bodyErr(c, err)
	}

	actions, err := rt.Services.Action.List(c.UserContext(), &q)
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, actions)
	return nil
}

func (rt *Router) actionCatalog(c *fiber.Ctx) error {
	c.Locals(consts.DETAIL, rt.Services.Action.Catalog())
	return nil
}

func (rt *Router) getAction(c *fiber.Ctx) error {
	action, err := rt.Services.Action.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, action)
	return nil
}

func (rt *Router) createAction(c *fiber.Ctx) error {
	var req model.CreateActionReq
	if err := c.BodyParser(&req); err != nil {
		return bodyErr(c, err)
	}

	resp, err := rt.Services.Action.Create(c.UserContext(), middleware.CurrentMember(c), &req)
	if err != nil {
		return http.WithRepErr(c, err)
	}

	c.Status(fiber.StatusCreated)
	c.Locals(consts.DETAIL, resp)
	return nil
}

func (rt *Router) updateAction(c *fiber.Ctx) error {
	var req model.UpdateActionReq
	if err := c.BodyParser(&req); err != nil {
		return bodyErr(c, err)
	}

	action, err := rt.Services.Action.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, action)
	return nil
}

func (rt *Router) deleteAction(c *fiber.Ctx) error {
	if err := rt.Services.Action.Delete(c.UserContext(), c.Params("id")); err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.OPERATION, http.MsgActionRemoved)
	return nil
}
