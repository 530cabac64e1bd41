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
	"github.com/go-arcade/opsboard/internal/engine/service"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) memberRouter(r fiber.Router, auth fiber.Handler) {
	memberGroup := r.Group("/members", auth)
	{
		memberGroup.Get("/", rt.listMembers)
		memberGroup.Get("/ranking/top", rt.topMembers)
		memberGroup.Get("/:id", rt.getMember)

		memberGroup.Put("/:id", rt.requireRole(middleware.Leaders...), rt.updateMember)
		memberGroup.Delete("/:id", rt.requireRole(middleware.Leaders...), rt.deleteMember)
	}
}

func (rt *Router) listMembers(c *fiber.Ctx) error {
	members, err := rt.Services.Member.List(c.UserContext())
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, members)
	return nil
}

func (rt *Router) topMembers(c *fiber.Ctx) error {
	members, err := rt.Services.Member.Top(c.UserContext(), c.QueryInt("limit", service.DefaultTopLimit))
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, members)
	return nil
}

func (rt *Router) getMember(c *fiber.Ctx) error {
	member, err := rt.Services.Member.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, member)
	return nil
}

func (rt *Router) updateMember(c *fiber.Ctx) error {
	var req model.UpdateMemberReq
	if err := c.BodyParser(&req); err != nil {
		return bodyErr(c, err)
	}

	member, err := rt.Services.Member.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, member)
	return nil
}

func (rt *Router) deleteMember(c *fiber.Ctx) error {
	if err := rt.Services.Member.Delete(c.UserContext(), c.Params("id")); err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.OPERATION, http.MsgMemberRemoved)
	return nil
}
