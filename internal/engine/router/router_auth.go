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

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.Post("/register", rt.register)
		authGroup.Post("/login", rt.login)

		authGroup.Get("/me", auth, rt.me)
		authGroup.Post("/logout", auth, rt.logout)
	}
}

func (rt *Router) register(c *fiber.Ctx) error {
	var req model.RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return bodyErr(c, err)
	}

	resp, err := rt.Services.Auth.Register(c.UserContext(), &req)
	if err != nil {
		return http.WithRepErr(c, err)
	}

	c.Status(fiber.StatusCreated)
	c.Locals(consts.DETAIL, resp)
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return bodyErr(c, err)
	}

	resp, err := rt.Services.Auth.Login(c.UserContext(), &req)
	if err != nil {
		return http.WithRepErr(c, err)
	}

	c.Locals(consts.DETAIL, resp)
	return nil
}

func (rt *Router) me(c *fiber.Ctx) error {
	info, err := rt.Services.Auth.Me(c.UserContext(), middleware.CurrentMember(c).MemberId)
	if err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.DETAIL, info)
	return nil
}

func (rt *Router) logout(c *fiber.Ctx) error {
	if err := rt.Services.Auth.Logout(c.UserContext(), middleware.CurrentMember(c).MemberId); err != nil {
		return http.WithRepErr(c, err)
	}
	c.Locals(consts.OPERATION, http.MsgLogout)
	return nil
}
