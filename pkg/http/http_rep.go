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

package http

import (
	"github.com/gofiber/fiber/v2"
)

// Message is the body of responses that only report an outcome.
type Message struct {
	Message string `json:"message"`
}

// WithRepJSON 只返回json数据
func WithRepJSON(c *fiber.Ctx, detail any) error {
	return c.JSON(detail)
}

// WithRepStatus 返回自定义状态码和json数据
func WithRepStatus(c *fiber.Ctx, status int, detail any) error {
	return c.Status(status).JSON(detail)
}

// WithRepMsg 只返回 message
func WithRepMsg(c *fiber.Ctx, msg string) error {
	return c.JSON(Message{Message: msg})
}
