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
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ResponseErr struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// AsError resolves err into an *Error, treating anything unknown as InternalError.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return NotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
			return BadRequest.WithCause(err)
		case fiber.StatusUnauthorized:
			return Unauthorized
		case fiber.StatusForbidden:
			return Forbidden
		}
	}
	return InternalError.WithCause(err)
}

// WithRepErr writes err as {message, error?}. The cause is only exposed on 5xx.
func WithRepErr(c *fiber.Ctx, err error) error {
	e := AsError(err)
	rep := ResponseErr{Message: e.Msg}
	if e.Status >= fiber.StatusInternalServerError && e.Err != nil {
		rep.Error = e.Err.Error()
	}
	return c.Status(e.Status).JSON(rep)
}

// ErrorHandler is the fiber.Config error handler, so a returned error gets the same body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return WithRepErr(c, err)
}
