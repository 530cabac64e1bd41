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
	"time"
)

/**
 * @file: http.go
 * @description: http server and auth configuration
 */

type Http struct {
	Host            string
	Port            int
	AccessLog       bool
	ExposeMetrics   bool
	PProf           bool
	AllowOrigins    string
	TimeZone        string
	BodyLimit       int
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	Auth            Auth
}

type Auth struct {
	SecretKey    string
	AccessExpire time.Duration
}

// DefaultAccessExpire is the lifetime of an issued identity token.
const DefaultAccessExpire = 30 * 24 * time.Hour

// SetDefaults fills zero values with the server defaults.
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 3001
	}
	if h.AllowOrigins == "" {
		h.AllowOrigins = "*"
	}
	if h.BodyLimit <= 0 {
		h.BodyLimit = 4 * 1024 * 1024
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 60
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10
	}
	if h.Auth.AccessExpire <= 0 {
		h.Auth.AccessExpire = DefaultAccessExpire
	}
}

// Location resolves TimeZone, falling back to the process local zone.
func (h *Http) Location() *time.Location {
	if h.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(h.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
