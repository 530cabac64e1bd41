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
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/internal/engine/service"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"github.com/go-arcade/opsboard/pkg/shutdown"
	"github.com/google/wire"
)

// ProviderSet 提供路由相关的依赖
var ProviderSet = wire.NewSet(ProvideRouter)

// ProvideRouter 提供路由实例
func ProvideRouter(httpConf *http.Http, services *service.Services, repos *repo.Repositories, m *metrics.Metrics, sd *shutdown.Manager) *Router {
	return NewRouter(httpConf, services, repos, m, sd)
}
