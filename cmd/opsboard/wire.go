//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-arcade/opsboard/internal/bootstrap"
	"github.com/go-arcade/opsboard/internal/engine/conf"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/internal/engine/router"
	"github.com/go-arcade/opsboard/internal/engine/service"
	"github.com/go-arcade/opsboard/pkg/cache"
	"github.com/go-arcade/opsboard/pkg/database"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"github.com/go-arcade/opsboard/pkg/shutdown"
	"github.com/google/wire"
	"go.uber.org/zap"
)

func initApp(appConf *conf.AppConfig, logger *zap.Logger, db database.IDatabase, c cache.ICache) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		conf.ProviderSet,
		// 指标
		metrics.ProviderSet,
		shutdown.ProviderSet,
		// 仓储层
		repo.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
