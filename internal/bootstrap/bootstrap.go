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

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/opsboard/internal/engine/conf"
	"github.com/go-arcade/opsboard/internal/engine/router"
	"github.com/go-arcade/opsboard/pkg/cache"
	"github.com/go-arcade/opsboard/pkg/database"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/go-arcade/opsboard/pkg/retry"
	"github.com/go-arcade/opsboard/pkg/safe"
	"github.com/go-arcade/opsboard/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// connectAttempts bounds the wait for the database at boot
const connectAttempts = 5

type App struct {
	HttpApp  *fiber.App
	Shutdown *shutdown.Manager
	Logger   *zap.Logger
	AppConf  *conf.AppConfig
}

// InitAppFunc init app function type, generated by wire
type InitAppFunc func(appConf *conf.AppConfig, logger *zap.Logger, db database.IDatabase, cache cache.ICache) (*App, func(), error)

func NewApp(rt *router.Router, sd *shutdown.Manager, logger *zap.Logger, appConf *conf.AppConfig) (*App, func(), error) {
	httpApp := rt.Router()

	cleanup := func() {
		if err := log.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}

	app := &App{
		HttpApp:  httpApp,
		Shutdown: sd,
		Logger:   logger,
		AppConf:  appConf,
	}
	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	// load config
	appConf := conf.NewConf(configFile)

	// init logger
	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, nil, err
	}

	// init database, cache
	var db database.IDatabase
	err = retry.Do(context.Background(), func(context.Context) error {
		var openErr error
		db, openErr = database.NewDatabase(appConf.Database)
		return openErr
	},
		retry.WithMaxAttempts(connectAttempts),
		retry.WithBackoff(retry.Exponential(time.Second, 10*time.Second)),
		retry.OnRetry(func(attempt int, err error, wait time.Duration) {
			logger.Warn("database not ready, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	c, err := cache.NewCache(appConf.Redis)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if c == nil {
		logger.Info("profile cache disabled")
	}

	// wire build App
	app, cleanup, err := initApp(&appConf, logger, db, c)
	if err != nil {
		closeResources(logger, db, c)
		return nil, nil, err
	}

	return app, func() {
		closeResources(logger, db, c)
		cleanup()
	}, nil
}

func closeResources(logger *zap.Logger, db database.IDatabase, c cache.ICache) {
	if closer, ok := c.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close cache", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", zap.Error(err))
	}
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger
	httpConf := app.AppConf.Http

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// start HTTP server (async)
	safe.Go("http-listener", func() {
		addr := fmt.Sprintf("%s:%d", httpConf.Host, httpConf.Port)
		logger.Sugar().Infow("HTTP listener started",
			"address", addr,
		)
		if err := app.HttpApp.Listen(addr); err != nil {
			logger.Sugar().Errorw("HTTP listener failed",
				"address", addr,
				"error", err,
			)
		}
	})

	// wait for exit signal
	sig := <-quit
	logger.Sugar().Infof("Received signal: %v, shutting down gracefully...", sig)

	// /health reports draining from here on
	app.Shutdown.Begin()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(httpConf.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Sugar().Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	// close database, cache and flush logs
	cleanup()

	logger.Info("Server shutdown complete")
}
