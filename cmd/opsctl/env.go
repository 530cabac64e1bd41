package main

import (
	"io"

	"github.com/go-arcade/opsboard/internal/engine/conf"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/internal/engine/service"
	"github.com/go-arcade/opsboard/pkg/cache"
	"github.com/go-arcade/opsboard/pkg/database"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/go-arcade/opsboard/pkg/metrics"
)

// env is the store stack shared by every subcommand.
type env struct {
	conf     conf.AppConfig
	db       database.IDatabase
	repos    *repo.Repositories
	services *service.Services
}

func openEnv(confFile string) (*env, func(), error) {
	appConf, err := conf.LoadConfigFile(confFile, false)
	if err != nil {
		return nil, nil, err
	}
	if err := log.Init(&appConf.Log); err != nil {
		return nil, nil, err
	}

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, nil, err
	}
	c, err := cache.NewCache(appConf.Redis)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	closeAll := func() {
		if closer, ok := c.(io.Closer); ok {
			_ = closer.Close()
		}
		_ = db.Close()
		_ = log.Sync()
	}

	repos, err := repo.ProvideRepositories(db, c, &appConf.Redis)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return &env{
		conf:     appConf,
		db:       db,
		repos:    repos,
		services: service.NewServices(repos, &appConf.Http, metrics.NewMetrics()),
	}, closeAll, nil
}
