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

package conf

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/opsboard/pkg/cache"
	"github.com/go-arcade/opsboard/pkg/database"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/go-arcade/opsboard/pkg/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

/**
 * @file: conf.go
 * @description: application configuration
 */

const envPrefix = "OPSBOARD"

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Storage  storage.Storage
}

var (
	cfg  AppConfig
	once sync.Once
)

// NewConf loads the configuration once per process and panics on failure.
func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile, true)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads confFile (toml), applies OPSBOARD_* env overrides and
// fills defaults. With watch set, edits to the file re-apply the log config.
func LoadConfigFile(confFile string, watch bool) (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if confFile != "" {
		v.SetConfigFile(confFile)
	} else {
		v.AddConfigPath("./conf.d")
		v.SetConfigName("config")
	}
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if confFile != "" || !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return AppConfig{}, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	c.Http.SetDefaults()
	c.Database.SetDefaults()

	if c.Http.Auth.SecretKey == "" {
		return AppConfig{}, errors.New("http.auth.secretKey is required")
	}

	if watch && v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Infow("configuration changed, reloading log settings", "file", e.Name)
			var next AppConfig
			if err := v.Unmarshal(&next); err != nil {
				log.Errorw("failed to unmarshal configuration file", "error", err)
				return
			}
			if err := log.Init(&next.Log); err != nil {
				log.Errorw("failed to apply log configuration", "error", err)
			}
		})
		v.WatchConfig()
	}

	return c, nil
}

func setDefaults(v *viper.Viper) {
	d := log.SetDefaults()
	v.SetDefault("log.output", d.Output)
	v.SetDefault("log.path", d.Path)
	v.SetDefault("log.filename", d.Filename)
	v.SetDefault("log.level", d.Level)
	v.SetDefault("log.keepHours", d.KeepHours)
	v.SetDefault("log.rotateSize", d.RotateSize)
	v.SetDefault("log.rotateNum", d.RotateNum)

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3001)
	v.SetDefault("http.accessLog", true)
	v.SetDefault("http.exposeMetrics", false)
	v.SetDefault("http.pprof", false)
	v.SetDefault("http.shutdownTimeout", 10)
	v.SetDefault("http.allowOrigins", "*")
	v.SetDefault("http.timeZone", "")
	v.SetDefault("http.auth.secretKey", "")
	v.SetDefault("http.auth.accessExpire", http.DefaultAccessExpire)

	v.SetDefault("database.type", database.TypeSQLite)
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "")
	v.SetDefault("database.path", "opsboard.db")
	v.SetDefault("database.output", false)

	v.SetDefault("redis.mode", cache.ModeNone)
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.profileTTL", "10m")

	v.SetDefault("storage.provider", storage.StorageS3)
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.accessKey", "")
	v.SetDefault("storage.secretKey", "")
	v.SetDefault("storage.basePath", "opsboard/backups")
}
