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

package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/opsboard/pkg/log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

type IDatabase interface {
	// Database returns the underlying *gorm.DB
	Database() *gorm.DB
	// Close releases the connection pool
	Close() error
}

type GormDB struct {
	db *gorm.DB
}

func NewGormDB(db *gorm.DB) IDatabase {
	return &GormDB{db: db}
}

func (g *GormDB) Database() *gorm.DB {
	return g.db
}

func (g *GormDB) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewDatabase opens the configured store, tunes the pool and pings it.
func NewDatabase(cfg Database) (IDatabase, error) {
	cfg.SetDefaults()

	dialector, err := dialectorFor(cfg.Type, cfg.primary(), cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig(cfg.OutPut))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", cfg.Type, err)
	}

	if len(cfg.Replicas) > 0 {
		if cfg.Type == TypeSQLite {
			return nil, errors.New("replicas are not supported for sqlite")
		}
		replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
		for _, r := range cfg.Replicas {
			if r.Host == "" || r.User == "" || r.DBName == "" {
				return nil, fmt.Errorf("incomplete replica config: host, user, and dbname are required")
			}
			d, err := dialectorFor(cfg.Type, r, cfg)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, d)
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas:          replicas,
			TraceResolverMode: cfg.OutPut,
		}).
			SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime)).
			SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime)).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetMaxOpenConns(cfg.MaxOpenConns))
		if err != nil {
			return nil, fmt.Errorf("failed to register DBResolver plugin: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB handle: %w", err)
	}

	p := poolFor(cfg)
	sqlDB.SetMaxOpenConns(p.maxOpen)
	sqlDB.SetMaxIdleConns(p.maxIdle)
	sqlDB.SetConnMaxLifetime(p.lifetime)
	sqlDB.SetConnMaxIdleTime(p.idleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infow("database connected successfully", "type", cfg.Type, "replicas", len(cfg.Replicas))
	return NewGormDB(db), nil
}

// pool holds the database/sql pool limits applied after connect.
type pool struct {
	maxOpen, maxIdle   int
	lifetime, idleTime time.Duration
}

func poolFor(cfg Database) pool {
	if cfg.Type == TypeSQLite {
		// an in-memory database lives and dies with its only connection, so it is never recycled
		return pool{maxOpen: 1, maxIdle: 1}
	}
	return pool{
		maxOpen:  cfg.MaxOpenConns,
		maxIdle:  cfg.MaxIdleConns,
		lifetime: GetConnMaxLifetime(cfg.MaxLifetime),
		idleTime: GetConnMaxIdleTime(cfg.MaxIdleTime),
	}
}

func dialectorFor(typ string, src SourceConfig, cfg Database) (gorm.Dialector, error) {
	switch typ {
	case TypePostgres:
		return postgres.Open(buildPostgresDSN(src, cfg.SSLMode)), nil
	case TypeMySQL:
		return mysql.Open(buildMySQLDSN(src)), nil
	case TypeSQLite:
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", typ)
	}
}

func gormConfig(output bool) *gorm.Config {
	var l gormlogger.Interface = gormlogger.Default.LogMode(gormlogger.Silent)
	if output {
		l = NewGormLogger(gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Info,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}, gormlogger.Info, log.GetLogger().Desugar())
	}
	return &gorm.Config{
		Logger: l,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
