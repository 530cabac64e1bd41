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
	"fmt"
	"net/url"
	"time"
)

const (
	dataTablePrefix = "t_"

	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
	TypeSQLite   = "sqlite"
)

type SourceConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type Database struct {
	Type     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the sqlite file, ":memory:" keeps everything in process
	Path string
	// Replicas enables read-write separation through dbresolver when not empty
	Replicas []SourceConfig

	OutPut       bool `mapstructure:"output"`
	MaxOpenConns int  `mapstructure:"maxOpenConns"`
	MaxIdleConns int  `mapstructure:"maxIdleConns"`
	MaxLifetime  int  `mapstructure:"maxLifeTime"`
	MaxIdleTime  int  `mapstructure:"maxIdleTime"`
}

func (d *Database) SetDefaults() {
	if d.Type == "" {
		d.Type = TypeSQLite
	}
	if d.Type == TypeSQLite && d.Path == "" {
		d.Path = "opsboard.db"
	}
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = 20
	}
	if d.MaxIdleConns <= 0 {
		d.MaxIdleConns = 5
	}
}

func GetConnMaxLifetime(maxLifetime int) time.Duration {
	if maxLifetime > 0 {
		return time.Duration(maxLifetime) * time.Second
	}
	return 300 * time.Second // Default 5 minutes
}

func GetConnMaxIdleTime(maxIdleTime int) time.Duration {
	if maxIdleTime > 0 {
		return time.Duration(maxIdleTime) * time.Second
	}
	return 60 * time.Second // Default 1 minute
}

func buildMySQLDSN(c SourceConfig) string {
	port := c.Port
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, port, c.DBName)
}

func buildPostgresDSN(c SourceConfig, sslMode string) string {
	port := c.Port
	if port == "" {
		port = "5432"
	}
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + port,
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

func (d *Database) primary() SourceConfig {
	return SourceConfig{Host: d.Host, Port: d.Port, User: d.User, Password: d.Password, DBName: d.DBName}
}
