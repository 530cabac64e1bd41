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
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

/**
 * @file: gorm_logger.go
 * @description: gorm statements routed into zap
 */

type GormLogger struct {
	Config logger.Config
	Level  logger.LogLevel
	log    *zap.SugaredLogger
}

func NewGormLogger(config logger.Config, logLevel logger.LogLevel, zapLogger *zap.Logger) *GormLogger {
	return &GormLogger{
		Config: config,
		Level:  logLevel,
		log:    zapLogger.WithOptions(zap.AddCallerSkip(2)).Sugar(),
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	n := *l
	n.Level = level
	return &n
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.Level < logger.Info {
		return
	}
	l.log.Infof(msg, data...)
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.Level < logger.Warn {
		return
	}
	l.log.Warnf(msg, data...)
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.Level < logger.Error {
		return
	}
	l.log.Errorf(msg, data...)
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin).Seconds()
	sql, rows := fc()

	switch {
	case err != nil && l.Level >= logger.Error && (!errors.Is(err, logger.ErrRecordNotFound) || !l.Config.IgnoreRecordNotFoundError):
		l.log.Errorf("`%s` [rows: %d, elapsed: %.5f], err: %v", sql, rows, elapsed, err)
	case l.Config.SlowThreshold != 0 && elapsed > l.Config.SlowThreshold.Seconds() && l.Level >= logger.Warn:
		l.log.Warnf("`%s` [rows: %d, elapsed: %.5f] slow sql", sql, rows, elapsed)
	case l.Level >= logger.Info:
		l.log.Debugf("`%s` [rows: %d, elapsed: %.5f]", sql, rows, elapsed)
	}
}
