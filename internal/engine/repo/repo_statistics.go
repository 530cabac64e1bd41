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

package repo

import (
	"context"
	"time"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/pkg/database"
)

type IStatisticsRepository interface {
	// CountByType returns one row per size class present in the store
	CountByType(ctx context.Context) ([]model.OutcomeCount, error)
	// OutcomesSince returns (date_time, result) of every action scheduled at or after since
	OutcomesSince(ctx context.Context, since time.Time) ([]DatedOutcome, error)
}

type DatedOutcome struct {
	DateTime time.Time     `gorm:"column:date_time"`
	Result   model.Outcome `gorm:"column:result"`
}

type StatisticsRepo struct {
	db database.IDatabase
}

func NewStatisticsRepo(db database.IDatabase) IStatisticsRepository {
	return &StatisticsRepo{db: db}
}

func (sr *StatisticsRepo) CountByType(ctx context.Context) ([]model.OutcomeCount, error) {
	var rows []model.OutcomeCount
	err := sr.db.Database().WithContext(ctx).Model(&model.Action{}).
		Select(
			"action_type AS type, COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN result = ? THEN 1 ELSE 0 END), 0) AS victories, "+
				"COALESCE(SUM(CASE WHEN result = ? THEN 1 ELSE 0 END), 0) AS defeats",
			model.OutcomeVictory, model.OutcomeDefeat,
		).
		Group("action_type").
		Order("action_type").
		Scan(&rows).Error
	return rows, err
}

func (sr *StatisticsRepo) OutcomesSince(ctx context.Context, since time.Time) ([]DatedOutcome, error) {
	var rows []DatedOutcome
	err := sr.db.Database().WithContext(ctx).Model(&model.Action{}).
		Select("date_time, result").
		Where("date_time >= ?", since).
		Order("date_time ASC").
		Scan(&rows).Error
	return rows, err
}
