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

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/pkg/database"
	"gorm.io/gorm"
)

type IActionRepository interface {
	Create(ctx context.Context, a *model.Action) error
	Get(ctx context.Context, actionId string) (*model.Action, error)
	List(ctx context.Context, filter model.ActionFilter) ([]model.Action, error)
	Latest(ctx context.Context) (*model.Action, error)
	Update(ctx context.Context, actionId string, fields map[string]any) (*model.Action, error)
	Delete(ctx context.Context, actionId string) error
}

type ActionRepo struct {
	db database.IDatabase
}

func NewActionRepo(db database.IDatabase) IActionRepository {
	return &ActionRepo{db: db}
}

func (ar *ActionRepo) Create(ctx context.Context, a *model.Action) error {
	return ar.db.Database().WithContext(ctx).Create(a).Error
}

func (ar *ActionRepo) Get(ctx context.Context, actionId string) (*model.Action, error) {
	var a model.Action
	err := ar.db.Database().WithContext(ctx).Where("action_id = ?", actionId).First(&a).Error
	if err != nil {
		return nil, notFound(err, ErrActionNotFound)
	}
	return &a, nil
}

func filterScope(f model.ActionFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Type != "" {
			db = db.Where("action_type = ?", f.Type)
		}
		if f.Result != "" {
			db = db.Where("result = ?", f.Result)
		}
		if f.ManagerId != "" {
			db = db.Where("manager_id = ?", f.ManagerId)
		}
		if f.Start != nil {
			db = db.Where("date_time >= ?", *f.Start)
		}
		if f.End != nil {
			db = db.Where("date_time <= ?", *f.End)
		}
		return db
	}
}

// List returns the matching actions, latest scheduled first.
func (ar *ActionRepo) List(ctx context.Context, filter model.ActionFilter) ([]model.Action, error) {
	var actions []model.Action
	err := ar.db.Database().WithContext(ctx).
		Scopes(filterScope(filter)).
		Order("date_time DESC").Order("id DESC").
		Find(&actions).Error
	return actions, err
}

// Latest returns the most recently recorded action, nil when there is none.
func (ar *ActionRepo) Latest(ctx context.Context) (*model.Action, error) {
	var actions []model.Action
	err := ar.db.Database().WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(1).
		Find(&actions).Error
	if err != nil || len(actions) == 0 {
		return nil, err
	}
	return &actions[0], nil
}

func (ar *ActionRepo) Update(ctx context.Context, actionId string, fields map[string]any) (*model.Action, error) {
	var a model.Action
	err := ar.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("action_id = ?", actionId).First(&a).Error; err != nil {
			return notFound(err, ErrActionNotFound)
		}
		if len(fields) > 0 {
			if err := tx.Model(&a).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Where("action_id = ?", actionId).First(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (ar *ActionRepo) Delete(ctx context.Context, actionId string) error {
	res := ar.db.Database().WithContext(ctx).Where("action_id = ?", actionId).Delete(&model.Action{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrActionNotFound
	}
	return nil
}
