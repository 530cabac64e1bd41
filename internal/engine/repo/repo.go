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
	"errors"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/pkg/cache"
	"github.com/go-arcade/opsboard/pkg/database"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrActionNotFound  = errors.New("action not found")
	ErrDuplicateMember = errors.New("member already exists")
)

type Repositories struct {
	Member     IMemberRepository
	Credential ICredentialRepository
	Action     IActionRepository
	Statistics IStatisticsRepository
	Snapshot   ISnapshotRepository
}

func NewRepositories(db database.IDatabase, cache cache.ICache, conf cache.Redis) *Repositories {
	return &Repositories{
		Member:     NewMemberRepo(db, cache, conf.ProfileTTL),
		Credential: NewCredentialRepo(db),
		Action:     NewActionRepo(db),
		Statistics: NewStatisticsRepo(db),
		Snapshot:   NewSnapshotRepo(db, cache),
	}
}

// Migrate creates or updates every table. Foreign keys are never created, so
// actions keep their member references after the member is deleted.
func Migrate(db database.IDatabase) error {
	return db.Database().AutoMigrate(&model.Member{}, &model.Credential{}, &model.Action{})
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
