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

	"github.com/go-arcade/opsboard/internal/engine/consts"
	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/pkg/cache"
	"github.com/go-arcade/opsboard/pkg/database"
	"gorm.io/gorm"
)

const SnapshotVersion = 1

// Snapshot is a full copy of the dashboard data, password hashes included.
type Snapshot struct {
	Version     int                `json:"version"`
	TakenAt     time.Time          `json:"takenAt"`
	Members     []model.Member     `json:"members"`
	Credentials []CredentialRecord `json:"credentials"`
	Actions     []model.Action     `json:"actions"`
}

type CredentialRecord struct {
	MemberId string `json:"memberId"`
	Password string `json:"password"`
}

type ISnapshotRepository interface {
	Dump(ctx context.Context) (*Snapshot, error)
	Restore(ctx context.Context, s *Snapshot) error
}

type SnapshotRepo struct {
	db database.IDatabase
	// profiles is only used to drop cached member profiles
	profiles *cache.CachedQuery[model.Member]
}

func NewSnapshotRepo(db database.IDatabase, c cache.ICache) ISnapshotRepository {
	return &SnapshotRepo{
		db:       db,
		profiles: cache.NewCachedQuery[model.Member](c, consts.MemberProfileKey, 0, nil),
	}
}

func (sr *SnapshotRepo) Dump(ctx context.Context) (*Snapshot, error) {
	s := &Snapshot{Version: SnapshotVersion, TakenAt: time.Now().UTC()}
	err := sr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id ASC").Find(&s.Members).Error; err != nil {
			return err
		}
		var creds []model.Credential
		if err := tx.Order("id ASC").Find(&creds).Error; err != nil {
			return err
		}
		s.Credentials = make([]CredentialRecord, 0, len(creds))
		for _, c := range creds {
			s.Credentials = append(s.Credentials, CredentialRecord{MemberId: c.MemberId, Password: c.Password})
		}
		return tx.Order("id ASC").Find(&s.Actions).Error
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Restore replaces every member, credential and action with the snapshot
// content in one transaction.
func (sr *SnapshotRepo) Restore(ctx context.Context, s *Snapshot) error {
	var stale []string
	err := sr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Member{}).Pluck("member_id", &stale).Error; err != nil {
			return err
		}

		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, table := range []any{&model.Action{}, &model.Credential{}, &model.Member{}} {
			if err := all.Delete(table).Error; err != nil {
				return err
			}
		}

		members := make([]model.Member, len(s.Members))
		for i, m := range s.Members {
			m.ID = 0
			members[i] = m
		}
		if len(members) > 0 {
			if err := tx.CreateInBatches(&members, 100).Error; err != nil {
				return err
			}
		}

		creds := make([]model.Credential, 0, len(s.Credentials))
		for _, c := range s.Credentials {
			creds = append(creds, model.Credential{MemberId: c.MemberId, Password: c.Password})
		}
		if len(creds) > 0 {
			if err := tx.CreateInBatches(&creds, 100).Error; err != nil {
				return err
			}
		}

		actions := make([]model.Action, len(s.Actions))
		for i, a := range s.Actions {
			a.ID = 0
			actions[i] = a
		}
		if len(actions) > 0 {
			return tx.CreateInBatches(&actions, 100).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, m := range s.Members {
		stale = append(stale, m.MemberId)
	}
	sr.profiles.Invalidate(ctx, stale...)
	return nil
}
