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
	"gorm.io/gorm/clause"
)

type ICredentialRepository interface {
	GetPassword(ctx context.Context, memberId string) (string, error)
	SetPassword(ctx context.Context, memberId, hash string) error
}

type CredentialRepo struct {
	db database.IDatabase
}

func NewCredentialRepo(db database.IDatabase) ICredentialRepository {
	return &CredentialRepo{db: db}
}

func (cr *CredentialRepo) GetPassword(ctx context.Context, memberId string) (string, error) {
	var c model.Credential
	err := cr.db.Database().WithContext(ctx).Select("password").Where("member_id = ?", memberId).First(&c).Error
	if err != nil {
		return "", notFound(err, ErrMemberNotFound)
	}
	return c.Password, nil
}

func (cr *CredentialRepo) SetPassword(ctx context.Context, memberId, hash string) error {
	return cr.db.Database().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"password", "updated_at"}),
	}).Create(&model.Credential{MemberId: memberId, Password: hash}).Error
}
