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
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/opsboard/internal/engine/consts"
	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/pkg/cache"
	"github.com/go-arcade/opsboard/pkg/database"
	"gorm.io/gorm"
)

type IMemberRepository interface {
	Create(ctx context.Context, m *model.Member, cred *model.Credential) error
	Get(ctx context.Context, memberId string) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	Top(ctx context.Context, limit int) ([]model.Member, error)
	FindByIds(ctx context.Context, memberIds []string) (map[string]*model.Member, error)
	Update(ctx context.Context, memberId string, fields map[string]any) (*model.Member, error)
	Delete(ctx context.Context, memberId string) error
	SetStatus(ctx context.Context, memberId string, status model.Status) error
	ApplyStats(ctx context.Context, memberId string, delta model.StatDelta) error
	Counts(ctx context.Context) (total int64, online int64, err error)
}

type MemberRepo struct {
	db      database.IDatabase
	profile *cache.CachedQuery[model.Member]
}

func NewMemberRepo(db database.IDatabase, c cache.ICache, ttl time.Duration) IMemberRepository {
	mr := &MemberRepo{db: db}
	mr.profile = cache.NewCachedQuery(c, consts.MemberProfileKey, ttl, mr.load)
	return mr
}

func (mr *MemberRepo) load(ctx context.Context, memberId string) (model.Member, error) {
	var m model.Member
	err := mr.db.Database().WithContext(ctx).Where("member_id = ?", memberId).First(&m).Error
	if err != nil {
		return m, notFound(err, ErrMemberNotFound)
	}
	return m, nil
}

// Create inserts the member and its credential in one transaction.
func (mr *MemberRepo) Create(ctx context.Context, m *model.Member, cred *model.Credential) error {
	return mr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := Count(tx.Model(&model.Member{}).
			Where("username = ? OR email = ?", m.Username, m.Email))
		if err != nil {
			return err
		}
		if exists > 0 {
			return ErrDuplicateMember
		}
		if err := tx.Create(m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateMember
			}
			return err
		}
		if cred == nil {
			return nil
		}
		cred.MemberId = m.MemberId
		return tx.Create(cred).Error
	})
}

func (mr *MemberRepo) Get(ctx context.Context, memberId string) (*model.Member, error) {
	m, err := mr.profile.Get(ctx, memberId)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MemberRepo) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	var m model.Member
	err := mr.db.Database().WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}
	return &m, nil
}

// List returns every member, highest reputation first, insertion order on ties.
func (mr *MemberRepo) List(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := mr.db.Database().WithContext(ctx).
		Order("reputation DESC").Order("id ASC").
		Find(&members).Error
	return members, err
}

func (mr *MemberRepo) Top(ctx context.Context, limit int) ([]model.Member, error) {
	var members []model.Member
	err := mr.db.Database().WithContext(ctx).
		Order("reputation DESC").Order("id ASC").
		Limit(limit).
		Find(&members).Error
	return members, err
}

func (mr *MemberRepo) FindByIds(ctx context.Context, memberIds []string) (map[string]*model.Member, error) {
	out := make(map[string]*model.Member, len(memberIds))
	if len(memberIds) == 0 {
		return out, nil
	}
	var members []model.Member
	if err := mr.db.Database().WithContext(ctx).Where("member_id IN ?", memberIds).Find(&members).Error; err != nil {
		return nil, err
	}
	for i := range members {
		out[members[i].MemberId] = &members[i]
	}
	return out, nil
}

func (mr *MemberRepo) Update(ctx context.Context, memberId string, fields map[string]any) (*model.Member, error) {
	var m model.Member
	err := mr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", memberId).First(&m).Error; err != nil {
			return notFound(err, ErrMemberNotFound)
		}
		if len(fields) > 0 {
			if err := tx.Model(&m).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Where("member_id = ?", memberId).First(&m).Error
	})
	if err != nil {
		return nil, err
	}
	mr.profile.Invalidate(ctx, memberId)
	return &m, nil
}

// Delete removes the member and its credential. Actions referencing the
// member are left untouched.
func (mr *MemberRepo) Delete(ctx context.Context, memberId string) error {
	err := mr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("member_id = ?", memberId).Delete(&model.Member{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMemberNotFound
		}
		return tx.Where("member_id = ?", memberId).Delete(&model.Credential{}).Error
	})
	if err != nil {
		return err
	}
	mr.profile.Invalidate(ctx, memberId)
	return nil
}

func (mr *MemberRepo) SetStatus(ctx context.Context, memberId string, status model.Status) error {
	res := mr.db.Database().WithContext(ctx).Model(&model.Member{}).
		Where("member_id = ?", memberId).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	mr.profile.Invalidate(ctx, memberId)
	return nil
}

// ApplyStats increments the counters in a single UPDATE so concurrent
// writers for the same member never lose an increment.
func (mr *MemberRepo) ApplyStats(ctx context.Context, memberId string, d model.StatDelta) error {
	res := mr.db.Database().WithContext(ctx).Model(&model.Member{}).
		Where("member_id = ?", memberId).
		Updates(map[string]any{
			"actions_participated": gorm.Expr("actions_participated + ?", d.ActionsParticipated),
			"victories":            gorm.Expr("victories + ?", d.Victories),
			"defeats":              gorm.Expr("defeats + ?", d.Defeats),
			"reputation":           gorm.Expr("reputation + ?", d.Reputation),
		})
	if res.Error != nil {
		return fmt.Errorf("apply stats: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	mr.profile.Invalidate(ctx, memberId)
	return nil
}

func (mr *MemberRepo) Counts(ctx context.Context) (int64, int64, error) {
	db := mr.db.Database().WithContext(ctx)
	total, err := Count(db.Model(&model.Member{}))
	if err != nil {
		return 0, 0, err
	}
	online, err := Count(db.Model(&model.Member{}).Where("status = ?", model.StatusOnline))
	if err != nil {
		return 0, 0, err
	}
	return total, online, nil
}
