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

package model

import (
	"time"
)

/**
 * @file: model_member.go
 * @description: member profile and credential models
 */

const DefaultRank = "Recruta"

// Ranks is the ladder of display-only rank labels, lowest first.
var Ranks = []string{
	"Recruta", "Soldado", "Cabo", "Sargento", "Tenente",
	"Capitão", "Major", "Coronel", "General", "Lider",
}

type Member struct {
	BaseModel
	MemberId            string `gorm:"column:member_id;size:36;uniqueIndex" json:"id"`
	Username            string `gorm:"column:username;size:64;uniqueIndex" json:"username"`
	Email               string `gorm:"column:email;size:128;uniqueIndex" json:"email"`
	Role                Role   `gorm:"column:role;size:16;index" json:"role"`
	Rank                string `gorm:"column:rank;size:32" json:"rank"`
	Status              Status `gorm:"column:status;size:16" json:"status"`
	Avatar              string `gorm:"column:avatar" json:"avatar"`
	ActionsParticipated int64  `gorm:"column:actions_participated;default:0" json:"actionsParticipated"`
	Victories           int64  `gorm:"column:victories;default:0" json:"victories"`
	Defeats             int64  `gorm:"column:defeats;default:0" json:"defeats"`
	Reputation          int64  `gorm:"column:reputation;default:0;index" json:"reputation"`
}

func (Member) TableName() string {
	return "t_member"
}

// Credential holds the password hash of a member, keyed by member id.
type Credential struct {
	BaseModel
	MemberId string `gorm:"column:member_id;size:36;uniqueIndex" json:"-"`
	Password string `gorm:"column:password" json:"-"`
}

func (Credential) TableName() string {
	return "t_credential"
}

type RegisterReq struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=128"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty"`
}

type RegisterResp struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResp struct {
	Id         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Rank       string `json:"rank"`
	Reputation int64  `json:"reputation"`
	Token      string `json:"token"`
}

// MemberInfo is a member in display form.
type MemberInfo struct {
	LegacyId            string    `json:"_id"`
	Id                  string    `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	Role                string    `json:"role"`
	Rank                string    `json:"rank"`
	Status              string    `json:"status"`
	Avatar              string    `json:"avatar,omitempty"`
	ActionsParticipated int64     `json:"actionsParticipated"`
	Victories           int64     `json:"victories"`
	Defeats             int64     `json:"defeats"`
	Reputation          int64     `json:"reputation"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (m *Member) Info() MemberInfo {
	return MemberInfo{
		LegacyId:            m.MemberId,
		Id:                  m.MemberId,
		Username:            m.Username,
		Email:               m.Email,
		Role:                m.Role.Display(),
		Rank:                m.Rank,
		Status:              m.Status.Display(),
		Avatar:              m.Avatar,
		ActionsParticipated: m.ActionsParticipated,
		Victories:           m.Victories,
		Defeats:             m.Defeats,
		Reputation:          m.Reputation,
		CreatedAt:           m.CreatedAt,
	}
}

// UpdateMemberReq is the administrative override; nil fields are left alone.
type UpdateMemberReq struct {
	Role       *string `json:"role"`
	Rank       *string `json:"rank" validate:"omitempty,max=32"`
	Reputation *int64  `json:"reputation"`
}

// StatDelta is the increment applied to a member's counters.
type StatDelta struct {
	ActionsParticipated int64
	Victories           int64
	Defeats             int64
	Reputation          int64
}
