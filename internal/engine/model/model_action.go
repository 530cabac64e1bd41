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

	"gorm.io/datatypes"
)

/**
 * @file: model_action.go
 * @description: action model
 */

// Action is a logged operation. ManagerId and CreatedById reference Member.MemberId
// without a foreign key, so they may dangle after the member is deleted.
type Action struct {
	BaseModel
	ActionId     string                      `gorm:"column:action_id;size:36;uniqueIndex" json:"id"`
	ActionType   ActionType                  `gorm:"column:action_type;size:16;index" json:"actionType"`
	ActionName   string                      `gorm:"column:action_name;size:64" json:"actionName"`
	DateTime     time.Time                   `gorm:"column:date_time;index" json:"dateTime"`
	Result       Outcome                     `gorm:"column:result;size:16;index" json:"result"`
	Participants datatypes.JSONSlice[string] `gorm:"column:participants" json:"participants"`
	Observations string                      `gorm:"column:observations;type:text" json:"observations"`
	ManagerId    string                      `gorm:"column:manager_id;size:36;index" json:"managerId"`
	CreatedById  string                      `gorm:"column:created_by;size:36" json:"createdBy"`
}

func (Action) TableName() string {
	return "t_action"
}

// MemberRef is the expanded form of a member reference.
type MemberRef struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ActionInfo is an action in display form. Manager and CreatedBy are nil when
// the referenced member no longer exists.
type ActionInfo struct {
	LegacyId     string     `json:"_id"`
	Id           string     `json:"id"`
	ActionType   string     `json:"actionType"`
	ActionName   string     `json:"actionName"`
	DateTime     time.Time  `json:"dateTime"`
	Result       string     `json:"result"`
	Participants []string   `json:"participants"`
	Observations string     `json:"observations"`
	Manager      *MemberRef `json:"manager"`
	CreatedBy    *MemberRef `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Info renders a in display form, expanding references from members (keyed by MemberId).
func (a *Action) Info(members map[string]*Member) ActionInfo {
	participants := []string(a.Participants)
	if participants == nil {
		participants = []string{}
	}
	info := ActionInfo{
		LegacyId:     a.ActionId,
		Id:           a.ActionId,
		ActionType:   a.ActionType.Display(),
		ActionName:   a.ActionName,
		DateTime:     a.DateTime,
		Result:       a.Result.Display(),
		Participants: participants,
		Observations: a.Observations,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if m, ok := members[a.ManagerId]; ok {
		info.Manager = &MemberRef{Id: m.MemberId, Username: m.Username, Email: m.Email, Role: m.Role.Display()}
	}
	if m, ok := members[a.CreatedById]; ok {
		info.CreatedBy = &MemberRef{Id: m.MemberId, Username: m.Username}
	}
	return info
}

type CreateActionReq struct {
	ActionType   string   `json:"actionType" validate:"required"`
	ActionName   string   `json:"actionName" validate:"required,max=64"`
	DateTime     string   `json:"dateTime" validate:"required"`
	Participants []string `json:"participants" validate:"dive,max=64"`
	Result       string   `json:"result" validate:"required"`
	Observations string   `json:"observations" validate:"max=2000"`
}

type CreateActionResp struct {
	ActionInfo
	XpGained    int    `json:"xpGained"`
	StatsSynced bool   `json:"statsSynced"`
	Message     string `json:"message"`
}

// UpdateActionReq carries a partial update; nil fields are left alone.
type UpdateActionReq struct {
	ActionType   *string   `json:"actionType"`
	ActionName   *string   `json:"actionName" validate:"omitempty,max=64"`
	DateTime     *string   `json:"dateTime"`
	Participants *[]string `json:"participants"`
	Result       *string   `json:"result"`
	Observations *string   `json:"observations" validate:"omitempty,max=2000"`
}

// ActionFilter narrows Action listings. Zero values mean no constraint.
type ActionFilter struct {
	Type      ActionType
	Result    Outcome
	ManagerId string
	Start     *time.Time
	End       *time.Time
}

// ActionQuery is the raw query string of GET /api/actions.
type ActionQuery struct {
	ActionType string `query:"actionType"`
	Result     string `query:"result"`
	Manager    string `query:"manager"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}
