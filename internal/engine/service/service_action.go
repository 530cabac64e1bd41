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

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/id"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"gorm.io/datatypes"
)

type ActionService struct {
	actions repo.IActionRepository
	members repo.IMemberRepository
	metrics *metrics.Metrics
	loc     *time.Location
}

func NewActionService(actions repo.IActionRepository, members repo.IMemberRepository, m *metrics.Metrics, loc *time.Location) *ActionService {
	if loc == nil {
		loc = time.Local
	}
	return &ActionService{actions: actions, members: members, metrics: m, loc: loc}
}

func (s *ActionService) filter(q *model.ActionQuery) (model.ActionFilter, error) {
	var f model.ActionFilter
	if q.ActionType != "" {
		t, err := model.ParseActionType(q.ActionType)
		if err != nil {
			return f, http.InvalidActionType
		}
		f.Type = t
	}
	if q.Result != "" {
		o, err := model.ParseOutcome(q.Result)
		if err != nil {
			return f, http.InvalidOutcome
		}
		f.Result = o
	}
	f.ManagerId = strings.TrimSpace(q.Manager)
	if q.StartDate != "" {
		start, err := parseDateTime(q.StartDate, s.loc, false)
		if err != nil {
			return f, err
		}
		f.Start = &start
	}
	if q.EndDate != "" {
		end, err := parseDateTime(q.EndDate, s.loc, true)
		if err != nil {
			return f, err
		}
		f.End = &end
	}
	return f, nil
}

// expand resolves manager and createdBy of every action. Deleted members resolve to null.
func (s *ActionService) expand(ctx context.Context, actions []model.Action) ([]model.ActionInfo, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(actions)*2)
	for _, a := range actions {
		for _, memberId := range []string{a.ManagerId, a.CreatedById} {
			if _, ok := seen[memberId]; ok || memberId == "" {
				continue
			}
			seen[memberId] = struct{}{}
			ids = append(ids, memberId)
		}
	}
	members, err := s.members.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.ActionInfo, 0, len(actions))
	for i := range actions {
		out = append(out, actions[i].Info(members))
	}
	return out, nil
}

func (s *ActionService) List(ctx context.Context, q *model.ActionQuery) ([]model.ActionInfo, error) {
	f, err := s.filter(q)
	if err != nil {
		return nil, err
	}
	actions, err := s.actions.List(ctx, f)
	if err != nil {
		log.Errorw("failed to list actions", "error", err)
		return nil, http.ListActionsFailed.WithCause(err)
	}
	infos, err := s.expand(ctx, actions)
	if err != nil {
		return nil, http.ListActionsFailed.WithCause(err)
	}
	return infos, nil
}

func (s *ActionService) Get(ctx context.Context, actionId string) (*model.ActionInfo, error) {
	a, err := s.actions.Get(ctx, actionId)
	if err != nil {
		return nil, storeErr(err, http.ListActionsFailed)
	}
	infos, err := s.expand(ctx, []model.Action{*a})
	if err != nil {
		return nil, http.ListActionsFailed.WithCause(err)
	}
	return &infos[0], nil
}

// Create records an action on behalf of caller and credits the reward to caller's profile.
// The insert stands even when the counter update fails; StatsSynced reports it.
func (s *ActionService) Create(ctx context.Context, caller *model.Member, req *model.CreateActionReq) (*model.CreateActionResp, error) {
	if err := validateReq(req); err != nil {
		return nil, err
	}
	actionType, err := model.ParseActionType(req.ActionType)
	if err != nil {
		return nil, http.InvalidActionType
	}
	outcome, err := model.ParseOutcome(req.Result)
	if err != nil {
		return nil, http.InvalidOutcome
	}
	name, ok := model.CatalogName(actionType, req.ActionName)
	if !ok {
		return nil, http.InvalidActionName
	}
	dateTime, err := parseDateTime(req.DateTime, s.loc, false)
	if err != nil {
		return nil, err
	}

	action := &model.Action{
		ActionId:     id.GetUlid(),
		ActionType:   actionType,
		ActionName:   name,
		DateTime:     dateTime,
		Result:       outcome,
		Participants: cleanParticipants(req.Participants),
		Observations: strings.TrimSpace(req.Observations),
		ManagerId:    caller.MemberId,
		CreatedById:  caller.MemberId,
	}
	if err = s.actions.Create(ctx, action); err != nil {
		log.Errorw("failed to create action", "memberId", caller.MemberId, "error", err)
		return nil, http.CreateActionFailed.WithCause(err)
	}

	xp := Reward(actionType, outcome)
	synced := true
	if err = s.members.ApplyStats(ctx, caller.MemberId, statDelta(outcome, xp)); err != nil {
		synced = false
		log.Errorw("action stored but profile counters not updated",
			"actionId", action.ActionId, "memberId", caller.MemberId, "xp", xp, "error", err)
		if s.metrics != nil {
			s.metrics.StatSyncFailed.Inc()
		}
	}
	if s.metrics != nil {
		s.metrics.ActionsCreated.WithLabelValues(string(actionType), string(outcome)).Inc()
		if synced {
			s.metrics.XPGranted.Add(float64(xp))
		}
	}

	return &model.CreateActionResp{
		ActionInfo:  action.Info(map[string]*model.Member{caller.MemberId: caller}),
		XpGained:    xp,
		StatsSynced: synced,
		Message:     fmt.Sprintf(http.MsgActionCreated, xp),
	}, nil
}

// Update applies a partial edit. Profile counters are never adjusted retroactively.
func (s *ActionService) Update(ctx context.Context, actionId string, req *model.UpdateActionReq) (*model.ActionInfo, error) {
	if err := validateReq(req); err != nil {
		return nil, err
	}
	current, err := s.actions.Get(ctx, actionId)
	if err != nil {
		return nil, storeErr(err, http.UpdateActionFailed)
	}

	fields := make(map[string]any)
	actionType := current.ActionType
	if req.ActionType != nil {
		if actionType, err = model.ParseActionType(*req.ActionType); err != nil {
			return nil, http.InvalidActionType
		}
		fields["action_type"] = actionType
	}
	switch {
	case req.ActionName != nil:
		name, ok := model.CatalogName(actionType, *req.ActionName)
		if !ok {
			return nil, http.InvalidActionName
		}
		fields["action_name"] = name
	case actionType != current.ActionType:
		// 类型变更时原名称必须仍属于新类型
		if _, ok := model.CatalogName(actionType, current.ActionName); !ok {
			return nil, http.InvalidActionName
		}
	}
	if req.Result != nil {
		outcome, err := model.ParseOutcome(*req.Result)
		if err != nil {
			return nil, http.InvalidOutcome
		}
		fields["result"] = outcome
	}
	if req.DateTime != nil {
		dateTime, err := parseDateTime(*req.DateTime, s.loc, false)
		if err != nil {
			return nil, err
		}
		fields["date_time"] = dateTime
	}
	if req.Participants != nil {
		fields["participants"] = cleanParticipants(*req.Participants)
	}
	if req.Observations != nil {
		fields["observations"] = strings.TrimSpace(*req.Observations)
	}

	updated, err := s.actions.Update(ctx, actionId, fields)
	if err != nil {
		log.Errorw("failed to update action", "actionId", actionId, "error", err)
		return nil, storeErr(err, http.UpdateActionFailed)
	}
	infos, err := s.expand(ctx, []model.Action{*updated})
	if err != nil {
		return nil, http.UpdateActionFailed.WithCause(err)
	}
	return &infos[0], nil
}

// Delete removes the record only; reputation already granted stays.
func (s *ActionService) Delete(ctx context.Context, actionId string) error {
	if err := s.actions.Delete(ctx, actionId); err != nil {
		return storeErr(err, http.DeleteActionFailed)
	}
	log.Infow("action deleted", "actionId", actionId)
	return nil
}

func (s *ActionService) Catalog() []model.CatalogEntry {
	return model.Catalog()
}

func cleanParticipants(in []string) datatypes.JSONSlice[string] {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
