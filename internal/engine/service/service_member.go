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
	"strings"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/log"
)

const (
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

type MemberService struct {
	members repo.IMemberRepository
}

func NewMemberService(members repo.IMemberRepository) *MemberService {
	return &MemberService{members: members}
}

func infos(members []model.Member) []model.MemberInfo {
	out := make([]model.MemberInfo, 0, len(members))
	for i := range members {
		out = append(out, members[i].Info())
	}
	return out
}

// List returns every member, best reputation first.
func (s *MemberService) List(ctx context.Context) ([]model.MemberInfo, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		log.Errorw("failed to list members", "error", err)
		return nil, http.ListMembersFailed.WithCause(err)
	}
	return infos(members), nil
}

func (s *MemberService) Get(ctx context.Context, memberId string) (*model.MemberInfo, error) {
	m, err := s.members.Get(ctx, memberId)
	if err != nil {
		return nil, storeErr(err, http.ListMembersFailed)
	}
	info := m.Info()
	return &info, nil
}

// Update is the administrative override: role, rank and reputation are written as given.
func (s *MemberService) Update(ctx context.Context, memberId string, req *model.UpdateMemberReq) (*model.MemberInfo, error) {
	if err := validateReq(req); err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			return nil, http.InvalidRole
		}
		fields["role"] = role
	}
	if req.Rank != nil {
		fields["rank"] = strings.TrimSpace(*req.Rank)
	}
	if req.Reputation != nil {
		fields["reputation"] = *req.Reputation
	}

	m, err := s.members.Update(ctx, memberId, fields)
	if err != nil {
		log.Errorw("failed to update member", "memberId", memberId, "error", err)
		return nil, storeErr(err, http.UpdateMemberFailed)
	}
	info := m.Info()
	return &info, nil
}

// Delete removes the profile and its credential. Actions naming the member keep the dangling id.
func (s *MemberService) Delete(ctx context.Context, memberId string) error {
	if err := s.members.Delete(ctx, memberId); err != nil {
		return storeErr(err, http.DeleteMemberFailed)
	}
	log.Infow("member deleted", "memberId", memberId)
	return nil
}

// Top returns the best members by reputation; ties keep registration order.
func (s *MemberService) Top(ctx context.Context, limit int) ([]model.MemberInfo, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		limit = MaxTopLimit
	}
	members, err := s.members.Top(ctx, limit)
	if err != nil {
		return nil, http.ListMembersFailed.WithCause(err)
	}
	return infos(members), nil
}
