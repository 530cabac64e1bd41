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
	"errors"
	"strings"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/http/jwt"
	"github.com/go-arcade/opsboard/pkg/id"
	"github.com/go-arcade/opsboard/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	members    repo.IMemberRepository
	creds      repo.ICredentialRepository
	auth       http.Auth
	bcryptCost int
}

func NewAuthService(members repo.IMemberRepository, creds repo.ICredentialRepository, auth http.Auth) *AuthService {
	if auth.AccessExpire <= 0 {
		auth.AccessExpire = http.DefaultAccessExpire
	}
	return &AuthService{
		members:    members,
		creds:      creds,
		auth:       auth,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (as *AuthService) Register(ctx context.Context, req *model.RegisterReq) (*model.RegisterResp, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateReq(req); err != nil {
		return nil, err
	}

	role := model.RoleMember
	if req.Role != "" {
		r, err := model.ParseRole(req.Role)
		if err != nil {
			return nil, http.InvalidRole
		}
		role = r
	}

	hash, err := getPassword(req.Password, as.bcryptCost)
	if err != nil {
		log.Errorw("failed to hash password", "email", req.Email, "error", err)
		return nil, http.RegisterFailed.WithCause(err)
	}

	member := &model.Member{
		MemberId: id.GetUUID(),
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
		Rank:     model.DefaultRank,
		Status:   model.StatusOffline,
	}
	if err = as.members.Create(ctx, member, &model.Credential{Password: hash}); err != nil {
		if errors.Is(err, repo.ErrDuplicateMember) {
			return nil, http.UserAlreadyExist
		}
		log.Errorw("failed to register member", "email", req.Email, "error", err)
		return nil, http.RegisterFailed.WithCause(err)
	}

	token, err := jwt.GenToken(member.MemberId, []byte(as.auth.SecretKey), as.auth.AccessExpire)
	if err != nil {
		log.Errorw("failed to generate token", "memberId", member.MemberId, "error", err)
		return nil, http.RegisterFailed.WithCause(err)
	}
	log.Infow("member registered", "memberId", member.MemberId, "role", member.Role)

	return &model.RegisterResp{
		Id:       member.MemberId,
		Username: member.Username,
		Email:    member.Email,
		Role:     member.Role.Display(),
		Token:    token,
	}, nil
}

func (as *AuthService) Login(ctx context.Context, req *model.LoginReq) (*model.LoginResp, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateReq(req); err != nil {
		return nil, err
	}

	member, err := as.members.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrMemberNotFound) {
			return nil, http.InvalidCredentials
		}
		log.Errorw("login failed", "email", req.Email, "error", err)
		return nil, http.LoginFailed.WithCause(err)
	}

	hash, err := as.creds.GetPassword(ctx, member.MemberId)
	if err != nil {
		if errors.Is(err, repo.ErrMemberNotFound) {
			return nil, http.InvalidCredentials
		}
		return nil, http.LoginFailed.WithCause(err)
	}
	// compare stored password hash with provided password
	if !comparePassword(hash, req.Password) {
		return nil, http.InvalidCredentials
	}

	// 登录成功后标记为在线
	if err = as.members.SetStatus(ctx, member.MemberId, model.StatusOnline); err != nil {
		if errors.Is(err, repo.ErrMemberNotFound) {
			return nil, http.ProfileNotFound
		}
		log.Errorw("failed to mark member online", "memberId", member.MemberId, "error", err)
		return nil, http.LoginFailed.WithCause(err)
	}

	token, err := jwt.GenToken(member.MemberId, []byte(as.auth.SecretKey), as.auth.AccessExpire)
	if err != nil {
		log.Errorw("failed to generate token", "memberId", member.MemberId, "error", err)
		return nil, http.LoginFailed.WithCause(err)
	}

	return &model.LoginResp{
		Id:         member.MemberId,
		Username:   member.Username,
		Email:      member.Email,
		Role:       member.Role.Display(),
		Rank:       member.Rank,
		Reputation: member.Reputation,
		Token:      token,
	}, nil
}

// Me re-reads the caller so counters reflect writes made earlier in the same session.
func (as *AuthService) Me(ctx context.Context, memberId string) (*model.MemberInfo, error) {
	member, err := as.members.Get(ctx, memberId)
	if err != nil {
		if errors.Is(err, repo.ErrMemberNotFound) {
			return nil, http.MemberNotFoundForToken
		}
		return nil, http.ProfileFailed.WithCause(err)
	}
	info := member.Info()
	return &info, nil
}

func (as *AuthService) Logout(ctx context.Context, memberId string) error {
	if err := as.members.SetStatus(ctx, memberId, model.StatusOffline); err != nil {
		if errors.Is(err, repo.ErrMemberNotFound) {
			return http.MemberNotFoundForToken
		}
		log.Errorw("failed to mark member offline", "memberId", memberId, "error", err)
		return http.LogoutFailed.WithCause(err)
	}
	return nil
}

// ResetPassword overwrites the stored credential of a member.
func (as *AuthService) ResetPassword(ctx context.Context, memberId, password string) error {
	if _, err := as.members.Get(ctx, memberId); err != nil {
		return storeErr(err, http.InternalError)
	}
	hash, err := getPassword(password, as.bcryptCost)
	if err != nil {
		return http.InternalError.WithCause(err)
	}
	return as.creds.SetPassword(ctx, memberId, hash)
}

// IssueToken signs a token for an existing member without checking a password.
func (as *AuthService) IssueToken(ctx context.Context, memberId string) (string, error) {
	if _, err := as.members.Get(ctx, memberId); err != nil {
		return "", storeErr(err, http.InternalError)
	}
	return jwt.GenToken(memberId, []byte(as.auth.SecretKey), as.auth.AccessExpire)
}

func getPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func comparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
