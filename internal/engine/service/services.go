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
	"errors"
	"strings"
	"time"

	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/metrics"
	"github.com/go-playground/validator/v10"
)

type Services struct {
	Auth       *AuthService
	Action     *ActionService
	Member     *MemberService
	Statistics *StatisticsService
}

func NewServices(repos *repo.Repositories, conf *http.Http, m *metrics.Metrics) *Services {
	loc := conf.Location()
	return &Services{
		Auth:       NewAuthService(repos.Member, repos.Credential, conf.Auth),
		Action:     NewActionService(repos.Action, repos.Member, m, loc),
		Member:     NewMemberService(repos.Member),
		Statistics: NewStatisticsService(repos.Statistics, repos.Action, repos.Member, loc),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateReq checks the `validate` tags of a request body.
func validateReq(req any) error {
	if err := validate.Struct(req); err != nil {
		return http.BadRequest.WithCause(err)
	}
	return nil
}

// storeErr maps a repository error onto the http taxonomy, falling back to fallback for store failures.
func storeErr(err error, fallback *http.Error) error {
	switch {
	case errors.Is(err, repo.ErrActionNotFound):
		return http.ActionNotFound
	case errors.Is(err, repo.ErrMemberNotFound):
		return http.MemberNotFound
	case errors.Is(err, repo.ErrDuplicateMember):
		return http.UserAlreadyExist
	}
	return fallback.WithCause(err)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

const dateOnly = "2006-01-02"

// parseDateTime accepts RFC3339 and the datetime-local forms sent by browsers.
// Zone-less values are read in loc; the result is always UTC.
// endOfDay extends a bare date to its last instant, for inclusive range ends.
func parseDateTime(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	t, err := time.ParseInLocation(dateOnly, s, loc)
	if err != nil {
		return time.Time{}, http.InvalidDate.WithCause(err)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t.UTC(), nil
}
