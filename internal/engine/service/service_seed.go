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
	"fmt"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/log"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "senha123"

var seedRoster = []struct {
	username string
	role     model.Role
}{
	{"admin", model.RoleLeader},
	{"gerente1", model.RoleManager},
	{"operador1", model.RoleMember},
	{"operador2", model.RoleMember},
	{"operador3", model.RoleMember},
}

var seedActions = []model.CreateActionReq{
	{ActionType: "pequeno", ActionName: "Lojinha", DateTime: "2025-01-06T21:00", Participants: []string{"operador1", "operador2"}, Result: "vitoria"},
	{ActionType: "pequeno", ActionName: "Barbearia", DateTime: "2025-01-07T22:15", Participants: []string{"operador3"}, Result: "derrota"},
	{ActionType: "medio", ActionName: "Joalheria", DateTime: "2025-01-08T20:30", Participants: []string{"operador1", "operador2", "operador3"}, Result: "vitoria"},
	{ActionType: "grande", ActionName: "Banco Central", DateTime: "2025-01-10T23:00", Participants: []string{"operador1", "operador2", "operador3"}, Result: "cancelada"},
}

type SeedReport struct {
	Created []string
	Skipped []string
	Actions int
}

// Seed registers the sample roster and, when the manager account is new,
// records the sample actions under it. Existing accounts are left alone.
func Seed(ctx context.Context, svc *Services) (*SeedReport, error) {
	report := &SeedReport{}
	var manager *model.Member

	for _, r := range seedRoster {
		resp, err := svc.Auth.Register(ctx, &model.RegisterReq{
			Username: r.username,
			Email:    r.username + "@facao.com",
			Password: SeedPassword,
			Role:     string(r.role),
		})
		if errors.Is(err, http.UserAlreadyExist) {
			report.Skipped = append(report.Skipped, r.username)
			continue
		}
		if err != nil {
			return report, fmt.Errorf("seed %s: %w", r.username, err)
		}
		report.Created = append(report.Created, r.username)

		if r.role == model.RoleManager {
			m, err := svc.Auth.members.Get(ctx, resp.Id)
			if err != nil {
				return report, err
			}
			manager = m
		}
	}

	if manager == nil {
		return report, nil
	}
	for i := range seedActions {
		req := seedActions[i]
		if _, err := svc.Action.Create(ctx, manager, &req); err != nil {
			return report, fmt.Errorf("seed action %s: %w", req.ActionName, err)
		}
		report.Actions++
	}

	log.Infow("seed finished",
		"created", len(report.Created),
		"skipped", len(report.Skipped),
		"actions", report.Actions,
	)
	return report, nil
}
