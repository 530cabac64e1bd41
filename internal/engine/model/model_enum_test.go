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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTypeRoundTrip(t *testing.T) {
	tests := []struct {
		input   string
		token   ActionType
		display string
	}{
		{"Pequeno", ActionSmall, "Pequeno"},
		{"pequeno", ActionSmall, "Pequeno"},
		{"Médio", ActionMedium, "Médio"},
		{"MÉDIO", ActionMedium, "Médio"},
		{"medio", ActionMedium, "Médio"},
		{" Grande ", ActionLarge, "Grande"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseActionType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.token, got)
			assert.Equal(t, tt.display, got.Display())
		})
	}
}

func TestOutcomeRoundTrip(t *testing.T) {
	tests := []struct {
		input   string
		token   Outcome
		display string
	}{
		{"Vitória", OutcomeVictory, "Vitória"},
		{"vitoria", OutcomeVictory, "Vitória"},
		{"VITÓRIA", OutcomeVictory, "Vitória"},
		{"Derrota", OutcomeDefeat, "Derrota"},
		{"cancelada", OutcomeCancelled, "Cancelada"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutcome(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.token, got)
			assert.Equal(t, tt.display, got.Display())
		})
	}
}

func TestDisplayIsLossless(t *testing.T) {
	for _, at := range ActionTypes() {
		back, err := ParseActionType(at.Display())
		require.NoError(t, err)
		assert.Equal(t, at, back)
	}
	for _, o := range Outcomes() {
		back, err := ParseOutcome(o.Display())
		require.NoError(t, err)
		assert.Equal(t, o, back)
	}
	for _, r := range []Role{RoleLeader, RoleManager, RoleMember} {
		back, err := ParseRole(r.Display())
		require.NoError(t, err)
		assert.Equal(t, r, back)
	}
	for _, s := range []Status{StatusOnline, StatusOffline} {
		back, err := ParseStatus(s.Display())
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	_, err := ParseActionType("enorme")
	assert.ErrorIs(t, err, ErrInvalidActionType)

	_, err = ParseOutcome("empate")
	assert.ErrorIs(t, err, ErrInvalidOutcome)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = ParseStatus("away")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseOutcome("")
	assert.Error(t, err)
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleManager.In(RoleManager, RoleLeader))
	assert.False(t, RoleMember.In(RoleManager, RoleLeader))
	assert.False(t, RoleLeader.In())
}

func TestCatalogName(t *testing.T) {
	name, ok := CatalogName(ActionMedium, "banco fleeca")
	assert.True(t, ok)
	assert.Equal(t, "Banco Fleeca", name)

	name, ok = CatalogName(ActionLarge, "NIOBIO")
	assert.True(t, ok)
	assert.Equal(t, "Nióbio", name)

	_, ok = CatalogName(ActionSmall, "Banco Central")
	assert.False(t, ok, "name belongs to another size class")

	catalog := Catalog()
	require.Len(t, catalog, 3)
	assert.Equal(t, "Pequeno", catalog[0].Type)
	assert.Len(t, catalog[0].Names, 15)
	assert.Len(t, catalog[1].Names, 5)
	assert.Len(t, catalog[2].Names, 4)
}

func TestPeriodLookback(t *testing.T) {
	days, ok := PeriodDay.LookbackDays()
	assert.True(t, ok)
	assert.Equal(t, 1, days)

	days, _ = PeriodWeek.LookbackDays()
	assert.Equal(t, 7, days)

	days, _ = PeriodMonth.LookbackDays()
	assert.Equal(t, 30, days)

	_, ok = Period("year").LookbackDays()
	assert.False(t, ok)
}

func TestActionInfo_DanglingReferences(t *testing.T) {
	a := &Action{ActionId: "a1", ActionType: ActionSmall, Result: OutcomeVictory, ManagerId: "gone", CreatedById: "gone"}
	info := a.Info(map[string]*Member{})

	assert.Nil(t, info.Manager)
	assert.Nil(t, info.CreatedBy)
	assert.Equal(t, "Pequeno", info.ActionType)
	assert.Equal(t, "Vitória", info.Result)
	assert.NotNil(t, info.Participants)
}
