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
	"github.com/go-arcade/opsboard/internal/engine/model"
)

/**
 * @file: reward.go
 * @description: experience granted to the recording manager of an action
 */

var baseXP = map[model.ActionType]int{
	model.ActionSmall:  10,
	model.ActionMedium: 25,
	model.ActionLarge:  50,
}

const cancelledXP = 5

// Reward maps (size class, outcome) to the XP delta. Defeat earns half the base, rounded down.
func Reward(t model.ActionType, o model.Outcome) int {
	switch o {
	case model.OutcomeVictory:
		return baseXP[t]
	case model.OutcomeDefeat:
		return baseXP[t] / 2
	default:
		return cancelledXP
	}
}

// statDelta is the counter change applied to the recording manager.
func statDelta(o model.Outcome, xp int) model.StatDelta {
	d := model.StatDelta{ActionsParticipated: 1, Reputation: int64(xp)}
	switch o {
	case model.OutcomeVictory:
		d.Victories = 1
	case model.OutcomeDefeat:
		d.Defeats = 1
	}
	return d
}
