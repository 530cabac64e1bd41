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

/**
 * @file: model_statistics.go
 * @description: statistics read models
 */

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// LookbackDays returns the window length of p, false when p is unknown.
func (p Period) LookbackDays() (int, bool) {
	switch p {
	case PeriodDay:
		return 1, true
	case PeriodWeek:
		return 7, true
	case PeriodMonth:
		return 30, true
	}
	return 0, false
}

// OutcomeCount is a raw count row.
type OutcomeCount struct {
	Type      ActionType
	Total     int64
	Victories int64
	Defeats   int64
}

type ActionsByType struct {
	Small  int64 `json:"small"`
	Medium int64 `json:"medium"`
	Large  int64 `json:"large"`
}

type PorteStats struct {
	Total       int64  `json:"total"`
	Victories   int64  `json:"victories"`
	Defeats     int64  `json:"defeats"`
	VictoryRate string `json:"victoryRate"`
}

type DashboardSummary struct {
	TotalActions     int64         `json:"totalActions"`
	Victories        int64         `json:"victories"`
	Defeats          int64         `json:"defeats"`
	VictoryRate      string        `json:"victoryRate"`
	ActiveMembers    int64         `json:"activeMembers"`
	TotalMembers     int64         `json:"totalMembers"`
	ActionsByType    ActionsByType `json:"actionsByType"`
	SmallPorte       PorteStats    `json:"smallPorte"`
	MediumLargePorte PorteStats    `json:"mediumLargePorte"`
	LastAction       *ActionInfo   `json:"lastAction"`
}

// TypeStats is keyed by the canonical type token; Label carries the display form.
type TypeStats struct {
	LegacyId  string `json:"_id"`
	Type      string `json:"type"`
	Label     string `json:"label"`
	Count     int64  `json:"count"`
	Victories int64  `json:"victories"`
	Defeats   int64  `json:"defeats"`
}

type TimelinePoint struct {
	LegacyId  string `json:"_id"`
	Date      string `json:"date"`
	Victories int64  `json:"victories"`
	Defeats   int64  `json:"defeats"`
	Total     int64  `json:"total"`
}
