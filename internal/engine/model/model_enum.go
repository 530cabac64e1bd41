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
	"fmt"
	"strings"

	"github.com/gosimple/unidecode"
)

// Closed enums persisted as lowercase, accent free tokens and shown with
// Portuguese display labels. Each type has exactly one Parse and one Display.

type Role string

const (
	RoleLeader  Role = "lider"
	RoleManager Role = "gerente"
	RoleMember  Role = "membro"
)

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

type ActionType string

const (
	ActionSmall  ActionType = "pequeno"
	ActionMedium ActionType = "medio"
	ActionLarge  ActionType = "grande"
)

type Outcome string

const (
	OutcomeVictory   Outcome = "vitoria"
	OutcomeDefeat    Outcome = "derrota"
	OutcomeCancelled Outcome = "cancelada"
)

var (
	ErrInvalidRole       = fmt.Errorf("invalid role")
	ErrInvalidStatus     = fmt.Errorf("invalid status")
	ErrInvalidActionType = fmt.Errorf("invalid action type")
	ErrInvalidOutcome    = fmt.Errorf("invalid outcome")
)

var (
	roleLabels = map[Role]string{
		RoleLeader:  "Líder",
		RoleManager: "Gerente",
		RoleMember:  "Membro",
	}
	statusLabels = map[Status]string{
		StatusOnline:  "Online",
		StatusOffline: "Offline",
	}
	actionTypeLabels = map[ActionType]string{
		ActionSmall:  "Pequeno",
		ActionMedium: "Médio",
		ActionLarge:  "Grande",
	}
	outcomeLabels = map[Outcome]string{
		OutcomeVictory:   "Vitória",
		OutcomeDefeat:    "Derrota",
		OutcomeCancelled: "Cancelada",
	}
)

// canonical folds case and strips diacritics: "Médio" and "MEDIO" both become "medio".
func canonical(s string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(s)))
}

func ParseRole(s string) (Role, error) {
	r := Role(canonical(s))
	if _, ok := roleLabels[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

func (r Role) Display() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// In reports whether r is one of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(canonical(s))
	if _, ok := statusLabels[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) Display() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func ParseActionType(s string) (ActionType, error) {
	t := ActionType(canonical(s))
	if _, ok := actionTypeLabels[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidActionType, s)
	}
	return t, nil
}

func (t ActionType) Display() string {
	if l, ok := actionTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(canonical(s))
	if _, ok := outcomeLabels[o]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
	return o, nil
}

func (o Outcome) Display() string {
	if l, ok := outcomeLabels[o]; ok {
		return l
	}
	return string(o)
}

// ActionTypes lists the size classes in ascending order.
func ActionTypes() []ActionType {
	return []ActionType{ActionSmall, ActionMedium, ActionLarge}
}

// Outcomes lists every outcome.
func Outcomes() []Outcome {
	return []Outcome{OutcomeVictory, OutcomeDefeat, OutcomeCancelled}
}
