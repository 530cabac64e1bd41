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
	"sort"
	"strings"
	"time"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/pkg/http"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/go-arcade/opsboard/pkg/parallel"
)

/**
 * @file: service_statistics.go
 * @description: dashboard aggregates, computed from live rows on every call
 */

type StatisticsService struct {
	stats   repo.IStatisticsRepository
	actions repo.IActionRepository
	members repo.IMemberRepository
	loc     *time.Location
	now     func() time.Time
}

func NewStatisticsService(
	stats repo.IStatisticsRepository,
	actions repo.IActionRepository,
	members repo.IMemberRepository,
	loc *time.Location,
) *StatisticsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatisticsService{
		stats:   stats,
		actions: actions,
		members: members,
		loc:     loc,
		now:     time.Now,
	}
}

// victoryRate is victories/total as a percentage with one decimal, "0" for an empty total.
func victoryRate(victories, total int64) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(victories)*100/float64(total))
}

func porte(rows ...model.OutcomeCount) model.PorteStats {
	var p model.PorteStats
	for _, r := range rows {
		p.Total += r.Total
		p.Victories += r.Victories
		p.Defeats += r.Defeats
	}
	p.VictoryRate = victoryRate(p.Victories, p.Total)
	return p
}

// Dashboard reads the per-type counts, member counts and latest action concurrently.
func (s *StatisticsService) Dashboard(ctx context.Context) (*model.DashboardSummary, error) {
	var (
		rows          []model.OutcomeCount
		total, online int64
		last          *model.Action
		refs          map[string]*model.Member
	)

	g := parallel.GoGroup(ctx)
	g.Go(func(ctx context.Context) error {
		var err error
		rows, err = s.stats.CountByType(ctx)
		return err
	})
	g.Go(func(ctx context.Context) error {
		var err error
		total, online, err = s.members.Counts(ctx)
		return err
	})
	g.Go(func(ctx context.Context) error {
		var err error
		if last, err = s.actions.Latest(ctx); err != nil || last == nil {
			return err
		}
		refs, err = s.members.FindByIds(ctx, []string{last.ManagerId, last.CreatedById})
		return err
	})
	if err := g.Wait(); err != nil {
		log.Errorw("failed to build dashboard summary", "error", err)
		return nil, http.StatisticsFailed.WithCause(err)
	}

	byType := make(map[model.ActionType]model.OutcomeCount, len(rows))
	for _, r := range rows {
		byType[r.Type] = r
	}
	small, medium, large := byType[model.ActionSmall], byType[model.ActionMedium], byType[model.ActionLarge]
	overall := porte(rows...)

	summary := &model.DashboardSummary{
		TotalActions:  overall.Total,
		Victories:     overall.Victories,
		Defeats:       overall.Defeats,
		VictoryRate:   overall.VictoryRate,
		ActiveMembers: online,
		TotalMembers:  total,
		ActionsByType: model.ActionsByType{
			Small:  small.Total,
			Medium: medium.Total,
			Large:  large.Total,
		},
		SmallPorte:       porte(small),
		MediumLargePorte: porte(medium, large),
	}
	if last != nil {
		info := last.Info(refs)
		summary.LastAction = &info
	}
	return summary, nil
}

func (s *StatisticsService) ByType(ctx context.Context) ([]model.TypeStats, error) {
	rows, err := s.stats.CountByType(ctx)
	if err != nil {
		log.Errorw("failed to count actions by type", "error", err)
		return nil, http.StatisticsFailed.WithCause(err)
	}
	out := make([]model.TypeStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.TypeStats{
			LegacyId:  string(r.Type),
			Type:      string(r.Type),
			Label:     r.Type.Display(),
			Count:     r.Total,
			Victories: r.Victories,
			Defeats:   r.Defeats,
		})
	}
	return out, nil
}

// Timeline buckets the actions of the last day/week/month by calendar date, oldest first.
// An empty period means week.
func (s *StatisticsService) Timeline(ctx context.Context, period string) ([]model.TimelinePoint, error) {
	p := model.Period(strings.ToLower(strings.TrimSpace(period)))
	if p == "" {
		p = model.PeriodWeek
	}
	days, ok := p.LookbackDays()
	if !ok {
		return nil, http.InvalidPeriod
	}

	since := s.now().AddDate(0, 0, -days).UTC()
	rows, err := s.stats.OutcomesSince(ctx, since)
	if err != nil {
		log.Errorw("failed to load timeline", "period", p, "error", err)
		return nil, http.StatisticsFailed.WithCause(err)
	}

	out := make([]model.TimelinePoint, 0, days+1)
	index := make(map[string]int)
	for _, r := range rows {
		date := r.DateTime.In(s.loc).Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			i = len(out)
			index[date] = i
			out = append(out, model.TimelinePoint{LegacyId: date, Date: date})
		}
		out[i].Total++
		switch r.Result {
		case model.OutcomeVictory:
			out[i].Victories++
		case model.OutcomeDefeat:
			out[i].Defeats++
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out, nil
}

// TopPerformers is the ranking widget of the dashboard.
func (s *StatisticsService) TopPerformers(ctx context.Context) ([]model.MemberInfo, error) {
	members, err := s.members.Top(ctx, DefaultTopLimit)
	if err != nil {
		return nil, http.StatisticsFailed.WithCause(err)
	}
	return infos(members), nil
}
