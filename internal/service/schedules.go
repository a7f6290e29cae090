package service

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

const (
	DailySlot  = 24 * time.Hour
	WeeklySlot = 7 * 24 * time.Hour
)

type ScheduleService struct{ d *Deps }

func slotLength(t dom.ScheduleType) time.Duration {
	if t == dom.ScheduleWeekly {
		return WeeklySlot
	}
	return DailySlot
}

// Current returns the live slot of type t and the time left in it.
func (s *ScheduleService) Current(ctx context.Context, t dom.ScheduleType) (*dom.LevelSchedule, time.Duration, error) {
	now := s.d.Now()
	cur, err := s.d.Schedules.Current(ctx, t, now)
	if err != nil {
		return nil, 0, orKind(err, LevelScheduleUnset)
	}
	return cur, cur.EndTs.Sub(now), nil
}

// Enqueue appends a slot for levelID after the last scheduled slot of type t,
// or starting now when nothing is scheduled ahead. schedulerID zero is the
// system itself and skips the privilege check.
func (s *ScheduleService) Enqueue(ctx context.Context, schedulerID, levelID int, t dom.ScheduleType) (*dom.LevelSchedule, error) {
	var scheduler *int
	if schedulerID != 0 {
		u, err := s.d.user(ctx, schedulerID)
		if err != nil {
			return nil, err
		}
		need := privilege.LevelEnqueueDaily
		if t == dom.ScheduleWeekly {
			need = privilege.LevelEnqueueWeekly
		}
		if !u.Privileges.Has(need) {
			return nil, fail(LevelScheduleNoPermission)
		}
		scheduler = &schedulerID
	}
	l, err := s.d.Levels.FromID(ctx, levelID)
	if err != nil {
		return nil, orKind(err, LevelsNotFound)
	}
	if l.Deleted {
		return nil, fail(LevelsNotFound)
	}

	start := s.d.Now()
	last, err := s.d.Schedules.Latest(ctx, t)
	switch {
	case err == nil && last.EndTs.After(start):
		start = last.EndTs
	case err != nil && !errors.Is(err, dom.ErrNotFound):
		return nil, err
	}
	slot := &dom.LevelSchedule{
		Type:        t,
		LevelID:     levelID,
		StartTs:     start,
		EndTs:       start.Add(slotLength(t)),
		SchedulerID: scheduler,
	}
	if err := s.d.Schedules.Create(ctx, slot); err != nil {
		return nil, err
	}
	logx.WithContext(ctx).Infof("scheduled level %d as %s from %s", levelID, t, start.Format(time.RFC3339))
	return slot, nil
}
