// Package reminder runs the recurring payment reminder sweep.
package reminder

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// DefaultSchedule fires once a day at 09:00.
const DefaultSchedule = "0 9 * * *"

// Trigger decides whether a sweep is due at a given instant.
type Trigger interface {
	Matches(now time.Time) bool
}

// CronTrigger matches the minutes selected by a standard five-field cron expression.
type CronTrigger struct {
	expr     string
	schedule cron.Schedule
	location *time.Location
}

// NewCronTrigger parses expr and evaluates it in loc (UTC when nil).
func NewCronTrigger(expr string, loc *time.Location) (*CronTrigger, error) {
	if loc == nil {
		loc = time.UTC
	}

	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, domainerror.NewReminderError(
			domainerror.ErrCodeInvalidSchedule,
			fmt.Sprintf("cannot parse schedule %q", expr),
			fmt.Errorf("%w: %v", domainerror.ErrInvalidSchedule, err),
		)
	}

	// "@every" schedules are relative to the previous run and have no fixed minutes.
	if _, ok := schedule.(cron.ConstantDelaySchedule); ok {
		return nil, domainerror.NewReminderError(
			domainerror.ErrCodeInvalidSchedule,
			fmt.Sprintf("schedule %q has no fixed activation time", expr),
			domainerror.ErrInvalidSchedule,
		)
	}

	return &CronTrigger{
		expr:     expr,
		schedule: schedule,
		location: loc,
	}, nil
}

// Matches reports whether the minute containing now is an activation instant.
func (t *CronTrigger) Matches(now time.Time) bool {
	minute := now.In(t.location).Truncate(time.Minute)
	return t.schedule.Next(minute.Add(-time.Second)).Equal(minute)
}

// Next returns the first activation strictly after now.
func (t *CronTrigger) Next(now time.Time) time.Time {
	return t.schedule.Next(now.In(t.location))
}

// String returns the source expression.
func (t *CronTrigger) String() string {
	return t.expr
}
