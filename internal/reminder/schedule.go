package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/chris-regnier/kindctl/internal/config"
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// JobName names the reminder job in the scheduler and in logs.
const JobName = "kindness-reminder"

// Clock is an hour and minute of the day.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// Times returns the daily reminder times: start, then every intervalHours
// until the day wraps. An interval of 24 or more (or <= 0) gives start only.
func Times(start Clock, intervalHours int) []Clock {
	if intervalHours <= 0 || intervalHours >= 24 {
		return []Clock{start}
	}
	var out []Clock
	for h := 0; h < 24; h += intervalHours {
		out = append(out, Clock{Hour: (start.Hour + h) % 24, Minute: start.Minute})
	}
	return out
}

// Schedule registers the reminder job on a new gocron scheduler according to
// cfg. The caller starts and shuts down the returned scheduler.
func Schedule(cfg config.ReminderConfig, r *Runner) (gocron.Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("reminder timezone: %w", err)
	}
	hour, minute, err := config.ParseClock(cfg.At)
	if err != nil {
		return nil, fmt.Errorf("reminder time: %w", err)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}

	times := Times(Clock{Hour: hour, Minute: minute}, cfg.IntervalHours)
	at := make([]gocron.AtTime, len(times))
	for i, c := range times {
		at[i] = gocron.NewAtTime(uint(c.Hour), uint(c.Minute), 0)
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(at[0], at[1:]...)),
		gocron.NewTask(func(ctx context.Context) error {
			_, err := r.Run(ctx)
			return err
		}),
		gocron.WithName(JobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithEventListeners(
			gocron.AfterJobRunsWithError(func(jobID uuid.UUID, jobName string, err error) {
				logger.Error("reminder job failed", "job", jobName, "id", jobID, "err", err)
			}),
		),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	logger.Info("reminders scheduled", "times", times, "location", loc.String())
	return s, nil
}

// NextRun reports when the reminder job fires next.
func NextRun(s gocron.Scheduler) (time.Time, error) {
	for _, j := range s.Jobs() {
		if j.Name() == JobName {
			return j.NextRun()
		}
	}
	return time.Time{}, fmt.Errorf("job %q not scheduled", JobName)
}
