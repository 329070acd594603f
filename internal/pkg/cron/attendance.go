package cron

import (
	"context"
	"fmt"
	"log/slog"
)

// PunchCloser closes punches still open at the configured cut-off.
type PunchCloser interface {
	AutoCloseOpenPunches(ctx context.Context) (int, error)
}

type AttendanceJobs struct {
	closer PunchCloser
}

func NewAttendanceJobs(closer PunchCloser) *AttendanceJobs {
	return &AttendanceJobs{closer: closer}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, schedule string) error {
	return scheduler.AddJob("auto_close_open_punches", schedule, j.AutoCloseOpenPunches)
}

func (j *AttendanceJobs) AutoCloseOpenPunches(ctx context.Context) error {
	slog.Info("Cron: Starting auto-close open punches job")

	closed, err := j.closer.AutoCloseOpenPunches(ctx)
	if err != nil {
		return fmt.Errorf("failed to auto-close open punches: %w", err)
	}

	slog.Info("Cron: Auto-close open punches job finished", "closed", closed)
	return nil
}
