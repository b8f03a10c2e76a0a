package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"service-dispatch/internal/logx"
)

// DefaultOpenAssignmentsSchedule runs every 15 seconds (seconds-field cron spec).
const DefaultOpenAssignmentsSchedule = "*/15 * * * * *"

type openCounter interface {
	CountOpen(ctx context.Context) (int64, error)
}

type gauge interface {
	Set(float64)
}

// OpenAssignmentsJob periodically publishes the number of assignments still looking for a rider.
type OpenAssignmentsJob struct {
	repo     openCounter
	gauge    gauge
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   logx.Logger
}

// NewOpenAssignmentsJob creates the job; an empty schedule uses the default.
func NewOpenAssignmentsJob(repo openCounter, g gauge, schedule string, logger logx.Logger) *OpenAssignmentsJob {
	if schedule == "" {
		schedule = DefaultOpenAssignmentsSchedule
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &OpenAssignmentsJob{
		repo:     repo,
		gauge:    g,
		schedule: schedule,
		timeout:  5 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(logx.String("component", "open_assignments_job")),
	}
}

// RunOnce refreshes the gauge.
func (j *OpenAssignmentsJob) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	n, err := j.repo.CountOpen(ctx)
	if err != nil {
		return fmt.Errorf("count open assignments: %w", err)
	}
	j.gauge.Set(float64(n))
	return nil
}

// Start schedules the job.
func (j *OpenAssignmentsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("open assignments job failed", logx.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	j.logger.Info("open assignments job started", logx.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *OpenAssignmentsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("open assignments job stopped")
}

// Run starts the job and blocks until ctx is cancelled.
func (j *OpenAssignmentsJob) Run(ctx context.Context) error {
	if err := j.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	j.Stop()
	return nil
}
