package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/jobs"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/repository"
)

type openAssignmentsIn struct {
	dig.In
	Repo   *repository.DispatchRepo
	Config *config.Config
	Logger logx.Logger
	Gauge  prometheus.Gauge `name:"dispatch_open_assignments"`
}

func registerJobs(container *dig.Container) error {
	return provideAll(container,
		func(in openAssignmentsIn) *jobs.OpenAssignmentsJob {
			return jobs.NewOpenAssignmentsJob(in.Repo, in.Gauge, in.Config.Jobs.OpenAssignmentsSchedule, in.Logger)
		},
	)
}
