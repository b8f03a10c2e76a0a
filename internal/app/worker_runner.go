package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"service-dispatch/internal/jobs"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the orders consumer and the cron jobs
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the worker using the provided DI container
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerIn struct {
	dig.In
	Ctx       context.Context
	Pool      *pgxpool.Pool
	Logger    logx.Logger
	Consumer  *kafka.Consumer
	Job       *jobs.OpenAssignmentsJob
	Publisher *notify.KafkaPublisher
	Metrics   workerMetrics `optional:"true"`
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(in workerIn) error {
	defer closeWorker(in.Pool, in.Publisher, in.Logger, in.Consumer)

	g, ctx := errgroup.WithContext(in.Ctx)
	if in.Consumer != nil {
		g.Go(func() error { return in.Consumer.Run(ctx) })
	} else {
		in.Logger.Warn("kafka is not configured, orders consumer disabled")
	}
	if in.Job != nil {
		g.Go(func() error { return in.Job.Run(ctx) })
	}
	if srv := in.Metrics.srv; srv != nil {
		g.Go(func() error { return serveMetrics(ctx, srv, in.Logger) })
	}

	in.Logger.Info("service-dispatch-worker started")
	err := g.Wait()
	if err == nil {
		err = in.Ctx.Err()
	}
	return err
}

// serveMetrics serves until ctx is done. A listen failure stops the worker.
func serveMetrics(ctx context.Context, srv *http.Server, logger logx.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("worker metrics listening", logx.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		gracefulShutdown(srv, logger, time.Second)
		return nil
	}
}

func closeWorker(pool *pgxpool.Pool, pub *notify.KafkaPublisher, logger logx.Logger, consumer *kafka.Consumer) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	closeResources(pool, pub, logger)
}
