package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-dispatch/internal/http/debugserver"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the HTTP API
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := loggerFrom(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("startup aborted: startup timeout exceeded")
	default:
		panic(err)
	}
}

type apiIn struct {
	dig.In
	Ctx       context.Context
	Server    *http.Server
	Pool      *pgxpool.Pool
	Logger    logx.Logger
	Publisher *notify.KafkaPublisher
	Debug     debugListener `optional:"true"`
	Relay     *kafka.Consumer `name:"notifications_relay" optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(apiRun)
}

func apiRun(in apiIn) error {
	errCh := startServer(in.Server, in.Logger)
	debugserver.Start(in.Debug.srv, in.Logger)
	stopRelay := startRelay(in.Ctx, in.Relay, in.Logger)
	defer stopRelay()
	defer func() {
		if in.Debug.srv != nil {
			gracefulShutdown(in.Debug.srv, in.Logger, time.Second)
		}
	}()

	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down service-dispatch")
	case err := <-errCh:
		closeResources(in.Pool, in.Publisher, in.Logger)
		return err
	}
	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	closeResources(in.Pool, in.Publisher, in.Logger)
	return in.Ctx.Err()
}

func startServer(server *http.Server, logger logx.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("service-dispatch listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

// startRelay feeds the local hub from the notifications topic until the returned stop is called.
func startRelay(ctx context.Context, relay *kafka.Consumer, logger logx.Logger) (stop func()) {
	if relay == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notifications relay stopped", logx.Err(err))
		}
	}()
	logger.Info("notifications relay started")
	return func() {
		cancel()
		<-done
		if err := relay.Close(); err != nil {
			logger.Error("notifications relay close error", logx.Err(err))
		}
	}
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
		// висящие /events соединения
		_ = srv.Close()
	}
}

func closeResources(pool *pgxpool.Pool, pub *notify.KafkaPublisher, logger logx.Logger) {
	if err := pub.Close(); err != nil {
		logger.Error("kafka producer close error", logx.Err(err))
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
