package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/http/debugserver"
	"service-dispatch/internal/http/handlers"
	"service-dispatch/internal/http/middleware/ratelimit"
	"service-dispatch/internal/http/router"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/service/courier"
	"service-dispatch/internal/service/delivery"
	"service-dispatch/internal/service/sellerorder"
)

type handlerSet struct {
	dig.Out
	Base     *handlers.Handlers
	Dispatch *handlers.DispatchHandler
	Courier  *handlers.CourierHandler
	Order    *handlers.OrderHandler
	Events   *handlers.EventsHandler
}

type handlersIn struct {
	dig.In
	Logger      logx.Logger
	Config      *config.Config
	Coordinator *delivery.Coordinator
	Resolver    *delivery.Resolver
	Progression *delivery.Progression
	Offers      *delivery.Offers
	Couriers    *courier.Service
	Orders      *sellerorder.Service
	Hub         *notify.Hub
}

func newHandlers(in handlersIn) handlerSet {
	return handlerSet{
		Base:     handlers.New(in.Logger),
		Dispatch: handlers.NewDispatchHandler(in.Logger, in.Coordinator, in.Resolver, in.Progression, in.Offers),
		Courier:  handlers.NewCourierHandler(in.Logger, in.Couriers),
		Order:    handlers.NewOrderHandler(in.Logger, in.Orders),
		Events:   handlers.NewEventsHandler(in.Logger, in.Hub, in.Config.Dispatch.SSEHeartbeat),
	}
}

type metricsHandler http.Handler

// newMetricsHandler отдает default registry (http метрики) вместе с registry контейнера
func newMetricsHandler(reg *prometheus.Registry) metricsHandler {
	return promhttp.HandlerFor(prometheus.Gatherers{prometheus.DefaultGatherer, reg}, promhttp.HandlerOpts{})
}

type routerIn struct {
	dig.In
	Logger    logx.Logger
	Base      *handlers.Handlers
	Dispatch  *handlers.DispatchHandler
	Courier   *handlers.CourierHandler
	Order     *handlers.OrderHandler
	Events    *handlers.EventsHandler
	RateLimit *ratelimit.Middleware
	Metrics   metricsHandler
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:    in.Logger,
		Base:      in.Base,
		Dispatch:  in.Dispatch,
		Courier:   in.Courier,
		Order:     in.Order,
		Events:    in.Events,
		RateLimit: in.RateLimit,
		Metrics:   in.Metrics,
	})
}

// debugListener is the optional pprof listener; srv is nil when disabled.
type debugListener struct{ srv *http.Server }

func newDebugListener(cfg *config.Config) debugListener {
	d := cfg.Debug
	return debugListener{srv: debugserver.New(debugserver.Config{
		Addr:       d.Addr,
		User:       d.User,
		Pass:       d.Pass,
		AllowCIDRs: d.AllowCIDRs,
	})}
}

// workerMetrics is the worker's /metrics listener; srv is nil when disabled.
// API metrics are served by the main router instead.
type workerMetrics struct{ srv *http.Server }

func newWorkerMetrics(cfg *config.Config, h metricsHandler) workerMetrics {
	if cfg.Worker.MetricsAddr == "" {
		return workerMetrics{}
	}
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", h)
	return workerMetrics{srv: &http.Server{
		Addr:              cfg.Worker.MetricsAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}
