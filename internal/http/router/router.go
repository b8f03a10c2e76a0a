package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"service-dispatch/internal/http/handlers"
	obs "service-dispatch/internal/http/middleware"
	"service-dispatch/internal/http/middleware/identity"
	"service-dispatch/internal/http/middleware/ratelimit"
	"service-dispatch/internal/logx"
)

// requestTimeout bounds every route except the event stream.
const requestTimeout = 5 * time.Second

// Deps holds everything the router mounts. Metrics and RateLimit are optional.
type Deps struct {
	Logger    logx.Logger
	Base      *handlers.Handlers
	Dispatch  *handlers.DispatchHandler
	Courier   *handlers.CourierHandler
	Order     *handlers.OrderHandler
	Events    *handlers.EventsHandler
	RateLimit *ratelimit.Middleware
	Metrics   http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(identity.Middleware)
	r.Use(obs.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	r.NotFound(d.Base.NotFound)
	r.MethodNotAllowed(d.Base.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Handler())
		}

		// поток событий живет дольше requestTimeout
		r.Get("/events", d.Events.Stream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))

			r.Route("/delivery-assignments", func(r chi.Router) {
				r.Post("/", d.Dispatch.Create)
				r.Post("/accept", d.Dispatch.Accept)
				r.Post("/status", d.Dispatch.Status)
				r.Get("/available", d.Dispatch.Available)
			})

			r.Route("/couriers", func(r chi.Router) {
				r.Get("/me", d.Courier.Me)
				r.Post("/location", d.Courier.Location)
				r.Post("/online", d.Courier.Online)
			})

			r.Post("/orders/{orderID}/status", d.Order.UpdateStatus)
		})
	})

	return r
}
