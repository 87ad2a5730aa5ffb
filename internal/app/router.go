package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/backend-dentlab/internal/analytics"
	"github.com/noah-isme/backend-dentlab/internal/catalog"
	"github.com/noah-isme/backend-dentlab/internal/common"
	"github.com/noah-isme/backend-dentlab/internal/config"
	"github.com/noah-isme/backend-dentlab/internal/customer"
	"github.com/noah-isme/backend-dentlab/internal/health"
	"github.com/noah-isme/backend-dentlab/internal/obs"
	"github.com/noah-isme/backend-dentlab/internal/order"
	"github.com/noah-isme/backend-dentlab/internal/ratelimit"
	"github.com/noah-isme/backend-dentlab/internal/reminder"
	"github.com/noah-isme/backend-dentlab/internal/security"
	"github.com/noah-isme/backend-dentlab/internal/supplier"
)

// RouterOptions carries the observability pieces main decides on.
type RouterOptions struct {
	Metrics        *obs.HTTPMetrics
	Tracing        bool
	Pprof          http.Handler
	DBTimeout      time.Duration
	RedisTimeout   time.Duration
	AllowedOrigins []string
}

// NewRouter builds the HTTP API.
func NewRouter(deps *Dependencies, svc *Services, cfg *config.Config, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if opts.Tracing {
		r.Use(obs.SpanRouteMiddleware)
	}
	r.Use(obs.HTTPObs{Metrics: opts.Metrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: deps.Logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(opts.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders: []string{"X-Total-Count", "Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(security.Headers{Enable: cfg.SecurityHeaders}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)

	if opts.Metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}
	if opts.Pprof != nil {
		r.Mount("/debug/pprof", opts.Pprof)
	}

	healthHandler := health.Handler{
		Checker:      deps,
		DBTimeout:    opts.DBTimeout,
		RedisTimeout: opts.RedisTimeout,
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	idem := common.Idem{R: deps.Redis, TTL: cfg.IdempotencyTTL}
	throttle := ratelimit.Handler{
		Window: ratelimit.Window{
			Client: deps.Redis,
			Prefix: "rl:export:",
			Size:   cfg.ExportRateWindow,
			Max:    cfg.ExportRateLimit,
		},
		Logger: deps.Logger,
	}

	customers := customer.NewHandler(svc.Customers, deps.Validator)
	suppliers := supplier.NewHandler(svc.Suppliers, deps.Validator)
	reminders := reminder.NewHandler(svc.Reminders, deps.Validator)
	orders := order.NewHandler(svc.Orders, deps.Validator)
	prices := catalog.NewHandler(catalog.HandlerConfig{Service: svc.Catalog, Validator: deps.Validator})
	reports := &analytics.Handler{Svc: svc.Analytics}

	r.Route("/api/v1", func(v chi.Router) {
		v.Route("/customers", func(c chi.Router) {
			c.Get("/", customers.List)
			c.With(idem.Middleware).Post("/", customers.Create)
			c.With(throttle.Middleware).Get("/export", customers.Export)
			c.Get("/{id}", customers.Get)
			c.Put("/{id}", customers.Update)
			c.Delete("/{id}", customers.Delete)
		})

		v.Route("/suppliers", func(s chi.Router) {
			s.Get("/", suppliers.List)
			s.With(idem.Middleware).Post("/", suppliers.Create)
			s.With(throttle.Middleware).Get("/export", suppliers.Export)
			s.Get("/{id}", suppliers.Get)
			s.Put("/{id}", suppliers.Update)
			s.Delete("/{id}", suppliers.Delete)
		})

		v.Route("/orders", func(o chi.Router) {
			o.Get("/", orders.List)
			o.With(idem.Middleware).Post("/", orders.Create)
			o.Post("/quote", orders.Quote)
			o.With(throttle.Middleware).Get("/export", orders.Export)
			o.Get("/{id}", orders.Get)
			o.Put("/{id}", orders.Update)
			o.Delete("/{id}", orders.Delete)
		})

		v.Route("/reminders", func(rm chi.Router) {
			rm.Get("/", reminders.List)
			rm.With(idem.Middleware).Post("/", reminders.Create)
			rm.Get("/{id}", reminders.Get)
			rm.Put("/{id}", reminders.Update)
			rm.Delete("/{id}", reminders.Delete)
		})

		v.Route("/price-list", func(p chi.Router) {
			p.Get("/", prices.List)
			p.With(idem.Middleware).Post("/", prices.Create)
			p.Get("/categories", prices.Categories)
			p.With(throttle.Middleware).Get("/export", prices.Export)
			p.Put("/{id}", prices.Update)
			p.Delete("/{id}", prices.Delete)
		})

		v.Route("/analytics", func(an chi.Router) {
			an.Get("/overview", reports.Overview)
			an.Get("/report", reports.Report)
			an.Get("/revenue", reports.Revenue)
			an.Get("/categories", reports.Categories)
		})
	})

	return r
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
