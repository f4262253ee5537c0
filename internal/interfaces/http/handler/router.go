package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hapkiduki/sgp-engine/internal/application/dto"
	"github.com/hapkiduki/sgp-engine/internal/application/port"
	"github.com/hapkiduki/sgp-engine/internal/application/usecase"
	"github.com/hapkiduki/sgp-engine/internal/interfaces/http/middleware"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// RouterConfig contains the HTTP settings of the router.
type RouterConfig struct {
	Version            string
	RequestTimeout     time.Duration
	MaxRequestSize     int64
	CORSAllowedOrigins []string

	// RateLimit enables per-client rate limiting when non-nil.
	RateLimit *middleware.RateLimiterConfig
}

// Dependencies are the services the handlers call.
type Dependencies struct {
	Calculator *usecase.CalculatorService
	Orders     *usecase.OrderService
	Checks     map[string]port.HealthChecker
	Log        port.Logger
	Started    time.Time
}

// NewRouter builds the chi router with the full middleware stack.
//
// Middleware order matters: the request ID must exist before logging, and
// panics are recovered inside the logger so they are logged as 500s.
func NewRouter(cfg RouterConfig, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Log))
	r.Use(middleware.Recoverer(deps.Log))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-API-Version", "Location"},
		MaxAge:         300,
	}))
	if cfg.RateLimit != nil {
		r.Use(middleware.RateLimiter(*cfg.RateLimit))
	}
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.APIVersion(cfg.Version))
	if cfg.MaxRequestSize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestSize))
	}

	health := NewHealthHandler(cfg.Version, deps.Started, deps.Checks)
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	rs := responder{version: cfg.Version, log: deps.Log}
	calc := NewCalcHandler(deps.Calculator, rs)
	orders := NewOrderHandler(deps.Orders, rs)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		calc.Routes(r)
		r.Route("/orders", orders.Routes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusNotFound, dto.CodeNotFound,
			"the requested resource was not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusMethodNotAllowed, dto.CodeMethodNotAllowed,
			"the requested method is not allowed for this resource")
	})

	return r
}
