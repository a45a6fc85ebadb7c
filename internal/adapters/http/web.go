package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"kaitori/internal/adapters/http/middleware"
	"kaitori/internal/adapters/http/perf"
	adminStore "kaitori/internal/adapters/storage/admin"
	blackoutStore "kaitori/internal/adapters/storage/blackout"
	reservationStore "kaitori/internal/adapters/storage/reservation"
	"kaitori/internal/application/orchestrators"
	"kaitori/internal/domain/reservation"
)

// Pinger reports database liveness for /healthz.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Config holds the HTTP-layer settings.
type Config struct {
	RequestTimeout     time.Duration
	RateLimitPerSecond int
	SlowRequestMs      int
	CSRF               middleware.CSRFConfig
}

// Deps holds everything the router needs.
type Deps struct {
	DB           Pinger
	Tx           orchestrators.Transactor
	Reservations reservationStore.Store
	Blackouts    blackoutStore.Store
	Admins       adminStore.Store
	// Notify sends the booking confirmation after commit. May be nil.
	Notify    func(ctx context.Context, r reservation.Reservation) error
	Collector *perf.Collector
	// EnsureSchema is run by the schema gate before every API request. May be nil.
	EnsureSchema func(ctx context.Context) error
	Now          func() time.Time
	Location     *time.Location
	Config       Config
}

type server struct {
	deps Deps
}

// NewRouter wires the JSON API onto a chi router.
// ctx bounds background work such as the rate limiter sweep.
// PRE: stores and Tx are non-nil
// POST: Returns a handler serving /api/* and /healthz
func NewRouter(ctx context.Context, deps Deps) http.Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Config.RequestTimeout <= 0 {
		deps.Config.RequestTimeout = 5 * time.Second
	}
	s := &server{deps: deps}
	limiter := middleware.NewRateLimiter(ctx, deps.Config.RateLimitPerSecond, time.Second)
	limited := middleware.RateLimit(limiter)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(deps.Config.RequestTimeout))
	r.Use(middleware.Timing(deps.Collector, deps.Config.SlowRequestMs))
	r.Use(middleware.SecurityHeaders)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CSRF(deps.Config.CSRF))
		if deps.EnsureSchema != nil {
			r.Use(middleware.SchemaGate(deps.EnsureSchema))
		}

		r.Post("/check-area", s.handleCheckArea)
		r.Get("/calendar", s.handlePublicCalendar)

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", s.handleListReservations)
			r.With(limited).Post("/", s.handleCreateReservation)
			r.Get("/{id}", s.handleGetReservation)
			r.Put("/{id}", s.handleUpdateReservation)
			r.Delete("/{id}", s.handleDeleteReservation)
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(limited).Post("/login", s.handleLogin)
			r.Get("/calendar", s.handleAdminCalendar)
			r.Post("/unavailable-dates", s.handleSetBlackout)
			r.Delete("/unavailable-dates/{date}", s.handleClearBlackout)
			r.Get("/perf", s.handlePerf)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "見つかりません"})
	})
	return r
}
