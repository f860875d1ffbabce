package main

import (
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"github.com/devportal/devportal/internal/config"
	"github.com/devportal/devportal/internal/handler"
	"github.com/devportal/devportal/internal/metrics"
	"github.com/devportal/devportal/internal/middleware"
	"github.com/devportal/devportal/internal/service"
)

// routerDeps collects what newRouter mounts. Nil teams or sessions leave
// the team routes unmounted; a nil limiter disables rate limiting.
type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	metrics  *handler.MetricsHandler

	backendName string
	backend     handler.HealthChecker
	cacheHealth handler.HealthChecker
	limiter     middleware.IPRateLimiter

	trustedProxies []netip.Prefix

	oidc       *service.OIDCService
	publicApps *service.PublicAppService
	teams      *service.TeamService
	sessions   middleware.SessionVerifier
}

// newRouter configures the chi router with all routes and middleware.
func newRouter(d routerDeps) *chi.Mux {
	cfg := d.cfg
	h := handler.New()
	health := handler.NewHealthHandler(d.backendName, d.backend, d.cacheHealth)

	r := chi.NewRouter()

	r.Use(middleware.TrustedRealIP(d.trustedProxies))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Instrument(d.recorder))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      cfg.IsDevelopment(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	if d.metrics != nil {
		r.Get("/metrics", d.metrics.Metrics)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	rateLimit := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  d.logger,
		Limiter: d.limiter,
		Enabled: cfg.RateLimitEnabled && d.limiter != nil,
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(cors))
		r.Use(rateLimit)

		// The handler answers OPTIONS and 405 itself.
		r.HandleFunc("/api/v1/oidc/validate", handler.NewOIDCHandler(d.oidc, d.logger).Validate)

		publicApp := handler.NewPublicAppHandler(d.publicApps, d.logger, cfg.PublicAppMaxAge)
		r.With(middleware.AppIDParam("app_id")).Get("/api/v2/public/app/{app_id}", publicApp.Get)
	})

	if d.teams != nil && d.sessions != nil {
		dashboard := cors
		dashboard.AllowCredentials = true

		session := middleware.Session(middleware.SessionConfig{
			Logger:   d.logger,
			Verifier: d.sessions,
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(dashboard))
			// Preflights carry no credentials; CORS answers them.
			r.Options("/api/create-team", noContent)
			r.With(session).Post("/api/create-team", handler.NewTeamHandler(d.teams, d.logger).Create)
		})
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
