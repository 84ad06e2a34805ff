// Package router sets up all HTTP routes and middleware chains for the
// Rango site.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"rango/internal/handlers"
	"rango/internal/middleware"
	"rango/web"
)

// Click-throughs allowed per client IP within gotoWindow.
const (
	gotoLimit  = 30
	gotoWindow = time.Minute
)

// Options configures the router.
type Options struct {
	// SecureCookies marks the CSRF cookie HTTPS-only.
	SecureCookies bool
	// GotoLimiter rate-limits click-throughs. When nil the router creates
	// one allowing gotoLimit hits per gotoWindow and stops it on Close.
	// A limiter passed in here is left running.
	GotoLimiter *middleware.RateLimiter
}

// Router is the site's chi router. Close releases what New started.
type Router struct {
	chi.Router
	owned *middleware.RateLimiter
}

// Close stops the click-through limiter if the router created it.
func (rt *Router) Close() {
	if rt.owned != nil {
		rt.owned.Stop()
	}
}

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(site *handlers.Site, opts Options) *Router {
	r := chi.NewRouter()
	rt := &Router{Router: r}

	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and static assets bypass CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))

	limiter := opts.GotoLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(gotoLimit, gotoWindow)
		rt.owned = limiter
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Get("/", site.Index)
		r.Get("/category/{slug}", site.ShowCategory)
		r.Get("/add_category", site.AddCategory)
		r.Post("/add_category", site.AddCategory)
		r.Get("/category/{slug}/add_page", site.AddPage)
		r.Post("/category/{slug}/add_page", site.AddPage)

		r.With(limiter.Middleware).Get("/goto/{id}", site.Goto)
	})

	return rt
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
