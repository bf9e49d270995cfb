/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a schedule frontend

SECURITY NOTE:
  No authentication middleware. All endpoints are public; deploy behind
  an authenticating proxy if exposure matters.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured. corsOrigins
// lists the allowed origins; empty means same-origin only.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/week", func(r chi.Router) {
			r.Get("/", h.GetWeek)
			r.Post("/next", h.NextWeek)
			r.Post("/previous", h.PreviousWeek)
			r.Post("/regenerate", h.RegenerateWeek)
			r.Post("/swap", h.SwapSlots)
			r.Post("/override", h.OverrideSlot)
			r.Post("/publish", h.PublishWeek)
		})

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.ListWorkers)
			r.Post("/", h.CreateWorker)
			r.Delete("/{name}", h.DeleteWorker)
			r.Post("/{name}/rename", h.RenameWorker)
			r.Put("/{name}/constraints", h.UpdateConstraints)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Put("/{label}", h.SetShiftActive)
			r.Delete("/{label}", h.DeleteShift)
		})

		r.Get("/streaks", h.GetStreaks)
		r.Get("/report", h.GetReport)
	})

	return r
}
