package httpserver

import (
	"net/http"
	"time"

	"qd-calendar-go/internal/config"
	"qd-calendar-go/internal/transport/httpserver/handler"
	authmw "qd-calendar-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.Auth, uploadDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/guest-login", handlers.GuestLogin)
		r.Post("/auth/refresh", handlers.Refresh)

		// Event reads are open, a token only enriches the context.
		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)

			r.Get("/events", handlers.ListEvents)
			r.Get("/events/upcoming", handlers.Upcoming)
			r.Get("/events/{id}", handlers.GetEvent)
			r.Get("/calendar", handlers.Calendar)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/profile", handlers.Profile)

			r.Get("/members", handlers.ListMembers)
			r.Get("/members/stats", handlers.MemberStats)
			r.Get("/members/{id}", handlers.GetMember)

			r.Get("/analytics/overview", handlers.AnalyticsOverview)
			r.Get("/analytics/events", handlers.AnalyticsEvents)
			r.Get("/analytics/members", handlers.AnalyticsMembers)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Post("/events", handlers.CreateEvent)
				r.Put("/events/{id}", handlers.UpdateEvent)
				r.Delete("/events/{id}", handlers.DeleteEvent)

				r.Post("/members", handlers.CreateMember)
				r.Put("/members/{id}", handlers.UpdateMember)
				r.Delete("/members/{id}", handlers.DeleteMember)

				r.Post("/upload/image", handlers.UploadImage)
			})
		})
	})

	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	return r
}
