package internal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	slogchi "github.com/samber/slog-chi"
)

// Routes wires every handler of a into a chi router. The access log goes to logger.
func (a *App) Routes(logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(slogchi.NewWithConfig(logger, slogchi.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		WithSpanID:       true,
		WithTraceID:      true,
		Filters: []slogchi.Filter{
			slogchi.IgnorePath("/healthz"),
		},
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", a.IndexHandler)
	r.Get("/healthz", a.HealthHandler)
	r.Handle("/static/*", a.StaticHandler())

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET"},
			AllowedHeaders: []string{
				"Content-Type",
				"X-Requested-With",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Content-Language",
				"Origin",
			},
			MaxAge: 300,
		}))
		r.Get("/films", a.FilmsHandler)
		r.Get("/films/{id}", a.FilmHandler)
	})

	return r
}
