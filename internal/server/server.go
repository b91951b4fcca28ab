// Package server assembles the HTTP router: middleware, the chat API, the
// health check and the browser page.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Vovarama1992/gold-assistant/internal/chat"
	"github.com/Vovarama1992/gold-assistant/internal/web"
)

type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(opts Options, chatHandler *chat.Handler, log zerolog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestLogger(log))
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, chat.IntentHeader},
	}))

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/", web.Handler().ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
		chat.RegisterRoutes(r, chatHandler)
	})

	return r
}
