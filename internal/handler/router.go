/*
Package handler provides the HTTP handlers and routing setup for the pairing server.

This file defines the main Router, applying middleware like logging, CORS,
identity extraction, and IP-based rate limiting before delegating requests to
the room handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"doodlepair/internal/pkg/auth/jwt"
	"doodlepair/internal/pkg/limiter"
	"doodlepair/internal/pkg/logx"
	"doodlepair/internal/pkg/resp"
)

const (
	CreateRate  = 0.05
	CreateBurst = 2
	JoinRate    = 0.2
	JoinBurst   = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters for the mutating room operations,
// configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	createLimiter := limiter.NewIPRateLimiter(rate.Limit(CreateRate), CreateBurst)
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(JoinRate), JoinBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "DoodlePair Server",
		}
		resp.RespondOK(w, r, data)
	})

	r.Route("/room", func(room chi.Router) {
		room.Use(jwt.RequireIdentity(deps.Config.JWTSecret))

		room.With(createLimiter.Middleware).Post("/create", HandleCreateRoom(deps))
		room.With(joinLimiter.Middleware).Post("/join", HandleJoinRoom(deps))
		room.Get("/status", HandleRoomStatus(deps))
		room.Post("/leave", HandleLeaveRoom(deps))
	})

	return r
}
