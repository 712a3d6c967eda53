// cmd/server/server.go
package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/api"
	"github.com/codr1/handball-record/internal/api/games"
	"github.com/codr1/handball-record/internal/api/live"
	"github.com/codr1/handball-record/internal/api/nav"
	"github.com/codr1/handball-record/internal/api/record"
	"github.com/codr1/handball-record/internal/api/roster"
	"github.com/codr1/handball-record/internal/api/scoreboard"
	"github.com/codr1/handball-record/internal/config"
	"github.com/codr1/handball-record/internal/db"
	"github.com/codr1/handball-record/internal/hub"
	"github.com/codr1/handball-record/internal/recorder"
)

type serverDeps struct {
	ctx      context.Context
	db       *db.DB
	recorder *recorder.Service
	hub      *hub.Hub
}

func newServer(cfg *config.Config, deps serverDeps) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	games.InitHandlers(deps.db.Queries, deps.recorder)
	roster.InitHandlers(deps.db, deps.recorder)
	record.InitHandlers(deps.recorder)
	scoreboard.InitHandlers(deps.db.Queries)
	live.InitHandlers(deps.ctx, deps.hub)
	nav.InitHandlers(deps.db.Queries)

	registerRoutes(router, deps)

	// WriteTimeout stays zero so websocket streams are not cut off.
	return &http.Server{
		Addr:        ":" + strconv.Itoa(cfg.App.Port),
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, deps serverDeps) {
	mux.HandleFunc("GET /{$}", games.HandleHomePage)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := deps.db.PingContext(ctx); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Health check database ping failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Game routes
	mux.HandleFunc("GET /games", games.HandleGamesPage)
	mux.HandleFunc("GET /games/{number}", games.HandleGameDetail)
	mux.HandleFunc("GET /api/v1/games", games.HandleGameList)
	mux.HandleFunc("POST /api/v1/games", games.HandleGameCreate)
	mux.HandleFunc("GET /api/v1/games/{number}", games.HandleGameDetail)
	mux.HandleFunc("PUT /api/v1/games/{number}", games.HandleGameUpdate)

	// Roster routes
	mux.HandleFunc("GET /teams/{group}", roster.HandleGroupPage)
	mux.HandleFunc("GET /teams/{group}/{team}", roster.HandleTeamDetail)
	mux.HandleFunc("POST /api/v1/players", roster.HandlePlayersImport)
	mux.HandleFunc("GET /api/v1/teams", roster.HandleTeamsList)
	mux.HandleFunc("GET /api/v1/teams/{group}/{team}", roster.HandleTeamDetail)
	mux.HandleFunc("PUT /api/v1/teams/{group}/{team}", roster.HandleTeamUpdate)
	mux.HandleFunc("GET /api/v1/games/{number}/lineup", roster.HandleGameLineup)
	mux.HandleFunc("GET /api/v1/players/search", nav.HandleSearch)

	// Recorder routes
	mux.HandleFunc("GET /games/{number}/record", record.HandleRecordPage)
	mux.HandleFunc("GET /api/v1/games/{number}/session", record.HandleSession)
	mux.HandleFunc("POST /api/v1/games/{number}/goalkeepers", record.HandleGoalkeeper)
	mux.HandleFunc("POST /api/v1/games/{number}/goalkeepers/substitute", record.HandleGoalkeeperSubstitute)
	mux.HandleFunc("POST /api/v1/games/{number}/clock/{action}", record.HandleClock)
	mux.HandleFunc("POST /api/v1/games/{number}/timeouts", record.HandleTimeout)
	mux.HandleFunc("POST /api/v1/games/{number}/entry/{step}", record.HandleEntry)
	mux.HandleFunc("DELETE /api/v1/games/{number}/events/{index}", record.HandleEventDelete)
	mux.HandleFunc("GET /api/v1/games/{number}/boxscore", record.HandleBoxScore)

	// Scoreboard routes
	mux.HandleFunc("GET /scoreboard/{group}", scoreboard.HandleScoreboardPage)
	mux.HandleFunc("GET /api/v1/scoreboard/{group}", scoreboard.HandleScoreboard)

	// Live updates
	mux.HandleFunc("GET /ws/games/{number}", live.HandleGameStream)

	// Static file handling with logging and environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
