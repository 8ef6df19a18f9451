package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rfallows/moonrug/internal/api/handler"
	"github.com/rfallows/moonrug/internal/api/middleware"
	"github.com/rfallows/moonrug/internal/services/announce"
	"github.com/rfallows/moonrug/internal/services/flip"
	"github.com/rfallows/moonrug/internal/services/identity"
	"github.com/rfallows/moonrug/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	FlipController  *flip.Controller
	StatsService    *stats.Service
	AnnounceService *announce.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.IdentityService)
	flipHandler := handler.NewFlipHandler(cfg.FlipController, cfg.StatsService)
	statsHandler := handler.NewStatsHandler(cfg.StatsService, cfg.AnnounceService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/players", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/flip", flipHandler.Flip).Methods(http.MethodPost)
	api.HandleFunc("/gamedata", statsHandler.GameData).Methods(http.MethodGet)
	api.HandleFunc("/stats", statsHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/leaderboards", statsHandler.Leaderboards).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
