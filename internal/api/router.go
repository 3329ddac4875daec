package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/build"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/logger"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/store"
)

// Deps holds all dependencies required to build the HTTP router. Stores
// arrive as constructor arguments; nothing reads ambient globals.
type Deps struct {
	Bookmarks store.BookmarkStoreIface
	Log       logger.Logger

	// BasePath is the canonical route prefix (e.g. "/api"). Empty mounts
	// the resource routes at the root. The POST Location header honors it.
	BasePath string

	// Production controls how much detail 500 responses carry.
	Production bool
}

// NewRouter assembles the chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	h := &bookmarksHandler{
		store:      deps.Bookmarks,
		log:        deps.Log,
		basePath:   deps.BasePath,
		production: deps.Production,
	}
	if deps.BasePath == "" {
		registerBookmarkRoutes(r, h)
	} else {
		r.Route(deps.BasePath, func(r chi.Router) {
			registerBookmarkRoutes(r, h)
		})
	}

	return r
}

type healthzResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Commit  string `json:"commit,omitempty"`
}

// handleHealthz reports process liveness.
// GET /healthz
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(healthzResponse{
		Status:  "ok",
		Version: build.Version,
		Commit:  build.Commit,
	})
}
