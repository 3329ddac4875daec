package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/api"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/config"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/db"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/logger"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logger.New(cfg.IsProduction(), cfg.LogLevel)
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			bookmarks := store.NewBookmarkStore(database, cfg.DB.Driver)

			router := api.NewRouter(api.Deps{
				Bookmarks:  bookmarks,
				Log:        log,
				BasePath:   cfg.HTTP.BasePath,
				Production: cfg.IsProduction(),
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			log.Info("listening", logger.String("addr", cfg.HTTP.Addr))
			return srv.ListenAndServe()
		},
	}
}
