package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/ev-fleet-dashboard/internal/config"
	"github.com/ukydev/ev-fleet-dashboard/internal/handlers"
	"github.com/ukydev/ev-fleet-dashboard/internal/mapview"
	"github.com/ukydev/ev-fleet-dashboard/internal/view"
)

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

// runServe serves the dashboard until ctx is cancelled, then shuts down
// within cfg.ShutdownTimeout.
func runServe(ctx context.Context, cfg config.Config) error {
	store, err := openFleet(ctx, cfg)
	if err != nil {
		return err
	}

	hub := mapview.NewHub()
	defer hub.Close()

	controller := view.NewController(store, hub, cfg.Clock())
	router := handlers.NewRouter(controller, hub, handlers.RouterOptions{
		Tiles:             mapview.TileConfig{URL: cfg.TileURL, Attribution: cfg.TileAttribution},
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":     cfg.HTTPAddr,
			"source":   cfg.FleetSource,
			"vehicles": store.Len(),
		}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
