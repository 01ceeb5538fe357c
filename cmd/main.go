package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/ev-fleet-dashboard/internal/config"
	"github.com/ukydev/ev-fleet-dashboard/internal/db"
	"github.com/ukydev/ev-fleet-dashboard/internal/fleet"
	"github.com/ukydev/ev-fleet-dashboard/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "fleetdash",
		Short:        "Electric vehicle fleet dashboard",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file loaded before the environment is read")

	root.AddCommand(
		newServeCmd(&envFile),
		newListCmd(&envFile),
		newSeedCmd(&envFile),
	)
	return root
}

// loadConfig reads the configuration and sets up logging from it.
func loadConfig(envFile string) (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// openFleet builds the fleet store from the configured source. MongoDB is
// read once; the connection is closed before returning.
func openFleet(ctx context.Context, cfg config.Config) (*fleet.Store, error) {
	if cfg.FleetSource != config.SourceMongo {
		return fleet.NewSeedStore()
	}

	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.WithError(err).Warn("MongoDB disconnect failed")
		}
	}()

	coll := &db.MongoCollection{Collection: client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)}
	return db.LoadFleet(ctx, coll)
}
