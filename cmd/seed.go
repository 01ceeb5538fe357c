package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/ev-fleet-dashboard/internal/db"
	"github.com/ukydev/ev-fleet-dashboard/internal/fleet"
)

func newSeedCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the MongoDB vehicle collection with the demo fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			client, err := db.ConnectMongo(ctx, cfg.MongoURI)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			coll := &db.MongoCollection{Collection: client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)}
			if err := db.SeedFleet(ctx, coll); err != nil {
				return err
			}

			n := len(fleet.Seed())
			log.WithFields(log.Fields{
				"db":         cfg.MongoDB,
				"collection": cfg.MongoCollection,
				"vehicles":   n,
			}).Info("Seeded fleet")
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d vehicles into %s.%s\n", n, cfg.MongoDB, cfg.MongoCollection)
			return nil
		},
	}
}
