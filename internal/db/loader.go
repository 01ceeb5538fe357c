package db

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-fleet-dashboard/internal/fleet"
)

// LoadFleet reads the vehicles once and builds a validated fleet store.
// Invalid records abort the load.
func LoadFleet(ctx context.Context, coll VehicleCollection) (*fleet.Store, error) {
	vehicles, err := coll.FindVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	store, err := fleet.NewStore(vehicles)
	if err != nil {
		return nil, fmt.Errorf("load fleet: %w", err)
	}
	log.WithField("vehicles", store.Len()).Info("Loaded fleet from MongoDB")
	return store, nil
}

// SeedFleet replaces the collection content with the demo fleet.
func SeedFleet(ctx context.Context, coll VehicleCollection) error {
	if err := coll.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear vehicles: %w", err)
	}
	if err := coll.InsertVehicles(ctx, fleet.Seed()); err != nil {
		return fmt.Errorf("insert vehicles: %w", err)
	}
	return nil
}
