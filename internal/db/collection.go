package db

import (
	"context"

	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicles(ctx context.Context, vehicles []models.Vehicle) error
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	DeleteAll(ctx context.Context) error
}
