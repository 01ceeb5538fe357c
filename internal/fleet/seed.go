package fleet

import "github.com/ukydev/ev-fleet-dashboard/internal/models"

// Seed returns the demo fleet loaded when no external source is configured.
func Seed() []models.Vehicle {
	return []models.Vehicle{
		{
			ID:          1,
			Number:      "EV-001",
			Supervisor:  "John Smith",
			Location:    models.Location{Latitude: 40.7128, Longitude: -74.0060},
			LastUpdated: "2025-11-09T10:30:00Z",
		},
		{
			ID:          2,
			Number:      "EV-002",
			Supervisor:  "Sarah Johnson",
			Location:    models.Location{Latitude: 34.0522, Longitude: -118.2437},
			LastUpdated: "2025-11-09T11:15:00Z",
		},
		{
			ID:          3,
			Number:      "EV-003",
			Supervisor:  "Michael Brown",
			Location:    models.Location{Latitude: 41.8781, Longitude: -87.6298},
			LastUpdated: "2025-11-09T09:45:00Z",
		},
		{
			ID:          4,
			Number:      "EV-004",
			Supervisor:  "Emily Davis",
			Location:    models.Location{Latitude: 29.7604, Longitude: -95.3698},
			LastUpdated: "2025-11-09T12:00:00Z",
		},
	}
}

// NewSeedStore builds a store from the seed fleet.
func NewSeedStore() (*Store, error) {
	return NewStore(Seed())
}
