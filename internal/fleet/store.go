package fleet

import (
	"errors"
	"fmt"

	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

var (
	ErrDuplicateVehicle = errors.New("duplicate vehicle")
	ErrVehicleNotFound  = errors.New("vehicle not found")
)

// Source provides the ordered fleet to the view layer.
type Source interface {
	All() []models.Vehicle
	Find(id int) (models.Vehicle, bool)
}

// Store holds the immutable, validated list of fleet vehicles.
// Insertion order is display order.
type Store struct {
	vehicles []models.Vehicle
	index    map[int]int
}

// NewStore validates every record and builds a read-only store.
func NewStore(vehicles []models.Vehicle) (*Store, error) {
	s := &Store{
		vehicles: make([]models.Vehicle, 0, len(vehicles)),
		index:    make(map[int]int, len(vehicles)),
	}
	numbers := make(map[string]struct{}, len(vehicles))
	for _, v := range vehicles {
		if err := Validate(v); err != nil {
			return nil, err
		}
		if _, dup := s.index[v.ID]; dup {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateVehicle, v.ID)
		}
		if _, dup := numbers[v.Number]; dup {
			return nil, fmt.Errorf("%w: number %s", ErrDuplicateVehicle, v.Number)
		}
		numbers[v.Number] = struct{}{}
		s.index[v.ID] = len(s.vehicles)
		s.vehicles = append(s.vehicles, v)
	}
	return s, nil
}

// Validate rejects records with out-of-range coordinates or unparseable timestamps.
func Validate(v models.Vehicle) error {
	if !v.Location.Valid() {
		return fmt.Errorf("vehicle %s: %w: (%f, %f)", v.Number, models.ErrInvalidCoordinate,
			v.Location.Latitude, v.Location.Longitude)
	}
	if _, err := models.ParseTimestamp(v.LastUpdated); err != nil {
		return fmt.Errorf("vehicle %s: %w", v.Number, err)
	}
	return nil
}

// All returns a copy of the fleet in display order.
func (s *Store) All() []models.Vehicle {
	out := make([]models.Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// Find looks a vehicle up by id.
func (s *Store) Find(id int) (models.Vehicle, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Vehicle{}, false
	}
	return s.vehicles[i], true
}

// Len returns the number of vehicles in the store.
func (s *Store) Len() int { return len(s.vehicles) }
