package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/ev-fleet-dashboard/internal/fleet"
	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

// MockVehicleCollection is a mock implementation of VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicles(ctx context.Context, vehicles []models.Vehicle) error {
	args := m.Called(ctx, vehicles)
	return args.Error(0)
}

func (m *MockVehicleCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestConnectMongo_BadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := ConnectMongo(ctx, "mongodb://bad:uri")
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestMongoCollection_NilCollection(t *testing.T) {
	coll := &MongoCollection{Collection: nil}
	assert.Error(t, coll.InsertVehicles(context.Background(), fleet.Seed()))
	_, err := coll.FindVehicles(context.Background())
	assert.Error(t, err)
	assert.Error(t, coll.DeleteAll(context.Background()))
}

func TestLoadFleet(t *testing.T) {
	t.Run("valid records", func(t *testing.T) {
		coll := new(MockVehicleCollection)
		coll.On("FindVehicles", mock.Anything).Return(fleet.Seed(), nil)

		store, err := LoadFleet(context.Background(), coll)
		require.NoError(t, err)
		assert.Equal(t, 4, store.Len())
		coll.AssertExpectations(t)
	})

	t.Run("invalid coordinate is rejected", func(t *testing.T) {
		vehicles := fleet.Seed()
		vehicles[1].Location.Latitude = 123
		coll := new(MockVehicleCollection)
		coll.On("FindVehicles", mock.Anything).Return(vehicles, nil)

		_, err := LoadFleet(context.Background(), coll)
		assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
	})

	t.Run("query failure", func(t *testing.T) {
		coll := new(MockVehicleCollection)
		coll.On("FindVehicles", mock.Anything).Return(nil, errors.New("db down"))

		_, err := LoadFleet(context.Background(), coll)
		assert.ErrorContains(t, err, "db down")
	})
}

func TestSeedFleet(t *testing.T) {
	coll := new(MockVehicleCollection)
	coll.On("DeleteAll", mock.Anything).Return(nil)
	coll.On("InsertVehicles", mock.Anything, fleet.Seed()).Return(nil)

	require.NoError(t, SeedFleet(context.Background(), coll))
	coll.AssertExpectations(t)

	failing := new(MockVehicleCollection)
	failing.On("DeleteAll", mock.Anything).Return(assert.AnError)
	assert.ErrorIs(t, SeedFleet(context.Background(), failing), assert.AnError)
	failing.AssertNotCalled(t, "InsertVehicles", mock.Anything, mock.Anything)
}

// Integration test (requires running MongoDB)
func TestMongoCollection_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" || uri == "uri" {
		t.Skip("MONGO_URI not set or invalid, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	defer client.Disconnect(context.Background())

	coll := &MongoCollection{Collection: client.Database("test_fleet").Collection("vehicles")}
	require.NoError(t, SeedFleet(ctx, coll))

	store, err := LoadFleet(ctx, coll)
	require.NoError(t, err)
	all := store.All()
	require.Len(t, all, 4)
	assert.Equal(t, fleet.Seed(), all)
}
