package view

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/ev-fleet-dashboard/internal/fleet"
	"github.com/ukydev/ev-fleet-dashboard/internal/metrics"
	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

// MockSurface is a mock implementation of mapview.Surface
type MockSurface struct {
	mock.Mock
}

func (m *MockSurface) Render(markers []models.Marker, focus models.ViewFocus, selectedID *int) {
	m.Called(markers, focus, selectedID)
}

func (m *MockSurface) FlyTo(center models.Location, zoom int) {
	m.Called(center, zoom)
}

func newTestController(t *testing.T, surface *MockSurface) *Controller {
	t.Helper()
	store, err := fleet.NewSeedStore()
	require.NoError(t, err)
	return NewController(store, surface, func() time.Time { return referenceNow })
}

func TestController_Dashboard(t *testing.T) {
	c := newTestController(t, new(MockSurface))
	d := c.Dashboard(models.ViewState{Search: "ev-00"})
	assert.Len(t, d.Rows, 4)
	assert.Equal(t, referenceNow, d.Now)
	assert.Equal(t, 1, d.Stats.ActiveCount)
}

func TestController_DashboardGaugeCoversWholeFleet(t *testing.T) {
	c := newTestController(t, new(MockSurface))
	gauge := func(s models.Status) float64 {
		return testutil.ToFloat64(metrics.VehiclesByStatus.WithLabelValues(string(s)))
	}

	for _, state := range []models.ViewState{{}, {Search: "emily"}, {Search: "nobody"}} {
		c.Dashboard(state)
		assert.Equal(t, 1.0, gauge(models.StatusActive), "search %q", state.Search)
		assert.Equal(t, 2.0, gauge(models.StatusIdle), "search %q", state.Search)
		assert.Equal(t, 1.0, gauge(models.StatusOffline), "search %q", state.Search)
		assert.Equal(t, 0.0, gauge(models.StatusUnknown), "search %q", state.Search)
	}
}

func TestController_Vehicle(t *testing.T) {
	c := newTestController(t, new(MockSurface))

	row, err := c.Vehicle(3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, row.Status)
	assert.Equal(t, "2h ago", row.RelativeAge)

	_, err = c.Vehicle(404)
	assert.ErrorIs(t, err, fleet.ErrVehicleNotFound)
}

func TestController_ShowMap(t *testing.T) {
	t.Run("all vehicles", func(t *testing.T) {
		surface := new(MockSurface)
		c := newTestController(t, surface)

		surface.On("Render", mock.MatchedBy(func(m []models.Marker) bool { return len(m) == 4 }),
			ComputeFocus(nil), (*int)(nil)).Return()

		state, d := c.ShowMap(models.ViewState{Search: "nobody"})
		assert.True(t, state.MapVisible)
		assert.Equal(t, "nobody", state.Search)
		assert.Empty(t, d.Rows)

		surface.AssertExpectations(t)
		surface.AssertNotCalled(t, "FlyTo", mock.Anything, mock.Anything)
	})

	t.Run("focused vehicle", func(t *testing.T) {
		surface := new(MockSurface)
		c := newTestController(t, surface)
		center := models.Location{Latitude: 40.7128, Longitude: -74.0060}

		surface.On("Render", mock.Anything, models.ViewFocus{Center: center, Zoom: 13},
			mock.MatchedBy(func(id *int) bool { return id != nil && *id == 1 })).Return()
		surface.On("FlyTo", center, 13).Return()

		id := 1
		state, _ := c.ShowMap(models.ViewState{SelectedID: &id})
		assert.True(t, state.MapVisible)
		require.NotNil(t, state.SelectedID)
		assert.Equal(t, 1, *state.SelectedID)

		surface.AssertExpectations(t)
	})

	t.Run("dangling selection falls back to overview", func(t *testing.T) {
		surface := new(MockSurface)
		c := newTestController(t, surface)

		surface.On("Render", mock.Anything, ComputeFocus(nil), (*int)(nil)).Return()

		id := 77
		state, _ := c.ShowMap(models.ViewState{SelectedID: &id})
		assert.Nil(t, state.SelectedID)
		surface.AssertExpectations(t)
		surface.AssertNotCalled(t, "FlyTo", mock.Anything, mock.Anything)
	})
}

func TestController_ShowMapLogsOnce(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	level := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(level)

	surface := new(MockSurface)
	surface.On("Render", mock.Anything, mock.Anything, mock.Anything).Return()
	surface.On("FlyTo", mock.Anything, mock.Anything).Return()
	c := newTestController(t, surface)

	id := 2
	c.ShowMap(models.ViewState{Search: "sarah", SelectedID: &id})

	var shown []*log.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "Map shown" {
			shown = append(shown, e)
		}
	}
	require.Len(t, shown, 1)
	assert.Equal(t, 2, shown[0].Data["selected_id"])
	assert.Equal(t, "sarah", shown[0].Data["search"])
}

func TestController_HideMap(t *testing.T) {
	c := newTestController(t, new(MockSurface))
	id := 2
	state := c.HideMap(models.ViewState{Search: "x", SelectedID: &id, MapVisible: true})
	assert.False(t, state.MapVisible)
	assert.Equal(t, "x", state.Search)
	require.NotNil(t, state.SelectedID)
}

func TestNewController_DefaultClock(t *testing.T) {
	store, err := fleet.NewSeedStore()
	require.NoError(t, err)
	c := NewController(store, new(MockSurface), nil)
	assert.WithinDuration(t, time.Now(), c.Now(), time.Second)
}
