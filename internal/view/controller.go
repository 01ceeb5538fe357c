package view

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-fleet-dashboard/internal/fleet"
	"github.com/ukydev/ev-fleet-dashboard/internal/mapview"
	"github.com/ukydev/ev-fleet-dashboard/internal/metrics"
	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

// Controller is the top-level view controller. It binds the fleet, the map
// surface and a clock; interaction state is always passed in explicitly.
type Controller struct {
	fleet   fleet.Source
	surface mapview.Surface
	now     func() time.Time

	// surfaceMu keeps a render and its flyTo together.
	surfaceMu sync.Mutex
}

// NewController creates a controller. A nil clock defaults to time.Now.
func NewController(source fleet.Source, surface mapview.Surface, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{fleet: source, surface: surface, now: now}
}

// Now returns the controller's current time.
func (c *Controller) Now() time.Time { return c.now() }

// Dashboard derives the view for the given state.
func (c *Controller) Dashboard(state models.ViewState) Dashboard {
	vehicles := c.fleet.All()
	now := c.now()
	d := Derive(vehicles, state, now)
	metrics.DashboardDerivations.Inc()
	metrics.ObserveStatuses(fleetRows(vehicles, d, now))
	return d
}

// fleetRows returns the rows of the whole fleet, reusing the derived rows
// when no filter was applied.
func fleetRows(vehicles []models.Vehicle, d Dashboard, now time.Time) []models.VehicleRow {
	if len(d.Rows) == len(vehicles) {
		return d.Rows
	}
	rows := make([]models.VehicleRow, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, BuildRow(v, now))
	}
	return rows
}

// Vehicle returns one vehicle with its derived status.
func (c *Controller) Vehicle(id int) (models.VehicleRow, error) {
	v, ok := c.fleet.Find(id)
	if !ok {
		return models.VehicleRow{}, fleet.ErrVehicleNotFound
	}
	return BuildRow(v, c.now()), nil
}

// ShowMap opens the map overlay, either on the whole fleet or on the selected
// vehicle, and returns the updated state.
func (c *Controller) ShowMap(state models.ViewState) (models.ViewState, Dashboard) {
	state.MapVisible = true
	d := c.Dashboard(state)

	c.surfaceMu.Lock()
	c.surface.Render(d.Markers, d.Focus, d.SelectedID)
	metrics.MapCommands.WithLabelValues(mapview.CommandRender).Inc()
	if d.SelectedID != nil {
		c.surface.FlyTo(d.Focus.Center, d.Focus.Zoom)
		metrics.MapCommands.WithLabelValues(mapview.CommandFlyTo).Inc()
	}
	c.surfaceMu.Unlock()

	fields := log.Fields{"search": d.State.Search, "zoom": d.Focus.Zoom}
	if d.SelectedID != nil {
		fields["selected_id"] = *d.SelectedID
	}
	log.WithFields(fields).Info("Map shown")
	return d.State, d
}

// HideMap closes the map overlay.
func (c *Controller) HideMap(state models.ViewState) models.ViewState {
	state.MapVisible = false
	return state
}
