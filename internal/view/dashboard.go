package view

import (
	"time"

	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

// Dashboard is everything the host needs to draw one frame.
type Dashboard struct {
	State      models.ViewState    `json:"state"`
	Now        time.Time           `json:"now"`
	Rows       []models.VehicleRow `json:"vehicles"`
	Stats      models.Stats        `json:"stats"`
	Focus      models.ViewFocus    `json:"focus"`
	SelectedID *int                `json:"selected_id,omitempty"`
	Markers    []models.Marker     `json:"markers"`
}

// ResolveSelection returns the selected vehicle, or nil when the state has no
// selection or the id does not match any vehicle.
func ResolveSelection(vehicles []models.Vehicle, state models.ViewState) *models.Vehicle {
	if state.SelectedID == nil {
		return nil
	}
	for i := range vehicles {
		if vehicles[i].ID == *state.SelectedID {
			v := vehicles[i]
			return &v
		}
	}
	return nil
}

// BuildRow derives the status and age of one vehicle, falling back to
// "unknown" when its timestamp does not parse.
func BuildRow(v models.Vehicle, now time.Time) models.VehicleRow {
	row := models.VehicleRow{Vehicle: v, Status: models.StatusUnknown, RelativeAge: "unknown"}
	if status, err := ClassifyStatus(v.LastUpdated, now); err == nil {
		row.Status = status
	}
	if age, err := FormatRelativeAge(v.LastUpdated, now); err == nil {
		row.RelativeAge = age
	}
	return row
}

// BuildMarkers prepares the unfiltered fleet for the map.
func BuildMarkers(vehicles []models.Vehicle, selected *models.Vehicle) []models.Marker {
	markers := make([]models.Marker, 0, len(vehicles))
	for _, v := range vehicles {
		markers = append(markers, models.Marker{
			Vehicle:     v,
			Selected:    selected != nil && selected.ID == v.ID,
			Position:    FormatPosition(v.Location),
			UpdatedText: FormatUpdated(v.LastUpdated),
		})
	}
	return markers
}

// Derive computes the full view from the fleet, the interaction state and now.
func Derive(vehicles []models.Vehicle, state models.ViewState, now time.Time) Dashboard {
	selected := ResolveSelection(vehicles, state)
	filtered := FilterFleet(vehicles, state.Search)

	rows := make([]models.VehicleRow, 0, len(filtered))
	for _, v := range filtered {
		rows = append(rows, BuildRow(v, now))
	}

	d := Dashboard{
		State:   state,
		Now:     now,
		Rows:    rows,
		Stats:   AggregateStats(vehicles, now),
		Focus:   ComputeFocus(selected),
		Markers: BuildMarkers(vehicles, selected),
	}
	if selected != nil {
		id := selected.ID
		d.SelectedID = &id
	} else {
		d.State.SelectedID = nil
	}
	return d
}
