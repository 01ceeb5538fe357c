package models

import (
	"net/url"
	"strconv"
	"strings"
)

// ViewFocus is the map viewport handed to the mapping surface.
type ViewFocus struct {
	Center Location `json:"center"`
	Zoom   int      `json:"zoom"`
}

// Stats summarises the fleet for the dashboard header.
type Stats struct {
	Total       int `json:"total"`
	ActiveCount int `json:"active_count"`
}

// VehicleRow is one entry of the filtered vehicle list.
type VehicleRow struct {
	Vehicle     Vehicle `json:"vehicle"`
	Status      Status  `json:"status"`
	RelativeAge string  `json:"relative_age"`
}

// Marker is a vehicle as rendered on the map, including popup text.
type Marker struct {
	Vehicle     Vehicle `json:"vehicle"`
	Selected    bool    `json:"selected"`
	Position    string  `json:"position"`
	UpdatedText string  `json:"updated_text"`
}

// ViewState is the interaction state owned by the host UI.
type ViewState struct {
	Search     string `json:"search"`
	SelectedID *int   `json:"selected_id,omitempty"`
	MapVisible bool   `json:"map_visible"`
}

// Query parameter names used to carry ViewState across requests.
const (
	QuerySearch   = "q"
	QuerySelected = "selected"
	QueryMap      = "map"
)

// ParseViewState reads the interaction state from URL query values.
// A malformed selected id is ignored, which the derivation treats as no selection.
func ParseViewState(values url.Values) ViewState {
	state := ViewState{Search: values.Get(QuerySearch)}
	if raw := strings.TrimSpace(values.Get(QuerySelected)); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			state.SelectedID = &id
		}
	}
	switch strings.ToLower(values.Get(QueryMap)) {
	case "1", "true", "yes", "on":
		state.MapVisible = true
	}
	return state
}

// Values encodes the state back into URL query values.
func (s ViewState) Values() url.Values {
	values := url.Values{}
	if s.Search != "" {
		values.Set(QuerySearch, s.Search)
	}
	if s.SelectedID != nil {
		values.Set(QuerySelected, strconv.Itoa(*s.SelectedID))
	}
	if s.MapVisible {
		values.Set(QueryMap, "1")
	}
	return values
}

// WithSelection returns a copy of the state with the given selection.
func (s ViewState) WithSelection(id *int) ViewState {
	if id != nil {
		v := *id
		id = &v
	}
	s.SelectedID = id
	return s
}
