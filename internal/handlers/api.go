package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-fleet-dashboard/internal/fleet"
	"github.com/ukydev/ev-fleet-dashboard/internal/mapview"
	"github.com/ukydev/ev-fleet-dashboard/internal/models"
	"github.com/ukydev/ev-fleet-dashboard/internal/view"
)

// VehicleListResponse is the JSON body of GET /api/vehicles.
type VehicleListResponse struct {
	Vehicles   []models.VehicleRow `json:"vehicles"`
	Stats      models.Stats        `json:"stats"`
	Focus      models.ViewFocus    `json:"focus"`
	SelectedID *int                `json:"selected_id,omitempty"`
}

// MapResponse is what the mapping surface needs to draw the fleet.
type MapResponse struct {
	Markers    []models.Marker    `json:"markers"`
	Focus      models.ViewFocus   `json:"focus"`
	SelectedID *int               `json:"selected_id,omitempty"`
	Tiles      mapview.TileConfig `json:"tiles"`
}

// MapStateResponse is returned by the map show/hide endpoints.
type MapStateResponse struct {
	State models.ViewState `json:"state"`
	Focus models.ViewFocus `json:"focus"`
}

// APIHandler serves the JSON API.
type APIHandler struct {
	controller *view.Controller
	tiles      mapview.TileConfig
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(controller *view.Controller, tiles mapview.TileConfig) *APIHandler {
	return &APIHandler{controller: controller, tiles: tiles}
}

// ListVehicles returns the filtered fleet with derived status.
func (h *APIHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	d := h.controller.Dashboard(models.ParseViewState(r.URL.Query()))
	writeJSON(w, http.StatusOK, VehicleListResponse{
		Vehicles:   d.Rows,
		Stats:      d.Stats,
		Focus:      d.Focus,
		SelectedID: d.SelectedID,
	})
}

// GetVehicle returns a single vehicle with its derived status.
func (h *APIHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}
	row, err := h.controller.Vehicle(id)
	if errors.Is(err, fleet.ErrVehicleNotFound) {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load vehicle", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// Stats returns the fleet totals.
func (h *APIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	d := h.controller.Dashboard(models.ViewState{})
	writeJSON(w, http.StatusOK, d.Stats)
}

// Map returns the unfiltered fleet as map markers plus the focus.
func (h *APIHandler) Map(w http.ResponseWriter, r *http.Request) {
	d := h.controller.Dashboard(models.ParseViewState(r.URL.Query()))
	writeJSON(w, http.StatusOK, MapResponse{
		Markers:    d.Markers,
		Focus:      d.Focus,
		SelectedID: d.SelectedID,
		Tiles:      h.tiles,
	})
}

// ShowMap opens the map on every connected display.
func (h *APIHandler) ShowMap(w http.ResponseWriter, r *http.Request) {
	state, ok := decodeState(w, r)
	if !ok {
		return
	}
	next, d := h.controller.ShowMap(state)
	writeJSON(w, http.StatusOK, MapStateResponse{State: next, Focus: d.Focus})
}

// HideMap closes the map overlay.
func (h *APIHandler) HideMap(w http.ResponseWriter, r *http.Request) {
	state, ok := decodeState(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, MapStateResponse{
		State: h.controller.HideMap(state),
		Focus: view.ComputeFocus(nil),
	})
}

// decodeState reads a ViewState body. An empty body is the zero state.
func decodeState(w http.ResponseWriter, r *http.Request) (models.ViewState, bool) {
	var state models.ViewState
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return state, false
	}
	if len(body) == 0 {
		return state, true
	}
	if err := json.Unmarshal(body, &state); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return state, false
	}
	return state, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}
