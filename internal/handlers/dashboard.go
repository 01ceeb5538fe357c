package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-fleet-dashboard/internal/mapview"
	"github.com/ukydev/ev-fleet-dashboard/internal/models"
	"github.com/ukydev/ev-fleet-dashboard/internal/view"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type card struct {
	Row    models.VehicleRow
	MapURL string
}

// mapScript is the data handed to the page's map script.
type mapScript struct {
	Markers     []models.Marker    `json:"markers"`
	Focus       models.ViewFocus   `json:"focus"`
	SelectedID  *int               `json:"selected_id,omitempty"`
	Tiles       mapview.TileConfig `json:"tiles"`
	FlyDuration float64            `json:"fly_duration"`
}

type page struct {
	Dashboard  view.Dashboard
	Cards      []card
	ShowAllURL string
	CloseURL   string
	Script     mapScript
}

// DashboardHandler serves the HTML dashboard.
type DashboardHandler struct {
	controller *view.Controller
	tiles      mapview.TileConfig
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(controller *view.Controller, tiles mapview.TileConfig) *DashboardHandler {
	return &DashboardHandler{controller: controller, tiles: tiles}
}

// Page renders the vehicle list and, when requested, the map overlay.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := models.ParseViewState(r.URL.Query())
	d := h.controller.Dashboard(state)

	p := page{
		Dashboard:  d,
		Cards:      make([]card, 0, len(d.Rows)),
		ShowAllURL: pageURL(models.ViewState{Search: d.State.Search, MapVisible: true}),
		CloseURL:   pageURL(h.controller.HideMap(d.State)),
		Script: mapScript{
			Markers:     d.Markers,
			Focus:       d.Focus,
			SelectedID:  d.SelectedID,
			Tiles:       h.tiles,
			FlyDuration: mapview.FlyDuration,
		},
	}
	for _, row := range d.Rows {
		id := row.Vehicle.ID
		p.Cards = append(p.Cards, card{
			Row:    row,
			MapURL: pageURL(models.ViewState{Search: d.State.Search, SelectedID: &id, MapVisible: true}),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		log.WithError(err).Error("Failed to render dashboard")
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func pageURL(state models.ViewState) string {
	if q := state.Values().Encode(); q != "" {
		return "/?" + q
	}
	return "/"
}
