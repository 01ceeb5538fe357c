package mapview

import "github.com/ukydev/ev-fleet-dashboard/internal/models"

// FlyDuration is how long the map animates towards a focused vehicle, in seconds.
const FlyDuration = 1.5

// Surface is the mapping widget as seen by the view controller.
type Surface interface {
	Render(markers []models.Marker, focus models.ViewFocus, selectedID *int)
	FlyTo(center models.Location, zoom int)
}

// Command types sent to map clients.
const (
	CommandRender = "render"
	CommandFlyTo  = "flyTo"
)

// Command is the JSON message pushed to a map client.
type Command struct {
	Type       string            `json:"type"`
	Markers    []models.Marker   `json:"markers,omitempty"`
	Focus      *models.ViewFocus `json:"focus,omitempty"`
	SelectedID *int              `json:"selected_id,omitempty"`
	Center     *models.Location  `json:"center,omitempty"`
	Zoom       int               `json:"zoom,omitempty"`
	Duration   float64           `json:"duration,omitempty"`
}

// RenderCommand builds the message for a full redraw.
func RenderCommand(markers []models.Marker, focus models.ViewFocus, selectedID *int) Command {
	return Command{Type: CommandRender, Markers: markers, Focus: &focus, SelectedID: selectedID}
}

// FlyToCommand builds the message for an animated pan/zoom.
func FlyToCommand(center models.Location, zoom int) Command {
	return Command{Type: CommandFlyTo, Center: &center, Zoom: zoom, Duration: FlyDuration}
}

// TileConfig describes the tile layer the browser loads on its own.
type TileConfig struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// DefaultTiles is the public OpenStreetMap tile layer.
var DefaultTiles = TileConfig{
	URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
	Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
}
