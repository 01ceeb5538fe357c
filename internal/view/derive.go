package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/ukydev/ev-fleet-dashboard/internal/models"
)

// Status thresholds in whole minutes since the last update.
const (
	idleAfterMinutes    = 30
	offlineAfterMinutes = 120
)

// Map zoom levels and the default "show all" center.
const (
	FocusZoom   = 13
	OverallZoom = 4
)

var OverallCenter = models.Location{Latitude: 39.8283, Longitude: -98.5795}

// minutesSince returns now-lastUpdated in whole minutes, truncated toward zero.
func minutesSince(lastUpdated string, now time.Time) (int64, time.Time, error) {
	ts, err := models.ParseTimestamp(lastUpdated)
	if err != nil {
		return 0, time.Time{}, err
	}
	return int64(now.Sub(ts) / time.Minute), ts, nil
}

// ClassifyStatus buckets a vehicle by how long ago it reported.
// Timestamps in the future count as active.
func ClassifyStatus(lastUpdated string, now time.Time) (models.Status, error) {
	delta, _, err := minutesSince(lastUpdated, now)
	if err != nil {
		return models.StatusUnknown, err
	}
	switch {
	case delta < idleAfterMinutes:
		return models.StatusActive, nil
	case delta < offlineAfterMinutes:
		return models.StatusIdle, nil
	default:
		return models.StatusOffline, nil
	}
}

// FormatRelativeAge renders the age of an update for display.
// Its buckets are unrelated to the status thresholds.
func FormatRelativeAge(lastUpdated string, now time.Time) (string, error) {
	delta, ts, err := minutesSince(lastUpdated, now)
	if err != nil {
		return "", err
	}
	switch {
	case delta < 60:
		return fmt.Sprintf("%dm ago", delta), nil
	case delta < 24*60:
		return fmt.Sprintf("%dh ago", delta/60), nil
	default:
		return ts.UTC().Format("1/2/2006"), nil
	}
}

// FilterFleet keeps vehicles whose number or supervisor contains term,
// ignoring case. Order is preserved.
func FilterFleet(vehicles []models.Vehicle, term string) []models.Vehicle {
	needle := strings.ToLower(term)
	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if needle == "" ||
			strings.Contains(strings.ToLower(v.Number), needle) ||
			strings.Contains(strings.ToLower(v.Supervisor), needle) {
			out = append(out, v)
		}
	}
	return out
}

// ComputeFocus picks the map viewport for an optional selection.
func ComputeFocus(selected *models.Vehicle) models.ViewFocus {
	if selected == nil {
		return models.ViewFocus{Center: OverallCenter, Zoom: OverallZoom}
	}
	return models.ViewFocus{Center: selected.Location, Zoom: FocusZoom}
}

// AggregateStats counts the fleet and its active members.
func AggregateStats(vehicles []models.Vehicle, now time.Time) models.Stats {
	stats := models.Stats{Total: len(vehicles)}
	for _, v := range vehicles {
		if status, err := ClassifyStatus(v.LastUpdated, now); err == nil && status == models.StatusActive {
			stats.ActiveCount++
		}
	}
	return stats
}

// FormatPosition renders a location the way the map popup shows it.
func FormatPosition(l models.Location) string {
	return fmt.Sprintf("%.4f°, %.4f°", l.Latitude, l.Longitude)
}

// FormatUpdated renders the popup update time, e.g. "Nov 9, 10:30 AM".
func FormatUpdated(lastUpdated string) string {
	ts, err := models.ParseTimestamp(lastUpdated)
	if err != nil {
		return "unknown"
	}
	return ts.UTC().Format("Jan 2, 03:04 PM")
}
