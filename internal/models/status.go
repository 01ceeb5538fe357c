package models

// Status is the freshness classification derived from a vehicle's last update.
type Status string

const (
	StatusActive  Status = "active"
	StatusIdle    Status = "idle"
	StatusOffline Status = "offline"
	// StatusUnknown is only used for display when a timestamp cannot be parsed.
	StatusUnknown Status = "unknown"
)

// Label returns the capitalised form used in the UI.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusIdle:
		return "Idle"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// IsValidStatus checks if a status is one of the derived classifications.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusIdle, StatusOffline:
		return true
	default:
		return false
	}
}
