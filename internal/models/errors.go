package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// ParseTimestamp parses a lastUpdated value into an absolute instant.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	return t, nil
}
