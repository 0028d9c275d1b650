package units

import (
	"fmt"
	"time"
)

// ValidateTimezone checks that the given name resolves in the system tz
// database. An empty name is treated as UTC and is valid.
func ValidateTimezone(name string) error {
	if name == "" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return nil
}

// LoadTimezone resolves a timezone name to a *time.Location, defaulting to
// UTC for the empty string.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}
