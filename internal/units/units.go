// Package units provides shared constants and validation for duration units
// and report timezones.
package units

// Duration unit constants. Case durations are computed in seconds and
// converted on the way out.
const (
	Seconds = "seconds"
	Minutes = "minutes"
	Hours   = "hours"
)

// ValidUnits contains all valid duration unit values.
var ValidUnits = []string{Seconds, Minutes, Hours}

// IsValid checks if the given unit is in the list of valid units.
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages.
func GetValidUnitsString() string {
	return "seconds, minutes, hours"
}

// ConvertDuration converts a duration from seconds to the target units.
// Durations are stored internally in seconds.
func ConvertDuration(seconds float64, targetUnits string) float64 {
	switch targetUnits {
	case Minutes:
		return seconds / 60
	case Hours:
		return seconds / 3600
	case Seconds:
		return seconds
	default:
		return seconds // default to seconds if unknown unit
	}
}
