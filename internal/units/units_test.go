package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	testCases := []struct {
		unit  string
		valid bool
	}{
		{Seconds, true},
		{Minutes, true},
		{Hours, true},
		{"", false},
		{"days", false},
		{"Hours", false},
	}

	for _, tc := range testCases {
		if got := IsValid(tc.unit); got != tc.valid {
			t.Errorf("IsValid(%q) = %v, want %v", tc.unit, got, tc.valid)
		}
	}
}

func TestConvertDuration(t *testing.T) {
	testCases := []struct {
		name    string
		seconds float64
		unit    string
		want    float64
	}{
		{"seconds_passthrough", 90, Seconds, 90},
		{"to_minutes", 90, Minutes, 1.5},
		{"to_hours", 7200, Hours, 2},
		{"zero", 0, Hours, 0},
		{"unknown_unit_defaults_to_seconds", 42, "fortnights", 42},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ConvertDuration(tc.seconds, tc.unit)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("ConvertDuration(%v, %q) = %v, want %v", tc.seconds, tc.unit, got, tc.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if err := ValidateTimezone(""); err != nil {
		t.Errorf("empty timezone should be valid: %v", err)
	}
	if err := ValidateTimezone("UTC"); err != nil {
		t.Errorf("UTC should be valid: %v", err)
	}
	if err := ValidateTimezone("America/New_York"); err != nil {
		t.Errorf("America/New_York should be valid: %v", err)
	}
	if err := ValidateTimezone("Not/AZone"); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestLoadTimezone(t *testing.T) {
	loc, err := LoadTimezone("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "UTC" {
		t.Errorf("empty name should resolve to UTC, got %s", loc)
	}

	if _, err := LoadTimezone("Not/AZone"); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
