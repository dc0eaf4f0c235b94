// Package geo holds the coordinate formatting rules the trip API expects:
// coordinates carry at most 6 decimal places, cycle hours at most 1.
package geo

import (
	"math"
	"strconv"
	"strings"

	"hauldeck/internal/trip"
)

// RoundCoord rounds a coordinate to exactly 6 decimal places using
// multiply-round-divide, half away from zero. Idempotent.
func RoundCoord(c float64) float64 {
	return math.Round(c*1e6) / 1e6
}

// RoundCycleHours rounds cycle hours to 1 decimal place.
func RoundCycleHours(h float64) float64 {
	return math.Round(h*10) / 10
}

// ValidCoord reports whether the shortest decimal representation of c has
// at most 6 fractional digits. Advisory only; it never mutates input.
func ValidCoord(c float64) bool {
	s := strconv.FormatFloat(c, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot == -1 {
		return true
	}
	return len(s)-dot-1 <= 6
}

// FormatDraft normalizes a draft submission before it reaches the API
// client: all six coordinates to 6 decimals, cycle hours to 1. Pure, never
// fails; a missing numeric value is simply zero.
func FormatDraft(d trip.Draft) trip.Draft {
	d.CurrentLat = RoundCoord(d.CurrentLat)
	d.CurrentLng = RoundCoord(d.CurrentLng)
	d.PickupLat = RoundCoord(d.PickupLat)
	d.PickupLng = RoundCoord(d.PickupLng)
	d.DropoffLat = RoundCoord(d.DropoffLat)
	d.DropoffLng = RoundCoord(d.DropoffLng)
	d.CurrentCycleHours = RoundCycleHours(d.CurrentCycleHours)
	return d
}

// ValidateDraftCoords returns one advisory message per coordinate that
// exceeds 6 decimal places.
func ValidateDraftCoords(d trip.Draft) []string {
	var errs []string
	check := func(name string, v float64) {
		if !ValidCoord(v) {
			errs = append(errs, name+" has too many decimal places (max 6)")
		}
	}
	check("Current location latitude", d.CurrentLat)
	check("Current location longitude", d.CurrentLng)
	check("Pickup location latitude", d.PickupLat)
	check("Pickup location longitude", d.PickupLng)
	check("Dropoff location latitude", d.DropoffLat)
	check("Dropoff location longitude", d.DropoffLng)
	return errs
}
