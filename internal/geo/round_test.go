package geo

import (
	"testing"

	"hauldeck/internal/trip"
)

func TestRoundCoord(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"truncates beyond six decimals", 39.7392364123, 39.739236},
		{"rounds up past the midpoint", 10.0000006, 10.000001},
		{"negative rounds away from zero", -10.0000006, -10.000001},
		{"short values untouched", 41.88, 41.88},
		{"zero", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoundCoord(tc.in); got != tc.want {
				t.Fatalf("RoundCoord(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRoundCoordIdempotent(t *testing.T) {
	vals := []float64{39.7392364123, -104.9902999, 0.1234565, 89.999999949}
	for _, v := range vals {
		once := RoundCoord(v)
		if twice := RoundCoord(once); twice != once {
			t.Fatalf("RoundCoord not idempotent for %v: %v then %v", v, once, twice)
		}
	}
}

func TestRoundCycleHours(t *testing.T) {
	if got := RoundCycleHours(34.567); got != 34.6 {
		t.Fatalf("got %v, want 34.6", got)
	}
	if got := RoundCycleHours(0); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestValidCoord(t *testing.T) {
	if !ValidCoord(39.739236) {
		t.Fatal("six decimals should be valid")
	}
	if !ValidCoord(40) {
		t.Fatal("integer coordinate should be valid")
	}
	if ValidCoord(39.7392364) {
		t.Fatal("seven decimals should be invalid")
	}
}

func TestFormatDraft(t *testing.T) {
	d := trip.Draft{
		CurrentLat:        39.7392364123,
		CurrentLng:        -104.9902999111,
		PickupLat:         41.8781136222,
		PickupLng:         -87.6297982333,
		DropoffLat:        29.7604267444,
		DropoffLng:        -95.3698028555,
		CurrentCycleHours: 34.5678,
	}
	got := FormatDraft(d)

	if got.CurrentLat != 39.739236 || got.CurrentLng != -104.9903 {
		t.Fatalf("current coords not rounded: %v, %v", got.CurrentLat, got.CurrentLng)
	}
	if got.CurrentCycleHours != 34.6 {
		t.Fatalf("cycle hours not rounded: %v", got.CurrentCycleHours)
	}
	for _, v := range []float64{got.PickupLat, got.PickupLng, got.DropoffLat, got.DropoffLng} {
		if !ValidCoord(v) {
			t.Fatalf("coordinate %v still exceeds six decimals", v)
		}
	}
	// Formatting an already formatted draft changes nothing.
	if again := FormatDraft(got); again != got {
		t.Fatalf("FormatDraft not idempotent: %+v vs %+v", again, got)
	}
}

func TestValidateDraftCoords(t *testing.T) {
	if msgs := ValidateDraftCoords(trip.Draft{}); len(msgs) != 0 {
		t.Fatalf("empty draft should produce no warnings, got %v", msgs)
	}

	d := trip.Draft{PickupLat: 41.8781136}
	msgs := ValidateDraftCoords(d)
	if len(msgs) != 1 {
		t.Fatalf("want 1 warning, got %v", msgs)
	}
	if msgs[0] != "Pickup location latitude has too many decimal places (max 6)" {
		t.Fatalf("unexpected message %q", msgs[0])
	}
}
