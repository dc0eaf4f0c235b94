package trip

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleTripJSON = `{
	"id": "a3f1c2d4",
	"current_location": "Denver, CO",
	"current_lat": "39.739236",
	"current_lng": "-104.990300",
	"pickup_location": "Chicago, IL",
	"pickup_lat": "41.878114",
	"pickup_lng": "-87.629798",
	"dropoff_location": "Houston, TX",
	"dropoff_lat": "29.760427",
	"dropoff_lng": "-95.369803",
	"current_cycle_hours": "12.5",
	"driver_name": "R. Alvarez",
	"carrier_name": "Bluegrass Freight",
	"truck_number": "TX-2041",
	"created_at": "2026-08-20T14:03:00Z",
	"route_segments": [
		{
			"id": 1,
			"start_location": "Denver, CO",
			"end_location": "Chicago, IL",
			"distance_miles": "1003.40",
			"duration_hours": "18.25",
			"segment_type": "driving",
			"order": 1
		},
		{
			"id": 2,
			"start_location": "Chicago, IL",
			"end_location": "Chicago, IL",
			"distance_miles": "0.00",
			"duration_hours": "1.00",
			"segment_type": "pickup",
			"order": 2
		}
	],
	"daily_logs": [
		{
			"id": 7,
			"date": "2026-08-20",
			"total_miles": "550.00",
			"total_hours_off_duty": "10.00",
			"total_hours_sleeper": "0.00",
			"total_hours_driving": "11.00",
			"total_hours_on_duty": "3.00",
			"log_entries": [
				{
					"id": 31,
					"start_time": "08:00:00",
					"end_time": "19:00:00",
					"duty_status": "driving",
					"location": "I-76 E",
					"remarks": "En route"
				}
			]
		}
	]
}`

func TestNormalize(t *testing.T) {
	var w WireTrip
	if err := json.Unmarshal([]byte(sampleTripJSON), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got, err := Normalize(w)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	want := &Trip{
		ID:                "a3f1c2d4",
		CurrentLocation:   "Denver, CO",
		CurrentLat:        39.739236,
		CurrentLng:        -104.9903,
		PickupLocation:    "Chicago, IL",
		PickupLat:         41.878114,
		PickupLng:         -87.629798,
		DropoffLocation:   "Houston, TX",
		DropoffLat:        29.760427,
		DropoffLng:        -95.369803,
		CurrentCycleHours: 12.5,
		DriverName:        "R. Alvarez",
		CarrierName:       "Bluegrass Freight",
		TruckNumber:       "TX-2041",
		CreatedAt:         "2026-08-20T14:03:00Z",
		Segments: []RouteSegment{
			{
				ID:            1,
				StartLocation: "Denver, CO",
				EndLocation:   "Chicago, IL",
				DistanceMiles: 1003.4,
				DurationHours: 18.25,
				Type:          SegmentDriving,
				Order:         1,
			},
			{
				ID:            2,
				StartLocation: "Chicago, IL",
				EndLocation:   "Chicago, IL",
				DistanceMiles: 0,
				DurationHours: 1,
				Type:          SegmentPickup,
				Order:         2,
			},
		},
		DailyLogs: []DailyLog{
			{
				ID:                7,
				Date:              "2026-08-20",
				TotalMiles:        550,
				TotalHoursOffDuty: 10,
				TotalHoursSleeper: 0,
				TotalHoursDriving: 11,
				TotalHoursOnDuty:  3,
				Entries: []LogEntry{
					{
						ID:        31,
						StartTime: "08:00:00",
						EndTime:   "19:00:00",
						Status:    StatusDriving,
						Location:  "I-76 E",
						Remarks:   "En route",
					},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeMalformedField(t *testing.T) {
	w := WireTrip{
		ID:         "bad",
		CurrentLat: "not-a-number",
	}
	_, err := Normalize(w)
	if err == nil {
		t.Fatal("expected error for malformed current_lat")
	}
	if !strings.Contains(err.Error(), "current_lat") {
		t.Fatalf("error should name the field, got %q", err)
	}
	if !strings.Contains(err.Error(), "not-a-number") {
		t.Fatalf("error should quote the value, got %q", err)
	}
}

func TestNormalizeMalformedSegmentField(t *testing.T) {
	w := WireTrip{
		CurrentLat: "0", CurrentLng: "0",
		PickupLat: "0", PickupLng: "0",
		DropoffLat: "0", DropoffLng: "0",
		CurrentCycleHours: "0",
		RouteSegments: []WireSegment{
			{DistanceMiles: "12.0", DurationHours: "??"},
		},
	}
	_, err := Normalize(w)
	if err == nil || !strings.Contains(err.Error(), "duration_hours") {
		t.Fatalf("expected duration_hours error, got %v", err)
	}
}

func TestNormalizeAll(t *testing.T) {
	good := WireTrip{
		ID:         "t1",
		CurrentLat: "1", CurrentLng: "2",
		PickupLat: "3", PickupLng: "4",
		DropoffLat: "5", DropoffLng: "6",
		CurrentCycleHours: "7",
	}
	trips, err := NormalizeAll([]WireTrip{good})
	if err != nil {
		t.Fatalf("NormalizeAll: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != "t1" {
		t.Fatalf("unexpected result %+v", trips)
	}

	bad := good
	bad.ID = "t2"
	bad.PickupLat = "x"
	if _, err := NormalizeAll([]WireTrip{good, bad}); err == nil {
		t.Fatal("expected error from malformed trip in list")
	} else if !strings.Contains(err.Error(), "t2") {
		t.Fatalf("error should name the trip, got %v", err)
	}
}

func TestTripAggregates(t *testing.T) {
	tr := Trip{Segments: []RouteSegment{
		{DistanceMiles: 100, DurationHours: 2, Type: SegmentDriving},
		{DistanceMiles: 0, DurationHours: 0.5, Type: SegmentFuel},
		{DistanceMiles: 50, DurationHours: 1, Type: SegmentDriving},
	}}
	if got := tr.TotalDistance(); got != 150 {
		t.Fatalf("TotalDistance = %v", got)
	}
	if got := tr.TotalDuration(); got != 3.5 {
		t.Fatalf("TotalDuration = %v", got)
	}
	if got := tr.CountSegments(SegmentDriving); got != 2 {
		t.Fatalf("CountSegments(driving) = %d", got)
	}
	if got := tr.CountSegments(SegmentRest); got != 0 {
		t.Fatalf("CountSegments(rest) = %d", got)
	}
}

func TestDailyLogTotalFor(t *testing.T) {
	d := DailyLog{
		TotalHoursOffDuty: 10,
		TotalHoursSleeper: 2,
		TotalHoursDriving: 9,
		TotalHoursOnDuty:  3,
	}
	for _, tc := range []struct {
		status DutyStatus
		want   float64
	}{
		{StatusOffDuty, 10},
		{StatusSleeperBerth, 2},
		{StatusDriving, 9},
		{StatusOnDuty, 3},
		{DutyStatus("bogus"), 0},
	} {
		if got := d.TotalFor(tc.status); got != tc.want {
			t.Fatalf("TotalFor(%s) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
