package trip

import (
	"fmt"

	"github.com/spf13/cast"
)

// The backend encodes every numeric field as a decimal string. These wire
// types mirror that encoding exactly; Normalize parses each field
// explicitly so malformed payloads fail with a named field instead of
// leaking NaN into the model.

// WireTrip is the trip shape as it appears in API responses.
type WireTrip struct {
	ID                string         `json:"id"`
	CurrentLocation   string         `json:"current_location"`
	CurrentLat        string         `json:"current_lat"`
	CurrentLng        string         `json:"current_lng"`
	PickupLocation    string         `json:"pickup_location"`
	PickupLat         string         `json:"pickup_lat"`
	PickupLng         string         `json:"pickup_lng"`
	DropoffLocation   string         `json:"dropoff_location"`
	DropoffLat        string         `json:"dropoff_lat"`
	DropoffLng        string         `json:"dropoff_lng"`
	CurrentCycleHours string         `json:"current_cycle_hours"`
	DriverName        string         `json:"driver_name"`
	CarrierName       string         `json:"carrier_name"`
	TruckNumber       string         `json:"truck_number"`
	CreatedAt         string         `json:"created_at"`
	RouteSegments     []WireSegment  `json:"route_segments"`
	DailyLogs         []WireDailyLog `json:"daily_logs"`
}

// WireSegment is the route-segment wire shape.
type WireSegment struct {
	ID            int    `json:"id"`
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`
	DistanceMiles string `json:"distance_miles"`
	DurationHours string `json:"duration_hours"`
	SegmentType   string `json:"segment_type"`
	Order         int    `json:"order"`
}

// WireDailyLog is the daily-log wire shape.
type WireDailyLog struct {
	ID                int            `json:"id"`
	Date              string         `json:"date"`
	TotalMiles        string         `json:"total_miles"`
	TotalHoursOffDuty string         `json:"total_hours_off_duty"`
	TotalHoursSleeper string         `json:"total_hours_sleeper"`
	TotalHoursDriving string         `json:"total_hours_driving"`
	TotalHoursOnDuty  string         `json:"total_hours_on_duty"`
	LogEntries        []WireLogEntry `json:"log_entries"`
}

// WireLogEntry is the log-entry wire shape. It carries no numeric strings,
// so it converts field-for-field.
type WireLogEntry struct {
	ID         int    `json:"id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	DutyStatus string `json:"duty_status"`
	Location   string `json:"location"`
	Remarks    string `json:"remarks"`
}

// parseField converts one decimal-string wire field to float64. The field
// name ends up in the error so a bad payload is diagnosable.
func parseField(field, value string) (float64, error) {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, fmt.Errorf("trip: field %s: cannot parse %q as number: %w", field, value, err)
	}
	return f, nil
}

// Normalize converts a wire trip into the in-memory model, parsing every
// string-encoded numeric field. It returns an error naming the first
// malformed field.
func Normalize(w WireTrip) (*Trip, error) {
	t := &Trip{
		ID:              w.ID,
		CurrentLocation: w.CurrentLocation,
		PickupLocation:  w.PickupLocation,
		DropoffLocation: w.DropoffLocation,
		DriverName:      w.DriverName,
		CarrierName:     w.CarrierName,
		TruckNumber:     w.TruckNumber,
		CreatedAt:       w.CreatedAt,
	}

	var err error
	if t.CurrentLat, err = parseField("current_lat", w.CurrentLat); err != nil {
		return nil, err
	}
	if t.CurrentLng, err = parseField("current_lng", w.CurrentLng); err != nil {
		return nil, err
	}
	if t.PickupLat, err = parseField("pickup_lat", w.PickupLat); err != nil {
		return nil, err
	}
	if t.PickupLng, err = parseField("pickup_lng", w.PickupLng); err != nil {
		return nil, err
	}
	if t.DropoffLat, err = parseField("dropoff_lat", w.DropoffLat); err != nil {
		return nil, err
	}
	if t.DropoffLng, err = parseField("dropoff_lng", w.DropoffLng); err != nil {
		return nil, err
	}
	if t.CurrentCycleHours, err = parseField("current_cycle_hours", w.CurrentCycleHours); err != nil {
		return nil, err
	}

	t.Segments = make([]RouteSegment, 0, len(w.RouteSegments))
	for _, ws := range w.RouteSegments {
		s := RouteSegment{
			ID:            ws.ID,
			StartLocation: ws.StartLocation,
			EndLocation:   ws.EndLocation,
			Type:          SegmentType(ws.SegmentType),
			Order:         ws.Order,
		}
		if s.DistanceMiles, err = parseField("distance_miles", ws.DistanceMiles); err != nil {
			return nil, err
		}
		if s.DurationHours, err = parseField("duration_hours", ws.DurationHours); err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, s)
	}

	t.DailyLogs = make([]DailyLog, 0, len(w.DailyLogs))
	for _, wl := range w.DailyLogs {
		d := DailyLog{ID: wl.ID, Date: wl.Date}
		if d.TotalMiles, err = parseField("total_miles", wl.TotalMiles); err != nil {
			return nil, err
		}
		if d.TotalHoursOffDuty, err = parseField("total_hours_off_duty", wl.TotalHoursOffDuty); err != nil {
			return nil, err
		}
		if d.TotalHoursSleeper, err = parseField("total_hours_sleeper", wl.TotalHoursSleeper); err != nil {
			return nil, err
		}
		if d.TotalHoursDriving, err = parseField("total_hours_driving", wl.TotalHoursDriving); err != nil {
			return nil, err
		}
		if d.TotalHoursOnDuty, err = parseField("total_hours_on_duty", wl.TotalHoursOnDuty); err != nil {
			return nil, err
		}
		d.Entries = make([]LogEntry, 0, len(wl.LogEntries))
		for _, we := range wl.LogEntries {
			d.Entries = append(d.Entries, LogEntry{
				ID:        we.ID,
				StartTime: we.StartTime,
				EndTime:   we.EndTime,
				Status:    DutyStatus(we.DutyStatus),
				Location:  we.Location,
				Remarks:   we.Remarks,
			})
		}
		t.DailyLogs = append(t.DailyLogs, d)
	}

	return t, nil
}

// NormalizeAll converts a list response.
func NormalizeAll(ws []WireTrip) ([]Trip, error) {
	trips := make([]Trip, 0, len(ws))
	for _, w := range ws {
		t, err := Normalize(w)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", w.ID, err)
		}
		trips = append(trips, *t)
	}
	return trips, nil
}
