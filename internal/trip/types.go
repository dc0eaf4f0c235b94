// Package trip defines the in-memory model for planned trips, route
// segments and Hours-of-Service daily logs, plus the normalization layer
// that converts the backend's string-encoded wire format into it.
package trip

// SegmentType classifies one leg of a planned route.
type SegmentType string

const (
	SegmentDriving SegmentType = "driving"
	SegmentRest    SegmentType = "rest"
	SegmentFuel    SegmentType = "fuel"
	SegmentPickup  SegmentType = "pickup"
	SegmentDropoff SegmentType = "dropoff"
	SegmentBreak   SegmentType = "break"
)

// DutyStatus is the duty classification of a log interval.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "off_duty"
	StatusSleeperBerth DutyStatus = "sleeper_berth"
	StatusDriving      DutyStatus = "driving"
	StatusOnDuty       DutyStatus = "on_duty_not_driving"
)

// DutyStatuses lists the four statuses in log-sheet row order.
var DutyStatuses = []DutyStatus{StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty}

// Label returns the human-readable form of the duty status.
func (s DutyStatus) Label() string {
	switch s {
	case StatusOffDuty:
		return "Off Duty"
	case StatusSleeperBerth:
		return "Sleeper Berth"
	case StatusDriving:
		return "Driving"
	case StatusOnDuty:
		return "On Duty (Not Driving)"
	default:
		return string(s)
	}
}

// Icon returns the marker used for the segment type in lists and tables.
func (t SegmentType) Icon() string {
	switch t {
	case SegmentDriving:
		return "🚛"
	case SegmentRest:
		return "🛌"
	case SegmentFuel:
		return "⛽"
	case SegmentPickup:
		return "📦"
	case SegmentDropoff:
		return "🏭"
	case SegmentBreak:
		return "☕"
	default:
		return "📍"
	}
}

// Trip is one planned journey as returned by the backend planner.
// Read-only on the client; re-fetched by ID.
type Trip struct {
	ID                string
	CurrentLocation   string
	CurrentLat        float64
	CurrentLng        float64
	PickupLocation    string
	PickupLat         float64
	PickupLng         float64
	DropoffLocation   string
	DropoffLat        float64
	DropoffLng        float64
	CurrentCycleHours float64
	DriverName        string
	CarrierName       string
	TruckNumber       string
	CreatedAt         string
	Segments          []RouteSegment
	DailyLogs         []DailyLog
}

// RouteSegment is one classified leg of the planned route. Order indices
// are assigned by the backend and define traversal sequence.
type RouteSegment struct {
	ID            int
	StartLocation string
	EndLocation   string
	DistanceMiles float64
	DurationHours float64
	Type          SegmentType
	Order         int
}

// DailyLog is one 24-hour regulatory log sheet. The four duty totals sum
// to 24 for a complete day; the client assumes this, it does not enforce it.
type DailyLog struct {
	ID                int
	Date              string
	TotalMiles        float64
	TotalHoursOffDuty float64
	TotalHoursSleeper float64
	TotalHoursDriving float64
	TotalHoursOnDuty  float64
	Entries           []LogEntry
}

// TotalFor returns the daily total for one duty status row.
func (d DailyLog) TotalFor(s DutyStatus) float64 {
	switch s {
	case StatusOffDuty:
		return d.TotalHoursOffDuty
	case StatusSleeperBerth:
		return d.TotalHoursSleeper
	case StatusDriving:
		return d.TotalHoursDriving
	case StatusOnDuty:
		return d.TotalHoursOnDuty
	}
	return 0
}

// LogEntry is one contiguous duty-status interval within a day.
// Start and end are wall-clock "HH:MM[:SS]" on the same calendar day.
type LogEntry struct {
	ID        int
	StartTime string
	EndTime   string
	Status    DutyStatus
	Location  string
	Remarks   string
}

// Draft is a trip submission before it reaches the creation endpoint.
// Coordinates are plain numbers on the wire; the formatter rounds them to
// 6 decimals and cycle hours to 1 decimal before send.
type Draft struct {
	CurrentLocation   string  `json:"current_location"`
	CurrentLat        float64 `json:"current_lat"`
	CurrentLng        float64 `json:"current_lng"`
	PickupLocation    string  `json:"pickup_location"`
	PickupLat         float64 `json:"pickup_lat"`
	PickupLng         float64 `json:"pickup_lng"`
	DropoffLocation   string  `json:"dropoff_location"`
	DropoffLat        float64 `json:"dropoff_lat"`
	DropoffLng        float64 `json:"dropoff_lng"`
	CurrentCycleHours float64 `json:"current_cycle_hours"`
	DriverName        string  `json:"driver_name"`
	CarrierName       string  `json:"carrier_name"`
	TruckNumber       string  `json:"truck_number"`
}

// TotalDistance sums the segment distances in miles.
func (t Trip) TotalDistance() float64 {
	var total float64
	for _, s := range t.Segments {
		total += s.DistanceMiles
	}
	return total
}

// TotalDuration sums the segment durations in hours.
func (t Trip) TotalDuration() float64 {
	var total float64
	for _, s := range t.Segments {
		total += s.DurationHours
	}
	return total
}

// CountSegments returns how many segments carry the given type.
func (t Trip) CountSegments(st SegmentType) int {
	n := 0
	for _, s := range t.Segments {
		if s.Type == st {
			n++
		}
	}
	return n
}
